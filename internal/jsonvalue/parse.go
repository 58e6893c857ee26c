package jsonvalue

import (
	"encoding/json"
	"strings"
)

// ParseString decodes a JSON document into a Value tree, grounded on the
// teacher's parseJSONString/goValueToJSONValue pair in
// internal/interp/builtins_json.go. Numbers that round-trip through
// json.Number as whole values become KindInt64; everything else numeric
// becomes KindNumber, preserving the int/float split the Nola value model
// needs downstream.
func ParseString(s string) (*Value, error) {
	var data interface{}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	return fromGo(data), nil
}

func fromGo(data interface{}) *Value {
	switch v := data.(type) {
	case nil:
		return NewNull()
	case bool:
		return NewBoolean(v)
	case json.Number:
		if i64, err := v.Int64(); err == nil {
			return NewInt64(i64)
		}
		if f64, err := v.Float64(); err == nil {
			return NewNumber(f64)
		}
		return NewString(v.String())
	case float64:
		return NewNumber(v)
	case string:
		return NewString(v)
	case []interface{}:
		arr := NewArray()
		for _, elem := range v {
			arr.ArrayAppend(fromGo(elem))
		}
		return arr
	case map[string]interface{}:
		obj := NewObject()
		for k, val := range v {
			obj.ObjectSet(k, fromGo(val))
		}
		return obj
	default:
		return NewUndefined()
	}
}
