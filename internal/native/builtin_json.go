// Supplements spec.md's native surface with JSON path access, grounded on
// the teacher's internal/interp/builtins_json.go. The teacher decodes a
// whole document into its jsonvalue tree up front; jsonGet/jsonSet instead
// query and patch the raw JSON text directly via gjson/sjson, which are
// teacher indirect dependencies (pulled in transitively, promoted to direct
// use here) built exactly for dot-path document access without a full
// decode. jsonParse keeps the teacher's whole-document-decode behavior,
// adapting internal/jsonvalue as the intermediate tree that is then folded
// into a Nola ClassInstance/Vec value.
package native

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/nola/internal/jsonvalue"
	"github.com/cwbudde/nola/internal/value"
)

func init() {
	Default.Register("jsonGet", nativeJSONGet)
	Default.Register("jsonSet", nativeJSONSet)
	Default.Register("jsonParse", nativeJSONParse)
}

// nativeJSONGet reads args[1] (a gjson dot-path) out of the JSON document in
// args[0], returning NullOp if the path is absent or either argument isn't a
// string.
func nativeJSONGet(args []value.Value) value.Value {
	if len(args) != 2 || args[0].Kind != value.String || args[1].Kind != value.String {
		return value.Null()
	}
	res := gjson.Get(args[0].S, args[1].S)
	if !res.Exists() {
		return value.Null()
	}
	return gjsonToValue(res)
}

// nativeJSONSet patches the JSON document in args[0] at path args[1] with
// args[2], returning the new document text. Returns NullOp if sjson rejects
// the path or arguments are malformed.
func nativeJSONSet(args []value.Value) value.Value {
	if len(args) != 3 || args[0].Kind != value.String || args[1].Kind != value.String {
		return value.Null()
	}
	out, err := sjson.Set(args[0].S, args[1].S, valueToGo(args[2]))
	if err != nil {
		return value.Null()
	}
	return value.NewString(out)
}

// nativeJSONParse decodes a whole JSON document, adapting it through
// internal/jsonvalue before folding it into a Nola value: objects become
// ClassInstances named "JSONObject", arrays become Vec, scalars map directly.
func nativeJSONParse(args []value.Value) value.Value {
	if len(args) != 1 || args[0].Kind != value.String {
		return value.Null()
	}
	jv, err := jsonvalue.ParseString(args[0].S)
	if err != nil {
		return value.Null()
	}
	return jsonValueToValue(jv)
}

func gjsonToValue(res gjson.Result) value.Value {
	switch res.Type {
	case gjson.Null:
		return value.Null()
	case gjson.False:
		return value.NewBool(false)
	case gjson.True:
		return value.NewBool(true)
	case gjson.Number:
		if res.Num == float64(int64(res.Num)) {
			return value.NewInt(int64(res.Num))
		}
		return value.NewFloat(float32(res.Num))
	case gjson.String:
		return value.NewString(res.Str)
	default:
		if res.IsArray() {
			elems := make([]value.Value, 0)
			res.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, gjsonToValue(v))
				return true
			})
			return value.NewVec(value.NewVector(elems))
		}
		if res.IsObject() {
			fields := make(map[string]value.Value)
			res.ForEach(func(k, v gjson.Result) bool {
				fields[k.Str] = gjsonToValue(v)
				return true
			})
			return value.NewClass(&value.ClassInstance{
				ClassName: "JSONObject",
				Fields:    fields,
				Methods:   map[string]string{},
			})
		}
		return value.NewString(res.Str)
	}
}

// jsonValueToValue folds a jsonvalue.Value tree (adapted from the teacher's
// whole-document decode) into the Nola runtime value model.
func jsonValueToValue(jv *jsonvalue.Value) value.Value {
	switch jv.Kind() {
	case jsonvalue.KindUndefined, jsonvalue.KindNull:
		return value.Null()
	case jsonvalue.KindBoolean:
		return value.NewBool(jv.BoolValue())
	case jsonvalue.KindInt64:
		return value.NewInt(jv.Int64Value())
	case jsonvalue.KindNumber:
		return value.NewFloat(float32(jv.NumberValue()))
	case jsonvalue.KindString:
		return value.NewString(jv.StringValue())
	case jsonvalue.KindArray:
		elems := jv.ArrayElements()
		out := make([]value.Value, len(elems))
		for i, e := range elems {
			out[i] = jsonValueToValue(e)
		}
		return value.NewVec(value.NewVector(out))
	case jsonvalue.KindObject:
		fields := make(map[string]value.Value)
		for _, k := range jv.ObjectKeys() {
			fields[k] = jsonValueToValue(jv.ObjectGet(k))
		}
		return value.NewClass(&value.ClassInstance{
			ClassName: "JSONObject",
			Fields:    fields,
			Methods:   map[string]string{},
		})
	default:
		return value.Null()
	}
}

// valueToGo converts a Nola value into the interface{} shape sjson.Set
// expects when writing a new leaf.
func valueToGo(v value.Value) interface{} {
	switch v.Kind {
	case value.Int:
		return v.I
	case value.Float:
		return v.F
	case value.Bool:
		return v.B
	case value.String:
		return v.S
	case value.Vec:
		out := make([]interface{}, 0)
		if v.V != nil {
			for _, e := range v.V.Elems {
				out = append(out, valueToGo(e))
			}
		}
		return out
	case value.Class:
		out := make(map[string]interface{})
		for k, f := range v.Inst.Fields {
			out[k] = valueToGo(f)
		}
		return out
	default:
		return nil
	}
}
