package jsonvalue

import "testing"

func TestParseStringScalars(t *testing.T) {
	v, err := ParseString(`42`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != KindInt64 || v.Int64Value() != 42 {
		t.Fatalf("got %#v, want int64 42", v)
	}

	v, err = ParseString(`3.5`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != KindNumber || v.NumberValue() != 3.5 {
		t.Fatalf("got %#v, want number 3.5", v)
	}

	v, _ = ParseString(`null`)
	if v.Kind() != KindNull {
		t.Fatalf("got %#v, want null", v)
	}
}

func TestParseStringObjectAndArray(t *testing.T) {
	v, err := ParseString(`{"name": "Ada", "tags": ["a", "b"], "active": true}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != KindObject {
		t.Fatalf("got kind %v, want object", v.Kind())
	}
	if name := v.ObjectGet("name"); name == nil || name.StringValue() != "Ada" {
		t.Fatalf("name field wrong: %#v", name)
	}
	tags := v.ObjectGet("tags")
	if tags == nil || tags.Kind() != KindArray || tags.ArrayLen() != 2 {
		t.Fatalf("tags field wrong: %#v", tags)
	}
	if active := v.ObjectGet("active"); active == nil || !active.BoolValue() {
		t.Fatalf("active field wrong: %#v", active)
	}
}

func TestParseStringInvalidJSON(t *testing.T) {
	if _, err := ParseString(`{not json`); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}
