// Package record wraps decoded upstream JSON in a schema-less tree whose
// accessors never fault. A missing key, a JSON null, or a value of the wrong
// shape all read as absent.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a node of a decoded JSON document.
type Value struct {
	v       any
	present bool
}

// Absent is the value of a missing key or index.
var Absent = Value{}

// Of wraps an already decoded JSON value (as produced by encoding/json with UseNumber).
func Of(v any) Value {
	return Value{v: v, present: true}
}

// Parse decodes one JSON document. Numbers keep their textual form.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Absent, fmt.Errorf("record.Parse: %w", err)
	}
	return Of(v), nil
}

// ParseAll decodes a list of raw records, preserving order.
func ParseAll(raws []json.RawMessage) ([]Value, error) {
	out := make([]Value, 0, len(raws))
	for i, raw := range raws {
		v, err := Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Present reports whether the key existed, including when it held JSON null.
func (v Value) Present() bool {
	return v.present
}

// IsNull reports whether the value is absent or JSON null.
func (v Value) IsNull() bool {
	return !v.present || v.v == nil
}

// Get returns the member key of an object, or Absent.
func (v Value) Get(key string) Value {
	m, ok := v.v.(map[string]any)
	if !ok {
		return Absent
	}
	member, ok := m[key]
	if !ok {
		return Absent
	}
	return Of(member)
}

// Path follows nested object keys, stopping at the first absent step.
func (v Value) Path(keys ...string) Value {
	cur := v
	for _, k := range keys {
		cur = cur.Get(k)
		if !cur.present {
			return Absent
		}
	}
	return cur
}

// List returns the elements of an array. Anything else, null included, is an empty list.
func (v Value) List() []Value {
	arr, ok := v.v.([]any)
	if !ok {
		return nil
	}
	out := make([]Value, len(arr))
	for i, e := range arr {
		out[i] = Of(e)
	}
	return out
}

// AsString returns the value when it is a JSON string.
func (v Value) AsString() (string, bool) {
	s, ok := v.v.(string)
	return s, ok
}

// StringPtr returns a pointer to the string value, or nil when the value is not a string.
func (v Value) StringPtr() *string {
	s, ok := v.AsString()
	if !ok {
		return nil
	}
	return &s
}

// Text returns a string value, or the literal text of a number. Other kinds report false.
func (v Value) Text() (string, bool) {
	switch t := v.v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	}
	return "", false
}

// Int returns the value as an integer when it is an integral JSON number.
func (v Value) Int() (int64, bool) {
	switch t := v.v.(type) {
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	case float64:
		if t != float64(int64(t)) {
			return 0, false
		}
		return int64(t), true
	case int:
		return int64(t), true
	case int64:
		return t, true
	}
	return 0, false
}

// IntPtr returns a pointer to the integer value, or nil.
func (v Value) IntPtr() *int64 {
	i, ok := v.Int()
	if !ok {
		return nil
	}
	return &i
}
