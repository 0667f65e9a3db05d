package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Value holds a field value: either a string or a number. The zero value is
// the empty string.
type Value struct {
	str    string
	num    float64
	number bool
}

// String constructs a string value.
func String(s string) Value {
	return Value{str: s}
}

// Number constructs a numeric value.
func Number(n float64) Value {
	return Value{num: n, number: true}
}

// Int is a convenience wrapper around Number.
func Int(n int) Value {
	return Number(float64(n))
}

// ValueOf converts a Go primitive into a Value. Strings map to string
// values, integers and floats to numbers, booleans to "true"/"false".
func ValueOf(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return v, nil
	case string:
		return String(v), nil
	case bool:
		return String(strconv.FormatBool(v)), nil
	case int:
		return Number(float64(v)), nil
	case int8:
		return Number(float64(v)), nil
	case int16:
		return Number(float64(v)), nil
	case int32:
		return Number(float64(v)), nil
	case int64:
		return Number(float64(v)), nil
	case uint:
		return Number(float64(v)), nil
	case uint8:
		return Number(float64(v)), nil
	case uint16:
		return Number(float64(v)), nil
	case uint32:
		return Number(float64(v)), nil
	case uint64:
		return Number(float64(v)), nil
	case float32:
		return Number(float64(v)), nil
	case float64:
		return Number(v), nil
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("model: invalid number %q: %w", v, err)
		}
		return Number(n), nil
	default:
		return Value{}, fmt.Errorf("model: unsupported value type %T", raw)
	}
}

// IsNumber reports whether the value holds a number.
func (v Value) IsNumber() bool {
	return v.number
}

// Str returns the string payload and true when the value is a string.
func (v Value) Str() (string, bool) {
	if v.number {
		return "", false
	}
	return v.str, true
}

// Num returns the numeric payload and true when the value is a number.
func (v Value) Num() (float64, bool) {
	if !v.number {
		return 0, false
	}
	return v.num, true
}

// Equal is strict: a string never equals a number, even "1" and 1.
func (v Value) Equal(other Value) bool {
	if v.number != other.number {
		return false
	}
	if v.number {
		return v.num == other.num
	}
	return v.str == other.str
}

// String renders the value for display and form submission.
func (v Value) String() string {
	if v.number {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

// Interface returns the underlying string or float64.
func (v Value) Interface() any {
	if v.number {
		return v.num
	}
	return v.str
}

// MarshalJSON encodes the value as a JSON string or number.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON picks the kind from the literal: quoted values become
// strings, bare numbers become numbers.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = Value{}
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("model: decode value: %w", err)
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// UnmarshalYAML applies the same literal rules as UnmarshalJSON.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("model: value must be a scalar (line %d)", node.Line)
	}
	switch node.Tag {
	case "!!null":
		*v = Value{}
	case "!!int", "!!float":
		n, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return fmt.Errorf("model: invalid number %q (line %d): %w", node.Value, node.Line, err)
		}
		*v = Number(n)
	default:
		*v = String(node.Value)
	}
	return nil
}
