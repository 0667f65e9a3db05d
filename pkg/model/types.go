package model

import "strings"

// FieldType is the tag used to dispatch a field to its renderer.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeSelect   FieldType = "select"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
)

// BuiltinFieldTypes lists the kinds every renderer package is expected to
// support, in a stable order.
var BuiltinFieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeSelect,
	FieldTypeRadio,
	FieldTypeCheckbox,
}

// Known reports whether the tag is one of the built-in kinds. Other non-empty
// tags are allowed as long as a renderer is registered for them.
func (t FieldType) Known() bool {
	switch t {
	case FieldTypeText, FieldTypeSelect, FieldTypeRadio, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// HasOptions reports whether the kind renders a list of choices.
func (t FieldType) HasOptions() bool {
	switch t {
	case FieldTypeSelect, FieldTypeRadio, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// Normalize trims and lowercases the tag.
func (t FieldType) Normalize() FieldType {
	return FieldType(strings.ToLower(strings.TrimSpace(string(t))))
}

// FieldDefinition describes a single input of a form. Definitions are
// authored once when a form instance is constructed and never change
// afterwards; per-field runtime state lives in pkg/form.
type FieldDefinition[T comparable] struct {
	ID        T
	Label     string
	Type      FieldType
	Validator Validator
	Initial   Value
	Options   []string
	Disabled  bool
	// Custom carries renderer specific extras such as password masking. Only
	// primitive values (string, bool, numbers) are accepted.
	Custom map[string]any
}

// CustomString returns a string entry from Custom, or "" when absent.
func (d FieldDefinition[T]) CustomString(key string) string {
	if d.Custom == nil {
		return ""
	}
	if value, ok := d.Custom[key].(string); ok {
		return value
	}
	return ""
}

// CustomBool returns a boolean entry from Custom. The string "true" is
// accepted so definitions loaded from YAML stay forgiving.
func (d FieldDefinition[T]) CustomBool(key string) bool {
	if d.Custom == nil {
		return false
	}
	switch value := d.Custom[key].(type) {
	case bool:
		return value
	case string:
		return strings.EqualFold(strings.TrimSpace(value), "true")
	default:
		return false
	}
}

func (d FieldDefinition[T]) clone() FieldDefinition[T] {
	out := d
	if d.Options != nil {
		out.Options = append([]string(nil), d.Options...)
	}
	out.Custom = cloneCustom(d.Custom)
	return out
}

func cloneCustom(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}

func isPrimitive(value any) bool {
	switch value.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}
