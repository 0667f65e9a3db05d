package render

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Context carries everything a renderer needs to draw one field.
type Context struct {
	Form    string
	Index   int
	FieldID string
	ErrorID string
	Label   string
	Type    model.FieldType
	Options []string
	Custom  map[string]any
	Value   model.Value
	// Disabled is the effective state: the field's own flag or a disabled form.
	Disabled bool
	// ErrorMessage is empty whenever error messages are hidden, even for
	// invalid fields.
	ErrorMessage string
	// OnChange feeds a new value back into the form state.
	OnChange func(model.Value) error
	// Sequence orders renders of the same field. A result whose sequence is
	// older than the stored handle's is dropped. Zero disables the check.
	Sequence uint64
}

// CustomString returns a string custom entry.
func (c Context) CustomString(key string) string {
	if value, ok := c.Custom[key].(string); ok {
		return value
	}
	return ""
}

// CustomBool returns a boolean custom entry ("true" strings included).
func (c Context) CustomBool(key string) bool {
	switch value := c.Custom[key].(type) {
	case bool:
		return value
	case string:
		return value == "true"
	default:
		return false
	}
}

// Widget is the handle produced by a renderer.
type Widget struct {
	ID      string
	ErrorID string
	Markup  string
	// Revision counts how many times the field has been rendered.
	Revision int
	// Data lets renderers attach implementation specific payloads.
	Data any
}

// Renderer draws one field.
type Renderer interface {
	Render(ctx Context) (Widget, error)
}

// RendererFunc adapts a function into a Renderer.
type RendererFunc func(ctx Context) (Widget, error)

// Render calls the underlying function.
func (fn RendererFunc) Render(ctx Context) (Widget, error) {
	return fn(ctx)
}

// InputID returns the DOM id of the input at index within form.
func InputID(form string, index int) string {
	return form + "_field_" + strconv.Itoa(index)
}

// ErrorID returns the DOM id of the error message element of an input.
func ErrorID(inputID string) string {
	return "error_message_" + inputID
}

// ParseInputID is the inverse of InputID.
func ParseInputID(form, id string) (int, error) {
	prefix := form + "_field_"
	if len(id) <= len(prefix) || id[:len(prefix)] != prefix {
		return 0, fmt.Errorf("render: %q is not an input of form %q", id, form)
	}
	idx, err := strconv.Atoi(id[len(prefix):])
	// Only the canonical spelling is an input id: no sign, no leading zeros.
	if err != nil || idx < 0 || InputID(form, idx) != id {
		return 0, fmt.Errorf("render: %q is not an input of form %q", id, form)
	}
	return idx, nil
}
