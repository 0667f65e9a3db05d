package model

import "errors"

// ErrUnknownField is returned when a lookup names an id outside the form.
var ErrUnknownField = errors.New("model: unknown field")

// Result is the outcome of a validator run. Validation failures are data,
// never errors.
type Result struct {
	Valid   bool
	Message string
}

// Pass is the valid result.
func Pass() Result {
	return Result{Valid: true}
}

// Fail builds an invalid result carrying msg.
func Fail(msg string) Result {
	return Result{Valid: false, Message: msg}
}

// Lookup resolves the current value of another field in the same form. The
// id must have the form's id type; anything else is reported as
// ErrUnknownField.
type Lookup interface {
	Value(id any) (Value, error)
}

// LookupFunc adapts a function into a Lookup.
type LookupFunc func(id any) (Value, error)

// Value calls the underlying function.
func (fn LookupFunc) Value(id any) (Value, error) {
	return fn(id)
}

// Validator checks a candidate value. Returned errors signal programmer
// mistakes (type misuse, unknown referenced fields) and abort validation.
type Validator interface {
	Validate(value Value, lookup Lookup) (Result, error)
}

// ValidatorFunc adapts a function into a Validator.
type ValidatorFunc func(value Value, lookup Lookup) (Result, error)

// Validate calls the underlying function.
func (fn ValidatorFunc) Validate(value Value, lookup Lookup) (Result, error) {
	return fn(value, lookup)
}

// Referrer is implemented by validators that read other fields through the
// lookup. The ids are checked against the form when it is constructed.
type Referrer interface {
	References() []any
}
