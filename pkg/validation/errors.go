package validation

import "errors"

// ErrTypeMisuse is returned when a validator that only accepts strings is
// invoked with another kind of value.
var ErrTypeMisuse = errors.New("validation: validator applied to unsupported value type")
