package form

import (
	"errors"

	"github.com/goliatone/go-formstate/pkg/model"
)

var (
	// ErrInvalidName is returned for form names that cannot prefix DOM ids.
	ErrInvalidName = errors.New("form: invalid form name")
	// ErrUnknownField aliases model.ErrUnknownField so callers can match it
	// from either package.
	ErrUnknownField = model.ErrUnknownField
	// ErrInvalidInitialValues is returned when the initial-value mapping does
	// not match the form's id type.
	ErrInvalidInitialValues = errors.New("form: invalid initial values")
)
