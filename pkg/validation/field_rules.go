package validation

import (
	"fmt"

	"github.com/goliatone/go-formstate/pkg/model"
)

type equalsFieldRule[T comparable] struct {
	other   T
	message string
}

// EqualsField passes when the candidate equals the current value of the
// field identified by other, the usual confirmation-field check.
func EqualsField[T comparable](other T, msg string) model.Validator {
	return equalsFieldRule[T]{other: other, message: msg}
}

func (r equalsFieldRule[T]) Validate(value model.Value, lookup model.Lookup) (model.Result, error) {
	if lookup == nil {
		return model.Result{}, fmt.Errorf("validation: EqualsField(%v) needs a lookup", r.other)
	}
	other, err := lookup.Value(r.other)
	if err != nil {
		return model.Result{}, err
	}
	if value.Equal(other) {
		return model.Pass(), nil
	}
	return model.Fail(r.message), nil
}

// References reports the referenced field id.
func (r equalsFieldRule[T]) References() []any {
	return []any{r.other}
}

// References collects every field id a validator reads through the lookup,
// descending into All, Any and Not.
func References(v model.Validator) []any {
	if v == nil {
		return nil
	}
	referrer, ok := v.(model.Referrer)
	if !ok {
		return nil
	}
	return referrer.References()
}
