package validation

import (
	"github.com/goliatone/go-formstate/pkg/model"
)

type equalsRule struct {
	expected model.Value
	message  string
}

// Equals passes when the candidate equals expected (kind included).
func Equals(expected model.Value, msg string) model.Validator {
	return equalsRule{expected: expected, message: msg}
}

func (r equalsRule) Validate(value model.Value, _ model.Lookup) (model.Result, error) {
	if value.Equal(r.expected) {
		return model.Pass(), nil
	}
	return model.Fail(r.message), nil
}

type oneOfRule struct {
	allowed []model.Value
	message string
}

// OneOf passes when the candidate equals one of allowed.
func OneOf(allowed []model.Value, msg string) model.Validator {
	return oneOfRule{allowed: append([]model.Value(nil), allowed...), message: msg}
}

func (r oneOfRule) Validate(value model.Value, _ model.Lookup) (model.Result, error) {
	for _, candidate := range r.allowed {
		if value.Equal(candidate) {
			return model.Pass(), nil
		}
	}
	return model.Fail(r.message), nil
}

type checkboxMinRule struct {
	min     int
	message string
}

// CheckboxMin passes when a checkbox value selects at least n options.
func CheckboxMin(n int, msg string) model.Validator {
	return checkboxMinRule{min: n, message: msg}
}

func (r checkboxMinRule) Validate(value model.Value, _ model.Lookup) (model.Result, error) {
	raw, ok := value.Str()
	if !ok {
		return model.Fail(r.message), nil
	}
	selected, err := model.ParseCheckbox(raw)
	if err != nil || len(selected) < r.min {
		return model.Fail(r.message), nil
	}
	return model.Pass(), nil
}
