package validation

import "github.com/goliatone/go-formstate/pkg/model"

type allRule struct {
	validators []model.Validator
}

// All passes when every validator passes and reports the first failure.
// An empty list passes.
func All(validators ...model.Validator) model.Validator {
	return allRule{validators: compact(validators)}
}

func (r allRule) Validate(value model.Value, lookup model.Lookup) (model.Result, error) {
	for _, v := range r.validators {
		result, err := v.Validate(value, lookup)
		if err != nil {
			return model.Result{}, err
		}
		if !result.Valid {
			return result, nil
		}
	}
	return model.Pass(), nil
}

func (r allRule) References() []any {
	return collectReferences(r.validators)
}

type anyRule struct {
	validators []model.Validator
	message    string
}

// Any passes when at least one validator passes. On failure it reports msg,
// not the message of a member.
func Any(msg string, validators ...model.Validator) model.Validator {
	return anyRule{validators: compact(validators), message: msg}
}

func (r anyRule) Validate(value model.Value, lookup model.Lookup) (model.Result, error) {
	for _, v := range r.validators {
		result, err := v.Validate(value, lookup)
		if err != nil {
			return model.Result{}, err
		}
		if result.Valid {
			return model.Pass(), nil
		}
	}
	return model.Fail(r.message), nil
}

func (r anyRule) References() []any {
	return collectReferences(r.validators)
}

type notRule struct {
	validator model.Validator
	message   string
}

// Not inverts v, reporting msg when v passes.
func Not(v model.Validator, msg string) model.Validator {
	return notRule{validator: orNone(v), message: msg}
}

func (r notRule) Validate(value model.Value, lookup model.Lookup) (model.Result, error) {
	result, err := r.validator.Validate(value, lookup)
	if err != nil {
		return model.Result{}, err
	}
	if result.Valid {
		return model.Fail(r.message), nil
	}
	return model.Pass(), nil
}

func (r notRule) References() []any {
	return References(r.validator)
}

type optionalRule struct {
	validator model.Validator
}

// Optional passes the empty string and delegates everything else to v.
func Optional(v model.Validator) model.Validator {
	return optionalRule{validator: orNone(v)}
}

func (r optionalRule) Validate(value model.Value, lookup model.Lookup) (model.Result, error) {
	if s, ok := value.Str(); ok && s == "" {
		return model.Pass(), nil
	}
	return r.validator.Validate(value, lookup)
}

func (r optionalRule) References() []any {
	return References(r.validator)
}

type noneRule struct{}

// None always passes.
func None() model.Validator {
	return noneRule{}
}

func (noneRule) Validate(model.Value, model.Lookup) (model.Result, error) {
	return model.Pass(), nil
}

func compact(validators []model.Validator) []model.Validator {
	out := make([]model.Validator, 0, len(validators))
	for _, v := range validators {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

func orNone(v model.Validator) model.Validator {
	if v == nil {
		return None()
	}
	return v
}

func collectReferences(validators []model.Validator) []any {
	var out []any
	for _, v := range validators {
		out = append(out, References(v)...)
	}
	return out
}
