package formdef

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Validator compiles the field rules. A field without rules gets nil, which
// the form treats as always valid.
func (f Field) Validator() (model.Validator, error) {
	if len(f.Rules) == 0 {
		return nil, nil
	}
	validators := make([]model.Validator, 0, len(f.Rules))
	for i, rule := range f.Rules {
		v, err := rule.Validator()
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		validators = append(validators, v)
	}

	var combined model.Validator
	switch strings.TrimSpace(f.Mode) {
	case "", ModeAll:
		combined = validators[0]
		if len(validators) > 1 {
			combined = validation.All(validators...)
		}
	case ModeAny:
		combined = validation.Any(f.Message, validators...)
	default:
		return nil, fmt.Errorf("unknown mode %q", f.Mode)
	}
	if f.Optional {
		combined = validation.Optional(combined)
	}
	return combined, nil
}

// Validator builds the stock validator named by Kind.
func (r Rule) Validator() (model.Validator, error) {
	switch r.Kind {
	case RuleRegex:
		if r.Pattern == "" {
			return nil, fmt.Errorf("%s: pattern is required", r.Kind)
		}
		return validation.RegexE(r.Pattern, r.Message)
	case RuleEmail:
		return validation.Email(r.Message), nil
	case RuleEqualsField:
		if strings.TrimSpace(r.Field) == "" {
			return nil, fmt.Errorf("%s: field is required", r.Kind)
		}
		return validation.EqualsField(strings.TrimSpace(r.Field), r.Message), nil
	case RuleEquals:
		if r.Value == nil {
			return nil, fmt.Errorf("%s: value is required", r.Kind)
		}
		return validation.Equals(*r.Value, r.Message), nil
	case RuleOneOf:
		if len(r.Values) == 0 {
			return nil, fmt.Errorf("%s: values are required", r.Kind)
		}
		return validation.OneOf(r.Values, r.Message), nil
	case RuleMinLength:
		return validation.MinLength(r.Length, r.Message), nil
	case RuleMaxLength:
		return validation.MaxLength(r.Length, r.Message), nil
	case RuleMin:
		if r.Min == nil {
			return nil, fmt.Errorf("%s: min is required", r.Kind)
		}
		return validation.Min(*r.Min, r.Message), nil
	case RuleMax:
		if r.Max == nil {
			return nil, fmt.Errorf("%s: max is required", r.Kind)
		}
		return validation.Max(*r.Max, r.Message), nil
	case RuleRange:
		if r.Min == nil || r.Max == nil {
			return nil, fmt.Errorf("%s: min and max are required", r.Kind)
		}
		if *r.Min > *r.Max {
			return nil, fmt.Errorf("%s: min %v exceeds max %v", r.Kind, *r.Min, *r.Max)
		}
		return validation.Range(*r.Min, *r.Max, r.Message), nil
	case RuleNotEmpty:
		return validation.NotEmpty(r.Message), nil
	case RuleCheckboxMin:
		return validation.CheckboxMin(r.Count, r.Message), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownRule, r.Kind)
	}
}
