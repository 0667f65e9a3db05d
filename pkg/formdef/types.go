package formdef

import (
	"github.com/goliatone/go-formstate/pkg/model"
)

// Document is a declarative form: a name, display flags and ordered fields.
type Document struct {
	Name                 string  `json:"name" yaml:"name"`
	ErrorMessagesVisible bool    `json:"errorMessagesVisible,omitempty" yaml:"errorMessagesVisible,omitempty"`
	Fields               []Field `json:"fields" yaml:"fields"`

	source string
	defs   []model.FieldDefinition[string]
}

// Field describes one input. Rules are combined with Mode: "all" (default)
// fails on the first failing rule, "any" passes when one rule passes and
// reports Message otherwise. Optional fields skip their rules while empty.
type Field struct {
	ID       string         `json:"id" yaml:"id"`
	Label    string         `json:"label,omitempty" yaml:"label,omitempty"`
	Type     string         `json:"type" yaml:"type"`
	Initial  *model.Value   `json:"initial,omitempty" yaml:"initial,omitempty"`
	Options  []string       `json:"options,omitempty" yaml:"options,omitempty"`
	Disabled bool           `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Optional bool           `json:"optional,omitempty" yaml:"optional,omitempty"`
	Custom   map[string]any `json:"custom,omitempty" yaml:"custom,omitempty"`
	Mode     string         `json:"mode,omitempty" yaml:"mode,omitempty"`
	Message  string         `json:"message,omitempty" yaml:"message,omitempty"`
	Rules    []Rule         `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Rule is one validator. Which parameters apply depends on Kind.
type Rule struct {
	Kind    string        `json:"kind" yaml:"kind"`
	Pattern string        `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Field   string        `json:"field,omitempty" yaml:"field,omitempty"`
	Value   *model.Value  `json:"value,omitempty" yaml:"value,omitempty"`
	Values  []model.Value `json:"values,omitempty" yaml:"values,omitempty"`
	Length  int           `json:"length,omitempty" yaml:"length,omitempty"`
	Count   int           `json:"count,omitempty" yaml:"count,omitempty"`
	Min     *float64      `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64      `json:"max,omitempty" yaml:"max,omitempty"`
	Message string        `json:"message" yaml:"message"`
}

// Rule kinds.
const (
	RuleRegex       = "regex"
	RuleEmail       = "email"
	RuleEqualsField = "equalsField"
	RuleEquals      = "equals"
	RuleMinLength   = "minLength"
	RuleMaxLength   = "maxLength"
	RuleMin         = "min"
	RuleMax         = "max"
	RuleRange       = "range"
	RuleNotEmpty    = "notEmpty"
	RuleCheckboxMin = "checkboxMin"
	RuleOneOf       = "oneOf"
)

// Combination modes.
const (
	ModeAll = "all"
	ModeAny = "any"
)
