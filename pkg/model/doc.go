// Package model defines the typed building blocks shared by the form state
// engine and its renderers: field kinds, the string-or-number Value, field
// definitions keyed by a caller-chosen comparable id, the immutable Registry
// that orders them, and the Validator contract implemented by
// pkg/validation. Checkbox fields store their selection as a comma-joined
// list of option indices in insertion order (for example "1,2"); the
// ParseCheckbox/FormatCheckbox helpers are the only sanctioned codec for
// that wire format.
package model
