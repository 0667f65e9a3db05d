package form

import "github.com/goliatone/go-formstate/pkg/model"

// Value is re-exported for brevity in option signatures.
type Value = model.Value

// state is the runtime half of a form. Every slice has one entry per field
// definition, index aligned with the registry.
type state struct {
	values   []model.Value
	validity []bool
	messages []string

	dirty         bool
	errorsVisible bool
	active        bool
}

func newState(initial []model.Value, errorsVisible bool) *state {
	return &state{
		values:        append([]model.Value(nil), initial...),
		validity:      make([]bool, len(initial)),
		messages:      make([]string, len(initial)),
		errorsVisible: errorsVisible,
		active:        true,
	}
}

func (s *state) allValid() bool {
	for _, valid := range s.validity {
		if !valid {
			return false
		}
	}
	return true
}

// visibleMessage is the text a renderer should show for index.
func (s *state) visibleMessage(index int) string {
	if !s.errorsVisible || s.validity[index] {
		return ""
	}
	return s.messages[index]
}

// Snapshot is a copy of the runtime state, safe to keep after the form
// changes.
type Snapshot struct {
	Values               []model.Value
	Validity             []bool
	Messages             []string
	Dirty                bool
	ErrorMessagesVisible bool
	Active               bool
}

func (s *state) snapshot() Snapshot {
	return Snapshot{
		Values:               append([]model.Value(nil), s.values...),
		Validity:             append([]bool(nil), s.validity...),
		Messages:             append([]string(nil), s.messages...),
		Dirty:                s.dirty,
		ErrorMessagesVisible: s.errorsVisible,
		Active:               s.active,
	}
}

// FieldState describes one field as a renderer would see it.
type FieldState struct {
	Value          model.Value
	Valid          bool
	Message        string
	VisibleMessage string
	Disabled       bool
}
