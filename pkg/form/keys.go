package form

// KeyEnter is the key name that triggers submit handlers.
const KeyEnter = "Enter"

// KeyEvent is a key press as reported by the host UI.
type KeyEvent struct {
	Key string
	// FocusID is the DOM id of the element that had focus.
	FocusID string
}

// KeyHandler processes a key press and reports whether it triggered the
// bound action.
type KeyHandler func(event KeyEvent) (bool, error)

// BindEnter returns a handler that runs submit when Enter is pressed while
// focus is on one of this form's rendered inputs. Key presses elsewhere,
// including inside other forms, are ignored.
func (f *Form[T]) BindEnter(submit func() error) KeyHandler {
	return func(event KeyEvent) (bool, error) {
		if submit == nil || event.Key != KeyEnter {
			return false, nil
		}
		if !f.binding.Owns(event.FocusID) {
			return false, nil
		}
		return true, submit()
	}
}
