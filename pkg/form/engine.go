package form

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// OnFieldChange is the change callback wired into every widget. It stores
// value at index, re-validates that field only and re-renders its widget.
// Only a validator error rolls back: the state is left untouched. A render
// error is returned after the new value, validity and dirty flag have been
// committed.
func (f *Form[T]) OnFieldChange(index int, value model.Value) error {
	f.mu.Lock()
	if index < 0 || index >= len(f.state.values) {
		f.mu.Unlock()
		return fmt.Errorf("form %q: field index %d out of range", f.name, index)
	}

	values := f.state.values
	previous := values[index]
	values[index] = value

	result, err := f.runLocked(index, values)
	if err != nil {
		values[index] = previous
		f.mu.Unlock()
		return err
	}

	f.state.validity[index] = result.Valid
	f.state.messages[index] = result.Message
	if !f.state.dirty && !value.Equal(previous) {
		f.state.dirty = true
	}
	ctx := f.contextLocked(index)
	f.mu.Unlock()

	f.logger.Debug("field changed",
		zap.Int("index", index),
		zap.Bool("valid", result.Valid),
	)

	_, err = f.binding.Render(index, ctx)
	return err
}

// SetFieldValue is OnFieldChange addressed by id.
func (f *Form[T]) SetFieldValue(id T, value model.Value) error {
	idx, err := f.index(id)
	if err != nil {
		return err
	}
	return f.OnFieldChange(idx, value)
}

// Validate re-runs every validator against the current values, replaces
// the validity and message state in one step and reports whether every
// field is valid.
func (f *Form[T]) Validate() (bool, error) {
	f.mu.Lock()
	valid, err := f.validateAllLocked()
	f.mu.Unlock()
	if err != nil {
		return false, err
	}
	if err := f.renderAll(); err != nil {
		return valid, err
	}
	return valid, nil
}

// SetValues overwrites the named fields, leaves the others untouched and
// re-validates the whole form. The validation pass runs in the same
// critical section as the writes. Unknown ids fail before anything is
// written; a validator error rolls the writes back. Programmatic writes do
// not mark the form dirty.
func (f *Form[T]) SetValues(values map[T]model.Value) (bool, error) {
	indices := make(map[int]model.Value, len(values))
	for id, value := range values {
		idx, err := f.index(id)
		if err != nil {
			return false, err
		}
		indices[idx] = value
	}

	f.mu.Lock()
	previous := append([]model.Value(nil), f.state.values...)
	for idx, value := range indices {
		f.state.values[idx] = value
	}
	valid, err := f.validateAllLocked()
	if err != nil {
		f.state.values = previous
		f.mu.Unlock()
		return false, err
	}
	f.mu.Unlock()

	if err := f.renderAll(); err != nil {
		return valid, err
	}
	return valid, nil
}

// validateAllLocked computes fresh validity and message slices and swaps
// them in only when every validator ran without error.
func (f *Form[T]) validateAllLocked() (bool, error) {
	values := f.state.values
	validity := make([]bool, len(values))
	messages := make([]string, len(values))
	all := true
	for i := range values {
		result, err := f.runLocked(i, values)
		if err != nil {
			return false, err
		}
		validity[i] = result.Valid
		messages[i] = result.Message
		all = all && result.Valid
	}
	f.state.validity = validity
	f.state.messages = messages

	f.logger.Debug("form validated", zap.Bool("valid", all))
	return all, nil
}

func (f *Form[T]) runLocked(index int, values []model.Value) (model.Result, error) {
	def := f.registry.At(index)
	validator := def.Validator
	if validator == nil {
		validator = validation.None()
	}
	result, err := validator.Validate(values[index], f.lookup(values))
	if err != nil {
		return model.Result{}, fmt.Errorf("form %q: validate field %v: %w", f.name, def.ID, err)
	}
	if result.Valid {
		result.Message = ""
	}
	return result, nil
}

// lookup resolves other fields against values, which callers pass after
// applying the triggering write.
func (f *Form[T]) lookup(values []model.Value) model.Lookup {
	return model.LookupFunc(func(raw any) (model.Value, error) {
		id, ok := raw.(T)
		if !ok {
			return model.Value{}, fmt.Errorf("%w: %v (%T)", ErrUnknownField, raw, raw)
		}
		idx, ok := f.registry.Index(id)
		if !ok {
			return model.Value{}, fmt.Errorf("%w: %v", ErrUnknownField, id)
		}
		return values[idx], nil
	})
}

func (f *Form[T]) contextLocked(index int) render.Context {
	def := f.registry.At(index)
	return render.Context{
		Label:        def.Label,
		Type:         def.Type,
		Options:      def.Options,
		Custom:       def.Custom,
		Value:        f.state.values[index],
		Disabled:     def.Disabled || !f.state.active,
		ErrorMessage: f.state.visibleMessage(index),
		OnChange: func(value model.Value) error {
			return f.OnFieldChange(index, value)
		},
		Sequence: f.renders.Add(1),
	}
}

// Render draws every widget again, for hosts that need a full refresh.
func (f *Form[T]) Render() error {
	return f.renderAll()
}

func (f *Form[T]) renderAll() error {
	f.mu.RLock()
	contexts := make([]render.Context, len(f.state.values))
	for i := range contexts {
		contexts[i] = f.contextLocked(i)
	}
	f.mu.RUnlock()

	for i, ctx := range contexts {
		if _, err := f.binding.Render(i, ctx); err != nil {
			return fmt.Errorf("form %q: %w", f.name, err)
		}
	}
	return nil
}
