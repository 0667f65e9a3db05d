package form

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Form is the control surface of one mounted form instance.
type Form[T comparable] struct {
	name     string
	registry *model.Registry[T]
	binding  *render.Binding[T]
	logger   *zap.Logger

	mu    sync.RWMutex
	state *state
	// renders stamps render contexts in the order their state was read.
	renders atomic.Uint64
}

// New builds a form from definitions, seeds its state from the definitions'
// initial values (overridden by WithInitialValues), validates every field
// and renders every widget. Configuration mistakes fail here: duplicate
// ids, validators referencing unknown fields, type tags without a renderer.
func New[T comparable](name string, defs []model.FieldDefinition[T], renderers *render.Registry, options ...Option) (*Form[T], error) {
	cfg := newConfig(options)
	initial, _ := cfg.initial.(map[T]Value)
	if cfg.initial != nil && initial == nil {
		return nil, fmt.Errorf("%w: expected map[%T]model.Value, got %T", ErrInvalidInitialValues, *new(T), cfg.initial)
	}
	return newForm(name, defs, renderers, initial, cfg)
}

func newForm[T comparable](name string, defs []model.FieldDefinition[T], renderers *render.Registry, initial map[T]Value, cfg config) (*Form[T], error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	registry, err := model.NewRegistry(defs)
	if err != nil {
		return nil, fmt.Errorf("form %q: %w", name, err)
	}
	if err := checkReferences(registry); err != nil {
		return nil, fmt.Errorf("form %q: %w", name, err)
	}

	values := make([]model.Value, registry.Len())
	for i := range values {
		values[i] = registry.At(i).Initial
	}
	for id, value := range initial {
		idx, ok := registry.Index(id)
		if !ok {
			return nil, fmt.Errorf("form %q: initial value: %w: %v", name, ErrUnknownField, id)
		}
		values[idx] = value
	}

	binding, err := render.Bind(name, registry.IDs(), registry.Types(), renderers)
	if err != nil {
		return nil, fmt.Errorf("form %q: %w", name, err)
	}

	f := &Form[T]{
		name:     name,
		registry: registry,
		binding:  binding,
		logger:   cfg.logger.With(zap.String("form", name)),
		state:    newState(values, cfg.errorsVisible),
	}

	f.mu.Lock()
	_, err = f.validateAllLocked()
	f.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("form %q: initial validation: %w", name, err)
	}
	if err := f.renderAll(); err != nil {
		return nil, err
	}
	return f, nil
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidName, name)
	}
	return nil
}

func checkReferences[T comparable](registry *model.Registry[T]) error {
	for i := 0; i < registry.Len(); i++ {
		def := registry.At(i)
		for _, ref := range validation.References(def.Validator) {
			id, ok := ref.(T)
			if !ok {
				return fmt.Errorf("field %v references %v (%T): %w", def.ID, ref, ref, ErrUnknownField)
			}
			if _, ok := registry.Index(id); !ok {
				return fmt.Errorf("field %v references %v: %w", def.ID, ref, ErrUnknownField)
			}
		}
	}
	return nil
}

// Name returns the form name used to prefix DOM ids.
func (f *Form[T]) Name() string {
	return f.name
}

// Fields returns the field definitions in order.
func (f *Form[T]) Fields() []model.FieldDefinition[T] {
	return f.registry.Definitions()
}

// Dirty reports whether any edit has changed a value since mount. Once set
// it stays set.
func (f *Form[T]) Dirty() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state.dirty
}

// Valid is the AND of the current validity flags.
func (f *Form[T]) Valid() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state.allValid()
}

// Value returns the current value of id.
func (f *Form[T]) Value(id T) (model.Value, error) {
	idx, err := f.index(id)
	if err != nil {
		return model.Value{}, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state.values[idx], nil
}

// Values returns the current values keyed by id.
func (f *Form[T]) Values() map[T]model.Value {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[T]model.Value, len(f.state.values))
	for i, id := range f.registry.IDs() {
		out[id] = f.state.values[i]
	}
	return out
}

// FieldState returns the runtime view of one field.
func (f *Form[T]) FieldState(id T) (FieldState, error) {
	idx, err := f.index(id)
	if err != nil {
		return FieldState{}, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return FieldState{
		Value:          f.state.values[idx],
		Valid:          f.state.validity[idx],
		Message:        f.state.messages[idx],
		VisibleMessage: f.state.visibleMessage(idx),
		Disabled:       f.disabledLocked(idx),
	}, nil
}

// Snapshot copies the complete runtime state.
func (f *Form[T]) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state.snapshot()
}

// InvalidFields lists the ids whose validity flag is false, in definition
// order.
func (f *Form[T]) InvalidFields() []T {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []T
	for i, valid := range f.state.validity {
		if !valid {
			out = append(out, f.registry.At(i).ID)
		}
	}
	return out
}

// ShowErrorMessages makes error messages of invalid fields visible.
func (f *Form[T]) ShowErrorMessages() error {
	return f.setFlag(func(s *state) { s.errorsVisible = true })
}

// HideErrorMessages hides error messages without touching validity.
func (f *Form[T]) HideErrorMessages() error {
	return f.setFlag(func(s *state) { s.errorsVisible = false })
}

// ErrorMessagesVisible reports the current visibility toggle.
func (f *Form[T]) ErrorMessagesVisible() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state.errorsVisible
}

// Disable marks the whole form inactive; every widget renders disabled.
// Values and validity are untouched.
func (f *Form[T]) Disable() error {
	return f.setFlag(func(s *state) { s.active = false })
}

// Enable reactivates the form. Fields disabled by their definition stay
// disabled.
func (f *Form[T]) Enable() error {
	return f.setFlag(func(s *state) { s.active = true })
}

// Active reports whether the form is enabled.
func (f *Form[T]) Active() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state.active
}

// Handle returns the latest widget of id. Ids outside the form fail with
// render.ErrComponentNotFound.
func (f *Form[T]) Handle(id T) (render.Widget, error) {
	return f.binding.Handle(id)
}

// Handles returns every widget in definition order.
func (f *Form[T]) Handles() []render.Widget {
	return f.binding.Handles()
}

func (f *Form[T]) setFlag(apply func(*state)) error {
	f.mu.Lock()
	apply(f.state)
	f.mu.Unlock()
	return f.renderAll()
}

func (f *Form[T]) index(id T) (int, error) {
	idx, ok := f.registry.Index(id)
	if !ok {
		return 0, fmt.Errorf("form %q: %w: %v", f.name, ErrUnknownField, id)
	}
	return idx, nil
}

func (f *Form[T]) disabledLocked(index int) bool {
	return f.registry.At(index).Disabled || !f.state.active
}
