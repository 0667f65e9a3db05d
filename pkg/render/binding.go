package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-formstate/pkg/model"
)

// ErrComponentNotFound is returned when a widget handle is requested for an
// id outside the bound field set.
var ErrComponentNotFound = errors.New("render: could not find field component")

// Binding holds the resolved renderer and the latest widget handle of every
// field of one form instance.
type Binding[T comparable] struct {
	form      string
	ids       []T
	index     map[T]int
	renderers []Renderer

	mu        sync.RWMutex
	handles   []Widget
	sequences []uint64
}

// Bind resolves a renderer for every field. It fails on the first type tag
// without a registered renderer, so a form can never come up with a field
// that silently renders nothing.
func Bind[T comparable](form string, ids []T, kinds []model.FieldType, registry *Registry) (*Binding[T], error) {
	if registry == nil {
		return nil, fmt.Errorf("render: registry is required")
	}
	if len(ids) != len(kinds) {
		return nil, fmt.Errorf("render: %d ids but %d field types", len(ids), len(kinds))
	}

	b := &Binding[T]{
		form:      form,
		ids:       append([]T(nil), ids...),
		index:     make(map[T]int, len(ids)),
		renderers: make([]Renderer, len(ids)),
		handles:   make([]Widget, len(ids)),
		sequences: make([]uint64, len(ids)),
	}
	for i, kind := range kinds {
		renderer, err := registry.Get(kind)
		if err != nil {
			return nil, fmt.Errorf("render: bind field %v of form %q: %w", ids[i], form, err)
		}
		b.renderers[i] = renderer
		b.index[ids[i]] = i
	}
	return b, nil
}

// Len returns the number of bound fields.
func (b *Binding[T]) Len() int {
	return len(b.ids)
}

// Render draws the field at index and stores the resulting handle. Only
// that field's handle changes. The identifiers in ctx are filled in by the
// binding. When a render with a newer ctx.Sequence already finished, the
// result is discarded and the stored handle is returned.
func (b *Binding[T]) Render(index int, ctx Context) (Widget, error) {
	if index < 0 || index >= len(b.renderers) {
		return Widget{}, fmt.Errorf("render: field index %d out of range", index)
	}
	ctx.Form = b.form
	ctx.Index = index
	ctx.FieldID = InputID(b.form, index)
	ctx.ErrorID = ErrorID(ctx.FieldID)

	// The renderer runs unlocked so it may call back into OnChange.
	widget, err := b.renderers[index].Render(ctx)
	if err != nil {
		return Widget{}, fmt.Errorf("render: field %v: %w", b.ids[index], err)
	}
	if widget.ID == "" {
		widget.ID = ctx.FieldID
	}
	if widget.ErrorID == "" {
		widget.ErrorID = ctx.ErrorID
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if ctx.Sequence != 0 && ctx.Sequence < b.sequences[index] {
		return b.handles[index], nil
	}
	widget.Revision = b.handles[index].Revision + 1
	b.handles[index] = widget
	b.sequences[index] = ctx.Sequence
	return widget, nil
}

// Handle returns the latest widget of the field identified by id.
func (b *Binding[T]) Handle(id T) (Widget, error) {
	idx, ok := b.index[id]
	if !ok {
		return Widget{}, fmt.Errorf("%w: %v", ErrComponentNotFound, id)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.handles[idx], nil
}

// Handles returns every widget in definition order.
func (b *Binding[T]) Handles() []Widget {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Widget(nil), b.handles...)
}

// Owns reports whether domID is one of this form's rendered inputs.
func (b *Binding[T]) Owns(domID string) bool {
	idx, err := ParseInputID(b.form, domID)
	if err != nil {
		return false
	}
	if idx >= len(b.ids) {
		return false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.handles[idx].Revision > 0
}
