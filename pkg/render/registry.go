package render

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-formstate/pkg/model"
)

// ErrRendererNotFound is returned when no renderer is registered for a type
// tag.
var ErrRendererNotFound = errors.New("render: no renderer registered for field type")

// Registry stores renderers by field type tag, with duplication safeguards.
type Registry struct {
	mu        sync.RWMutex
	renderers map[model.FieldType]Renderer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[model.FieldType]Renderer),
	}
}

// Register adds a renderer for kind. Duplicate kinds return an error.
func (r *Registry) Register(kind model.FieldType, renderer Renderer) error {
	kind, err := checkEntry(kind, renderer)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[kind]; exists {
		return fmt.Errorf("render: renderer for %q already registered", kind)
	}
	r.renderers[kind] = renderer
	return nil
}

// Replace registers renderer for kind, overriding any existing entry.
func (r *Registry) Replace(kind model.FieldType, renderer Renderer) error {
	kind, err := checkEntry(kind, renderer)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.renderers[kind] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(kind model.FieldType, renderer Renderer) {
	if err := r.Register(kind, renderer); err != nil {
		panic(err)
	}
}

// Get retrieves the renderer for kind.
func (r *Registry) Get(kind model.FieldType) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[kind.Normalize()]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, kind)
	}
	return renderer, nil
}

// Has reports whether a renderer is registered for kind.
func (r *Registry) Has(kind model.FieldType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[kind.Normalize()]
	return ok
}

// Types returns the registered tags sorted alphabetically.
func (r *Registry) Types() []model.FieldType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]model.FieldType, 0, len(r.renderers))
	for kind := range r.renderers {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func checkEntry(kind model.FieldType, renderer Renderer) (model.FieldType, error) {
	if renderer == nil {
		return "", fmt.Errorf("render: renderer is required")
	}
	kind = kind.Normalize()
	if kind == "" {
		return "", fmt.Errorf("render: field type is required")
	}
	return kind, nil
}
