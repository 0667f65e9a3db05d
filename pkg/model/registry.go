package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateID is returned when two definitions share an id.
	ErrDuplicateID = errors.New("model: duplicate field id")
	// ErrInvalidDefinition covers malformed definitions (missing type tag,
	// non-primitive custom values).
	ErrInvalidDefinition = errors.New("model: invalid field definition")
)

// Registry is the ordered, immutable list of field definitions for one form
// instance plus the id to position index derived from it.
type Registry[T comparable] struct {
	defs  []FieldDefinition[T]
	index map[T]int
}

// NewRegistry validates and freezes the supplied definitions. The slice is
// copied; later changes by the caller are not observed.
func NewRegistry[T comparable](defs []FieldDefinition[T]) (*Registry[T], error) {
	reg := &Registry[T]{
		defs:  make([]FieldDefinition[T], 0, len(defs)),
		index: make(map[T]int, len(defs)),
	}
	for i, def := range defs {
		if _, exists := reg.index[def.ID]; exists {
			return nil, fmt.Errorf("%w: %v (position %d)", ErrDuplicateID, def.ID, i)
		}
		def.Type = def.Type.Normalize()
		if def.Type == "" {
			return nil, fmt.Errorf("%w: field %v has no type", ErrInvalidDefinition, def.ID)
		}
		for key, value := range def.Custom {
			if strings.TrimSpace(key) == "" {
				return nil, fmt.Errorf("%w: field %v has an empty custom key", ErrInvalidDefinition, def.ID)
			}
			if !isPrimitive(value) {
				return nil, fmt.Errorf("%w: field %v custom %q must be a primitive, got %T", ErrInvalidDefinition, def.ID, key, value)
			}
		}
		reg.index[def.ID] = i
		reg.defs = append(reg.defs, def.clone())
	}
	return reg, nil
}

// Len returns the number of definitions.
func (r *Registry[T]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.defs)
}

// At returns a copy of the definition at position i.
func (r *Registry[T]) At(i int) FieldDefinition[T] {
	return r.defs[i].clone()
}

// Index returns the position of id.
func (r *Registry[T]) Index(id T) (int, bool) {
	if r == nil {
		return 0, false
	}
	idx, ok := r.index[id]
	return idx, ok
}

// Definitions returns a copy of every definition in order.
func (r *Registry[T]) Definitions() []FieldDefinition[T] {
	if r == nil {
		return nil
	}
	out := make([]FieldDefinition[T], len(r.defs))
	for i, def := range r.defs {
		out[i] = def.clone()
	}
	return out
}

// IDs returns the ids in definition order.
func (r *Registry[T]) IDs() []T {
	if r == nil {
		return nil
	}
	out := make([]T, len(r.defs))
	for i, def := range r.defs {
		out[i] = def.ID
	}
	return out
}

// Types returns the type tags in definition order.
func (r *Registry[T]) Types() []FieldType {
	if r == nil {
		return nil
	}
	out := make([]FieldType, len(r.defs))
	for i, def := range r.defs {
		out[i] = def.Type
	}
	return out
}

// Validator returns the validator of the field at position i (nil when the
// definition has none).
func (r *Registry[T]) Validator(i int) Validator {
	return r.defs[i].Validator
}
