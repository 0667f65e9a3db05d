package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedCheckbox reports a checkbox value that is not a comma-joined
// list of distinct non-negative integers.
var ErrMalformedCheckbox = errors.New("model: malformed checkbox value")

const checkboxSeparator = ","

// ParseCheckbox decodes the checkbox wire format into option indices,
// preserving insertion order. The empty string is the empty selection.
func ParseCheckbox(raw string) ([]int, error) {
	if raw == "" {
		return []int{}, nil
	}
	parts := strings.Split(raw, checkboxSeparator)
	out := make([]int, 0, len(parts))
	seen := make(map[int]struct{}, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedCheckbox, raw)
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: negative index %d", ErrMalformedCheckbox, idx)
		}
		if _, dup := seen[idx]; dup {
			return nil, fmt.Errorf("%w: duplicate index %d", ErrMalformedCheckbox, idx)
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	return out, nil
}

// FormatCheckbox encodes option indices in the order given. Duplicates keep
// their first occurrence.
func FormatCheckbox(indices []int) string {
	if len(indices) == 0 {
		return ""
	}
	parts := make([]string, 0, len(indices))
	seen := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		parts = append(parts, strconv.Itoa(idx))
	}
	return strings.Join(parts, checkboxSeparator)
}

// ToggleCheckbox selects idx (appending it) when absent and deselects it
// when present.
func ToggleCheckbox(raw string, idx int) (string, error) {
	if idx < 0 {
		return "", fmt.Errorf("%w: negative index %d", ErrMalformedCheckbox, idx)
	}
	selected, err := ParseCheckbox(raw)
	if err != nil {
		return "", err
	}
	next := make([]int, 0, len(selected)+1)
	found := false
	for _, existing := range selected {
		if existing == idx {
			found = true
			continue
		}
		next = append(next, existing)
	}
	if !found {
		next = append(next, idx)
	}
	return FormatCheckbox(next), nil
}

// CheckboxSelected reports whether idx is part of the encoded selection.
// Malformed input is treated as an empty selection.
func CheckboxSelected(raw string, idx int) bool {
	selected, err := ParseCheckbox(raw)
	if err != nil {
		return false
	}
	for _, existing := range selected {
		if existing == idx {
			return true
		}
	}
	return false
}
