package cli

import (
	"context"
	"errors"

	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

var errNoPrompts = errors.New("cli: prompts are not available for this command")

// nopDriver backs renderers that only produce summaries.
type nopDriver struct{}

func (nopDriver) Input(context.Context, tui.InputConfig) (string, error) { return "", errNoPrompts }
func (nopDriver) Password(context.Context, tui.InputConfig) (string, error) {
	return "", errNoPrompts
}
func (nopDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return false, errNoPrompts
}
func (nopDriver) Select(context.Context, tui.SelectConfig) (int, error) { return 0, errNoPrompts }
func (nopDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	return nil, errNoPrompts
}
func (nopDriver) Info(context.Context, string) error { return nil }
