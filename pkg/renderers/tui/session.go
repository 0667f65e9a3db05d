package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
)

// Session walks one form instance through the prompt driver.
type Session[T comparable] struct {
	renderer *Renderer
	form     *form.Form[T]
}

// NewSession binds a renderer to a form whose fields were rendered by it.
func NewSession[T comparable](r *Renderer, f *form.Form[T]) (*Session[T], error) {
	if r == nil || f == nil {
		return nil, errors.New("tui: renderer and form are required")
	}
	return &Session[T]{renderer: r, form: f}, nil
}

// Fill prompts every enabled field in order, re-asking a field while it is
// invalid, then validates the whole form and re-asks the fields that still
// fail (cross-field rules) until the form is valid or retries run out.
func (s *Session[T]) Fill(ctx context.Context) error {
	if !s.form.Active() {
		return ErrFormDisabled
	}

	fields := s.form.Fields()
	for i := range fields {
		if err := s.fillField(ctx, i, false); err != nil {
			return err
		}
	}

	for attempt := 0; ; attempt++ {
		valid, err := s.form.Validate()
		if err != nil {
			return err
		}
		if valid {
			break
		}
		if attempt >= s.renderer.maxRetries {
			return fmt.Errorf("%w: %v", ErrRetriesExhausted, s.form.InvalidFields())
		}
		for _, id := range s.form.InvalidFields() {
			if err := s.fillField(ctx, indexOfID(fields, id), true); err != nil {
				return err
			}
		}
	}

	if !s.renderer.confirmSubmit {
		return nil
	}
	ok, err := s.renderer.driver.Confirm(ctx, ConfirmConfig{Message: "Submit " + s.form.Name() + "?", Default: true})
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotSubmitted
	}
	return nil
}

// fillField asks for one field until it is valid. Messages are printed only
// when the field is being asked again.
func (s *Session[T]) fillField(ctx context.Context, index int, revisit bool) error {
	if index < 0 || index >= len(s.form.Handles()) {
		return fmt.Errorf("tui: field index %d out of range", index)
	}
	id := s.form.Fields()[index].ID

	for try := 0; ; try++ {
		prompt, ok := s.form.Handles()[index].Data.(Prompt)
		if !ok {
			return fmt.Errorf("tui: field %v was not rendered by the tui renderer", id)
		}
		if prompt.Disabled {
			return nil
		}
		if (try > 0 || revisit) && prompt.ErrorMessage != "" {
			if err := s.renderer.info(ctx, s.renderer.theme.ErrorPrefix+prompt.ErrorMessage); err != nil {
				return err
			}
		}

		value, err := s.ask(ctx, prompt)
		if err != nil {
			return err
		}
		if prompt.OnChange == nil {
			return fmt.Errorf("tui: field %v has no change callback", id)
		}
		if err := prompt.OnChange(value); err != nil {
			return err
		}

		state, err := s.form.FieldState(id)
		if err != nil {
			return err
		}
		if state.Valid {
			return nil
		}
		if try+1 >= s.renderer.maxRetries {
			return fmt.Errorf("%w: %v", ErrRetriesExhausted, id)
		}
	}
}

func (s *Session[T]) ask(ctx context.Context, p Prompt) (model.Value, error) {
	driver := s.renderer.driver
	switch p.Type {
	case model.FieldTypeText:
		cfg := InputConfig{Message: p.Label, Default: p.Value.String(), Help: p.Help}
		var (
			answer string
			err    error
		)
		if p.Password {
			cfg.Default = ""
			answer, err = driver.Password(ctx, cfg)
		} else {
			answer, err = driver.Input(ctx, cfg)
		}
		if err != nil {
			return model.Value{}, err
		}
		return textValue(p.Value, answer), nil

	case model.FieldTypeSelect, model.FieldTypeRadio:
		def, _ := optionIndex(p.Value, len(p.Options))
		idx, err := driver.Select(ctx, SelectConfig{Message: p.Label, Options: p.Options, DefaultIndex: def, Help: p.Help})
		if err != nil {
			return model.Value{}, err
		}
		if idx < 0 || idx >= len(p.Options) {
			return model.Value{}, fmt.Errorf("tui: option %d out of range for %q", idx, p.Label)
		}
		if p.Value.IsNumber() {
			return model.Int(idx), nil
		}
		return model.String(strconv.Itoa(idx)), nil

	case model.FieldTypeCheckbox:
		defaults, err := model.ParseCheckbox(p.Value.String())
		if err != nil {
			defaults = nil
		}
		picked, err := driver.MultiSelect(ctx, SelectConfig{Message: p.Label, Options: p.Options, Defaults: defaults, Help: p.Help})
		if err != nil {
			return model.Value{}, err
		}
		return model.String(model.FormatCheckbox(picked)), nil

	default:
		return model.Value{}, fmt.Errorf("tui: unsupported field type %q", p.Type)
	}
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

// textValue keeps numeric fields numeric when the answer parses.
func textValue(current model.Value, answer string) model.Value {
	if current.IsNumber() {
		if n, err := strconv.ParseFloat(strings.TrimSpace(answer), 64); err == nil {
			return model.Number(n)
		}
	}
	return model.String(answer)
}

func optionIndex(v model.Value, n int) (int, bool) {
	var idx int
	if v.IsNumber() {
		f, _ := v.Num()
		if f != math.Trunc(f) {
			return 0, false
		}
		idx = int(f)
	} else {
		raw, _ := v.Str()
		parsed, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return 0, false
		}
		idx = parsed
	}
	if idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}

func indexOfID[T comparable](fields []model.FieldDefinition[T], id T) int {
	for i, def := range fields {
		if def.ID == id {
			return i
		}
	}
	return -1
}
