package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"
)

// fakeAsk records the prompt and writes a canned answer into the response.
type fakeAsk struct {
	answer any
	err    error
	prompt survey.Prompt
}

func (f *fakeAsk) ask(p survey.Prompt, response any, _ ...survey.AskOpt) error {
	f.prompt = p
	if f.err != nil {
		return f.err
	}
	switch out := response.(type) {
	case *string:
		*out = f.answer.(string)
	case *bool:
		*out = f.answer.(bool)
	case *[]string:
		*out = f.answer.([]string)
	}
	return nil
}

func newTestDriver(answer any, err error) (*surveyDriver, *fakeAsk, *bytes.Buffer) {
	fake := &fakeAsk{answer: answer, err: err}
	var out bytes.Buffer
	return &surveyDriver{out: &out, ask: fake.ask}, fake, &out
}

func TestSurveyDriver_SelectMapsOptionsToIndices(t *testing.T) {
	d, fake, _ := newTestDriver("Pro", nil)

	idx, err := d.Select(context.Background(), SelectConfig{Message: "Plan", Options: []string{"Free", "Pro"}, DefaultIndex: 0, PageSize: 5})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if idx != 1 {
		t.Fatalf("index = %d, want 1", idx)
	}
	prompt := fake.prompt.(*survey.Select)
	if prompt.Default != "Free" || prompt.PageSize != 5 {
		t.Fatalf("unexpected prompt %+v", prompt)
	}
}

func TestSurveyDriver_MultiSelectKeepsOptionOrder(t *testing.T) {
	d, fake, _ := newTestDriver([]string{"Zig", "Go"}, nil)

	got, err := d.MultiSelect(context.Background(), SelectConfig{Options: []string{"Go", "Rust", "Zig"}, Defaults: []int{2, 7}})
	if err != nil {
		t.Fatalf("multiselect: %v", err)
	}
	if diff := cmp.Diff([]int{0, 2}, got); diff != "" {
		t.Fatalf("indices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Zig"}, fake.prompt.(*survey.MultiSelect).Default); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestSurveyDriver_PasswordHidesDefault(t *testing.T) {
	d, fake, _ := newTestDriver("secret", nil)

	got, err := d.Password(context.Background(), InputConfig{Message: "Password", Default: "leak"})
	if err != nil || got != "secret" {
		t.Fatalf("password = %q, %v", got, err)
	}
	if _, ok := fake.prompt.(*survey.Password); !ok {
		t.Fatalf("expected a password prompt, got %T", fake.prompt)
	}
}

func TestSurveyDriver_Errors(t *testing.T) {
	d, _, _ := newTestDriver(nil, terminal.InterruptErr)
	if _, err := d.Input(context.Background(), InputConfig{}); !errors.Is(err, ErrAborted) {
		t.Fatalf("interrupt should map to ErrAborted, got %v", err)
	}

	d, fake, _ := newTestDriver(true, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Confirm(ctx, ConfirmConfig{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	if fake.prompt != nil {
		t.Fatalf("no prompt should run after cancellation")
	}
}

func TestSurveyDriver_InfoWritesLine(t *testing.T) {
	d, _, out := newTestDriver(nil, nil)
	if err := d.Info(context.Background(), "hello"); err != nil {
		t.Fatalf("info: %v", err)
	}
	if out.String() != "hello\n" {
		t.Fatalf("info output = %q", out.String())
	}
}
