package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

const profileDefinition = "testdata/profile.yaml"

func run(t *testing.T, driver tui.PromptDriver, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand(WithStreams(&out, &errOut), WithPromptDriver(driver))
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

type scriptedDriver struct {
	inputs  []string
	selects []int
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	return next, nil
}

func (d *scriptedDriver) Password(ctx context.Context, cfg tui.InputConfig) (string, error) {
	return d.Input(ctx, cfg)
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return true, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return -1, errors.New("no select scripted")
	}
	next := d.selects[0]
	d.selects = d.selects[1:]
	return next, nil
}

func (d *scriptedDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	return nil, errors.New("no multiselect scripted")
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func TestRender_WritesPage(t *testing.T) {
	out, err := run(t, nil, "render", "-d", profileDefinition, "--set", "name=Ada", "--submit", "Save")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`<form id="profile" class="fs-form" novalidate>`,
		`id="profile_field_0" name="profile_field_0" type="text" value="Ada"`,
		`<option value="0" selected>Red</option>`,
		`<button type="submit">Save</button>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "fs-error") {
		t.Errorf("messages should be hidden by default:\n%s", out)
	}
}

func TestRender_ShowErrorsFromEnvironment(t *testing.T) {
	t.Setenv("FORMSTATE_SHOW_ERRORS", "true")

	out, err := run(t, nil, "render", "-d", profileDefinition)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<span id="error_message_profile_field_1" class="fs-error" role="alert">Must be an adult</span>`) {
		t.Fatalf("expected visible age message:\n%s", out)
	}
}

func TestRender_WritesOutputFileAndTheme(t *testing.T) {
	target := filepath.Join(t.TempDir(), "form.html")
	out, err := run(t, nil, "render", "-d", profileDefinition, "-o", target, "--theme", "dark", "--variant", "compact")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Fatalf("stdout should be empty when writing a file, got %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `class="fs-form fs-theme-dark fs-variant-compact"`) {
		t.Fatalf("theme classes missing:\n%s", data)
	}
}

func TestRender_InlinesStylesheet(t *testing.T) {
	out, err := run(t, nil, "render", "-d", profileDefinition, "--styles")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "<style>\n.fs-form {") {
		t.Fatalf("expected leading stylesheet:\n%s", out)
	}
}

func TestFill_EncodesCollectedValues(t *testing.T) {
	driver := &scriptedDriver{inputs: []string{"Ada", "36"}, selects: []int{1}}

	out, err := run(t, driver, "fill", "-d", profileDefinition)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	want := "{\n  \"age\": 36,\n  \"color\": 1,\n  \"name\": \"Ada\"\n}\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_FormEncodedOutput(t *testing.T) {
	driver := &scriptedDriver{inputs: []string{"Ada Lovelace", "36"}, selects: []int{0}}

	out, err := run(t, driver, "fill", "-d", profileDefinition, "--format", "form")
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if diff := cmp.Diff("age=36&color=0&name=Ada+Lovelace\n", out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestInspect_ReportsState(t *testing.T) {
	out, err := run(t, nil, "inspect", "-d", profileDefinition, "--set", "age=12")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, "form profile valid=false invalid=[name age]") {
		t.Fatalf("summary missing:\n%s", out)
	}
	if !strings.Contains(out, "Must be an adult") {
		t.Fatalf("age message missing:\n%s", out)
	}
}

func TestInspect_DefinitionFromEnvFile(t *testing.T) {
	const key = "FORMSTATE_DEFINITION"
	if _, ok := os.LookupEnv(key); ok {
		t.Skipf("%s already set", key)
	}
	t.Cleanup(func() { os.Unsetenv(key) })

	abs, err := filepath.Abs(profileDefinition)
	if err != nil {
		t.Fatal(err)
	}
	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte(key+"="+abs+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	cmd := NewRootCommand(WithStreams(&out, &bytes.Buffer{}))
	cmd.SetArgs([]string{"inspect", "--env-file", envFile, "--set", "name=Ada", "--set", "age=40"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out.String(), "form profile valid=true invalid=[]") {
		t.Fatalf("summary missing:\n%s", out.String())
	}
}

func TestCommands_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no source", args: []string{"inspect"}, want: "--definition or --openapi"},
		{name: "openapi without operation", args: []string{"inspect", "--openapi", "api.yaml"}, want: "--operation is required"},
		{name: "bad pair", args: []string{"inspect", "-d", profileDefinition, "--set", "name"}, want: "want id=value"},
		{name: "unknown field", args: []string{"inspect", "-d", profileDefinition, "--set", "nope=1"}, want: "nope"},
		{name: "bad format", args: []string{"fill", "-d", profileDefinition, "--format", "xml"}, want: "unsupported output format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := &scriptedDriver{inputs: []string{"Ada", "30"}, selects: []int{0}}
			_, err := run(t, driver, tt.args...)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestParseValues_KeepsNumbersForNumericFields(t *testing.T) {
	defs := []model.FieldDefinition[string]{
		{ID: "age", Type: model.FieldTypeText, Initial: model.Int(0)},
		{ID: "zip", Type: model.FieldTypeText, Initial: model.String("")},
	}
	got, err := parseValues([]string{"age=42", "zip=01234", "age=x=1"}, defs)
	if err != nil {
		t.Fatalf("parseValues: %v", err)
	}
	want := map[string]model.Value{
		"age": model.String("x=1"),
		"zip": model.String("01234"),
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b model.Value) bool { return a.Equal(b) })); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestLevelFromString(t *testing.T) {
	for in, want := range map[string]string{"debug": "debug", "WARNING": "warn", "error": "error", "": "info"} {
		if got := levelFromString(in).String(); got != want {
			t.Errorf("levelFromString(%q) = %s, want %s", in, got, want)
		}
	}
}
