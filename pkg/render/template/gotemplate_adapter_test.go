package template_test

import (
	"embed"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/goliatone/go-formstate/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formstate/pkg/testsupport"
)

//go:embed testdata/templates/*.tmpl
var templatesFS embed.FS

func newEngine(t *testing.T, options ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(templatesFS)}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplateAppendsExtension(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{"site": "formstate"}))

	out, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("testdata/templates/greeting", map[string]any{"name": "  Ada "}, w)
	})
	if got := strings.TrimSpace(out); got != "Hello Ada from formstate" {
		t.Fatalf("unexpected output %q", got)
	}
	if out != written {
		t.Fatalf("writer received %q, want %q", written, out)
	}
}

func TestEngine_CheckedFilter(t *testing.T) {
	engine := newEngine(t)

	out, err := engine.RenderTemplate("testdata/templates/choices.tmpl", map[string]any{
		"indices": []int{0, 1, 2},
		"value":   "2,0",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := strings.TrimSpace(out); got != "0=on;1=off;2=on;" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	out, err := engine.RenderString("{{ a }}-{{ b }}", map[string]any{"a": "x", "b": 2})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "x-2" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)

	if err := engine.RegisterFilter("formstate_shout", func(in any, _ any) (any, error) {
		s, _ := in.(string)
		return strings.ToUpper(s) + "!", nil
	}); err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("formstate_shout", func(in any, _ any) (any, error) { return in, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}

	out, err := engine.RenderString("{{ word|formstate_shout }}", map[string]any{"word": "hey"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "HEY!" {
		t.Fatalf("unexpected output %q", out)
	}

	if err := engine.RegisterFilter("formstate_fail", func(any, any) (any, error) {
		return nil, errors.New("boom")
	}); err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if _, err := engine.RenderString("{{ word|formstate_fail }}", map[string]any{"word": "x"}); err == nil {
		t.Fatalf("expected filter error to surface")
	}
}

func TestEngine_Errors(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without a template source")
	}

	engine := newEngine(t)
	if _, err := engine.RenderTemplate("testdata/templates/missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
	if _, err := engine.RenderString("{% if %}", nil); err == nil {
		t.Fatalf("expected parse error")
	}
}
