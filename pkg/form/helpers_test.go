package form_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
)

// recorder is a renderer that remembers every context it was asked to draw.
type recorder struct {
	mu    sync.Mutex
	calls map[string]int
	last  map[string]render.Context
}

func newRecorder() *recorder {
	return &recorder{
		calls: make(map[string]int),
		last:  make(map[string]render.Context),
	}
}

func (r *recorder) Render(ctx render.Context) (render.Widget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[ctx.FieldID]++
	r.last[ctx.FieldID] = ctx

	var b strings.Builder
	fmt.Fprintf(&b, `<input id="%s" value="%s"`, ctx.FieldID, ctx.Value)
	if ctx.Disabled {
		b.WriteString(" disabled")
	}
	b.WriteString(">")
	if ctx.ErrorMessage != "" {
		fmt.Fprintf(&b, `<span id="%s">%s</span>`, ctx.ErrorID, ctx.ErrorMessage)
	}
	return render.Widget{Markup: b.String()}, nil
}

func (r *recorder) count(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[id]
}

func (r *recorder) context(id string) render.Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last[id]
}

func newRegistry(t *testing.T, renderer render.Renderer) *render.Registry {
	t.Helper()
	reg := render.NewRegistry()
	for _, kind := range model.BuiltinFieldTypes {
		if err := reg.Register(kind, renderer); err != nil {
			t.Fatalf("register %s: %v", kind, err)
		}
	}
	return reg
}

func values(t *testing.T, vs []model.Value) []string {
	t.Helper()
	out := make([]string, len(vs))
	for i, v := range vs {
		kind := "s"
		if v.IsNumber() {
			kind = "n"
		}
		out[i] = kind + ":" + v.String()
	}
	return out
}
