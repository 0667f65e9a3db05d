package vanilla

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	rendertemplate "github.com/goliatone/go-formstate/pkg/render/template"
	gotemplate "github.com/goliatone/go-formstate/pkg/render/template/gotemplate"
)

// Custom keys understood by the widgets.
const (
	CustomPassword    = "password"
	CustomPlaceholder = "placeholder"
	CustomHelp        = "help"
)

const formTemplate = "templates/form.tmpl"

var widgetTemplates = map[model.FieldType]string{
	model.FieldTypeText:     "templates/text.tmpl",
	model.FieldTypeSelect:   "templates/select.tmpl",
	model.FieldTypeRadio:    "templates/radio.tmpl",
	model.FieldTypeCheckbox: "templates/checkbox.tmpl",
}

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation. It
// must provide the "checked" filter used by the checkbox template.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies a go-theme renderer configuration. Partials keyed by
// "forms.text", "forms.select", "forms.radio", "forms.checkbox" or
// "forms.form" replace the matching template; CSSVars are emitted as an
// inline style on every widget.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// Renderer draws the four builtin field kinds as HTML.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     themeContext
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, theme: buildThemeContext(cfg.theme)}, nil
}

// Register installs r for every builtin field type.
func Register(registry *render.Registry, options ...Option) (*Renderer, error) {
	if registry == nil {
		return nil, fmt.Errorf("vanilla renderer: registry is required")
	}
	r, err := New(options...)
	if err != nil {
		return nil, err
	}
	for _, kind := range model.BuiltinFieldTypes {
		if err := registry.Register(kind, r); err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render implements render.Renderer.
func (r *Renderer) Render(ctx render.Context) (render.Widget, error) {
	if r.templates == nil {
		return render.Widget{}, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	name, ok := widgetTemplates[ctx.Type]
	if !ok {
		return render.Widget{}, fmt.Errorf("vanilla renderer: unsupported field type %q", ctx.Type)
	}
	name = r.theme.partial(string(ctx.Type), name)

	markup, err := r.templates.RenderTemplate(name, map[string]any{
		"field": fieldView(ctx),
		"theme": r.theme.view(),
	})
	if err != nil {
		return render.Widget{}, fmt.Errorf("vanilla renderer: render %s field %s: %w", ctx.Type, ctx.FieldID, err)
	}
	return render.Widget{
		ID:      ctx.FieldID,
		ErrorID: ctx.ErrorID,
		Markup:  strings.TrimSpace(markup),
	}, nil
}

// Page wraps already rendered widgets in a form element.
func (r *Renderer) Page(form string, widgets []render.Widget, submit string, disabled bool) (string, error) {
	markups := make([]string, 0, len(widgets))
	for _, w := range widgets {
		markups = append(markups, w.Markup)
	}
	out, err := r.templates.RenderTemplate(r.theme.partial("form", formTemplate), map[string]any{
		"form": map[string]any{
			"name":     form,
			"widgets":  markups,
			"submit":   submit,
			"disabled": disabled,
		},
		"theme": r.theme.view(),
	})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render form %s: %w", form, err)
	}
	return strings.TrimSpace(out), nil
}

func fieldView(ctx render.Context) map[string]any {
	value := ctx.Value.String()
	options := make([]map[string]any, 0, len(ctx.Options))
	for i, label := range ctx.Options {
		options = append(options, map[string]any{
			"index":    i,
			"label":    label,
			"selected": optionSelected(ctx.Type, value, i),
		})
	}
	return map[string]any{
		"id":            ctx.FieldID,
		"error_id":      ctx.ErrorID,
		"label":         sanitize(ctx.Label),
		"help":          sanitize(ctx.CustomString(CustomHelp)),
		"placeholder":   ctx.CustomString(CustomPlaceholder),
		"password":      ctx.CustomBool(CustomPassword),
		"type":          string(ctx.Type),
		"value":         value,
		"options":       options,
		"disabled":      ctx.Disabled,
		"error_message": ctx.ErrorMessage,
	}
}

func optionSelected(kind model.FieldType, value string, index int) bool {
	switch kind {
	case model.FieldTypeCheckbox:
		return model.CheckboxSelected(value, index)
	case model.FieldTypeSelect, model.FieldTypeRadio:
		return strings.TrimSpace(value) == strconv.Itoa(index)
	default:
		return false
	}
}

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// sanitize keeps inline formatting in labels and help text and strips
// everything else.
func sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	labelPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "small", "abbr")
		policy.AllowAttrs("title").OnElements("abbr")
		labelPolicy = policy
	})
	return strings.TrimSpace(labelPolicy.Sanitize(trimmed))
}

type themeContext struct {
	name     string
	variant  string
	partials map[string]string
	style    string
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	return themeContext{
		name:     cfg.Theme,
		variant:  cfg.Variant,
		partials: copyStringMap(cfg.Partials),
		style:    cssVarsStyle(cfg.CSSVars),
	}
}

func (t themeContext) partial(key, fallback string) string {
	if name := strings.TrimSpace(t.partials["forms."+key]); name != "" {
		return name
	}
	return fallback
}

func (t themeContext) view() map[string]any {
	return map[string]any{
		"name":    t.name,
		"variant": t.variant,
		"style":   t.style,
	}
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}
