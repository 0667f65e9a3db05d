package tui

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
)

// Custom keys understood by the terminal widgets.
const (
	CustomPassword = "password"
	CustomHelp     = "help"
)

// Prompt is the widget payload stored in render.Widget.Data. Sessions read
// it to build the next question and answer through OnChange.
type Prompt struct {
	Label        string
	Type         model.FieldType
	Options      []string
	Value        model.Value
	Password     bool
	Help         string
	Disabled     bool
	ErrorMessage string
	OnChange     func(model.Value) error
}

// Renderer draws fields as terminal prompts.
type Renderer struct {
	driver        PromptDriver
	outputFormat  OutputFormat
	maxRetries    int
	confirmSubmit bool
	theme         Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a renderer. The survey driver is used unless
// WithPromptDriver supplies another one.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		maxRetries:   defaultMaxRetries,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Register installs a renderer for every builtin field type.
func Register(registry *render.Registry, options ...Option) (*Renderer, error) {
	if registry == nil {
		return nil, fmt.Errorf("tui: registry is required")
	}
	r, err := New(options...)
	if err != nil {
		return nil, err
	}
	for _, kind := range model.BuiltinFieldTypes {
		if err := registry.Register(kind, r); err != nil {
			return nil, fmt.Errorf("tui: %w", err)
		}
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "tui"
}

// OutputFormat returns the configured serialization format.
func (r *Renderer) OutputFormat() OutputFormat {
	return r.outputFormat
}

// Render implements render.Renderer. Markup is a one line summary suitable
// for printing; Data carries the Prompt.
func (r *Renderer) Render(ctx render.Context) (render.Widget, error) {
	if !ctx.Type.Known() {
		return render.Widget{}, fmt.Errorf("tui: unsupported field type %q", ctx.Type)
	}
	prompt := Prompt{
		Label:        ctx.Label,
		Type:         ctx.Type,
		Options:      append([]string(nil), ctx.Options...),
		Value:        ctx.Value,
		Password:     ctx.CustomBool(CustomPassword),
		Help:         ctx.CustomString(CustomHelp),
		Disabled:     ctx.Disabled,
		ErrorMessage: ctx.ErrorMessage,
		OnChange:     ctx.OnChange,
	}
	return render.Widget{
		ID:      ctx.FieldID,
		ErrorID: ctx.ErrorID,
		Markup:  r.summary(prompt),
		Data:    prompt,
	}, nil
}

func (r *Renderer) summary(p Prompt) string {
	var b strings.Builder
	b.WriteString(p.Label)
	b.WriteString(": ")
	b.WriteString(displayValue(p))
	if p.Disabled {
		b.WriteString(" (disabled)")
	}
	if p.ErrorMessage != "" {
		b.WriteString(" ")
		b.WriteString(r.theme.ErrorPrefix)
		b.WriteString(p.ErrorMessage)
	}
	return b.String()
}

func displayValue(p Prompt) string {
	raw := p.Value.String()
	switch {
	case p.Password:
		return strings.Repeat("*", len([]rune(raw)))
	case p.Type == model.FieldTypeCheckbox:
		selected, err := model.ParseCheckbox(raw)
		if err != nil {
			return raw
		}
		labels := make([]string, 0, len(selected))
		for _, idx := range selected {
			if idx < len(p.Options) {
				labels = append(labels, p.Options[idx])
			}
		}
		return "[" + strings.Join(labels, ", ") + "]"
	case p.Type == model.FieldTypeSelect || p.Type == model.FieldTypeRadio:
		if idx, ok := optionIndex(p.Value, len(p.Options)); ok {
			return p.Options[idx]
		}
		return raw
	default:
		return raw
	}
}
