package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/formdef"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

// Version is reported by --version.
var Version = "0.1.0"

// Option customises the command tree, mostly for tests.
type Option func(*app)

// WithStreams redirects command output and log output.
func WithStreams(out, errOut io.Writer) Option {
	return func(a *app) {
		a.out = out
		a.errOut = errOut
	}
}

// WithPromptDriver replaces the terminal driver used by fill.
func WithPromptDriver(driver tui.PromptDriver) Option {
	return func(a *app) {
		a.driver = driver
	}
}

type app struct {
	out    io.Writer
	errOut io.Writer
	driver tui.PromptDriver

	configFile string
	envFile    string

	cfg    Config
	logger *zap.Logger
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCommand builds the formstate command tree.
func NewRootCommand(options ...Option) *cobra.Command {
	a := &app{out: os.Stdout, errOut: os.Stderr}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}

	root := &cobra.Command{
		Use:   "formstate",
		Short: "Render, fill and inspect declarative forms",
		Long: `formstate loads a form definition (YAML/JSON, or the request body of an
OpenAPI operation), mounts it and either renders it as HTML, fills it in the
terminal, or reports its validation state.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(newViper(), cmd, a.envFile, a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = newLogger(a.errOut, cfg.LogLevel)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (YAML)")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading FORMSTATE_* variables")
	flags.StringP("definition", "d", "", "form definition file (.yaml, .yml or .json)")
	flags.String("openapi", "", "OpenAPI document path or URL")
	flags.String("operation", "", "operation id whose request body becomes the form")
	flags.StringArray("set", nil, "initial value as id=value (repeatable)")
	flags.Bool("show-errors", false, "show validation messages")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.Duration("timeout", 0, "timeout for fetching remote OpenAPI documents")

	root.AddCommand(newRenderCommand(a), newFillCommand(a), newInspectCommand(a))
	return root
}

// loadDocument resolves the form definition from --definition or
// --openapi/--operation.
func (a *app) loadDocument(ctx context.Context) (*formdef.Document, error) {
	switch {
	case a.cfg.Definition != "":
		doc, err := formdef.LoadFile(a.cfg.Definition)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("loaded definition", zap.String("path", doc.Source()), zap.Int("fields", len(doc.Fields)))
		return doc, nil

	case a.cfg.OpenAPI != "":
		if a.cfg.Operation == "" {
			return nil, errors.New("cli: --operation is required with --openapi")
		}
		data, err := openapi.Fetch(ctx, a.cfg.OpenAPI, openapi.WithTimeout(a.cfg.Timeout))
		if err != nil {
			return nil, err
		}
		doc, err := openapi.FromOperation(ctx, data, a.cfg.Operation)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("built definition from openapi",
			zap.String("source", a.cfg.OpenAPI),
			zap.String("operation", a.cfg.Operation),
			zap.Int("fields", len(doc.Fields)),
		)
		return doc, nil

	default:
		return nil, errors.New("cli: either --definition or --openapi is required")
	}
}

// formOptions combines the document options with flags and --set values.
func (a *app) formOptions(doc *formdef.Document) ([]form.Option, error) {
	values, err := parseValues(a.cfg.Values, doc.Definitions())
	if err != nil {
		return nil, err
	}
	opts := doc.Options()
	if a.cfg.ShowErrors {
		opts = append(opts, form.WithErrorMessagesVisible(true))
	}
	if len(values) > 0 {
		opts = append(opts, form.WithInitialValues(values))
	}
	return append(opts, form.WithLogger(a.logger)), nil
}

// parseValues turns id=value pairs into values. Fields whose definition
// starts as a number keep numeric values when the text parses.
func parseValues(pairs []string, defs []model.FieldDefinition[string]) (map[string]model.Value, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	numeric := make(map[string]bool, len(defs))
	known := make(map[string]bool, len(defs))
	for _, def := range defs {
		known[def.ID] = true
		numeric[def.ID] = def.Initial.IsNumber()
	}

	out := make(map[string]model.Value, len(pairs))
	for _, pair := range pairs {
		id, raw, ok := strings.Cut(pair, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("cli: invalid value %q, want id=value", pair)
		}
		if !known[id] {
			return nil, fmt.Errorf("cli: %w: %s", model.ErrUnknownField, id)
		}
		if numeric[id] {
			if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
				out[id] = model.Number(n)
				continue
			}
		}
		out[id] = model.String(raw)
	}
	return out, nil
}

func (a *app) write(payload []byte) error {
	if a.cfg.Output == "" {
		_, err := a.out.Write(payload)
		return err
	}
	if err := os.WriteFile(a.cfg.Output, payload, 0o644); err != nil {
		return fmt.Errorf("cli: write output: %w", err)
	}
	a.logger.Info("output written", zap.String("path", a.cfg.Output))
	return nil
}
