package formdef

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/validation"
)

var (
	// ErrUnknownRule is returned for rule kinds the loader does not know.
	ErrUnknownRule = errors.New("formdef: unknown rule kind")
	// ErrUnsupportedFile is returned for files that are neither JSON nor YAML.
	ErrUnsupportedFile = errors.New("formdef: unsupported file extension")
)

// LoadFS reads and parses one definition file from fsys.
func LoadFS(fsys fs.FS, path string) (*Document, error) {
	if fsys == nil {
		return nil, errors.New("formdef: filesystem is required")
	}
	if !isDefinitionFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("formdef: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFile reads and parses a definition from disk.
func LoadFile(path string) (*Document, error) {
	if !isDefinitionFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formdef: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a JSON or YAML definition and compiles it. Source is only
// used in error messages.
func Parse(data []byte, source string) (*Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("formdef: file %s is empty", source)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = Document{}
		if yerr := yaml.Unmarshal(data, &doc); yerr != nil {
			return nil, fmt.Errorf("formdef: parse %s: invalid JSON or YAML: %w", source, yerr)
		}
	}
	doc.source = source
	if err := doc.Compile(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Compile checks the document and builds its field definitions. Parse calls
// it; documents assembled in code must call it before Definitions.
func (d *Document) Compile() error {
	source := d.source
	if source == "" {
		source = d.Name
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("formdef: %s: name is required", source)
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("formdef: %s: at least one field is required", source)
	}

	seen := make(map[string]struct{}, len(d.Fields))
	defs := make([]model.FieldDefinition[string], 0, len(d.Fields))
	for i, field := range d.Fields {
		id := strings.TrimSpace(field.ID)
		if id == "" {
			return fmt.Errorf("formdef: %s: field %d has no id", source, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("formdef: %s: %w %q", source, model.ErrDuplicateID, id)
		}
		seen[id] = struct{}{}

		validator, err := field.Validator()
		if err != nil {
			return fmt.Errorf("formdef: %s: field %q: %w", source, id, err)
		}

		def := model.FieldDefinition[string]{
			ID:        id,
			Label:     field.Label,
			Type:      model.FieldType(field.Type).Normalize(),
			Validator: validator,
			Options:   append([]string(nil), field.Options...),
			Disabled:  field.Disabled,
			Custom:    field.Custom,
		}
		if field.Initial != nil {
			def.Initial = *field.Initial
		}
		defs = append(defs, def)
	}

	// Run the registry checks now so bad documents fail at load time.
	if _, err := model.NewRegistry(defs); err != nil {
		return fmt.Errorf("formdef: %s: %w", source, err)
	}
	for _, def := range defs {
		for _, ref := range validation.References(def.Validator) {
			id, _ := ref.(string)
			if _, ok := seen[id]; !ok {
				return fmt.Errorf("formdef: %s: field %q references %v: %w", source, def.ID, ref, model.ErrUnknownField)
			}
		}
	}
	d.defs = defs
	return nil
}

// Source returns the path the document was parsed from.
func (d *Document) Source() string {
	return d.source
}

// Definitions returns a fresh copy of the compiled field definitions.
func (d *Document) Definitions() []model.FieldDefinition[string] {
	out := make([]model.FieldDefinition[string], len(d.defs))
	for i, def := range d.defs {
		def.Options = append([]string(nil), def.Options...)
		if def.Custom != nil {
			custom := make(map[string]any, len(def.Custom))
			for k, v := range def.Custom {
				custom[k] = v
			}
			def.Custom = custom
		}
		out[i] = def
	}
	return out
}

// Options returns the form options implied by the document.
func (d *Document) Options() []form.Option {
	return []form.Option{form.WithErrorMessagesVisible(d.ErrorMessagesVisible)}
}

// Factory adapts a compiled document to a form factory. The props are
// ignored: every mount gets the same definitions.
func Factory[P any](d *Document) form.Factory[string, P] {
	return func(P) []model.FieldDefinition[string] {
		return d.Definitions()
	}
}

// New mounts a form straight from the document.
func (d *Document) New(renderers *render.Registry, options ...form.Option) (*form.Form[string], error) {
	return form.New(d.Name, d.Definitions(), renderers, append(d.Options(), options...)...)
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
