package openapi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/pkg/formdef"
	"github.com/goliatone/go-formstate/pkg/model"
)

const (
	extensionWidget   = "x-formstate-widget"
	extensionPassword = "x-formstate-password"
	extensionOrder    = "x-formstate-order"
)

var (
	// ErrOperationNotFound is returned when no operation has the requested id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned when the operation has no usable object
	// request body schema.
	ErrNoRequestBody = errors.New("openapi: operation has no object request body")
)

// Option configures FromOperation.
type Option func(*builder)

// WithFormName overrides the form name. The operation id is used otherwise.
func WithFormName(name string) Option {
	return func(b *builder) {
		b.name = strings.TrimSpace(name)
	}
}

// WithErrorMessagesVisible sets the display flag of the produced document.
func WithErrorMessagesVisible(visible bool) Option {
	return func(b *builder) {
		b.visible = visible
	}
}

// WithExternalRefs allows the loader to follow references outside the
// document.
func WithExternalRefs(allowed bool) Option {
	return func(b *builder) {
		b.externalRefs = allowed
	}
}

type builder struct {
	name         string
	visible      bool
	externalRefs bool
}

// FromOperation loads an OpenAPI 3 document and turns the request body of
// operationID into a compiled form definition. Properties that have no
// field equivalent (nested objects, arrays of free values) are skipped.
func FromOperation(ctx context.Context, data []byte, operationID string, options ...Option) (*formdef.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b := &builder{}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: b.externalRefs,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	schema := requestSchema(operation.RequestBody)
	if schema == nil || firstSchemaType(schema.Type) != openapi3.TypeObject || len(schema.Properties) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	name := b.name
	if name == "" {
		name = formName(operationID)
	}
	doc := &formdef.Document{
		Name:                 name,
		ErrorMessagesVisible: b.visible,
	}

	required := make(map[string]bool, len(schema.Required))
	for _, prop := range schema.Required {
		required[prop] = true
	}
	for _, prop := range propertyOrder(schema) {
		ref := schema.Properties[prop]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok := buildField(prop, ref.Value, required[prop])
		if !ok {
			continue
		}
		doc.Fields = append(doc.Fields, field)
	}

	if err := doc.Compile(); err != nil {
		return nil, fmt.Errorf("openapi: operation %q: %w", operationID, err)
	}
	return doc, nil
}

// Operations lists every operation id of the document, sorted.
func Operations(ctx context.Context, data []byte) ([]string, error) {
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	var ids []string
	if spec.Paths != nil {
		for _, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for _, op := range item.Operations() {
				if op != nil && op.OperationID != "" {
					ids = append(ids, op.OperationID)
				}
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func propertyOrder(schema *openapi3.Schema) []string {
	var order []string
	seen := make(map[string]bool, len(schema.Properties))
	if raw, ok := schema.Extensions[extensionOrder].([]any); ok {
		for _, entry := range raw {
			name, ok := entry.(string)
			if !ok || seen[name] {
				continue
			}
			if _, exists := schema.Properties[name]; !exists {
				continue
			}
			seen[name] = true
			order = append(order, name)
		}
	}

	rest := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func buildField(name string, schema *openapi3.Schema, required bool) (formdef.Field, bool) {
	label := strings.TrimSpace(schema.Title)
	if label == "" {
		label = humanize(name)
	}
	field := formdef.Field{ID: name, Label: label}
	if desc := strings.TrimSpace(schema.Description); desc != "" {
		field.Custom = map[string]any{"help": desc}
	}

	switch firstSchemaType(schema.Type) {
	case openapi3.TypeString:
		if len(schema.Enum) > 0 {
			choiceField(&field, schema, required)
			return field, true
		}
		textField(&field, schema, required)
		return field, true

	case openapi3.TypeInteger, openapi3.TypeNumber:
		if len(schema.Enum) > 0 {
			choiceField(&field, schema, required)
			return field, true
		}
		numberField(&field, schema)
		return field, true

	case openapi3.TypeBoolean:
		field.Type = string(model.FieldTypeCheckbox)
		field.Options = []string{label}
		if b, ok := schema.Default.(bool); ok && b {
			field.Initial = valuePtr(model.String("0"))
		}
		if required {
			field.Rules = append(field.Rules, formdef.Rule{Kind: formdef.RuleCheckboxMin, Count: 1, Message: label + " must be checked"})
		}
		return field, true

	case openapi3.TypeArray:
		if schema.Items == nil || schema.Items.Value == nil || len(schema.Items.Value.Enum) == 0 {
			return formdef.Field{}, false
		}
		field.Type = string(model.FieldTypeCheckbox)
		field.Options = enumLabels(schema.Items.Value.Enum)
		if defaults, ok := schema.Default.([]any); ok {
			var picked []int
			for _, d := range defaults {
				if idx := enumIndex(schema.Items.Value.Enum, d); idx >= 0 {
					picked = append(picked, idx)
				}
			}
			field.Initial = valuePtr(model.String(model.FormatCheckbox(picked)))
		}
		minItems := int(schema.MinItems)
		if required && minItems == 0 {
			minItems = 1
		}
		if minItems > 0 {
			field.Rules = append(field.Rules, formdef.Rule{
				Kind:    formdef.RuleCheckboxMin,
				Count:   minItems,
				Message: fmt.Sprintf("Select at least %d", minItems),
			})
		}
		return field, true

	default:
		return formdef.Field{}, false
	}
}

func textField(field *formdef.Field, schema *openapi3.Schema, required bool) {
	field.Type = string(model.FieldTypeText)
	if s, ok := schema.Default.(string); ok {
		field.Initial = valuePtr(model.String(s))
	}
	if schema.Format == "password" || extensionBool(schema.Extensions, extensionPassword) {
		if field.Custom == nil {
			field.Custom = make(map[string]any)
		}
		field.Custom["password"] = true
	}

	if required {
		field.Rules = append(field.Rules, formdef.Rule{Kind: formdef.RuleNotEmpty, Message: field.Label + " is required"})
	} else {
		field.Optional = true
	}
	if schema.MinLength > 0 {
		field.Rules = append(field.Rules, formdef.Rule{
			Kind:    formdef.RuleMinLength,
			Length:  int(schema.MinLength),
			Message: fmt.Sprintf("Use at least %d characters", schema.MinLength),
		})
	}
	if schema.MaxLength != nil {
		field.Rules = append(field.Rules, formdef.Rule{
			Kind:    formdef.RuleMaxLength,
			Length:  int(*schema.MaxLength),
			Message: fmt.Sprintf("Use at most %d characters", *schema.MaxLength),
		})
	}
	if schema.Pattern != "" {
		field.Rules = append(field.Rules, formdef.Rule{Kind: formdef.RuleRegex, Pattern: schema.Pattern, Message: field.Label + " has an invalid format"})
	}
	if schema.Format == "email" {
		field.Rules = append(field.Rules, formdef.Rule{Kind: formdef.RuleEmail, Message: "Enter a valid email address"})
	}
}

func numberField(field *formdef.Field, schema *openapi3.Schema) {
	field.Type = string(model.FieldTypeText)
	if n, ok := schema.Default.(float64); ok {
		field.Initial = valuePtr(model.Number(n))
	} else {
		field.Initial = valuePtr(model.Int(0))
	}

	switch {
	case schema.Min != nil && schema.Max != nil:
		lo, hi := *schema.Min, *schema.Max
		field.Rules = append(field.Rules, formdef.Rule{
			Kind:    formdef.RuleRange,
			Min:     &lo,
			Max:     &hi,
			Message: fmt.Sprintf("Enter a value between %s and %s", formatNumber(lo), formatNumber(hi)),
		})
	case schema.Min != nil:
		lo := *schema.Min
		field.Rules = append(field.Rules, formdef.Rule{Kind: formdef.RuleMin, Min: &lo, Message: "Enter at least " + formatNumber(lo)})
	case schema.Max != nil:
		hi := *schema.Max
		field.Rules = append(field.Rules, formdef.Rule{Kind: formdef.RuleMax, Max: &hi, Message: "Enter at most " + formatNumber(hi)})
	}
}

// choiceField stores the selected option index. Required choices without a
// default get a leading placeholder option that fails validation.
func choiceField(field *formdef.Field, schema *openapi3.Schema, required bool) {
	field.Type = string(model.FieldTypeSelect)
	if widget, _ := schema.Extensions[extensionWidget].(string); widget == string(model.FieldTypeRadio) {
		field.Type = string(model.FieldTypeRadio)
	}

	options := enumLabels(schema.Enum)
	selected := enumIndex(schema.Enum, schema.Default)
	if required && selected < 0 {
		options = append([]string{"Choose " + strings.ToLower(field.Label)}, options...)
		field.Rules = append(field.Rules, formdef.Rule{Kind: formdef.RuleMin, Min: floatPtr(1), Message: "Choose a " + strings.ToLower(field.Label)})
		selected = 0
	} else if selected < 0 {
		selected = 0
	}
	field.Options = options
	field.Initial = valuePtr(model.Int(selected))
}

func enumLabels(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		switch n := v.(type) {
		case float64:
			out = append(out, formatNumber(n))
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}

func enumIndex(values []any, target any) int {
	if target == nil {
		return -1
	}
	for i, v := range values {
		if fmt.Sprint(v) == fmt.Sprint(target) {
			return i
		}
	}
	return -1
}

func extensionBool(ext map[string]any, key string) bool {
	switch v := ext[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// humanize turns "first_name" or "firstName" into "First name".
func humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || r == '-' || r == '.':
			b.WriteRune(' ')
		case unicode.IsUpper(r) && i > 0:
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	out := strings.Join(strings.Fields(b.String()), " ")
	if out == "" {
		return name
	}
	runes := []rune(out)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// formName keeps the operation id usable as a DOM id prefix.
func formName(operationID string) string {
	var b strings.Builder
	for _, r := range operationID {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "form"
	}
	return b.String()
}

func formatNumber(n float64) string {
	if n == math.Trunc(n) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%g", n)
}

func valuePtr(v model.Value) *model.Value {
	return &v
}

func floatPtr(f float64) *float64 {
	return &f
}
