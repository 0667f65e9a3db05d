package form_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/validation"
)

type signupField int

const (
	fieldUser signupField = iota
	fieldPassword
	fieldPasswordRepeat
	fieldUnused
)

func signupFields() []model.FieldDefinition[signupField] {
	return []model.FieldDefinition[signupField]{
		{ID: fieldUser, Label: "User", Type: model.FieldTypeText, Validator: validation.MinLength(1, "user required")},
		{ID: fieldPassword, Label: "Password", Type: model.FieldTypeText, Validator: validation.MinLength(1, "password required"), Custom: map[string]any{"password": true}},
		{ID: fieldPasswordRepeat, Label: "Repeat", Type: model.FieldTypeText, Validator: validation.EqualsField(fieldPassword, "passwords differ")},
	}
}

func newSignup(t *testing.T, rec *recorder, options ...form.Option) *form.Form[signupField] {
	t.Helper()
	f, err := form.New("signup", signupFields(), newRegistry(t, rec), options...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

func TestForm_PasswordRepeatScenario(t *testing.T) {
	f := newSignup(t, newRecorder())

	for id, value := range map[signupField]string{
		fieldUser:           "abc",
		fieldPassword:       "pw1",
		fieldPasswordRepeat: "pw1",
	} {
		if err := f.SetFieldValue(id, model.String(value)); err != nil {
			t.Fatalf("set %v: %v", id, err)
		}
	}

	valid, err := f.Validate()
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !valid || !f.Valid() {
		t.Fatalf("expected form to be valid")
	}

	if err := f.SetFieldValue(fieldPasswordRepeat, model.String("pw2")); err != nil {
		t.Fatalf("set repeat: %v", err)
	}
	if diff := cmp.Diff([]signupField{fieldPasswordRepeat}, f.InvalidFields()); diff != "" {
		t.Fatalf("invalid fields mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_ChangeDoesNotRevalidateDependents(t *testing.T) {
	f := newSignup(t, newRecorder(), form.WithInitialValues(map[signupField]model.Value{
		fieldUser:           model.String("abc"),
		fieldPassword:       model.String("pw1"),
		fieldPasswordRepeat: model.String("pw1"),
	}))
	if !f.Valid() {
		t.Fatalf("expected valid initial state, invalid: %v", f.InvalidFields())
	}

	if err := f.SetFieldValue(fieldPassword, model.String("changed")); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if len(f.InvalidFields()) != 0 {
		t.Fatalf("dependent field must keep its stale validity until Validate, got %v", f.InvalidFields())
	}

	valid, err := f.Validate()
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if valid {
		t.Fatalf("expected full validation to catch the mismatch")
	}
	if diff := cmp.Diff([]signupField{fieldPasswordRepeat}, f.InvalidFields()); diff != "" {
		t.Fatalf("invalid fields mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_ChangeValidatesAgainstNewValue(t *testing.T) {
	f := newSignup(t, newRecorder(), form.WithInitialValues(map[signupField]model.Value{
		fieldPassword: model.String("pw1"),
	}))

	if err := f.SetFieldValue(fieldPasswordRepeat, model.String("pw1")); err != nil {
		t.Fatalf("set repeat: %v", err)
	}
	state, err := f.FieldState(fieldPasswordRepeat)
	if err != nil {
		t.Fatalf("field state: %v", err)
	}
	if !state.Valid {
		t.Fatalf("expected repeat to validate against the written value, got %+v", state)
	}
}

func TestForm_InitialValidityReflectsInitialValues(t *testing.T) {
	defs := []model.FieldDefinition[string]{
		{ID: "count", Type: model.FieldTypeSelect, Options: []string{"0", "1", "2"}, Initial: model.Int(0), Validator: validation.Min(1, "pick at least one")},
		{ID: "name", Type: model.FieldTypeText, Initial: model.String("ok")},
	}
	f, err := form.New("numbers", defs, newRegistry(t, newRecorder()))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	if f.Valid() {
		t.Fatalf("expected initial state to be invalid")
	}
	if diff := cmp.Diff([]string{"count"}, f.InvalidFields()); diff != "" {
		t.Fatalf("invalid fields mismatch (-want +got):\n%s", diff)
	}
	if f.Dirty() {
		t.Fatalf("fresh form must not be dirty")
	}
}

func TestForm_ValidateIsIdempotent(t *testing.T) {
	f := newSignup(t, newRecorder(), form.WithInitialValues(map[signupField]model.Value{
		fieldPassword:       model.String("a"),
		fieldPasswordRepeat: model.String("b"),
	}))

	if _, err := f.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	first := f.Snapshot()
	if _, err := f.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	second := f.Snapshot()

	if diff := cmp.Diff(first.Validity, second.Validity); diff != "" {
		t.Fatalf("validity changed (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.Messages, second.Messages); diff != "" {
		t.Fatalf("messages changed (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"user required", "", "passwords differ"}, second.Messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_ChangeLeavesOtherValuesAlone(t *testing.T) {
	f := newSignup(t, newRecorder(), form.WithInitialValues(map[signupField]model.Value{
		fieldUser: model.String("ada"),
	}))
	before := values(t, f.Snapshot().Values)

	if err := f.SetFieldValue(fieldPassword, model.Number(42)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := f.Value(fieldPassword)
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if n, ok := got.Num(); !ok || n != 42 {
		t.Fatalf("expected number 42, got %v", got)
	}

	after := values(t, f.Snapshot().Values)
	before[1] = "n:42"
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_DirtyIsSticky(t *testing.T) {
	f := newSignup(t, newRecorder())

	if err := f.SetFieldValue(fieldUser, model.String("")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if f.Dirty() {
		t.Fatalf("writing the same value must not mark the form dirty")
	}

	if err := f.SetFieldValue(fieldUser, model.String("x")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := f.SetFieldValue(fieldUser, model.String("")); err != nil {
		t.Fatalf("set: %v", err)
	}
	for _, step := range []func() error{f.Disable, f.Enable, f.ShowErrorMessages, f.HideErrorMessages} {
		if err := step(); err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if !f.Dirty() {
			t.Fatalf("dirty must stay set")
		}
	}
	if _, err := f.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !f.Dirty() {
		t.Fatalf("dirty must survive validation")
	}
}

func TestForm_DisableEnableOnlyTogglesDisabledState(t *testing.T) {
	rec := newRecorder()
	defs := signupFields()
	defs[0].Disabled = true
	f, err := form.New("signup", defs, newRegistry(t, rec), form.WithInitialValues(map[signupField]model.Value{
		fieldUser:     model.String("ada"),
		fieldPassword: model.String("pw"),
	}))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	before := f.Snapshot()

	if err := f.Disable(); err != nil {
		t.Fatalf("disable: %v", err)
	}
	for i := 0; i < 3; i++ {
		if !rec.context(render.InputID("signup", i)).Disabled {
			t.Fatalf("field %d should render disabled", i)
		}
	}

	if err := f.Enable(); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if !rec.context("signup_field_0").Disabled {
		t.Fatalf("statically disabled field must stay disabled")
	}
	if rec.context("signup_field_1").Disabled || rec.context("signup_field_2").Disabled {
		t.Fatalf("enabled form must render editable fields")
	}

	after := f.Snapshot()
	if diff := cmp.Diff(values(t, before.Values), values(t, after.Values)); diff != "" {
		t.Fatalf("values changed (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(before.Validity, after.Validity); diff != "" {
		t.Fatalf("validity changed (-before +after):\n%s", diff)
	}
}

func TestForm_ErrorMessageVisibility(t *testing.T) {
	rec := newRecorder()
	f := newSignup(t, rec, form.WithInitialValues(map[signupField]model.Value{
		fieldUser:     model.String("ada"),
		fieldPassword: model.String("pw"),
	}))
	if diff := cmp.Diff([]signupField{fieldPasswordRepeat}, f.InvalidFields()); diff != "" {
		t.Fatalf("invalid fields mismatch (-want +got):\n%s", diff)
	}

	countErrors := func() int {
		n := 0
		for _, handle := range f.Handles() {
			if containsID(handle.Markup, handle.ErrorID) {
				n++
			}
		}
		return n
	}

	if countErrors() != 0 {
		t.Fatalf("errors must start hidden")
	}

	if err := f.ShowErrorMessages(); err != nil {
		t.Fatalf("show: %v", err)
	}
	if got := countErrors(); got != 1 {
		t.Fatalf("expected exactly one error element, got %d", got)
	}
	handle, err := f.Handle(fieldPasswordRepeat)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if handle.ErrorID != "error_message_signup_field_2" || !containsID(handle.Markup, "error_message_signup_field_2") {
		t.Fatalf("unexpected error element in %q", handle.Markup)
	}

	if err := f.HideErrorMessages(); err != nil {
		t.Fatalf("hide: %v", err)
	}
	if countErrors() != 0 {
		t.Fatalf("errors must disappear when hidden")
	}
	state, err := f.FieldState(fieldPasswordRepeat)
	if err != nil {
		t.Fatalf("field state: %v", err)
	}
	if state.Valid || state.Message != "passwords differ" || state.VisibleMessage != "" {
		t.Fatalf("unexpected hidden state %+v", state)
	}
	if diff := cmp.Diff([]signupField{fieldPasswordRepeat}, f.InvalidFields()); diff != "" {
		t.Fatalf("invalid fields mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_ErrorMessagesVisibleOption(t *testing.T) {
	rec := newRecorder()
	f := newSignup(t, rec, form.WithErrorMessagesVisible(true))
	if !f.ErrorMessagesVisible() {
		t.Fatalf("expected visible errors")
	}
	if got := rec.context("signup_field_0").ErrorMessage; got != "user required" {
		t.Fatalf("expected rendered message, got %q", got)
	}
}

func TestForm_ChangeRerendersOnlyChangedField(t *testing.T) {
	rec := newRecorder()
	f := newSignup(t, rec)
	for i := 0; i < 3; i++ {
		if got := rec.count(render.InputID("signup", i)); got != 1 {
			t.Fatalf("field %d rendered %d times on mount", i, got)
		}
	}

	if err := f.SetFieldValue(fieldPassword, model.String("pw")); err != nil {
		t.Fatalf("set: %v", err)
	}
	want := []int{1, 2, 1}
	for i, n := range want {
		if got := rec.count(render.InputID("signup", i)); got != n {
			t.Fatalf("field %d rendered %d times, want %d", i, got, n)
		}
	}
}

func TestForm_OnChangeCallbackUpdatesState(t *testing.T) {
	rec := newRecorder()
	f := newSignup(t, rec)

	ctx := rec.context("signup_field_0")
	if err := ctx.OnChange(model.String("from widget")); err != nil {
		t.Fatalf("on change: %v", err)
	}
	got, err := f.Value(fieldUser)
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if got.String() != "from widget" || !f.Dirty() {
		t.Fatalf("expected widget change to reach state, got %v dirty=%v", got, f.Dirty())
	}
	if err := f.OnFieldChange(9, model.String("x")); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestForm_SetValues(t *testing.T) {
	f := newSignup(t, newRecorder(), form.WithInitialValues(map[signupField]model.Value{
		fieldUser: model.String("ada"),
	}))

	valid, err := f.SetValues(map[signupField]model.Value{
		fieldPassword:       model.String("pw"),
		fieldPasswordRepeat: model.String("pw"),
	})
	if err != nil {
		t.Fatalf("set values: %v", err)
	}
	if !valid || !f.Valid() {
		t.Fatalf("validation after SetValues must observe the writes, invalid: %v", f.InvalidFields())
	}
	user, _ := f.Value(fieldUser)
	if user.String() != "ada" {
		t.Fatalf("untouched field changed to %v", user)
	}
	if f.Dirty() {
		t.Fatalf("programmatic writes must not mark the form dirty")
	}

	_, err = f.SetValues(map[signupField]model.Value{
		fieldUser:   model.String("bob"),
		fieldUnused: model.String("x"),
	})
	if !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	user, _ = f.Value(fieldUser)
	if user.String() != "ada" {
		t.Fatalf("failed SetValues must not write, got %v", user)
	}
}

func TestForm_ConfigurationErrors(t *testing.T) {
	rec := newRecorder()

	_, err := form.New("signup", append(signupFields(), model.FieldDefinition[signupField]{ID: fieldUser, Type: model.FieldTypeText}), newRegistry(t, rec))
	if !errors.Is(err, model.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	_, err = form.New("signup", []model.FieldDefinition[signupField]{
		{ID: fieldUser, Type: model.FieldTypeText, Validator: validation.EqualsField(fieldUnused, "x")},
	}, newRegistry(t, rec))
	if !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField for dangling reference, got %v", err)
	}

	_, err = form.New("signup", []model.FieldDefinition[signupField]{
		{ID: fieldUser, Type: model.FieldTypeText, Validator: validation.EqualsField("user", "x")},
	}, newRegistry(t, rec))
	if !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField for mistyped reference, got %v", err)
	}

	_, err = form.New("signup", []model.FieldDefinition[signupField]{
		{ID: fieldUser, Type: "slider"},
	}, newRegistry(t, rec))
	if !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}

	_, err = form.New("my form", signupFields(), newRegistry(t, rec))
	if !errors.Is(err, form.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}

	_, err = form.New("signup", signupFields(), newRegistry(t, rec), form.WithInitialValues(map[string]model.Value{"user": model.String("x")}))
	if !errors.Is(err, form.ErrInvalidInitialValues) {
		t.Fatalf("expected ErrInvalidInitialValues, got %v", err)
	}

	_, err = form.New("signup", signupFields(), newRegistry(t, rec), form.WithInitialValues(map[signupField]model.Value{fieldUnused: model.String("x")}))
	if !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField for initial value, got %v", err)
	}
}

func TestForm_LookupsFailLoudly(t *testing.T) {
	f := newSignup(t, newRecorder())

	if _, err := f.Value(fieldUnused); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	_, err := f.Handle(fieldUnused)
	if !errors.Is(err, render.ErrComponentNotFound) {
		t.Fatalf("expected ErrComponentNotFound, got %v", err)
	}
}

func TestForm_TypeMisuseIsReportedAsError(t *testing.T) {
	defs := []model.FieldDefinition[string]{
		{ID: "age", Type: model.FieldTypeText, Initial: model.String("x"), Validator: validation.NotEmpty("required")},
	}
	f, err := form.New("misuse", defs, newRegistry(t, newRecorder()))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	err = f.SetFieldValue("age", model.Number(3))
	if !errors.Is(err, validation.ErrTypeMisuse) {
		t.Fatalf("expected ErrTypeMisuse, got %v", err)
	}
	got, _ := f.Value("age")
	if got.String() != "x" || f.Dirty() {
		t.Fatalf("misuse must leave state untouched, got %v dirty=%v", got, f.Dirty())
	}

	_, err = form.New("misuse", []model.FieldDefinition[string]{
		{ID: "age", Type: model.FieldTypeText, Initial: model.Int(3), Validator: validation.NotEmpty("required")},
	}, newRegistry(t, newRecorder()))
	if !errors.Is(err, validation.ErrTypeMisuse) {
		t.Fatalf("expected ErrTypeMisuse at construction, got %v", err)
	}
}

func containsID(markup, id string) bool {
	return id != "" && strings.Contains(markup, `id="`+id+`"`)
}

func TestOnFieldChange_RenderErrorKeepsCommittedChange(t *testing.T) {
	boom := errors.New("boom")
	failing := render.RendererFunc(func(ctx render.Context) (render.Widget, error) {
		if s, _ := ctx.Value.Str(); s == "explode" {
			return render.Widget{}, boom
		}
		return render.Widget{Markup: ctx.Value.String()}, nil
	})
	f, err := form.New("signup", signupFields(), newRegistry(t, failing))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	if err := f.SetFieldValue(fieldUser, model.String("explode")); !errors.Is(err, boom) {
		t.Fatalf("expected render error, got %v", err)
	}
	value, err := f.Value(fieldUser)
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if got, _ := value.Str(); got != "explode" {
		t.Fatalf("value = %q, want the committed write", got)
	}
	if !f.Dirty() {
		t.Fatalf("dirty flag should stay set after a render error")
	}
	state, err := f.FieldState(fieldUser)
	if err != nil {
		t.Fatalf("field state: %v", err)
	}
	if !state.Valid {
		t.Fatalf("validity should reflect the committed value, got %+v", state)
	}
}
