// Package form implements the field state machine behind a rendered form.
//
// A Form owns one immutable model.Registry of field definitions and the
// mutable runtime state indexed like it: values, validity flags and error
// messages, plus the form-level dirty, error-visibility and active flags.
// Only two transitions touch values and validity:
//
//   - OnFieldChange writes one value, re-runs that field's validator against
//     the updated values and re-renders that field alone. Fields that
//     reference the changed one (EqualsField) are not re-checked until the
//     next full validation.
//   - Validate re-runs every validator and swaps the validity and message
//     slices in one step.
//
// Every mutation happens under the form's lock, and a validation triggered
// by a write (SetValues) runs inside the same critical section, so it always
// observes that write. Validators only see a read-only lookup.
//
// Build and Component wrap a Form for hosts that construct definitions from
// their own props: the factory runs once per mounted instance no matter how
// often the host re-renders with new props.
package form
