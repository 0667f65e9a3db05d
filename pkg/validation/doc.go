// Package validation provides the stock validators for form fields. Every
// validator is a small immutable value implementing model.Validator:
// it receives the candidate value and a read-only lookup over the other
// fields of the form and returns a model.Result. Type mismatches (a number
// handed to a length check, a malformed checkbox payload) are ordinary
// failures; only NotEmpty treats a non-string candidate as a programmer
// error and returns ErrTypeMisuse.
//
// Combinators compose validators: All short-circuits on the first failure,
// Any succeeds when one member does and otherwise reports its own message,
// None always passes.
package validation
