// Package render binds form fields to pluggable widget renderers. A Registry
// maps field type tags to Renderer implementations; a Binding resolves the
// renderer of every field of one form up front (failing on unknown tags),
// renders widgets on demand and exposes the resulting handles by field id.
//
// Generated DOM identifiers follow a fixed contract hosts and tests rely on:
// inputs are "<form>_field_<index>" and their error elements are
// "error_message_<input id>".
package render
