// Package cli implements the formstate command line: render a definition to
// HTML, fill it in the terminal or inspect its validation state.
package cli
