// Package template defines the template seam used by markup renderers. The
// gotemplate subpackage provides the pongo2-backed implementation.
package template
