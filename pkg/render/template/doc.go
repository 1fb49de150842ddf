// Package template defines the template engine seam used by renderers. The
// gotemplate subpackage provides a pongo2-backed implementation.
package template
