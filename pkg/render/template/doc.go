// Package template defines the template engine seam used by the HTML renderer.
// The pongo subpackage provides the pongo2-backed implementation.
package template
