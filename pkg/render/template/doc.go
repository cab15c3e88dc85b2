// Package template defines the template rendering seam the gallery writer
// depends on. The pongo2-backed implementation lives in the gotemplate
// subpackage.
package template
