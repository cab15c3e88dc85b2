package template

import (
	"io"
)

// TemplateRenderer renders named templates with a data context, optionally
// copying the result to writers.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
