package gallery

import (
	"strings"
	"sync"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	introPolicyOnce sync.Once
	introPolicy     *bluemonday.Policy
)

// IntroHTML converts the markdown introduction to sanitized HTML. Blank input
// yields an empty string.
func IntroHTML(source string) string {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return ""
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	rendered := markdown.ToHTML([]byte(trimmed), p, r)

	return strings.TrimSpace(introSanitizer().Sanitize(string(rendered)))
}

func introSanitizer() *bluemonday.Policy {
	introPolicyOnce.Do(func() {
		introPolicy = bluemonday.UGCPolicy()
	})
	return introPolicy
}
