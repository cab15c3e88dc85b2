// Package gallery builds and renders the HTML page that presents every
// rendered page image, grouped by category and size limit.
package gallery

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-packgallery/pkg/artifact"
	"github.com/goliatone/go-packgallery/pkg/config"
	"github.com/goliatone/go-packgallery/pkg/render/template"
	"github.com/goliatone/go-packgallery/pkg/render/template/gotemplate"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const templateName = "gallery.tmpl"

// Templates exposes the embedded gallery templates.
func Templates() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return templatesFS
	}
	return sub
}

// Option customises a Writer.
type Option func(*Writer)

// WithRenderer swaps the template renderer. The renderer must provide a
// "gallery.tmpl" template and the "urlpath" filter.
func WithRenderer(r template.TemplateRenderer) Option {
	return func(w *Writer) {
		if r != nil {
			w.renderer = r
		}
	}
}

// WithTemplateDir loads templates from dir before falling back to the
// embedded ones, so a "gallery.tmpl" there replaces the built-in page. It is
// ignored when WithRenderer is also given.
func WithTemplateDir(dir string) Option {
	return func(w *Writer) {
		w.templateDir = dir
	}
}

// WithThemeSelector swaps the palette resolver.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(w *Writer) {
		if selector != nil {
			w.selector = selector
		}
	}
}

// Writer produces the gallery document.
type Writer struct {
	renderer    template.TemplateRenderer
	selector    theme.ThemeSelector
	templateDir string
}

// New constructs a Writer using the embedded template and built-in palette.
func New(opts ...Option) (*Writer, error) {
	w := &Writer{}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	if w.renderer == nil {
		engineOpts := []gotemplate.Option{gotemplate.WithFS(Templates())}
		if w.templateDir != "" {
			engineOpts = append(engineOpts, gotemplate.WithBaseDir(w.templateDir))
		}
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("gallery: create template engine: %w", err)
		}
		w.renderer = engine
	}
	if w.selector == nil {
		w.selector = NewPaletteSelector()
	}
	return w, nil
}

// Build resolves the view model for cfg and inv.
func (w *Writer) Build(cfg config.Config, inv artifact.Inventory) (Document, error) {
	selection, err := w.selector.Select(cfg.Theme.Name, cfg.Theme.Variant)
	if err != nil {
		return Document{}, fmt.Errorf("gallery: select theme: %w", err)
	}
	return Document{
		Title:     cfg.Title,
		IntroHTML: IntroHTML(cfg.Intro),
		StyleVars: StyleVars(selection),
		Sections:  buildSections(cfg, inv),
	}, nil
}

// Render renders doc to HTML.
func (w *Writer) Render(doc Document) ([]byte, error) {
	out, err := w.renderer.RenderTemplate(templateName, map[string]any{"doc": doc})
	if err != nil {
		return nil, fmt.Errorf("gallery: render: %w", err)
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return []byte(out), nil
}

// Write builds, renders and stores the gallery under cfg.Layout.Gallery,
// replacing any previous document. It returns the store name written.
func (w *Writer) Write(store artifact.Store, cfg config.Config, inv artifact.Inventory) (string, error) {
	doc, err := w.Build(cfg, inv)
	if err != nil {
		return "", err
	}
	data, err := w.Render(doc)
	if err != nil {
		return "", err
	}
	if err := artifact.WriteFile(store, cfg.Layout.Gallery, data); err != nil {
		return "", fmt.Errorf("gallery: write %s: %w", store.Path(cfg.Layout.Gallery), err)
	}
	return cfg.Layout.Gallery, nil
}
