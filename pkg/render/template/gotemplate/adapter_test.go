package gotemplate_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-packgallery/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	files := fstest.MapFS{
		"hello.tmpl":      {Data: []byte("Hello {{ name }}!")},
		"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
		"link.tmpl":       {Data: []byte(`<a href="{{ path|urlpath }}">{{ label }}</a>`)},
		"fields.tmpl":     {Data: []byte("{{ page.Width }}x{{ page.Height }}")},
	}
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngineRenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Ada!" {
		t.Fatalf("result = %q", result)
	}
	if buf.String() != result {
		t.Fatalf("writer = %q, want %q", buf.String(), result)
	}
}

func TestEngineGlobalContext(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))

	result, err := engine.RenderTemplate("use-global.tmpl", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("result = %q", result)
	}
}

func TestEngineEscapesAndBuildsURLs(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("link", map[string]any{
		"path":  "img/data/my set.txt",
		"label": "<b>x</b>",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<a href="img/data/my%20set.txt">&lt;b&gt;x&lt;/b&gt;</a>`
	if result != want {
		t.Fatalf("result = %q, want %q", result, want)
	}
}

func TestEngineReadsStructFields(t *testing.T) {
	engine := newEngine(t)
	page := struct{ Width, Height int }{Width: 320, Height: 128}

	result, err := engine.RenderTemplate("fields", map[string]any{"page": page})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "320x128" {
		t.Fatalf("result = %q", result)
	}
}

func TestBaseDirOverridesFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.tmpl"), []byte("Hi {{ name }}."), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	engine := newEngine(t, gotemplate.WithBaseDir(dir))

	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hi Ada." {
		t.Fatalf("result = %q, want the on-disk template", result)
	}

	result, err = engine.RenderTemplate("fields", map[string]any{"page": struct{ Width, Height int }{1, 2}})
	if err != nil {
		t.Fatalf("render fallback: %v", err)
	}
	if result != "1x2" {
		t.Fatalf("fallback result = %q", result)
	}
}

func TestNewRejectsMissingBaseDir(t *testing.T) {
	_, err := gotemplate.New(gotemplate.WithBaseDir(filepath.Join(t.TempDir(), "missing")))
	if err == nil {
		t.Fatalf("expected error for missing template directory")
	}
}

func TestEngineRejectsUnsupportedContext(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("hello", struct{ Name string }{"Ada"}); err == nil {
		t.Fatalf("expected error for struct context")
	}
}

func TestNewRequiresTemplateSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

func TestURLPath(t *testing.T) {
	if got := gotemplate.URLPath("img/rects_512_0000.png"); got != "img/rects_512_0000.png" {
		t.Fatalf("URLPath = %q", got)
	}
	if got := gotemplate.URLPath("img/a#b.png"); got != "img/a%23b.png" {
		t.Fatalf("URLPath = %q", got)
	}
}
