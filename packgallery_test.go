package packgallery_test

import (
	"context"
	"io/fs"
	"testing"

	"github.com/goliatone/go-packgallery"
)

func TestEmbeddedTemplatesExposeGallery(t *testing.T) {
	if _, err := fs.Stat(packgallery.EmbeddedTemplates(), "gallery.tmpl"); err != nil {
		t.Fatalf("gallery template missing: %v", err)
	}
}

func TestDefaultConfigMatrix(t *testing.T) {
	cfg := packgallery.DefaultConfig()
	if len(cfg.Categories) != 6 || len(cfg.SizeLimits) != 2 {
		t.Fatalf("unexpected default matrix: %d categories, %d limits", len(cfg.Categories), len(cfg.SizeLimits))
	}
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	cfg := packgallery.DefaultConfig()
	cfg.Categories = nil
	if _, err := packgallery.Generate(context.Background(), cfg); err == nil {
		t.Fatalf("expected invalid configuration error")
	}
}
