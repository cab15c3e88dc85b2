package cleanup_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-packgallery/pkg/artifact"
	"github.com/goliatone/go-packgallery/pkg/cleanup"
	"github.com/goliatone/go-packgallery/pkg/config"
	"github.com/goliatone/go-packgallery/pkg/testsupport"
)

func TestImagesRemovesOnlyPageImages(t *testing.T) {
	cfg := config.Default()
	cfg.MaxPages = 20
	rects := cfg.Categories[0]
	squares := cfg.Categories[4]

	store := testsupport.NewMemStore()
	stale := []string{
		cfg.ImageName(rects, config.Unbounded(), 0),
		cfg.ImageName(rects, config.Bounded(512), 0),
		cfg.ImageName(rects, config.Bounded(512), 7),
		cfg.ImageName(squares, config.Bounded(512), 19),
	}
	for _, name := range stale {
		store.Put(name, testsupport.PNGHeader(1, 1))
	}
	keep := []string{
		cfg.DatasetName(rects),
		"img/unrelated.png",
		cfg.ImageName(squares, config.Bounded(512), 20),
		"gallery.html",
	}
	for _, name := range keep {
		store.Put(name, []byte("x"))
	}

	removed, err := cleanup.Images(store, cfg)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if diff := cmp.Diff(stale, removed); diff != "" {
		t.Fatalf("removed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{
		"gallery.html",
		"img/data/rects.txt",
		"img/squares_512_0020.png",
		"img/unrelated.png",
	}, store.Names()); diff != "" {
		t.Fatalf("remaining files mismatch (-want +got):\n%s", diff)
	}
}

func TestImagesWithoutImageDirectoryIsNoop(t *testing.T) {
	store := testsupport.NewMemStore()
	store.Put("gallery.html", []byte("old"))

	removed, err := cleanup.Images(store, config.Default())
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if len(removed) != 0 || len(store.Removed()) != 0 {
		t.Fatalf("expected no removals, got %v", removed)
	}
}

func TestImagesSkipsImagePathThatIsAFile(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	if err := os.WriteFile(filepath.Join(root, cfg.Layout.Images), []byte("not a dir"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	removed, err := cleanup.Images(artifact.NewDirStore(root), cfg)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if len(removed) != 0 {
		t.Fatalf("expected no removals, got %v", removed)
	}
}
