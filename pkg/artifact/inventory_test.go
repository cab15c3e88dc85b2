package artifact_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-packgallery/pkg/artifact"
	"github.com/goliatone/go-packgallery/pkg/config"
	"github.com/goliatone/go-packgallery/pkg/stageerr"
	"github.com/goliatone/go-packgallery/pkg/testsupport"
)

func singleCategoryConfig() config.Config {
	cfg := config.Default()
	cfg.Categories = []config.Category{{
		Name:  "tiny",
		Title: "tiny squares",
		Count: 3,
		Width: config.Range{Lo: 6, Hi: 10},
	}}
	cfg.SizeLimits = []config.SizeLimit{config.Unbounded(), config.Bounded(512)}
	return cfg
}

func TestDiscoverStopsAtFirstMissingPage(t *testing.T) {
	cfg := singleCategoryConfig()
	cat := cfg.Categories[0]
	store := testsupport.NewMemStore()

	store.Put(cfg.ImageName(cat, config.Unbounded(), 0), testsupport.PNGHeader(100, 50))
	store.Put(cfg.ImageName(cat, config.Unbounded(), 1), testsupport.PNGHeader(200, 80))
	store.Put(cfg.ImageName(cat, config.Unbounded(), 3), testsupport.PNGHeader(10, 10))

	inv, err := artifact.Discover(store, cfg)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(inv.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(inv.Groups))
	}

	group, ok := inv.Group("tiny", config.Unbounded())
	if !ok {
		t.Fatalf("missing unbounded group")
	}
	want := []artifact.Page{
		{Index: 0, Name: "img/tiny_infinite_0000.png", Width: 100, Height: 50},
		{Index: 1, Name: "img/tiny_infinite_0001.png", Width: 200, Height: 80},
	}
	if diff := cmp.Diff(want, group.Pages); diff != "" {
		t.Fatalf("pages mismatch (-want +got):\n%s", diff)
	}
	if !group.Gap {
		t.Fatalf("expected gap flag for page 3 after missing page 2")
	}
	if group.MaxSide() != 200 {
		t.Fatalf("MaxSide = %d, want 200", group.MaxSide())
	}

	bounded, _ := inv.Group("tiny", config.Bounded(512))
	if len(bounded.Pages) != 0 {
		t.Fatalf("expected no bounded pages, got %d", len(bounded.Pages))
	}
	if inv.PageCount() != 2 {
		t.Fatalf("PageCount = %d, want 2", inv.PageCount())
	}
}

func TestDiscoverFlagsPageRightAfterGap(t *testing.T) {
	cfg := singleCategoryConfig()
	cat := cfg.Categories[0]
	store := testsupport.NewMemStore()

	store.Put(cfg.ImageName(cat, config.Bounded(512), 0), testsupport.PNGHeader(512, 512))
	store.Put(cfg.ImageName(cat, config.Bounded(512), 2), testsupport.PNGHeader(512, 100))

	inv, err := artifact.Discover(store, cfg)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	group, _ := inv.Group("tiny", config.Bounded(512))
	if len(group.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(group.Pages))
	}
	if !group.Gap {
		t.Fatalf("expected gap to be flagged")
	}
}

func TestDiscoverRejectsCorruptPage(t *testing.T) {
	cfg := singleCategoryConfig()
	cat := cfg.Categories[0]
	store := testsupport.NewMemStore()
	store.Put(cfg.ImageName(cat, config.Unbounded(), 0), []byte("GIF89a not a png at all"))

	_, err := artifact.Discover(store, cfg)
	if !errors.Is(err, stageerr.ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestDiscoverHonoursMaxPages(t *testing.T) {
	cfg := singleCategoryConfig()
	cfg.MaxPages = 2
	cat := cfg.Categories[0]
	store := testsupport.NewMemStore()
	for i := 0; i < 4; i++ {
		store.Put(cfg.ImageName(cat, config.Unbounded(), i), testsupport.PNGHeader(8, 8))
	}

	inv, err := artifact.Discover(store, cfg)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	group, _ := inv.Group("tiny", config.Unbounded())
	if len(group.Pages) != 2 {
		t.Fatalf("expected probing bounded by max pages, got %d pages", len(group.Pages))
	}
}
