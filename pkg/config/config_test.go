package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-packgallery/pkg/config"
)

func TestDefaultMatchesBuiltInMatrix(t *testing.T) {
	cfg := config.Default()

	var names []string
	for _, cat := range cfg.Categories {
		names = append(names, cat.Name)
	}
	wantNames := []string{"rects", "rects_tall", "rects_wide", "rects_pot", "squares", "squares_pot"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Fatalf("category order mismatch (-want +got):\n%s", diff)
	}

	var labels []string
	for _, limit := range cfg.SizeLimits {
		labels = append(labels, limit.Label())
	}
	if diff := cmp.Diff([]string{"infinite", "512"}, labels); diff != "" {
		t.Fatalf("size limits mismatch (-want +got):\n%s", diff)
	}

	if cfg.ThumbnailSize != 320 || cfg.MaxPages != 9999 {
		t.Fatalf("unexpected thumbnail/max pages: %d/%d", cfg.ThumbnailSize, cfg.MaxPages)
	}
	if cfg.Layout != (config.Layout{Out: "html", Images: "img", Data: "img/data", Gallery: "gallery.html"}) {
		t.Fatalf("unexpected layout: %+v", cfg.Layout)
	}

	tall := cfg.Categories[1]
	if tall.Height == nil || *tall.Height != (config.Range{Lo: 30, Hi: 100}) {
		t.Fatalf("rects_tall height mismatch: %+v", tall.Height)
	}
	if !cfg.Categories[4].Squares() {
		t.Fatalf("squares category must have no height range")
	}
	if !cfg.Categories[5].PowerOfTwo {
		t.Fatalf("squares_pot must be power of two")
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`
thumbnail_size: 200
size_limits: [256, infinite]
categories:
  - name: tiny
    title: tiny squares
    count: 3
    width: {lo: 6, hi: 10}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.ThumbnailSize != 200 {
		t.Fatalf("thumbnail size = %d, want 200", cfg.ThumbnailSize)
	}
	if cfg.RendererPath != "../demo/demo" {
		t.Fatalf("renderer path should keep default, got %q", cfg.RendererPath)
	}
	want := []config.SizeLimit{config.Bounded(256), config.Unbounded()}
	if diff := cmp.Diff(want, cfg.SizeLimits, cmp.AllowUnexported(config.SizeLimit{})); diff != "" {
		t.Fatalf("size limits mismatch (-want +got):\n%s", diff)
	}
	if len(cfg.Categories) != 1 || cfg.Categories[0].Width != (config.Range{Lo: 6, Hi: 10}) {
		t.Fatalf("categories not replaced: %+v", cfg.Categories)
	}
}

func TestParseRejectsInvalidConfigurations(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "unknown key",
			doc:  "thumbnail: 3\n",
			want: "field thumbnail not found",
		},
		{
			name: "never non-square",
			doc:  "categories:\n  - {name: x, title: x, count: 1, width: [5, 9], height: [7, 7]}\n",
			want: "cannot produce non-square",
		},
		{
			name: "empty range",
			doc:  "categories:\n  - {name: x, title: x, count: 1, width: [9, 5]}\n",
			want: "is empty",
		},
		{
			name: "duplicate category",
			doc:  "categories:\n  - {name: x, title: x, count: 1, width: [1, 5]}\n  - {name: x, title: y, count: 1, width: [1, 5]}\n",
			want: `duplicate category "x"`,
		},
		{
			name: "bad name",
			doc:  "categories:\n  - {name: a/b, title: x, count: 1, width: [1, 5]}\n",
			want: "may only contain",
		},
		{
			name: "exponent overflow",
			doc:  "categories:\n  - {name: p, title: p, count: 1, width: [2, 40], pot: true}\n",
			want: "exponents must lie",
		},
		{
			name: "negative limit",
			doc:  "size_limits: [-4]\n",
			want: "must be positive",
		},
		{
			name: "duplicate limit",
			doc:  "size_limits: [infinite, ~]\n",
			want: "duplicate size limit infinite",
		},
		{
			name: "duplicate null limit",
			doc:  "size_limits:\n  - unbounded\n  -\n",
			want: "duplicate size limit infinite",
		},
		{
			name: "limit list not a sequence",
			doc:  "size_limits: {a: 1}\n",
			want: "size_limits must be a list",
		},
		{
			name: "nested gallery",
			doc:  "layout: {gallery: pages/gallery.html}\n",
			want: "layout.gallery must be a file name",
		},
		{
			name: "nested gallery backslash",
			doc:  "layout: {gallery: 'pages\\gallery.html'}\n",
			want: "layout.gallery must be a file name",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tc.doc))
			if err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not contain %q", err, tc.want)
			}
		})
	}
}

func TestParseNullSizeLimitIsInfinite(t *testing.T) {
	cfg, err := config.Parse([]byte("size_limits: [~, 64, null]\n"))
	if err == nil {
		t.Fatalf("expected duplicate error, got %v", cfg.SizeLimits)
	}

	cfg, err = config.Parse([]byte("size_limits: [~, 64]\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []config.SizeLimit{config.Unbounded(), config.Bounded(64)}
	if diff := cmp.Diff(want, cfg.SizeLimits, cmp.AllowUnexported(config.SizeLimit{})); diff != "" {
		t.Fatalf("size limits mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gallery.yaml")
	if err := os.WriteFile(path, []byte("jobs: 4\nseed: 7\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Jobs != 4 || cfg.Seed != 7 {
		t.Fatalf("jobs/seed = %d/%d, want 4/7", cfg.Jobs, cfg.Seed)
	}

	if _, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNamingIsDeterministic(t *testing.T) {
	cfg := config.Default()
	cat := cfg.Categories[0]

	cases := []struct {
		limit config.SizeLimit
		page  int
		want  string
	}{
		{config.Unbounded(), 0, "img/rects_infinite_0000.png"},
		{config.Bounded(512), 12, "img/rects_512_0012.png"},
	}
	for _, tc := range cases {
		first := cfg.ImageName(cat, tc.limit, tc.page)
		second := cfg.ImageName(cat, tc.limit, tc.page)
		if first != tc.want || second != tc.want {
			t.Fatalf("ImageName = %q/%q, want %q", first, second, tc.want)
		}
	}

	if config.ImagePrefix(cat, config.Unbounded()) == config.ImagePrefix(cat, config.Bounded(512)) {
		t.Fatalf("prefixes must differ across size limits")
	}
	if got := cfg.DatasetName(cat); got != "img/data/rects.txt" {
		t.Fatalf("DatasetName = %q", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := config.Default()
	clone := cfg.Clone()
	clone.Categories[0].Height.Lo = 1
	clone.SizeLimits[0] = config.Bounded(64)

	if cfg.Categories[0].Height.Lo == 1 {
		t.Fatalf("clone shares height range with original")
	}
	if cfg.SizeLimits[0].IsBounded() {
		t.Fatalf("clone shares size limits with original")
	}
}

func TestExampleFixtureIsValid(t *testing.T) {
	cfg, err := config.LoadFile(filepath.Join("..", "..", "examples", "fixtures", "small.yaml"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	if len(cfg.Categories) != 2 || cfg.Seed != 42 || cfg.Theme.Variant != "dark" {
		t.Fatalf("unexpected fixture config: %+v", cfg)
	}
	if cfg.RendererPath != "../demo/demo" {
		t.Fatalf("renderer path should keep its default, got %q", cfg.RendererPath)
	}
	if got := cfg.SizeLimits[1]; got != config.Bounded(64) {
		t.Fatalf("size limit = %v", got)
	}
}
