// Package config holds the immutable configuration of a gallery run: the
// category matrix, size limits, thumbnail size and filesystem layout.
package config

import (
	"fmt"
	"path"
	"runtime"
	"strconv"
	"strings"
)

// Range is an inclusive integer interval.
type Range struct {
	Lo int
	Hi int
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v int) bool {
	return v >= r.Lo && v <= r.Hi
}

// Category is a named synthetic test-input definition.
type Category struct {
	// Name identifies the category and is used in file names and anchors.
	Name string
	// Title is the human-readable label, e.g. "tall rectangles".
	Title string
	// Count is the number of items written to the dataset.
	Count int
	// Width is the sampled width range.
	Width Range
	// Height is the sampled height range. Nil means items are squares.
	Height *Range
	// PowerOfTwo interprets sampled values as exponents of two.
	PowerOfTwo bool
}

// Squares reports whether the category generates squares.
func (c Category) Squares() bool {
	return c.Height == nil
}

// SizeLimit is a renderer page-size mode. The zero value is unbounded.
type SizeLimit struct {
	px int
}

// Unbounded returns the single-infinite-page mode.
func Unbounded() SizeLimit {
	return SizeLimit{}
}

// Bounded returns a multi-page mode capped at px pixels per side.
func Bounded(px int) SizeLimit {
	return SizeLimit{px: px}
}

// IsBounded reports whether the limit caps the page size.
func (s SizeLimit) IsBounded() bool {
	return s.px > 0
}

// Pixels returns the bound, or 0 when unbounded.
func (s SizeLimit) Pixels() int {
	return s.px
}

// Label is the file-name token for the limit.
func (s SizeLimit) Label() string {
	if !s.IsBounded() {
		return "infinite"
	}
	return strconv.Itoa(s.px)
}

func (s SizeLimit) String() string {
	return s.Label()
}

// RendererOptions are pass-through options understood by the external
// renderer. Zero values are omitted from the command line.
type RendererOptions struct {
	Padding  int
	Spacing  int
	MaxPages int
}

// Theme selects the gallery palette.
type Theme struct {
	Name    string
	Variant string
}

// Layout describes the output tree. All paths except Out are slash-separated
// and relative to Out.
type Layout struct {
	Out     string
	Images  string
	Data    string
	Gallery string
}

// Config is the full, immutable description of a gallery run. Methods return
// copies so callers can derive variants without mutating a shared value.
type Config struct {
	Title         string
	LibraryURL    string
	Intro         string
	RendererPath  string
	Renderer      RendererOptions
	Layout        Layout
	MaxPages      int
	ThumbnailSize int
	Jobs          int
	Seed          uint64
	Theme         Theme
	SizeLimits    []SizeLimit
	Categories    []Category
}

// Clone returns a deep copy of the configuration.
func (c Config) Clone() Config {
	out := c
	out.SizeLimits = append([]SizeLimit(nil), c.SizeLimits...)
	out.Categories = make([]Category, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.Height != nil {
			h := *cat.Height
			cat.Height = &h
		}
		out.Categories[i] = cat
	}
	return out
}

// ExecutablePath returns the renderer path, adding the platform executable
// suffix when it is missing.
func (c Config) ExecutablePath() string {
	return executablePath(c.RendererPath, runtime.GOOS)
}

func executablePath(p, goos string) string {
	if goos == "windows" && !strings.HasSuffix(strings.ToLower(p), ".exe") {
		return p + ".exe"
	}
	return p
}

// DatasetName returns the store name of a category's dataset.
func (c Config) DatasetName(cat Category) string {
	return path.Join(c.Layout.Data, cat.Name+".txt")
}

// ImagePrefix returns the renderer image prefix for a category and limit.
// Distinct limits always yield distinct prefixes.
func ImagePrefix(cat Category, limit SizeLimit) string {
	return cat.Name + "_" + limit.Label() + "_"
}

// ImageFile returns the file name of a page image (without directory).
func ImageFile(cat Category, limit SizeLimit, page int) string {
	return fmt.Sprintf("%s%04d.png", ImagePrefix(cat, limit), page)
}

// ImageName returns the store name of a page image.
func (c Config) ImageName(cat Category, limit SizeLimit, page int) string {
	return path.Join(c.Layout.Images, ImageFile(cat, limit, page))
}
