package gallery

import (
	"fmt"
	"html"
	"math"
	"path"

	"github.com/goliatone/go-packgallery/pkg/artifact"
	"github.com/goliatone/go-packgallery/pkg/config"
)

// Document is the fully resolved view model of the gallery page. Building it
// needs no filesystem access; the inventory already carries page sizes.
type Document struct {
	Title     string
	IntroHTML string
	StyleVars []StyleVar
	Sections  []Section
}

// StyleVar is one CSS custom property of the palette.
type StyleVar struct {
	Name  string
	Value string
}

// Section is the part of the page describing one category.
type Section struct {
	Anchor string
	// TitleHTML is pre-escaped and may contain <sup> markup.
	TitleHTML string
	DataPath  string
	DataLabel string
	Modes     []Mode
}

// Mode lists the pages rendered for one size limit.
type Mode struct {
	Anchor  string
	Heading string
	Scale   float64
	Figures []Figure
}

// Figure is one page thumbnail.
type Figure struct {
	Href    string
	Width   int
	Height  int
	Caption string
}

// Scale returns the thumbnail scale for a group whose longest side is
// maxSide: min(1, thumbnail/maxSide), or 1 for an empty group.
func Scale(maxSide, thumbnail int) float64 {
	if maxSide <= 0 {
		return 1
	}
	return math.Min(1, float64(thumbnail)/float64(maxSide))
}

// Scaled applies scale to a dimension, rounding half to even.
func Scaled(v int, scale float64) int {
	return int(math.RoundToEven(float64(v) * scale))
}

// RangeHTML formats an inclusive range as "[lo..hi]", or as a power of two
// "2<sup>[lo..hi]</sup>".
func RangeHTML(r config.Range, pot bool) string {
	s := fmt.Sprintf("[%d..%d]", r.Lo, r.Hi)
	if pot {
		return "2<sup>" + s + "</sup>"
	}
	return s
}

// TitleHTML returns the section title of a category, e.g.
// "500 tall rectangles [6..30] × [30..100]".
func TitleHTML(cat config.Category) string {
	title := fmt.Sprintf("%d %s ", cat.Count, html.EscapeString(cat.Title))
	if cat.Height == nil {
		return title + RangeHTML(cat.Width, cat.PowerOfTwo)
	}
	return title + RangeHTML(cat.Width, cat.PowerOfTwo) + " × " + RangeHTML(*cat.Height, cat.PowerOfTwo)
}

// ModeHeading describes a size limit.
func ModeHeading(limit config.SizeLimit) string {
	if !limit.IsBounded() {
		return "Infinite page mode"
	}
	return fmt.Sprintf("Multipage mode with %d px size limit", limit.Pixels())
}

// Caption is the figure caption of a page: 1-based number and pixel size.
func Caption(number, width, height int) string {
	return fmt.Sprintf("P. %d, %d × %d px", number, width, height)
}

func buildSections(cfg config.Config, inv artifact.Inventory) []Section {
	sections := make([]Section, 0, len(cfg.Categories))
	for _, cat := range cfg.Categories {
		section := Section{
			Anchor:    cat.Name,
			TitleHTML: TitleHTML(cat),
			DataPath:  cfg.DatasetName(cat),
			DataLabel: path.Base(cfg.DatasetName(cat)),
		}
		for _, limit := range cfg.SizeLimits {
			group, _ := inv.Group(cat.Name, limit)
			section.Modes = append(section.Modes, buildMode(cat, limit, group, cfg.ThumbnailSize))
		}
		sections = append(sections, section)
	}
	return sections
}

func buildMode(cat config.Category, limit config.SizeLimit, group artifact.Group, thumbnail int) Mode {
	scale := Scale(group.MaxSide(), thumbnail)
	mode := Mode{
		Anchor:  cat.Name + "_" + limit.Label(),
		Heading: ModeHeading(limit),
		Scale:   scale,
	}
	for i, page := range group.Pages {
		mode.Figures = append(mode.Figures, Figure{
			Href:    page.Name,
			Width:   Scaled(page.Width, scale),
			Height:  Scaled(page.Height, scale),
			Caption: Caption(i+1, page.Width, page.Height),
		})
	}
	return mode
}
