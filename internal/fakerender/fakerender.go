// Package fakerender is a stand-in for the external packing demo. It accepts
// the same command line, shelf-packs the dataset and writes one PNG per page,
// which is enough to drive the pipeline end to end without the real binary.
package fakerender

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/goliatone/go-packgallery/pkg/dataset"
)

// Options mirrors the renderer's command line.
type Options struct {
	OutDir      string
	MaxSize     int
	ImagePrefix string
	Padding     int
	Spacing     int
	MaxPages    int
	Dataset     string
}

// Rect is an item placed on a page.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Page is one packed page.
type Page struct {
	Width  int
	Height int
	Rects  []Rect
}

// ErrTooLarge is returned when an item cannot fit within the size limit.
var ErrTooLarge = errors.New("fakerender: item exceeds size limit")

// ParseArgs parses renderer arguments.
func ParseArgs(args []string, stderr io.Writer) (Options, error) {
	var opts Options
	fs := flag.NewFlagSet("fake-renderer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.OutDir, "out-dir", ".", "directory receiving page images")
	fs.IntVar(&opts.MaxSize, "max-size", 0, "maximum page side; 0 packs a single page")
	fs.StringVar(&opts.ImagePrefix, "image-prefix", "", "page image file prefix")
	fs.IntVar(&opts.Padding, "padding", 0, "page padding")
	fs.IntVar(&opts.Spacing, "spacing", 0, "spacing between items")
	fs.IntVar(&opts.MaxPages, "max-pages", 0, "maximum number of pages; 0 is unlimited")
	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if fs.NArg() != 1 {
		return Options{}, fmt.Errorf("fakerender: expected one dataset argument, got %d", fs.NArg())
	}
	opts.Dataset = fs.Arg(0)
	return opts, nil
}

// Pack arranges items on shelves. With maxSize 0 everything goes on one page
// whose width approximates a square layout.
func Pack(items []dataset.Item, maxSize, padding, spacing int) ([]Page, error) {
	if len(items) == 0 {
		return nil, nil
	}

	limit := maxSize - 2*padding
	if maxSize <= 0 {
		area, widest := 0, 0
		for _, it := range items {
			area += (it.Width + spacing) * (it.Height + spacing)
			widest = max(widest, it.Width)
		}
		limit = max(widest, int(math.Ceil(math.Sqrt(float64(area)))))
	}
	for _, it := range items {
		if it.Width > limit || it.Height > limit {
			return nil, fmt.Errorf("%w: %s", ErrTooLarge, it)
		}
	}

	var (
		pages  []Page
		cur    Page
		x, y   int
		shelfH int
	)
	flush := func() {
		cur.Width += 2 * padding
		cur.Height += 2 * padding
		pages = append(pages, cur)
		cur = Page{}
		x, y, shelfH = 0, 0, 0
	}
	for _, it := range items {
		if x > 0 && x+spacing+it.Width > limit {
			y += shelfH + spacing
			x, shelfH = 0, 0
		}
		if maxSize > 0 && y+it.Height > limit {
			flush()
		}
		if x > 0 {
			x += spacing
		}
		cur.Rects = append(cur.Rects, Rect{X: x + padding, Y: y + padding, Width: it.Width, Height: it.Height})
		x += it.Width
		shelfH = max(shelfH, it.Height)
		cur.Width = max(cur.Width, x)
		cur.Height = max(cur.Height, y+shelfH)
	}
	flush()
	return pages, nil
}

// Encode draws a page as a grayscale PNG.
func Encode(w io.Writer, page Page) error {
	img := image.NewGray(image.Rect(0, 0, max(page.Width, 1), max(page.Height, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Gray{Y: 0xff}), image.Point{}, draw.Src)
	for i, r := range page.Rects {
		shade := color.Gray{Y: uint8(64 + (i*37)%128)}
		rect := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
		draw.Draw(img, rect, image.NewUniform(shade), image.Point{}, draw.Src)
	}
	return png.Encode(w, img)
}

// Run packs opts.Dataset and writes the page images.
func Run(opts Options) ([]string, error) {
	f, err := os.Open(opts.Dataset)
	if err != nil {
		return nil, err
	}
	items, err := dataset.Read(f)
	f.Close()
	if err != nil {
		return nil, err
	}

	pages, err := Pack(items, opts.MaxSize, opts.Padding, opts.Spacing)
	if err != nil {
		return nil, err
	}
	if opts.MaxPages > 0 && len(pages) > opts.MaxPages {
		pages = pages[:opts.MaxPages]
	}

	written := make([]string, 0, len(pages))
	for i, page := range pages {
		name := filepath.Join(opts.OutDir, fmt.Sprintf("%s%04d.png", opts.ImagePrefix, i))
		if err := writePage(name, page); err != nil {
			return written, err
		}
		written = append(written, name)
	}
	return written, nil
}

func writePage(name string, page Page) error {
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := Encode(out, page); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Main runs the fake renderer and returns its exit status.
func Main(args []string, stdout, stderr io.Writer) int {
	opts, err := ParseArgs(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	written, err := Run(opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "%d pages written\n", len(written))
	return 0
}
