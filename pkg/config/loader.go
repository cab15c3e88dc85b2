package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDocument []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultDocument...)
}

// Default returns the built-in configuration: six categories rendered with
// an unbounded and a 512 px size limit.
func Default() Config {
	cfg, err := Parse(nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// LoadFile reads a YAML configuration from disk. Keys absent from the file
// keep their default values; a categories or size_limits list replaces the
// default list as a whole.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse overlays a YAML document on the embedded defaults and validates the
// result. Empty data yields the defaults.
func Parse(data []byte) (Config, error) {
	var doc documentFile
	if err := decodeStrict(defaultDocument, &doc); err != nil {
		return Config{}, fmt.Errorf("parse defaults: %w", err)
	}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := decodeStrict(data, &doc); err != nil {
			return Config{}, fmt.Errorf("parse: %w", err)
		}
	}

	cfg := doc.toConfig()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeStrict(data []byte, out *documentFile) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

type documentFile struct {
	Title         string         `yaml:"title"`
	LibraryURL    string         `yaml:"library_url"`
	Intro         string         `yaml:"intro"`
	Renderer      rendererFile   `yaml:"renderer"`
	Layout        layoutFile     `yaml:"layout"`
	MaxPages      int            `yaml:"max_pages"`
	ThumbnailSize int            `yaml:"thumbnail_size"`
	Jobs          int            `yaml:"jobs"`
	Seed          uint64         `yaml:"seed"`
	Theme         themeFile      `yaml:"theme"`
	SizeLimits    sizeLimitList  `yaml:"size_limits"`
	Categories    []categoryFile `yaml:"categories"`
}

type rendererFile struct {
	Path     string `yaml:"path"`
	Padding  int    `yaml:"padding"`
	Spacing  int    `yaml:"spacing"`
	MaxPages int    `yaml:"max_pages"`
}

type layoutFile struct {
	Out     string `yaml:"out"`
	Images  string `yaml:"images"`
	Data    string `yaml:"data"`
	Gallery string `yaml:"gallery"`
}

type themeFile struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
}

type categoryFile struct {
	Name   string `yaml:"name"`
	Title  string `yaml:"title"`
	Count  int    `yaml:"count"`
	Width  Range  `yaml:"width"`
	Height *Range `yaml:"height"`
	Pot    bool   `yaml:"pot"`
}

func (d documentFile) toConfig() Config {
	cfg := Config{
		Title:        strings.TrimSpace(d.Title),
		LibraryURL:   strings.TrimSpace(d.LibraryURL),
		Intro:        d.Intro,
		RendererPath: strings.TrimSpace(d.Renderer.Path),
		Renderer: RendererOptions{
			Padding:  d.Renderer.Padding,
			Spacing:  d.Renderer.Spacing,
			MaxPages: d.Renderer.MaxPages,
		},
		Layout: Layout{
			Out:     strings.TrimSpace(d.Layout.Out),
			Images:  cleanRel(d.Layout.Images),
			Data:    cleanRel(d.Layout.Data),
			Gallery: cleanRel(d.Layout.Gallery),
		},
		MaxPages:      d.MaxPages,
		ThumbnailSize: d.ThumbnailSize,
		Jobs:          d.Jobs,
		Seed:          d.Seed,
		Theme: Theme{
			Name:    strings.TrimSpace(d.Theme.Name),
			Variant: strings.TrimSpace(d.Theme.Variant),
		},
		SizeLimits: append([]SizeLimit(nil), d.SizeLimits...),
	}
	for _, raw := range d.Categories {
		cat := Category{
			Name:       strings.TrimSpace(raw.Name),
			Title:      strings.TrimSpace(raw.Title),
			Count:      raw.Count,
			Width:      raw.Width,
			PowerOfTwo: raw.Pot,
		}
		if raw.Height != nil {
			h := *raw.Height
			cat.Height = &h
		}
		cfg.Categories = append(cfg.Categories, cat)
	}
	return cfg
}

func cleanRel(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	return strings.Trim(p, "/")
}

// UnmarshalYAML accepts either a two-element sequence `[lo, hi]` or a
// mapping with `lo` and `hi` keys.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var pair []int
		if err := node.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: range needs exactly two values, got %d", node.Line, len(pair))
		}
		r.Lo, r.Hi = pair[0], pair[1]
		return nil
	case yaml.MappingNode:
		var m struct {
			Lo int `yaml:"lo"`
			Hi int `yaml:"hi"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		r.Lo, r.Hi = m.Lo, m.Hi
		return nil
	default:
		return fmt.Errorf("line %d: range must be [lo, hi]", node.Line)
	}
}

// UnmarshalYAML accepts `infinite`, `unbounded`, null, or a positive pixel
// count.
func (s *SizeLimit) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: size limit must be a scalar", node.Line)
	}
	switch strings.ToLower(strings.TrimSpace(node.Value)) {
	case "", "~", "null", "infinite", "unbounded":
		*s = Unbounded()
		return nil
	}
	px, err := strconv.Atoi(strings.TrimSpace(node.Value))
	if err != nil {
		return fmt.Errorf("line %d: invalid size limit %q", node.Line, node.Value)
	}
	if px <= 0 {
		return fmt.Errorf("line %d: size limit must be positive, got %d", node.Line, px)
	}
	*s = Bounded(px)
	return nil
}

// sizeLimitList decodes size_limits item by item. yaml.v3 does not call
// element unmarshalers for null items, so a bare ~ would otherwise be
// dropped from the list instead of meaning infinite.
type sizeLimitList []SizeLimit

func (l *sizeLimitList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: size_limits must be a list", node.Line)
	}
	out := make(sizeLimitList, 0, len(node.Content))
	for _, item := range node.Content {
		var limit SizeLimit
		if err := limit.UnmarshalYAML(item); err != nil {
			return err
		}
		out = append(out, limit)
	}
	*l = out
	return nil
}

// MarshalYAML writes the limit in the form UnmarshalYAML accepts.
func (s SizeLimit) MarshalYAML() (any, error) {
	if !s.IsBounded() {
		return "infinite", nil
	}
	return s.px, nil
}
