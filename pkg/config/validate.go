package config

import (
	"errors"
	"fmt"
	"strings"
)

// maxExponent keeps 2^v inside a uint32 page dimension.
const maxExponent = 30

// Validate checks the configuration invariants the pipeline relies on. All
// problems are reported together.
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.RendererPath == "" {
		add("renderer path is required")
	}
	if c.Layout.Out == "" {
		add("layout.out is required")
	}
	if c.Layout.Images == "" || c.Layout.Data == "" || c.Layout.Gallery == "" {
		add("layout.images, layout.data and layout.gallery are required")
	}
	if strings.ContainsAny(c.Layout.Gallery, `/\`) {
		add("layout.gallery must be a file name directly inside layout.out, got %q", c.Layout.Gallery)
	}
	if c.MaxPages <= 0 {
		add("max_pages must be positive, got %d", c.MaxPages)
	}
	if c.ThumbnailSize <= 0 {
		add("thumbnail_size must be positive, got %d", c.ThumbnailSize)
	}
	if c.Jobs < 0 {
		add("jobs must not be negative, got %d", c.Jobs)
	}
	if c.Renderer.MaxPages < 0 {
		add("renderer.max_pages must not be negative, got %d", c.Renderer.MaxPages)
	}

	if len(c.SizeLimits) == 0 {
		add("at least one size limit is required")
	}
	seenLimits := make(map[string]struct{}, len(c.SizeLimits))
	for _, limit := range c.SizeLimits {
		if limit.px < 0 {
			add("size limit must be positive, got %d", limit.px)
		}
		if _, dup := seenLimits[limit.Label()]; dup {
			add("duplicate size limit %s", limit.Label())
		}
		seenLimits[limit.Label()] = struct{}{}
	}

	if len(c.Categories) == 0 {
		add("at least one category is required")
	}
	seenNames := make(map[string]struct{}, len(c.Categories))
	for i, cat := range c.Categories {
		if err := cat.validate(); err != nil {
			add("category %d: %w", i, err)
		}
		if _, dup := seenNames[cat.Name]; dup && cat.Name != "" {
			add("duplicate category %q", cat.Name)
		}
		seenNames[cat.Name] = struct{}{}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
}

func (c Category) validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if strings.IndexFunc(c.Name, func(r rune) bool { return !isNameRune(r) }) >= 0 {
		return fmt.Errorf("name %q may only contain letters, digits, '_' and '-'", c.Name)
	}
	if c.Count < 0 {
		return fmt.Errorf("%s: count must not be negative, got %d", c.Name, c.Count)
	}
	if err := c.checkRange("width", c.Width); err != nil {
		return err
	}
	if c.Height == nil {
		return nil
	}
	if err := c.checkRange("height", *c.Height); err != nil {
		return err
	}
	// A single-valued height range inside the width range can never differ
	// from a width equal to it.
	h := *c.Height
	if h.Lo == h.Hi && c.Width.Contains(h.Lo) {
		return fmt.Errorf("%s: height range [%d..%d] cannot produce non-square items for width %d", c.Name, h.Lo, h.Hi, h.Lo)
	}
	return nil
}

func (c Category) checkRange(label string, r Range) error {
	if r.Lo > r.Hi {
		return fmt.Errorf("%s: %s range [%d..%d] is empty", c.Name, label, r.Lo, r.Hi)
	}
	if c.PowerOfTwo {
		if r.Lo < 0 || r.Hi > maxExponent {
			return fmt.Errorf("%s: %s exponents must lie in [0..%d]", c.Name, label, maxExponent)
		}
		return nil
	}
	if r.Lo <= 0 {
		return fmt.Errorf("%s: %s range must be positive", c.Name, label)
	}
	return nil
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-':
		return true
	}
	return false
}
