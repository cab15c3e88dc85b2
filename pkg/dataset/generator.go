// Package dataset writes the synthetic rectangle lists fed to the renderer.
//
// A dataset is one text file per category holding `count` lines of
// WIDTHxHEIGHT. An existing file is a finished artifact and is left alone
// unless the operator confirms regeneration.
package dataset

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"math/rand/v2"

	"github.com/goliatone/go-packgallery/pkg/artifact"
	"github.com/goliatone/go-packgallery/pkg/config"
	"github.com/goliatone/go-packgallery/pkg/prompt"
)

// Item is one rectangle.
type Item struct {
	Width  int
	Height int
}

func (it Item) String() string {
	return fmt.Sprintf("%dx%d", it.Width, it.Height)
}

// Option customises the Generator.
type Option func(*Generator)

// WithRand sets the random source. Tests pass a seeded source.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithSeed seeds a deterministic PCG source. A zero seed is ignored.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		if seed != 0 {
			g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		}
	}
}

// WithLogger routes skip notices to logger.
func WithLogger(logger *log.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithConfirmer asks before an existing dataset is regenerated. Without one
// existing datasets are always kept.
func WithConfirmer(c prompt.Confirmer) Option {
	return func(g *Generator) {
		g.confirm = c
	}
}

// Generator produces dataset files through an artifact.Store.
type Generator struct {
	store   artifact.Store
	rng     *rand.Rand
	logger  *log.Logger
	confirm prompt.Confirmer
}

// Report lists what a Generate call did, in category order.
type Report struct {
	Generated []string
	Skipped   []string
}

// New returns a Generator writing to store.
func New(store artifact.Store, options ...Option) *Generator {
	g := &Generator{
		store:  store,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g
}

// Generate writes a dataset for every category whose file is absent.
func (g *Generator) Generate(ctx context.Context, cfg config.Config) (Report, error) {
	var report Report
	if err := g.store.MkdirAll(cfg.Layout.Data); err != nil {
		return report, fmt.Errorf("dataset: create %s: %w", cfg.Layout.Data, err)
	}

	for _, cat := range cfg.Categories {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		name := cfg.DatasetName(cat)
		exists, err := g.store.Exists(name)
		if err != nil {
			return report, fmt.Errorf("dataset: %w", err)
		}
		if exists {
			regenerate, err := g.askRegenerate(ctx, name)
			if err != nil {
				return report, err
			}
			if !regenerate {
				g.logger.Printf("%s exists; delete it to generate a new one", g.store.Path(name))
				report.Skipped = append(report.Skipped, name)
				continue
			}
		}

		if err := g.write(name, cat); err != nil {
			return report, err
		}
		report.Generated = append(report.Generated, name)
	}
	return report, nil
}

func (g *Generator) askRegenerate(ctx context.Context, name string) (bool, error) {
	if g.confirm == nil {
		return false, nil
	}
	ok, err := g.confirm.Confirm(ctx, prompt.ConfirmConfig{
		Message: fmt.Sprintf("%s exists. Generate a new one?", g.store.Path(name)),
		Default: false,
	})
	if err != nil {
		return false, fmt.Errorf("dataset: confirm %s: %w", name, err)
	}
	return ok, nil
}

func (g *Generator) write(name string, cat config.Category) error {
	f, err := g.store.Create(name)
	if err != nil {
		return fmt.Errorf("dataset: create %s: %w", name, err)
	}
	w := bufio.NewWriter(f)
	for i := 0; i < cat.Count; i++ {
		if _, err := fmt.Fprintln(w, Sample(g.rng, cat)); err != nil {
			f.Close()
			return fmt.Errorf("dataset: write %s: %w", name, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("dataset: write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("dataset: close %s: %w", name, err)
	}
	return nil
}

// Sample draws one item for cat. With a height range the height is drawn
// again until it differs from the width; the configuration validator rules
// out ranges where that can never happen.
func Sample(rng *rand.Rand, cat config.Category) Item {
	w := between(rng, cat.Width)
	h := w
	if cat.Height != nil {
		for {
			h = between(rng, *cat.Height)
			if h != w {
				break
			}
		}
	}
	if cat.PowerOfTwo {
		w, h = 1<<w, 1<<h
	}
	return Item{Width: w, Height: h}
}

func between(rng *rand.Rand, r config.Range) int {
	return r.Lo + rng.IntN(r.Hi-r.Lo+1)
}
