// Package renderer drives the external packing executable once per
// (category, size limit) pair.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/goliatone/go-packgallery/pkg/artifact"
	"github.com/goliatone/go-packgallery/pkg/config"
	"github.com/goliatone/go-packgallery/pkg/stageerr"
)

// Option customises the Orchestrator.
type Option func(*Orchestrator)

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.runner = r
		}
	}
}

// WithLogger routes progress lines to logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithOutput sets the writers the renderer's own output goes to.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *Orchestrator) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

// WithJobs bounds how many renders run at once. Values below 2 render
// strictly one after another.
func WithJobs(n int) Option {
	return func(o *Orchestrator) {
		o.jobs = n
	}
}

// Orchestrator builds and runs renderer invocations.
type Orchestrator struct {
	store          artifact.Store
	executable     string
	runner         Runner
	logger         *log.Logger
	stdout, stderr io.Writer
	jobs           int
}

// Invocation is a planned renderer call.
type Invocation struct {
	Category config.Category
	Limit    config.SizeLimit
	// Dataset is the store name of the input file.
	Dataset string
	Command Command
}

// New returns an Orchestrator running executable against files in store.
func New(store artifact.Store, executable string, options ...Option) *Orchestrator {
	o := &Orchestrator{
		store:      store,
		executable: executable,
		runner:     ExecRunner{},
		logger:     log.New(io.Discard, "", 0),
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		jobs:       1,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	return o
}

// Plan returns the invocations for cfg in declaration order.
func (o *Orchestrator) Plan(cfg config.Config) []Invocation {
	out := make([]Invocation, 0, len(cfg.Categories)*len(cfg.SizeLimits))
	for _, cat := range cfg.Categories {
		for _, limit := range cfg.SizeLimits {
			dataset := cfg.DatasetName(cat)
			out = append(out, Invocation{
				Category: cat,
				Limit:    limit,
				Dataset:  dataset,
				Command: Command{
					Path:   o.executable,
					Args:   o.args(cfg, cat, limit, dataset),
					Stdout: o.stdout,
					Stderr: o.stderr,
				},
			})
		}
	}
	return out
}

func (o *Orchestrator) args(cfg config.Config, cat config.Category, limit config.SizeLimit, dataset string) []string {
	args := []string{"-out-dir", o.store.Path(cfg.Layout.Images)}
	if limit.IsBounded() {
		args = append(args, "-max-size", strconv.Itoa(limit.Pixels()))
	}
	args = append(args, "-image-prefix", config.ImagePrefix(cat, limit))
	if v := cfg.Renderer.Padding; v != 0 {
		args = append(args, "-padding", strconv.Itoa(v))
	}
	if v := cfg.Renderer.Spacing; v != 0 {
		args = append(args, "-spacing", strconv.Itoa(v))
	}
	if v := cfg.Renderer.MaxPages; v > 0 {
		args = append(args, "-max-pages", strconv.Itoa(v))
	}
	return append(args, o.store.Path(dataset))
}

// Render runs every planned invocation. All datasets are checked before the
// first process starts. The first failure, in declaration order, aborts the
// run.
func (o *Orchestrator) Render(ctx context.Context, cfg config.Config) error {
	plan := o.Plan(cfg)
	for _, inv := range plan {
		ok, err := o.store.Exists(inv.Dataset)
		if err != nil {
			return fmt.Errorf("renderer: %w", err)
		}
		if !ok {
			return stageerr.Precondition("render", o.store.Path(inv.Dataset), "")
		}
	}
	if err := o.store.MkdirAll(cfg.Layout.Images); err != nil {
		return fmt.Errorf("renderer: create %s: %w", cfg.Layout.Images, err)
	}

	if o.jobs < 2 || len(plan) < 2 {
		for _, inv := range plan {
			if err := o.run(ctx, inv); err != nil {
				return err
			}
		}
		return nil
	}
	return o.renderParallel(ctx, plan)
}

func (o *Orchestrator) renderParallel(ctx context.Context, plan []Invocation) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make([]error, len(plan))
	next := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(o.jobs, len(plan)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				if err := o.run(ctx, plan[i]); err != nil {
					errs[i] = err
					cancel()
				}
			}
		}()
	}
feed:
	for i := range plan {
		select {
		case next <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(next)
	wg.Wait()

	return firstError(errs)
}

// firstError prefers real failures over cancellations they caused.
func firstError(errs []error) error {
	var canceled error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) {
			if canceled == nil {
				canceled = err
			}
			continue
		}
		return err
	}
	return canceled
}

func (o *Orchestrator) run(ctx context.Context, inv Invocation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o.logger.Printf("Rendering %s with %s size limit", o.store.Path(inv.Dataset), inv.Limit.Label())
	status, err := o.runner.Run(ctx, inv.Command)
	if err != nil {
		return err
	}
	if status != 0 {
		return stageerr.RendererFailed(inv.Command.Path, status)
	}
	return nil
}
