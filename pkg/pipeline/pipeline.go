// Package pipeline runs the gallery build end to end: datasets, cleanup,
// rendering, discovery and the HTML document. Any stage error stops the run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-packgallery/pkg/artifact"
	"github.com/goliatone/go-packgallery/pkg/cleanup"
	"github.com/goliatone/go-packgallery/pkg/config"
	"github.com/goliatone/go-packgallery/pkg/dataset"
	"github.com/goliatone/go-packgallery/pkg/gallery"
	"github.com/goliatone/go-packgallery/pkg/prompt"
	"github.com/goliatone/go-packgallery/pkg/renderer"
	"github.com/goliatone/go-packgallery/pkg/stageerr"
)

// Option customises a Driver.
type Option func(*Driver)

// WithStore replaces the output store. The default is a DirStore rooted at
// the configured output directory.
func WithStore(store artifact.Store) Option {
	return func(d *Driver) {
		if store != nil {
			d.store = store
		}
	}
}

// WithRunner replaces the process runner used for the renderer.
func WithRunner(r renderer.Runner) Option {
	return func(d *Driver) {
		d.runner = r
	}
}

// WithLogger routes progress lines to logger.
func WithLogger(logger *log.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithConfirmer asks before existing datasets are regenerated.
func WithConfirmer(c prompt.Confirmer) Option {
	return func(d *Driver) {
		d.confirm = c
	}
}

// WithOutput forwards the renderer's own output.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(d *Driver) {
		d.stdout = stdout
		d.stderr = stderr
	}
}

// WithGalleryWriter replaces the gallery writer.
func WithGalleryWriter(w *gallery.Writer) Option {
	return func(d *Driver) {
		if w != nil {
			d.gallery = w
		}
	}
}

// Driver sequences the pipeline stages for one configuration.
type Driver struct {
	cfg            config.Config
	store          artifact.Store
	runner         renderer.Runner
	logger         *log.Logger
	confirm        prompt.Confirmer
	stdout, stderr io.Writer
	gallery        *gallery.Writer
}

// Report summarises a completed run.
type Report struct {
	Datasets  dataset.Report
	Removed   []string
	Inventory artifact.Inventory
	// Gallery is the filesystem path of the written document.
	Gallery string
}

// New validates cfg and returns a Driver for it.
func New(cfg config.Config, options ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Driver{
		cfg:    cfg.Clone(),
		logger: log.New(io.Discard, "", 0),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	if d.store == nil {
		d.store = artifact.NewDirStore(d.cfg.Layout.Out)
	}
	if d.gallery == nil {
		w, err := gallery.New()
		if err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		d.gallery = w
	}
	return d, nil
}

// Run executes every stage in order.
func (d *Driver) Run(ctx context.Context) (Report, error) {
	var report Report
	cfg := d.cfg

	executable, err := CheckRenderer(cfg)
	if err != nil {
		return report, err
	}

	genOpts := []dataset.Option{dataset.WithLogger(d.logger), dataset.WithConfirmer(d.confirm)}
	if cfg.Seed != 0 {
		genOpts = append(genOpts, dataset.WithSeed(cfg.Seed))
	}
	report.Datasets, err = dataset.New(d.store, genOpts...).Generate(ctx, cfg)
	if err != nil {
		return report, err
	}

	report.Removed, err = cleanup.Images(d.store, cfg)
	if err != nil {
		return report, err
	}
	if n := len(report.Removed); n > 0 {
		d.logger.Printf("Removed %d page images from a previous run", n)
	}

	orch := renderer.New(d.store, executable,
		renderer.WithRunner(d.runner),
		renderer.WithLogger(d.logger),
		renderer.WithOutput(d.stdout, d.stderr),
		renderer.WithJobs(cfg.Jobs),
	)
	if err := orch.Render(ctx, cfg); err != nil {
		return report, err
	}

	report.Inventory, err = artifact.Discover(d.store, cfg)
	if err != nil {
		return report, err
	}
	for _, g := range report.Inventory.Groups {
		if g.Gap {
			d.logger.Printf("warning: %s pages for %s size limit are not numbered contiguously; pages after %d are ignored",
				g.Category.Name, g.Limit.Label(), len(g.Pages))
		}
	}

	name, err := d.gallery.Write(d.store, cfg, report.Inventory)
	if err != nil {
		return report, err
	}
	report.Gallery = d.store.Path(name)
	d.logger.Printf("Gallery written to %s", report.Gallery)
	return report, nil
}

// CheckRenderer verifies the renderer executable is a regular file and
// returns its platform path.
func CheckRenderer(cfg config.Config) (string, error) {
	executable := cfg.ExecutablePath()
	info, err := os.Stat(executable)
	if err != nil || !info.Mode().IsRegular() {
		return "", stageerr.Precondition("check renderer", executable,
			fmt.Sprintf("%s does not exist. Please compile the demo program and try again.", executable))
	}
	return executable, nil
}
