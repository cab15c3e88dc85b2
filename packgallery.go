// Package packgallery builds a static HTML gallery demonstrating an external
// rectangle-packing renderer. It generates synthetic datasets, runs the
// renderer once per category and size limit, probes the resulting page images
// and writes an index page linking them.
package packgallery

import (
	"context"

	"github.com/goliatone/go-packgallery/pkg/config"
	"github.com/goliatone/go-packgallery/pkg/pipeline"
)

// Config aliases config.Config for callers using the top-level package.
type Config = config.Config

// Report aliases pipeline.Report.
type Report = pipeline.Report

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return config.Default()
}

// LoadConfig reads a YAML configuration file layered over the defaults.
func LoadConfig(path string) (Config, error) {
	return config.LoadFile(path)
}

// NewDriver exposes the pipeline constructor from the top-level module.
func NewDriver(cfg Config, options ...pipeline.Option) (*pipeline.Driver, error) {
	return pipeline.New(cfg, options...)
}

// Generate runs the whole pipeline for cfg. It is the simplest entry point
// for callers that just want the gallery on disk.
func Generate(ctx context.Context, cfg Config, options ...pipeline.Option) (Report, error) {
	driver, err := pipeline.New(cfg, options...)
	if err != nil {
		return Report{}, err
	}
	return driver.Run(ctx)
}
