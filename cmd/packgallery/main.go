package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-packgallery/pkg/config"
	"github.com/goliatone/go-packgallery/pkg/gallery"
	"github.com/goliatone/go-packgallery/pkg/pipeline"
	"github.com/goliatone/go-packgallery/pkg/prompt"
)

func main() {
	configPath := flag.String("config", "", "gallery configuration file (built-in defaults if empty)")
	out := flag.String("out", "", "output directory")
	rendererPath := flag.String("renderer", "", "path to the packing demo executable")
	jobs := flag.Int("jobs", 0, "renderer processes to run at once")
	seed := flag.Uint64("seed", 0, "dataset seed; 0 draws a random one")
	themeName := flag.String("theme", "", "gallery palette")
	variant := flag.String("variant", "", "gallery palette variant (light or dark)")
	ask := flag.Bool("ask", false, "ask before regenerating existing datasets")
	templateDir := flag.String("templates", "", "directory whose gallery.tmpl replaces the built-in page template")
	flag.Parse()
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.Layout.Out = *out
		case "renderer":
			cfg.RendererPath = *rendererPath
		case "jobs":
			cfg.Jobs = *jobs
		case "seed":
			cfg.Seed = *seed
		case "theme":
			cfg.Theme.Name = *themeName
		case "variant":
			cfg.Theme.Variant = *variant
		}
	})

	opts := []pipeline.Option{pipeline.WithLogger(log.New(os.Stdout, "", 0))}
	if *ask {
		opts = append(opts, pipeline.WithConfirmer(prompt.Survey()))
	}
	if *templateDir != "" {
		writer, err := gallery.New(gallery.WithTemplateDir(*templateDir))
		if err != nil {
			log.Fatalf("%v", err)
		}
		opts = append(opts, pipeline.WithGalleryWriter(writer))
	}

	driver, err := pipeline.New(cfg, opts...)
	if err != nil {
		log.Fatalf("%v", err)
	}

	report, err := driver.Run(ctx)
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "interrupted")
			stop()
			os.Exit(130)
		}
		stop()
		log.Fatalf("%v", err)
	}
	fmt.Printf("%d pages in %s\n", report.Inventory.PageCount(), report.Gallery)
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFile(path)
}
