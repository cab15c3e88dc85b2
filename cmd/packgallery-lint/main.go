package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-packgallery/pkg/config"
)

type violation struct {
	file    string
	message string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nValidate gallery configuration files against the built-in defaults.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"examples/fixtures/small.yaml"}
	}

	var violations []violation
	for _, path := range paths {
		violations = append(violations, lintFile(path)...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				return violations[i].message < violations[j].message
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s\n", v.file, v.message)
		}
		os.Exit(1)
	}
}

func lintFile(path string) []violation {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return explode(path, err)
	}

	var result []violation
	for _, cat := range cfg.Categories {
		if cat.Count == 0 {
			result = append(result, violation{file: path, message: fmt.Sprintf("category %q has no items; its gallery section will be empty", cat.Name)})
		}
	}
	if cfg.Renderer.MaxPages > cfg.MaxPages {
		result = append(result, violation{
			file:    path,
			message: fmt.Sprintf("renderer.max_pages %d exceeds max_pages %d; extra pages are never shown", cfg.Renderer.MaxPages, cfg.MaxPages),
		})
	}
	return result
}

// explode reports each joined validation problem separately.
func explode(path string, err error) []violation {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return []violation{{file: path, message: err.Error()}}
	}
	var result []violation
	for _, e := range joined.Unwrap() {
		result = append(result, violation{file: path, message: e.Error()})
	}
	return result
}
