// Package cleanup removes page images left behind by a previous run, so a
// run that produces fewer pages never shows stale ones.
package cleanup

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-packgallery/pkg/artifact"
	"github.com/goliatone/go-packgallery/pkg/config"
)

// Images deletes every page image name the configuration can produce for
// indices in [0, MaxPages). Missing files are skipped and a missing image
// directory makes the call a no-op. It returns the removed names.
func Images(store artifact.Store, cfg config.Config) ([]string, error) {
	ok, err := store.IsDir(cfg.Layout.Images)
	if err != nil {
		return nil, fmt.Errorf("cleanup: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var removed []string
	for _, cat := range cfg.Categories {
		for _, limit := range cfg.SizeLimits {
			for i := 0; i < cfg.MaxPages; i++ {
				name := cfg.ImageName(cat, limit, i)
				err := store.Remove(name)
				switch {
				case err == nil:
					removed = append(removed, name)
				case errors.Is(err, fs.ErrNotExist):
				default:
					return removed, fmt.Errorf("cleanup: remove %s: %w", name, err)
				}
			}
		}
	}
	return removed, nil
}
