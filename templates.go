package packgallery

import (
	"io/fs"

	"github.com/goliatone/go-packgallery/pkg/gallery"
)

// EmbeddedTemplates exposes the built-in gallery template so callers can
// reuse or extend it without importing the gallery package directly.
func EmbeddedTemplates() fs.FS {
	return gallery.Templates()
}
