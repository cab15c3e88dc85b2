// Command fake-renderer packs a dataset into placeholder page images using the
// same command line as the packing demo. Build it and point the renderer path
// of a gallery configuration at the binary.
package main

import (
	"os"

	"github.com/goliatone/go-packgallery/internal/fakerender"
)

func main() {
	os.Exit(fakerender.Main(os.Args[1:], os.Stdout, os.Stderr))
}
