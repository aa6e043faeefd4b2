// Package static holds the images bundled into the binary.
package static

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed images
var files embed.FS

// Images serves the bundled images with "images/" stripped, so
// "/images/blog/x.svg" maps to "blog/x.svg".
func Images() http.FileSystem {
	sub, err := fs.Sub(files, "images")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
