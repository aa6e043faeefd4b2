// Package templates holds the HTML views, parsed once at startup.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses every view. Names are the file names, e.g. "blog.html".
func Load() (*template.Template, error) {
	return template.ParseFS(files, "*.html")
}
