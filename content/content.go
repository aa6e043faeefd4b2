// Package content holds the articles bundled into the binary.
package content

import "embed"

//go:embed articles/*.md
var Articles embed.FS
