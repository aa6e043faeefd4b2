package services

import (
	"path"
	"strings"

	"campaign-site/pkg/config"
)

// ResolveCoverURL turns a cover image reference from front matter into a URL.
// Absolute URLs pass through; relative paths are joined onto MediaBaseURL, or
// rooted at "/" when no base is configured.
func ResolveCoverURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "//") {
		return ref
	}

	usagePath := path.Clean("/" + strings.TrimPrefix(ref, "static/"))
	if config.MediaBaseURL == "" {
		return usagePath
	}
	return strings.TrimSuffix(config.MediaBaseURL, "/") + usagePath
}
