package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"campaign-site/pkg/models"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFrontMatter = errors.New("unknown front matter format")

// SplitFrontMatter separates the front matter block from the body and reports
// its format: "yaml" (---), "toml" (+++) or "json" ({ ... }).
func SplitFrontMatter(content []byte) ([]byte, string, string, error) {
	str := normalizeLineEndings(string(content))

	for _, delim := range []struct{ marker, format string }{{"---", "yaml"}, {"+++", "toml"}} {
		if !strings.HasPrefix(str, delim.marker+"\n") {
			continue
		}
		parts := strings.SplitN(str, "\n"+delim.marker, 2) // FM, Body
		if len(parts) != 2 {
			return nil, "", "", fmt.Errorf("unterminated %s front matter", delim.format)
		}
		fm := strings.TrimPrefix(parts[0], delim.marker+"\n")
		body := strings.TrimPrefix(parts[1], "\n")
		return []byte(fm), strings.TrimSpace(body), delim.format, nil
	}

	if strings.HasPrefix(strings.TrimSpace(str), "{") {
		dec := json.NewDecoder(strings.NewReader(str))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, "", "", fmt.Errorf("parsing json front matter: %w", err)
		}
		rest := str[dec.InputOffset():]
		return raw, strings.TrimSpace(rest), "json", nil
	}

	return nil, "", "", ErrUnknownFrontMatter
}

// ParseArticle decodes a front-matter Markdown file into an Article. The body
// is kept raw; rendering happens in RenderBody.
func ParseArticle(content []byte) (*models.Article, error) {
	fm, body, format, err := SplitFrontMatter(content)
	if err != nil {
		return nil, err
	}

	var art models.Article
	switch format {
	case "yaml":
		err = yaml.Unmarshal(fm, &art)
	case "toml":
		err = toml.NewDecoder(bytes.NewReader(fm)).Decode(&art)
	case "json":
		art, err = decodeJSONFrontMatter(fm)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s front matter: %w", format, err)
	}

	art.Body = body
	return &art, nil
}

// decodeJSONFrontMatter accepts "date" like the yaml and toml front matter
// do. The API field name "published_at" is also read.
func decodeJSONFrontMatter(fm []byte) (models.Article, error) {
	var doc struct {
		models.Article
		Date *time.Time `json:"date"`
	}
	if err := json.Unmarshal(fm, &doc); err != nil {
		return models.Article{}, err
	}
	if doc.Date != nil {
		doc.Article.PublishedAt = *doc.Date
	}
	return doc.Article, nil
}

func normalizeLineEndings(input string) string {
	return strings.ReplaceAll(input, "\r\n", "\n")
}
