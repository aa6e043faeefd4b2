package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"campaign-site/content"
	"campaign-site/pkg/config"
	"campaign-site/pkg/models"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var ErrArticleNotFound = errors.New("article not found")

var validate = validator.New()

// Catalog is the immutable article table. It is safe for concurrent use
// because nothing mutates it after NewCatalog returns.
type Catalog struct {
	articles   []models.Article
	byID       map[string]int
	categories []models.Category
}

// NewCatalog validates the articles and builds the table. Order is kept as
// given.
func NewCatalog(articles []models.Article) (*Catalog, error) {
	c := &Catalog{
		articles: make([]models.Article, len(articles)),
		byID:     make(map[string]int, len(articles)),
	}
	copy(c.articles, articles)

	seen := make(map[models.Category]bool)
	featured := 0
	for i, a := range c.articles {
		if err := validate.Struct(a); err != nil {
			return nil, fmt.Errorf("article %d (%q): %w", i, a.ID, err)
		}
		if _, dup := c.byID[a.ID]; dup {
			return nil, fmt.Errorf("duplicate article id %q", a.ID)
		}
		c.byID[a.ID] = i
		if !seen[a.Category] {
			seen[a.Category] = true
			c.categories = append(c.categories, a.Category)
		}
		if a.Featured {
			featured++
		}
	}
	if featured > 1 {
		logrus.WithField("featured", featured).Warn("More than one featured article, the first one wins")
	}
	return c, nil
}

// Articles returns the full list in source order.
func (c *Catalog) Articles() []models.Article {
	out := make([]models.Article, len(c.articles))
	copy(out, c.articles)
	return out
}

// Categories returns the distinct categories present, in first-appearance order.
func (c *Catalog) Categories() []models.Category {
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Filter returns the articles matching both the category and the search
// query, in source order. "all" matches every category; an unknown category
// matches nothing. The query is compared case-insensitively against title
// and excerpt; an empty query matches everything.
func (c *Catalog) Filter(category, query string) []models.Article {
	q := strings.ToLower(query)
	out := make([]models.Article, 0, len(c.articles))
	for _, a := range c.articles {
		if category != models.CategoryAll && string(a.Category) != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(a.Title), q) &&
			!strings.Contains(strings.ToLower(a.Excerpt), q) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Featured returns the first article flagged featured.
func (c *Catalog) Featured() (models.Article, bool) {
	for _, a := range c.articles {
		if a.Featured {
			return a, true
		}
	}
	return models.Article{}, false
}

func (c *Catalog) ByID(id string) (models.Article, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Article{}, fmt.Errorf("%w: %s", ErrArticleNotFound, id)
	}
	return c.articles[i], nil
}

// LoadArticles reads every .md file under fsys in lexical path order. A file
// without an id takes its slug from the file name.
func LoadArticles(fsys fs.FS) ([]models.Article, error) {
	var articles []models.Article

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		art, err := ParseArticle(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		if art.ID == "" {
			art.ID = strings.TrimSuffix(path.Base(p), ".md")
		}
		art.CoverImage = ResolveCoverURL(art.CoverImage)
		articles = append(articles, *art)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// LoadCatalog builds a catalog from a content directory, or from the bundled
// articles when dir is empty.
func LoadCatalog(dir string) (*Catalog, error) {
	var fsys fs.FS = content.Articles
	if dir != "" {
		fsys = os.DirFS(dir)
	}
	articles, err := LoadArticles(fsys)
	if err != nil {
		return nil, fmt.Errorf("loading articles: %w", err)
	}
	return NewCatalog(articles)
}

var (
	catalog      *Catalog
	catalogMutex sync.Mutex
)

// GetCatalog loads the configured catalog on first use and returns the same
// instance afterwards.
func GetCatalog() (*Catalog, error) {
	catalogMutex.Lock()
	defer catalogMutex.Unlock()

	if catalog != nil {
		return catalog, nil
	}

	c, err := LoadCatalog(config.ContentPath)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"articles":   len(c.articles),
		"categories": len(c.categories),
		"source":     contentSource(config.ContentPath),
	}).Info("Article catalog loaded")

	catalog = c
	return catalog, nil
}

func contentSource(dir string) string {
	if dir == "" {
		return "bundled"
	}
	return dir
}
