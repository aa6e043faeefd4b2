package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"campaign-site/pkg/models"
)

func testArticles() []models.Article {
	author := models.Author{Name: "Priya Raman", Role: "Head of Product"}
	return []models.Article{
		{ID: "blur", Title: "Automatic Face Blurring", Excerpt: "Bystanders are blurred on upload.", Category: models.CategoryProductUpdates, Author: author, Featured: true},
		{ID: "offline", Title: "Offline Sync", Excerpt: "Shoot without signal.", Category: models.CategoryEngineering, Author: author},
		{ID: "analytics", Title: "Reading Analytics", Excerpt: "Reach per location and BLUR stats.", Category: models.CategoryGuides, Author: author},
		{ID: "exports", Title: "Faster Exports", Excerpt: "Batches stream in parts.", Category: models.CategoryProductUpdates, Author: author},
	}
}

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(testArticles())
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return c
}

func ids(articles []models.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}

func isSubsequence(sub, full []models.Article) bool {
	j := 0
	for _, a := range full {
		if j < len(sub) && sub[j].ID == a.ID {
			j++
		}
	}
	return j == len(sub)
}

func TestFilter(t *testing.T) {
	c := newTestCatalog(t)

	tests := []struct {
		name     string
		category string
		query    string
		expected []string
	}{
		{"all and empty query", "all", "", []string{"blur", "offline", "analytics", "exports"}},
		{"category only", "product-updates", "", []string{"blur", "exports"}},
		{"query matches title case-insensitively", "all", "OFFLINE", []string{"offline"}},
		{"query matches excerpt", "all", "blur", []string{"blur", "analytics"}},
		{"category and query", "guides", "blur", []string{"analytics"}},
		{"query not trimmed", "all", " sync", []string{"offline"}},
		{"no match", "all", "kubernetes", []string{}},
		{"unknown category", "recipes", "", []string{}},
		{"category is case-sensitive", "Guides", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(c.Filter(tt.category, tt.query))
			if strings.Join(got, ",") != strings.Join(tt.expected, ",") {
				t.Errorf("Filter(%q, %q) = %v, want %v", tt.category, tt.query, got, tt.expected)
			}
		})
	}
}

func TestFilterIsOrderedSubsequence(t *testing.T) {
	c := newTestCatalog(t)
	full := c.Articles()

	categories := []string{"all", "product-updates", "guides", "engineering", "privacy", "nope", ""}
	queries := []string{"", "a", "blur", "EX", "zzz", "in"}

	for _, cat := range categories {
		for _, q := range queries {
			got := c.Filter(cat, q)
			if !isSubsequence(got, full) {
				t.Errorf("Filter(%q, %q) = %v is not an ordered subsequence", cat, q, ids(got))
			}
		}
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	c := newTestCatalog(t)

	for _, tt := range []struct{ category, query string }{
		{"all", "blur"},
		{"product-updates", ""},
		{"guides", "stats"},
	} {
		once := c.Filter(tt.category, tt.query)
		again, err := NewCatalog(once)
		if err != nil {
			t.Fatalf("NewCatalog() error = %v", err)
		}
		twice := again.Filter(tt.category, tt.query)
		if strings.Join(ids(once), ",") != strings.Join(ids(twice), ",") {
			t.Errorf("filtering %v twice gave %v, want %v", tt, ids(twice), ids(once))
		}
	}
}

func TestFilterDoesNotExposeTable(t *testing.T) {
	c := newTestCatalog(t)
	got := c.Filter("all", "")
	got[0].Title = "changed"

	if a, _ := c.ByID("blur"); a.Title == "changed" {
		t.Error("mutating a filter result changed the catalog")
	}
}

func TestFeatured(t *testing.T) {
	t.Run("single featured", func(t *testing.T) {
		a, ok := newTestCatalog(t).Featured()
		if !ok || a.ID != "blur" {
			t.Errorf("Featured() = %q, %v, want blur, true", a.ID, ok)
		}
	})

	t.Run("first featured wins", func(t *testing.T) {
		articles := testArticles()
		articles[0].Featured = false
		articles[1].Featured = true
		articles[3].Featured = true
		c, err := NewCatalog(articles)
		if err != nil {
			t.Fatalf("NewCatalog() error = %v", err)
		}
		a, ok := c.Featured()
		if !ok || a.ID != "offline" {
			t.Errorf("Featured() = %q, %v, want offline, true", a.ID, ok)
		}
	})

	t.Run("none featured", func(t *testing.T) {
		articles := testArticles()
		articles[0].Featured = false
		c, err := NewCatalog(articles)
		if err != nil {
			t.Fatalf("NewCatalog() error = %v", err)
		}
		if _, ok := c.Featured(); ok {
			t.Error("Featured() reported an article, want none")
		}
	})
}

func TestCategoriesInFirstAppearanceOrder(t *testing.T) {
	got := newTestCatalog(t).Categories()
	want := []models.Category{models.CategoryProductUpdates, models.CategoryEngineering, models.CategoryGuides}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestByID(t *testing.T) {
	c := newTestCatalog(t)
	if a, err := c.ByID("offline"); err != nil || a.Title != "Offline Sync" {
		t.Errorf("ByID(offline) = %q, %v", a.Title, err)
	}
	if _, err := c.ByID("missing"); !errors.Is(err, ErrArticleNotFound) {
		t.Errorf("ByID(missing) error = %v, want ErrArticleNotFound", err)
	}
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]models.Article) []models.Article
	}{
		{"duplicate id", func(a []models.Article) []models.Article { a[1].ID = a[0].ID; return a }},
		{"unknown category", func(a []models.Article) []models.Article { a[2].Category = "recipes"; return a }},
		{"missing title", func(a []models.Article) []models.Article { a[0].Title = ""; return a }},
		{"missing author", func(a []models.Article) []models.Article { a[3].Author.Name = ""; return a }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCatalog(tt.mutate(testArticles())); err == nil {
				t.Error("NewCatalog() expected error, got nil")
			}
		})
	}
}

func TestLoadCatalogBundled(t *testing.T) {
	c, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(c.Articles()) == 0 {
		t.Fatal("bundled catalog is empty")
	}
	f, ok := c.Featured()
	if !ok {
		t.Fatal("bundled catalog has no featured article")
	}
	if f.ID != "automatic-face-blurring" {
		t.Errorf("featured = %q, want automatic-face-blurring", f.ID)
	}
	if f.PublishedAt.IsZero() {
		t.Error("featured article has no publish date")
	}
}

func TestLoadCatalogFromDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b-second.md": "+++\ntitle = \"Second\"\nexcerpt = \"TOML article\"\ncategory = \"privacy\"\n[author]\nname = \"Lea\"\n+++\nBody two",
		"a-first.md":  "---\nid: first\ntitle: First\nexcerpt: YAML article\ncategory: guides\nauthor:\n  name: Amara\ncover_image: images/first.jpg\n---\nBody one",
		"notes.txt":   "ignored",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	c, err := LoadCatalog(dir)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}

	got := ids(c.Articles())
	if strings.Join(got, ",") != "first,b-second" {
		t.Errorf("ids = %v, want [first b-second]", got)
	}
	first, _ := c.ByID("first")
	if first.Body != "Body one" {
		t.Errorf("body = %q, want %q", first.Body, "Body one")
	}
	if first.CoverImage != "/images/first.jpg" {
		t.Errorf("cover = %q, want /images/first.jpg", first.CoverImage)
	}
}

func TestLoadCatalogRejectsBadContent(t *testing.T) {
	dir := t.TempDir()
	content := "---\ntitle: Bad\nexcerpt: x\ncategory: recipes\nauthor:\n  name: A\n---\n"
	if err := os.WriteFile(filepath.Join(dir, "bad.md"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalog(dir); err == nil {
		t.Error("LoadCatalog() expected error for unknown category")
	}
}
