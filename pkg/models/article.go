package models

import "time"

// Category is one of the fixed blog categories.
type Category string

const (
	CategoryProductUpdates Category = "product-updates"
	CategoryGuides         Category = "guides"
	CategoryCaseStudies    Category = "case-studies"
	CategoryPrivacy        Category = "privacy"
	CategoryEngineering    Category = "engineering"
)

// CategoryAll is the filter value that matches every article.
const CategoryAll = "all"

var categoryLabels = map[Category]string{
	CategoryProductUpdates: "Product Updates",
	CategoryGuides:         "Guides",
	CategoryCaseStudies:    "Case Studies",
	CategoryPrivacy:        "Privacy",
	CategoryEngineering:    "Engineering",
}

// Label returns the display name, or the raw value for unknown categories.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

type Author struct {
	Name string `json:"name" yaml:"name" toml:"name" validate:"required"`
	Role string `json:"role" yaml:"role" toml:"role"`
}

// Article is a static blog post. It is never mutated after load.
type Article struct {
	ID          string    `json:"id" yaml:"id" toml:"id" validate:"required"`
	Title       string    `json:"title" yaml:"title" toml:"title" validate:"required"`
	Excerpt     string    `json:"excerpt" yaml:"excerpt" toml:"excerpt" validate:"required"`
	Category    Category  `json:"category" yaml:"category" toml:"category" validate:"required,oneof=product-updates guides case-studies privacy engineering"`
	Author      Author    `json:"author" yaml:"author" toml:"author"`
	PublishedAt time.Time `json:"published_at" yaml:"date" toml:"date"`
	ReadTime    string    `json:"read_time" yaml:"read_time" toml:"read_time"`
	CoverImage  string    `json:"cover_image" yaml:"cover_image" toml:"cover_image"`
	Featured    bool      `json:"featured" yaml:"featured" toml:"featured"`
	Body        string    `json:"body,omitempty" yaml:"-" toml:"-"`
}

// DisplayDate formats PublishedAt the way the blog shows it.
func (a Article) DisplayDate() string {
	if a.PublishedAt.IsZero() {
		return ""
	}
	return a.PublishedAt.Format("January 2, 2006")
}
