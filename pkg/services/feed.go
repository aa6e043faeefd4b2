package services

import (
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"campaign-site/pkg/config"

	"github.com/gorilla/feeds"
)

// BuildFeed turns the catalog into a feed. Items keep catalog order; the feed
// date is the newest article's date.
func BuildFeed(c *Catalog, siteURL, title string) *feeds.Feed {
	siteURL = strings.TrimSuffix(siteURL, "/")
	feed := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: siteURL + "/blog"},
		Description: "Product news, guides and stories from photo campaign teams",
	}

	for _, a := range c.Articles() {
		if a.PublishedAt.After(feed.Created) {
			feed.Created = a.PublishedAt
		}
		item := &feeds.Item{
			Id:          a.ID,
			Title:       a.Title,
			Link:        &feeds.Link{Href: siteURL + "/blog/articles/" + a.ID},
			Description: a.Excerpt,
			Author:      &feeds.Author{Name: a.Author.Name},
			Created:     a.PublishedAt,
		}
		if a.CoverImage != "" {
			item.Enclosure = &feeds.Enclosure{Url: absoluteURL(siteURL, a.CoverImage), Type: coverType(a.CoverImage), Length: "0"}
		}
		feed.Items = append(feed.Items, item)
	}
	if feed.Created.IsZero() {
		feed.Created = time.Now()
	}
	return feed
}

// RenderFeed serializes the feed as "rss" or "atom" and returns the matching
// content type.
func RenderFeed(feed *feeds.Feed, feedType string) (string, string, error) {
	switch feedType {
	case "rss", "":
		out, err := feed.ToRss()
		return out, "application/rss+xml; charset=utf-8", err
	case "atom":
		out, err := feed.ToAtom()
		return out, "application/atom+xml; charset=utf-8", err
	default:
		return "", "", fmt.Errorf("invalid feed type: %s", feedType)
	}
}

// CatalogFeed renders the configured feed for c.
func CatalogFeed(c *Catalog) (string, string, error) {
	return RenderFeed(BuildFeed(c, config.AppURL, config.SiteTitle), config.FeedType)
}

func absoluteURL(siteURL, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}
	return siteURL + ref
}

func coverType(ref string) string {
	if t := mime.TypeByExtension(path.Ext(ref)); t != "" {
		return t
	}
	return "image/jpeg"
}
