// Package sitemaphtml searches page titles and URLs listed in a site's
// /sitemap.html.
//
// The sitemap is a single <ul> with one
// <li><a href="HREF">TITLE</a></li> per line.
package sitemaphtml

import (
	"context"
	"strings"

	"github.com/fwojciec/faqbot"
	"github.com/fwojciec/faqbot/cache"
)

// Path is where the sitemap lives below the base URL.
const Path = "/sitemap.html"

// Entry is one page of the sitemap.
type Entry struct {
	URL   string
	Title string
}

// Href implements faqbot.Entry.
func (e *Entry) Href() string { return e.URL }

// Human implements faqbot.Entry.
func (e *Entry) Human() string { return e.Title }

// Ensure Backend implements faqbot.SearchBackend.
var _ faqbot.SearchBackend = (*Backend)(nil)

// Backend searches sitemap.html. Entries match on URL or title.
type Backend struct {
	fetcher faqbot.Fetcher
	cache   *cache.Cache[[]*Entry]
}

// NewBackend creates a Backend. If c is nil a cache with
// cache.SiteIndexTTL is created.
func NewBackend(fetcher faqbot.Fetcher, c *cache.Cache[[]*Entry]) *Backend {
	if c == nil {
		c = cache.New[[]*Entry](cache.SiteIndexTTL)
	}
	return &Backend{fetcher: fetcher, cache: c}
}

// Search implements faqbot.SearchBackend.
func (b *Backend) Search(ctx context.Context, baseURL string, keywords []string) ([]faqbot.Entry, error) {
	entries, err := b.Entries(ctx, baseURL)
	if err != nil {
		return nil, err
	}

	var found []faqbot.Entry
	for _, e := range entries {
		if faqbot.Match(keywords, []string{e.URL, e.Title}) {
			found = append(found, e)
		}
	}
	return found, nil
}

// Entries returns every page of the sitemap at baseURL.
func (b *Backend) Entries(ctx context.Context, baseURL string) ([]*Entry, error) {
	return b.cache.Get(ctx, baseURL, func(ctx context.Context) ([]*Entry, error) {
		body, err := b.fetcher.Fetch(ctx, baseURL+Path)
		if err != nil {
			return nil, err
		}
		return ParseSitemap(body)
	})
}

// ParseSitemap parses the body of sitemap.html. The first and last lines
// hold the list tags and are dropped. URLs keep the leading "/" and carry
// no base URL.
func ParseSitemap(html string) ([]*Entry, error) {
	lines := strings.Split(strings.TrimSpace(html), "\n")
	if len(lines) < 2 {
		return []*Entry{}, nil
	}
	lines = lines[1 : len(lines)-1]

	entries := make([]*Entry, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		line = strings.TrimPrefix(line, `<li><a href="`)
		line = strings.TrimSuffix(line, "</a></li>")

		href, title, ok := strings.Cut(line, `">`)
		if !ok {
			return nil, faqbot.Errorf(faqbot.EFORMAT, "sitemap line %d is not a link: %q", i+2, line)
		}
		entries = append(entries, &Entry{URL: href, Title: title})
	}
	return entries, nil
}
