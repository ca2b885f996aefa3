// Package typstdocs searches the official typst documentation at
// typst.app/docs through the search index its web app loads.
package typstdocs

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fwojciec/faqbot"
	"github.com/fwojciec/faqbot/cache"
)

// Path is the search index below the base URL. The cache-busting query is
// the one the web app sends.
const Path = "/assets/search.json?bust=20230915"

// Kinds whose last URL segment is the item's identifier. For these the
// segment is searched along with the title.
const (
	KindFunction = "Function"
	KindType     = "Type"
)

// Entry is one item of the documentation.
type Entry struct {
	// Kind is "Chapter", "Function", "Parameter of terms", etc.
	Kind string

	// Title is "0.13.1", "Term List", "Hanging Indent", etc.
	Title string

	URL string
}

// Href implements faqbot.Entry.
func (e *Entry) Href() string { return e.URL }

// Human implements faqbot.Entry.
func (e *Entry) Human() string { return e.Title + " - " + e.Kind }

// Documents returns the strings searched for e.
func (e *Entry) Documents() []string {
	if e.Kind == KindFunction || e.Kind == KindType {
		segments := strings.Split(strings.TrimSuffix(e.URL, "/"), "/")
		return []string{e.Title, segments[len(segments)-1]}
	}
	return []string{e.Title}
}

// Ensure Backend implements faqbot.SearchBackend.
var _ faqbot.SearchBackend = (*Backend)(nil)

// Backend searches the typst documentation.
type Backend struct {
	fetcher faqbot.Fetcher
	cache   *cache.Cache[[]*Entry]
}

// NewBackend creates a Backend. If c is nil a cache with
// cache.OfficialDocsTTL is created.
func NewBackend(fetcher faqbot.Fetcher, c *cache.Cache[[]*Entry]) *Backend {
	if c == nil {
		c = cache.New[[]*Entry](cache.OfficialDocsTTL)
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
		if faqbot.Match(keywords, e.Documents()) {
			found = append(found, e)
		}
	}
	return found, nil
}

// Entries returns every item of the documentation at baseURL.
func (b *Backend) Entries(ctx context.Context, baseURL string) ([]*Entry, error) {
	return b.cache.Get(ctx, baseURL, func(ctx context.Context) ([]*Entry, error) {
		body, err := b.fetcher.Fetch(ctx, baseURL+Path)
		if err != nil {
			return nil, err
		}
		return ParseSearchIndex([]byte(body))
	})
}

type searchIndex struct {
	Items *[]item `json:"items"`
}

type item struct {
	Kind  *string `json:"kind"`
	Title *string `json:"title"`
	Route *string `json:"route"`
}

// ParseSearchIndex parses search.json.
func ParseSearchIndex(data []byte) ([]*Entry, error) {
	var index searchIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, faqbot.Errorf(faqbot.EFORMAT, "invalid search index: %v", err)
	}
	if index.Items == nil {
		return nil, faqbot.Errorf(faqbot.EFORMAT, "search index lacks items")
	}

	entries := make([]*Entry, 0, len(*index.Items))
	for i, it := range *index.Items {
		if it.Kind == nil || it.Title == nil || it.Route == nil {
			return nil, faqbot.Errorf(faqbot.EFORMAT, "search item %d lacks kind, title or route", i)
		}
		entries = append(entries, &Entry{Kind: *it.Kind, Title: *it.Title, URL: *it.Route})
	}
	return entries, nil
}
