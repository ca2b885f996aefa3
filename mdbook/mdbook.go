// Package mdbook searches headings in the search index of an mdBook site
// (https://rust-lang.github.io/mdBook).
package mdbook

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/fwojciec/faqbot"
	"github.com/fwojciec/faqbot/cache"
)

// Path is where mdBook writes its search index below the book root.
const Path = "/searchindex.json"

// Entry is one section of the book.
type Entry struct {
	URL string

	// Title is the section heading, e.g. "Fake italic & Text shadows".
	Title string

	// Breadcrumbs is the chain of enclosing chapters as mdBook renders it,
	// e.g. "Typst Snippets » Text » Fake italic & Text shadows".
	Breadcrumbs string
}

// Href implements faqbot.Entry.
func (e *Entry) Href() string { return e.URL }

// Human implements faqbot.Entry.
func (e *Entry) Human() string { return e.Title + " - " + e.Breadcrumbs }

// Ensure Backend implements faqbot.SearchBackend.
var _ faqbot.SearchBackend = (*Backend)(nil)

// Backend searches mdBook search indices. Entries match on title only.
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
		if faqbot.Match(keywords, []string{e.Title}) {
			found = append(found, e)
		}
	}
	return found, nil
}

// Entries returns every section of the book at baseURL.
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
	DocURLs []string   `json:"doc_urls"`
	Index   *lunrIndex `json:"index"`
}

// lunrIndex is the serialized elasticlunr index mdBook embeds.
type lunrIndex struct {
	DocumentStore *documentStore `json:"documentStore"`
}

type documentStore struct {
	Length *int           `json:"length"`
	Docs   map[string]doc `json:"docs"`
}

type doc struct {
	Title       *string `json:"title"`
	Breadcrumbs *string `json:"breadcrumbs"`
}

// ParseSearchIndex parses searchindex.json. Entries are ordered by document
// ID. doc_urls are relative to the book root; a leading "/" is added.
func ParseSearchIndex(data []byte) ([]*Entry, error) {
	var index searchIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, faqbot.Errorf(faqbot.EFORMAT, "invalid search index: %v", err)
	}

	if index.Index == nil || index.Index.DocumentStore == nil || index.Index.DocumentStore.Length == nil {
		return nil, faqbot.Errorf(faqbot.EFORMAT, "search index lacks index.documentStore.length")
	}
	if index.DocURLs == nil || index.Index.DocumentStore.Docs == nil {
		return nil, faqbot.Errorf(faqbot.EFORMAT, "search index lacks doc_urls or docs")
	}
	store := index.Index.DocumentStore
	if *store.Length != len(index.DocURLs) || *store.Length != len(store.Docs) {
		return nil, faqbot.Errorf(faqbot.EFORMAT,
			"search index counts disagree: length=%d doc_urls=%d docs=%d",
			*store.Length, len(index.DocURLs), len(store.Docs))
	}

	type numbered struct {
		id  int
		doc doc
	}
	docs := make([]numbered, 0, len(store.Docs))
	for key, d := range store.Docs {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, faqbot.Errorf(faqbot.EFORMAT, "document ID %q is not a number", key)
		}
		if id < 0 || id >= len(index.DocURLs) {
			return nil, faqbot.Errorf(faqbot.EFORMAT, "document ID %d out of range", id)
		}
		if d.Title == nil || d.Breadcrumbs == nil {
			return nil, faqbot.Errorf(faqbot.EFORMAT, "document %d lacks title or breadcrumbs", id)
		}
		docs = append(docs, numbered{id: id, doc: d})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].id < docs[j].id })

	entries := make([]*Entry, 0, len(docs))
	for _, d := range docs {
		u := index.DocURLs[d.id]
		if !strings.HasPrefix(u, "/") {
			u = "/" + u
		}
		entries = append(entries, &Entry{
			URL:         u,
			Title:       *d.doc.Title,
			Breadcrumbs: *d.doc.Breadcrumbs,
		})
	}
	return entries, nil
}
