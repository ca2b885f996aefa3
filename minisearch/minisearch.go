// Package minisearch searches headings in the local search index that
// VitePress builds with MiniSearch (https://lucaong.github.io/minisearch/).
//
// The index is not served at a fixed path. It is found by following the
// built assets: the page links the theme bundle, the theme bundle names the
// local search box bundle, and the search box imports the index module.
package minisearch

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/faqbot"
	"github.com/fwojciec/faqbot/cache"
)

// Entry is one heading of a page.
type Entry struct {
	URL   string
	Title string

	// Titles lists enclosing headings from the outermost down to, but not
	// including, Title. Empty for page titles.
	Titles []string
}

// Href implements faqbot.Entry.
func (e *Entry) Href() string { return e.URL }

// Human joins the title and its enclosing headings, nearest first.
func (e *Entry) Human() string {
	parts := make([]string, 0, len(e.Titles)+1)
	parts = append(parts, e.Title)
	for i := len(e.Titles) - 1; i >= 0; i-- {
		parts = append(parts, e.Titles[i])
	}
	return strings.Join(parts, " - ")
}

// Ensure Backend implements faqbot.SearchBackend.
var _ faqbot.SearchBackend = (*Backend)(nil)

// Backend searches VitePress local search indices. Entries match on title.
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

// Entries returns every heading of the site at baseURL.
func (b *Backend) Entries(ctx context.Context, baseURL string) ([]*Entry, error) {
	return b.cache.Get(ctx, baseURL, func(ctx context.Context) ([]*Entry, error) {
		base, err := url.Parse(baseURL)
		if err != nil {
			return nil, faqbot.Errorf(faqbot.EINVALID, "invalid base URL %q: %v", baseURL, err)
		}
		root := strings.TrimSuffix(base.Path, "/")

		index, err := b.fetchIndex(ctx, baseURL, base, root)
		if err != nil {
			return nil, err
		}
		return ParseSearchIndex(root, index)
	})
}

// fetchIndex follows the asset chain from the home page to the index JSON.
func (b *Backend) fetchIndex(ctx context.Context, baseURL string, base *url.URL, root string) ([]byte, error) {
	html, err := b.fetcher.Fetch(ctx, baseURL)
	if err != nil {
		return nil, err
	}
	themePath, err := FindThemeAsset(html, root)
	if err != nil {
		return nil, err
	}

	themeURL := url.URL{Scheme: base.Scheme, Host: base.Host, Path: themePath}
	themeJS, err := b.fetcher.Fetch(ctx, themeURL.String())
	if err != nil {
		return nil, err
	}
	searchBoxPath, err := FindSearchBoxAsset(themeJS)
	if err != nil {
		return nil, err
	}

	searchBoxJS, err := b.fetcher.Fetch(ctx, baseURL+"/"+searchBoxPath)
	if err != nil {
		return nil, err
	}
	indexPath, err := FindSearchIndexAsset(searchBoxJS)
	if err != nil {
		return nil, err
	}

	indexJS, err := b.fetcher.Fetch(ctx, baseURL+"/assets/chunks"+indexPath)
	if err != nil {
		return nil, err
	}
	return []byte(UnwrapSearchIndexModule(indexJS)), nil
}
