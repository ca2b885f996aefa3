// Package goquery extracts content from typst Universe package pages using
// goquery.
package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/faqbot"
	"github.com/fwojciec/faqbot/cache"
)

// ExampleSelector matches code blocks of a package README.
const ExampleSelector = "code.language-typ, code.language-typst"

// Ensure ExampleFinder implements faqbot.ExampleFinder.
var _ faqbot.ExampleFinder = (*ExampleFinder)(nil)

// ExampleFinder finds the first importing example on a package page.
type ExampleFinder struct {
	fetcher faqbot.Fetcher
	cache   *cache.Cache[string]
}

// NewExampleFinder creates an ExampleFinder. If c is nil a cache with
// cache.PackageRegistryTTL is created.
func NewExampleFinder(fetcher faqbot.Fetcher, c *cache.Cache[string]) *ExampleFinder {
	if c == nil {
		c = cache.New[string](cache.PackageRegistryTTL)
	}
	return &ExampleFinder{fetcher: fetcher, cache: c}
}

// FindExample implements faqbot.ExampleFinder.
func (f *ExampleFinder) FindExample(ctx context.Context, pageURL string) (string, bool, error) {
	example, err := f.cache.Get(ctx, pageURL, func(ctx context.Context) (string, error) {
		html, err := f.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return "", err
		}
		return ExtractExample(html)
	})
	if err != nil {
		return "", false, err
	}
	return example, example != "", nil
}

// ExtractExample returns the first code block that contains "#import ",
// with local imports rewritten to the preview namespace. It returns an
// empty string if there is none.
func ExtractExample(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", faqbot.Errorf(faqbot.EFORMAT, "failed to parse HTML: %v", err)
	}

	var example string
	doc.Find(ExampleSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		if strings.Contains(text, "#import ") {
			example = strings.ReplaceAll(text, "@local/", "@preview/")
			return false
		}
		return true
	})
	return example, nil
}
