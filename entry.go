package faqbot

import (
	"context"
	"strings"
)

// Entry is one searchable page or section of an indexed site.
type Entry interface {
	// Href returns the URL of the entry relative to the site's base URL.
	// It starts with "/" and never includes the base URL, so the same entry
	// can be displayed against mirrors of the site.
	Href() string

	// Human returns a one-line label for display.
	Human() string
}

// SearchBackend searches one kind of site index.
type SearchBackend interface {
	// Search returns the entries of the site at baseURL that match any of
	// the keywords. Results keep index order.
	Search(ctx context.Context, baseURL string, keywords []string) ([]Entry, error)
}

// Match reports whether any keyword is a substring of any document.
// Matching is case-sensitive and keywords are combined with OR, so
// "A B" matches everything "A" matches plus everything "B" matches.
func Match(keywords, documents []string) bool {
	for _, key := range keywords {
		for _, doc := range documents {
			if strings.Contains(doc, key) {
				return true
			}
		}
	}
	return false
}
