package faqbot

import (
	"context"
	"strings"
)

// DefaultMaxResults is the number of entries shown in one reply.
const DefaultMaxResults = 5

// Ellipsis is appended to a reply when results were truncated.
const Ellipsis = "……"

// SearchHandler tries a list of search backends in order and formats the
// results of the first one that finds anything.
//
// A reply never mixes results of different backends.
type SearchHandler struct {
	targets    []searchTarget
	fallback   string
	maxResults int
}

type searchTarget struct {
	baseURL string
	backend SearchBackend
}

// SearchOption configures a SearchHandler.
type SearchOption func(*SearchHandler)

// WithMaxResults sets the maximum number of entries in a reply.
// Defaults to DefaultMaxResults.
func WithMaxResults(n int) SearchOption {
	return func(h *SearchHandler) {
		h.maxResults = n
	}
}

// NewSearchHandler creates a SearchHandler.
//
// If a single base URL is given it is used for every backend; otherwise
// baseURLs pairs one-to-one with backends. fallback is returned verbatim
// when no backend finds anything.
func NewSearchHandler(baseURLs []string, backends []SearchBackend, fallback string, opts ...SearchOption) (*SearchHandler, error) {
	if len(backends) == 0 {
		return nil, Errorf(EINVALID, "at least one search backend required")
	}
	if len(baseURLs) == 0 {
		return nil, Errorf(EINVALID, "base URL required")
	}
	if len(baseURLs) != 1 && len(baseURLs) != len(backends) {
		return nil, Errorf(EINVALID, "got %d base URLs for %d backends", len(baseURLs), len(backends))
	}
	for _, u := range baseURLs {
		if err := ValidateBaseURL(u); err != nil {
			return nil, err
		}
	}

	h := &SearchHandler{
		fallback:   fallback,
		maxResults: DefaultMaxResults,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.maxResults <= 0 {
		return nil, Errorf(EINVALID, "max results must be positive, got %d", h.maxResults)
	}

	for i, backend := range backends {
		base := baseURLs[0]
		if len(baseURLs) > 1 {
			base = baseURLs[i]
		}
		h.targets = append(h.targets, searchTarget{baseURL: base, backend: backend})
	}
	return h, nil
}

// ValidateBaseURL returns an error unless u starts with "https://" and has
// no trailing slash.
func ValidateBaseURL(u string) error {
	if !strings.HasPrefix(u, "https://") {
		return Errorf(EINVALID, "base URL %q must start with https://", u)
	}
	if strings.HasSuffix(u, "/") {
		return Errorf(EINVALID, "base URL %q must not end with a slash", u)
	}
	return nil
}

// Handle splits query on whitespace and returns the formatted reply.
func (h *SearchHandler) Handle(ctx context.Context, query string) (string, error) {
	keywords := strings.Fields(query)

	for _, t := range h.targets {
		entries, err := t.backend.Search(ctx, t.baseURL, keywords)
		if err != nil {
			return "", err
		}
		if len(entries) > 0 {
			return FormatEntries(t.baseURL, entries, h.maxResults), nil
		}
	}

	return h.fallback, nil
}

// FormatEntries formats at most max entries as "label\nURL" blocks
// separated by blank lines. Ellipsis is appended if entries were dropped.
func FormatEntries(baseURL string, entries []Entry, max int) string {
	shown := entries
	if len(shown) > max {
		shown = shown[:max]
	}

	parts := make([]string, 0, len(shown)+1)
	for _, e := range shown {
		parts = append(parts, e.Human()+"\n"+baseURL+e.Href())
	}
	if len(entries) > max {
		parts = append(parts, Ellipsis)
	}

	return strings.Join(parts, "\n\n")
}
