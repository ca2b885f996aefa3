package mock

import (
	"context"

	"github.com/fwojciec/faqbot"
)

var _ faqbot.SearchBackend = (*SearchBackend)(nil)

// SearchBackend is a mock implementation of faqbot.SearchBackend.
type SearchBackend struct {
	SearchFn func(ctx context.Context, baseURL string, keywords []string) ([]faqbot.Entry, error)
}

func (b *SearchBackend) Search(ctx context.Context, baseURL string, keywords []string) ([]faqbot.Entry, error) {
	return b.SearchFn(ctx, baseURL, keywords)
}

// Entry is a fixed faqbot.Entry.
type Entry struct {
	HrefValue  string
	HumanValue string
}

func (e Entry) Href() string  { return e.HrefValue }
func (e Entry) Human() string { return e.HumanValue }
