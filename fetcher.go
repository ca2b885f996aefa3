package faqbot

import "context"

// Fetcher retrieves the body of a URL with a GET request.
// Redirects are followed.
type Fetcher interface {
	// Fetch returns the response body as a string.
	// Non-200 responses are returned as errors.
	Fetch(ctx context.Context, url string) (body string, err error)
}
