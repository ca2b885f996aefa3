package sitemaphtml_test

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/faqbot"
	"github.com/fwojciec/faqbot/mock"
	"github.com/fwojciec/faqbot/sitemaphtml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sitemap = `<ul>
<li><a href="/faq/cross-ref">交叉引用</a></li>
<li><a href="/faq/bib-style">参考文献格式</a></li>
<li><a href="/faq/chinese-fonts">中文字体</a></li>
</ul>
`

func TestParseSitemap(t *testing.T) {
	t.Parallel()

	t.Run("one entry per list item", func(t *testing.T) {
		t.Parallel()

		entries, err := sitemaphtml.ParseSitemap(sitemap)

		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, &sitemaphtml.Entry{URL: "/faq/cross-ref", Title: "交叉引用"}, entries[0])
		assert.Equal(t, "/faq/chinese-fonts", entries[2].Href())
		assert.Equal(t, "中文字体", entries[2].Human())
	})

	t.Run("reproduces generated lines", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString("<ul>\r\n")
		for i := range 20 {
			fmt.Fprintf(&b, "<li><a href=\"/p/%d\">Page %d</a></li>\r\n", i, i)
		}
		b.WriteString("</ul>")

		entries, err := sitemaphtml.ParseSitemap(b.String())

		require.NoError(t, err)
		require.Len(t, entries, 20)
		for i, e := range entries {
			assert.Equal(t, fmt.Sprintf("/p/%d", i), e.URL)
			assert.Equal(t, fmt.Sprintf("Page %d", i), e.Title)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()

		entries, err := sitemaphtml.ParseSitemap("<ul>\n</ul>")

		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("rejects non-link lines", func(t *testing.T) {
		t.Parallel()

		_, err := sitemaphtml.ParseSitemap("<ul>\n<li>plain</li>\n</ul>")

		assert.Equal(t, faqbot.EFORMAT, faqbot.ErrorCode(err))
	})
}

func TestBackend_Search(t *testing.T) {
	t.Parallel()

	newFetcher := func(calls *atomic.Int32) *mock.Fetcher {
		return &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				calls.Add(1)
				if url != "https://bithesis.bitnp.net/sitemap.html" {
					return "", fmt.Errorf("unexpected URL %s", url)
				}
				return sitemap, nil
			},
		}
	}

	t.Run("matches URL or title", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		b := sitemaphtml.NewBackend(newFetcher(&calls), nil)

		found, err := b.Search(context.Background(), "https://bithesis.bitnp.net", []string{"bib", "字体"})

		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "/faq/bib-style", found[0].Href())
		assert.Equal(t, "/faq/chinese-fonts", found[1].Href())
	})

	t.Run("matching is case-sensitive", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		b := sitemaphtml.NewBackend(newFetcher(&calls), nil)

		found, err := b.Search(context.Background(), "https://bithesis.bitnp.net", []string{"BIB"})

		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("fetches once per base URL", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		b := sitemaphtml.NewBackend(newFetcher(&calls), nil)

		for range 3 {
			_, err := b.Search(context.Background(), "https://bithesis.bitnp.net", []string{"x"})
			require.NoError(t, err)
		}

		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", faqbot.Errorf(faqbot.EINTERNAL, "boom")
			},
		}
		b := sitemaphtml.NewBackend(fetcher, nil)

		_, err := b.Search(context.Background(), "https://bithesis.bitnp.net", []string{"x"})

		assert.Equal(t, faqbot.EINTERNAL, faqbot.ErrorCode(err))
	})
}
