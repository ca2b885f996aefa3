package http_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/faqbot"
	bothttp "github.com/fwojciec/faqbot/http"
	"github.com/fwojciec/faqbot/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const packageIndex = `[
  {"name": "cetz", "version": "0.2.2", "entrypoint": "src/lib.typ"},
  {"name": "tablex", "version": "0.0.8"},
  {"name": "cetz", "version": "0.3.4"}
]`

func TestParsePackageIndex(t *testing.T) {
	t.Parallel()

	t.Run("last record wins", func(t *testing.T) {
		t.Parallel()

		got, err := bothttp.ParsePackageIndex(packageIndex)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"cetz": "0.3.4", "tablex": "0.0.8"}, got)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		t.Parallel()

		_, err := bothttp.ParsePackageIndex(`{"name": "cetz"}`)

		assert.Equal(t, faqbot.EFORMAT, faqbot.ErrorCode(err))
	})

	t.Run("record without version", func(t *testing.T) {
		t.Parallel()

		_, err := bothttp.ParsePackageIndex(`[{"name": "cetz"}]`)

		assert.Equal(t, faqbot.EFORMAT, faqbot.ErrorCode(err))
	})
}

func TestPackageRegistry_LatestVersions(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	var requested string
	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			calls.Add(1)
			requested = url
			return packageIndex, nil
		},
	}
	r := bothttp.NewPackageRegistry(fetcher, nil)
	r.SetURL("https://packages.example.test/preview/index.json")

	for range 2 {
		got, err := r.LatestVersions(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "0.3.4", got["cetz"])
	}

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "https://packages.example.test/preview/index.json", requested)
}

func TestPackageRegistry_LatestVersions_CallerCannotChangeCache(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return packageIndex, nil
		},
	}
	r := bothttp.NewPackageRegistry(fetcher, nil)

	first, err := r.LatestVersions(context.Background())
	require.NoError(t, err)
	first["cetz"] = "9.9.9"
	delete(first, "tablex")

	second, err := r.LatestVersions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"cetz": "0.3.4", "tablex": "0.0.8"}, second)
}
