package http

import (
	"context"
	"encoding/json"
	"maps"

	"github.com/fwojciec/faqbot"
	"github.com/fwojciec/faqbot/cache"
)

// DefaultRegistryURL lists every package version in the preview namespace.
const DefaultRegistryURL = "https://packages.typst.org/preview/index.json"

// Ensure PackageRegistry implements faqbot.PackageRegistry.
var _ faqbot.PackageRegistry = (*PackageRegistry)(nil)

// PackageRegistry reads the typst package index.
type PackageRegistry struct {
	fetcher faqbot.Fetcher
	cache   *cache.Cache[map[string]string]
	url     string
}

// NewPackageRegistry creates a PackageRegistry. If c is nil a cache with
// cache.PackageRegistryTTL is created.
func NewPackageRegistry(fetcher faqbot.Fetcher, c *cache.Cache[map[string]string]) *PackageRegistry {
	if c == nil {
		c = cache.New[map[string]string](cache.PackageRegistryTTL)
	}
	return &PackageRegistry{fetcher: fetcher, cache: c, url: DefaultRegistryURL}
}

// SetURL overrides the index URL.
func (r *PackageRegistry) SetURL(u string) {
	r.url = u
}

// LatestVersions maps each package name to its latest version.
// The whole index is cached under a single key; callers get a copy.
func (r *PackageRegistry) LatestVersions(ctx context.Context) (map[string]string, error) {
	versions, err := r.cache.Get(ctx, r.url, func(ctx context.Context) (map[string]string, error) {
		body, err := r.fetcher.Fetch(ctx, r.url)
		if err != nil {
			return nil, err
		}
		return ParsePackageIndex(body)
	})
	if err != nil {
		return nil, err
	}
	return maps.Clone(versions), nil
}

type packageRecord struct {
	Name    *string `json:"name"`
	Version *string `json:"version"`
}

// ParsePackageIndex maps package names to the version of their last record.
// The index lists versions in ascending order.
func ParsePackageIndex(body string) (map[string]string, error) {
	var records []packageRecord
	if err := json.Unmarshal([]byte(body), &records); err != nil {
		return nil, faqbot.Errorf(faqbot.EFORMAT, "invalid package index: %v", err)
	}

	latest := make(map[string]string, len(records))
	for i, rec := range records {
		if rec.Name == nil || rec.Version == nil {
			return nil, faqbot.Errorf(faqbot.EFORMAT, "package index record %d lacks name or version", i)
		}
		latest[*rec.Name] = *rec.Version
	}
	return latest, nil
}
