package urls

import (
	"context"
	"net/url"
	"strings"
)

// UrlFilter defines the interface for URL filtering
type UrlFilter interface {
	ShouldKeep(ctx context.Context, url string) (bool, error)
}

// AlreadyStoredFilter filters out URLs that already exist in the provided set
type AlreadyStoredFilter struct {
	storedURLs map[string]bool
}

// NewAlreadyStoredFilter creates a new already-stored filter
func NewAlreadyStoredFilter(storedURLs map[string]bool) *AlreadyStoredFilter {
	return &AlreadyStoredFilter{
		storedURLs: storedURLs,
	}
}

// ShouldKeep returns false if URL is already in the stored set
func (f *AlreadyStoredFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	exists := f.storedURLs[urlStr]
	return !exists, nil
}

// SameHostFilter keeps only URLs whose host matches the crawled site's host.
// The www prefix is ignored on both sides, so www.example.com and example.com
// are treated as the same site.
type SameHostFilter struct {
	host string
}

// NewSameHostFilter creates a filter scoped to the host of the given site root
func NewSameHostFilter(siteRoot string) *SameHostFilter {
	host := ""
	if parsed, err := url.Parse(siteRoot); err == nil {
		host = stripWWW(strings.ToLower(parsed.Hostname()))
	}
	return &SameHostFilter{host: host}
}

// ShouldKeep returns true if URL belongs to the configured host
func (f *SameHostFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	if f.host == "" {
		return true, nil
	}
	parsed, err := url.Parse(urlStr)
	if err != nil {
		// If we can't parse it, don't filter it out (let it fail later if needed)
		return true, nil
	}
	return stripWWW(strings.ToLower(parsed.Hostname())) == f.host, nil
}

func stripWWW(host string) string {
	return strings.TrimPrefix(host, "www.")
}
