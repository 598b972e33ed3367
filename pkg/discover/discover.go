package discover

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strings"

	"news-sitemap/pkg/fetcher"
	"news-sitemap/pkg/urls"

	"github.com/PuerkitoBio/goquery"
	"github.com/temoto/robotstxt"
)

// ConfigError marks a fatal precondition failure (an unusable site root),
// as opposed to the non-fatal network conditions discovery tolerates
type ConfigError struct {
	SiteRoot string
	Reason   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid site root %q: %s", e.SiteRoot, e.Reason)
}

// Discoverer produces the seed set of candidate sitemap URLs for a site by
// combining robots.txt declarations, well-known paths and homepage hints.
// It fetches robots.txt and (optionally) the homepage, but never any
// sitemap body; fetching sitemaps is the crawler's responsibility.
type Discoverer struct {
	fetcher        fetcher.Fetcher
	probeHomepage  bool
	wellKnownPaths []string
}

// NewDiscoverer creates a discoverer using the given fetch capability
func NewDiscoverer(f fetcher.Fetcher) *Discoverer {
	return &Discoverer{
		fetcher:        f,
		probeHomepage:  true,
		wellKnownPaths: WellKnownPaths(),
	}
}

// SetProbeHomepage toggles scanning the homepage HTML for sitemap and feed
// link hints (on by default)
func (d *Discoverer) SetProbeHomepage(probe bool) {
	d.probeHomepage = probe
}

// SetWellKnownPaths overrides the candidate paths probed in addition to
// robots.txt declarations. Pass nil to rely on robots.txt and homepage
// hints alone.
func (d *Discoverer) SetWellKnownPaths(paths []string) {
	d.wellKnownPaths = paths
}

// Discover returns the normalized, deduplicated seed set of candidate
// sitemap URLs for siteRoot. A fetch failure of robots.txt or the homepage
// is non-fatal; only an unusable site root returns an error (*ConfigError).
func (d *Discoverer) Discover(ctx context.Context, siteRoot string) ([]string, error) {
	root, err := validateSiteRoot(siteRoot)
	if err != nil {
		return nil, err
	}

	var candidates []string

	// robots.txt declarations first: either source may be incomplete, so
	// the result is always the union of both
	declared, err := d.robotsSitemaps(ctx, root)
	if err != nil {
		log.Printf("Discover: robots.txt unavailable for %s: %v", root, err)
	} else {
		candidates = append(candidates, declared...)
	}

	for _, p := range d.wellKnownPaths {
		candidates = append(candidates, root+p)
	}

	if d.probeHomepage {
		hints, err := d.homepageHints(ctx, root)
		if err != nil {
			log.Printf("Discover: homepage probe failed for %s: %v", root, err)
		} else {
			candidates = append(candidates, hints...)
		}
	}

	// Sort before dedup so the seed set is identical across runs
	// regardless of which source produced a URL first
	sort.Strings(candidates)
	seeds := urls.Dedup(candidates)
	log.Printf("Discover: %d candidate sitemap URLs for %s", len(seeds), root)
	return seeds, nil
}

// robotsSitemaps fetches {root}/robots.txt and returns the URLs declared by
// Sitemap: directives. The directive is site-wide per the Sitemap protocol,
// so user-agent groups are ignored.
func (d *Discoverer) robotsSitemaps(ctx context.Context, root string) ([]string, error) {
	result, err := d.fetcher.Fetch(ctx, root+"robots.txt")
	if err != nil {
		return nil, err
	}

	robots, err := robotstxt.FromBytes(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse robots.txt: %w", err)
	}

	var declared []string
	for _, raw := range robots.Sitemaps {
		raw = strings.TrimSpace(raw)
		if raw == "" || !urls.IsHTTP(raw) {
			continue
		}
		declared = append(declared, raw)
	}
	return declared, nil
}

// homepageHints fetches the homepage and scans it for <link> elements
// pointing at sitemaps or news feeds
func (d *Discoverer) homepageHints(ctx context.Context, root string) ([]string, error) {
	result, err := d.fetcher.Fetch(ctx, root)
	if err != nil {
		return nil, err
	}

	return extractLinkHints(result.Body, root)
}

// extractLinkHints pulls sitemap/feed URLs out of homepage HTML:
// <link rel="sitemap"> and <link rel="alternate" type="application/rss+xml">
func extractLinkHints(body []byte, root string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse homepage HTML: %w", err)
	}

	base, err := url.Parse(root)
	if err != nil {
		return nil, err
	}

	var hints []string
	doc.Find("link[href]").Each(func(i int, sel *goquery.Selection) {
		rel, _ := sel.Attr("rel")
		typ, _ := sel.Attr("type")
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		rel = strings.ToLower(rel)
		typ = strings.ToLower(typ)

		isSitemap := rel == "sitemap"
		isFeed := rel == "alternate" && (strings.Contains(typ, "rss") || strings.Contains(typ, "atom"))
		if !isSitemap && !isFeed {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		hints = append(hints, base.ResolveReference(ref).String())
	})

	return hints, nil
}

// validateSiteRoot checks and canonicalizes the site root, guaranteeing a
// trailing slash so paths can be appended directly
func validateSiteRoot(siteRoot string) (string, error) {
	trimmed := strings.TrimSpace(siteRoot)
	if trimmed == "" {
		return "", &ConfigError{SiteRoot: siteRoot, Reason: "empty"}
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", &ConfigError{SiteRoot: siteRoot, Reason: err.Error()}
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", &ConfigError{SiteRoot: siteRoot, Reason: "scheme must be http or https"}
	}
	if parsed.Host == "" {
		return "", &ConfigError{SiteRoot: siteRoot, Reason: "missing host"}
	}

	canon, err := urls.Normalize(trimmed)
	if err != nil {
		return "", &ConfigError{SiteRoot: siteRoot, Reason: err.Error()}
	}
	if !strings.HasSuffix(canon, "/") {
		canon += "/"
	}
	return canon, nil
}
