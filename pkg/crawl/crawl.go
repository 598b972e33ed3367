package crawl

import (
	"context"
	"log"
	"time"

	"news-sitemap/pkg/domain"
	"news-sitemap/pkg/feeds"
	"news-sitemap/pkg/fetcher"
	"news-sitemap/pkg/sitemap"
)

// OutcomeKind identifies the result of a single crawl step
type OutcomeKind int

const (
	// Advanced means a sitemap page was fetched and processed
	Advanced OutcomeKind = iota
	// Empty means the frontier was already drained; the crawl is done
	Empty
	// FetchFailed means the page could not be fetched or parsed; the
	// failure was recorded and the crawl remains resumable
	FetchFailed
)

// Outcome is what a single VisitOne step produced
type Outcome struct {
	Kind              OutcomeKind
	NewArticles       []domain.ArticleRecord
	NewSitemapsQueued int
	FailedURL         string
	ErrorKind         string
}

// ErrorKindMalformed marks documents that fetched fine but were not
// parseable as a sitemap (or, when enabled, a feed)
const ErrorKindMalformed = "malformed"

// Crawler drives fetch-then-parse over a State's frontier, one page per
// step. It performs no internal concurrency: at most one fetch is in
// flight per State, and the caller decides when the next step runs.
type Crawler struct {
	fetcher    fetcher.Fetcher
	feedParser *feeds.Parser
}

// NewCrawler creates a crawler using the given fetch capability.
// Feed fallback is enabled by default since robots.txt Sitemap: lines
// sometimes point at RSS feeds rather than sitemap XML.
func NewCrawler(f fetcher.Fetcher) *Crawler {
	return &Crawler{
		fetcher:    f,
		feedParser: feeds.NewParser(),
	}
}

// SetFeedFallback enables or disables parsing non-sitemap documents as
// RSS/Atom feeds
func (c *Crawler) SetFeedFallback(enabled bool) {
	if enabled && c.feedParser == nil {
		c.feedParser = feeds.NewParser()
	} else if !enabled {
		c.feedParser = nil
	}
}

// VisitOne performs a single crawl step: pop the next unseen sitemap URL,
// fetch it, parse it, and either collect article records or queue child
// sitemaps. Per-URL failures are recorded in state.Errors and never abort
// the crawl. The caller may interleave arbitrary work between calls.
func (c *Crawler) VisitOne(ctx context.Context, state *State) Outcome {
	// Skip already-seen entries iteratively; bounded by frontier size
	var next string
	for {
		url, ok := state.pop()
		if !ok {
			state.done = true
			return Outcome{Kind: Empty}
		}
		if !state.seenSitemaps[url] {
			next = url
			break
		}
	}

	state.seenSitemaps[next] = true
	state.visited++

	result, err := c.fetcher.Fetch(ctx, next)
	if err != nil {
		kind, reason := fetcher.Classify(err)
		log.Printf("Crawler: fetch failed for %s: %s", next, reason)
		state.Errors = append(state.Errors, VisitError{
			SitemapURL: next,
			Kind:       string(kind),
			Reason:     reason,
		})
		return Outcome{Kind: FetchFailed, FailedURL: next, ErrorKind: string(kind)}
	}

	parsed := sitemap.Parse(result.Body, result.ContentType)
	switch parsed.Kind {
	case sitemap.KindIndex:
		queued := 0
		for _, child := range parsed.Sitemaps {
			if state.push(child) {
				queued++
			}
		}
		log.Printf("Crawler: %s: sitemap index, queued %d of %d children", next, queued, len(parsed.Sitemaps))
		return Outcome{Kind: Advanced, NewSitemapsQueued: queued}

	case sitemap.KindLeaf:
		newOnes := c.collectArticles(state, parsed.Articles)
		log.Printf("Crawler: %s: urlset, %d new of %d articles", next, len(newOnes), len(parsed.Articles))
		return Outcome{Kind: Advanced, NewArticles: newOnes}

	default:
		// Not a sitemap; before recording a malformed error, see if the
		// document is an RSS/Atom feed declared via robots.txt
		if c.feedParser != nil && feeds.LooksLikeFeed(result.Body) {
			if records, ferr := c.feedParser.Parse(result.Body); ferr == nil {
				newOnes := c.collectArticles(state, records)
				log.Printf("Crawler: %s: feed, %d new of %d items", next, len(newOnes), len(records))
				return Outcome{Kind: Advanced, NewArticles: newOnes}
			}
		}

		log.Printf("Crawler: %s: malformed document: %s", next, parsed.Reason)
		state.Errors = append(state.Errors, VisitError{
			SitemapURL: next,
			Kind:       ErrorKindMalformed,
			Reason:     parsed.Reason,
		})
		return Outcome{Kind: FetchFailed, FailedURL: next, ErrorKind: ErrorKindMalformed}
	}
}

// collectArticles adds records to the state, keeping the first-seen record
// when the same article URL appears in multiple sitemaps
func (c *Crawler) collectArticles(state *State, records []domain.ArticleRecord) []domain.ArticleRecord {
	now := time.Now()
	var newOnes []domain.ArticleRecord
	for _, record := range records {
		record.CrawledAt = now
		if state.addArticle(record) {
			newOnes = append(newOnes, record)
		}
	}
	return newOnes
}

// Run drains the frontier by calling VisitOne until the state is done,
// returning the collected records and the error log. Expansion of nested
// sitemap indexes happens entirely through the frontier, so call depth
// stays constant regardless of tree depth.
func (c *Crawler) Run(ctx context.Context, state *State) ([]domain.ArticleRecord, []VisitError) {
	for {
		select {
		case <-ctx.Done():
			return state.Results, state.Errors
		default:
		}

		outcome := c.VisitOne(ctx, state)
		if outcome.Kind == Empty {
			return state.Results, state.Errors
		}
	}
}
