package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"news-sitemap/pkg/content"
	"news-sitemap/pkg/crawl"
	"news-sitemap/pkg/db"
	"news-sitemap/pkg/discover"
	"news-sitemap/pkg/domain"
	"news-sitemap/pkg/fetcher"
	"news-sitemap/pkg/urls"
)

// Service composes discovery, crawling, optional enrichment and persistence
// into the end-to-end flow for one site's news sitemap tree.
type Service struct {
	discoverer *discover.Discoverer
	crawler    *crawl.Crawler
	db         *db.Client
	enricher   *content.Enricher

	maxPages int
	newsOnly bool
}

var (
	ErrEmptySiteRoot = errors.New("site root is empty")
)

// New creates a service using the given fetch capability. dbClient may be
// nil, in which case records are not persisted.
func New(f fetcher.Fetcher, dbClient *db.Client) *Service {
	return &Service{
		discoverer: discover.NewDiscoverer(f),
		crawler:    crawl.NewCrawler(f),
		db:         dbClient,
	}
}

// SetMaxPages limits how many sitemap pages one crawl may visit.
// If max <= 0, the crawl runs until the frontier is drained.
func (s *Service) SetMaxPages(max int) {
	s.maxPages = max
}

// SetNewsOnly restricts output to records carrying Google News metadata
func (s *Service) SetNewsOnly(newsOnly bool) {
	s.newsOnly = newsOnly
}

// SetEnricher enables title enrichment for records lacking a news title
func (s *Service) SetEnricher(e *content.Enricher) {
	s.enricher = e
}

// CrawlSite discovers the site's candidate sitemaps, drains the crawl
// frontier one page at a time, optionally enriches and persists the
// deduplicated records, and returns a report. Per-sitemap failures are
// collected in the report; only an invalid site root fails outright.
func (s *Service) CrawlSite(ctx context.Context, siteRoot string) (*domain.CrawlReport, error) {
	if siteRoot == "" {
		return nil, ErrEmptySiteRoot
	}

	started := time.Now()

	seeds, err := s.discoverer.Discover(ctx, siteRoot)
	if err != nil {
		return nil, fmt.Errorf("discover sitemaps: %w", err)
	}

	state := crawl.NewState(seeds)
	s.drain(ctx, state)

	records := state.Results
	if s.newsOnly {
		records = filterNews(records)
	}
	if s.enricher != nil {
		records = s.enricher.Enrich(ctx, records)
	}

	if s.db != nil {
		if err := s.saveRecords(ctx, siteRoot, records); err != nil {
			return nil, err
		}
	}

	report := &domain.CrawlReport{
		SiteRoot:        siteRoot,
		SeedSitemaps:    len(seeds),
		SitemapsVisited: state.Visited(),
		Articles:        len(records),
		NewsArticles:    countNews(records),
		StartedAt:       started,
		Duration:        time.Since(started),
	}
	for _, visitErr := range state.Errors {
		report.Errors = append(report.Errors, domain.CrawlError{
			SitemapURL: visitErr.SitemapURL,
			Kind:       visitErr.Kind,
			Reason:     visitErr.Reason,
		})
	}
	return report, nil
}

// drain runs the single-step crawl loop, honoring the page budget
func (s *Service) drain(ctx context.Context, state *crawl.State) {
	for {
		if s.maxPages > 0 && state.Visited() >= s.maxPages {
			log.Printf("Service: page budget of %d reached, stopping crawl", s.maxPages)
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := s.crawler.VisitOne(ctx, state)
		if outcome.Kind == crawl.Empty {
			return
		}
	}
}

// saveRecords persists records, skipping URLs already stored
func (s *Service) saveRecords(ctx context.Context, siteRoot string, records []domain.ArticleRecord) error {
	stored, err := s.db.GetAllURLs(ctx)
	if err != nil {
		return fmt.Errorf("load stored URLs: %w", err)
	}
	filter := urls.NewAlreadyStoredFilter(stored)

	saved := 0
	for i := range records {
		keep, err := filter.ShouldKeep(ctx, records[i].URL)
		if err != nil || !keep {
			continue
		}
		if err := s.db.SaveRecord(ctx, &records[i]); err != nil {
			log.Printf("Service: failed to save %s: %v", records[i].URL, err)
			continue
		}
		saved++
	}
	log.Printf("Service: saved %d of %d records for %s", saved, len(records), siteRoot)
	return nil
}

func filterNews(records []domain.ArticleRecord) []domain.ArticleRecord {
	filtered := make([]domain.ArticleRecord, 0, len(records))
	for _, record := range records {
		if record.HasNews() {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

func countNews(records []domain.ArticleRecord) int {
	count := 0
	for _, record := range records {
		if record.HasNews() {
			count++
		}
	}
	return count
}
