package manager

import (
	"context"
	"fmt"
	"log"
	"sync"

	"news-sitemap/pkg/db"
	"news-sitemap/pkg/domain"
	"news-sitemap/pkg/fetcher"
	"news-sitemap/pkg/service"
)

// Manager distributes site roots to workers and crawls them concurrently.
// Each worker builds its own service (and therefore its own crawl state),
// so no mutable crawl state is ever shared across sites.
type Manager struct {
	workerCount int
	dbClient    *db.Client
	newFetcher  func() fetcher.Fetcher
	configure   func(*service.Service)
}

// NewManager creates a new manager. newFetcher is called once per worker
// so fetchers are never shared across goroutines accidentally.
func NewManager(workerCount int, dbClient *db.Client, newFetcher func() fetcher.Fetcher) *Manager {
	if workerCount <= 0 {
		workerCount = 1
	}
	return &Manager{
		workerCount: workerCount,
		dbClient:    dbClient,
		newFetcher:  newFetcher,
	}
}

// SetServiceConfig installs a hook applied to every per-worker service
// (page budgets, news-only filtering, enrichment)
func (m *Manager) SetServiceConfig(configure func(*service.Service)) {
	m.configure = configure
}

// CrawlSites distributes site roots to workers and crawls them
// concurrently, returning one report per successfully crawled site
func (m *Manager) CrawlSites(ctx context.Context, siteRoots []string) ([]*domain.CrawlReport, error) {
	// Create job channel
	jobChan := make(chan string, len(siteRoots))
	for _, root := range siteRoots {
		jobChan <- root
	}
	close(jobChan)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var reports []*domain.CrawlReport
	var errorCount int64

	for i := 0; i < m.workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			svc := service.New(m.newFetcher(), m.dbClient)
			if m.configure != nil {
				m.configure(svc)
			}

			for root := range jobChan {
				report, err := svc.CrawlSite(ctx, root)

				mu.Lock()
				if err != nil {
					errorCount++
					log.Printf("Worker %d: Error crawling %s: %v", workerID, root, err)
				} else {
					reports = append(reports, report)
					log.Printf("Worker %d: %s: %d articles, %d errors", workerID, root, report.Articles, len(report.Errors))
				}
				mu.Unlock()
			}
		}(i)
	}

	wg.Wait()

	log.Printf("Completed: %d sites crawled, %d failed (total: %d)", len(reports), errorCount, len(siteRoots))

	if errorCount > 0 && len(reports) == 0 {
		return nil, fmt.Errorf("all %d sites failed to crawl", errorCount)
	}

	return reports, nil
}
