package domain

import "time"

// CrawlReport summarizes a completed crawl of one site's sitemap tree
type CrawlReport struct {
	SiteRoot        string
	SeedSitemaps    int
	SitemapsVisited int
	Articles        int
	NewsArticles    int
	Errors          []CrawlError
	StartedAt       time.Time
	Duration        time.Duration
}

// CrawlError records a per-sitemap failure that did not halt the crawl
type CrawlError struct {
	SitemapURL string
	Kind       string
	Reason     string
}
