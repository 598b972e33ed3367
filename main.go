package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"news-sitemap/pkg/crawl"
	"news-sitemap/pkg/discover"
	"news-sitemap/pkg/fetcher"
)

func main() {
	// For now, hardcode the site root
	siteRoot := "https://www.theguardian.com/"

	if len(os.Args) > 1 {
		siteRoot = os.Args[1]
	}

	ctx := context.Background()
	f := fetcher.NewHTTPFetcher(fetcher.BrowserClient, fetcher.DefaultTimeout)

	discoverer := discover.NewDiscoverer(f)
	seeds, err := discoverer.Discover(ctx, siteRoot)
	if err != nil {
		log.Fatalf("Failed to discover sitemaps: %v", err)
	}
	fmt.Printf("Discovered %d candidate sitemaps for %s\n\n", len(seeds), siteRoot)

	state := crawl.NewState(seeds)
	crawler := crawl.NewCrawler(f)
	crawler.Run(ctx, state)

	// Print first 10 records
	maxRecords := 10
	if len(state.Results) < maxRecords {
		maxRecords = len(state.Results)
	}

	fmt.Printf("Visited %d sitemaps, found %d articles. Showing first %d:\n\n",
		state.Visited(), len(state.Results), maxRecords)

	for i := 0; i < maxRecords; i++ {
		record := state.Results[i]
		fmt.Printf("Article %d:\n", i+1)
		fmt.Printf("  URL: %s\n", record.URL)
		if !record.LastModified.IsZero() {
			fmt.Printf("  Last Modified: %s\n", record.LastModified.Format("2006-01-02"))
		}
		if record.HasNews() {
			fmt.Printf("  Title: %s\n", record.News.Title)
			fmt.Printf("  Publication: %s\n", record.News.PublicationName)
		}
		fmt.Println()
	}

	if len(state.Errors) > 0 {
		fmt.Printf("%d sitemaps failed:\n", len(state.Errors))
		for _, e := range state.Errors {
			fmt.Printf("  %s: %s (%s)\n", e.SitemapURL, e.Reason, e.Kind)
		}
	}
}
