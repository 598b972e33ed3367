package content

import (
	"context"
	"log"

	"news-sitemap/pkg/domain"
	"news-sitemap/pkg/fetcher"
)

// Enricher fills in missing titles on crawled article records by fetching
// the article page and running title extraction. Enrichment failures are
// logged and skipped; records are never dropped.
type Enricher struct {
	fetcher   fetcher.Fetcher
	extractor Extractor
}

// NewEnricher creates an enricher using the given fetch capability
func NewEnricher(f fetcher.Fetcher) *Enricher {
	return &Enricher{
		fetcher:   f,
		extractor: NewDefaultExtractor(),
	}
}

// SetExtractor sets a custom extractor for the enricher
func (e *Enricher) SetExtractor(extractor Extractor) {
	e.extractor = extractor
}

// Enrich fetches pages for records that lack a news title and fills the
// title in from the page HTML. Records already carrying a title are
// returned untouched.
func (e *Enricher) Enrich(ctx context.Context, records []domain.ArticleRecord) []domain.ArticleRecord {
	enriched := 0
	for i := range records {
		if records[i].News != nil && records[i].News.Title != "" {
			continue
		}

		select {
		case <-ctx.Done():
			return records
		default:
		}

		result, err := e.fetcher.Fetch(ctx, records[i].URL)
		if err != nil {
			log.Printf("Enricher: fetch failed for %s: %v", records[i].URL, err)
			continue
		}

		title, err := e.extractor.ExtractTitle(string(result.Body))
		if err != nil {
			log.Printf("Enricher: no title extracted from %s: %v", records[i].URL, err)
			continue
		}

		if records[i].News == nil {
			records[i].News = &domain.NewsMeta{}
		}
		records[i].News.Title = title
		enriched++
	}

	if enriched > 0 {
		log.Printf("Enricher: filled in %d missing titles", enriched)
	}
	return records
}
