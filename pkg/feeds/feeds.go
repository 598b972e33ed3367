package feeds

import (
	"bytes"
	"fmt"
	"strings"

	"news-sitemap/pkg/domain"

	"github.com/mmcdole/gofeed"
)

// Parser handles RSS/Atom feed parsing. Sites sometimes declare feed URLs
// in robots.txt Sitemap: lines, so the crawler falls back to this parser
// when a fetched document is not sitemap XML.
type Parser struct {
	feedParser *gofeed.Parser
}

// NewParser creates a new feed parser
func NewParser() *Parser {
	return &Parser{
		feedParser: gofeed.NewParser(),
	}
}

// LooksLikeFeed reports whether the document is plausibly an RSS or Atom
// feed, cheap enough to gate the full parse on
func LooksLikeFeed(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	s := string(bytes.ToLower(head))
	return strings.Contains(s, "<rss") || strings.Contains(s, "<feed") || strings.Contains(s, "<rdf:rdf")
}

// Parse decodes a feed document into article records, one per item with a
// non-empty link, preserving feed order
func (p *Parser) Parse(data []byte) ([]domain.ArticleRecord, error) {
	feed, err := p.feedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	if feed == nil || len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed contains no items")
	}

	records := make([]domain.ArticleRecord, 0, len(feed.Items))
	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}

		record := domain.ArticleRecord{URL: link}
		if item.PublishedParsed != nil {
			record.LastModified = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			record.LastModified = *item.UpdatedParsed
		}
		if title := strings.TrimSpace(item.Title); title != "" {
			record.News = &domain.NewsMeta{
				Title:           title,
				PublicationDate: record.LastModified,
			}
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no valid URLs found in feed items")
	}

	return records, nil
}
