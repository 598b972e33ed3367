package domain

import "time"

// ArticleRecord represents a page entry extracted from a sitemap urlset
type ArticleRecord struct {
	URL          string    `bson:"url"`
	LastModified time.Time `bson:"last_modified,omitempty"`
	News         *NewsMeta `bson:"news,omitempty"`
	CrawledAt    time.Time `bson:"crawled_at"`
}

// NewsMeta holds the Google-News-namespace extension fields attached to a
// sitemap entry. All fields are optional; a zero time means the tag was
// missing or unparsable.
type NewsMeta struct {
	PublicationName     string    `bson:"publication_name,omitempty"`
	PublicationLanguage string    `bson:"publication_language,omitempty"`
	Title               string    `bson:"title,omitempty"`
	PublicationDate     time.Time `bson:"publication_date,omitempty"`
	Keywords            []string  `bson:"keywords,omitempty"`
}

// HasNews reports whether the record carried any Google News extension tags
func (a *ArticleRecord) HasNews() bool {
	return a.News != nil
}
