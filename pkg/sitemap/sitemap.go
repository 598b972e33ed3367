package sitemap

import (
	"bytes"
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"news-sitemap/pkg/domain"
	"news-sitemap/pkg/urls"

	"github.com/araddon/dateparse"
	"golang.org/x/net/html/charset"
)

// Kind identifies which variant of a parse result is populated
type Kind int

const (
	// KindMalformed means the document could not be decoded as a sitemap
	KindMalformed Kind = iota
	// KindLeaf means the document was a <urlset> of page entries
	KindLeaf
	// KindIndex means the document was a <sitemapindex> referencing child sitemaps
	KindIndex
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "urlset"
	case KindIndex:
		return "sitemapindex"
	default:
		return "malformed"
	}
}

// Result is the outcome of parsing a single sitemap document.
// Exactly one variant is populated depending on Kind.
type Result struct {
	Kind     Kind
	Articles []domain.ArticleRecord // KindLeaf: entries in document order
	Sitemaps []string               // KindIndex: child sitemap URLs, deduplicated, document order
	Reason   string                 // KindMalformed: why the document was rejected
}

// XML structures for decoding sitemap documents.
// encoding/xml matches on local element names, so the sitemaps.org namespace
// and the google news namespace both resolve without explicit prefixes, and
// unknown sibling elements (image:, video:, xhtml:) are ignored.

// urlEntry represents a single <url> entry in a urlset
type urlEntry struct {
	Location string     `xml:"loc"`
	LastMod  string     `xml:"lastmod"`
	News     *newsEntry `xml:"news"`
}

// newsEntry represents a <news:news> extension block
type newsEntry struct {
	Publication struct {
		Name     string `xml:"name"`
		Language string `xml:"language"`
	} `xml:"publication"`
	PublicationDate string `xml:"publication_date"`
	Title           string `xml:"title"`
	Keywords        string `xml:"keywords"`
}

// sitemapRef represents a <sitemap> reference in a sitemap index
type sitemapRef struct {
	Location string `xml:"loc"`
}

// Parse decodes a single sitemap or sitemap-index document. It classifies
// and extracts only; it never fetches any URL found in the document, and it
// never returns an error: malformed input yields the KindMalformed variant.
// contentHint is the Content-Type reported by the fetch, used only to
// improve malformed-document diagnostics.
func Parse(data []byte, contentHint string) Result {
	body, err := maybeGunzip(data)
	if err != nil {
		return malformed("failed to decompress body: %v", err)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return malformed("empty document")
	}

	decoder := xml.NewDecoder(bytes.NewReader(body))
	// Tolerate encoding declarations other than UTF-8 (and stray BOMs)
	decoder.CharsetReader = charset.NewReaderLabel

	root, err := findRoot(decoder)
	if err != nil {
		if strings.Contains(strings.ToLower(contentHint), "html") {
			return malformed("not XML (content-type %q): %v", contentHint, err)
		}
		return malformed("failed to decode XML: %v", err)
	}

	switch root.Name.Local {
	case "urlset":
		return parseURLSet(decoder, root)
	case "sitemapindex":
		return parseIndex(decoder, root)
	default:
		return malformed("unexpected root element <%s>", root.Name.Local)
	}
}

// findRoot advances the decoder to the document's root element
func findRoot(decoder *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := decoder.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start, nil
		}
	}
}

// parseURLSet iterates the direct <url> children of a <urlset> in document
// order. Entries without <loc> are skipped; malformed timestamps are treated
// as absent. Cross-document dedup is the crawler's job, not done here.
func parseURLSet(decoder *xml.Decoder, root xml.StartElement) Result {
	var articles []domain.ArticleRecord

	err := eachChild(decoder, root, "url", func(start xml.StartElement) error {
		var entry urlEntry
		if err := decoder.DecodeElement(&entry, &start); err != nil {
			return err
		}

		loc := strings.TrimSpace(entry.Location)
		if loc == "" {
			// Every entry must have a <loc>; skip rather than fail
			return nil
		}

		record := domain.ArticleRecord{
			URL:          loc,
			LastModified: parseTime(entry.LastMod),
		}
		if entry.News != nil {
			record.News = newsMeta(entry.News)
		}
		articles = append(articles, record)
		return nil
	})
	if err != nil {
		return malformed("failed to decode urlset: %v", err)
	}

	return Result{Kind: KindLeaf, Articles: articles}
}

// parseIndex iterates the direct <sitemap> children of a <sitemapindex>,
// normalizing and deduplicating child URLs while preserving first-seen order.
// Entries without <loc> are soft failures, not fatal errors.
func parseIndex(decoder *xml.Decoder, root xml.StartElement) Result {
	seen := make(map[string]bool)
	var children []string

	err := eachChild(decoder, root, "sitemap", func(start xml.StartElement) error {
		var ref sitemapRef
		if err := decoder.DecodeElement(&ref, &start); err != nil {
			return err
		}

		loc := strings.TrimSpace(ref.Location)
		if loc == "" || !urls.IsHTTP(loc) {
			return nil
		}
		canon, err := urls.Normalize(loc)
		if err != nil {
			return nil
		}
		if seen[canon] {
			return nil
		}
		seen[canon] = true
		children = append(children, canon)
		return nil
	})
	if err != nil {
		return malformed("failed to decode sitemap index: %v", err)
	}

	return Result{Kind: KindIndex, Sitemaps: children}
}

// eachChild walks the direct children of root, calling fn for each child
// element named name and skipping everything else (forward-compatible parsing)
func eachChild(decoder *xml.Decoder, root xml.StartElement, name string, fn func(xml.StartElement) error) error {
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == name {
				if err := fn(t); err != nil {
					return err
				}
			} else if err := decoder.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == root.Name.Local {
				return nil
			}
		}
	}
}

func newsMeta(entry *newsEntry) *domain.NewsMeta {
	return &domain.NewsMeta{
		PublicationName:     strings.TrimSpace(entry.Publication.Name),
		PublicationLanguage: strings.TrimSpace(entry.Publication.Language),
		Title:               strings.TrimSpace(entry.Title),
		PublicationDate:     parseTime(entry.PublicationDate),
		Keywords:            splitKeywords(entry.Keywords),
	}
}

// parseTime parses a sitemap timestamp leniently; malformed values are
// treated as absent (zero time), never fatal
func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	parsed, err := dateparse.ParseAny(value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// splitKeywords splits a comma-separated <news:keywords> value into a
// deduplicated list, preserving first-seen order
func splitKeywords(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	seen := make(map[string]bool)
	var keywords []string
	for _, part := range strings.Split(value, ",") {
		keyword := strings.TrimSpace(part)
		if keyword == "" || seen[keyword] {
			continue
		}
		seen[keyword] = true
		keywords = append(keywords, keyword)
	}
	return keywords
}

// maybeGunzip transparently decompresses gzip-encoded sitemap bodies
// (sites commonly publish sitemap.xml.gz)
func maybeGunzip(data []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		return data, nil
	}
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

func malformed(format string, args ...interface{}) Result {
	return Result{Kind: KindMalformed, Reason: fmt.Sprintf(format, args...)}
}
