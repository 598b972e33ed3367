package feeds

import "testing"

func TestLooksLikeFeed(t *testing.T) {
	cases := []struct {
		name string
		data string
		want bool
	}{
		{"rss", `<?xml version="1.0"?><rss version="2.0"></rss>`, true},
		{"atom", `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"></feed>`, true},
		{"rdf", `<?xml version="1.0"?><rdf:RDF></rdf:RDF>`, true},
		{"sitemap", `<?xml version="1.0"?><urlset></urlset>`, false},
		{"html", `<!DOCTYPE html><html></html>`, false},
		{"empty", ``, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LooksLikeFeed([]byte(tc.data)); got != tc.want {
				t.Errorf("LooksLikeFeed = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseRSSFeed(t *testing.T) {
	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Example Times</title>
		<item>
			<title>First story</title>
			<link>https://news.example.com/story-1</link>
			<pubDate>Mon, 04 Mar 2024 12:00:00 GMT</pubDate>
		</item>
		<item>
			<title>Second story</title>
			<link>https://news.example.com/story-2</link>
		</item>
		<item>
			<title>No link, skipped</title>
		</item>
	</channel>
</rss>`

	parser := NewParser()
	records, err := parser.Parse([]byte(rss))
	if err != nil {
		t.Fatalf("Failed to parse feed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.URL != "https://news.example.com/story-1" {
		t.Errorf("Expected URL 'https://news.example.com/story-1', got '%s'", first.URL)
	}
	if first.LastModified.IsZero() {
		t.Errorf("Expected pubDate to populate LastModified")
	}
	if first.News == nil || first.News.Title != "First story" {
		t.Errorf("Expected item title 'First story', got %+v", first.News)
	}

	second := records[1]
	if !second.LastModified.IsZero() {
		t.Errorf("Expected zero LastModified without pubDate, got %v", second.LastModified)
	}
}

func TestParseAtomFeed(t *testing.T) {
	atom := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Example Times</title>
	<entry>
		<title>Atom story</title>
		<link href="https://news.example.com/atom-1"/>
		<updated>2024-03-04T12:00:00Z</updated>
	</entry>
</feed>`

	parser := NewParser()
	records, err := parser.Parse([]byte(atom))
	if err != nil {
		t.Fatalf("Failed to parse feed: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].URL != "https://news.example.com/atom-1" {
		t.Errorf("Expected URL 'https://news.example.com/atom-1', got '%s'", records[0].URL)
	}
}

func TestParseRejectsNonFeed(t *testing.T) {
	parser := NewParser()
	if _, err := parser.Parse([]byte(`<!DOCTYPE html><html></html>`)); err == nil {
		t.Errorf("Expected error for non-feed input")
	}
	if _, err := parser.Parse([]byte(``)); err == nil {
		t.Errorf("Expected error for empty input")
	}
}
