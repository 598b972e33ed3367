package manager

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"news-sitemap/pkg/fetcher"
	"news-sitemap/pkg/service"
)

func newSiteServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var server *httptest.Server

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Sitemap: " + server.URL + "/news-sitemap.xml\n"))
	})
	mux.HandleFunc("/news-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
	<url><loc>https://news.example.com/a</loc></url>
	<url><loc>https://news.example.com/b</loc></url>
</urlset>`))
	})

	server = httptest.NewServer(mux)
	return server
}

func TestCrawlSites(t *testing.T) {
	site1 := newSiteServer(t)
	defer site1.Close()
	site2 := newSiteServer(t)
	defer site2.Close()

	newFetcher := func() fetcher.Fetcher {
		return fetcher.NewHTTPFetcher(fetcher.PlainClient, fetcher.DefaultTimeout)
	}

	mgr := NewManager(2, nil, newFetcher)
	mgr.SetServiceConfig(func(svc *service.Service) {
		svc.SetMaxPages(50)
	})

	reports, err := mgr.CrawlSites(context.Background(), []string{site1.URL, site2.URL})
	if err != nil {
		t.Fatalf("CrawlSites failed: %v", err)
	}

	if len(reports) != 2 {
		t.Fatalf("Expected 2 reports, got %d", len(reports))
	}
	for _, report := range reports {
		if report.Articles != 2 {
			t.Errorf("Expected 2 articles for %s, got %d", report.SiteRoot, report.Articles)
		}
	}
}

func TestCrawlSitesAllFail(t *testing.T) {
	newFetcher := func() fetcher.Fetcher {
		return fetcher.NewHTTPFetcher(fetcher.PlainClient, fetcher.DefaultTimeout)
	}

	mgr := NewManager(1, nil, newFetcher)
	if _, err := mgr.CrawlSites(context.Background(), []string{"ftp://bad"}); err == nil {
		t.Errorf("Expected error when every site fails")
	}
}
