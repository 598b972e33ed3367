package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte("<urlset></urlset>"))
	}))
	defer server.Close()

	f := NewHTTPFetcher(BrowserClient, DefaultTimeout)
	result, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if string(result.Body) != "<urlset></urlset>" {
		t.Errorf("Expected body '<urlset></urlset>', got '%s'", result.Body)
	}
	if result.ContentType != "application/xml" {
		t.Errorf("Expected content type 'application/xml', got '%s'", result.ContentType)
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", result.StatusCode)
	}
}

func TestFetchHTTPStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := NewHTTPFetcher(BrowserClient, DefaultTimeout)
	_, err := f.Fetch(context.Background(), server.URL+"/missing.xml")
	if err == nil {
		t.Fatalf("Expected error for 404 response")
	}

	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if fe.Kind != KindHTTPStatus {
		t.Errorf("Expected kind %q, got %q", KindHTTPStatus, fe.Kind)
	}
	if fe.Status != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", fe.Status)
	}
}

func TestFetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	f := NewHTTPFetcher(BrowserClient, 50*time.Millisecond)
	_, err := f.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatalf("Expected timeout error")
	}

	kind, _ := Classify(err)
	if kind != KindTimeout {
		t.Errorf("Expected kind %q, got %q", KindTimeout, kind)
	}
}

func TestFetchConnectionError(t *testing.T) {
	// Grab a port that nothing listens on
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	f := NewHTTPFetcher(BrowserClient, DefaultTimeout)
	_, err := f.Fetch(context.Background(), url)
	if err == nil {
		t.Fatalf("Expected connection error")
	}

	kind, reason := Classify(err)
	if kind != KindConnection {
		t.Errorf("Expected kind %q, got %q", KindConnection, kind)
	}
	if reason == "" {
		t.Errorf("Expected a non-empty reason")
	}
}

func TestFetchSetsBrowserHeaders(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	f := NewHTTPFetcher(BrowserClient, DefaultTimeout)
	if _, err := f.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if gotUserAgent == "" || gotUserAgent == "Go-http-client/1.1" {
		t.Errorf("Expected browser-like User-Agent, got '%s'", gotUserAgent)
	}
}

func TestClassifyUnknownError(t *testing.T) {
	kind, reason := Classify(errors.New("something else"))
	if kind != KindOther {
		t.Errorf("Expected kind %q, got %q", KindOther, kind)
	}
	if reason != "something else" {
		t.Errorf("Expected reason 'something else', got '%s'", reason)
	}
}
