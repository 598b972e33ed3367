package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ClientType represents the type of HTTP client configuration
type ClientType string

const (
	// BrowserClient uses browser-like headers to avoid 406 (Not Acceptable) errors
	// Used for sites that require browser-like User-Agent and headers
	BrowserClient ClientType = "browser"

	// PlainClient uses simple headers (like curl) to avoid 403 (Forbidden) errors
	// Used for Cloudflare-protected sites that block browser-like User-Agents
	PlainClient ClientType = "plain"
)

// DefaultTimeout is the per-request timeout applied when none is configured
const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps how much of a response we read. Sitemap files are capped
// at 50MB by the protocol; anything larger is truncated rather than fatal.
const maxBodyBytes = 50 << 20

// ErrorKind classifies a fetch failure
type ErrorKind string

const (
	KindTimeout    ErrorKind = "timeout"
	KindConnection ErrorKind = "connection"
	KindHTTPStatus ErrorKind = "http_status"
	KindOther      ErrorKind = "other"
)

// Error is the typed error returned by all Fetcher implementations.
// Status is only set for KindHTTPStatus.
type Error struct {
	Kind   ErrorKind
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("fetch %s: unexpected status code: %d", e.URL, e.Status)
	case KindTimeout:
		return fmt.Sprintf("fetch %s: timed out", e.URL)
	default:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Classify extracts the error kind from an error returned by a Fetcher.
// Unknown errors map to KindOther.
func Classify(err error) (ErrorKind, string) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, fe.Error()
	}
	if err == nil {
		return KindOther, ""
	}
	return KindOther, err.Error()
}

// Result holds the raw bytes of a successful fetch
type Result struct {
	Body        []byte
	ContentType string
	StatusCode  int
}

// Fetcher is the fetch capability consumed by discovery and crawling.
// Implementations must honor the context deadline and return *Error on failure.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Result, error)
}

// HTTPFetcher fetches URLs over HTTP with a per-request timeout
type HTTPFetcher struct {
	client     *http.Client
	clientType ClientType
	timeout    time.Duration
}

// NewHTTPFetcher creates a new HTTP fetcher with the specified client type
func NewHTTPFetcher(clientType ClientType, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Follow up to 10 redirects
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	return &HTTPFetcher{
		client:     client,
		clientType: clientType,
		timeout:    timeout,
	}
}

// Fetch performs a GET request and returns the response body.
// Non-2xx responses, timeouts and transport failures all come back as *Error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Kind: KindOther, URL: url, Err: err}
	}
	f.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyTransport(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Kind: KindHTTPStatus, URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classifyTransport(url, err)
	}

	return &Result{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}, nil
}

// setHeaders sets the appropriate headers based on client type
func (f *HTTPFetcher) setHeaders(req *http.Request) {
	switch f.clientType {
	case BrowserClient:
		// Browser-like headers to avoid 406 (Not Acceptable) errors
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
		req.Header.Set("Accept", "text/xml,application/xml,text/html;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Connection", "keep-alive")

	case PlainClient:
		// Simple headers like curl; Cloudflare allows simple tools but
		// blocks browser impersonation
		req.Header.Set("User-Agent", "curl/8.7.1")

	default:
		// Default: use Go's default User-Agent
	}
}

func classifyTransport(url string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, URL: url, Err: err}
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, URL: url, Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindOther, URL: url, Err: err}
	}
	return &Error{Kind: KindConnection, URL: url, Err: err}
}
