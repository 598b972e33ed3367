package urls

import (
	"fmt"
	"net/url"
	"strings"
)

// Normalize canonicalizes a URL for use as a deduplication key:
// scheme and host are lowercased and the fragment is dropped.
// The path, query and everything else are preserved as-is.
func Normalize(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("URL is not absolute: %q", raw)
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""

	return parsed.String(), nil
}

// IsHTTP reports whether the URL uses the http or https scheme
func IsHTTP(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	scheme := strings.ToLower(parsed.Scheme)
	return (scheme == "http" || scheme == "https") && parsed.Host != ""
}

// Dedup normalizes each URL and removes duplicates, preserving first-seen
// order. URLs that fail to normalize are dropped.
func Dedup(raws []string) []string {
	seen := make(map[string]bool, len(raws))
	result := make([]string, 0, len(raws))
	for _, raw := range raws {
		canon, err := Normalize(raw)
		if err != nil {
			continue
		}
		if seen[canon] {
			continue
		}
		seen[canon] = true
		result = append(result, canon)
	}
	return result
}
