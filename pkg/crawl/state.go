package crawl

import (
	"news-sitemap/pkg/domain"
	"news-sitemap/pkg/urls"
)

// State holds everything one crawl session owns: the frontier of pending
// sitemap URLs, the seen-sets and the accumulated output. A State is owned
// by exactly one caller; concurrent use requires external serialization.
type State struct {
	frontier     []string
	queued       map[string]bool
	seenSitemaps map[string]bool
	seenArticles map[string]bool
	visited      int
	done         bool

	// Results holds deduplicated article records in discovery order
	Results []domain.ArticleRecord
	// Errors holds per-sitemap failures; none of them halt the crawl
	Errors []VisitError
}

// VisitError records a per-sitemap failure (fetch or parse) encountered
// during the crawl
type VisitError struct {
	SitemapURL string
	Kind       string
	Reason     string
}

// NewState creates a crawl state seeded with the given sitemap URLs.
// Seeds are normalized and deduplicated; unusable URLs are dropped.
func NewState(seeds []string) *State {
	s := &State{
		queued:       make(map[string]bool),
		seenSitemaps: make(map[string]bool),
		seenArticles: make(map[string]bool),
	}
	for _, seed := range seeds {
		s.push(seed)
	}
	if len(s.frontier) == 0 {
		s.done = true
	}
	return s
}

// push enqueues a sitemap URL at the frontier tail unless it has already
// been queued or visited. Returns true if the URL was added.
func (s *State) push(raw string) bool {
	canon, err := urls.Normalize(raw)
	if err != nil {
		return false
	}
	if s.queued[canon] || s.seenSitemaps[canon] {
		return false
	}
	s.queued[canon] = true
	s.frontier = append(s.frontier, canon)
	return true
}

// pop removes and returns the next sitemap URL in FIFO order
func (s *State) pop() (string, bool) {
	if len(s.frontier) == 0 {
		return "", false
	}
	next := s.frontier[0]
	s.frontier = s.frontier[1:]
	delete(s.queued, next)
	return next, true
}

// addArticle appends a record unless its URL was already collected.
// Returns true if the record is new.
func (s *State) addArticle(record domain.ArticleRecord) bool {
	key := record.URL
	if canon, err := urls.Normalize(record.URL); err == nil {
		key = canon
	}
	if s.seenArticles[key] {
		return false
	}
	s.seenArticles[key] = true
	s.Results = append(s.Results, record)
	return true
}

// Pending returns the number of sitemap URLs still waiting in the frontier
func (s *State) Pending() int {
	return len(s.frontier)
}

// Visited returns the number of sitemap pages fetched so far
func (s *State) Visited() int {
	return s.visited
}

// Done reports whether the frontier has been drained
func (s *State) Done() bool {
	return s.done
}
