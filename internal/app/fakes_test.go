package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"review_sentiment/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	mu       sync.Mutex
	inserted [][]domain.StoredReview
	rows     []domain.StoredReview
	err      error

	listCalls int
}

func (f *fakeRepo) InsertReviews(ctx context.Context, rs []domain.StoredReview) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, rs)
	f.rows = append(f.rows, rs...)
	return nil
}

func (f *fakeRepo) ListByCompany(ctx context.Context, company string) ([]domain.StoredReview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.StoredReview
	for _, r := range f.rows {
		if strings.EqualFold(r.Company, company) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListRecent(ctx context.Context, limit int) ([]domain.StoredReview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	out := f.rows
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeCache round-trips through JSON like the redis adapter does.
type fakeCache struct {
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

type fakeCatalog struct {
	urls     map[string]string
	products map[string]map[string]string
}

func (c fakeCatalog) URLFor(company string) (string, bool) {
	u, ok := c.urls[company]
	return u, ok && u != ""
}

func (c fakeCatalog) ProductsFor(company string) map[string]string { return c.products[company] }

func (c fakeCatalog) Companies() []string {
	var out []string
	for k := range c.urls {
		out = append(out, k)
	}
	return out
}

// fakeSource returns canned reviews per company (or product) and records targets.
type fakeSource struct {
	mu      sync.Mutex
	reviews map[string][]domain.ReviewRecord
	errs    map[string]error
	targets []domain.Target
	// called before returning; tests use it to cancel mid-run
	hook func(t domain.Target)
}

func (s *fakeSource) Reviews(ctx context.Context, t domain.Target, max int) ([]domain.ReviewRecord, error) {
	s.mu.Lock()
	s.targets = append(s.targets, t)
	s.mu.Unlock()
	if s.hook != nil {
		s.hook(t)
	}
	key := t.Company
	if t.Product != "" {
		key = t.Product
	}
	if err := s.errs[key]; err != nil {
		return nil, err
	}
	rs := s.reviews[key]
	if max > 0 && len(rs) > max {
		rs = rs[:max]
	}
	out := make([]domain.ReviewRecord, len(rs))
	copy(out, rs)
	for i := range out {
		out[i].Company = t.Company
		out[i].Platform = t.Platform
	}
	return out, nil
}

// fixedAnalyzer maps exact texts to compound scores; unknown texts score 0.
type fixedAnalyzer map[string]float64

func (a fixedAnalyzer) Compound(text string) float64 { return a[text] }

type recordingSink struct {
	mu     sync.Mutex
	events []domain.ProgressEvent
}

func (s *recordingSink) OnProgress(ctx context.Context, ev domain.ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

var errBoom = errors.New("boom")

func rec(content string, rating float64) domain.ReviewRecord {
	return domain.ReviewRecord{ReviewerName: "Anonymous", Content: content, Rating: rating, Pros: []string{}, Cons: []string{}}
}
