package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrNoURL            = errors.New("no review url")
	ErrBlocked          = errors.New("blocked by remote")
	ErrTooManyCompanies = errors.New("too many companies")
	ErrRunInProgress    = errors.New("scrape run already in progress")
)

type ReviewRepository interface {
	// Write path
	InsertReviews(ctx context.Context, rs []StoredReview) error

	// Read paths
	ListByCompany(ctx context.Context, company string) ([]StoredReview, error)
	ListRecent(ctx context.Context, limit int) ([]StoredReview, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type Catalog interface {
	URLFor(company string) (string, bool)
	ProductsFor(company string) map[string]string
	Companies() []string
}

// Page is a fully rendered document as seen by a fetcher.
type Page struct {
	URL     string
	HTML    string
	Fetcher string // browser|http
}

type PageFetcher interface {
	FetchPage(ctx context.Context, url, label string) (Page, error)
}

// Target names one review page to read.
type Target struct {
	Company  string
	Product  string
	Platform string
	URL      string
}

// ReviewSource yields unscored review records for a target.
type ReviewSource interface {
	Reviews(ctx context.Context, t Target, max int) ([]ReviewRecord, error)
}

// PolarityAnalyzer returns a compound polarity in [-1, 1].
type PolarityAnalyzer interface {
	Compound(text string) float64
}

type ProgressEvent struct {
	RequestID string
	State     RunState
	Company   string
	Index     int
	Total     int
	Outcome   *CompanyOutcome
	Summary   *RunSummary
}

type ProgressSink interface {
	OnProgress(ctx context.Context, ev ProgressEvent)
}
