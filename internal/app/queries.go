package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"review_sentiment/internal/domain"
)

const DefaultRecentLimit = 50

// recentGenKey holds the generation every cached recent page is keyed under.
// A write moves it forward, so pages of every limit go stale at once.
const recentGenKey = "recent:gen"

func AnalysisKey(company string) string {
	return "analysis:" + strings.ToLower(strings.TrimSpace(company))
}

func RecentKey(gen int64, limit int) string { return fmt.Sprintf("recent:%d:%d", gen, limit) }

func recentGeneration(ctx context.Context, c domain.Cache) int64 {
	var gen int64
	if ok, err := c.Get(ctx, recentGenKey, &gen); !ok || err != nil {
		return 0
	}
	return gen
}

func bumpRecentGeneration(ctx context.Context, c domain.Cache) {
	next := time.Now().UnixNano()
	if prev := recentGeneration(ctx, c); next <= prev {
		next = prev + 1
	}
	_ = c.Set(ctx, recentGenKey, next, 0)
}

type AnalysisService struct {
	repo     domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewAnalysisService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *AnalysisService {
	return &AnalysisService{repo: r, cache: c, cacheTTL: ttl}
}

// CompanyAnalysis summarizes every stored review of a company; ErrNotFound when
// there are none.
func (s *AnalysisService) CompanyAnalysis(ctx context.Context, company string) (domain.CompanySummary, error) {
	key := AnalysisKey(company)
	var out domain.CompanySummary
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}
	rows, err := s.repo.ListByCompany(ctx, company)
	if err != nil {
		return domain.CompanySummary{}, err
	}
	if len(rows) == 0 {
		return domain.CompanySummary{}, domain.ErrNotFound
	}
	out = SummarizeStored(rows)
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

// Recent returns the newest stored rows, newest first.
func (s *AnalysisService) Recent(ctx context.Context, limit int) ([]domain.StoredReview, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	var out []domain.StoredReview
	var key string
	if s.cache != nil {
		key = RecentKey(recentGeneration(ctx, s.cache), limit)
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}
	rows, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	// copy so the cached value never aliases the repo's backing array
	out = make([]domain.StoredReview, len(rows))
	copy(out, rows)
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}
