package app

import (
	"strings"

	"review_sentiment/internal/domain"
)

// Product-level thresholds are exclusive and wider than the review ones.
const (
	ProductPositiveThreshold = 0.1
	ProductNegativeThreshold = -0.1
)

func platformKey(p string) string {
	k := strings.ToLower(strings.TrimSpace(p))
	if k == "" {
		return "unknown"
	}
	return k
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func scoresOf(rs []domain.ReviewRecord) []float64 {
	out := make([]float64, len(rs))
	for i, r := range rs {
		out[i] = r.Sentiment.Score
	}
	return out
}

func ratingsOf(rs []domain.ReviewRecord) []float64 {
	out := make([]float64, len(rs))
	for i, r := range rs {
		out[i] = r.Rating
	}
	return out
}

// BuildCompanyResult aggregates one company's scored records of a run.
func BuildCompanyResult(company string, rs []domain.ReviewRecord) domain.CompanyResult {
	byPlatform := map[string][]domain.ReviewRecord{}
	for _, r := range rs {
		k := platformKey(r.Platform)
		byPlatform[k] = append(byPlatform[k], r)
	}
	platforms := make(map[string]domain.PlatformStats, len(byPlatform))
	for k, group := range byPlatform {
		platforms[k] = domain.PlatformStats{
			Reviews:      len(group),
			AvgSentiment: mean(scoresOf(group)),
			AvgRating:    mean(ratingsOf(group)),
		}
	}
	return domain.CompanyResult{
		Company:          company,
		TotalReviews:     len(rs),
		AverageSentiment: mean(scoresOf(rs)),
		AverageRating:    mean(ratingsOf(rs)),
		Platforms:        platforms,
	}
}

// PlatformBreakdown counts records per platform.
func PlatformBreakdown(rs []domain.ReviewRecord) map[string]int {
	out := map[string]int{}
	for _, r := range rs {
		out[platformKey(r.Platform)]++
	}
	return out
}

// SummarizeStored builds the dashboard view over persisted rows.
func SummarizeStored(rows []domain.StoredReview) domain.CompanySummary {
	s := domain.CompanySummary{
		TotalReviews:      len(rows),
		PlatformBreakdown: map[string]int{},
		SentimentDistribution: map[domain.Label]int{
			domain.LabelPositive: 0,
			domain.LabelNegative: 0,
			domain.LabelNeutral:  0,
		},
	}
	if len(rows) == 0 {
		return s
	}
	scores := make([]float64, 0, len(rows))
	ratings := make([]float64, 0, len(rows))
	for _, r := range rows {
		scores = append(scores, r.SentimentScore)
		ratings = append(ratings, r.Rating)
		s.PlatformBreakdown[platformKey(r.Platform)]++
		switch r.SentimentLabel {
		case domain.LabelPositive, domain.LabelNegative:
			s.SentimentDistribution[r.SentimentLabel]++
		default:
			s.SentimentDistribution[domain.LabelNeutral]++
		}
	}
	s.AverageSentiment = mean(scores)
	s.AverageRating = mean(ratings)
	return s
}

// ProductLabel buckets an averaged product or company score.
func ProductLabel(score float64) domain.Label {
	switch {
	case score > ProductPositiveThreshold:
		return domain.LabelPositive
	case score < ProductNegativeThreshold:
		return domain.LabelNegative
	default:
		return domain.LabelNeutral
	}
}

// OverallSentiment combines per-product average scores into a company verdict.
func OverallSentiment(productScores []float64) domain.OverallSentiment {
	out := domain.OverallSentiment{Label: domain.LabelNeutral, TotalProducts: len(productScores)}
	if len(productScores) == 0 {
		return out
	}
	for _, s := range productScores {
		switch ProductLabel(s) {
		case domain.LabelPositive:
			out.PositiveProducts++
		case domain.LabelNegative:
			out.NegativeProducts++
		default:
			out.NeutralProducts++
		}
	}
	out.Score = mean(productScores)
	out.Label = ProductLabel(out.Score)
	return out
}
