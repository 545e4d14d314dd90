package app

import (
	"math"
	"strings"

	"review_sentiment/internal/domain"
)

const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

type nudge struct {
	delta float64
	words []string
}

// Each category applies at most once, on a lowercase substring match.
var nudges = []nudge{
	{-0.2, []string{"bug", "slow", "crash", "error", "broken", "terrible", "awful", "horrible"}},
	{-0.1, []string{"expensive", "costly", "overpriced", "pricey"}},
	{-0.15, []string{"difficult", "hard", "complex", "confusing"}},
	{+0.2, []string{"easy", "great", "excellent", "amazing", "perfect", "love", "fantastic"}},
	{+0.1, []string{"fast", "quick", "efficient", "smooth", "responsive"}},
	{+0.15, []string{"intuitive", "user-friendly", "simple", "straightforward"}},
}

type Scorer struct {
	analyzer domain.PolarityAnalyzer
}

func NewScorer(a domain.PolarityAnalyzer) *Scorer { return &Scorer{analyzer: a} }

// Score is deterministic for a given text and analyzer.
func (s *Scorer) Score(text string) domain.SentimentResult {
	base := 0.0
	if s.analyzer != nil && strings.TrimSpace(text) != "" {
		base = s.analyzer.Compound(text)
	}
	score := clamp(base + KeywordAdjustment(text))
	return domain.SentimentResult{
		Score:      score,
		Label:      LabelFor(score),
		Confidence: math.Abs(score),
	}
}

// KeywordAdjustment sums the deltas of every category with at least one hit.
func KeywordAdjustment(text string) float64 {
	low := strings.ToLower(text)
	adj := 0.0
	for _, n := range nudges {
		for _, w := range n.words {
			if strings.Contains(low, w) {
				adj += n.delta
				break
			}
		}
	}
	return adj
}

// LabelFor buckets a review score; both thresholds are inclusive.
func LabelFor(score float64) domain.Label {
	switch {
	case score >= PositiveThreshold:
		return domain.LabelPositive
	case score <= NegativeThreshold:
		return domain.LabelNegative
	default:
		return domain.LabelNeutral
	}
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
