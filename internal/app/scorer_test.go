package app_test

import (
	"math"
	"testing"

	"review_sentiment/internal/app"
	"review_sentiment/internal/domain"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestLabelFor_InclusiveThresholds(t *testing.T) {
	cases := map[float64]domain.Label{
		0.05:   domain.LabelPositive,
		0.0499: domain.LabelNeutral,
		0:      domain.LabelNeutral,
		-0.049: domain.LabelNeutral,
		-0.05:  domain.LabelNegative,
		1:      domain.LabelPositive,
		-1:     domain.LabelNegative,
	}
	for score, want := range cases {
		if got := app.LabelFor(score); got != want {
			t.Errorf("LabelFor(%v) = %s, want %s", score, got, want)
		}
	}
}

func TestKeywordAdjustment(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"", 0},
		{"nothing notable here", 0},
		// one hit per category, however many words match
		{"BUGGY and it crashes, slow too", -0.2},
		{"buggy and expensive", -0.3},
		{"easy, fast and intuitive", 0.45},
		{"great but hard to learn", 0.05},
	}
	for _, tc := range cases {
		if got := app.KeywordAdjustment(tc.text); !near(got, tc.want) {
			t.Errorf("KeywordAdjustment(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestScore_AddsAdjustmentAndClamps(t *testing.T) {
	sc := app.NewScorer(fixedAnalyzer{
		"excellent and easy":  0.95,
		"terrible crash":      -0.9,
		"buggy and expensive": 0.2,
		"it is a tool":        0.0,
	})

	got := sc.Score("excellent and easy")
	if got.Score != 1 || got.Label != domain.LabelPositive || got.Confidence != 1 {
		t.Fatalf("clamp high: %+v", got)
	}
	got = sc.Score("terrible crash")
	if !near(got.Score, -1) || got.Label != domain.LabelNegative {
		t.Fatalf("clamp low: %+v", got)
	}
	got = sc.Score("buggy and expensive")
	if !near(got.Score, -0.1) || got.Label != domain.LabelNegative || !near(got.Confidence, 0.1) {
		t.Fatalf("adjusted: %+v", got)
	}
	got = sc.Score("it is a tool")
	if got.Score != 0 || got.Label != domain.LabelNeutral || got.Confidence != 0 {
		t.Fatalf("neutral: %+v", got)
	}
}

func TestScore_EmptyTextAndNilAnalyzer(t *testing.T) {
	if got := app.NewScorer(fixedAnalyzer{}).Score("   "); got.Score != 0 || got.Label != domain.LabelNeutral {
		t.Fatalf("empty: %+v", got)
	}
	if got := app.NewScorer(nil).Score("easy"); !near(got.Score, 0.2) {
		t.Fatalf("nil analyzer: %+v", got)
	}
}
