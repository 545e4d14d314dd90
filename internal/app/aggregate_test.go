package app_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"review_sentiment/internal/app"
	"review_sentiment/internal/domain"
)

func scored(platform string, score, rating float64) domain.ReviewRecord {
	return domain.ReviewRecord{
		Company: "Acme", Platform: platform, Content: "x", Rating: rating,
		Sentiment: domain.SentimentResult{Score: score, Label: app.LabelFor(score)},
	}
}

func TestBuildCompanyResult(t *testing.T) {
	rs := []domain.ReviewRecord{
		scored("Capterra", 0.5, 5),
		scored("Capterra", -0.1, 3),
		scored("G2", 0.3, 4),
	}
	got := app.BuildCompanyResult("Acme", rs)
	want := domain.CompanyResult{
		Company:          "Acme",
		TotalReviews:     3,
		AverageSentiment: 0.7 / 3,
		AverageRating:    4,
		Platforms: map[string]domain.PlatformStats{
			"capterra": {Reviews: 2, AvgSentiment: 0.2, AvgRating: 4},
			"g2":       {Reviews: 1, AvgSentiment: 0.3, AvgRating: 4},
		},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatal(diff)
	}
}

func TestPlatformBreakdown(t *testing.T) {
	got := app.PlatformBreakdown([]domain.ReviewRecord{
		scored("Capterra", 0, 0), scored(" capterra ", 0, 0), scored("", 0, 0),
	})
	want := map[string]int{"capterra": 2, "unknown": 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestSummarizeStored(t *testing.T) {
	got := app.SummarizeStored([]domain.StoredReview{
		stored("Acme", 0.8, 5, domain.LabelPositive),
		stored("Acme", -0.4, 2, domain.LabelNegative),
		stored("Acme", 0, 4, ""),
	})
	want := domain.CompanySummary{
		TotalReviews:      3,
		AverageSentiment:  0.4 / 3,
		AverageRating:     11.0 / 3,
		PlatformBreakdown: map[string]int{"capterra": 3},
		SentimentDistribution: map[domain.Label]int{
			domain.LabelPositive: 1, domain.LabelNegative: 1, domain.LabelNeutral: 1,
		},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatal(diff)
	}

	empty := app.SummarizeStored(nil)
	if empty.TotalReviews != 0 || empty.AverageSentiment != 0 || len(empty.SentimentDistribution) != 3 {
		t.Fatalf("empty summary: %+v", empty)
	}
}

func TestOverallSentiment(t *testing.T) {
	cases := []struct {
		name   string
		scores []float64
		want   domain.OverallSentiment
	}{
		{
			name: "no products",
			want: domain.OverallSentiment{Label: domain.LabelNeutral},
		},
		{
			name:   "mixed",
			scores: []float64{0.5, 0.1, -0.3},
			want: domain.OverallSentiment{
				Score: 0.1, Label: domain.LabelNeutral, TotalProducts: 3,
				PositiveProducts: 1, NeutralProducts: 1, NegativeProducts: 1,
			},
		},
		{
			name:   "positive",
			scores: []float64{0.4, 0.2},
			want: domain.OverallSentiment{
				Score: 0.3, Label: domain.LabelPositive, TotalProducts: 2, PositiveProducts: 2,
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := app.OverallSentiment(tc.scores)
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestProductLabel_StrictThresholds(t *testing.T) {
	if app.ProductLabel(0.1) != domain.LabelNeutral || app.ProductLabel(-0.1) != domain.LabelNeutral {
		t.Fatalf("boundaries must be neutral")
	}
	if app.ProductLabel(0.1001) != domain.LabelPositive || app.ProductLabel(-0.1001) != domain.LabelNegative {
		t.Fatalf("past the boundaries must be labeled")
	}
}
