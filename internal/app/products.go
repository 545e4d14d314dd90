package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"review_sentiment/internal/domain"
)

const (
	productReviewLimit = 10
	recentPerProduct   = 5
)

// ProductService scores every catalog product of a company and rolls the
// product averages up with the product thresholds.
type ProductService struct {
	catalog  domain.Catalog
	source   domain.ReviewSource
	scorer   *Scorer
	platform string
	delay    time.Duration
	now      func() time.Time
}

func NewProductService(cat domain.Catalog, src domain.ReviewSource, sc *Scorer, platform string, delay time.Duration) *ProductService {
	if platform == "" {
		platform = "Capterra"
	}
	return &ProductService{catalog: cat, source: src, scorer: sc, platform: platform, delay: delay, now: time.Now}
}

func (s *ProductService) AnalyzeCompany(ctx context.Context, company string) domain.CompanyProducts {
	out := domain.CompanyProducts{
		Company:   company,
		Products:  map[string]domain.ProductSentiment{},
		Platforms: map[string]int{platformKey(s.platform): 0},
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
	products := s.catalog.ProductsFor(company)
	if len(products) == 0 {
		out.Error = fmt.Sprintf("No products found for company: %s", company)
		out.OverallSentiment = OverallSentiment(nil)
		return out
	}
	out.Success = true

	names := make([]string, 0, len(products))
	for n := range products {
		names = append(names, n)
	}
	sort.Strings(names)

	var productScores []float64
	for i, name := range names {
		if ctx.Err() != nil {
			break
		}
		if i > 0 {
			sleepCtx(ctx, s.delay)
		}
		url := products[name]
		recs, err := s.source.Reviews(ctx, domain.Target{Company: company, Product: name, Platform: s.platform, URL: url}, productReviewLimit)
		if err != nil {
			log.Warn().Err(err).Str("company", company).Str("product", name).Msg("product scrape failed")
			continue
		}
		if len(recs) == 0 {
			log.Info().Str("company", company).Str("product", name).Msg("no reviews found")
			continue
		}

		var scores []float64
		for j := range recs {
			if recs[j].Content == "" {
				continue
			}
			recs[j].Sentiment = s.scorer.Score(recs[j].Content)
			scores = append(scores, recs[j].Sentiment.Score)
		}
		if len(scores) == 0 {
			continue
		}
		avg := mean(scores)
		productScores = append(productScores, avg)

		recent := recs
		if len(recent) > recentPerProduct {
			recent = recent[:recentPerProduct]
		}
		out.Products[name] = domain.ProductSentiment{
			Sentiment:     avg,
			Reviews:       len(recs),
			AverageRating: mean(ratingsOf(recs)),
			Platform:      platformKey(s.platform),
			URL:           url,
			RecentReviews: recent,
		}
		out.Platforms[platformKey(s.platform)] += len(recs)
		out.TotalReviews += len(recs)
	}

	out.OverallSentiment = OverallSentiment(productScores)
	return out
}

func (s *ProductService) AnalyzeCompanies(ctx context.Context, companies []string) []domain.CompanyProducts {
	out := make([]domain.CompanyProducts, 0, len(companies))
	for _, c := range cleanCompanies(companies) {
		out = append(out, s.AnalyzeCompany(ctx, c))
	}
	return out
}
