package app

import (
	"regexp"
	"strings"
	"time"

	"review_sentiment/internal/domain"
)

/********** tiny helpers **********/

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// slug lowercases and joins alphanumeric runs with sep.
func slug(s, sep string) string {
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(s), sep), sep)
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}

/********** record -> row **********/

// toStored maps a scored record onto the sentiment_data row shape. The label is
// recomputed from the score so a row can never disagree with itself.
func toStored(r domain.ReviewRecord, now time.Time) domain.StoredReview {
	scraped := r.ScrapedAt
	if scraped.IsZero() {
		scraped = now
	}
	author := r.ReviewerName
	if author == "" {
		author = AnonymousReviewer
	}
	return domain.StoredReview{
		Company:             r.Company,
		Platform:            r.Platform,
		Title:               r.Title,
		Content:             r.Content,
		Author:              author,
		URL:                 r.SourceURL,
		Rating:              r.Rating,
		SentimentScore:      r.Sentiment.Score,
		SentimentLabel:      LabelFor(r.Sentiment.Score),
		SentimentConfidence: r.Sentiment.Confidence,
		Pros:                nonNil(r.Pros),
		Cons:                nonNil(r.Cons),
		ReviewerRole:        r.ReviewerRole,
		ReviewDate:          r.ReviewDate,
		ScrapedAt:           scraped.UTC(),
		CreatedAt:           now.UTC(),
		UpdatedAt:           now.UTC(),
	}
}

func toStoredAll(rs []domain.ReviewRecord, now time.Time) []domain.StoredReview {
	out := make([]domain.StoredReview, 0, len(rs))
	for _, r := range rs {
		out = append(out, toStored(r, now))
	}
	return out
}
