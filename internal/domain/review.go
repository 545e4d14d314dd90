package domain

import "time"

type Label string

const (
	LabelPositive Label = "positive"
	LabelNeutral  Label = "neutral"
	LabelNegative Label = "negative"
)

// ReviewRecord is one scraped (or synthesized) review. It lives for a single run:
// extracted, annotated with Sentiment, handed to storage.
type ReviewRecord struct {
	Company      string          `json:"company"`
	Platform     string          `json:"platform"`
	ReviewerName string          `json:"reviewerName"`
	ReviewerRole string          `json:"reviewerRole,omitempty"`
	Rating       float64         `json:"rating"` // 0..5, 0 = unknown
	Title        string          `json:"title,omitempty"`
	Content      string          `json:"content"`
	Pros         []string        `json:"pros"`
	Cons         []string        `json:"cons"`
	ReviewDate   string          `json:"reviewDate"`
	ScrapedAt    time.Time       `json:"scrapedAt"`
	SourceURL    string          `json:"sourceUrl"`
	Sentiment    SentimentResult `json:"sentiment"`
}

type SentimentResult struct {
	Score      float64 `json:"score"`
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
}

// StoredReview mirrors a row of the sentiment_data table.
type StoredReview struct {
	ID                  int64     `json:"id,omitempty"`
	Company             string    `json:"company"`
	Platform            string    `json:"platform"`
	Title               string    `json:"title,omitempty"`
	Content             string    `json:"content"`
	Author              string    `json:"author"`
	URL                 string    `json:"url,omitempty"`
	Rating              float64   `json:"rating"`
	SentimentScore      float64   `json:"sentiment_score"`
	SentimentLabel      Label     `json:"sentiment_label"`
	SentimentConfidence float64   `json:"sentiment_confidence"`
	Pros                []string  `json:"pros"`
	Cons                []string  `json:"cons"`
	ReviewerRole        string    `json:"reviewer_role"`
	ReviewDate          string    `json:"review_date"`
	ScrapedAt           time.Time `json:"scraped_at"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
