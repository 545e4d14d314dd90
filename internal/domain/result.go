package domain

type PlatformStats struct {
	Reviews      int     `json:"reviews"`
	AvgSentiment float64 `json:"avgSentiment"`
	AvgRating    float64 `json:"avgRating"`
}

// CompanyResult is recomputed every run and never persisted on its own.
type CompanyResult struct {
	Company          string                   `json:"company"`
	TotalReviews     int                      `json:"totalReviews"`
	AverageSentiment float64                  `json:"averageSentiment"`
	AverageRating    float64                  `json:"averageRating"`
	Platforms        map[string]PlatformStats `json:"platforms"`
}

type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeError   OutcomeStatus = "error"
)

type CompanyOutcome struct {
	Company string        `json:"company"`
	Status  OutcomeStatus `json:"status"`
	Reason  string        `json:"reason,omitempty"`
	Reviews int           `json:"reviews"`
}

type RunState string

const (
	RunIdle      RunState = "idle"
	RunRunning   RunState = "running"
	RunCompleted RunState = "completed"
	RunError     RunState = "error"
)

type RunSummary struct {
	Success            bool             `json:"success"`
	State              RunState         `json:"state"`
	TotalReviews       int              `json:"totalReviews"`
	CompaniesProcessed int              `json:"companiesProcessed"`
	PlatformBreakdown  map[string]int   `json:"platformBreakdown"`
	AverageSentiment   float64          `json:"averageSentiment"`
	StoredInSupabase   bool             `json:"storedInSupabase"`
	StoredCount        int              `json:"storedCount"`
	ProcessingTime     string           `json:"processingTime"`
	Errors             []string         `json:"errors"`
	CompanyResults     []CompanyResult  `json:"companyResults"`
	CompanyOutcomes    []CompanyOutcome `json:"companyOutcomes"`
	Message            string           `json:"message,omitempty"`
	Timestamp          string           `json:"timestamp,omitempty"`
	RequestID          string           `json:"requestId,omitempty"`
}

// CompanySummary is the stored-data view of one company.
type CompanySummary struct {
	TotalReviews          int            `json:"totalReviews"`
	AverageSentiment      float64        `json:"averageSentiment"`
	AverageRating         float64        `json:"averageRating"`
	PlatformBreakdown     map[string]int `json:"platformBreakdown"`
	SentimentDistribution map[Label]int  `json:"sentimentDistribution"`
}

type OverallSentiment struct {
	Score            float64 `json:"score"`
	Label            Label   `json:"label"`
	TotalProducts    int     `json:"totalProducts"`
	PositiveProducts int     `json:"positiveProducts"`
	NegativeProducts int     `json:"negativeProducts"`
	NeutralProducts  int     `json:"neutralProducts"`
}

type ProductSentiment struct {
	Sentiment     float64        `json:"sentiment"`
	Reviews       int            `json:"reviews"`
	AverageRating float64        `json:"averageRating"`
	Platform      string         `json:"platform"`
	URL           string         `json:"url"`
	RecentReviews []ReviewRecord `json:"recentReviews"`
}

type CompanyProducts struct {
	Company          string                      `json:"company"`
	Success          bool                        `json:"success"`
	Error            string                      `json:"error,omitempty"`
	Products         map[string]ProductSentiment `json:"products"`
	OverallSentiment OverallSentiment            `json:"overallSentiment"`
	TotalReviews     int                         `json:"totalReviews"`
	Platforms        map[string]int              `json:"platforms"`
	Timestamp        string                      `json:"timestamp"`
}
