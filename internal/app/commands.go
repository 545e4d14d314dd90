package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"review_sentiment/internal/domain"
)

type ScrapeOptions struct {
	Platform     string // display name stored on records, e.g. "Capterra"
	MaxCompanies int
	MaxReviews   int
	DelayMin     time.Duration
	DelayMax     time.Duration
	// Demo runs do not need a catalog URL.
	Demo bool
}

type RunRequest struct {
	Companies  []string `json:"companies"`
	MaxReviews int      `json:"maxReviews,omitempty"`
}

// ValidateRequest checks a request against the per-run company cap.
func ValidateRequest(req RunRequest, maxCompanies int) error {
	if len(cleanCompanies(req.Companies)) == 0 {
		return errors.New("companies must not be empty")
	}
	if maxCompanies > 0 && len(cleanCompanies(req.Companies)) > maxCompanies {
		return fmt.Errorf("%w: maximum %d companies per request", domain.ErrTooManyCompanies, maxCompanies)
	}
	return nil
}

// ScrapeService runs companies one at a time: resolve URL, read reviews, score,
// aggregate; then persists everything in one batch.
type ScrapeService struct {
	catalog domain.Catalog
	source  domain.ReviewSource
	scorer  *Scorer
	repo    domain.ReviewRepository
	cache   domain.Cache
	sink    domain.ProgressSink
	opts    ScrapeOptions
	now     func() time.Time
}

func NewScrapeService(cat domain.Catalog, src domain.ReviewSource, sc *Scorer, r domain.ReviewRepository, cache domain.Cache, opts ScrapeOptions) *ScrapeService {
	if opts.Platform == "" {
		opts.Platform = "Capterra"
	}
	return &ScrapeService{
		catalog: cat, source: src, scorer: sc, repo: r, cache: cache,
		sink: NopSink{}, opts: opts, now: time.Now,
	}
}

// WithProgress sets the sink receiving run and company events.
func (s *ScrapeService) WithProgress(sink domain.ProgressSink) *ScrapeService {
	if sink != nil {
		s.sink = sink
	}
	return s
}

func (s *ScrapeService) MaxCompanies() int { return s.opts.MaxCompanies }

// Run never fails: every problem ends up in the summary.
func (s *ScrapeService) Run(ctx context.Context, req RunRequest) domain.RunSummary {
	start := time.Now()
	sum := domain.RunSummary{
		State:             domain.RunRunning,
		RequestID:         uuid.NewString(),
		PlatformBreakdown: map[string]int{},
		Errors:            []string{},
		CompanyResults:    []domain.CompanyResult{},
		CompanyOutcomes:   []domain.CompanyOutcome{},
	}

	companies := cleanCompanies(req.Companies)
	if capN := s.opts.MaxCompanies; capN > 0 && len(companies) > capN {
		over := companies[capN:]
		companies = companies[:capN]
		sum.Errors = append(sum.Errors, fmt.Sprintf("Skipped %d companies over the limit of %d: %s",
			len(over), capN, strings.Join(over, ", ")))
	}
	maxReviews := req.MaxReviews
	if maxReviews <= 0 {
		maxReviews = s.opts.MaxReviews
	}

	s.sink.OnProgress(ctx, domain.ProgressEvent{RequestID: sum.RequestID, State: domain.RunRunning, Total: len(companies)})

	var all []domain.ReviewRecord
	for i, company := range companies {
		if err := ctx.Err(); err != nil {
			for _, rest := range companies[i:] {
				oc := domain.CompanyOutcome{Company: rest, Status: domain.OutcomeError, Reason: err.Error()}
				sum.CompanyOutcomes = append(sum.CompanyOutcomes, oc)
			}
			sum.Errors = append(sum.Errors, fmt.Sprintf("Run interrupted before %s: %v", company, err))
			sum.State = domain.RunError
			break
		}

		oc, recs, errMsg := s.scrapeCompany(ctx, company, maxReviews)
		sum.CompaniesProcessed++
		sum.CompanyOutcomes = append(sum.CompanyOutcomes, oc)
		if errMsg != "" {
			sum.Errors = append(sum.Errors, errMsg)
		}
		if len(recs) > 0 {
			all = append(all, recs...)
			sum.CompanyResults = append(sum.CompanyResults, BuildCompanyResult(company, recs))
		}
		s.sink.OnProgress(ctx, domain.ProgressEvent{
			RequestID: sum.RequestID, State: domain.RunRunning,
			Company: company, Index: i + 1, Total: len(companies), Outcome: &oc,
		})

		if i < len(companies)-1 {
			// an interrupted pause is recorded by the next iteration
			sleepCtx(ctx, between(s.opts.DelayMin, s.opts.DelayMax))
		}
	}
	// cancelled while the last company was in flight
	if ctx.Err() != nil && sum.State == domain.RunRunning {
		sum.State = domain.RunError
	}

	// Collected reviews are stored even if the run was interrupted.
	sum.StoredInSupabase, sum.StoredCount = s.persist(context.WithoutCancel(ctx), all)

	sum.TotalReviews = len(all)
	sum.AverageSentiment = mean(scoresOf(all))
	for k, v := range PlatformBreakdown(all) {
		sum.PlatformBreakdown[k] = v
	}
	if sum.State == domain.RunRunning {
		sum.State = domain.RunCompleted
	}
	sum.Success = sum.State == domain.RunCompleted
	sum.ProcessingTime = fmt.Sprintf("%.2fs", time.Since(start).Seconds())
	sum.Timestamp = s.now().UTC().Format(time.RFC3339)
	if s.opts.Demo {
		sum.Message = fmt.Sprintf("Generated %d demo reviews from %d companies", sum.TotalReviews, sum.CompaniesProcessed)
	} else {
		sum.Message = fmt.Sprintf("Scraped %d reviews from %d companies", sum.TotalReviews, sum.CompaniesProcessed)
	}

	s.sink.OnProgress(ctx, domain.ProgressEvent{RequestID: sum.RequestID, State: sum.State, Total: len(companies), Summary: &sum})
	return sum
}

// scrapeCompany returns the outcome, the scored records and, for failures only,
// the error line for the summary.
func (s *ScrapeService) scrapeCompany(ctx context.Context, company string, max int) (domain.CompanyOutcome, []domain.ReviewRecord, string) {
	oc := domain.CompanyOutcome{Company: company}

	url, ok := s.catalog.URLFor(company)
	if !ok && !s.opts.Demo {
		log.Warn().Str("company", company).Msg("no review url in catalog; skipping")
		oc.Status = domain.OutcomeSkipped
		oc.Reason = domain.ErrNoURL.Error()
		return oc, nil, ""
	}

	recs, err := s.source.Reviews(ctx, domain.Target{Company: company, Platform: s.opts.Platform, URL: url}, max)
	if err != nil {
		oc.Status = domain.OutcomeError
		oc.Reason = err.Error()
		return oc, nil, fmt.Sprintf("Error scraping %s for %s: %v", s.opts.Platform, company, err)
	}

	for i := range recs {
		recs[i].Sentiment = s.scorer.Score(recs[i].Content)
	}
	oc.Status = domain.OutcomeSuccess
	oc.Reviews = len(recs)
	return oc, recs, ""
}

// persist does the single batch insert of a run. An empty batch counts as stored.
func (s *ScrapeService) persist(ctx context.Context, rs []domain.ReviewRecord) (bool, int) {
	if len(rs) == 0 {
		return true, 0
	}
	if s.repo == nil {
		return false, 0
	}
	if err := s.repo.InsertReviews(ctx, toStoredAll(rs, s.now())); err != nil {
		log.Error().Err(err).Int("reviews", len(rs)).Msg("batch insert failed")
		return false, 0
	}
	if s.cache != nil {
		seen := map[string]bool{}
		for _, r := range rs {
			if !seen[r.Company] {
				seen[r.Company] = true
				_ = s.cache.Del(ctx, AnalysisKey(r.Company))
			}
		}
		bumpRecentGeneration(ctx, s.cache)
	}
	return true, len(rs)
}

// cleanCompanies trims names and drops blanks and duplicates, keeping order.
func cleanCompanies(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, c := range in {
		c = strings.TrimSpace(c)
		if c == "" || seen[strings.ToLower(c)] {
			continue
		}
		seen[strings.ToLower(c)] = true
		out = append(out, c)
	}
	return out
}
