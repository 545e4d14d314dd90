package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"review_sentiment/internal/domain"
)

// ProfileSet resolves selector profiles by name.
type ProfileSet interface {
	Get(name string) (domain.SelectorProfile, bool)
}

// PageSource reads reviews off a rendered page: fetch, parse, extract.
// When the primary fetch fails and Fallback is set, the page is fetched again
// with Fallback and extracted with the "<platform>_static" profile.
type PageSource struct {
	Primary  domain.PageFetcher
	Fallback domain.PageFetcher
	Profiles ProfileSet
	Now      func() time.Time
}

func (s *PageSource) Reviews(ctx context.Context, t domain.Target, max int) ([]domain.ReviewRecord, error) {
	if t.URL == "" {
		return nil, domain.ErrNoURL
	}
	key := strings.ToLower(t.Platform)
	profile, ok := s.Profiles.Get(key)
	if !ok {
		return nil, fmt.Errorf("no selector profile for platform %q", t.Platform)
	}
	label := t.Company
	if t.Product != "" {
		label = t.Product
	}

	page, err := s.Primary.FetchPage(ctx, t.URL, label)
	if err != nil {
		if s.Fallback == nil || ctx.Err() != nil {
			return nil, err
		}
		log.Warn().Err(err).Str("company", t.Company).Str("url", t.URL).Msg("browser fetch failed; trying http fallback")
		static, ok := s.Profiles.Get(key + "_static")
		if !ok {
			static = profile
		}
		fpage, ferr := s.Fallback.FetchPage(ctx, t.URL, label)
		if ferr != nil {
			return nil, errors.Join(err, ferr)
		}
		page, profile = fpage, static
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", t.URL, err)
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	ex := ExtractAll(doc, profile, PageMeta{
		Company:   t.Company,
		Platform:  t.Platform,
		URL:       t.URL,
		ScrapedAt: now(),
	}, max)
	log.Debug().
		Str("company", t.Company).
		Str("fetcher", page.Fetcher).
		Int("elements", len(ex.Outcomes)).
		Int("kept", len(ex.Records)).
		Int("dropped", ex.Dropped()).
		Msg("extraction done")
	return ex.Records, nil
}

/********** demo data **********/

type demoReview struct {
	name, role, content string
	rating              float64
	pros, cons          []string
}

var demoReviews = map[string][]demoReview{
	"Sage": {
		{
			name: "Sarah Johnson", role: "Financial Controller", rating: 5,
			content: "Sage has completely transformed our accounting processes. The automation features save us hours every month, and the reporting capabilities are outstanding. Customer support is responsive and helpful. Highly recommended for any small to medium business looking for reliable accounting software.",
			pros:    []string{"Excellent automation", "Great reporting", "Responsive support"},
			cons:    []string{"Learning curve", "Price could be lower"},
		},
		{
			name: "Michael Chen", role: "Business Owner", rating: 4,
			content: "Good accounting software with solid features. The interface is intuitive and the integration with our bank accounts works seamlessly. Some advanced features could be better documented, but overall it's a reliable solution for our business needs.",
			pros:    []string{"Intuitive interface", "Good bank integration", "Reliable"},
			cons:    []string{"Limited documentation", "Some bugs"},
		},
	},
	"QuickBooks": {
		{
			name: "Alex Thompson", role: "Small Business Owner", rating: 5,
			content: "QuickBooks is the gold standard for accounting software. Everything works seamlessly, from bank reconciliation to payroll processing. The mobile app is excellent, and customer support is always helpful.",
			pros:    []string{"Seamless operation", "Excellent mobile app", "Great support"},
			cons:    []string{"Price"},
		},
		{
			name: "Maria Rodriguez", role: "Bookkeeper", rating: 4,
			content: "Very good accounting software with excellent features. The integration with banks and credit cards works perfectly. Some advanced features could be better documented, but overall it's a solid choice.",
			pros:    []string{"Excellent bank integration", "Good features", "Solid choice"},
			cons:    []string{"Poor documentation", "Complex advanced features"},
		},
	},
}

var genericDemo = []demoReview{{
	name: "Generic User", role: "Business Owner", rating: 3,
	content: "Good software overall. Works as advertised.",
	pros:    []string{"Functional", "Reliable"},
	cons:    []string{"Could be better"},
}}

// DemoSource serves fixed reviews instead of scraping; it never fails.
type DemoSource struct {
	Now func() time.Time
}

func (d DemoSource) Reviews(ctx context.Context, t domain.Target, max int) ([]domain.ReviewRecord, error) {
	set, ok := demoReviews[t.Company]
	if !ok {
		set = genericDemo
	}
	if max > 0 && len(set) > max {
		set = set[:max]
	}
	now := time.Now()
	if d.Now != nil {
		now = d.Now()
	}
	platform := t.Platform
	if platform == "" {
		platform = "Capterra"
	}
	out := make([]domain.ReviewRecord, 0, len(set))
	for i, r := range set {
		out = append(out, domain.ReviewRecord{
			Company:      t.Company,
			Platform:     platform,
			ReviewerName: r.name,
			ReviewerRole: r.role,
			Rating:       r.rating,
			Title:        fmt.Sprintf("Review %d", i+1),
			Content:      r.content,
			Pros:         append([]string(nil), r.pros...),
			Cons:         append([]string(nil), r.cons...),
			ReviewDate:   now.Format("2006-01-02"),
			ScrapedAt:    now,
			SourceURL:    fmt.Sprintf("https://www.capterra.com/p/%s/", slug(t.Company, "-")),
		})
	}
	return out, nil
}
