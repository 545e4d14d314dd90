package app

import (
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"review_sentiment/internal/domain"
)

const (
	DefaultMinContentLength = 10
	DefaultContentMin       = 20
	AnonymousReviewer       = "Anonymous"
)

// PageMeta carries the page-level facts copied into every record.
type PageMeta struct {
	Company   string
	Platform  string
	URL       string
	ScrapedAt time.Time
}

const (
	ReasonContentMissing  = "content_missing"
	ReasonContentTooShort = "content_too_short"
)

type ElementOutcome struct {
	Index  int    `json:"index"`
	Kept   bool   `json:"kept"`
	Reason string `json:"reason,omitempty"`
}

type Extraction struct {
	Records  []domain.ReviewRecord
	Outcomes []ElementOutcome
}

func (e Extraction) Dropped() int {
	n := 0
	for _, o := range e.Outcomes {
		if !o.Kept {
			n++
		}
	}
	return n
}

// Extract builds one record from a review element. Content is the only hard gate;
// every other field falls back to its default.
func Extract(el *goquery.Selection, p domain.SelectorProfile, meta PageMeta) (domain.ReviewRecord, ElementOutcome) {
	content := probeContent(el, p.Content, orDefault(p.ContentMin, DefaultContentMin))
	switch n := utf8.RuneCountInString(content); {
	case n == 0:
		return domain.ReviewRecord{}, ElementOutcome{Reason: ReasonContentMissing}
	case n < orDefault(p.MinContentLength, DefaultMinContentLength):
		return domain.ReviewRecord{}, ElementOutcome{Reason: ReasonContentTooShort}
	}

	rec := domain.ReviewRecord{
		Company:      meta.Company,
		Platform:     meta.Platform,
		ReviewerName: AnonymousReviewer,
		Content:      content,
		Pros:         []string{},
		Cons:         []string{},
		ScrapedAt:    meta.ScrapedAt,
		SourceURL:    meta.URL,
		ReviewDate:   meta.ScrapedAt.Format("2006-01-02"),
	}
	if s, ok := ProbeText(el, p.Name); ok {
		rec.ReviewerName = s
	}
	if f, ok := ProbeRating(el, p.Rating, p.RatingAttr); ok {
		rec.Rating = f
	}
	if s, ok := ProbeText(el, p.Title); ok {
		rec.Title = s
	}
	if s, ok := ProbeText(el, p.Role); ok {
		rec.ReviewerRole = s
	}
	if s, ok := ProbeText(el, p.Date); ok {
		rec.ReviewDate = s
	}
	if xs := ProbeList(el, p.Pros); len(xs) > 0 {
		rec.Pros = xs
	}
	if xs := ProbeList(el, p.Cons); len(xs) > 0 {
		rec.Cons = xs
	}
	return rec, ElementOutcome{Kept: true}
}

// ExtractAll runs Extract over the review containers of a document, keeping at
// most max records (max <= 0 means no cap).
func ExtractAll(doc *goquery.Document, p domain.SelectorProfile, meta PageMeta, max int) Extraction {
	var out Extraction
	if doc == nil {
		return out
	}
	containers := reviewContainers(doc.Selection, p.Containers)
	containers.EachWithBreak(func(i int, el *goquery.Selection) bool {
		rec, oc := Extract(el, p, meta)
		oc.Index = i
		out.Outcomes = append(out.Outcomes, oc)
		if oc.Kept {
			out.Records = append(out.Records, rec)
		}
		return max <= 0 || len(out.Records) < max
	})
	return out
}

// reviewContainers returns the matches of the first container selector that
// finds anything.
func reviewContainers(root *goquery.Selection, selectors []string) *goquery.Selection {
	for _, css := range selectors {
		if found := find(root, css); found.Length() > 0 {
			return found
		}
	}
	return root.Slice(0, 0)
}

// probeContent takes, per selector, the longest matching text; the first one
// longer than early wins, otherwise the longest seen overall.
func probeContent(el *goquery.Selection, selectors []string, early int) string {
	best := ""
	for _, css := range selectors {
		cand := ""
		find(el, css).Each(func(_ int, s *goquery.Selection) {
			if t := cleanText(s.Text()); utf8.RuneCountInString(t) > utf8.RuneCountInString(cand) {
				cand = t
			}
		})
		if utf8.RuneCountInString(cand) > early {
			return cand
		}
		if utf8.RuneCountInString(cand) > utf8.RuneCountInString(best) {
			best = cand
		}
	}
	return best
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
