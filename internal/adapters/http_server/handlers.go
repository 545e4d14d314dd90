package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"review_sentiment/internal/app"
	"review_sentiment/internal/domain"
)

const maxBody = 1 << 20

type Scraper interface {
	Run(ctx context.Context, req app.RunRequest) domain.RunSummary
	MaxCompanies() int
}

type Analyzer interface {
	CompanyAnalysis(ctx context.Context, company string) (domain.CompanySummary, error)
	Recent(ctx context.Context, limit int) ([]domain.StoredReview, error)
}

type ProductAnalyzer interface {
	AnalyzeCompany(ctx context.Context, company string) domain.CompanyProducts
}

type Handlers struct {
	Scrape   Scraper
	Analysis Analyzer
	Products ProductAnalyzer
	Catalog  domain.Catalog
	Mode     string // live|demo

	// one scrape run at a time per process
	gate *semaphore.Weighted
	now  func() time.Time
}

func NewHandlers(s Scraper, a Analyzer, p ProductAnalyzer, c domain.Catalog, mode string) *Handlers {
	return &Handlers{
		Scrape: s, Analysis: a, Products: p, Catalog: c, Mode: mode,
		gate: semaphore.NewWeighted(1),
		now:  time.Now,
	}
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Group(func(r chi.Router) {
		r.Use(Timeout(DefaultTimeout))
		r.Get("/", h.root)
		r.Get("/health", h.health)
		r.Get("/api/scrape/live-sentiment", h.sentimentQuery)
		r.Get("/api/companies", h.companies)
	})
	s.mux.Group(func(r chi.Router) {
		r.Use(Timeout(ScrapeTimeout))
		r.Post("/api/scrape/live", h.scrape)
		r.Post("/api/scrape/live-sentiment", h.scrape)
		r.Get("/api/companies/{company}/products/sentiment", h.productSentiment)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable answers 304 when the client already holds this version.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

func (h *Handlers) stamp() string { return h.now().UTC().Format(time.RFC3339) }

func (h *Handlers) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Review sentiment scraper API", "mode": h.Mode})
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "timestamp": h.stamp(), "mode": h.Mode})
}

func (h *Handlers) scrape(w http.ResponseWriter, r *http.Request) {
	var req app.RunRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected JSON {\"companies\": [...]}")
		return
	}
	if err := app.ValidateRequest(req, h.Scrape.MaxCompanies()); err != nil {
		if errors.Is(err, domain.ErrTooManyCompanies) {
			writeProblem(w, http.StatusBadRequest, "Too many companies",
				fmt.Sprintf("Maximum %d companies per request", h.Scrape.MaxCompanies()))
			return
		}
		writeProblem(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if !h.gate.TryAcquire(1) {
		writeProblem(w, http.StatusConflict, "Conflict", domain.ErrRunInProgress.Error())
		return
	}
	defer h.gate.Release(1)

	sum := h.Scrape.Run(r.Context(), req)
	writeJSON(w, http.StatusOK, sum)
}

type analysisResponse struct {
	Success   bool                   `json:"success"`
	Company   string                 `json:"company,omitempty"`
	Analysis  *domain.CompanySummary `json:"analysis,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

type recentResponse struct {
	Success    bool                  `json:"success"`
	RecentData []domain.StoredReview `json:"recentData"`
	Count      int                   `json:"count"`
	Timestamp  string                `json:"timestamp"`
}

func (h *Handlers) sentimentQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	switch action, company := q.Get("action"), q.Get("company"); {
	case action == "analysis" && company != "":
		sum, err := h.Analysis.CompanyAnalysis(r.Context(), company)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeJSON(w, http.StatusNotFound, analysisResponse{Error: "No data found for company: " + company, Timestamp: h.stamp()})
		case err != nil:
			log.Error().Err(err).Str("company", company).Msg("company analysis failed")
			writeJSON(w, http.StatusInternalServerError, analysisResponse{Error: "Error retrieving analysis: " + err.Error(), Timestamp: h.stamp()})
		default:
			writeJSON(w, http.StatusOK, analysisResponse{Success: true, Company: company, Analysis: &sum, Timestamp: h.stamp()})
		}

	case action == "recent":
		limit := app.DefaultRecentLimit
		if ls := q.Get("limit"); ls != "" {
			l, err := strconv.Atoi(ls)
			if err != nil || l <= 0 || l > 200 {
				writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
				return
			}
			limit = l
		}
		rows, err := h.Analysis.Recent(r.Context(), limit)
		if err != nil {
			log.Error().Err(err).Msg("recent reviews failed")
			writeJSON(w, http.StatusInternalServerError, analysisResponse{Error: "Error retrieving recent data: " + err.Error(), Timestamp: h.stamp()})
			return
		}
		if rows == nil {
			rows = []domain.StoredReview{}
		}
		writeJSON(w, http.StatusOK, recentResponse{Success: true, RecentData: rows, Count: len(rows), Timestamp: h.stamp()})

	default:
		writeJSON(w, http.StatusBadRequest, analysisResponse{Error: "Invalid action or missing parameters", Timestamp: h.stamp()})
	}
}

func (h *Handlers) companies(w http.ResponseWriter, r *http.Request) {
	names := h.Catalog.Companies()
	writeCacheable(w, r, map[string]any{"companies": names, "count": len(names)})
}

func (h *Handlers) productSentiment(w http.ResponseWriter, r *http.Request) {
	company := chi.URLParam(r, "company")
	if u, err := url.PathUnescape(company); err == nil {
		company = u
	}
	out := h.Products.AnalyzeCompany(r.Context(), company)
	if !out.Success {
		writeProblem(w, http.StatusNotFound, "Not Found", out.Error)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
