package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"review_sentiment/internal/domain"
)

const namespace = "reviews"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "external_requests_total", Help: "Outbound page fetches."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "external_request_duration_seconds",
			Help:    "Outbound page fetch duration seconds.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"service", "endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)

	ScrapeCompanies = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "scrape_companies_total", Help: "Companies attempted, by outcome."},
		[]string{"status"},
	)
	ScrapeReviews = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "scrape_reviews_total", Help: "Reviews collected."},
		[]string{"platform"},
	)
	ScrapeRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "scrape_runs_total", Help: "Finished scrape runs."},
		[]string{"state", "stored"},
	)
	ScrapeRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "scrape_run_duration_seconds",
		Help:    "Wall-clock duration of a scrape run.",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
	})
	CompanySentiment = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "company_sentiment",
		Help:    "Average review sentiment per scraped company.",
		Buckets: prometheus.LinearBuckets(-1, 0.25, 9),
	})
)

// Serve exposes /metrics on its own listener. Empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, CacheEvents,
		ScrapeCompanies, ScrapeReviews, ScrapeRuns, ScrapeRunDuration, CompanySentiment,
	)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

// LabelErr maps an error to a low-cardinality label.
func LabelErr(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, domain.ErrBlocked):
		return "blocked"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	}
	return fmt.Sprintf("%T", err)
}

// MetricsSink records run progress in the scrape metrics.
type MetricsSink struct{}

func (MetricsSink) OnProgress(_ context.Context, ev domain.ProgressEvent) {
	switch {
	case ev.Summary != nil:
		s := ev.Summary
		ScrapeRuns.WithLabelValues(string(s.State), strconv.FormatBool(s.StoredInSupabase)).Inc()
		if d, err := time.ParseDuration(s.ProcessingTime); err == nil {
			ScrapeRunDuration.Observe(d.Seconds())
		}
		for platform, n := range s.PlatformBreakdown {
			ScrapeReviews.WithLabelValues(strings.ToLower(platform)).Add(float64(n))
		}
		for _, cr := range s.CompanyResults {
			CompanySentiment.Observe(cr.AverageSentiment)
		}
	case ev.Outcome != nil:
		ScrapeCompanies.WithLabelValues(string(ev.Outcome.Status)).Inc()
	}
}
