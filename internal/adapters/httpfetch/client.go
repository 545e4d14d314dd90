package httpfetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"review_sentiment/internal/adapters/observability"
	"review_sentiment/internal/domain"
	"review_sentiment/internal/shared"
)

type Options struct {
	RPS     float64
	Timeout time.Duration
	// Transport replaces the default transport (tests).
	Transport http.RoundTripper
}

// Client fetches static HTML for pages the browser could not load.
type Client struct {
	http *resty.Client
	rl   *rate.Limiter
}

func New(opts Options) *Client {
	if opts.RPS <= 0 {
		opts.RPS = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	client := resty.New()
	if opts.Transport != nil {
		client.SetTransport(opts.Transport)
	}
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetTimeout(opts.Timeout)
	client.SetHeaders(shared.BrowserHeaders)

	return &Client{
		http: client,
		rl:   rate.NewLimiter(rate.Limit(opts.RPS), 1),
	}
}

// StatusError is a non-200 answer from the remote.
type StatusError struct {
	URL        string
	Code       int
	RetryAfter time.Duration
	Err        error // ErrNotFound / ErrBlocked when the code maps to one
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("GET %s: status %d", e.URL, e.Code)
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
	}
	return msg
}

func (e *StatusError) Unwrap() error { return e.Err }

// FetchPage performs one rate-limited GET. No retries.
func (c *Client) FetchPage(ctx context.Context, rawURL, label string) (domain.Page, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return domain.Page{}, err
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("user-agent", shared.RandomUserAgent()).
		Get(rawURL)
	if err != nil {
		observability.ObserveExternal("http", host(rawURL), 0, time.Since(start))
		if ctx.Err() != nil {
			return domain.Page{}, ctx.Err()
		}
		return domain.Page{}, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	observability.ObserveExternal("http", host(rawURL), resp.StatusCode(), time.Since(start))

	switch code := resp.StatusCode(); code {
	case http.StatusOK:
		log.Debug().Str("url", rawURL).Str("label", label).Int("bytes", len(resp.Body())).Msg("static page fetched")
		return domain.Page{URL: rawURL, HTML: resp.String(), Fetcher: "http"}, nil
	case http.StatusNotFound:
		return domain.Page{}, &StatusError{URL: rawURL, Code: code, Err: domain.ErrNotFound}
	case http.StatusForbidden, http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return domain.Page{}, &StatusError{
			URL: rawURL, Code: code,
			RetryAfter: retryAfter(resp.Header()),
			Err:        domain.ErrBlocked,
		}
	default:
		return domain.Page{}, &StatusError{URL: rawURL, Code: code}
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(h http.Header) time.Duration {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

func host(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
