package httpfetch_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"

	"review_sentiment/internal/adapters/httpfetch"
	"review_sentiment/internal/domain"
)

const pageURL = "https://www.capterra.com/p/1/Acme/reviews/"

func newClient(status int, body string, hdr http.Header) (*httpfetch.Client, *httpmock.MockTransport) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", pageURL, func(req *http.Request) (*http.Response, error) {
		resp := httpmock.NewStringResponse(status, body)
		for k, v := range hdr {
			resp.Header[k] = v
		}
		return resp, nil
	})
	return httpfetch.New(httpfetch.Options{RPS: 100, Transport: transport}), transport
}

func TestFetchPage_OK(t *testing.T) {
	cl, transport := newClient(200, "<html><body><div class=review>hi</div></body></html>", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	p, err := cl.FetchPage(ctx, pageURL, "Acme")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Fetcher != "http" || p.URL != pageURL {
		t.Fatalf("unexpected page: %+v", p)
	}
	if p.HTML == "" {
		t.Fatalf("empty html")
	}
	if n := transport.GetTotalCallCount(); n != 1 {
		t.Fatalf("expected 1 call, got %d", n)
	}
}

func TestFetchPage_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{404, domain.ErrNotFound},
		{403, domain.ErrBlocked},
		{429, domain.ErrBlocked},
		{503, domain.ErrBlocked},
	}
	for _, tc := range cases {
		cl, transport := newClient(tc.status, "", nil)
		_, err := cl.FetchPage(context.Background(), pageURL, "Acme")
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d: got %v, want %v", tc.status, err, tc.want)
		}
		var se *httpfetch.StatusError
		if !errors.As(err, &se) || se.Code != tc.status {
			t.Fatalf("status %d: expected StatusError, got %T", tc.status, err)
		}
		// no retries
		if n := transport.GetTotalCallCount(); n != 1 {
			t.Fatalf("status %d: expected 1 call, got %d", tc.status, n)
		}
	}
}

func TestFetchPage_RetryAfterAndOtherStatus(t *testing.T) {
	cl, _ := newClient(429, "", http.Header{"Retry-After": []string{"7"}})
	_, err := cl.FetchPage(context.Background(), pageURL, "Acme")
	var se *httpfetch.StatusError
	if !errors.As(err, &se) || se.RetryAfter != 7*time.Second {
		t.Fatalf("expected retry-after 7s, got %v", err)
	}

	cl, _ = newClient(500, "boom", nil)
	_, err = cl.FetchPage(context.Background(), pageURL, "Acme")
	if !errors.As(err, &se) || se.Code != 500 {
		t.Fatalf("expected StatusError 500, got %v", err)
	}
	if errors.Is(err, domain.ErrBlocked) || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("500 should not map to a sentinel: %v", err)
	}
}

func TestFetchPage_ContextCanceled(t *testing.T) {
	cl, _ := newClient(200, "ok", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := cl.FetchPage(ctx, pageURL, "Acme"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
