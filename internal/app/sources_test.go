package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"review_sentiment/internal/app"
	"review_sentiment/internal/domain"
)

type profileMap map[string]domain.SelectorProfile

func (m profileMap) Get(name string) (domain.SelectorProfile, bool) {
	p, ok := m[name]
	return p, ok
}

type fakeFetcher struct {
	page  domain.Page
	err   error
	calls int
}

func (f *fakeFetcher) FetchPage(ctx context.Context, url, label string) (domain.Page, error) {
	f.calls++
	if f.err != nil {
		return domain.Page{}, f.err
	}
	p := f.page
	p.URL = url
	return p, nil
}

var fixedNow = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }

func TestPageSource_PrimaryPage(t *testing.T) {
	primary := &fakeFetcher{page: domain.Page{HTML: acmePage, Fetcher: "browser"}}
	fallback := &fakeFetcher{}
	src := &app.PageSource{Primary: primary, Fallback: fallback, Profiles: profileMap{"capterra": testProfile}, Now: fixedNow}

	rs, err := src.Reviews(context.Background(), domain.Target{Company: "Acme", Platform: "Capterra", URL: "https://example.test/acme"}, 10)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(rs) != 2 || rs[0].Platform != "Capterra" || !rs[0].ScrapedAt.Equal(fixedNow()) {
		t.Fatalf("records: %+v", rs)
	}
	if fallback.calls != 0 {
		t.Fatalf("fallback used on success")
	}
}

func TestPageSource_FallbackUsesStaticProfile(t *testing.T) {
	static := domain.SelectorProfile{Containers: []string{"article"}, Content: []string{".body"}}
	primary := &fakeFetcher{err: errors.New("navigation timeout")}
	fallback := &fakeFetcher{page: domain.Page{
		HTML:    `<article><div class="body">Static markup review text here</div></article>`,
		Fetcher: "http",
	}}
	src := &app.PageSource{
		Primary:  primary,
		Fallback: fallback,
		Profiles: profileMap{"capterra": testProfile, "capterra_static": static},
	}

	rs, err := src.Reviews(context.Background(), domain.Target{Company: "Acme", Platform: "Capterra", URL: "https://example.test/acme"}, 10)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(rs) != 1 || rs[0].Content != "Static markup review text here" {
		t.Fatalf("records: %+v", rs)
	}
}

func TestPageSource_Errors(t *testing.T) {
	primaryErr := errors.New("navigation timeout")
	src := &app.PageSource{
		Primary:  &fakeFetcher{err: primaryErr},
		Fallback: &fakeFetcher{err: domain.ErrBlocked},
		Profiles: profileMap{"capterra": testProfile},
	}
	ctx := context.Background()

	if _, err := src.Reviews(ctx, domain.Target{Company: "Acme", Platform: "Capterra"}, 10); !errors.Is(err, domain.ErrNoURL) {
		t.Fatalf("want ErrNoURL, got %v", err)
	}
	if _, err := src.Reviews(ctx, domain.Target{Company: "Acme", Platform: "Trustpilot", URL: "u"}, 10); err == nil {
		t.Fatalf("unknown platform must fail")
	}
	_, err := src.Reviews(ctx, domain.Target{Company: "Acme", Platform: "Capterra", URL: "u"}, 10)
	if !errors.Is(err, primaryErr) || !errors.Is(err, domain.ErrBlocked) {
		t.Fatalf("want both errors joined, got %v", err)
	}
}

func TestDemoSource(t *testing.T) {
	d := app.DemoSource{Now: fixedNow}
	ctx := context.Background()

	rs, err := d.Reviews(ctx, domain.Target{Company: "Sage"}, 10)
	if err != nil || len(rs) != 2 {
		t.Fatalf("sage: %v %d", err, len(rs))
	}
	if rs[0].Platform != "Capterra" || rs[0].ReviewDate != "2024-06-01" || rs[0].SourceURL != "https://www.capterra.com/p/sage/" {
		t.Fatalf("record: %+v", rs[0])
	}

	rs, _ = d.Reviews(ctx, domain.Target{Company: "Unknown Co", Platform: "G2"}, 10)
	if len(rs) != 1 || rs[0].Company != "Unknown Co" || rs[0].Platform != "G2" {
		t.Fatalf("generic: %+v", rs)
	}

	rs, _ = d.Reviews(ctx, domain.Target{Company: "QuickBooks"}, 1)
	if len(rs) != 1 {
		t.Fatalf("max not applied: %d", len(rs))
	}

	// callers may mutate what they get back
	rs[0].Pros[0] = "changed"
	again, _ := d.Reviews(ctx, domain.Target{Company: "QuickBooks"}, 1)
	if again[0].Pros[0] == "changed" {
		t.Fatalf("demo data aliased")
	}
}
