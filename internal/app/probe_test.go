package app_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"review_sentiment/internal/app"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return d
}

func TestProbeText_FirstNonEmptyMatchWins(t *testing.T) {
	d := doc(t, `<div>
		<span class="name">  </span>
		<span class="author">  Jane
		   Doe </span>
		<span class="user">Someone Else</span>
	</div>`)

	got, ok := app.ProbeText(d.Selection, []string{".missing", ".name", ".author", ".user"})
	if !ok || got != "Jane Doe" {
		t.Fatalf("got %q, %v", got, ok)
	}

	if _, ok := app.ProbeText(d.Selection, []string{".missing", ""}); ok {
		t.Fatalf("expected no match")
	}
	if _, ok := app.ProbeText(nil, []string{".author"}); ok {
		t.Fatalf("nil selection must not match")
	}
}

func TestProbeText_InvalidSelectorIsSkipped(t *testing.T) {
	d := doc(t, `<p class="t">Title here</p>`)
	got, ok := app.ProbeText(d.Selection, []string{"[[[", ".t"})
	if !ok || got != "Title here" {
		t.Fatalf("got %q, %v", got, ok)
	}
}

func TestProbeAttr(t *testing.T) {
	d := doc(t, `<div><a class="x">no attr</a><a class="x" data-id=" 42 ">y</a></div>`)
	got, ok := app.ProbeAttr(d.Selection, []string{".x"}, "data-id")
	if !ok || got != "42" {
		t.Fatalf("got %q, %v", got, ok)
	}
	if _, ok := app.ProbeAttr(d.Selection, []string{".x"}, ""); ok {
		t.Fatalf("empty attr must not match")
	}
}

func TestProbeRating(t *testing.T) {
	cases := []struct {
		name string
		html string
		attr string
		want float64
		ok   bool
	}{
		{"aria label", `<div class="r" aria-label="Rated 4.5 out of 5"></div>`, "aria-label", 4.5, true},
		{"text fallback", `<div class="r">3 stars</div>`, "aria-label", 3, true},
		{"out of range skipped", `<div class="r">12</div><div class="r">4</div>`, "", 4, true},
		{"no number", `<div class="r">great</div>`, "", 0, false},
		{"nothing matches", `<div class="other">5</div>`, "", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := app.ProbeRating(doc(t, tc.html).Selection, []string{".r"}, tc.attr)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("got %v,%v want %v,%v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestProbeList(t *testing.T) {
	d := doc(t, `<div>
		<div class="pros"><ul><li>Fast</li><li> </li><li>Cheap</li></ul></div>
		<p class="cons">Too many   clicks</p>
	</div>`)

	pros := app.ProbeList(d.Selection, []string{".nothing", ".pros"})
	if len(pros) != 2 || pros[0] != "Fast" || pros[1] != "Cheap" {
		t.Fatalf("pros: %#v", pros)
	}
	cons := app.ProbeList(d.Selection, []string{".cons"})
	if len(cons) != 1 || cons[0] != "Too many clicks" {
		t.Fatalf("cons: %#v", cons)
	}
	if got := app.ProbeList(d.Selection, []string{".none"}); got != nil {
		t.Fatalf("expected nil, got %#v", got)
	}
}
