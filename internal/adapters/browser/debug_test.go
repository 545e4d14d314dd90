package browser

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestSafeName(t *testing.T) {
	cases := map[string]string{
		"Sage":                    "sage",
		"BILL (Bill.com)":         "bill_bill_com",
		"Square (Block, Inc.)":    "square_block_inc",
		"  Access LMS Evo ":       "access_lms_evo",
		"!!!":                     "page",
		"Sage 50cloud Accounting": "sage_50cloud_accounting",
	}
	for in, want := range cases {
		if got := SafeName(in); got != want {
			t.Fatalf("SafeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDebugPath(t *testing.T) {
	got := DebugPath("debug_files", "Capterra", "Sage Intacct", "png")
	want := filepath.Join("debug_files", "capterra_debug_sage_intacct.png")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestErrorsUnwrap(t *testing.T) {
	var err error = &TimeoutError{URL: "https://x", After: 30 * time.Second}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("timeout error should match DeadlineExceeded")
	}
	inner := errors.New("net::ERR_NAME_NOT_RESOLVED")
	err = &NavigationError{URL: "https://x", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatalf("navigation error should unwrap")
	}
}

func TestJSArray(t *testing.T) {
	if got := jsArray(nil); got != "[]" {
		t.Fatalf("got %s", got)
	}
	if got := jsArray([]string{`[aria-label*="Accept"]`, "OK"}); got != `["[aria-label*=\"Accept\"]","OK"]` {
		t.Fatalf("got %s", got)
	}
}

func TestNew_Defaults(t *testing.T) {
	n := New(Options{SettleMin: 3 * time.Second, SettleMax: time.Second})
	if n.opts.PageTimeout != 30*time.Second || n.opts.SettleMax != 3*time.Second {
		t.Fatalf("unexpected defaults: %+v", n.opts)
	}
	if n.opts.Platform != "capterra" || n.opts.DebugDir != "." {
		t.Fatalf("unexpected defaults: %+v", n.opts)
	}
}
