package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"os"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"review_sentiment/internal/adapters/observability"
	"review_sentiment/internal/domain"
	"review_sentiment/internal/shared"
)

const (
	viewportW = 1920
	viewportH = 1080

	cookieTimeout = 5 * time.Second
	screenshotQ   = 90
)

const webdriverMask = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined});`

// Options configures page loading. Zero durations fall back to defaults.
type Options struct {
	Headless    bool
	ExecPath    string
	PageTimeout time.Duration
	SettleMin   time.Duration
	SettleMax   time.Duration

	// Platform prefixes debug artifact names.
	Platform        string
	SaveScreenshots bool
	SaveHTML        bool
	DebugDir        string

	CookieSelectors []string
	CookieTexts     []string
}

// Navigator loads review pages in a fresh headless Chrome per session.
type Navigator struct {
	opts Options
}

func New(opts Options) *Navigator {
	if opts.PageTimeout <= 0 {
		opts.PageTimeout = 30 * time.Second
	}
	if opts.SettleMin <= 0 {
		opts.SettleMin = 2 * time.Second
	}
	if opts.SettleMax < opts.SettleMin {
		opts.SettleMax = opts.SettleMin
	}
	if opts.Platform == "" {
		opts.Platform = "capterra"
	}
	if opts.DebugDir == "" {
		opts.DebugDir = "."
	}
	return &Navigator{opts: opts}
}

// Session is one open browser with one loaded page.
type Session struct {
	URL    string
	Label  string
	Status int

	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	opts        Options
}

// Open starts a browser, loads url and waits for the page to settle.
// The browser is closed on error; otherwise the caller must Close the session.
func (n *Navigator) Open(ctx context.Context, rawURL, label string) (*Session, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", n.opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("enable-automation", false),
		chromedp.WindowSize(viewportW, viewportH),
		chromedp.UserAgent(shared.RandomUserAgent()),
	)
	if n.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(n.opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	bctx, cancel := chromedp.NewContext(allocCtx)
	s := &Session{URL: rawURL, Label: label, ctx: bctx, cancel: cancel, allocCancel: allocCancel, opts: n.opts}

	var status atomic.Int64
	chromedp.ListenTarget(bctx, func(ev any) {
		if e, ok := ev.(*network.EventResponseReceived); ok && e.Type == network.ResourceTypeDocument {
			status.CompareAndSwap(0, e.Response.Status)
		}
	})

	headers := make(network.Headers, len(shared.BrowserHeaders))
	for k, v := range shared.BrowserHeaders {
		headers[k] = v
	}

	// The first Run starts the browser; it must not use a context that gets
	// cancelled before the session ends.
	if err := chromedp.Run(bctx,
		network.Enable(),
		network.SetExtraHTTPHeaders(headers),
		emulation.SetDeviceMetricsOverride(viewportW, viewportH, 1, false),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(webdriverMask).Do(ctx)
			return err
		}),
	); err != nil {
		s.Close()
		return nil, &NavigationError{URL: rawURL, Err: fmt.Errorf("start browser: %w", err)}
	}

	start := time.Now()
	navCtx, navCancel := context.WithTimeout(bctx, n.opts.PageTimeout)
	err := chromedp.Run(navCtx, chromedp.Navigate(rawURL))
	navCancel()
	s.Status = int(status.Load())
	observability.ObserveExternal("browser", host(rawURL), s.Status, time.Since(start))
	if err != nil {
		s.Close()
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &TimeoutError{URL: rawURL, After: n.opts.PageTimeout}
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &NavigationError{URL: rawURL, Err: err}
	}

	if n.dismissCookies(bctx) {
		log.Debug().Str("label", label).Msg("cookie banner dismissed")
	}

	settle := n.opts.SettleMin
	if span := n.opts.SettleMax - n.opts.SettleMin; span > 0 {
		settle += rand.N(span)
	}
	if err := chromedp.Run(bctx, chromedp.Sleep(settle)); err != nil {
		s.Close()
		return nil, err
	}

	log.Debug().Str("url", rawURL).Str("label", label).Int("status", s.Status).
		Dur("settle", settle).Msg("page loaded")
	return s, nil
}

// HTML returns the rendered document.
func (s *Session) HTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var html string
	if err := chromedp.Run(s.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", &NavigationError{URL: s.URL, Err: err}
	}
	return html, nil
}

// SaveDebug writes the enabled debug artifacts. Failures are logged only.
func (s *Session) SaveDebug(html string) {
	if !s.opts.SaveScreenshots && !s.opts.SaveHTML {
		return
	}
	if err := os.MkdirAll(s.opts.DebugDir, 0o755); err != nil {
		log.Warn().Err(err).Str("dir", s.opts.DebugDir).Msg("debug dir")
		return
	}
	if s.opts.SaveScreenshots {
		var buf []byte
		p := DebugPath(s.opts.DebugDir, s.opts.Platform, s.Label, "png")
		if err := chromedp.Run(s.ctx, chromedp.FullScreenshot(&buf, screenshotQ)); err != nil {
			log.Warn().Err(err).Str("label", s.Label).Msg("screenshot failed")
		} else if err := os.WriteFile(p, buf, 0o644); err != nil {
			log.Warn().Err(err).Str("path", p).Msg("write screenshot")
		} else {
			log.Info().Str("path", p).Msg("screenshot saved")
		}
	}
	if s.opts.SaveHTML && html != "" {
		p := DebugPath(s.opts.DebugDir, s.opts.Platform, s.Label, "html")
		if err := os.WriteFile(p, []byte(html), 0o644); err != nil {
			log.Warn().Err(err).Str("path", p).Msg("write html")
		} else {
			log.Info().Str("path", p).Msg("html saved")
		}
	}
}

func (s *Session) Close() {
	s.cancel()
	s.allocCancel()
}

// FetchPage opens url, reads the rendered HTML and closes the browser.
func (n *Navigator) FetchPage(ctx context.Context, rawURL, label string) (domain.Page, error) {
	s, err := n.Open(ctx, rawURL, label)
	if err != nil {
		log.Warn().Err(err).Str("url", rawURL).Str("kind", observability.LabelErr(err)).Msg("browser fetch failed")
		return domain.Page{}, err
	}
	defer s.Close()

	html, err := s.HTML(ctx)
	if err != nil {
		return domain.Page{}, err
	}
	s.SaveDebug(html)
	return domain.Page{URL: rawURL, HTML: html, Fetcher: "browser"}, nil
}

/********** cookie banners **********/

const cookieScript = `(() => {
  const visible = el => !!el && el.offsetParent !== null;
  for (const sel of %s) {
    let el = null;
    try { el = document.querySelector(sel); } catch (e) { continue; }
    if (visible(el)) { el.click(); return true; }
  }
  const texts = %s.map(t => t.toLowerCase());
  for (const el of document.querySelectorAll('button, a, [role="button"]')) {
    const t = (el.innerText || '').trim().toLowerCase();
    if (texts.includes(t) && visible(el)) { el.click(); return true; }
  }
  return false;
})()`

// dismissCookies clicks the first visible consent button. Errors are ignored.
func (n *Navigator) dismissCookies(ctx context.Context) bool {
	if len(n.opts.CookieSelectors) == 0 && len(n.opts.CookieTexts) == 0 {
		return false
	}
	cctx, cancel := context.WithTimeout(ctx, cookieTimeout)
	defer cancel()

	var clicked bool
	js := fmt.Sprintf(cookieScript, jsArray(n.opts.CookieSelectors), jsArray(n.opts.CookieTexts))
	if err := chromedp.Run(cctx, chromedp.Evaluate(js, &clicked)); err != nil {
		return false
	}
	if clicked {
		_ = chromedp.Run(cctx, chromedp.Sleep(time.Second))
	}
	return clicked
}

func host(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}

func jsArray(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}
