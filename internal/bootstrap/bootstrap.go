// Package bootstrap wires config into the services both binaries run.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"review_sentiment/internal/adapters/browser"
	"review_sentiment/internal/adapters/catalog"
	"review_sentiment/internal/adapters/debugfiles"
	"review_sentiment/internal/adapters/httpfetch"
	"review_sentiment/internal/adapters/observability"
	redisad "review_sentiment/internal/adapters/redis"
	"review_sentiment/internal/adapters/selectors"
	"review_sentiment/internal/adapters/sentiment"
	"review_sentiment/internal/app"
	"review_sentiment/internal/domain"
	"review_sentiment/internal/shared"
	mysqlrepo "review_sentiment/internal/storage/mysql"
	pgrepo "review_sentiment/internal/storage/postgres"
)

const platform = "Capterra"

type Deps struct {
	Cfg      shared.Config
	Catalog  *catalog.Catalog
	Profiles selectors.Profiles
	Source   domain.ReviewSource
	Scorer   *app.Scorer

	Scrape   *app.ScrapeService
	Analysis *app.AnalysisService
	Products *app.ProductService

	db    *sql.DB
	cache *redisad.Cache
}

// Options turns optional backends off; the CLI runs without them.
type Options struct {
	NoStore bool
	NoCache bool
}

// Build opens every backend the config names and assembles the services.
func Build(ctx context.Context, cfg shared.Config, opts Options) (*Deps, error) {
	d := &Deps{Cfg: cfg}

	if cfg.CleanupOnStart {
		if _, err := debugfiles.Clean(cfg.DebugDir, false); err != nil {
			log.Warn().Err(err).Str("dir", cfg.DebugDir).Msg("debug file cleanup failed")
		}
	}

	cat, err := catalog.Open(cfg.CatalogCSV)
	if err != nil {
		return nil, err
	}
	d.Catalog = cat

	profiles, err := selectors.Load(cfg.SelectorsFile)
	if err != nil {
		return nil, err
	}
	d.Profiles = profiles

	var repo domain.ReviewRepository
	if !opts.NoStore {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		d.db = db
		switch cfg.DBDriver {
		case "postgres":
			repo = pgrepo.New(db)
		default:
			repo = mysqlrepo.New(db)
		}
	}

	var cache domain.Cache
	if !opts.NoCache {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rc.Ping(pctx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable; caching disabled")
			_ = rc.Close()
		} else {
			d.cache = rc
			cache = rc
		}
	}

	d.Source = d.source()
	d.Scorer = app.NewScorer(sentiment.NewVader())

	d.Scrape = app.NewScrapeService(cat, d.Source, d.Scorer, repo, cache, app.ScrapeOptions{
		Platform:     platform,
		MaxCompanies: cfg.MaxCompanies,
		MaxReviews:   cfg.MaxReviews,
		DelayMin:     cfg.DelayMin,
		DelayMax:     cfg.DelayMax,
		Demo:         cfg.DemoMode,
	}).WithProgress(app.MultiSink{app.LogSink{L: log.Logger}, observability.MetricsSink{}})

	if repo != nil {
		d.Analysis = app.NewAnalysisService(repo, cache, cfg.CacheTTL)
	}
	d.Products = app.NewProductService(cat, d.Source, d.Scorer, platform, cfg.DelayMin)
	return d, nil
}

// Mode is the value reported by the service banner.
func (d *Deps) Mode() string {
	if d.Cfg.DemoMode {
		return "demo"
	}
	return "live"
}

func (d *Deps) Close() {
	if d.cache != nil {
		_ = d.cache.Close()
	}
	if d.db != nil {
		_ = d.db.Close()
	}
}

func (d *Deps) source() domain.ReviewSource {
	if d.Cfg.DemoMode {
		log.Info().Msg("demo mode: serving built-in reviews")
		return app.DemoSource{}
	}
	cp, _ := d.Profiles.Get("capterra")
	nav := browser.New(browser.Options{
		Headless:        d.Cfg.Headless,
		ExecPath:        d.Cfg.ChromePath,
		PageTimeout:     d.Cfg.PageTimeout,
		SettleMin:       d.Cfg.SettleMin,
		SettleMax:       d.Cfg.SettleMax,
		Platform:        "capterra",
		SaveScreenshots: d.Cfg.SaveScreenshots,
		SaveHTML:        d.Cfg.SaveHTML,
		DebugDir:        d.Cfg.DebugDir,
		CookieSelectors: cp.CookieSelectors,
		CookieTexts:     cp.CookieTexts,
	})
	src := &app.PageSource{Primary: nav, Profiles: d.Profiles}
	if d.Cfg.HTTPFallback {
		src.Fallback = httpfetch.New(httpfetch.Options{RPS: d.Cfg.FetchRPS, Timeout: d.Cfg.PageTimeout})
	}
	return src
}

func openDB(ctx context.Context, cfg shared.Config) (*sql.DB, error) {
	driver, dsn := "mysql", cfg.MySQLDSN
	if cfg.DBDriver == "postgres" {
		driver, dsn = "postgres", cfg.PostgresDSN
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open %s: %w", driver, err)
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	log.Info().Str("driver", driver).Msg("database connection ok")
	return db, nil
}
