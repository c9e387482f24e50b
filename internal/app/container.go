package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/eshaam/trackergg-scraper/internal/browser"
	"github.com/eshaam/trackergg-scraper/internal/config"
	"github.com/eshaam/trackergg-scraper/internal/scrape"
	"github.com/eshaam/trackergg-scraper/internal/service/ai"
	"github.com/eshaam/trackergg-scraper/internal/service/cache"
	"github.com/eshaam/trackergg-scraper/internal/service/sink"
)

// Container bundles the assembled services. All heavy-weight initialization
// (cache, AI clients, sinks) happens in Build so the runner stays focused
// on orchestration.
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	Runner *Runner

	closers []func()
}

// Close tears down held resources in reverse build order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Optional resolved-URL cache
	var urlCache scrape.URLCache
	if cfg.Redis.Enabled() {
		cacheSvc, cacheErr := cache.NewCacheService(cache.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if cacheErr != nil {
			return nil, fmt.Errorf("failed to create cache service: %w", cacheErr)
		}
		closers = append(closers, func() { _ = cacheSvc.Close() })
		urlCache = cacheSvc
	} else {
		logger.Info("Redis not configured, resolved-URL cache disabled")
	}

	// AI stack
	modelManager, err := ai.NewModelManager(ctx, ai.ModelManagerConfig{
		GeminiAPIKey:   cfg.Gemini.APIKey,
		OpenAIAPIKey:   cfg.OpenAI.APIKey,
		GeminiModel:    cfg.Gemini.Model,
		OpenAIModel:    cfg.OpenAI.Model,
		EnableFallback: cfg.OpenAI.EnableFallback,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create model manager: %w", err)
	}
	statsExtractor := ai.NewStatsExtractor(modelManager, logger)

	// Sinks: local JSONL always, Postgres and Sheets when configured
	sinks := make([]sink.Sink, 0, 3)

	jsonlSink, err := sink.NewJSONLSink(cfg.Results.File, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create results file sink: %w", err)
	}
	sinks = append(sinks, jsonlSink)

	if cfg.Postgres.Enabled() {
		pgSink, pgErr := sink.NewPostgresSink(sink.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
		}, logger)
		if pgErr != nil {
			return nil, fmt.Errorf("failed to create postgres sink: %w", pgErr)
		}
		sinks = append(sinks, pgSink)
	}

	if cfg.Sheets.Enabled() {
		sheetsSink, sheetsErr := sink.NewSheetsSink(ctx, sink.SheetsConfig{
			CredentialsFile: cfg.Sheets.CredentialsFile,
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			SheetRange:      cfg.Sheets.SheetRange,
		}, logger)
		if sheetsErr != nil {
			return nil, fmt.Errorf("failed to create sheets sink: %w", sheetsErr)
		}
		sinks = append(sinks, sheetsSink)
	}

	multiSink := sink.NewMultiSink(logger, sinks...)
	closers = append(closers, func() { _ = multiSink.Close() })

	// One browser session per request, bound to the request context.
	browserOpts := browser.Options{
		ChromePath:  cfg.Browser.ChromePath,
		ProxyServer: cfg.Browser.ProxyServer,
		Headless:    cfg.Browser.Headless,
	}
	newDriver := func(reqCtx context.Context) (scrape.Driver, func(), error) {
		session, sessionErr := browser.NewSession(reqCtx, browserOpts, logger)
		if sessionErr != nil {
			return nil, nil, sessionErr
		}
		return session, session.Close, nil
	}

	pipeline := scrape.NewPipeline(newDriver, statsExtractor, urlCache, multiSink, logger)
	runner := NewRunner(pipeline, cfg.Scraper.Concurrency, logger)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Runner:  runner,
		closers: closers,
	}, nil
}
