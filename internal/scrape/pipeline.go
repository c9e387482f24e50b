package scrape

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eshaam/trackergg-scraper/internal/constants"
	"github.com/eshaam/trackergg-scraper/internal/domain"
)

// stuckDiagnostic is the fixed error string for a request whose final
// classification is still home or search results.
const stuckDiagnostic = "stuck on home/search results, profile not found"

// StatsProvider is the stats-extraction surface the pipeline consumes.
type StatsProvider interface {
	Extract(ctx context.Context, game, rawText string) *domain.StructuredStats
}

// URLCache remembers profile URLs across requests. Optional.
type URLCache interface {
	GetResolvedURL(ctx context.Context, game, platform, user string) string
	SetResolvedURL(ctx context.Context, game, platform, user, url string)
}

// ResultSink receives exactly one record per request.
type ResultSink interface {
	Append(ctx context.Context, record *domain.ResultRecord) error
}

// DriverFactory opens a fresh browser session bound to the request context.
type DriverFactory func(ctx context.Context) (Driver, func(), error)

// Pipeline runs one profile request end to end: resolve, navigate,
// classify, search fallback, extract, report. Every per-request fault
// resolves to a failed record; nothing a single request does can abort the
// batch.
type Pipeline struct {
	newDriver DriverFactory
	stats     StatsProvider
	cache     URLCache
	sink      ResultSink
	logger    *zap.Logger
}

func NewPipeline(newDriver DriverFactory, stats StatsProvider, cache URLCache, sink ResultSink, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		newDriver: newDriver,
		stats:     stats,
		cache:     cache,
		sink:      sink,
		logger:    logger,
	}
}

// Process handles one request and forwards its single result record to the
// sink. The returned record is the same one, for callers that want to
// inspect it.
func (p *Pipeline) Process(ctx context.Context, req domain.ProfileRequest) *domain.ResultRecord {
	reqCtx, cancel := context.WithTimeout(ctx, constants.Timeouts.Request)
	defer cancel()

	record := p.run(reqCtx, req)

	// Reporting is not covered by the request deadline: a request that
	// burned its whole budget still owes its one record to the sink.
	appendCtx, cancelAppend := context.WithTimeout(context.WithoutCancel(ctx), constants.Timeouts.Shutdown)
	defer cancelAppend()

	if err := p.sink.Append(appendCtx, record); err != nil {
		p.logger.Error("Failed to append result record",
			zap.String("game", req.Game),
			zap.String("user", req.Username),
			zap.Error(err))
	}

	return record
}

func (p *Pipeline) run(ctx context.Context, req domain.ProfileRequest) *domain.ResultRecord {
	profile, ok := domain.LookupGame(req.Game)
	if !ok {
		return domain.FailedRecord(req.Game, req.Username, "", fmt.Sprintf("unknown game %q", req.Game))
	}

	driver, closeDriver, err := p.newDriver(ctx)
	if err != nil {
		p.logger.Error("Failed to open browser session", zap.Error(err))
		return domain.FailedRecord(req.Game, req.Username, "", fmt.Sprintf("browser session failed: %v", err))
	}
	defer closeDriver()

	// Direct attempt: cached URL first, then the constructed guess, then
	// the game's home page when no direct pattern exists.
	targetURL, direct := p.targetURL(ctx, req)
	navigateTo := targetURL
	if navigateTo == "" {
		navigateTo = profile.BaseURL
	}

	if err := driver.Navigate(navigateTo, constants.Timeouts.Navigation); err != nil {
		// Not fatal: the page may have partially loaded, and the final
		// classification decides the outcome either way.
		p.logger.Warn("Navigation error, continuing to classification",
			zap.String("url", navigateTo),
			zap.Error(err))
	}

	currentURL, _ := driver.CurrentURL()
	state := Classify(currentURL, profile.BaseURL)

	usedFallback := false
	if state == StateHome || !direct {
		usedFallback = true
		navigator := NewNavigator(driver, p.logger)
		if err := navigator.Search(req); err != nil {
			if errors.Is(err, ErrSearchInputNotFound) {
				p.logger.Warn("Search input not found, continuing to final classification",
					zap.String("game", req.Game),
					zap.String("user", req.Username))
			} else {
				p.logger.Warn("Search interaction failed, continuing to final classification",
					zap.Error(err))
			}
		}
	}

	// Settle, then give the profile container a chance to render. The DOM
	// check raises confidence but never downgrades the classification.
	driver.Sleep(constants.Search.PostSubmitWait)
	for _, selector := range constants.ProfileContentSelectors {
		if driver.IsVisible(selector, constants.Timeouts.DOMWait) {
			break
		}
	}

	finalURL, err := driver.CurrentURL()
	if err != nil || finalURL == "" {
		p.logger.Warn("Could not read final URL", zap.Error(err))
		return domain.FailedRecord(req.Game, req.Username, "", "navigation failed, no final page state")
	}

	outcome := domain.NavigationOutcome{
		FinalURL:           finalURL,
		ReachedProfile:     Classify(finalURL, profile.BaseURL) == StateProfileOrUnknown,
		UsedFallbackSearch: usedFallback,
	}

	p.logger.Info("Navigation finished",
		zap.String("game", req.Game),
		zap.String("user", req.Username),
		zap.String("final_url", outcome.FinalURL),
		zap.Bool("reached_profile", outcome.ReachedProfile),
		zap.Bool("used_fallback", outcome.UsedFallbackSearch))

	if !outcome.ReachedProfile {
		return domain.FailedRecord(req.Game, req.Username, outcome.FinalURL, stuckDiagnostic)
	}

	if p.cache != nil {
		p.cache.SetResolvedURL(ctx, req.Game, req.Platform, req.Username, outcome.FinalURL)
	}

	// A reached profile is a success from here on; stats extraction can
	// only add data, never flip the status.
	rawText, err := ExtractPageText(driver, p.logger)
	if err != nil {
		p.logger.Warn("Content extraction failed, reporting null stats", zap.Error(err))
		return domain.SuccessRecord(req.Game, req.Username, outcome.FinalURL, nil)
	}

	stats := p.stats.Extract(ctx, req.Game, rawText)
	return domain.SuccessRecord(req.Game, req.Username, outcome.FinalURL, stats)
}

// targetURL picks the navigation target for the direct attempt and reports
// whether a direct profile URL (cached or constructed) exists at all.
func (p *Pipeline) targetURL(ctx context.Context, req domain.ProfileRequest) (string, bool) {
	if p.cache != nil {
		if cached := p.cache.GetResolvedURL(ctx, req.Game, req.Platform, req.Username); cached != "" {
			p.logger.Debug("Using cached profile URL",
				zap.String("game", req.Game),
				zap.String("user", req.Username),
				zap.String("url", cached))
			return cached, true
		}
	}

	if url, ok := ResolveProfileURL(req.Game, req.Username, req.Platform); ok {
		return url, true
	}
	return "", false
}
