package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/eshaam/trackergg-scraper/internal/domain"
	"github.com/eshaam/trackergg-scraper/internal/scrape"
)

// LoadPlayers reads the input players file.
func LoadPlayers(path string) ([]domain.PlayerSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read players file: %w", err)
	}

	var players []domain.PlayerSpec
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("failed to parse players file: %w", err)
	}
	return players, nil
}

// ExpandRequests turns each (player, game) pair into one ProfileRequest.
// Pairs referencing a game key missing from the registry are dropped here,
// before any record generation, with a warning.
func ExpandRequests(players []domain.PlayerSpec, logger *zap.Logger) []domain.ProfileRequest {
	requests := make([]domain.ProfileRequest, 0)
	for _, player := range players {
		if player.Username == "" || player.Platform == "" {
			logger.Warn("Skipping player with missing username or platform",
				zap.String("username", player.Username),
				zap.String("platform", player.Platform))
			continue
		}
		for _, game := range player.Games {
			if _, ok := domain.LookupGame(game); !ok {
				logger.Warn("Skipping unknown game key",
					zap.String("game", game),
					zap.String("user", player.Username),
					zap.Strings("known_games", domain.KnownGames()))
				continue
			}
			requests = append(requests, domain.ProfileRequest{
				Game:     game,
				Username: player.Username,
				Platform: player.Platform,
				MarvelID: player.MarvelID,
			})
		}
	}
	return requests
}

// Runner drains the request list through a bounded worker pool. Each worker
// owns one browser session per request; requests are independent and may
// finish in any order.
type Runner struct {
	pipeline    *scrape.Pipeline
	concurrency int
	logger      *zap.Logger
}

func NewRunner(pipeline *scrape.Pipeline, concurrency int, logger *zap.Logger) *Runner {
	return &Runner{
		pipeline:    pipeline,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Run processes every request and returns the records in completion order.
func (r *Runner) Run(ctx context.Context, requests []domain.ProfileRequest) []*domain.ResultRecord {
	r.logger.Info("Processing requests",
		zap.Int("count", len(requests)),
		zap.Int("concurrency", r.concurrency))

	records := make([]*domain.ResultRecord, 0, len(requests))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(r.concurrency)
	for _, req := range requests {
		req := req
		p.Go(func() {
			if ctx.Err() != nil {
				return
			}
			record := r.pipeline.Process(ctx, req)
			mu.Lock()
			records = append(records, record)
			mu.Unlock()
		})
	}
	p.Wait()

	succeeded := 0
	for _, record := range records {
		if record.Status == domain.StatusSuccess {
			succeeded++
		}
	}
	r.logger.Info("Run finished",
		zap.Int("total", len(records)),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", len(records)-succeeded))

	return records
}
