package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/eshaam/trackergg-scraper/internal/app"
	"github.com/eshaam/trackergg-scraper/internal/config"
	"github.com/eshaam/trackergg-scraper/internal/domain"
	"github.com/eshaam/trackergg-scraper/internal/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Tracker profile scraper starting",
		zap.String("players_file", cfg.Scraper.PlayersFile),
		zap.Int("concurrency", cfg.Scraper.Concurrency),
		zap.String("log_level", cfg.Logging.Level),
	)

	players, err := app.LoadPlayers(cfg.Scraper.PlayersFile)
	if err != nil {
		logger.Error("Failed to load players", zap.Error(err))
		os.Exit(1)
	}

	requests := app.ExpandRequests(players, logger)
	if len(requests) == 0 {
		logger.Warn("No valid requests to process, exiting")
		return
	}

	buildCtx, buildCancel := context.WithTimeout(context.Background(), 30*time.Second)
	container, err := app.Build(buildCtx, cfg, logger)
	buildCancel()
	if err != nil {
		logger.Error("Failed to assemble services", zap.Error(err))
		os.Exit(1)
	}
	defer container.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	records := container.Runner.Run(ctx, requests)

	failed := 0
	for _, record := range records {
		if record.Status != domain.StatusSuccess {
			failed++
		}
	}
	logger.Info("Scrape complete",
		zap.Int("records", len(records)),
		zap.Int("failed", failed))

	if failed == len(records) && len(records) > 0 {
		os.Exit(1)
	}
}
