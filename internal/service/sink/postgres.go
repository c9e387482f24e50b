package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/eshaam/trackergg-scraper/internal/domain"
	"github.com/eshaam/trackergg-scraper/pkg/errors"
)

const createResultsTable = `
CREATE TABLE IF NOT EXISTS scrape_results (
	id         BIGSERIAL PRIMARY KEY,
	status     TEXT NOT NULL,
	game       TEXT NOT NULL,
	username   TEXT NOT NULL,
	url        TEXT,
	stats      JSONB,
	error      TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertResult = `
INSERT INTO scrape_results (status, game, username, url, stats, error)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''))`

// PostgresSink appends result records to an append-only table.
type PostgresSink struct {
	db     *sql.DB
	logger *zap.Logger
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

func NewPostgresSink(cfg PostgresConfig, logger *zap.Logger) (*PostgresSink, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if _, err := db.ExecContext(ctx, createResultsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure results table: %w", err)
	}

	logger.Info("PostgreSQL sink ready",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
	)

	return &PostgresSink{db: db, logger: logger}, nil
}

func (s *PostgresSink) Append(ctx context.Context, record *domain.ResultRecord) error {
	var statsJSON any
	if record.Stats != nil {
		raw, err := json.Marshal(record.Stats)
		if err != nil {
			return errors.NewSinkError("failed to marshal stats", "postgres", err)
		}
		statsJSON = string(raw)
	}

	return appendWithRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, insertResult,
			record.Status, record.Game, record.User, record.URL, statsJSON, record.Error)
		if err != nil {
			return errors.NewSinkError("insert failed", "postgres", err)
		}
		return nil
	})
}

func (s *PostgresSink) Close() error {
	return s.db.Close()
}
