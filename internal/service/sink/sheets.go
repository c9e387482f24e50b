package sink

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/eshaam/trackergg-scraper/internal/domain"
	"github.com/eshaam/trackergg-scraper/pkg/errors"
)

// SheetsSink appends one spreadsheet row per result record using a service
// account credential.
type SheetsSink struct {
	service       *sheets.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

type SheetsConfig struct {
	CredentialsFile string
	SpreadsheetID   string
	SheetRange      string
}

func NewSheetsSink(ctx context.Context, cfg SheetsConfig, logger *zap.Logger) (*SheetsSink, error) {
	credentials, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheets credentials: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(credentials, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheets credentials: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	logger.Info("Google Sheets sink ready", zap.String("spreadsheet", cfg.SpreadsheetID))

	return &SheetsSink{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.SheetRange,
		logger:        logger,
	}, nil
}

func (s *SheetsSink) Append(ctx context.Context, record *domain.ResultRecord) error {
	row := []any{
		time.Now().UTC().Format(time.RFC3339),
		record.Status,
		record.Game,
		record.User,
		record.URL,
		statsCell(record.Stats),
		record.Error,
	}

	values := &sheets.ValueRange{Values: [][]any{row}}

	return appendWithRetry(ctx, func() error {
		_, err := s.service.Spreadsheets.Values.
			Append(s.spreadsheetID, s.sheetRange, values).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return errors.NewSinkError("append failed", "sheets", err)
		}
		return nil
	})
}

func statsCell(stats *domain.StructuredStats) string {
	if stats == nil {
		return ""
	}
	deref := func(v *string) string {
		if v == nil {
			return "-"
		}
		return *v
	}
	return fmt.Sprintf("rank=%s kills=%s matches=%s winRate=%s",
		deref(stats.Rank), deref(stats.Kills), deref(stats.MatchesPlayed), deref(stats.WinRate))
}

func (s *SheetsSink) Close() error {
	return nil
}
