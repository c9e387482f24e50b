package sink

import (
	"context"

	"github.com/codeGROOVE-dev/retry"
	"go.uber.org/zap"

	"github.com/eshaam/trackergg-scraper/internal/constants"
	"github.com/eshaam/trackergg-scraper/internal/domain"
)

// Sink accepts result records append-only. No update or delete semantics.
type Sink interface {
	Append(ctx context.Context, record *domain.ResultRecord) error
	Close() error
}

// appendWithRetry wraps a single append in the shared retry policy.
func appendWithRetry(ctx context.Context, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(constants.SinkRetry.MaxAttempts),
		retry.Delay(constants.SinkRetry.BaseDelay),
		retry.MaxDelay(constants.SinkRetry.MaxDelay),
		retry.LastErrorOnly(true),
	)
}

// MultiSink fans one record out to every configured sink. A failing sink is
// logged and skipped; record delivery to the remaining sinks continues.
type MultiSink struct {
	sinks  []Sink
	logger *zap.Logger
}

func NewMultiSink(logger *zap.Logger, sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks, logger: logger}
}

func (m *MultiSink) Append(ctx context.Context, record *domain.ResultRecord) error {
	for _, s := range m.sinks {
		if err := s.Append(ctx, record); err != nil {
			m.logger.Error("Sink append failed",
				zap.String("game", record.Game),
				zap.String("user", record.User),
				zap.Error(err))
		}
	}
	return nil
}

func (m *MultiSink) Close() error {
	var firstErr error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
