package sink

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/eshaam/trackergg-scraper/internal/domain"
	"github.com/eshaam/trackergg-scraper/pkg/errors"
)

// JSONLSink appends records as newline-delimited JSON to a local file. It
// is the default sink and needs no external service.
type JSONLSink struct {
	mu     sync.Mutex
	file   *os.File
	logger *zap.Logger
}

func NewJSONLSink(path string, logger *zap.Logger) (*JSONLSink, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.NewSinkError("failed to open results file", "jsonl", err)
	}
	return &JSONLSink{file: file, logger: logger}, nil
}

func (s *JSONLSink) Append(ctx context.Context, record *domain.ResultRecord) error {
	line, err := json.Marshal(record)
	if err != nil {
		return errors.NewSinkError("failed to marshal record", "jsonl", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return appendWithRetry(ctx, func() error {
		if _, err := s.file.Write(append(line, '\n')); err != nil {
			return errors.NewSinkError("failed to write record", "jsonl", err)
		}
		return nil
	})
}

func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
