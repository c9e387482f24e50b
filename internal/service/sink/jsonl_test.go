package sink

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/eshaam/trackergg-scraper/internal/domain"
)

func TestJSONLSinkAppendsOneLinePerRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.jsonl")
	s, err := NewJSONLSink(path, zap.NewNop())
	if err != nil {
		t.Fatalf("NewJSONLSink failed: %v", err)
	}

	kills := "42"
	records := []*domain.ResultRecord{
		domain.SuccessRecord("warzone", "Foo", "https://example.com/p", &domain.StructuredStats{Kills: &kills}),
		domain.FailedRecord("apex", "Bar", "", "stuck on home/search results, profile not found"),
	}
	for _, record := range records {
		if err := s.Append(context.Background(), record); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var success map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &success); err != nil {
		t.Fatalf("first line is not JSON: %v", err)
	}
	if success["status"] != "success" {
		t.Errorf("first record status = %v", success["status"])
	}

	var failure map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &failure); err != nil {
		t.Fatalf("second line is not JSON: %v", err)
	}
	if failure["status"] != "failed" {
		t.Errorf("second record status = %v", failure["status"])
	}
	if _, present := failure["stats"]; present {
		t.Error("failed record leaked a stats field into the sink")
	}
}

type countingSink struct {
	appends int
	closed  bool
}

func (c *countingSink) Append(context.Context, *domain.ResultRecord) error {
	c.appends++
	return nil
}

func (c *countingSink) Close() error {
	c.closed = true
	return nil
}

func TestMultiSinkFansOut(t *testing.T) {
	first := &countingSink{}
	second := &countingSink{}
	multi := NewMultiSink(zap.NewNop(), first, second)

	record := domain.SuccessRecord("warzone", "Foo", "https://example.com", nil)
	if err := multi.Append(context.Background(), record); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if first.appends != 1 || second.appends != 1 {
		t.Errorf("fan-out counts: %d, %d", first.appends, second.appends)
	}

	if err := multi.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !first.closed || !second.closed {
		t.Error("not all sinks closed")
	}
}
