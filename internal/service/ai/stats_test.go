package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/eshaam/trackergg-scraper/internal/constants"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) GenerateJSON(_ context.Context, prompt string, dest any) error {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.response), dest)
}

func TestStatsExtractorParsesSchema(t *testing.T) {
	generator := &fakeGenerator{
		response: `{"username":"Foo","rank":"Diamond II","kills":"2,341","matchesPlayed":null,"winRate":"54.2%"}`,
	}
	extractor := NewStatsExtractor(generator, zap.NewNop())

	stats := extractor.Extract(context.Background(), "warzone", "page text")
	if stats == nil {
		t.Fatal("expected stats, got nil")
	}
	if stats.Username == nil || *stats.Username != "Foo" {
		t.Errorf("username = %v", stats.Username)
	}
	if stats.Rank == nil || *stats.Rank != "Diamond II" {
		t.Errorf("rank = %v", stats.Rank)
	}
	if stats.MatchesPlayed != nil {
		t.Errorf("matchesPlayed must stay null, got %v", *stats.MatchesPlayed)
	}
}

func TestStatsExtractorNeverFabricates(t *testing.T) {
	// Model honoring the contract: nothing found, everything null.
	generator := &fakeGenerator{
		response: `{"username":null,"rank":null,"kills":null,"matchesPlayed":null,"winRate":null}`,
	}
	extractor := NewStatsExtractor(generator, zap.NewNop())

	stats := extractor.Extract(context.Background(), "warzone", "text with no kills signal")
	if stats == nil {
		t.Fatal("a fully-null schema is still a parseable result")
	}
	if stats.Kills != nil {
		t.Errorf("kills must be null, got %v", *stats.Kills)
	}
}

func TestStatsExtractorNilOnModelError(t *testing.T) {
	generator := &fakeGenerator{err: fmt.Errorf("transport error")}
	extractor := NewStatsExtractor(generator, zap.NewNop())

	if stats := extractor.Extract(context.Background(), "warzone", "page text"); stats != nil {
		t.Errorf("expected nil stats on model failure, got %+v", stats)
	}
}

func TestStatsExtractorNilOnInvalidJSON(t *testing.T) {
	generator := &fakeGenerator{response: `this is not json`}
	extractor := NewStatsExtractor(generator, zap.NewNop())

	if stats := extractor.Extract(context.Background(), "warzone", "page text"); stats != nil {
		t.Errorf("expected nil stats on unparseable output, got %+v", stats)
	}
}

func TestStatsExtractorSkipsEmptyText(t *testing.T) {
	generator := &fakeGenerator{response: `{}`}
	extractor := NewStatsExtractor(generator, zap.NewNop())

	if stats := extractor.Extract(context.Background(), "warzone", ""); stats != nil {
		t.Error("empty page text must not reach the model")
	}
	if len(generator.prompts) != 0 {
		t.Error("model called for empty input")
	}
}

func TestStatsExtractorTruncatesInput(t *testing.T) {
	generator := &fakeGenerator{
		response: `{"username":null,"rank":null,"kills":null,"matchesPlayed":null,"winRate":null}`,
	}
	extractor := NewStatsExtractor(generator, zap.NewNop())

	huge := strings.Repeat("x", constants.AIInputLimits.MaxPageTextChars+10000)
	extractor.Extract(context.Background(), "warzone", huge)

	if len(generator.prompts) != 1 {
		t.Fatalf("expected one model call, got %d", len(generator.prompts))
	}
	// Prompt is instruction plus truncated text; it must be well under the
	// untruncated input size.
	if len(generator.prompts[0]) >= len(huge) {
		t.Errorf("page text was not truncated: prompt %d bytes for %d byte input",
			len(generator.prompts[0]), len(huge))
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"  {\"a\":1}  ", "{\"a\":1}"},
	}
	for _, tt := range tests {
		if got := stripFences(tt.in); got != tt.want {
			t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsRateLimitError(t *testing.T) {
	if !isRateLimitError(fmt.Errorf("googleapi: Error 429: quota exceeded")) {
		t.Error("429 quota error not detected")
	}
	if isRateLimitError(fmt.Errorf("connection refused")) {
		t.Error("plain transport error misclassified as rate limit")
	}
	if isRateLimitError(nil) {
		t.Error("nil error misclassified")
	}
}
