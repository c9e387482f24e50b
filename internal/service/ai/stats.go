package ai

import (
	"context"

	"go.uber.org/zap"

	"github.com/eshaam/trackergg-scraper/internal/constants"
	"github.com/eshaam/trackergg-scraper/internal/domain"
	"github.com/eshaam/trackergg-scraper/internal/prompt"
	"github.com/eshaam/trackergg-scraper/internal/util"
)

// JSONGenerator is the narrow model surface the stats extractor needs, so
// tests can swap in a canned generator.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, dest any) error
}

// StatsExtractor turns raw page text into the fixed stats schema through
// the external model. Identical input does not guarantee identical output;
// callers assert on schema shape, never exact values.
type StatsExtractor struct {
	model  JSONGenerator
	logger *zap.Logger
}

func NewStatsExtractor(model JSONGenerator, logger *zap.Logger) *StatsExtractor {
	return &StatsExtractor{model: model, logger: logger}
}

// Extract returns the structured stats for the page text, or nil when the
// model fails or answers with something unparseable. A nil result is an
// expected outcome and never escalates to a request failure.
func (se *StatsExtractor) Extract(ctx context.Context, game, rawText string) *domain.StructuredStats {
	if rawText == "" {
		return nil
	}

	// Cap the payload before transmission; the providers charge per token
	// and reject oversized inputs.
	truncated := util.TruncateBytes(rawText, constants.AIInputLimits.MaxPageTextChars)
	if len(truncated) < len(rawText) {
		se.logger.Debug("Page text truncated for model input",
			zap.Int("original", len(rawText)),
			zap.Int("sent", len(truncated)))
	}

	extractionPrompt := prompt.BuildStatsExtractionPrompt(game, truncated)

	var stats domain.StructuredStats
	if err := se.model.GenerateJSON(ctx, extractionPrompt, &stats); err != nil {
		se.logger.Warn("Stats extraction failed, reporting null stats",
			zap.String("game", game),
			zap.Error(err))
		return nil
	}

	return &stats
}
