package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/eshaam/trackergg-scraper/internal/constants"
	"github.com/eshaam/trackergg-scraper/internal/util"
)

// ModelManager fronts the external language-model providers: Gemini as the
// primary, OpenAI as an optional fallback, with a circuit breaker so a
// provider outage does not hammer the APIs for every request.
type ModelManager struct {
	geminiClient   *genai.Client
	openaiClient   *openai.Client
	logger         *zap.Logger
	geminiModel    string
	openaiModel    string
	enableFallback bool
	circuitBreaker *util.CircuitBreaker
}

type ModelManagerConfig struct {
	GeminiAPIKey   string
	OpenAIAPIKey   string
	GeminiModel    string
	OpenAIModel    string
	EnableFallback bool
}

func NewModelManager(ctx context.Context, cfg ModelManagerConfig, logger *zap.Logger) (*ModelManager, error) {
	geminiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	geminiModel := cfg.GeminiModel
	if geminiModel == "" {
		geminiModel = "gemini-2.5-flash"
	}
	openaiModel := cfg.OpenAIModel
	if openaiModel == "" {
		openaiModel = "gpt-4.1-mini"
	}

	mm := &ModelManager{
		geminiClient:   geminiClient,
		logger:         logger,
		geminiModel:    geminiModel,
		openaiModel:    openaiModel,
		enableFallback: cfg.EnableFallback && cfg.OpenAIAPIKey != "",
	}

	if cfg.OpenAIAPIKey != "" {
		client := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
		mm.openaiClient = &client
		logger.Info("OpenAI fallback enabled", zap.String("model", openaiModel))
	} else {
		logger.Info("OpenAI fallback disabled (no API key)")
	}

	mm.circuitBreaker = util.NewCircuitBreaker(
		constants.CircuitBreakerConfig.FailureThreshold,
		constants.CircuitBreakerConfig.ResetTimeout,
		constants.CircuitBreakerConfig.HealthCheckInterval,
		mm.healthCheckPing,
		logger,
	)

	return mm, nil
}

// GenerateJSON sends prompt to the primary provider in JSON mode, falls
// back to OpenAI when enabled, strips markdown fences and unmarshals the
// response into dest.
func (mm *ModelManager) GenerateJSON(ctx context.Context, prompt string, dest any) error {
	if !mm.circuitBreaker.CanExecute() {
		status := mm.circuitBreaker.GetStatus()
		mm.logger.Error("AI service unavailable (circuit OPEN)",
			zap.String("state", status.State.String()),
			zap.Int("failure_count", status.FailureCount),
		)
		return fmt.Errorf("AI service unavailable, circuit open")
	}

	text, provider, err := mm.generate(ctx, prompt)
	if err != nil {
		return err
	}

	cleaned := stripFences(text)
	if cleaned == "" {
		return fmt.Errorf("%s returned empty response", provider)
	}

	if err := json.Unmarshal([]byte(cleaned), dest); err != nil {
		mm.logger.Warn("Model returned unparseable JSON",
			zap.String("provider", provider),
			zap.String("snippet", util.Truncate(cleaned, 200)),
			zap.Error(err))
		return fmt.Errorf("failed to parse %s response: %w", provider, err)
	}

	return nil
}

func (mm *ModelManager) generate(ctx context.Context, prompt string) (text, provider string, err error) {
	geminiText, geminiErr := mm.generateWithGemini(ctx, prompt)
	if geminiErr == nil {
		mm.circuitBreaker.RecordSuccess()
		return geminiText, "Gemini", nil
	}

	if mm.enableFallback && mm.openaiClient != nil {
		openaiText, openaiErr := mm.generateWithOpenAI(ctx, prompt)
		if openaiErr == nil {
			mm.circuitBreaker.RecordSuccess()
			return openaiText, "OpenAI", nil
		}
		mm.recordFailure(geminiErr, openaiErr)
		return "", "", fmt.Errorf("all AI providers failed: %w", openaiErr)
	}

	mm.recordFailure(geminiErr)
	return "", "", geminiErr
}

func (mm *ModelManager) recordFailure(errs ...error) {
	timeout := constants.CircuitBreakerConfig.ResetTimeout
	for _, err := range errs {
		if isRateLimitError(err) {
			timeout = constants.CircuitBreakerConfig.RateLimitTimeout
			break
		}
	}
	mm.circuitBreaker.RecordFailure(timeout)
}

func (mm *ModelManager) generateWithGemini(ctx context.Context, prompt string) (string, error) {
	temperature := float32(0.1)
	genConfig := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	}

	resp, err := mm.geminiClient.Models.GenerateContent(ctx, mm.geminiModel, []*genai.Content{
		{Parts: []*genai.Part{{Text: prompt}}},
	}, genConfig)
	if err != nil {
		mm.logger.Error("Gemini generation failed", zap.Error(err))
		return "", err
	}

	text := extractGeminiText(resp)
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return text, nil
}

func (mm *ModelManager) generateWithOpenAI(ctx context.Context, prompt string) (string, error) {
	if mm.openaiClient == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	mm.logger.Info("Fallback: generating with OpenAI", zap.String("model", mm.openaiModel))

	resp, err := mm.openaiClient.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(mm.openaiModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You must respond with valid JSON only. Do not include any text outside the JSON object."),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		mm.logger.Error("OpenAI generation failed", zap.Error(err))
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

func (mm *ModelManager) healthCheckPing() bool {
	ctx, cancel := context.WithTimeout(context.Background(), constants.CircuitBreakerConfig.HealthCheckTimeout)
	defer cancel()

	_, err := mm.geminiClient.Models.GenerateContent(ctx, mm.geminiModel, []*genai.Content{
		{Parts: []*genai.Part{{Text: "ping"}}},
	}, nil)
	return err == nil
}

func extractGeminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

func stripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```json"))
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```"))
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "```"))
	}
	return cleaned
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource_exhausted")
}
