package bootstrap

import (
	"github.com/intriguedcoder/ai-document-generator/config"
	"github.com/intriguedcoder/ai-document-generator/internal/generator"
	"github.com/intriguedcoder/ai-document-generator/internal/logging"
	"github.com/intriguedcoder/ai-document-generator/internal/metrics"
)

// NewWriter picks the model client. Without an API key the mock generator
// is used so the service still runs locally.
func NewWriter(cfg config.LLMConfig, m *metrics.Metrics) (*generator.Writer, error) {
	opts := generator.Options{
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		TopK:        cfg.TopK,
		MaxTokens:   cfg.MaxTokens,
	}

	if cfg.APIKey == "" {
		logging.Base().Warn("GEMINI_API_KEY not set, using mock generator")
		return generator.NewWriter(generator.MockGenerator{}, opts, m), nil
	}

	gen, err := generator.NewOpenAIGenerator(generator.Settings{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, err
	}
	return generator.NewWriter(gen, opts, m), nil
}
