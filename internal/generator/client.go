package generator

import "context"

// Options are the sampling parameters passed with every request.
type Options struct {
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
}

func DefaultOptions() Options {
	return Options{
		Temperature: 0.7,
		TopP:        0.95,
		TopK:        40,
		MaxTokens:   2048,
	}
}

// TextGenerator abstracts the model provider so it can be swapped or mocked.
// One call, one synchronous response.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// Settings configure a concrete generator.
type Settings struct {
	APIKey  string
	BaseURL string
	Model   string
}
