package model

import "fmt"

// Fixed sampling settings. Only MaxNewTokens varies per request.
const (
	Temperature       = 0.7
	TopP              = 0.9
	RepetitionPenalty = 1.2
	MaxInputTokens    = 512

	MinNewTokens     = 20
	MaxNewTokens     = 500
	DefaultNewTokens = 100
)

// GenerationParams is the per-request generation configuration.
type GenerationParams struct {
	MaxNewTokens      int
	Temperature       float64
	TopP              float64
	RepetitionPenalty float64
}

// NewGenerationParams returns the fixed parameters with the given token budget.
func NewGenerationParams(maxNewTokens int) GenerationParams {
	return GenerationParams{
		MaxNewTokens:      maxNewTokens,
		Temperature:       Temperature,
		TopP:              TopP,
		RepetitionPenalty: RepetitionPenalty,
	}
}

// Validate checks the token budget is within [MinNewTokens, MaxNewTokens].
func (p GenerationParams) Validate() error {
	if p.MaxNewTokens < MinNewTokens || p.MaxNewTokens > MaxNewTokens {
		return &BoundsError{Value: p.MaxNewTokens, Min: MinNewTokens, Max: MaxNewTokens}
	}
	return nil
}

// BoundsError reports a max_new_tokens value outside the allowed range.
type BoundsError struct {
	Value int
	Min   int
	Max   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("max_new_tokens %d out of range [%d,%d]", e.Value, e.Min, e.Max)
}
