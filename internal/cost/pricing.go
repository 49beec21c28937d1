package cost

// Usage holds token counts from an API response.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// ModelPricing holds per-token pricing for a model (in USD per token).
type ModelPricing struct {
	InputPerToken  float64
	OutputPerToken float64
}

// defaultPricing provides fallback pricing for common models.
var defaultPricing = map[string]ModelPricing{
	"deepseek-chat":     {InputPerToken: 0.27 / 1_000_000, OutputPerToken: 1.10 / 1_000_000},
	"deepseek-reasoner": {InputPerToken: 0.55 / 1_000_000, OutputPerToken: 2.19 / 1_000_000},
	"gpt-4o":            {InputPerToken: 2.50 / 1_000_000, OutputPerToken: 10.0 / 1_000_000},
	"gpt-4o-mini":       {InputPerToken: 0.15 / 1_000_000, OutputPerToken: 0.60 / 1_000_000},
}

// FromUsage calculates cost from token usage and model pricing.
// Unknown models cost 0.
func FromUsage(model string, usage Usage) float64 {
	pricing, ok := defaultPricing[model]
	if !ok {
		return 0
	}
	return float64(usage.PromptTokens)*pricing.InputPerToken +
		float64(usage.CompletionTokens)*pricing.OutputPerToken
}

// Known reports whether pricing exists for model.
func Known(model string) bool {
	_, ok := defaultPricing[model]
	return ok
}
