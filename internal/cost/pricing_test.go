package cost

import (
	"math"
	"testing"
)

func TestFromUsage(t *testing.T) {
	got := FromUsage("deepseek-chat", Usage{PromptTokens: 1_000_000, CompletionTokens: 1_000_000})
	want := 0.27 + 1.10
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("FromUsage() = %f, want %f", got, want)
	}
}

func TestFromUsageUnknownModel(t *testing.T) {
	if got := FromUsage("unknown/model", Usage{PromptTokens: 10}); got != 0 {
		t.Errorf("expected 0 for unknown model, got %f", got)
	}
	if Known("unknown/model") {
		t.Error("unknown model reported as known")
	}
	if !Known("deepseek-chat") {
		t.Error("deepseek-chat should be known")
	}
}
