package noop

import (
	"context"
	"strings"

	"web3alerts-bot/internal/logger"
	"web3alerts-bot/internal/types"
)

// Summarizer is the fallback summarizer used when no model is configured.
// It truncates the description to the word budget.
type Summarizer struct{}

func New() *Summarizer {
	return &Summarizer{}
}

// Summarize implements the Summarizer interface by truncation. The result
// is marked as a fallback so downstream reporting can count it.
func (s *Summarizer) Summarize(ctx context.Context, description string, maxWords int) (types.Summary, error) {
	logger.Debug(ctx, "Noop summarizer called - truncating description")
	return types.Summary{Text: Truncate(description, maxWords), Fallback: true}, nil
}

// Truncate clips text to at most maxWords words, appending an ellipsis when
// anything was cut.
func Truncate(text string, maxWords int) string {
	words := strings.Fields(text)
	if maxWords <= 0 || len(words) <= maxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
