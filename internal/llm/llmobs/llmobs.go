package llmobs

import (
	"context"

	"web3alerts-bot/internal/interfaces"
	"web3alerts-bot/internal/logger"
	"web3alerts-bot/internal/trace"
	"web3alerts-bot/internal/types"
)

// observableSummarizer wraps a Summarizer with logging and tracing.
type observableSummarizer struct {
	summarizer interfaces.Summarizer
}

var _ interfaces.Summarizer = (*observableSummarizer)(nil)

// Wrap wraps a summarizer with observability middleware.
func Wrap(summarizer interfaces.Summarizer) interfaces.Summarizer {
	return &observableSummarizer{summarizer: summarizer}
}

func (os *observableSummarizer) Summarize(ctx context.Context, description string, maxWords int) (types.Summary, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Summarize")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Requesting summary", "description_chars", len(description), "max_words", maxWords)

	summary, err := os.summarizer.Summarize(ctx, description, maxWords)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to get summary", err, "description_chars", len(description))
		return types.Summary{}, err
	}

	logger.InfoSkip(ctx, 1, "Summary received", "chars", len(summary.Text), "fallback", summary.Fallback)
	return summary, nil
}
