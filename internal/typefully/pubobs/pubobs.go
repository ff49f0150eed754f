package pubobs

import (
	"context"

	"web3alerts-bot/internal/interfaces"
	"web3alerts-bot/internal/logger"
	"web3alerts-bot/internal/trace"
	"web3alerts-bot/internal/types"
)

// observablePublisher wraps a Publisher with logging and tracing.
type observablePublisher struct {
	publisher interfaces.Publisher
}

var _ interfaces.Publisher = (*observablePublisher)(nil)

// Wrap wraps a publisher with observability middleware.
func Wrap(publisher interfaces.Publisher) interfaces.Publisher {
	return &observablePublisher{publisher: publisher}
}

func (op *observablePublisher) Publish(ctx context.Context, content string) (types.PublishResult, error) {
	ctx, span := trace.StartSpan(ctx, "publisher.Publish")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Submitting draft", "chars", len(content))

	result, err := op.publisher.Publish(ctx, content)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to publish draft", err, "chars", len(content))
		return types.PublishResult{}, err
	}

	logger.InfoSkip(ctx, 1, "Draft published",
		"draft_id", result.DraftID,
		"url", result.URL,
		"scheduled_at", result.ScheduledAt,
	)
	return result, nil
}
