package interfaces

import (
	"context"

	"web3alerts-bot/internal/types"
)

type Summarizer interface {
	Summarize(ctx context.Context, description string, maxWords int) (types.Summary, error)
}
