package interfaces

import (
	"context"

	"web3alerts-bot/internal/types"
)

type Publisher interface {
	Publish(ctx context.Context, content string) (types.PublishResult, error)
}
