package interfaces

import (
	"context"

	"web3alerts-bot/internal/types"
)

type Runner interface {
	Run(ctx context.Context) (*types.RunResult, error)
}
