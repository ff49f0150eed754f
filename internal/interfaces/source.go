package interfaces

import (
	"context"

	"web3alerts-bot/internal/types"
)

type ProjectSource interface {
	LatestProjects(ctx context.Context, count int) ([]types.Project, error)
}
