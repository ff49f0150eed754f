package sourceobs

import (
	"context"

	"web3alerts-bot/internal/interfaces"
	"web3alerts-bot/internal/logger"
	"web3alerts-bot/internal/trace"
	"web3alerts-bot/internal/types"
)

// observableSource wraps a ProjectSource with logging and tracing.
type observableSource struct {
	source interfaces.ProjectSource
}

var _ interfaces.ProjectSource = (*observableSource)(nil)

// Wrap wraps a project source with observability middleware.
func Wrap(source interfaces.ProjectSource) interfaces.ProjectSource {
	return &observableSource{source: source}
}

func (os *observableSource) LatestProjects(ctx context.Context, count int) ([]types.Project, error) {
	ctx, span := trace.StartSpan(ctx, "source.LatestProjects")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching latest projects", "count", count)

	projects, err := os.source.LatestProjects(ctx, count)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch projects", err, "count", count)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Projects fetched", "returned", len(projects))
	return projects, nil
}
