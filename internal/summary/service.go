package summary

import (
	"context"
	"strings"
	"time"

	"web3alerts-bot/internal/interfaces"
	"web3alerts-bot/internal/llm/noop"
	"web3alerts-bot/internal/logger"
	"web3alerts-bot/internal/types"
)

// minDescriptionChars is the floor below which a description is used as-is
// instead of being sent to the model.
const minDescriptionChars = 20

// Service turns project descriptions into bounded summaries, one model
// request per project in list order. Failures never propagate: a failed
// project gets a truncated fallback and the run continues.
type Service struct {
	summarizer interfaces.Summarizer
	maxWords   int
	delay      time.Duration
}

// Params configures the summary service.
type Params struct {
	MaxWords     int
	RequestDelay time.Duration
}

func NewService(summarizer interfaces.Summarizer, p Params) *Service {
	return &Service{
		summarizer: summarizer,
		maxWords:   p.MaxWords,
		delay:      p.RequestDelay,
	}
}

// SummarizeProjects returns one Summary per project, index-aligned with the
// input. The only error returned is context cancellation; everything else
// degrades to a fallback summary for that project.
func (s *Service) SummarizeProjects(ctx context.Context, projects []types.Project) ([]types.Summary, error) {
	summaries := make([]types.Summary, len(projects))

	for i, p := range projects {
		if i > 0 && s.delay > 0 {
			// Fixed inter-request delay keeps us under the per-minute quota.
			if err := sleep(ctx, s.delay); err != nil {
				return nil, err
			}
		}
		summaries[i] = s.summarizeOne(ctx, p)
	}
	return summaries, nil
}

func (s *Service) summarizeOne(ctx context.Context, p types.Project) types.Summary {
	desc := strings.TrimSpace(p.Description)
	if len(desc) < minDescriptionChars {
		return types.Summary{Text: desc}
	}

	sum, err := s.summarizer.Summarize(ctx, desc, s.maxWords)
	if err != nil {
		logger.Warn(ctx, "Summarization failed, using truncated description",
			"project", p.Name, "error", err)
		return types.Summary{Text: noop.Truncate(desc, s.maxWords), Fallback: true}
	}

	// The model occasionally overruns the budget; enforce it here so the
	// success-path invariant holds regardless of provider.
	if words := strings.Fields(sum.Text); len(words) > s.maxWords {
		sum.Text = strings.Join(words[:s.maxWords], " ")
	}
	return sum
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
