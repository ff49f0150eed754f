// Package pipeline runs the single-pass workflow: fetch projects, summarize
// each, compose the post, publish. No state survives a run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"web3alerts-bot/internal/compose"
	"web3alerts-bot/internal/interfaces"
	"web3alerts-bot/internal/logger"
	"web3alerts-bot/internal/runlog"
	"web3alerts-bot/internal/store"
	"web3alerts-bot/internal/summary"
	"web3alerts-bot/internal/trace"
	"web3alerts-bot/internal/types"
)

type Pipeline struct {
	cfg        *store.Config
	source     interfaces.ProjectSource
	summarizer *summary.Service
	publisher  interfaces.Publisher

	now func() time.Time
	out io.Writer
}

var _ interfaces.Runner = (*Pipeline)(nil)

func New(cfg *store.Config, source interfaces.ProjectSource, summarizer *summary.Service, publisher interfaces.Publisher) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		source:     source,
		summarizer: summarizer,
		publisher:  publisher,
		now:        time.Now,
		out:        os.Stdout,
	}
}

// Run executes one pass. Fatal errors (authentication, network, publish
// rejection) abort and propagate; per-project summarization failures were
// already absorbed into fallback summaries by the summary service.
func (p *Pipeline) Run(ctx context.Context) (*types.RunResult, error) {
	ctx, span := trace.StartSpan(ctx, "pipeline.Run")
	defer span.End()

	projects, err := p.source.LatestProjects(ctx, p.cfg.Source.FetchCount)
	if err != nil {
		return nil, fmt.Errorf("project fetch failed: %w", err)
	}
	if len(projects) == 0 {
		logger.Warn(ctx, "No projects found, nothing to publish")
		return &types.RunResult{}, nil
	}

	summaries, err := p.summarizer.SummarizeProjects(ctx, projects)
	if err != nil {
		return nil, fmt.Errorf("summarization interrupted: %w", err)
	}

	post := compose.FormatPost(projects, summaries, p.now())
	logger.Info(ctx, "Composed post", "projects", len(post.Lines), "chars", len(post.Text))

	result := &types.RunResult{
		Projects:  len(post.Lines),
		Fallbacks: countFallbacks(summaries),
		Chars:     len(post.Text),
	}

	if p.cfg.Mode == "DRY_RUN" {
		fmt.Fprintln(p.out, post.Text)
		result.DryRun = true
		p.record(ctx, result)
		return result, nil
	}

	published, err := p.publisher.Publish(ctx, post.Text)
	if err != nil {
		return nil, err
	}
	result.Published = &published

	p.record(ctx, result)
	return result, nil
}

func (p *Pipeline) record(ctx context.Context, r *types.RunResult) {
	e := runlog.Entry{
		Mode:      p.cfg.Mode,
		Projects:  r.Projects,
		Fallbacks: r.Fallbacks,
		Chars:     r.Chars,
	}
	if r.Published != nil {
		e.DraftID = r.Published.DraftID
		e.URL = r.Published.URL
		e.ScheduledAt = r.Published.ScheduledAt
	}
	if err := runlog.Append(e); err != nil {
		logger.Warn(ctx, "Failed to append run record", "error", err)
	}
}

func countFallbacks(summaries []types.Summary) int {
	n := 0
	for _, s := range summaries {
		if s.Fallback {
			n++
		}
	}
	return n
}
