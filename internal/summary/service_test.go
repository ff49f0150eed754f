package summary

import (
	"context"
	"strings"
	"testing"
	"time"

	"web3alerts-bot/internal/types"
)

type fakeSummarizer struct {
	calls int
	fn    func(description string, maxWords int) (types.Summary, error)
}

func (f *fakeSummarizer) Summarize(_ context.Context, description string, maxWords int) (types.Summary, error) {
	f.calls++
	return f.fn(description, maxWords)
}

func longDescription() string {
	return strings.Repeat("decentralized exchange for tokenized assets ", 3)
}

func TestSummarizeProjectsSuccessRespectsWordBudget(t *testing.T) {
	fake := &fakeSummarizer{fn: func(string, int) (types.Summary, error) {
		return types.Summary{Text: "one two three four five six seven eight nine ten eleven twelve"}, nil
	}}
	svc := NewService(fake, Params{MaxWords: 10})

	summaries, err := svc.SummarizeProjects(context.Background(), []types.Project{
		{Name: "P", Description: longDescription()},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := len(strings.Fields(summaries[0].Text)); got > 10 {
		t.Errorf("summary has %d words, budget is 10", got)
	}
	if summaries[0].Fallback {
		t.Error("success path should not be marked fallback")
	}
}

func TestSummarizeProjectsRateLimitFallsBack(t *testing.T) {
	fake := &fakeSummarizer{fn: func(string, int) (types.Summary, error) {
		return types.Summary{}, types.ErrRateLimited
	}}
	svc := NewService(fake, Params{MaxWords: 5})

	projects := []types.Project{
		{Name: "A", Description: longDescription()},
		{Name: "B", Description: longDescription()},
	}
	summaries, err := svc.SummarizeProjects(context.Background(), projects)
	if err != nil {
		t.Fatalf("per-item rate limits must not fail the run: %v", err)
	}

	if len(summaries) != len(projects) {
		t.Fatalf("expected %d summaries, got %d", len(projects), len(summaries))
	}
	for i, s := range summaries {
		if !s.Fallback {
			t.Errorf("summary %d should be a fallback", i)
		}
		if s.Text == "" {
			t.Errorf("summary %d fallback text is empty", i)
		}
		if got := len(strings.Fields(strings.TrimSuffix(s.Text, "..."))); got > 5 {
			t.Errorf("fallback %d has %d words, budget is 5", i, got)
		}
	}
}

func TestSummarizeProjectsGenerationErrorFallsBack(t *testing.T) {
	fake := &fakeSummarizer{fn: func(string, int) (types.Summary, error) {
		return types.Summary{}, types.ErrGeneration
	}}
	svc := NewService(fake, Params{MaxWords: 5})

	summaries, err := svc.SummarizeProjects(context.Background(), []types.Project{
		{Name: "A", Description: longDescription()},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !summaries[0].Fallback {
		t.Error("generation errors should degrade to a fallback summary")
	}
}

func TestSummarizeProjectsShortDescriptionSkipsModel(t *testing.T) {
	fake := &fakeSummarizer{fn: func(string, int) (types.Summary, error) {
		t.Fatal("model should not be called for short descriptions")
		return types.Summary{}, nil
	}}
	svc := NewService(fake, Params{MaxWords: 10})

	summaries, err := svc.SummarizeProjects(context.Background(), []types.Project{
		{Name: "A", Description: "  tiny  "},
	})
	if err != nil {
		t.Fatal(err)
	}
	if fake.calls != 0 {
		t.Errorf("expected 0 model calls, got %d", fake.calls)
	}
	if summaries[0].Text != "tiny" {
		t.Errorf("short description should pass through trimmed, got %q", summaries[0].Text)
	}
}

func TestSummarizeProjectsPreservesOrder(t *testing.T) {
	fake := &fakeSummarizer{fn: func(description string, _ int) (types.Summary, error) {
		return types.Summary{Text: "sum of " + description[:1]}, nil
	}}
	svc := NewService(fake, Params{MaxWords: 10})

	projects := []types.Project{
		{Name: "A", Description: "Alpha protocol for cross-chain swaps"},
		{Name: "B", Description: "Beta network for on-chain identity"},
		{Name: "C", Description: "Gamma market for compute credits"},
	}
	summaries, err := svc.SummarizeProjects(context.Background(), projects)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"sum of A", "sum of B", "sum of G"}
	for i, w := range want {
		if summaries[i].Text != w {
			t.Errorf("summary %d = %q, want %q", i, summaries[i].Text, w)
		}
	}
}

func TestSummarizeProjectsCancelledContext(t *testing.T) {
	fake := &fakeSummarizer{fn: func(string, int) (types.Summary, error) {
		return types.Summary{Text: "s"}, nil
	}}
	svc := NewService(fake, Params{MaxWords: 10, RequestDelay: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SummarizeProjects(ctx, []types.Project{
		{Description: longDescription()},
		{Description: longDescription()},
	})
	if err == nil {
		t.Error("expected context cancellation to surface")
	}
}
