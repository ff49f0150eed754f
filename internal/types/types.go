package types

// Project is one catalog record as returned by the Web3 Alerts API.
// Immutable once fetched; discarded after the post is assembled.
type Project struct {
	ID                 string  `json:"id"`
	Name               string  `json:"project_name"`
	Handle             string  `json:"handle"`
	Description        string  `json:"description"`
	Website            string  `json:"website,omitempty"`
	DaysSinceDiscovery float64 `json:"days_since_discovery"`
}

// Summary is the short text derived from one Project's description.
// Fallback marks summaries produced by truncation rather than the model.
type Summary struct {
	Text     string
	Fallback bool
}

// PostLine pairs a ranked project with its summary inside a composed post.
type PostLine struct {
	Rank    int
	Project Project
	Summary Summary
}

// CompositePost is the fully assembled post text plus the lines it was
// built from. Never mutated after construction.
type CompositePost struct {
	Title string
	Lines []PostLine
	Text  string
}

// PublishResult reports the outcome of a draft creation.
type PublishResult struct {
	DraftID     string `json:"draft_id"`
	URL         string `json:"url"`
	ScheduledAt string `json:"scheduled_at"`
}

// RunResult is emitted once per pipeline run.
type RunResult struct {
	Projects  int            `json:"projects"`
	Fallbacks int            `json:"fallbacks"`
	Chars     int            `json:"chars"`
	Published *PublishResult `json:"published,omitempty"`
	DryRun    bool           `json:"dry_run,omitempty"`
}
