package typefully

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"web3alerts-bot/internal/logger"
	"web3alerts-bot/internal/trace"
	"web3alerts-bot/internal/types"
)

// Publisher creates drafts through the Typefully V2 API against the first
// social set on the account.
type Publisher struct {
	apiKey     string
	baseURL    string
	http       *http.Client
	hoursDelay int
	loc        *time.Location
	publishNow bool

	socialSetID string // discovered once per run
}

// Params configures a publisher.
type Params struct {
	APIKey     string
	HoursDelay int
	Timezone   string
	PublishNow bool
}

// NewPublisher builds a publisher. Set TYPEFULLY_API_ENDPOINT to route
// through a proxy.
func NewPublisher(p Params) (*Publisher, error) {
	loc := time.UTC
	if p.Timezone != "" {
		l, err := time.LoadLocation(p.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid publish timezone %q: %w", p.Timezone, err)
		}
		loc = l
	}

	baseURL := "https://api.typefully.com/v2"
	if ep := os.Getenv("TYPEFULLY_API_ENDPOINT"); ep != "" {
		baseURL = ep
	}

	return &Publisher{
		apiKey:     p.APIKey,
		baseURL:    baseURL,
		http:       &http.Client{Timeout: 30 * time.Second},
		hoursDelay: p.HoursDelay,
		loc:        loc,
		publishNow: p.PublishNow,
	}, nil
}

// Schedule computes the publish-time directive for a run starting at from.
// The --now flag always wins over the configured delay.
func (p *Publisher) Schedule(from time.Time) Schedule {
	if p.publishNow {
		return Immediate()
	}
	return DelayedBy(from, p.hoursDelay, p.loc)
}

// Publish submits the composite text as a single draft and returns the
// confirmation handle. Any rejection is fatal for the run.
func (p *Publisher) Publish(ctx context.Context, content string) (types.PublishResult, error) {
	ctx, span := trace.StartSpan(ctx, "typefully-create-draft")
	defer span.End()

	if strings.TrimSpace(content) == "" {
		return types.PublishResult{}, &types.PublishError{Message: "content is empty"}
	}

	setID, err := p.getSocialSetID(ctx)
	if err != nil {
		return types.PublishResult{}, err
	}

	publishAt := p.Schedule(time.Now()).PublishAt()

	payload := map[string]any{
		"platforms": map[string]any{
			"x": map[string]any{
				"enabled": true,
				"posts":   []map[string]string{{"text": content}},
			},
		},
		"publish_at": publishAt,
	}
	body, _ := json.Marshal(payload)

	url := fmt.Sprintf("%s/social-sets/%s/drafts", p.baseURL, setID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return types.PublishResult{}, err
	}
	p.setHeaders(req)

	resp, err := p.http.Do(req)
	if err != nil {
		return types.PublishResult{}, fmt.Errorf("typefully request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return types.PublishResult{}, p.publishError(resp)
	}

	var created struct {
		ID json.Number `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil || created.ID.String() == "" {
		return types.PublishResult{}, &types.PublishError{Message: "draft created but response had no id"}
	}

	result := types.PublishResult{
		DraftID:     created.ID.String(),
		URL:         "https://typefully.com/drafts/" + created.ID.String(),
		ScheduledAt: publishAt,
	}
	logger.Info(ctx, "Created draft", "url", result.URL, "publish_at", publishAt)
	return result, nil
}

// getSocialSetID discovers and caches the first social set on the account.
func (p *Publisher) getSocialSetID(ctx context.Context) (string, error) {
	if p.socialSetID != "" {
		return p.socialSetID, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/social-sets", nil)
	if err != nil {
		return "", err
	}
	p.setHeaders(req)

	resp, err := p.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to list social sets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", p.publishError(resp)
	}

	var listing struct {
		Results []struct {
			ID json.Number `json:"id"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return "", &types.PublishError{Message: "malformed social sets response"}
	}
	if len(listing.Results) == 0 {
		return "", &types.PublishError{Message: "no social sets found in account"}
	}

	p.socialSetID = listing.Results[0].ID.String()
	logger.Debug(ctx, "Found social set", "id", p.socialSetID)
	return p.socialSetID, nil
}

func (p *Publisher) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")
}

// publishError extracts the most specific message the API offers.
func (p *Publisher) publishError(resp *http.Response) error {
	msg := ""
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		switch {
		case body.Error != "":
			msg = body.Error
		case body.Message != "":
			msg = body.Message
		case body.Detail != "":
			msg = body.Detail
		}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("typefully http %d: %s: %w", resp.StatusCode, msg, types.ErrAuth)
	}
	return &types.PublishError{StatusCode: resp.StatusCode, Message: msg}
}
