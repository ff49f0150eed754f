package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"web3alerts-bot/internal/trace"
	"web3alerts-bot/internal/types"
)

// Summarizer produces fixed-budget summaries through the Gemini
// generateContent API.
type Summarizer struct {
	apiKey   string
	model    string
	endpoint string
	http     *http.Client
}

// New creates a Gemini-backed summarizer. Set GEMINI_API_ENDPOINT to route
// through a proxy.
func New(apiKey, model string) *Summarizer {
	endpoint := "https://generativelanguage.googleapis.com/v1beta"
	if ep := os.Getenv("GEMINI_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &Summarizer{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Summarize sends one description to the model and returns a summary whose
// word count is at most maxWords. Rate-limit responses surface as
// types.ErrRateLimited, empty or unparseable output as types.ErrGeneration;
// callers degrade to a fallback summary in both cases.
func (s *Summarizer) Summarize(ctx context.Context, description string, maxWords int) (types.Summary, error) {
	ctx, span := trace.StartSpan(ctx, "gemini-api-call")
	defer span.End()

	if s.apiKey == "" {
		return types.Summary{}, fmt.Errorf("GEMINI_API_KEY missing: %w", types.ErrGeneration)
	}

	prompt := buildPrompt(description, maxWords)
	body, _ := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})

	url := fmt.Sprintf("%s/models/%s:generateContent", s.endpoint, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return types.Summary{}, err
	}
	req.Header.Set("x-goog-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return types.Summary{}, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return types.Summary{}, fmt.Errorf("gemini http 429: %w", types.ErrRateLimited)
	}
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return types.Summary{}, fmt.Errorf("gemini http %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(b)), types.ErrGeneration)
	}

	var r generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return types.Summary{}, fmt.Errorf("invalid gemini response: %w", types.ErrGeneration)
	}
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return types.Summary{}, fmt.Errorf("empty gemini response: %w", types.ErrGeneration)
	}

	text := cleanSummary(r.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return types.Summary{}, fmt.Errorf("blank gemini summary: %w", types.ErrGeneration)
	}
	return types.Summary{Text: text}, nil
}

func buildPrompt(description string, maxWords int) string {
	return fmt.Sprintf(`Summarize this Web3 project description in %d words or less.
Extract the key value proposition. Be concise. No quotes or explanations.

Description: %s

Summary:`, maxWords, description)
}

// cleanSummary strips whitespace, wrapping quotes, and any numbered prefix
// the model sometimes echoes back.
func cleanSummary(text string) string {
	out := strings.TrimSpace(text)
	// Single-line output only; keep the first non-empty line.
	if idx := strings.IndexByte(out, '\n'); idx >= 0 {
		out = strings.TrimSpace(out[:idx])
	}
	for _, sep := range []string{".", ")", ":"} {
		if i := strings.Index(out, sep); i > 0 && i <= 2 && isDigits(out[:i]) {
			out = strings.TrimSpace(out[i+1:])
			break
		}
	}
	return strings.Trim(out, `"'`)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
