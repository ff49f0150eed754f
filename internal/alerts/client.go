package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"web3alerts-bot/internal/logger"
	"web3alerts-bot/internal/trace"
	"web3alerts-bot/internal/types"
)

// Client reads the Web3 Alerts project catalog using an exported browser
// session. The API rejects requests without a valid session cookie set.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	headers  map[string]string
	enricher *Enricher
	minDesc  int
}

// Params configures a catalog client.
type Params struct {
	BaseURL             string
	CookiesPath         string
	Timeout             time.Duration
	Enrich              bool
	MinDescriptionChars int
}

// NewClient builds a catalog client with the session loaded from the
// exported cookie file.
func NewClient(p Params) (*Client, error) {
	base, err := url.Parse(p.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", p.BaseURL, err)
	}

	jar, err := loadCookieJar(p.CookiesPath, base)
	if err != nil {
		return nil, err
	}

	timeout := p.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		baseURL: base,
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		headers: map[string]string{
			"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Accept":          "application/json, text/plain, */*",
			"Accept-Language": "en-US,en;q=0.9",
			"Referer":         p.BaseURL + "/",
			"Origin":          p.BaseURL,
		},
		minDesc: p.MinDescriptionChars,
	}
	if p.Enrich {
		c.enricher = NewEnricher(timeout)
	}
	return c, nil
}

// LatestProjects returns up to count projects, most recently discovered
// first. Single attempt; the caller decides whether to abort the run.
func (c *Client) LatestProjects(ctx context.Context, count int) ([]types.Project, error) {
	ctx, span := trace.StartSpan(ctx, "alerts.LatestProjects")
	defer span.End()

	projects, err := c.fetchNewProjects(ctx, "")
	if err != nil {
		return nil, err
	}

	// days_since_discovery ascending = newest first.
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].DaysSinceDiscovery < projects[j].DaysSinceDiscovery
	})

	if count > 0 && len(projects) > count {
		projects = projects[:count]
	}

	logger.Info(ctx, "Fetched projects from catalog", "total", len(projects), "limit", count)

	if c.enricher != nil {
		projects = c.enrichThinDescriptions(ctx, projects)
	}
	return projects, nil
}

// fetchNewProjects issues the single catalog read. The cursor parameter is
// accepted by the upstream API but multi-page fetching is out of scope, so
// callers always pass "".
func (c *Client) fetchNewProjects(ctx context.Context, cursor string) ([]types.Project, error) {
	u := *c.baseURL
	u.Path = "/api/new_projects"
	if cursor != "" {
		q := u.Query()
		q.Set("ts", cursor)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("catalog rejected session (http %d): %w", resp.StatusCode, types.ErrAuth)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}

	var projects []types.Project
	if err := json.Unmarshal(body, &projects); err != nil {
		// An expired session gets redirected to the login page, which
		// arrives as HTML with a 200 status.
		if looksLikeHTML(body) {
			return nil, fmt.Errorf("catalog returned login page instead of JSON: %w", types.ErrAuth)
		}
		return nil, fmt.Errorf("malformed catalog payload: %w", err)
	}
	return projects, nil
}

// enrichThinDescriptions replaces descriptions below the configured floor
// with text scraped from the project's website. Best effort: any failure
// keeps the original description.
func (c *Client) enrichThinDescriptions(ctx context.Context, projects []types.Project) []types.Project {
	enriched := make([]types.Project, len(projects))
	copy(enriched, projects)

	for i := range enriched {
		if len(strings.TrimSpace(enriched[i].Description)) >= c.minDesc {
			continue
		}
		if enriched[i].Website == "" {
			continue
		}
		text := c.enricher.Describe(ctx, enriched[i].Website)
		if text != "" {
			logger.Debug(ctx, "Enriched thin description", "project", enriched[i].Name, "chars", len(text))
			enriched[i].Description = text
		}
	}
	return enriched
}

func looksLikeHTML(body []byte) bool {
	head := strings.ToLower(strings.TrimSpace(string(body[:min(len(body), 256)])))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}
