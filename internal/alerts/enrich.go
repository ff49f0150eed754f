package alerts

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"web3alerts-bot/internal/logger"
)

// Enricher fetches a project's website and extracts descriptive text for
// projects whose catalog description is too thin to summarize.
type Enricher struct {
	timeout time.Duration
}

func NewEnricher(timeout time.Duration) *Enricher {
	return &Enricher{timeout: timeout}
}

// Describe returns descriptive text for the page, or "" if nothing usable
// could be extracted. Meta description wins; otherwise the first substantial
// paragraphs are joined.
func (e *Enricher) Describe(ctx context.Context, pageURL string) string {
	c := colly.NewCollector(colly.MaxDepth(1))
	c.SetRequestTimeout(e.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	})

	var meta string
	var paragraphs []string

	c.OnHTML("head meta[name=description]", func(el *colly.HTMLElement) {
		meta = strings.TrimSpace(el.Attr("content"))
	})

	c.OnHTML("body", func(el *colly.HTMLElement) {
		el.DOM.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strings.TrimSpace(s.Text())
			if len(text) > 40 {
				paragraphs = append(paragraphs, text)
			}
			return len(paragraphs) < 3
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.Debug(ctx, "Enrichment fetch failed", "url", pageURL, "error", err)
	})

	if err := c.Visit(pageURL); err != nil {
		return ""
	}
	c.Wait()

	if meta != "" {
		return meta
	}
	return strings.Join(paragraphs, " ")
}
