package alerts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestEnricherPrefersMetaDescription(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><meta name="description" content="Perps DEX with cross-margin accounts"></head>
			<body><p>Some marketing paragraph that is long enough to be extracted as a fallback.</p></body></html>`))
	}))
	defer ts.Close()

	got := NewEnricher(5 * time.Second).Describe(context.Background(), ts.URL)
	if got != "Perps DEX with cross-margin accounts" {
		t.Errorf("expected meta description, got %q", got)
	}
}

func TestEnricherFallsBackToParagraphs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>
			<p>short</p>
			<p>A decentralized network for renting idle GPU capacity to model trainers.</p>
			</body></html>`))
	}))
	defer ts.Close()

	got := NewEnricher(5 * time.Second).Describe(context.Background(), ts.URL)
	if !strings.Contains(got, "idle GPU capacity") {
		t.Errorf("expected paragraph text, got %q", got)
	}
}

func TestEnricherUnreachableSite(t *testing.T) {
	got := NewEnricher(time.Second).Describe(context.Background(), "http://127.0.0.1:1/nope")
	if got != "" {
		t.Errorf("unreachable site should yield empty text, got %q", got)
	}
}
