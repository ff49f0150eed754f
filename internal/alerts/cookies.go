package alerts

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
)

// exportedCookie matches the shape of browser cookie-export extensions.
// Only name and value matter; the session is replayed against the base URL.
type exportedCookie struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain,omitempty"`
	Path   string `json:"path,omitempty"`
}

// loadCookieJar reads an exported cookie file and returns a jar primed for
// the given base URL.
func loadCookieJar(path string, base *url.URL) (http.CookieJar, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cookie file %s: %w", path, err)
	}

	var exported []exportedCookie
	if err := json.Unmarshal(b, &exported); err != nil {
		return nil, fmt.Errorf("failed to parse cookie file %s: %w", path, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	cookies := make([]*http.Cookie, 0, len(exported))
	for _, c := range exported {
		if c.Name == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	jar.SetCookies(base, cookies)
	return jar, nil
}
