package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "TYPEFULLY_API_KEY", "COOKIES_PATH",
		"GEMINI_MODEL", "TYPEFULLY_HOURS_DELAY", "PROJECTS_COUNT", "SUMMARY_MAX_WORDS",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := LoadConfig(writeConfig(t, "mode: DRY_RUN\n"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Source.BaseURL != "https://web3alerts.app" {
		t.Errorf("base_url default = %q", cfg.Source.BaseURL)
	}
	if cfg.Source.FetchCount != 10 {
		t.Errorf("fetch_count default = %d", cfg.Source.FetchCount)
	}
	if cfg.LLM.Model != "gemini-2.5-flash-lite" {
		t.Errorf("model default = %q", cfg.LLM.Model)
	}
	if cfg.LLM.MaxWords != 10 {
		t.Errorf("max_words default = %d", cfg.LLM.MaxWords)
	}
	if cfg.Publish.HoursDelay != 6 {
		t.Errorf("hours_delay default = %d", cfg.Publish.HoursDelay)
	}
	if cfg.Publish.Timezone != "Asia/Singapore" {
		t.Errorf("timezone default = %q", cfg.Publish.Timezone)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("TYPEFULLY_API_KEY", "t-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-pro")
	t.Setenv("TYPEFULLY_HOURS_DELAY", "0")
	t.Setenv("PROJECTS_COUNT", "5")
	t.Setenv("SUMMARY_MAX_WORDS", "8")
	t.Setenv("COOKIES_PATH", "/tmp/cookies.json")

	cfg, err := LoadConfig(writeConfig(t, "mode: LIVE\n"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.GeminiAPIKey != "g-key" || cfg.TypefullyAPIKey != "t-key" {
		t.Error("secrets not taken from environment")
	}
	if cfg.LLM.Model != "gemini-2.0-pro" {
		t.Errorf("model override = %q", cfg.LLM.Model)
	}
	if cfg.Publish.HoursDelay != 0 {
		t.Errorf("hours_delay override = %d, want 0", cfg.Publish.HoursDelay)
	}
	if cfg.Source.FetchCount != 5 {
		t.Errorf("fetch_count override = %d", cfg.Source.FetchCount)
	}
	if cfg.LLM.MaxWords != 8 {
		t.Errorf("max_words override = %d", cfg.LLM.MaxWords)
	}
	if cfg.Source.CookiesPath != "/tmp/cookies.json" {
		t.Errorf("cookies_path override = %q", cfg.Source.CookiesPath)
	}
}

func TestLoadConfigInvalidMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	if _, err := LoadConfig(writeConfig(t, "mode: YOLO\n")); err == nil {
		t.Error("expected error for invalid mode")
	}
}

func TestLoadConfigLiveRequiresTypefullyKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	if _, err := LoadConfig(writeConfig(t, "mode: LIVE\n")); err == nil {
		t.Error("expected error for LIVE mode without TYPEFULLY_API_KEY")
	}
}

func TestLoadConfigGeminiRequiresKey(t *testing.T) {
	clearEnv(t)

	if _, err := LoadConfig(writeConfig(t, "mode: DRY_RUN\n")); err == nil {
		t.Error("expected error for GEMINI provider without GEMINI_API_KEY")
	}
}

func TestLoadConfigNoopNeedsNoKeys(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(writeConfig(t, "mode: DRY_RUN\nllm:\n  provider: NOOP\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.Provider != "NOOP" {
		t.Errorf("provider = %q", cfg.LLM.Provider)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
