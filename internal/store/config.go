package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Mode   string `yaml:"mode"`
	Source struct {
		BaseURL             string `yaml:"base_url"`
		CookiesPath         string `yaml:"cookies_path"`
		FetchCount          int    `yaml:"fetch_count"`
		Enrich              bool   `yaml:"enrich"`
		MinDescriptionChars int    `yaml:"min_description_chars"`
		TimeoutSeconds      int    `yaml:"timeout_seconds"`
	} `yaml:"source"`
	LLM struct {
		Provider            string `yaml:"provider"`
		Model               string `yaml:"model"`
		MaxWords            int    `yaml:"max_words"`
		RequestDelaySeconds int    `yaml:"request_delay_seconds"`
	} `yaml:"llm"`
	Publish struct {
		HoursDelay int    `yaml:"hours_delay"`
		Timezone   string `yaml:"timezone"`
	} `yaml:"publish"`

	// Secrets come from the environment only, never from config.yaml.
	GeminiAPIKey    string `yaml:"-"`
	TypefullyAPIKey string `yaml:"-"`
}

// envOverrides mirrors the environment contract of the original deployment:
// secrets plus per-run tuning knobs that may override config.yaml.
type envOverrides struct {
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	TypefullyAPIKey string `env:"TYPEFULLY_API_KEY"`
	CookiesPath     string `env:"COOKIES_PATH"`
	GeminiModel     string `env:"GEMINI_MODEL"`
	HoursDelay      int    `env:"TYPEFULLY_HOURS_DELAY" envDefault:"-1"`
	ProjectsCount   int    `env:"PROJECTS_COUNT"`
	SummaryMaxWords int    `env:"SUMMARY_MAX_WORDS"`
}

func (c *Config) Validate() error {
	if c.Mode != "DRY_RUN" && c.Mode != "LIVE" {
		return fmt.Errorf("invalid mode '%s': must be 'DRY_RUN' or 'LIVE'", c.Mode)
	}
	if c.Source.BaseURL == "" {
		return errors.New("source.base_url cannot be empty")
	}
	if c.Source.FetchCount <= 0 {
		return fmt.Errorf("source.fetch_count must be positive, got %d", c.Source.FetchCount)
	}
	if c.LLM.Provider != "GEMINI" && c.LLM.Provider != "NOOP" {
		return fmt.Errorf("llm.provider must be 'GEMINI' or 'NOOP', got '%s'", c.LLM.Provider)
	}
	if c.LLM.MaxWords <= 0 {
		return fmt.Errorf("llm.max_words must be positive, got %d", c.LLM.MaxWords)
	}
	if c.Publish.HoursDelay < 0 {
		return fmt.Errorf("publish.hours_delay cannot be negative, got %d", c.Publish.HoursDelay)
	}
	if c.LLM.Provider == "GEMINI" && c.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY missing")
	}
	if c.Mode == "LIVE" && c.TypefullyAPIKey == "" {
		return errors.New("TYPEFULLY_API_KEY missing")
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	applyOverrides(&c, ov)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Mode == "" {
		c.Mode = "DRY_RUN"
	}
	if c.Source.BaseURL == "" {
		c.Source.BaseURL = "https://web3alerts.app"
	}
	if c.Source.CookiesPath == "" {
		c.Source.CookiesPath = "credentials/cookies.json"
	}
	if c.Source.FetchCount == 0 {
		c.Source.FetchCount = 10
	}
	if c.Source.MinDescriptionChars == 0 {
		c.Source.MinDescriptionChars = 40
	}
	if c.Source.TimeoutSeconds == 0 {
		c.Source.TimeoutSeconds = 30
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "GEMINI"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.5-flash-lite"
	}
	if c.LLM.MaxWords == 0 {
		c.LLM.MaxWords = 10
	}
	if c.LLM.RequestDelaySeconds == 0 {
		c.LLM.RequestDelaySeconds = 4
	}
	if c.Publish.HoursDelay == 0 {
		c.Publish.HoursDelay = 6
	}
	if c.Publish.Timezone == "" {
		c.Publish.Timezone = "Asia/Singapore"
	}
}

func applyOverrides(c *Config, ov envOverrides) {
	c.GeminiAPIKey = ov.GeminiAPIKey
	c.TypefullyAPIKey = ov.TypefullyAPIKey
	if ov.CookiesPath != "" {
		c.Source.CookiesPath = ov.CookiesPath
	}
	if ov.GeminiModel != "" {
		c.LLM.Model = ov.GeminiModel
	}
	if ov.HoursDelay >= 0 {
		c.Publish.HoursDelay = ov.HoursDelay
	}
	if ov.ProjectsCount > 0 {
		c.Source.FetchCount = ov.ProjectsCount
	}
	if ov.SummaryMaxWords > 0 {
		c.LLM.MaxWords = ov.SummaryMaxWords
	}
}
