package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SafeSearchLevel is the content-filtering setting forwarded to SearXNG.
type SafeSearchLevel string

const (
	SafeSearchOff      SafeSearchLevel = "off"
	SafeSearchModerate SafeSearchLevel = "moderate"
	SafeSearchStrict   SafeSearchLevel = "strict"
)

// Code returns the numeric safesearch value sent upstream.
// Off maps to 2 and Strict to 0, matching the final upstream configuration.
func (l SafeSearchLevel) Code() int {
	switch l {
	case SafeSearchStrict:
		return 0
	case SafeSearchModerate:
		return 1
	default:
		return 2
	}
}

// ParseSafeSearch validates a safe-search level from config input.
// The empty string resolves to the default, off.
func ParseSafeSearch(s string) (SafeSearchLevel, error) {
	switch SafeSearchLevel(strings.ToLower(strings.TrimSpace(s))) {
	case SafeSearchOff, "":
		return SafeSearchOff, nil
	case SafeSearchModerate:
		return SafeSearchModerate, nil
	case SafeSearchStrict:
		return SafeSearchStrict, nil
	}
	return "", fmt.Errorf("invalid safe_search level %q (want off, moderate or strict)", s)
}

const (
	DefaultBaseURL          = "http://localhost:8080/search"
	DefaultMaxResults       = 5
	DefaultLanguage         = "en-US"
	DefaultMaxContentLength = 4096
	DefaultTimeoutSecs      = 30
	DefaultUserAgent        = "mcp-webtools-go/0.1"

	MaxResultsLimit       = 50
	MaxContentLengthLimit = 65536
)

// SearchConfig groups the settings for the web_search tool.
type SearchConfig struct {
	BaseURL string
	// MaxResults caps returned results; 0 means unlimited.
	MaxResults int
	Engines    []string
	SafeSearch SafeSearchLevel
	Language   string
}

// VisitConfig groups the settings for the visit_page tool.
type VisitConfig struct {
	ForceRaw bool
	// MaxContentLength truncates extracted text; 0 means unlimited.
	MaxContentLength int
	TimeoutSecs      int
	UserAgent        string
}

// Config is the host-owned configuration handed to the tool handlers.
type Config struct {
	Search SearchConfig
	Visit  VisitConfig
}

// fileConfig mirrors the YAML layout. The capped integers are pointers so
// that an absent key takes the default while an explicit 0 means unlimited.
type fileConfig struct {
	Search struct {
		BaseURL    string   `yaml:"base_url"`
		MaxResults *int     `yaml:"max_results"`
		Engines    []string `yaml:"engines"`
		SafeSearch string   `yaml:"safe_search"`
		Language   string   `yaml:"language"`
	} `yaml:"search"`
	Visit struct {
		ForceRaw         bool   `yaml:"force_raw"`
		MaxContentLength *int   `yaml:"max_content_length"`
		TimeoutSecs      int    `yaml:"timeout_seconds"`
		UserAgent        string `yaml:"user_agent"`
	} `yaml:"visit"`
}

// Load reads a YAML config file, applies defaults and environment overrides.
// A missing file is not an error; defaults are returned instead.
func Load(path string) (*Config, error) {
	var raw fileConfig

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	safeSearch, err := ParseSafeSearch(raw.Search.SafeSearch)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Search: SearchConfig{
			BaseURL:    raw.Search.BaseURL,
			MaxResults: intOrDefault(raw.Search.MaxResults, DefaultMaxResults),
			Engines:    raw.Search.Engines,
			SafeSearch: safeSearch,
			Language:   raw.Search.Language,
		},
		Visit: VisitConfig{
			ForceRaw:         raw.Visit.ForceRaw,
			MaxContentLength: intOrDefault(raw.Visit.MaxContentLength, DefaultMaxContentLength),
			TimeoutSecs:      raw.Visit.TimeoutSecs,
			UserAgent:        raw.Visit.UserAgent,
		},
	}

	if envURL := os.Getenv("SEARXNG_URL"); envURL != "" {
		cfg.Search.BaseURL = envURL
	}

	if cfg.Search.BaseURL == "" {
		cfg.Search.BaseURL = DefaultBaseURL
	}
	if cfg.Search.Language == "" {
		cfg.Search.Language = DefaultLanguage
	}
	if cfg.Visit.TimeoutSecs <= 0 {
		cfg.Visit.TimeoutSecs = DefaultTimeoutSecs
	}
	if cfg.Visit.UserAgent == "" {
		cfg.Visit.UserAgent = DefaultUserAgent
	}

	cfg.Search.MaxResults = clamp(cfg.Search.MaxResults, 0, MaxResultsLimit)
	cfg.Visit.MaxContentLength = clamp(cfg.Visit.MaxContentLength, 0, MaxContentLengthLimit)

	return cfg, nil
}

func intOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
