package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does_not_exist.yml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.Search.BaseURL)
	assert.Equal(t, DefaultMaxResults, cfg.Search.MaxResults)
	assert.Empty(t, cfg.Search.Engines)
	assert.Equal(t, SafeSearchOff, cfg.Search.SafeSearch)
	assert.Equal(t, DefaultLanguage, cfg.Search.Language)

	assert.False(t, cfg.Visit.ForceRaw)
	assert.Equal(t, DefaultMaxContentLength, cfg.Visit.MaxContentLength)
	assert.Equal(t, DefaultTimeoutSecs, cfg.Visit.TimeoutSecs)
	assert.Equal(t, DefaultUserAgent, cfg.Visit.UserAgent)
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeConfig(t, `
search:
  base_url: "https://searx.example.com/search"
  max_results: 10
  engines: ["bing", "duckduckgo"]
  safe_search: "strict"
  language: "de-DE"
visit:
  force_raw: true
  max_content_length: 1024
  timeout_seconds: 5
  user_agent: "test-agent/1.0"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://searx.example.com/search", cfg.Search.BaseURL)
	assert.Equal(t, 10, cfg.Search.MaxResults)
	assert.Equal(t, []string{"bing", "duckduckgo"}, cfg.Search.Engines)
	assert.Equal(t, SafeSearchStrict, cfg.Search.SafeSearch)
	assert.Equal(t, "de-DE", cfg.Search.Language)

	assert.True(t, cfg.Visit.ForceRaw)
	assert.Equal(t, 1024, cfg.Visit.MaxContentLength)
	assert.Equal(t, 5, cfg.Visit.TimeoutSecs)
	assert.Equal(t, "test-agent/1.0", cfg.Visit.UserAgent)
}

func TestLoad_ExplicitZeroMeansUnlimited(t *testing.T) {
	path := writeConfig(t, `
search:
  max_results: 0
visit:
  max_content_length: 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Search.MaxResults)
	assert.Equal(t, 0, cfg.Visit.MaxContentLength)
}

func TestLoad_ClampsRanges(t *testing.T) {
	path := writeConfig(t, `
search:
  max_results: 500
visit:
  max_content_length: 1000000
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, MaxResultsLimit, cfg.Search.MaxResults)
	assert.Equal(t, MaxContentLengthLimit, cfg.Visit.MaxContentLength)

	path = writeConfig(t, `
search:
  max_results: -3
visit:
  max_content_length: -1
`)

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Search.MaxResults)
	assert.Equal(t, 0, cfg.Visit.MaxContentLength)
}

func TestLoad_EnvOverridesBaseURL(t *testing.T) {
	path := writeConfig(t, `
search:
  base_url: "http://from-file:8080/search"
`)
	t.Setenv("SEARXNG_URL", "http://from-env:9090/search")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:9090/search", cfg.Search.BaseURL)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "search:\n  max_results: [ unclosed\n")

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidSafeSearch(t *testing.T) {
	path := writeConfig(t, `
search:
  safe_search: "paranoid"
`)

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestSafeSearchCode(t *testing.T) {
	assert.Equal(t, 2, SafeSearchOff.Code())
	assert.Equal(t, 1, SafeSearchModerate.Code())
	assert.Equal(t, 0, SafeSearchStrict.Code())
}

func TestParseSafeSearch(t *testing.T) {
	level, err := ParseSafeSearch("")
	require.NoError(t, err)
	assert.Equal(t, SafeSearchOff, level)

	level, err = ParseSafeSearch(" Moderate ")
	require.NoError(t, err)
	assert.Equal(t, SafeSearchModerate, level)

	_, err = ParseSafeSearch("none")
	assert.Error(t, err)
}
