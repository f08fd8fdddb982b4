package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the SearXNG MCP server
type Config struct {
	HTTPPort  string `env:"HTTP_PORT" envDefault:"8765"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // json or console

	// Search Configuration
	SearxngURL    string   `env:"SEARXNG_URL" envDefault:"http://localhost:8080"`
	SearchEngines []string `env:"SEARCH_ENGINES" envSeparator:"," envDefault:"duckduckgo,google,bing,brave"`

	// Result Limits
	DefaultMaxResults int `env:"DEFAULT_MAX_RESULTS" envDefault:"5"`
	MaxWords          int `env:"MAX_WORDS" envDefault:"5000"`

	// Outbound HTTP
	RequestTimeoutSeconds int `env:"REQUEST_TIMEOUT" envDefault:"20"`
}

// RequestTimeout returns the outbound fetch timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// SearxngSearchURL returns the aggregator base URL without a trailing slash.
func (c *Config) SearxngSearchURL() string {
	return strings.TrimSuffix(c.SearxngURL, "/")
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
