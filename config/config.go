package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds one extraction run's configuration.
type Config struct {
	CompetitionURL string
	Team           string
	TeamAbbrev     string // defaults to the first three letters of Team
	Seasons        int    // seasons of history per player, 1-5

	Headless    bool
	NavTimeout  time.Duration
	WaitTimeout time.Duration
	SettleDelay time.Duration
	UserAgent   string

	RetryBudget int

	CacheTTL  time.Duration
	CacheSize int

	OutputDir    string
	OutputFormat string // csv, json, or dual
	MetricsAddr  string
	Verbose      bool
}

// DefaultConfig returns conservative defaults for the premier cricket site.
func DefaultConfig() *Config {
	return &Config{
		CompetitionURL: "",
		Team:           "",
		Seasons:        3,
		Headless:       true,
		NavTimeout:     30 * time.Second,
		WaitTimeout:    10 * time.Second,
		SettleDelay:    1500 * time.Millisecond,
		UserAgent:      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
		RetryBudget:    3,
		CacheTTL:       10 * time.Minute,
		CacheSize:      16,
		OutputDir:      "output",
		OutputFormat:   "csv",
		MetricsAddr:    "",
		Verbose:        false,
	}
}

// Abbrev returns the three-letter team prefix used to pick the right side of
// a scorecard. An explicit TeamAbbrev wins over the derived one.
func (c *Config) Abbrev() string {
	if c.TeamAbbrev != "" {
		return c.TeamAbbrev
	}
	if len(c.Team) < 3 {
		return c.Team
	}
	return c.Team[:3]
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.CompetitionURL == "" {
		return fmt.Errorf("competition URL cannot be empty")
	}

	parsedURL, err := url.Parse(c.CompetitionURL)
	if err != nil {
		return fmt.Errorf("invalid competition URL: %w", err)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("competition URL must include a host")
	}

	if c.Team == "" {
		return fmt.Errorf("team name cannot be empty")
	}
	if c.Seasons < 1 || c.Seasons > 5 {
		return fmt.Errorf("seasons must be between 1 and 5")
	}
	if c.NavTimeout <= 0 {
		return fmt.Errorf("navigation timeout must be positive")
	}
	if c.WaitTimeout <= 0 {
		return fmt.Errorf("wait timeout must be positive")
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("settle delay cannot be negative")
	}
	if c.RetryBudget < 0 {
		return fmt.Errorf("retry budget cannot be negative")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive")
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if c.OutputFormat != "csv" && c.OutputFormat != "json" && c.OutputFormat != "dual" {
		return fmt.Errorf("output format must be csv, json, or dual")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}

	return nil
}

// CacheKey identifies a run for result caching: an identical configuration
// inside the TTL window reuses the cached result without touching the site.
func (c *Config) CacheKey() string {
	return fmt.Sprintf("%s|%s|%d", c.CompetitionURL, c.Team, c.Seasons)
}

// EnvString reads a string environment override.
func EnvString(name string) (string, bool) {
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// EnvInt reads an integer environment override.
func EnvInt(name string) (int, bool, error) {
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("%s must be an integer: %w", name, err)
	}
	return n, true, nil
}
