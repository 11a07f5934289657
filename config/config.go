// Package config loads runtime settings for the client core. Values are
// resolved defaults-first, then overlaid from a JSON file (if provided via
// -c/-config) and finally from command-line flags. Later sources win.
package config

import "time"

// Config holds runtime settings for the client core.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - RequestTimeout: end-to-end deadline for one API request.
//   - SessionDBPath: path of the local SQLite file holding the session token.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	SessionDBPath  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://api.circle.example"
	c.RequestTimeout = 10 * time.Second
	c.SessionDBPath = "session.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
