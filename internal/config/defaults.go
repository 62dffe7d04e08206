package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL         = "https://api.polygon.io"
	DefaultAPITimeout      = 30 * time.Second
	DefaultRetryCooldown   = 30 * time.Second
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 10
	DefaultMinConns        = 2
	DefaultPageSize        = 50
	DefaultConcurrency     = 20
	DefaultPersistCooldown = 30 * time.Second
)

func (c *Config) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.RetryCooldown == 0 {
		c.API.RetryCooldown = DefaultRetryCooldown
	}

	// Database defaults
	applyDBDefaults(&c.Database.Postgres)

	// Ingest defaults
	if c.Ingest.PageSize == 0 {
		c.Ingest.PageSize = DefaultPageSize
	}
	if c.Ingest.Concurrency == 0 {
		c.Ingest.Concurrency = DefaultConcurrency
	}
	if c.Ingest.PersistConcurrency == 0 {
		c.Ingest.PersistConcurrency = c.Ingest.Concurrency
	}
	if c.Ingest.PersistCooldown == 0 {
		c.Ingest.PersistCooldown = DefaultPersistCooldown
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
