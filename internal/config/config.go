package config

import "time"

// Config is the root configuration for an ingester run.
type Config struct {
	Instance InstanceConfig `yaml:"instance"`
	API      APIConfig      `yaml:"api"`
	Database DatabaseConfig `yaml:"database"`
	Ingest   IngestConfig   `yaml:"ingest"`
}

// InstanceConfig identifies this ingester.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// APIConfig holds catalog API settings.
type APIConfig struct {
	BaseURL       string        `yaml:"base_url"`
	APIKey        string        `yaml:"api_key"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxRetries    int           `yaml:"max_retries"` // 0 = retry until cancelled
	RetryCooldown time.Duration `yaml:"retry_cooldown"`
}

// DatabaseConfig holds the Postgres connection for ticker records.
type DatabaseConfig struct {
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// IngestConfig holds pipeline settings.
type IngestConfig struct {
	PageSize           int           `yaml:"page_size"`
	Concurrency        int           `yaml:"concurrency"`
	PersistConcurrency int           `yaml:"persist_concurrency"`
	PersistMaxRetries  int           `yaml:"persist_max_retries"` // 0 = retry until cancelled
	PersistCooldown    time.Duration `yaml:"persist_cooldown"`
}
