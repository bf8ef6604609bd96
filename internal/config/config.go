package config

import (
	"fmt"
	"net/url"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	AppName    string `envconfig:"APP_NAME" default:"PostgreSQL HA/DR Status API"`
	AppVersion string `envconfig:"APP_VERSION" default:"1.0.0"`
	Port       int    `envconfig:"PORT" default:"8000"`
	Debug      bool   `envconfig:"DEBUG" default:"false"`

	DBHost        string `envconfig:"DB_HOST" default:"localhost"`
	DBPort        int    `envconfig:"DB_PORT" default:"5432"`
	DBName        string `envconfig:"DB_NAME" default:"postgres"`
	DBUser        string `envconfig:"DB_USER" default:"postgres"`
	DBPassword    string `envconfig:"DB_PASSWORD" default:""`
	DBPoolMinSize int    `envconfig:"DB_POOL_MIN_SIZE" default:"5"`
	DBPoolMaxSize int    `envconfig:"DB_POOL_MAX_SIZE" default:"20"`

	BackupStanza string `envconfig:"PGBACKREST_STANZA" default:"pgha-dev-postgres"`

	// PatroniURL is the base URL of the local Patroni REST API.
	// Empty disables the cluster topology endpoint's upstream call.
	PatroniURL string `envconfig:"PATRONI_URL" default:""`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DSN returns the PostgreSQL connection string for the configured database.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(c.DBUser),
		url.QueryEscape(c.DBPassword),
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
