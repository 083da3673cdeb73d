// Package config provides configuration loading and validation utilities.
package config

import "time"

// Config holds runtime configuration for the session daemon.
type Config struct {
	AppEnv   string `mapstructure:"-"`
	LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	GameID   string `mapstructure:"game_id" validate:"required"`

	Redis   RedisConfig   `mapstructure:"redis"`
	Store   StoreConfig   `mapstructure:"store"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Logging LoggingConfig `mapstructure:"logging"`
	Sentry  SentryConfig  `mapstructure:"sentry"`
	Jobs    JobsConfig    `mapstructure:"jobs"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// RedisConfig defines connection parameters for the remote store transport.
type RedisConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	Password        string        `mapstructure:"password"`
	DB              int           `mapstructure:"db"`
	PoolSize        int           `mapstructure:"pool_size"`
	MinIdleConns    int           `mapstructure:"min_idle_conns"`
	PoolTimeout     time.Duration `mapstructure:"pool_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	MaxRetries      int           `mapstructure:"max_retries"`
	MinRetryBackoff time.Duration `mapstructure:"min_retry_backoff"`
	MaxRetryBackoff time.Duration `mapstructure:"max_retry_backoff"`
}

// StoreConfig scopes all remote document paths under a namespace.
type StoreConfig struct {
	Namespace string `mapstructure:"namespace" validate:"required"`
}

// CacheConfig locates the on-disk snapshot store.
type CacheConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// AuthConfig locates the locally stored identity token.
type AuthConfig struct {
	IDTokenPath string        `mapstructure:"id_token_path" validate:"required"`
	Leeway      time.Duration `mapstructure:"leeway"`
}

// LoggingConfig controls the rotating file sink.
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// SentryConfig enables crash/error reporting when a DSN is present.
type SentryConfig struct {
	DSN     string `mapstructure:"dsn"`
	Enabled bool   `mapstructure:"enabled"`
}

// JobsConfig holds cron specs for the background refresh tasks.
type JobsConfig struct {
	BlitzRefreshSpec   string `mapstructure:"blitz_refresh_spec"`
	HistoryRefreshSpec string `mapstructure:"history_refresh_spec"`
	Concurrency        int    `mapstructure:"concurrency"`
}

// MetricsConfig exposes the prometheus endpoint.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}
