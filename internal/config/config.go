// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration of the access-control
// service. It is assembled from a .env file, environment variables,
// command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to nested env lookups (caarlos0/env).
//   - env       — environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds credential, token and time zone settings.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the local HTTP adapter settings.
	Server Server `envPrefix:"SERVER_"`

	// Workers toggles the opt-in background supervisors.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// Version is reported by the build info banner and the status CLI.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel filters log output ("debug", "info", ...). Empty means debug.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Timezone is the IANA zone whose calendar date keys the daily quota.
	// Empty means the host's local zone.
	// Env: APP_TIMEZONE
	Timezone string `env:"TIMEZONE"`

	// PasswordScheme is the scheme new hashes are produced with:
	// "argon2id" (default), "bcrypt" or "sha256".
	// Env: APP_PASSWORD_SCHEME
	PasswordScheme string `env:"PASSWORD_SCHEME"`

	// SeedDefaultUsers creates admin/analyst/user when no admin exists.
	// Env: APP_SEED_DEFAULT_USERS
	SeedDefaultUsers bool `env:"SEED_DEFAULT_USERS"`

	// VerifyReportArtifacts requires report files to exist on disk before
	// a report record is accepted.
	// Env: APP_VERIFY_REPORT_ARTIFACTS
	VerifyReportArtifacts bool `env:"VERIFY_REPORT_ARTIFACTS"`

	// TokenSignKey signs the HS256 session tokens of the HTTP adapter.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of an issued token.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Storage groups persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database.
type DB struct {
	// Driver selects the backend: "sqlite3" (default) or "postgres".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the data source name. For sqlite3 it is a file path or a
	// "file:" URI; for postgres a connection URL.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network settings of the local HTTP adapter.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers configures the opt-in supervisors. Both are off unless enabled.
type Workers struct {
	// Interval between two runs of each enabled worker.
	// Env: WORKERS_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// ReapStaleSessions closes sessions older than session_timeout_minutes.
	// Env: WORKERS_REAP_STALE_SESSIONS
	ReapStaleSessions bool `env:"REAP_STALE_SESSIONS"`

	// EnforceRetention purges audit entries older than data_retention_days.
	// Env: WORKERS_ENFORCE_RETENTION
	EnforceRetention bool `env:"ENFORCE_RETENTION"`
}

// Location resolves App.Timezone. Empty means time.Local.
func (a App) Location() (*time.Location, error) {
	if a.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(a.Timezone)
}

// GetStructuredConfig loads, merges and validates the configuration from all
// sources. Later sources override non-zero fields of earlier ones:
//  1. .env file in the working directory (if present)
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(defaultDotEnvFile).
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
