// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Defaults filled in by applyDefaults for fields no source provided.
const (
	DefaultDriver         = "sqlite3"
	DefaultDSN            = "ZRP_CrimeData.db"
	DefaultPasswordScheme = "argon2id"
	DefaultTokenIssuer    = "crimewatch-access"
	DefaultTokenDuration  = 12 * time.Hour
	DefaultHTTPAddress    = "localhost:8086"
	DefaultRequestTimeout = 30 * time.Second
	DefaultWorkerInterval = 5 * time.Minute
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DefaultDriver
	}
	if cfg.Storage.DB.DSN == "" && cfg.Storage.DB.Driver == DefaultDriver {
		cfg.Storage.DB.DSN = DefaultDSN
	}
	if cfg.App.PasswordScheme == "" {
		cfg.App.PasswordScheme = DefaultPasswordScheme
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Workers.Interval == 0 {
		cfg.Workers.Interval = DefaultWorkerInterval
	}
}

// validate checks the merged configuration before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.DB.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	switch cfg.App.PasswordScheme {
	case "argon2id", "bcrypt", "sha256":
	default:
		return fmt.Errorf("%w: unknown password scheme %q", ErrInvalidAppConfigs, cfg.App.PasswordScheme)
	}

	if _, err := cfg.App.Location(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
	}

	if cfg.App.TokenDuration < 0 || cfg.Server.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidAppConfigs)
	}

	if cfg.Workers.Interval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
