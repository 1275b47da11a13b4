package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		Version               string   `json:"version"`
		LogLevel              string   `json:"log_level"`
		Timezone              string   `json:"timezone"`
		PasswordScheme        string   `json:"password_scheme"`
		SeedDefaultUsers      bool     `json:"seed_default_users"`
		VerifyReportArtifacts bool     `json:"verify_report_artifacts"`
		TokenSignKey          string   `json:"token_sign_key"`
		TokenIssuer           string   `json:"token_issuer"`
		TokenDuration         Duration `json:"token_duration"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		Interval          Duration `json:"interval"`
		ReapStaleSessions bool     `json:"reap_stale_sessions"`
		EnforceRetention  bool     `json:"enforce_retention"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:               jsonCfg.App.Version,
			LogLevel:              jsonCfg.App.LogLevel,
			Timezone:              jsonCfg.App.Timezone,
			PasswordScheme:        jsonCfg.App.PasswordScheme,
			SeedDefaultUsers:      jsonCfg.App.SeedDefaultUsers,
			VerifyReportArtifacts: jsonCfg.App.VerifyReportArtifacts,
			TokenSignKey:          jsonCfg.App.TokenSignKey,
			TokenIssuer:           jsonCfg.App.TokenIssuer,
			TokenDuration:         time.Duration(jsonCfg.App.TokenDuration),
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			Interval:          time.Duration(jsonCfg.Workers.Interval),
			ReapStaleSessions: jsonCfg.Workers.ReapStaleSessions,
			EnforceRetention:  jsonCfg.Workers.EnforceRetention,
		},
	}

	return cfg, nil
}

// Duration is a time.Duration that unmarshals from "1h"-style strings as
// well as from plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
