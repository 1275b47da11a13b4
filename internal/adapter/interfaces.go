// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the Go client of the local access-control HTTP API.
//
// A UI or tool running in another process uses [AccessClient] the same way
// an in-process caller uses service.Services: log in, ask the quota ledger
// before each privileged action, report forecasts and report files.
//
// Non-2xx responses are mapped by mapHTTPError to a status sentinel of this
// package joined with the matching service sentinel, so callers can branch
// with errors.Is on either (e.g. [ErrTooManyRequests] or
// service.ErrQuotaExceeded).
package adapter

import (
	"context"

	"github.com/MKhiriev/crimewatch-access/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/access_client_mock.go -package=mock

type AccessClient interface {
	// SetToken stores the bearer token attached to authenticated requests.
	// Login and Guest call it on success.
	SetToken(token string)
	Token() string

	Login(ctx context.Context, username, password string) (models.LoginResponse, error)
	Guest(ctx context.Context) (models.LoginResponse, error)
	// Logout closes the session bound to the current token.
	Logout(ctx context.Context) (models.Session, error)

	// CheckAndConsume returns the ledger decision. Denials are decisions,
	// not errors.
	CheckAndConsume(ctx context.Context, action models.Action) (models.QuotaDecision, error)

	RecordPrediction(ctx context.Context, forecast models.Forecast) (int64, error)
	RecordReport(ctx context.Context, artifact models.ReportArtifact) (int64, error)
	ListPredictions(ctx context.Context, limit int) ([]models.PredictionRecord, error)
	ListReports(ctx context.Context, limit int) ([]models.ReportRecord, error)

	ListAudit(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error)
	ListOpenSessions(ctx context.Context) ([]models.Session, error)
	ListRecentSessions(ctx context.Context, limit int) ([]models.Session, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	Settings(ctx context.Context) ([]models.SystemSetting, error)
	UpdateSetting(ctx context.Context, key, value string) (models.SystemSetting, error)

	Version(ctx context.Context) (string, error)
}
