package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/internal/metrics"
	"github.com/MKhiriev/crimewatch-access/internal/store"
	"github.com/MKhiriev/crimewatch-access/models"
)

// attributionService stores who produced which forecast or report. It is
// called after the quota ledger allowed a prediction, or after the policy
// permitted a report, and re-checks the policy itself.
type attributionService struct {
	store           Store
	verifyArtifacts bool
	now             Clock
	metrics         *metrics.Recorder
	logger          *logger.Logger
}

// NewAttributionService builds the service. With verifyArtifacts set a report
// is rejected unless its file exists.
func NewAttributionService(db Store, verifyArtifacts bool, clock Clock, recorder *metrics.Recorder, logger *logger.Logger) AttributionService {
	return &attributionService{
		store:           db,
		verifyArtifacts: verifyArtifacts,
		now:             clock,
		metrics:         recorder,
		logger:          logger,
	}
}

func (s *attributionService) RecordPrediction(ctx context.Context, principal models.Principal, sessionID *int64, forecast models.Forecast) (int64, error) {
	forecast.Location = strings.TrimSpace(forecast.Location)
	if forecast.Location == "" || forecast.Date.IsZero() {
		return 0, ErrInvalidDataProvided
	}

	items := strings.Join(forecast.Items, ", ")
	details := fmt.Sprintf("%s on %s: %d item(s)", forecast.Location, forecast.Date.Format(dateLayout), len(forecast.Items))

	id, err := s.record(ctx, "attributionService.RecordPrediction", principal, sessionID, models.ActionPredict, models.AuditPrediction, details,
		func(repos store.Repositories, user models.User) (int64, error) {
			return repos.Attribution.SavePrediction(ctx, models.PredictionRecord{
				UserID:         user.UserID,
				SessionID:      sessionID,
				Username:       user.Username,
				Location:       forecast.Location,
				PredictionDate: forecast.Date.Format(dateLayout),
				PredictedItems: items,
				Timestamp:      s.now(),
			})
		})
	if err != nil {
		return 0, err
	}

	s.metrics.AttributionRecord(metrics.KindPrediction)
	return id, nil
}

func (s *attributionService) RecordReport(ctx context.Context, principal models.Principal, sessionID *int64, artifact models.ReportArtifact) (int64, error) {
	if strings.TrimSpace(artifact.FilePath) == "" || strings.TrimSpace(artifact.Type) == "" {
		return 0, ErrInvalidDataProvided
	}
	if s.verifyArtifacts {
		if _, err := os.Stat(artifact.FilePath); errors.Is(err, fs.ErrNotExist) {
			return 0, ErrArtifactMissing
		} else if err != nil {
			return 0, fmt.Errorf("checking report artifact: %w", err)
		}
	}

	details := fmt.Sprintf("%s report for %s: %s", artifact.Type, artifact.Location, artifact.FilePath)

	id, err := s.record(ctx, "attributionService.RecordReport", principal, sessionID, models.ActionGenerateReport, models.AuditReportGenerated, details,
		func(repos store.Repositories, user models.User) (int64, error) {
			return repos.Attribution.SaveReport(ctx, models.ReportRecord{
				UserID:      user.UserID,
				SessionID:   sessionID,
				Username:    user.Username,
				ReportType:  artifact.Type,
				Location:    artifact.Location,
				FilePath:    artifact.FilePath,
				GeneratedAt: s.now(),
			})
		})
	if err != nil {
		return 0, err
	}

	s.metrics.AttributionRecord(metrics.KindReport)
	return id, nil
}

// record authorizes action, checks that sessionID is an open session of the
// same user, runs insert and audits auditAction in one transaction.
func (s *attributionService) record(
	ctx context.Context,
	funcName string,
	principal models.Principal,
	sessionID *int64,
	action models.Action,
	auditAction, details string,
	insert func(repos store.Repositories, user models.User) (int64, error),
) (int64, error) {
	var (
		id      int64
		outcome error
	)

	err := s.store.InTx(ctx, func(repos store.Repositories) error {
		now := s.now()

		user, permitted, err := authorize(ctx, repos, principal, action, now)
		if err != nil {
			return err
		}
		if !permitted {
			outcome = ErrForbidden
			return nil
		}

		if outcome, err = checkSession(ctx, repos, sessionID, user); err != nil {
			return err
		}
		if errors.Is(outcome, ErrForbidden) {
			details := fmt.Sprintf("action=%s session %d is not held by %s", action, *sessionID, user.Username)
			_, err = appendAudit(ctx, repos, auditEntry(user.Principal(), models.AuditAccessDenied, details), now)
			return err
		}
		if outcome != nil {
			return nil
		}

		if id, err = insert(repos, user); err != nil {
			return err
		}

		_, err = appendAudit(ctx, repos, auditEntry(user.Principal(), auditAction, details), now)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Str("username", principal.Username).Msg("failed to store attribution record")
		return 0, storageErr(err)
	}
	if outcome != nil {
		return 0, outcome
	}

	return id, nil
}

func (s *attributionService) ListPredictions(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	if limit <= 0 {
		return nil, ErrInvalidDataProvided
	}
	records, err := s.store.Repositories().Attribution.ListPredictions(ctx, limit)
	if err != nil {
		return nil, storageErr(err)
	}
	return records, nil
}

func (s *attributionService) ListReports(ctx context.Context, limit int) ([]models.ReportRecord, error) {
	if limit <= 0 {
		return nil, ErrInvalidDataProvided
	}
	records, err := s.store.Repositories().Attribution.ListReports(ctx, limit)
	if err != nil {
		return nil, storageErr(err)
	}
	return records, nil
}
