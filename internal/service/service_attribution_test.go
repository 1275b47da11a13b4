package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/models"
)

func TestAttribution_RecordPrediction(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.seed(t)["user"]

	sess, err := env.sessions.Open(ctx, user.Principal())
	require.NoError(t, err)

	forecast := models.Forecast{
		Location: "Harare Central",
		Date:     time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Items:    []string{"Theft", "Burglary"},
	}
	id, err := env.attribution.RecordPrediction(ctx, user.Principal(), &sess.ID, forecast)
	require.NoError(t, err)
	assert.NotZero(t, id)

	preds, err := env.attribution.ListPredictions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, "user", preds[0].Username)
	assert.Equal(t, "2025-06-02", preds[0].PredictionDate)
	assert.Equal(t, "Theft, Burglary", preds[0].PredictedItems)
	require.NotNil(t, preds[0].SessionID)
	assert.Equal(t, sess.ID, *preds[0].SessionID)

	entries := env.auditActions(t, models.AuditFilter{Username: "user", Action: models.AuditPrediction})
	assert.Len(t, entries, 1)
}

func TestAttribution_Rejections(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.seed(t)["user"]

	_, err := env.attribution.RecordPrediction(ctx, user.Principal(), nil, models.Forecast{Location: " ", Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = env.attribution.RecordPrediction(ctx, models.Guest(), nil, models.Forecast{Location: "Bulawayo", Date: time.Now()})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.attribution.RecordReport(ctx, user.Principal(), nil, models.ReportArtifact{Type: "PDF"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = env.attribution.ListReports(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	preds, err := env.attribution.ListPredictions(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, preds)
}

func TestAttribution_RecordReportVerifiesArtifact(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	analyst := env.seed(t)["analyst"]

	svc := NewAttributionService(env.db, true, env.clock.Now, env.recorder, logger.Nop())

	missing := models.ReportArtifact{Type: "PDF", Location: "Gweru", FilePath: filepath.Join(t.TempDir(), "absent.pdf")}
	_, err := svc.RecordReport(ctx, analyst.Principal(), nil, missing)
	require.ErrorIs(t, err, ErrArtifactMissing)

	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	id, err := svc.RecordReport(ctx, analyst.Principal(), nil, models.ReportArtifact{Type: "PDF", Location: "Gweru", FilePath: path})
	require.NoError(t, err)
	assert.NotZero(t, id)

	reports, err := svc.ListReports(ctx, 5)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "analyst", reports[0].Username)
	assert.Equal(t, path, reports[0].FilePath)

	entries := env.auditActions(t, models.AuditFilter{Action: models.AuditReportGenerated})
	assert.Len(t, entries, 1)
}

func TestAttribution_SessionMustBeOpenAndOwned(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	users := env.seed(t)
	user, analyst := users["user"], users["analyst"]

	forecast := models.Forecast{Location: "Mutare", Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Items: []string{"Robbery"}}

	own, err := env.sessions.Open(ctx, user.Principal())
	require.NoError(t, err)
	foreign, err := env.sessions.Open(ctx, analyst.Principal())
	require.NoError(t, err)
	guest, err := env.sessions.Open(ctx, models.Guest())
	require.NoError(t, err)

	missing := int64(4242)
	_, err = env.attribution.RecordPrediction(ctx, user.Principal(), &missing, forecast)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = env.attribution.RecordPrediction(ctx, user.Principal(), &foreign.ID, forecast)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.attribution.RecordPrediction(ctx, user.Principal(), &guest.ID, forecast)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.sessions.Close(ctx, own.ID)
	require.NoError(t, err)

	_, err = env.attribution.RecordPrediction(ctx, user.Principal(), &own.ID, forecast)
	assert.ErrorIs(t, err, ErrSessionAlreadyClosed)

	_, err = env.attribution.RecordReport(ctx, analyst.Principal(), &own.ID, models.ReportArtifact{Type: "PDF", Location: "Mutare", FilePath: "/tmp/r.pdf"})
	assert.ErrorIs(t, err, ErrSessionAlreadyClosed)

	preds, err := env.attribution.ListPredictions(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, preds)
	reports, err := env.attribution.ListReports(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, reports)

	assert.Empty(t, env.auditActions(t, models.AuditFilter{Action: models.AuditPrediction}))
	denied, err := env.audit.List(ctx, models.AuditFilter{Username: "user", Action: models.AuditAccessDenied})
	require.NoError(t, err)
	require.Len(t, denied, 2)
	assert.Contains(t, denied[0].Details, "is not held by user")
}
