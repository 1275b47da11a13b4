package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/crimewatch-access/models"
)

// TestScenario_StandardUserDay walks one working day of a standard user:
// login, ten forecasts, a refused eleventh, a report and logout. Every step
// must leave its trace in the audit trail, in order.
func TestScenario_StandardUserDay(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seed(t)

	u, err := env.creds.Authenticate(ctx, "user", "user")
	require.NoError(t, err)
	p := u.Principal()

	sess, err := env.sessions.Open(ctx, p)
	require.NoError(t, err)

	forecast := models.Forecast{Location: "Mbare", Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Items: []string{"Robbery"}}
	for i := 0; i < 10; i++ {
		env.clock.Advance(time.Minute)

		d, err := env.quota.CheckAndConsume(ctx, p, models.ActionPredict)
		require.NoError(t, err)
		require.True(t, d.Allowed())

		_, err = env.attribution.RecordPrediction(ctx, p, &sess.ID, forecast)
		require.NoError(t, err)
	}

	d, err := env.quota.CheckAndConsume(ctx, p, models.ActionPredict)
	require.NoError(t, err)
	require.Equal(t, models.QuotaExceeded, d.Outcome)

	d, err = env.quota.CheckAndConsume(ctx, p, models.ActionGenerateReport)
	require.NoError(t, err)
	require.True(t, d.Allowed())
	_, err = env.attribution.RecordReport(ctx, p, &sess.ID, models.ReportArtifact{Type: "CSV", Location: "Mbare", FilePath: "mbare.csv"})
	require.NoError(t, err)

	env.clock.Advance(20 * time.Minute)
	closed, err := env.sessions.Close(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), *closed.DurationMinutes)

	actions := env.auditActions(t, models.AuditFilter{Username: "user"})

	want := []string{models.AuditLogin}
	for i := 0; i < 10; i++ {
		want = append(want, string(models.ActionPredict), models.AuditPrediction)
	}
	want = append(want,
		models.AuditQuotaExceeded,
		string(models.ActionGenerateReport),
		models.AuditReportGenerated,
		models.AuditLogout,
	)
	assert.Equal(t, want, actions)

	preds, err := env.attribution.ListPredictions(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, preds, 10)
}

func TestAuditService_RecordKeepsPerUserOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.audit.Record(ctx, nil, "kiosk", "ViewMap", "first")
	require.NoError(t, err)

	// clock steps back an hour
	env.clock.Advance(-time.Hour)
	_, err = env.audit.Record(ctx, nil, "kiosk", "ViewMap", "second")
	require.NoError(t, err)

	entries, err := env.audit.List(ctx, models.AuditFilter{Username: "kiosk"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Details)
	assert.Equal(t, "second", entries[1].Details)
	assert.False(t, entries[1].Timestamp.Before(entries[0].Timestamp))

	_, err = env.audit.Record(ctx, nil, "", "ViewMap", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuditService_PurgeOlderThan(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	for i := 0; i < 3; i++ {
		_, err := env.audit.Record(ctx, nil, "kiosk", "ViewMap", "")
		require.NoError(t, err)
		env.clock.Advance(24 * time.Hour)
	}

	n, err := env.audit.PurgeOlderThan(ctx, env.clock.Now().Add(-36*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := env.audit.List(ctx, models.AuditFilter{})
	require.NoError(t, err)
	assert.Len(t, left, 1)
}
