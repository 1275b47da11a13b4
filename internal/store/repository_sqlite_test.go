package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/crimewatch-access/internal/config"
	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/migrations"
	"github.com/MKhiriev/crimewatch-access/models"
)

// newSQLiteDB opens a migrated in-memory database private to the test.
func newSQLiteDB(t *testing.T) *DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := config.DB{
		Driver: migrations.DialectSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}

	db, err := NewConnect(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate())
	return db
}

func createTestUser(t *testing.T, repos Repositories, username string, role models.Role) models.User {
	t.Helper()
	u, err := repos.Users.CreateUser(context.Background(), models.User{
		Username:     username,
		PasswordHash: "hash-" + username,
		Role:         role,
		Active:       true,
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
	return u
}

func TestSQLite_UserLifecycle(t *testing.T) {
	ctx := context.Background()
	repos := newSQLiteDB(t).Repositories()

	u := createTestUser(t, repos, "user", models.RoleStandardUser)
	require.NotZero(t, u.UserID)

	_, err := repos.Users.CreateUser(ctx, models.User{Username: "user", PasswordHash: "x", Role: models.RoleAdmin, CreatedAt: time.Now()})
	require.ErrorIs(t, err, ErrLoginAlreadyExists)

	require.NoError(t, repos.Users.UpdateQuotaCounter(ctx, u.UserID, 3, "2025-06-01"))
	login := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Users.UpdateLastLogin(ctx, u.UserID, login))
	require.NoError(t, repos.Users.SetActive(ctx, u.UserID, false))

	got, err := repos.Users.LockUserQuota(ctx, u.UserID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.DailyPredictionCount)
	assert.Equal(t, "2025-06-01", got.LastPredictionDate)
	assert.False(t, got.Active)
	require.NotNil(t, got.LastLogin)
	assert.True(t, got.LastLogin.Equal(login))

	_, err = repos.Users.FindUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestSQLite_SessionCloseOnce(t *testing.T) {
	ctx := context.Background()
	repos := newSQLiteDB(t).Repositories()
	u := createTestUser(t, repos, "analyst", models.RoleDataAnalyst)

	login := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	id, err := repos.Sessions.OpenSession(ctx, &u.UserID, login)
	require.NoError(t, err)

	guestID, err := repos.Sessions.OpenSession(ctx, nil, login)
	require.NoError(t, err)

	open, err := repos.Sessions.ListOpenSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, open, 2)

	closed, err := repos.Sessions.CloseSession(ctx, id, login.Add(90*time.Second), 1)
	require.NoError(t, err)
	assert.True(t, closed)

	closed, err = repos.Sessions.CloseSession(ctx, id, login.Add(time.Hour), 60)
	require.NoError(t, err)
	assert.False(t, closed, "second close must not touch the row")

	sess, err := repos.Sessions.FindSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "analyst", sess.Username)
	require.NotNil(t, sess.DurationMinutes)
	assert.Equal(t, int64(1), *sess.DurationMinutes)
	assert.Equal(t, models.SessionClosed, sess.State())

	guest, err := repos.Sessions.FindSession(ctx, guestID)
	require.NoError(t, err)
	assert.Nil(t, guest.UserID)
	assert.Equal(t, models.SessionOpen, guest.State())

	stale, err := repos.Sessions.ListOpenSessionsBefore(ctx, login.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, guestID, stale[0].ID)

	_, err = repos.Sessions.FindSession(ctx, 999)
	assert.ErrorIs(t, err, ErrNoSessionWasFound)
}

func TestSQLite_AuditOrderingAndFilters(t *testing.T) {
	ctx := context.Background()
	repos := newSQLiteDB(t).Repositories()
	u := createTestUser(t, repos, "user", models.RoleStandardUser)

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	actions := []string{models.AuditLogin, "Predict", "Predict", models.AuditLogout}
	for i, a := range actions {
		_, err := repos.Audit.Append(ctx, models.AuditEntry{
			UserID:    &u.UserID,
			Username:  u.Username,
			Action:    a,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	_, err := repos.Audit.Append(ctx, models.AuditEntry{Username: "ghost", Action: models.AuditLoginFailed, Timestamp: base})
	require.NoError(t, err)

	all, err := repos.Audit.List(ctx, models.AuditFilter{Username: "user"})
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := range actions {
		assert.Equal(t, actions[i], all[i].Action)
	}

	predicts, err := repos.Audit.List(ctx, models.AuditFilter{UserID: &u.UserID, Action: "Predict"})
	require.NoError(t, err)
	assert.Len(t, predicts, 2)

	newest, err := repos.Audit.List(ctx, models.AuditFilter{Newest: true, Limit: 2})
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, models.AuditLogout, newest[0].Action)

	ranged, err := repos.Audit.List(ctx, models.AuditFilter{From: base.Add(time.Minute), To: base.Add(3 * time.Minute)})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	last, ok, err := repos.Audit.LastTimestamp(ctx, "user")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, last.Equal(base.Add(3*time.Minute)))

	_, ok, err = repos.Audit.LastTimestamp(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, ok)

	purged, err := repos.Audit.PurgeOlderThan(ctx, base.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(3), purged)
}

func TestSQLite_SettingsSeededAndUpdated(t *testing.T) {
	ctx := context.Background()
	repos := newSQLiteDB(t).Repositories()

	settings, err := repos.Settings.ListSettings(ctx)
	require.NoError(t, err)
	require.Len(t, settings, 4)

	q, err := repos.Settings.GetSetting(ctx, models.SettingStandardUserDailyQuota)
	require.NoError(t, err)
	assert.Equal(t, "10", q.Value)

	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Settings.UpdateSetting(ctx, models.SettingStandardUserDailyQuota, "3", "admin", at))

	q, err = repos.Settings.GetSetting(ctx, models.SettingStandardUserDailyQuota)
	require.NoError(t, err)
	assert.Equal(t, "3", q.Value)
	assert.Equal(t, "admin", q.UpdatedBy)

	err = repos.Settings.UpdateSetting(ctx, "unknown", "1", "admin", at)
	assert.ErrorIs(t, err, ErrNoSettingWasFound)

	_, err = repos.Settings.GetSetting(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNoSettingWasFound)
}

func TestSQLite_Attribution(t *testing.T) {
	ctx := context.Background()
	repos := newSQLiteDB(t).Repositories()
	u := createTestUser(t, repos, "user", models.RoleStandardUser)

	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	sessionID, err := repos.Sessions.OpenSession(ctx, &u.UserID, at)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := repos.Attribution.SavePrediction(ctx, models.PredictionRecord{
			UserID:         u.UserID,
			SessionID:      &sessionID,
			Username:       u.Username,
			Location:       fmt.Sprintf("District %d", i),
			PredictionDate: "2025-06-02",
			PredictedItems: "Theft, Assault",
			Timestamp:      at.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	preds, err := repos.Attribution.ListPredictions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.Equal(t, "District 2", preds[0].Location)
	require.NotNil(t, preds[0].SessionID)
	assert.Equal(t, sessionID, *preds[0].SessionID)

	id, err := repos.Attribution.SaveReport(ctx, models.ReportRecord{
		UserID:      u.UserID,
		Username:    u.Username,
		ReportType:  "PDF",
		Location:    "District 1",
		FilePath:    "/tmp/report.pdf",
		GeneratedAt: at,
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	reports, err := repos.Attribution.ListReports(ctx, 5)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Nil(t, reports[0].SessionID)
	assert.Equal(t, "/tmp/report.pdf", reports[0].FilePath)
}

func TestSQLite_InTxRollsBackEveryWrite(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	u := createTestUser(t, db.Repositories(), "user", models.RoleStandardUser)

	boom := errors.New("boom")
	err := db.InTx(ctx, func(repos Repositories) error {
		if err := repos.Users.UpdateQuotaCounter(ctx, u.UserID, 5, "2025-06-01"); err != nil {
			return err
		}
		if _, err := repos.Audit.Append(ctx, models.AuditEntry{Username: "user", Action: "Predict", Timestamp: time.Now()}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := db.Repositories().Users.FindUserByID(ctx, u.UserID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.DailyPredictionCount)

	entries, err := db.Repositories().Audit.List(ctx, models.AuditFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
