package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/crimewatch-access/internal/config"
	"github.com/MKhiriev/crimewatch-access/internal/crypto"
	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/internal/metrics"
	"github.com/MKhiriev/crimewatch-access/internal/store"
	"github.com/MKhiriev/crimewatch-access/migrations"
	"github.com/MKhiriev/crimewatch-access/models"
)

// testClock is a settable clock shared by all services of one testEnv.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// testEnv bundles real services over a migrated in-memory SQLite database.
type testEnv struct {
	db       *store.DB
	clock    *testClock
	recorder *metrics.Recorder

	creds       CredentialService
	sessions    SessionService
	quota       QuotaService
	audit       AuditService
	attribution AttributionService
	settings    SettingsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := store.NewConnect(ctx, config.DB{
		Driver: migrations.DialectSQLite,
		DSN:    fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name),
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	// cheap argon2id parameters keep the suite fast
	hasher, err := crypto.NewPasswordHasherWithParams(crypto.SchemeArgon2id,
		crypto.Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}, 4)
	require.NoError(t, err)

	clock := &testClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	recorder := metrics.NewRecorder()
	log := logger.Nop()

	return &testEnv{
		db:          db,
		clock:       clock,
		recorder:    recorder,
		creds:       NewCredentialService(db, hasher, clock.Now, recorder, log),
		sessions:    NewSessionService(db, clock.Now, recorder, log),
		quota:       NewQuotaService(db, time.UTC, clock.Now, recorder, log),
		audit:       NewAuditService(db, clock.Now, log),
		attribution: NewAttributionService(db, false, clock.Now, recorder, log),
		settings:    NewSettingsService(db, clock.Now, log),
	}
}

// seed provisions the default accounts and returns them by username.
func (e *testEnv) seed(t *testing.T) map[string]models.User {
	t.Helper()
	ctx := context.Background()

	n, err := e.creds.EnsureDefaultUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, len(defaultUsers), n)

	users := make(map[string]models.User, n)
	for _, du := range defaultUsers {
		u, err := e.db.Repositories().Users.FindUserByUsername(ctx, du.Username)
		require.NoError(t, err)
		users[u.Username] = u
	}
	return users
}

func (e *testEnv) auditActions(t *testing.T, filter models.AuditFilter) []string {
	t.Helper()
	entries, err := e.audit.List(context.Background(), filter)
	require.NoError(t, err)

	actions := make([]string, 0, len(entries))
	for _, en := range entries {
		actions = append(actions, en.Action)
	}
	return actions
}
