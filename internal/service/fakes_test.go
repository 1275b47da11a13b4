package service

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/crimewatch-access/internal/store"
	"github.com/MKhiriev/crimewatch-access/models"
)

var errStorage = errors.New("storage error")

// ─────────────────────────────────────────────
// Mock: Store
// ─────────────────────────────────────────────

// fakeStore runs InTx on the same repositories it hands out directly.
type fakeStore struct {
	repos    store.Repositories
	beginErr error
	commits  int
}

func (f *fakeStore) InTx(_ context.Context, fn func(repos store.Repositories) error) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	if err := fn(f.repos); err != nil {
		return err
	}
	f.commits++
	return nil
}

func (f *fakeStore) Repositories() store.Repositories {
	return f.repos
}

func newFakeStore(users *mockUsers, audit *mockAudit) *fakeStore {
	if users == nil {
		users = &mockUsers{}
	}
	if audit == nil {
		audit = &mockAudit{}
	}
	return &fakeStore{repos: store.Repositories{
		Users:    users,
		Sessions: &mockSessions{},
		Audit:    audit,
		Settings: &mockSettings{},
	}}
}

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUsers struct {
	findByUsernameFn func(ctx context.Context, username string) (models.User, error)
	findByIDFn       func(ctx context.Context, id int64) (models.User, error)
	updateHashFn     func(ctx context.Context, id int64, hash string) error
	updateLoginFn    func(ctx context.Context, id int64, at time.Time) error
}

func (m *mockUsers) CreateUser(_ context.Context, u models.User) (models.User, error) {
	u.UserID = 1
	return u, nil
}

func (m *mockUsers) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUsers) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUsers) LockUserQuota(ctx context.Context, id int64) (models.User, error) {
	return m.FindUserByID(ctx, id)
}

func (m *mockUsers) ListUsers(context.Context) ([]models.User, error) { return nil, nil }

func (m *mockUsers) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	if m.updateLoginFn != nil {
		return m.updateLoginFn(ctx, id, at)
	}
	return nil
}

func (m *mockUsers) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	if m.updateHashFn != nil {
		return m.updateHashFn(ctx, id, hash)
	}
	return nil
}

func (m *mockUsers) UpdateRole(context.Context, int64, models.Role) error { return nil }

func (m *mockUsers) SetActive(context.Context, int64, bool) error { return nil }

func (m *mockUsers) UpdateQuotaCounter(context.Context, int64, int, string) error { return nil }

// ─────────────────────────────────────────────
// Mock: store.AuditRepository
// ─────────────────────────────────────────────

type mockAudit struct {
	appendFn func(ctx context.Context, e models.AuditEntry) (int64, error)
	last     map[string]time.Time
	entries  []models.AuditEntry
}

func (m *mockAudit) Append(ctx context.Context, e models.AuditEntry) (int64, error) {
	if m.appendFn != nil {
		return m.appendFn(ctx, e)
	}
	m.entries = append(m.entries, e)
	return int64(len(m.entries)), nil
}

func (m *mockAudit) LastTimestamp(_ context.Context, username string) (time.Time, bool, error) {
	ts, ok := m.last[username]
	return ts, ok, nil
}

func (m *mockAudit) List(context.Context, models.AuditFilter) ([]models.AuditEntry, error) {
	return m.entries, nil
}

func (m *mockAudit) PurgeOlderThan(context.Context, time.Time) (int64, error) { return 0, nil }

// ─────────────────────────────────────────────
// Mock: store.SessionRepository, store.SettingRepository
// ─────────────────────────────────────────────

type mockSessions struct{}

func (mockSessions) OpenSession(context.Context, *int64, time.Time) (int64, error) {
	return 0, errStorage
}

func (mockSessions) FindSession(context.Context, int64) (models.Session, error) {
	return models.Session{}, store.ErrNoSessionWasFound
}

func (mockSessions) CloseSession(context.Context, int64, time.Time, int64) (bool, error) {
	return false, nil
}

func (mockSessions) ListOpenSessions(context.Context) ([]models.Session, error) { return nil, nil }

func (mockSessions) ListOpenSessionsBefore(context.Context, time.Time) ([]models.Session, error) {
	return nil, nil
}

func (mockSessions) ListRecentSessions(context.Context, int) ([]models.Session, error) {
	return nil, nil
}

type mockSettings struct{}

func (mockSettings) ListSettings(context.Context) ([]models.SystemSetting, error) { return nil, nil }

func (mockSettings) GetSetting(context.Context, string) (models.SystemSetting, error) {
	return models.SystemSetting{}, store.ErrNoSettingWasFound
}

func (mockSettings) UpdateSetting(context.Context, string, string, string, time.Time) error {
	return nil
}
