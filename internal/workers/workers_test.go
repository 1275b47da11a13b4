// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/crimewatch-access/internal/config"
	"github.com/MKhiriev/crimewatch-access/internal/logger"
)

// ─────────────────────────────────────────────
// Mock: SessionExpirer
// ─────────────────────────────────────────────

type mockSessionExpirer struct {
	mu       sync.Mutex
	timeouts []time.Duration
	n        int
	err      error
}

func (m *mockSessionExpirer) ExpireStaleSessions(_ context.Context, timeout time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeouts = append(m.timeouts, timeout)
	return m.n, m.err
}

func (m *mockSessionExpirer) calls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.timeouts...)
}

// ─────────────────────────────────────────────
// Mock: AuditPurger
// ─────────────────────────────────────────────

type mockAuditPurger struct {
	mu      sync.Mutex
	cutoffs []time.Time
}

func (m *mockAuditPurger) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cutoffs = append(m.cutoffs, cutoff)
	return 2, nil
}

// ─────────────────────────────────────────────
// Mock: SettingsReader
// ─────────────────────────────────────────────

type mockSettings struct {
	timeout time.Duration
	days    int
}

func (m mockSettings) SessionTimeout(context.Context) time.Duration { return m.timeout }
func (m mockSettings) DataRetentionDays(context.Context) int         { return m.days }

// ─────────────────────────────────────────────
// Mock: Worker
// ─────────────────────────────────────────────

type mockWorker struct {
	runs atomic.Int32
	err  error
}

func (m *mockWorker) Run(ctx context.Context) error {
	m.runs.Add(1)
	if m.err != nil {
		return m.err
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestNewWorkers_FollowsConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Workers
		want int
	}{
		{"none", config.Workers{}, 0},
		{"reaper only", config.Workers{ReapStaleSessions: true}, 1},
		{"both", config.Workers{ReapStaleSessions: true, EnforceRetention: true}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := NewWorkers(&mockSessionExpirer{}, &mockAuditPurger{}, mockSettings{}, tt.cfg, logger.Nop())
			assert.Equal(t, tt.want, ws.Len())
		})
	}
}

func TestWorkers_Run_StopsOnCancel(t *testing.T) {
	w1, w2 := &mockWorker{}, &mockWorker{}
	ws := &Workers{workers: []Worker{w1, w2}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ws.Run(ctx) }()

	require.Eventually(t, func() bool {
		return w1.runs.Load() == 1 && w2.runs.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWorkers_Run_FirstFailureStopsOthers(t *testing.T) {
	boom := errors.New("boom")
	ws := &Workers{workers: []Worker{&mockWorker{}, &mockWorker{err: boom}}}

	err := ws.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{}

	assert.NoError(t, ws.Run(context.Background()))
}

func TestSessionReaper_UsesCurrentTimeout(t *testing.T) {
	sessions := &mockSessionExpirer{n: 1}
	reaper := NewSessionReaper(sessions, mockSettings{timeout: 45 * time.Minute}, 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- reaper.Run(ctx) }()

	require.Eventually(t, func() bool { return len(sessions.calls()) >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
	for _, timeout := range sessions.calls() {
		assert.Equal(t, 45*time.Minute, timeout)
	}
}

func TestSessionReaper_ErrorIsNotFatal(t *testing.T) {
	sessions := &mockSessionExpirer{err: errors.New("database is locked")}
	reaper := NewSessionReaper(sessions, mockSettings{timeout: time.Hour}, 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- reaper.Run(ctx) }()

	require.Eventually(t, func() bool { return len(sessions.calls()) >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestAuditRetention_Cutoff(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	audit := &mockAuditPurger{}
	retention := NewAuditRetention(audit, mockSettings{days: 30}, func() time.Time { return now }, time.Hour, logger.Nop())

	retention.purge(context.Background())

	require.Len(t, audit.cutoffs, 1)
	assert.Equal(t, time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC), audit.cutoffs[0])
}

func TestAuditRetention_DisabledByZeroDays(t *testing.T) {
	audit := &mockAuditPurger{}
	retention := NewAuditRetention(audit, mockSettings{days: 0}, time.Now, time.Hour, logger.Nop())

	retention.purge(context.Background())

	assert.Empty(t, audit.cutoffs)
}
