package status

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestWatchModel(src Source) watchModel {
	now := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return newWatchModel(context.Background(), src, time.Minute, now)
}

func update(t *testing.T, m watchModel, msg tea.Msg) (watchModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	wm, ok := next.(watchModel)
	require.True(t, ok)
	return wm, cmd
}

func TestWatchModel_CollectsAndRenders(t *testing.T) {
	m := newTestWatchModel(sampleSource())
	require.NotNil(t, m.Init())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 60})
	assert.True(t, m.ready)
	assert.Equal(t, 58, m.viewport.Height)

	msg := m.cmdCollect()()
	rm, ok := msg.(reportMsg)
	require.True(t, ok)
	require.NoError(t, rm.err)

	m, cmd := update(t, m, rm)
	assert.False(t, m.loading)
	assert.NotNil(t, cmd, "next refresh is scheduled")
	assert.Len(t, m.report.Users, 2)
	assert.Contains(t, m.View(), "Users (2)")
}

func TestWatchModel_CollectError(t *testing.T) {
	src := sampleSource()
	src.auditErr = errors.New("db gone")
	m := newTestWatchModel(src)

	m, _ = update(t, m, m.cmdCollect()())
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "db gone")
	assert.Empty(t, m.rendered)
}

func TestWatchModel_Keys(t *testing.T) {
	m := newTestWatchModel(sampleSource())

	// no report yet: nothing to copy
	_, cmd := update(t, m, runeKey("c"))
	assert.Nil(t, cmd)

	// refresh is ignored while a collection is running
	_, cmd = update(t, m, runeKey("r"))
	assert.Nil(t, cmd)

	m, _ = update(t, m, m.cmdCollect()())
	m, cmd = update(t, m, runeKey("r"))
	assert.True(t, m.loading)
	assert.NotNil(t, cmd)

	_, cmd = update(t, m, runeKey("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWatchModel_CopyStatus(t *testing.T) {
	m := newTestWatchModel(sampleSource())

	m, cmd := update(t, m, copiedMsg{})
	assert.Equal(t, "copied", m.status)
	assert.NotNil(t, cmd)

	m, _ = update(t, m, copiedMsg{err: errors.New("no clipboard")})
	assert.Contains(t, m.status, "no clipboard")

	m, _ = update(t, m, clearStatusMsg{})
	assert.Empty(t, m.status)
}

func TestWatch_RejectsNonPositiveInterval(t *testing.T) {
	err := Watch(context.Background(), sampleSource(), 0)
	require.Error(t, err)
}
