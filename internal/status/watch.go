package status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// header and footer lines around the viewport
const chromeHeight = 2

var errorStyle = helpStyle.Bold(true)

type keyMap struct {
	quit    key.Binding
	refresh key.Binding
	copy    key.Binding
}

var keys = keyMap{
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
	refresh: key.NewBinding(key.WithKeys("r")),
	copy:    key.NewBinding(key.WithKeys("c")),
}

type (
	reportMsg struct {
		report Report
		err    error
	}
	refreshMsg     struct{}
	copiedMsg      struct{ err error }
	clearStatusMsg struct{}
)

type watchModel struct {
	ctx      context.Context
	src      Source
	interval time.Duration
	now      func() time.Time

	viewport viewport.Model
	spinner  spinner.Model
	ready    bool
	loading  bool

	report   Report
	rendered string
	status   string
	err      error
}

func newWatchModel(ctx context.Context, src Source, interval time.Duration, now func() time.Time) watchModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return watchModel{
		ctx:      ctx,
		src:      src,
		interval: interval,
		now:      now,
		spinner:  s,
		loading:  true,
	}
}

// Watch shows the report full-screen and collects it again every interval
// until the user quits or ctx is done.
func Watch(ctx context.Context, src Source, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %s", interval)
	}

	_, err := tea.NewProgram(
		newWatchModel(ctx, src, interval, time.Now),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdCollect())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case key.Matches(msg, keys.refresh):
			return m.startRefresh()
		case key.Matches(msg, keys.copy):
			if m.rendered == "" {
				return m, nil
			}
			return m, cmdCopyToClipboard(ansi.Strip(m.rendered))
		}
	case tea.WindowSizeMsg:
		height := max(msg.Height-chromeHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.viewport.SetContent(m.rendered)
		return m, nil
	case reportMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.report = msg.report
			m.rendered = renderReport(msg.report)
			if m.ready {
				m.viewport.SetContent(m.rendered)
			}
		}
		return m, m.cmdScheduleRefresh()
	case refreshMsg:
		return m.startRefresh()
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "copied"
		}
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m watchModel) View() string {
	header := titleStyle.Render("Access control status")
	if m.loading {
		header += " " + m.spinner.View()
	}
	if m.status != "" {
		header += "  " + helpStyle.Render(m.status)
	}
	if m.err != nil {
		header += "  " + errorStyle.Render(m.err.Error())
	}

	body := "loading..."
	if m.ready {
		body = m.viewport.View()
	}

	footer := helpStyle.Render(fmt.Sprintf("↑/↓ scroll · r refresh · c copy · q quit · every %s", m.interval))

	return header + "\n" + body + "\n" + footer
}

func (m watchModel) startRefresh() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.cmdCollect())
}

func (m watchModel) cmdCollect() tea.Cmd {
	ctx, src, now := m.ctx, m.src, m.now
	return func() tea.Msg {
		report, err := Collect(ctx, src, now())
		return reportMsg{report: report, err: err}
	}
}

func (m watchModel) cmdScheduleRefresh() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
