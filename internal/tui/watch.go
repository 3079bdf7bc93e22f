// Package tui is the continuous-refresh front end. It owns the refresh timer
// and the previous snapshot; the rendering core stays single-shot and pure.
package tui

import (
	"context"
	"fmt"
	"time"

	"dxwatch/internal/domain"
	"dxwatch/internal/render"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Fetcher is the single collaborator the watch loop polls.
type Fetcher interface {
	Fetch(ctx context.Context) (*domain.Snapshot, []domain.Warning, error)
}

type fetchedMsg struct {
	snap     *domain.Snapshot
	warnings []domain.Warning
	err      error
}

type tickMsg time.Time

var (
	statusStyle  = lipgloss.NewStyle().Faint(true)
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// Model keeps the last good snapshot on screen while the next poll is in
// flight, so a flaky network shows a stale table plus an error line instead
// of a blank screen.
type Model struct {
	fetcher  Fetcher
	opts     render.Options
	interval time.Duration

	spinner  spinner.Model
	fetching bool
	snap     *domain.Snapshot
	warnings []domain.Warning
	err      error
}

func NewModel(fetcher Fetcher, opts render.Options, interval time.Duration) Model {
	if interval <= 0 {
		interval = time.Minute
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return Model{
		fetcher:  fetcher,
		opts:     opts,
		interval: interval,
		spinner:  s,
		fetching: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m Model) fetchCmd() tea.Cmd {
	fetcher := m.fetcher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		snap, warnings, err := fetcher.Fetch(ctx)
		return fetchedMsg{snap: snap, warnings: warnings, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if !m.fetching {
				m.fetching = true
				return m, tea.Batch(m.spinner.Tick, m.fetchCmd())
			}
		}
	case tea.WindowSizeMsg:
		// fixed-width table, nothing to reflow
	case fetchedMsg:
		m.fetching = false
		m.err = msg.err
		if msg.err == nil {
			m.snap = msg.snap
			m.warnings = msg.warnings
		}
		return m, tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
	case tickMsg:
		m.fetching = true
		return m, tea.Batch(m.spinner.Tick, m.fetchCmd())
	case spinner.TickMsg:
		if m.fetching {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) View() string {
	out := ""
	switch {
	case m.snap != nil:
		table, _ := render.Full(m.snap, m.opts)
		out = table
	case m.fetching:
		return fmt.Sprintf("\n  %s fetching conditions...\n", m.spinner.View())
	}

	if m.err != nil {
		out += errStyle.Render(fmt.Sprintf("  fetch failed: %v", m.err)) + "\n"
	}
	for _, w := range m.warnings {
		out += warnStyle.Render("  "+w.String()) + "\n"
	}

	status := fmt.Sprintf("  [auto-refresh every %s - q to quit, r to refresh]", m.interval)
	if m.fetching {
		status = fmt.Sprintf("  %s refreshing...", m.spinner.View())
	}
	return out + statusStyle.Render(status) + "\n"
}
