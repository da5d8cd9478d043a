// Package tui is the terminal front end used in headless mode.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focustimer/internal/core/timekeeper"
	"focustimer/internal/ui/status"
)

const barWidth = 36

// eventMsg carries a TimeKeeper event into the update loop.
type eventMsg timekeeper.Event

// closedMsg is sent once the event stream has ended.
type closedMsg struct{}

// Model is the bubbletea model of the timer screen.
type Model struct {
	controller status.Controller
	events     <-chan timekeeper.Event
	snapshot   timekeeper.Snapshot
	bar        progress.Model
	styles     Styles
	notice     string
	err        error
}

// New creates the model. events is usually a TimeKeeper subscription.
func New(controller status.Controller, events <-chan timekeeper.Event) Model {
	return Model{
		controller: controller,
		events:     events,
		snapshot:   controller.Snapshot(),
		bar: progress.New(
			progress.WithSolidFill(string(workColor)),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		),
		styles: NewStyles(),
	}
}

// Init starts listening for events.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.snapshot = msg.Snapshot
		if msg.Title != "" {
			m.notice = fmt.Sprintf("%s %s", msg.Title, msg.Message)
		}
		return m, waitForEvent(m.events)

	case closedMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case " ":
			m.err = status.Toggle(m.controller)
		case "r":
			m.controller.Reset()
			m.err = nil
		case "n":
			m.controller.Skip()
			m.err = nil
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		default:
			return m, nil
		}
		m.snapshot = m.controller.Snapshot()
		return m, nil
	}
	return m, nil
}

// View renders the screen.
func (m Model) View() string {
	snapshot := m.snapshot
	sessionStyle := m.styles.Break
	if snapshot.IsWorkSession() {
		sessionStyle = m.styles.Work
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Title.Render("FocusTimer"),
		m.styles.Muted.Render("  "+string(snapshot.Status)),
	)

	lines := []string{
		header,
		sessionStyle.Render(status.SessionLabel(snapshot)),
		m.styles.Timer.Render(status.FormatRemaining(snapshot.Remaining())),
		m.bar.ViewAs(snapshot.Progress()),
		m.styles.Muted.Render(fmt.Sprintf("Completed this cycle: %d/%d", status.CompletedInCycle(snapshot), snapshot.Settings.Intervals)),
	}
	if m.notice != "" {
		lines = append(lines, m.styles.Notice.Render(m.notice))
	}
	if m.err != nil && !errors.Is(m.err, timekeeper.ErrAlreadyRunning) {
		lines = append(lines, m.styles.Error.Render(m.err.Error()))
	}
	lines = append(lines, "", m.help())

	return m.styles.Frame.Render(strings.Join(lines, "\n")) + "\n"
}

func (m Model) help() string {
	entries := []struct{ key, label string }{
		{"space", strings.ToLower(status.ToggleLabel(m.snapshot))},
		{"r", "reset"},
		{"n", "skip"},
		{"q", "quit"},
	}
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, m.styles.HelpKey.Render(entry.key)+" "+m.styles.Muted.Render(entry.label))
	}
	return strings.Join(parts, "  ")
}

func waitForEvent(events <-chan timekeeper.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(event)
	}
}

// Run runs the terminal UI until the user quits or the events end.
func Run(controller status.Controller, events <-chan timekeeper.Event, options ...tea.ProgramOption) error {
	program := tea.NewProgram(New(controller, events), options...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
