package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focustimer/internal/core/model"
	"focustimer/internal/core/timekeeper"
)

type stubController struct {
	snapshot timekeeper.Snapshot
	calls    []string
	startErr error
}

func (stub *stubController) Start() error {
	stub.calls = append(stub.calls, "start")
	if stub.startErr != nil {
		return stub.startErr
	}
	stub.snapshot.Status = timekeeper.StatusRunning
	return nil
}

func (stub *stubController) Pause() error {
	stub.calls = append(stub.calls, "pause")
	stub.snapshot.Status = timekeeper.StatusPaused
	return nil
}

func (stub *stubController) Reset() { stub.calls = append(stub.calls, "reset") }
func (stub *stubController) Skip()  { stub.calls = append(stub.calls, "skip") }

func (stub *stubController) Snapshot() timekeeper.Snapshot { return stub.snapshot }

func newStub() *stubController {
	return &stubController{snapshot: timekeeper.Snapshot{
		RemainingSeconds:    1500,
		Status:              timekeeper.StatusIdle,
		CurrentSessionIndex: 1,
		Settings:            model.DefaultSettings(),
	}}
}

func runeKey(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated, cmd
}

func TestKeysDriveController(t *testing.T) {
	stub := newStub()
	m := New(stub, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, timekeeper.StatusRunning, m.snapshot.Status)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = update(t, m, runeKey("r"))
	m, _ = update(t, m, runeKey("n"))
	_, cmd := update(t, m, runeKey("x"))

	assert.Nil(t, cmd)
	assert.Equal(t, []string{"start", "pause", "reset", "skip"}, stub.calls)
}

func TestQuitKey(t *testing.T) {
	m := New(newStub(), nil)
	_, cmd := update(t, m, runeKey("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestEventUpdatesSnapshotAndNotice(t *testing.T) {
	events := make(chan timekeeper.Event, 1)
	m := New(newStub(), events)

	snapshot := timekeeper.Snapshot{
		RemainingSeconds:    300,
		Status:              timekeeper.StatusRunning,
		CurrentSessionIndex: 2,
		Settings:            model.DefaultSettings(),
	}
	m, cmd := update(t, m, eventMsg(timekeeper.Event{
		Type:     timekeeper.EventSessionChange,
		Snapshot: snapshot,
		Title:    "Break Time!",
		Message:  "Take a 5 minute break.",
	}))

	require.NotNil(t, cmd)
	assert.Equal(t, snapshot, m.snapshot)
	view := m.View()
	assert.Contains(t, view, "Break 1/4")
	assert.Contains(t, view, "05:00")
	assert.Contains(t, view, "Break Time! Take a 5 minute break.")
	assert.Contains(t, view, "Completed this cycle: 1/4")

	events <- timekeeper.Event{Type: timekeeper.EventProgress, Snapshot: snapshot}
	assert.IsType(t, eventMsg{}, cmd())
}

func TestClosedEventsQuit(t *testing.T) {
	events := make(chan timekeeper.Event)
	close(events)
	m := New(newStub(), events)

	msg := m.Init()()
	assert.Equal(t, closedMsg{}, msg)

	_, cmd := update(t, m, msg)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewShowsIdleState(t *testing.T) {
	view := New(newStub(), nil).View()
	assert.Contains(t, view, "Work 1/4")
	assert.Contains(t, view, "25:00")
	assert.Contains(t, view, "start")
	assert.Contains(t, view, "idle")
}

func TestViewHidesAlreadyRunningError(t *testing.T) {
	stub := newStub()
	stub.startErr = timekeeper.ErrAlreadyRunning
	m, _ := update(t, New(stub, nil), tea.KeyMsg{Type: tea.KeySpace})
	assert.NotContains(t, m.View(), timekeeper.ErrAlreadyRunning.Error())
}
