package notify

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChainStopsAtFirstSuccess(t *testing.T) {
	var calls []string
	failing := Func(func(string, string) error {
		calls = append(calls, "failing")
		return errors.New("no permission")
	})
	working := Func(func(title, _ string) error {
		calls = append(calls, "working:"+title)
		return nil
	})
	unused := Func(func(string, string) error {
		calls = append(calls, "unused")
		return nil
	})

	err := NewChain(quietLogger(), failing, nil, working, unused).Notify("Break Time!", "Take a 5 minute break.")

	assert.NoError(t, err)
	assert.Equal(t, []string{"failing", "working:Break Time!"}, calls)
}

func TestChainJoinsErrors(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	err := NewChain(quietLogger(),
		Func(func(string, string) error { return first }),
		Func(func(string, string) error { return second }),
	).Notify("Work Time!", "")

	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
}

func TestEmptyChain(t *testing.T) {
	assert.NoError(t, NewChain(nil).Notify("title", "body"))
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	notifier := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	assert.NoError(t, notifier.Notify("Cycle Complete", "done"))
	assert.Contains(t, buf.String(), `title="Cycle Complete"`)
	assert.Contains(t, buf.String(), "body=done")
}

func TestFyneNotifierWithoutApp(t *testing.T) {
	assert.Error(t, NewFyneNotifier(nil).Notify("title", "body"))
}
