package platform

import (
	"context"
	"errors"
	"os"
	"testing"

	"focustimer/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRun struct {
	name string
	args []string
	wav  []byte
}

type fakeRunner struct {
	runs []recordedRun
	err  error
}

func (runner *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	run := recordedRun{name: name, args: args}
	if len(args) > 0 {
		run.wav, _ = os.ReadFile(args[len(args)-1])
	}
	runner.runs = append(runner.runs, run)
	return runner.err
}

func lookPathFor(available ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, candidate := range available {
			if candidate == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

func newTestPlayer(t *testing.T, runner CommandRunner, available ...string) *SoundPlayer {
	player := NewSoundPlayer(runner, nil)
	player.lookPath = lookPathFor(available...)
	player.tempDir = t.TempDir()
	return player
}

func TestSoundPlayerUsesFirstAvailablePlayer(t *testing.T) {
	runner := &fakeRunner{}
	player := newTestPlayer(t, runner, "aplay", "afplay")

	require.NoError(t, player.Play(context.Background(), model.SoundChime, 60, 2))

	require.Len(t, runner.runs, 1)
	run := runner.runs[0]
	assert.Equal(t, "/usr/bin/aplay", run.name)
	assert.Equal(t, "-q", run.args[0])
	assert.Equal(t, RenderWAV(model.SoundChime, 60, 2), run.wav)

	entries, err := os.ReadDir(player.tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary sound file is removed")
}

func TestSoundPlayerWithoutPlayer(t *testing.T) {
	runner := &fakeRunner{}
	player := newTestPlayer(t, runner)

	err := player.Play(context.Background(), model.SoundBell, 50, 1)
	assert.ErrorIs(t, err, ErrNoAudioPlayer)
	assert.Empty(t, runner.runs)
}

func TestSoundPlayerMutedDoesNothing(t *testing.T) {
	runner := &fakeRunner{}
	player := newTestPlayer(t, runner, "paplay")

	require.NoError(t, player.Play(context.Background(), model.SoundBell, 0, 3))
	assert.Empty(t, runner.runs)
}

func TestSoundPlayerPropagatesRunnerError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("device busy")}
	player := newTestPlayer(t, runner, "paplay")

	err := player.Play(context.Background(), model.SoundBeep, 50, 1)
	assert.EqualError(t, err, "device busy")
}
