package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"focustimer/internal/core/model"
)

// ErrNoAudioPlayer indicates none of the known command line players exist.
var ErrNoAudioPlayer = errors.New("no audio player found")

// CommandRunner runs an external command to completion.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

type playerCommand struct {
	name string
	args []string
}

var playerCommands = []playerCommand{
	{name: "paplay"},
	{name: "aplay", args: []string{"-q"}},
	{name: "afplay"},
}

// SoundPlayer renders notification sounds and plays them with the first
// available system player.
type SoundPlayer struct {
	runner   CommandRunner
	lookPath func(string) (string, error)
	tempDir  string
	logger   *slog.Logger
}

// NewSoundPlayer creates a SoundPlayer. A nil runner uses ExecRunner.
func NewSoundPlayer(runner CommandRunner, logger *slog.Logger) *SoundPlayer {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SoundPlayer{runner: runner, lookPath: exec.LookPath, logger: logger}
}

// Play blocks until playback finished or ctx is cancelled. A zero volume
// plays nothing.
func (player *SoundPlayer) Play(ctx context.Context, sound model.Sound, volume, count int) error {
	if volume <= 0 {
		return nil
	}

	command, path, err := player.findCommand()
	if err != nil {
		return err
	}

	file, err := os.CreateTemp(player.tempDir, "focustimer-*.wav")
	if err != nil {
		return fmt.Errorf("create sound file: %w", err)
	}
	defer os.Remove(file.Name())

	if _, err := file.Write(RenderWAV(sound, volume, count)); err != nil {
		_ = file.Close()
		return fmt.Errorf("write sound file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close sound file: %w", err)
	}

	player.logger.Debug("playing sound", "sound", sound, "player", command.name, "count", count)
	args := append(append([]string(nil), command.args...), file.Name())
	return player.runner.Run(ctx, path, args...)
}

func (player *SoundPlayer) findCommand() (playerCommand, string, error) {
	for _, command := range playerCommands {
		if path, err := player.lookPath(command.name); err == nil {
			return command, path, nil
		}
	}
	return playerCommand{}, "", ErrNoAudioPlayer
}
