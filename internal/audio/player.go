package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/mattn/go-shellwords"
)

// Player plays waveforms through an external audio player process.
type Player struct {
	cmd []string
}

// NewPlayer builds a player from a configured command line, or from a
// per-platform default when command is empty.
func NewPlayer(command string) (*Player, error) {
	if command == "" {
		return &Player{cmd: defaultPlayerCommand()}, nil
	}
	parser := shellwords.NewParser()
	args, err := parser.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse player command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("player command is empty")
	}
	return &Player{cmd: args}, nil
}

// Play writes samples to a temporary WAV file, hands it to the player
// process, and blocks until playback finishes. The temporary file is
// removed afterwards.
func (p *Player) Play(ctx context.Context, samples []float32, sampleRate int) error {
	file, err := os.CreateTemp("", "narro_play_*.wav")
	if err != nil {
		return fmt.Errorf("temp file: %w", err)
	}
	path := file.Name()
	defer os.Remove(path)

	if err := encodeWAV(file, samples, sampleRate); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	args := append([]string{}, p.cmd...)
	args = append(args, path)
	command := exec.CommandContext(ctx, args[0], args[1:]...)
	var stderr bytes.Buffer
	command.Stderr = &stderr
	if err := command.Run(); err != nil {
		return fmt.Errorf("player command failed: %w: %s", err, stderr.String())
	}
	return nil
}

func defaultPlayerCommand() []string {
	var cmd []string
	switch runtime.GOOS {
	case "darwin":
		cmd = []string{"afplay"}
	default:
		cmd = []string{"aplay", "-q"}
	}
	if _, err := exec.LookPath(cmd[0]); err == nil {
		return cmd
	}
	return []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "error"}
}
