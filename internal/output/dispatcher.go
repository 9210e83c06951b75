package output

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/narrolabs/narro/internal/audio"
	"github.com/narrolabs/narro/internal/engine"
)

// Player abstracts audio playback for the dispatcher.
type Player interface {
	Play(ctx context.Context, samples []float32, sampleRate int) error
}

// Dispatcher routes each synthesis result to playback and disk
// according to the configured mode. Playback comes before saving
// within a chunk; playback failures are warnings, never fatal.
type Dispatcher struct {
	mode   Mode
	dir    string
	base   string
	wait   bool
	player Player
	logger *slog.Logger
	wg     sync.WaitGroup
}

func NewDispatcher(mode Mode, dir, base string, wait bool, player Player, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		mode:   mode,
		dir:    dir,
		base:   base,
		wait:   wait,
		player: player,
		logger: log.With(slog.String("component", "output")),
	}
}

// Dispatch handles one synthesized chunk. The returned error is only
// non-nil for save failures.
func (d *Dispatcher) Dispatch(ctx context.Context, index int, res engine.Result, sampleRate int) error {
	d.logger.Info("chunk ready",
		slog.Int("chunk", index),
		slog.String("text", res.Graphemes),
		slog.String("phonemes", res.Phonemes))

	if d.mode.Plays() {
		d.play(ctx, index, res.Samples, sampleRate)
	}
	if d.mode.Saves() {
		if err := d.save(index, res.Samples, sampleRate); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) play(ctx context.Context, index int, samples []float32, sampleRate int) {
	if d.wait {
		if err := d.player.Play(ctx, samples, sampleRate); err != nil {
			d.logger.Warn("audio playback failed", slog.Int("chunk", index), slogError(err))
		}
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.player.Play(ctx, samples, sampleRate); err != nil {
			d.logger.Warn("audio playback failed", slog.Int("chunk", index), slogError(err))
		}
	}()
}

func (d *Dispatcher) save(index int, samples []float32, sampleRate int) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(d.dir, fmt.Sprintf("%s_%d.wav", d.base, index))
	if err := audio.WriteWAV(path, samples, sampleRate); err != nil {
		return err
	}
	d.logger.Info("chunk saved", slog.Int("chunk", index), slog.String("path", path))
	return nil
}

// Close waits for any non-blocking playback still in flight.
func (d *Dispatcher) Close() {
	d.wg.Wait()
}

func slogError(err error) slog.Attr {
	return slog.String("error", err.Error())
}
