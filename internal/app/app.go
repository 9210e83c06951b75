package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/narrolabs/narro/internal/audio"
	"github.com/narrolabs/narro/internal/chunk"
	"github.com/narrolabs/narro/internal/config"
	"github.com/narrolabs/narro/internal/engine"
	"github.com/narrolabs/narro/internal/input"
	"github.com/narrolabs/narro/internal/output"
	"github.com/narrolabs/narro/internal/pipeline"
	"github.com/narrolabs/narro/internal/stitch"
)

// Options are the parameters for one synthesis run, resolved from CLI
// flags layered over the configured defaults.
type Options struct {
	Text              string    // literal text argument
	InputFile         string    // .txt or .md path
	Stdin             io.Reader // nil when attached to a terminal
	OutputDir         string
	Filename          string
	Language          string
	Voice             string
	Speed             float64
	SplitPattern      string
	SentencesPerChunk int
	Mode              string
	WaitAfterPlay     bool
	Stitch            bool
	Engine            string
	Device            string
	AudioPromptPath   string
	Exaggeration      float64
	CFGWeight         float64
}

// NewLogger builds the process logger from telemetry config. Logs go
// to stderr so stdout stays clean.
func NewLogger(cfg config.TelemetryConfig) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// Run executes one synthesis run: resolve input, chunk it, synthesize
// every chunk in order, dispatch each result, then optionally stitch
// the saved files.
func Run(ctx context.Context, cfg config.Config, opts Options, logger *slog.Logger) error {
	shutdownTelemetry, err := setupTelemetry(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to setup telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logger.Warn("telemetry shutdown error", slogError(err))
		}
	}()

	runID := uuid.NewString()
	logger = logger.With(slog.String("run_id", runID))

	ctx, span := otel.Tracer("narro/app").Start(ctx, "narro.run",
		trace.WithAttributes(attribute.String("run.id", runID)))
	defer span.End()

	mode, err := output.ParseMode(opts.Mode)
	if err != nil {
		return err
	}
	engineType, err := engine.ParseType(opts.Engine)
	if err != nil {
		return err
	}
	if opts.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", opts.Speed)
	}
	if opts.Exaggeration < 0 || opts.Exaggeration > 1 {
		return fmt.Errorf("exaggeration must be in [0, 1], got %v", opts.Exaggeration)
	}
	if opts.CFGWeight < 0 || opts.CFGWeight > 1 {
		return fmt.Errorf("cfg weight must be in [0, 1], got %v", opts.CFGWeight)
	}

	text, err := input.Resolve(opts.Text, opts.InputFile, opts.Stdin)
	if err != nil {
		return err
	}

	// A file input names the output after itself unless the user chose
	// a filename.
	filename := opts.Filename
	if filename == "output" && opts.InputFile != "" {
		filename = input.Stem(opts.InputFile)
	}

	chunks, err := chunk.Split(text, opts.SplitPattern, opts.SentencesPerChunk)
	if err != nil {
		return err
	}
	logger.Info("input chunked",
		slog.Int("chunks", len(chunks)),
		slog.String("engine", opts.Engine),
		slog.String("mode", mode.String()))

	eng, err := engine.New(ctx, engineType, opts.Language, opts.Device, cfg.Engines)
	if err != nil {
		return err
	}

	player, err := audio.NewPlayer(cfg.Player.Command)
	if err != nil {
		return err
	}

	dispatcher := output.NewDispatcher(mode, opts.OutputDir, filename, opts.WaitAfterPlay, player, logger)
	defer dispatcher.Close()

	req := engine.Request{
		Voice:           opts.Voice,
		Speed:           opts.Speed,
		AudioPromptPath: opts.AudioPromptPath,
		Exaggeration:    opts.Exaggeration,
		CFGWeight:       opts.CFGWeight,
	}
	if err := pipeline.New(eng, dispatcher, logger).Run(ctx, chunks, req); err != nil {
		return err
	}

	if opts.Stitch && mode.Saves() {
		stitch.New(cfg.Stitch.FFmpegPath, logger).Run(ctx, opts.OutputDir, filename)
	}
	return nil
}

func slogError(err error) slog.Attr {
	return slog.String("error", err.Error())
}
