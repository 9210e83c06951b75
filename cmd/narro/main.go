package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/narrolabs/narro/internal/app"
	"github.com/narrolabs/narro/internal/config"
)

var version = "0.1.0"

func main() {
	_ = godotenv.Load()

	var (
		opts        app.Options
		configPath  string
		showVersion bool
	)

	defaults := config.Default().Defaults

	flag.StringVar(&opts.InputFile, "input", "", "Path to a .txt or .md file to narrate")
	flag.StringVar(&opts.OutputDir, "output-dir", ".", "Directory for saved chunk files")
	flag.StringVar(&opts.Filename, "filename", "output", "Base name for saved chunk files")
	flag.StringVar(&opts.Language, "language", defaults.Language, "Language selector, e.g. en-gb")
	flag.StringVar(&opts.Voice, "voice", defaults.Voice, "Voice identifier")
	flag.Float64Var(&opts.Speed, "speed", defaults.Speed, "Speech speed multiplier")
	flag.StringVar(&opts.SplitPattern, "split-pattern", "", "Regular expression that overrides sentence chunking")
	flag.IntVar(&opts.SentencesPerChunk, "sentences-per-chunk", defaults.SentencesPerChunk, "Sentences per synthesis chunk")
	flag.StringVar(&opts.Mode, "mode", defaults.Mode, "Output mode: play, save, or both")
	flag.BoolVar(&opts.WaitAfterPlay, "wait", defaults.WaitAfterPlay, "Wait for playback to finish before the next chunk")
	flag.BoolVar(&opts.Stitch, "stitch", defaults.Stitch, "Merge saved chunks into one file with ffmpeg")
	flag.StringVar(&opts.Engine, "engine", defaults.Engine, "Synthesis engine: kokoro or chatterbox")
	flag.StringVar(&opts.Device, "device", "", "Compute device for chatterbox (cuda, mps, cpu)")
	flag.StringVar(&opts.AudioPromptPath, "audio-prompt", "", "Reference audio for chatterbox voice cloning")
	flag.Float64Var(&opts.Exaggeration, "exaggeration", defaults.Exaggeration, "Chatterbox emotion exaggeration, 0 to 1")
	flag.Float64Var(&opts.CFGWeight, "cfg-weight", defaults.CFGWeight, "Chatterbox guidance weight, 0 to 1")
	flag.StringVar(&configPath, "config", "narro.yaml", "Path to configuration file")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		return
	}

	if flag.NArg() > 1 {
		fatal(fmt.Errorf("expected at most one text argument, got %d (quote the text)", flag.NArg()))
	}
	opts.Text = flag.Arg(0)

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := loadConfig(configPath, set["config"])
	if err != nil {
		fatal(err)
	}

	// Config-file and env defaults apply only to flags the user left alone.
	if !set["engine"] {
		opts.Engine = cfg.Defaults.Engine
	}
	if !set["language"] {
		opts.Language = cfg.Defaults.Language
	}
	if !set["voice"] {
		opts.Voice = cfg.Defaults.Voice
	}
	if !set["speed"] {
		opts.Speed = cfg.Defaults.Speed
	}
	if !set["sentences-per-chunk"] {
		opts.SentencesPerChunk = cfg.Defaults.SentencesPerChunk
	}
	if !set["mode"] {
		opts.Mode = cfg.Defaults.Mode
	}
	if !set["wait"] {
		opts.WaitAfterPlay = cfg.Defaults.WaitAfterPlay
	}
	if !set["stitch"] {
		opts.Stitch = cfg.Defaults.Stitch
	}
	if !set["exaggeration"] {
		opts.Exaggeration = cfg.Defaults.Exaggeration
	}
	if !set["cfg-weight"] {
		opts.CFGWeight = cfg.Defaults.CFGWeight
	}

	if stdinPiped() {
		opts.Stdin = os.Stdin
	}

	logger := app.NewLogger(cfg.Telemetry)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, opts, logger); err != nil {
		fatal(err)
	}
}

// loadConfig tolerates a missing file at the default path; an explicit
// -config pointing at a missing file is an error.
func loadConfig(path string, explicit bool) (config.Config, error) {
	if !explicit {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return config.Load("")
		}
	}
	return config.Load(path)
}

func stdinPiped() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
