package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type TelemetryConfig struct {
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
	Tracing      bool   `yaml:"tracing"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	OTLPInsecure bool   `yaml:"otlp_insecure"`
}

// DefaultsConfig carries the run parameters applied when the matching CLI
// flag is not set. It is the single source of synthesis defaults; nothing
// else in the program hard-codes a voice or a speed.
type DefaultsConfig struct {
	Engine            string  `yaml:"engine"`
	Language          string  `yaml:"language"`
	Voice             string  `yaml:"voice"`
	Speed             float64 `yaml:"speed"`
	SentencesPerChunk int     `yaml:"sentences_per_chunk"`
	Mode              string  `yaml:"mode"`
	WaitAfterPlay     bool    `yaml:"wait_after_play"`
	Stitch            bool    `yaml:"stitch"`
	Exaggeration      float64 `yaml:"exaggeration"`
	CFGWeight         float64 `yaml:"cfg_weight"`
}

// WorkerConfig describes how one synthesis backend is invoked.
type WorkerConfig struct {
	Mode    string `yaml:"mode"` // mock, exec
	Command string `yaml:"command"`
}

type EnginesConfig struct {
	Kokoro     WorkerConfig `yaml:"kokoro"`
	Chatterbox WorkerConfig `yaml:"chatterbox"`
}

type PlayerConfig struct {
	Command string `yaml:"command"`
}

type StitchConfig struct {
	FFmpegPath string `yaml:"ffmpeg_path"`
}

type Config struct {
	Environment string          `yaml:"environment"`
	Telemetry   TelemetryConfig `yaml:"telemetry"`
	Defaults    DefaultsConfig  `yaml:"defaults"`
	Engines     EnginesConfig   `yaml:"engines"`
	Player      PlayerConfig    `yaml:"player"`
	Stitch      StitchConfig    `yaml:"stitch"`
}

func Default() Config {
	return Config{
		Environment: "development",
		Telemetry: TelemetryConfig{
			LogLevel:     "info",
			LogFormat:    "text",
			Tracing:      false,
			OTLPEndpoint: "",
			OTLPInsecure: true,
		},
		Defaults: DefaultsConfig{
			Engine:            "kokoro",
			Language:          "en-gb",
			Voice:             "bm_george",
			Speed:             1.0,
			SentencesPerChunk: 3,
			Mode:              "play",
			WaitAfterPlay:     true,
			Stitch:            true,
			Exaggeration:      0.5,
			CFGWeight:         0.5,
		},
		Engines: EnginesConfig{
			Kokoro: WorkerConfig{
				Mode:    "exec",
				Command: "narro-kokoro-worker",
			},
			Chatterbox: WorkerConfig{
				Mode:    "exec",
				Command: "narro-chatterbox-worker",
			},
		},
		Player: PlayerConfig{
			Command: "",
		},
		Stitch: StitchConfig{
			FFmpegPath: "ffmpeg",
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Environment, "NARRO_ENVIRONMENT")
	overrideString(&cfg.Telemetry.LogLevel, "NARRO_TELEMETRY_LOG_LEVEL")
	overrideString(&cfg.Telemetry.LogFormat, "NARRO_TELEMETRY_LOG_FORMAT")
	overrideBool(&cfg.Telemetry.Tracing, "NARRO_TELEMETRY_TRACING")
	overrideString(&cfg.Telemetry.OTLPEndpoint, "NARRO_TELEMETRY_OTLP_ENDPOINT")
	overrideBool(&cfg.Telemetry.OTLPInsecure, "NARRO_TELEMETRY_OTLP_INSECURE")
	overrideString(&cfg.Defaults.Engine, "NARRO_DEFAULT_ENGINE")
	overrideString(&cfg.Defaults.Language, "NARRO_DEFAULT_LANGUAGE")
	overrideString(&cfg.Defaults.Voice, "NARRO_DEFAULT_VOICE")
	overrideFloat(&cfg.Defaults.Speed, "NARRO_DEFAULT_SPEED")
	overrideInt(&cfg.Defaults.SentencesPerChunk, "NARRO_DEFAULT_SENTENCES_PER_CHUNK")
	overrideString(&cfg.Defaults.Mode, "NARRO_DEFAULT_MODE")
	overrideBool(&cfg.Defaults.WaitAfterPlay, "NARRO_DEFAULT_WAIT_AFTER_PLAY")
	overrideBool(&cfg.Defaults.Stitch, "NARRO_DEFAULT_STITCH")
	overrideFloat(&cfg.Defaults.Exaggeration, "NARRO_DEFAULT_EXAGGERATION")
	overrideFloat(&cfg.Defaults.CFGWeight, "NARRO_DEFAULT_CFG_WEIGHT")
	overrideString(&cfg.Engines.Kokoro.Mode, "NARRO_KOKORO_MODE")
	overrideString(&cfg.Engines.Kokoro.Command, "NARRO_KOKORO_COMMAND")
	overrideString(&cfg.Engines.Chatterbox.Mode, "NARRO_CHATTERBOX_MODE")
	overrideString(&cfg.Engines.Chatterbox.Command, "NARRO_CHATTERBOX_COMMAND")
	overrideString(&cfg.Player.Command, "NARRO_PLAYER_COMMAND")
	overrideString(&cfg.Stitch.FFmpegPath, "NARRO_FFMPEG_PATH")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func overrideFloat(target *float64, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			*target = parsed
		}
	}
}

func validate(cfg Config) error {
	switch cfg.Telemetry.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("telemetry.log_level must be one of debug|info|warn|error")
	}
	switch cfg.Telemetry.LogFormat {
	case "text", "json":
	default:
		return errors.New("telemetry.log_format must be one of text|json")
	}
	switch cfg.Defaults.Engine {
	case "kokoro", "chatterbox":
	default:
		return errors.New("defaults.engine must be one of kokoro|chatterbox")
	}
	switch strings.ToLower(cfg.Defaults.Mode) {
	case "play", "save", "both":
	default:
		return errors.New("defaults.mode must be one of play|save|both")
	}
	if cfg.Defaults.Speed <= 0 {
		return errors.New("defaults.speed must be positive")
	}
	if cfg.Defaults.SentencesPerChunk < 1 {
		return errors.New("defaults.sentences_per_chunk must be >= 1")
	}
	if cfg.Defaults.Exaggeration < 0 || cfg.Defaults.Exaggeration > 1 {
		return errors.New("defaults.exaggeration must be in [0, 1]")
	}
	if cfg.Defaults.CFGWeight < 0 || cfg.Defaults.CFGWeight > 1 {
		return errors.New("defaults.cfg_weight must be in [0, 1]")
	}
	if err := validateWorker("engines.kokoro", cfg.Engines.Kokoro); err != nil {
		return err
	}
	if err := validateWorker("engines.chatterbox", cfg.Engines.Chatterbox); err != nil {
		return err
	}
	if cfg.Stitch.FFmpegPath == "" {
		return errors.New("stitch.ffmpeg_path must not be empty")
	}
	return nil
}

func validateWorker(name string, cfg WorkerConfig) error {
	switch cfg.Mode {
	case "mock", "exec":
	default:
		return fmt.Errorf("%s.mode must be one of mock|exec", name)
	}
	if cfg.Mode == "exec" && cfg.Command == "" {
		return fmt.Errorf("%s.command must be set when mode=exec", name)
	}
	return nil
}
