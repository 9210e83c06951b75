package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/narrolabs/narro/internal/config"
)

// Type identifies a synthesis backend.
type Type string

const (
	TypeKokoro     Type = "kokoro"
	TypeChatterbox Type = "chatterbox"
)

// ParseType validates an engine selector, case-insensitively.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "kokoro":
		return TypeKokoro, nil
	case "chatterbox":
		return TypeChatterbox, nil
	default:
		return "", fmt.Errorf("invalid engine %q: must be kokoro or chatterbox", s)
	}
}

// Request carries the per-chunk synthesis parameters. Each variant
// ignores the parameters its backend does not support.
type Request struct {
	Text            string
	Voice           string
	Speed           float64
	AudioPromptPath string
	Exaggeration    float64
	CFGWeight       float64
}

// Result is the synthesized audio for one request. Samples are mono
// amplitudes in [-1, 1]. Phonemes is empty when the backend has no
// phonetic output.
type Result struct {
	Graphemes string
	Phonemes  string
	Samples   []float32
}

// Engine is the uniform capability over synthesis backends.
type Engine interface {
	Synthesize(ctx context.Context, req Request) (Result, error)
	SampleRate() int
}

// VoiceNotFoundError reports a voice id missing from the catalog.
type VoiceNotFoundError struct {
	Voice     string
	Available []string
}

func (e *VoiceNotFoundError) Error() string {
	return fmt.Sprintf("voice %q not found, available voices: %s", e.Voice, strings.Join(e.Available, ", "))
}

// UnsupportedLanguageError reports a language an engine cannot speak.
type UnsupportedLanguageError struct {
	Language  string
	Supported []string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language %q, must be one of: %s", e.Language, strings.Join(e.Supported, ", "))
}

// New constructs the configured engine variant. The language and, for
// the cloning variant, the inference device and sample rate are fixed
// here for the engine's lifetime.
func New(ctx context.Context, typ Type, language, device string, cfg config.EnginesConfig) (Engine, error) {
	switch typ {
	case TypeKokoro:
		runner, err := newRunner(cfg.Kokoro)
		if err != nil {
			return nil, err
		}
		return NewKokoro(language, runner)
	case TypeChatterbox:
		runner, err := newRunner(cfg.Chatterbox)
		if err != nil {
			return nil, err
		}
		return NewChatterbox(ctx, language, device, runner)
	default:
		return nil, fmt.Errorf("invalid engine %q: must be kokoro or chatterbox", string(typ))
	}
}
