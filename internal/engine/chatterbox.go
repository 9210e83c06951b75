package engine

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

const chatterboxLanguage = "en-gb"

// chatterboxEngine is the voice-cloning variant: no voice catalog, no
// phonetic output, a single supported language. Voice and speed are
// silently inert; a reference audio prompt plus exaggeration and
// cfg_weight steer the cloned voice.
type chatterboxEngine struct {
	device     string
	sampleRate int
	runner     Runner
}

// NewChatterbox builds the voice-cloning variant. The inference device
// is resolved once here, and the worker is asked for its sample rate
// once via a describe handshake.
func NewChatterbox(ctx context.Context, language, device string, runner Runner) (Engine, error) {
	if language != chatterboxLanguage {
		return nil, &UnsupportedLanguageError{Language: language, Supported: []string{chatterboxLanguage}}
	}
	if device == "" {
		device = detectDevice()
	}
	resp, err := runner.Describe(ctx)
	if err != nil {
		return nil, fmt.Errorf("describe chatterbox worker: %w", err)
	}
	if resp.SampleRate <= 0 {
		return nil, fmt.Errorf("chatterbox worker reported sample rate %d", resp.SampleRate)
	}
	return &chatterboxEngine{device: device, sampleRate: resp.SampleRate, runner: runner}, nil
}

func (e *chatterboxEngine) Synthesize(ctx context.Context, req Request) (Result, error) {
	resp, err := e.runner.Generate(ctx, WorkerRequest{
		Text:            req.Text,
		Device:          e.device,
		AudioPromptPath: req.AudioPromptPath,
		Exaggeration:    &req.Exaggeration,
		CFGWeight:       &req.CFGWeight,
	})
	if err != nil {
		return Result{}, fmt.Errorf("chatterbox synthesis: %w", err)
	}
	samples, err := decodeSamples(resp)
	if err != nil {
		return Result{}, err
	}
	return Result{Graphemes: req.Text, Samples: samples}, nil
}

func (e *chatterboxEngine) SampleRate() int { return e.sampleRate }

// detectDevice picks the inference device: an NVIDIA GPU when the
// driver tooling is present, Apple silicon's Metal backend, else the
// CPU.
func detectDevice() string {
	if _, err := exec.LookPath("nvidia-smi"); err == nil {
		return "cuda"
	}
	if runtime.GOOS == "darwin" && runtime.GOARCH == "arm64" {
		return "mps"
	}
	return "cpu"
}
