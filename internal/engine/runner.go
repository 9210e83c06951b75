package engine

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/narrolabs/narro/internal/audio"
	"github.com/narrolabs/narro/internal/config"
)

const (
	opDescribe = "describe"
	opGenerate = "generate"
)

// WorkerRequest is the JSON document written to a worker's stdin.
// Engines only populate the fields their backend understands. The
// cloning parameters are pointers: 0.0 is a valid value the worker
// must see, so only nil leaves the key out.
type WorkerRequest struct {
	Op              string   `json:"op"`
	Text            string   `json:"text,omitempty"`
	LangCode        string   `json:"lang_code,omitempty"`
	Voice           string   `json:"voice,omitempty"`
	Speed           float64  `json:"speed,omitempty"`
	Device          string   `json:"device,omitempty"`
	AudioPromptPath string   `json:"audio_prompt_path,omitempty"`
	Exaggeration    *float64 `json:"exaggeration,omitempty"`
	CFGWeight       *float64 `json:"cfg_weight,omitempty"`
}

// WorkerResponse is the single JSON document a worker answers with.
// PCM is 16-bit little-endian mono, base64 encoded.
type WorkerResponse struct {
	Graphemes  string `json:"graphemes"`
	Phonemes   string `json:"phonemes"`
	PCMBase64  string `json:"pcm_base64"`
	SampleRate int    `json:"sample_rate"`
}

// Runner executes worker operations for one engine variant.
type Runner interface {
	Describe(ctx context.Context) (WorkerResponse, error)
	Generate(ctx context.Context, req WorkerRequest) (WorkerResponse, error)
}

// newRunner builds the worker transport for an engine from its config:
// a subprocess in exec mode, an in-process fake in mock mode.
func newRunner(cfg config.WorkerConfig) (Runner, error) {
	switch cfg.Mode {
	case "mock":
		return newMockRunner(), nil
	case "exec":
		return newExecRunner(cfg.Command)
	default:
		return nil, fmt.Errorf("unknown worker mode %q", cfg.Mode)
	}
}

func decodeSamples(resp WorkerResponse) ([]float32, error) {
	pcm, err := base64.StdEncoding.DecodeString(resp.PCMBase64)
	if err != nil {
		return nil, fmt.Errorf("decode worker pcm: %w", err)
	}
	samples, err := audio.PCMToFloats(pcm)
	if err != nil {
		return nil, fmt.Errorf("decode worker pcm: %w", err)
	}
	return samples, nil
}
