package engine

import (
	"context"
	"encoding/base64"
	"math"
	"strings"

	"github.com/narrolabs/narro/internal/audio"
)

const mockSampleRate = 24000

// mockRunner fabricates deterministic audio without a model. Selected
// with worker mode "mock"; used by tests and dry runs.
type mockRunner struct{}

func newMockRunner() *mockRunner { return &mockRunner{} }

func (m *mockRunner) Describe(ctx context.Context) (WorkerResponse, error) {
	if err := ctx.Err(); err != nil {
		return WorkerResponse{}, err
	}
	return WorkerResponse{SampleRate: mockSampleRate}, nil
}

func (m *mockRunner) Generate(ctx context.Context, req WorkerRequest) (WorkerResponse, error) {
	if err := ctx.Err(); err != nil {
		return WorkerResponse{}, err
	}
	// 10ms of tone per input character, so duration tracks text length.
	count := len(req.Text) * mockSampleRate / 100
	if count == 0 {
		count = mockSampleRate / 100
	}
	samples := make([]float32, count)
	for i := range samples {
		samples[i] = float32(0.2 * math.Sin(2*math.Pi*440*float64(i)/mockSampleRate))
	}
	return WorkerResponse{
		Graphemes:  req.Text,
		Phonemes:   "/" + strings.ToLower(strings.TrimRight(req.Text, ".!?")) + "/",
		PCMBase64:  base64.StdEncoding.EncodeToString(audio.FloatsToPCM(samples)),
		SampleRate: mockSampleRate,
	}, nil
}
