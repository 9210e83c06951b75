package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/narrolabs/narro/internal/chunk"
	"github.com/narrolabs/narro/internal/engine"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// scriptedEngine and recordingSink share one event list so tests can
// assert the synthesize/dispatch interleaving.
type scriptedEngine struct {
	events *[]string
	failAt int
	calls  int
}

func (e *scriptedEngine) Synthesize(_ context.Context, req engine.Request) (engine.Result, error) {
	index := e.calls
	e.calls++
	*e.events = append(*e.events, fmt.Sprintf("synth:%d", index))
	if index == e.failAt {
		return engine.Result{}, errors.New("backend exploded")
	}
	return engine.Result{Graphemes: req.Text, Phonemes: "/x/", Samples: []float32{0.1}}, nil
}

func (e *scriptedEngine) SampleRate() int { return 24000 }

type recordingSink struct {
	events *[]string
	rates  []int
	err    error
}

func (s *recordingSink) Dispatch(_ context.Context, index int, _ engine.Result, sampleRate int) error {
	*s.events = append(*s.events, fmt.Sprintf("dispatch:%d", index))
	s.rates = append(s.rates, sampleRate)
	return s.err
}

func chunksOf(texts ...string) []chunk.Chunk {
	chunks := make([]chunk.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = chunk.Chunk{Index: i, Text: text}
	}
	return chunks
}

func TestRunInterleavesSynthesisAndDispatch(t *testing.T) {
	var events []string
	eng := &scriptedEngine{events: &events, failAt: -1}
	sink := &recordingSink{events: &events}
	p := New(eng, sink, newLogger())

	err := p.Run(context.Background(), chunksOf("One.", "Two.", "Three."), engine.Request{Voice: "bm_george"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "synth:0 dispatch:0 synth:1 dispatch:1 synth:2 dispatch:2"
	if got := strings.Join(events, " "); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for i, rate := range sink.rates {
		if rate != 24000 {
			t.Fatalf("dispatch %d got rate %d", i, rate)
		}
	}
}

func TestRunAbortsOnSynthesisError(t *testing.T) {
	var events []string
	eng := &scriptedEngine{events: &events, failAt: 1}
	sink := &recordingSink{events: &events}
	p := New(eng, sink, newLogger())

	err := p.Run(context.Background(), chunksOf("One.", "Two.", "Three."), engine.Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "chunk 1") {
		t.Fatalf("error does not name the failing chunk: %v", err)
	}

	want := "synth:0 dispatch:0 synth:1"
	if got := strings.Join(events, " "); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRunAbortsOnSinkError(t *testing.T) {
	var events []string
	eng := &scriptedEngine{events: &events, failAt: -1}
	sink := &recordingSink{events: &events, err: errors.New("disk full")}
	p := New(eng, sink, newLogger())

	err := p.Run(context.Background(), chunksOf("One.", "Two."), engine.Request{})
	if err == nil {
		t.Fatal("expected error")
	}

	want := "synth:0 dispatch:0"
	if got := strings.Join(events, " "); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRunNoChunks(t *testing.T) {
	var events []string
	eng := &scriptedEngine{events: &events, failAt: -1}
	sink := &recordingSink{events: &events}
	p := New(eng, sink, newLogger())

	if err := p.Run(context.Background(), nil, engine.Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no activity, got %v", events)
	}
}
