package engine

import (
	"context"
	"errors"
	"testing"
)

func TestNewKokoroRejectsLanguage(t *testing.T) {
	_, err := NewKokoro("de", &fakeRunner{})
	var lerr *UnsupportedLanguageError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected UnsupportedLanguageError, got %v", err)
	}
	if len(lerr.Supported) != 9 {
		t.Fatalf("expected 9 supported languages, got %v", lerr.Supported)
	}
}

func TestKokoroSynthesize(t *testing.T) {
	f := &fakeRunner{resp: WorkerResponse{
		Graphemes:  "hello there",
		Phonemes:   "/həˈloʊ/",
		PCMBase64:  pcm64(0, 0.5, -0.5),
		SampleRate: 24000,
	}}
	e, err := NewKokoro("en-gb", f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := e.Synthesize(context.Background(), Request{
		Text:            "Hello there.",
		Voice:           "bm_george",
		Speed:           1.2,
		AudioPromptPath: "ref.wav",
		Exaggeration:    0.9,
		CFGWeight:       0.1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.requests) != 1 {
		t.Fatalf("expected one worker call, got %d", len(f.requests))
	}
	req := f.requests[0]
	if req.LangCode != "b" {
		t.Fatalf("expected lang code b, got %q", req.LangCode)
	}
	if req.Voice != "bm_george" || req.Speed != 1.2 {
		t.Fatalf("voice/speed not forwarded: %+v", req)
	}
	// Cloning parameters are inert for the catalog variant.
	if req.AudioPromptPath != "" || req.Exaggeration != nil || req.CFGWeight != nil {
		t.Fatalf("cloning parameters leaked into worker request: %+v", req)
	}

	if res.Graphemes != "hello there" {
		t.Fatalf("unexpected graphemes %q", res.Graphemes)
	}
	if res.Phonemes == "" {
		t.Fatal("expected phonemes from backend")
	}
	if len(res.Samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(res.Samples))
	}
}

func TestKokoroUnknownVoice(t *testing.T) {
	f := &fakeRunner{}
	e, err := NewKokoro("en-us", f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = e.Synthesize(context.Background(), Request{Text: "Hi.", Voice: "xx_nobody"})
	var verr *VoiceNotFoundError
	if !errors.As(err, &verr) {
		t.Fatalf("expected VoiceNotFoundError, got %v", err)
	}
	if verr.Voice != "xx_nobody" {
		t.Fatalf("unexpected voice in error: %q", verr.Voice)
	}
	if len(f.requests) != 0 {
		t.Fatal("worker must not be called for an unknown voice")
	}
}

func TestKokoroAcceptsEveryCatalogVoice(t *testing.T) {
	e, err := NewKokoro("en-gb", newMockRunner())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, id := range VoiceIDs() {
		if _, err := e.Synthesize(context.Background(), Request{Text: "Hi.", Voice: id}); err != nil {
			t.Fatalf("voice %q rejected: %v", id, err)
		}
	}
}

func TestKokoroSampleRate(t *testing.T) {
	e, err := NewKokoro("ja", &fakeRunner{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.SampleRate() != 24000 {
		t.Fatalf("expected 24000, got %d", e.SampleRate())
	}
}
