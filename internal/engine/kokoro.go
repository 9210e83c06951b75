package engine

import (
	"context"
	"fmt"
)

const kokoroSampleRate = 24000

// kokoroEngine is the catalog-voice variant: voices come from a fixed
// catalog, nine languages are supported, and the backend reports both
// graphemes and phonemes. Cloning parameters are inert.
type kokoroEngine struct {
	langCode string
	runner   Runner
}

// NewKokoro builds the catalog-voice variant for one of the supported
// language selectors.
func NewKokoro(language string, runner Runner) (Engine, error) {
	code, ok := languageCodes[language]
	if !ok {
		return nil, &UnsupportedLanguageError{Language: language, Supported: SupportedLanguages()}
	}
	return &kokoroEngine{langCode: code, runner: runner}, nil
}

func (e *kokoroEngine) Synthesize(ctx context.Context, req Request) (Result, error) {
	if _, ok := LookupVoice(req.Voice); !ok {
		return Result{}, &VoiceNotFoundError{Voice: req.Voice, Available: VoiceIDs()}
	}
	resp, err := e.runner.Generate(ctx, WorkerRequest{
		Text:     req.Text,
		LangCode: e.langCode,
		Voice:    req.Voice,
		Speed:    req.Speed,
	})
	if err != nil {
		return Result{}, fmt.Errorf("kokoro synthesis: %w", err)
	}
	samples, err := decodeSamples(resp)
	if err != nil {
		return Result{}, err
	}
	return Result{Graphemes: resp.Graphemes, Phonemes: resp.Phonemes, Samples: samples}, nil
}

func (e *kokoroEngine) SampleRate() int { return kokoroSampleRate }
