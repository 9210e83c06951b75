package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/narrolabs/narro/internal/chunk"
	"github.com/narrolabs/narro/internal/engine"
)

// Sink consumes one synthesis result per chunk, in chunk order.
type Sink interface {
	Dispatch(ctx context.Context, index int, res engine.Result, sampleRate int) error
}

// Pipeline drives the engine over an ordered chunk list, strictly
// sequentially. Each result is handed to the sink before the next
// chunk's synthesis starts; the first error aborts the run.
type Pipeline struct {
	engine engine.Engine
	sink   Sink
	logger *slog.Logger
	tracer trace.Tracer
}

func New(eng engine.Engine, sink Sink, log *slog.Logger) *Pipeline {
	return &Pipeline{
		engine: eng,
		sink:   sink,
		logger: log.With(slog.String("component", "pipeline")),
		tracer: otel.Tracer("narro/pipeline"),
	}
}

// Run synthesizes every chunk in order with the given parameters.
func (p *Pipeline) Run(ctx context.Context, chunks []chunk.Chunk, req engine.Request) error {
	for _, c := range chunks {
		if err := p.processChunk(ctx, c, len(chunks), req); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) processChunk(ctx context.Context, c chunk.Chunk, total int, req engine.Request) error {
	ctx, span := p.tracer.Start(ctx, "pipeline.chunk",
		trace.WithAttributes(attribute.Int("chunk.index", c.Index)))
	defer span.End()

	p.logger.Info("synthesizing chunk",
		slog.Int("chunk", c.Index),
		slog.Int("total", total),
		slog.Int("characters", len(c.Text)))

	req.Text = c.Text
	res, err := p.engine.Synthesize(ctx, req)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("chunk %d: %w", c.Index, err)
	}
	if err := p.sink.Dispatch(ctx, c.Index, res, p.engine.SampleRate()); err != nil {
		span.RecordError(err)
		return fmt.Errorf("chunk %d: %w", c.Index, err)
	}
	return nil
}
