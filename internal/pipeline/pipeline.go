// Package pipeline runs the per-document extraction flow and the outer
// surfaces around it: page fetching and record rendering.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/verdict/internal/extract"
	"github.com/ppiankov/verdict/internal/extract/adapters"
	"github.com/ppiankov/verdict/internal/logging"
	"github.com/ppiankov/verdict/internal/metrics"
	"github.com/ppiankov/verdict/internal/model"
	"github.com/ppiankov/verdict/internal/normalize"
)

// Document outcome labels for metrics
const (
	StatusOK       = "ok"
	StatusRejected = "rejected"
)

// Pipeline orchestrates extraction for one document at a time. It holds no
// per-document state and is safe for concurrent use.
type Pipeline struct {
	extractor *extract.Extractor
	registry  *adapters.Registry
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithRegistry sets the external annotators. Without one the pipeline
// runs the pattern layer only.
func WithRegistry(r *adapters.Registry) Option {
	return func(p *Pipeline) { p.registry = r }
}

// WithMetrics records document and entity counters. A registry without
// its own metrics reports annotator calls to the same collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a pipeline
func New(opts ...Option) *Pipeline {
	p := &Pipeline{extractor: extract.NewExtractor()}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = adapters.NewRegistry(adapters.WithMetrics(p.metrics))
	} else if p.metrics != nil {
		p.registry.SetMetrics(p.metrics)
	}
	p.logger = logging.OrNop(p.logger)
	return p
}

// Registry returns the annotator registry
func (p *Pipeline) Registry() *adapters.Registry {
	return p.registry
}

// Process extracts one case record. The only error is an annotator
// contract violation; unavailable annotators contribute nothing.
func (p *Pipeline) Process(ctx context.Context, doc model.Document) (*model.CaseRecord, error) {
	start := time.Now()

	text := normalize.String(doc.Text)
	fields, ruling := p.extractor.Segment(text)
	pattern := p.extractor.PatternLayer(ruling)

	external, err := p.registry.Collect(ctx, ruling)
	if err != nil {
		p.metrics.ObserveDocument(StatusRejected)
		if errors.Is(err, adapters.ErrContractViolation) {
			return nil, fmt.Errorf("document %s: %w", doc.ID, err)
		}
		return nil, err
	}

	record := p.extractor.Assemble(doc.ID, fields, ruling, pattern, external...)

	p.metrics.ObserveRecord(record)
	p.metrics.ObserveDocument(StatusOK)
	p.logger.Debug("document extracted",
		zap.String("id", doc.ID),
		zap.Int("persons", len(record.Persons)),
		zap.Int("annotator_layers", len(external)),
		zap.Duration("elapsed", time.Since(start)))

	return record, nil
}
