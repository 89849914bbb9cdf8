package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/verdict/internal/logging"
	"github.com/ppiankov/verdict/internal/metrics"
	"github.com/ppiankov/verdict/internal/model"
	"github.com/ppiankov/verdict/internal/normalize"
)

type entry struct {
	annotator Annotator
	enabled   bool
}

// Registry holds annotators in priority order
type Registry struct {
	entries     []*entry
	callTimeout time.Duration
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithCallTimeout bounds each annotator call, including first-use loads
func WithCallTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) { r.callTimeout = d }
}

// WithLogger sets the logger for fail-open events
func WithLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) { r.logger = logging.OrNop(l) }
}

// WithMetrics records call durations and failures
func WithMetrics(m *metrics.Metrics) RegistryOption {
	return func(r *Registry) { r.metrics = m }
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetMetrics attaches m when the registry was built without metrics.
// It reports whether m is now in use. Call it before the first Collect.
func (r *Registry) SetMetrics(m *metrics.Metrics) bool {
	if r.metrics != nil {
		return r.metrics == m
	}
	r.metrics = m
	return true
}

// Register appends an annotator at the lowest priority so far. A name that
// is already registered is replaced in place.
func (r *Registry) Register(a Annotator, enabled bool) {
	for _, e := range r.entries {
		if e.annotator.Name() == a.Name() {
			e.annotator, e.enabled = a, enabled
			return
		}
	}
	r.entries = append(r.entries, &entry{annotator: a, enabled: enabled})
}

// SetEnabled toggles an annotator by name and reports whether it exists
func (r *Registry) SetEnabled(name string, enabled bool) bool {
	for _, e := range r.entries {
		if e.annotator.Name() == name {
			e.enabled = enabled
			return true
		}
	}
	return false
}

// Enabled returns the names of enabled annotators in priority order
func (r *Registry) Enabled() []string {
	var names []string
	for _, e := range r.entries {
		if e.enabled {
			names = append(names, e.annotator.Name())
		}
	}
	return names
}

// Collect runs every enabled annotator over text and returns one span set
// per annotator, in priority order. Unavailable annotators contribute an
// empty set. A contract violation aborts collection with an error.
func (r *Registry) Collect(ctx context.Context, text string) ([]model.Spans, error) {
	layers := make([]model.Spans, 0, len(r.entries))
	for _, e := range r.entries {
		if !e.enabled {
			continue
		}
		spans, err := r.collectOne(ctx, e.annotator, text)
		if err != nil {
			return nil, err
		}
		layers = append(layers, spans)
	}
	return layers, nil
}

func (r *Registry) collectOne(ctx context.Context, a Annotator, text string) (model.Spans, error) {
	name := a.Name()
	spans := model.Spans{}

	callCtx := ctx
	if r.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.callTimeout)
		defer cancel()
	}

	start := time.Now()
	annotations, err := a.Annotate(callCtx, text)
	r.metrics.ObserveAnnotator(name, time.Since(start))

	if err != nil {
		if errors.Is(err, ErrContractViolation) {
			return nil, fmt.Errorf("annotator %s: %w", name, err)
		}
		reason := "unavailable"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "timeout"
		}
		r.metrics.AnnotatorFailed(name, reason)
		r.logger.Warn("annotator contributed nothing",
			zap.String("annotator", name),
			zap.String("reason", reason),
			zap.Error(err))
		return spans, nil
	}

	for _, ann := range annotations {
		if err := ann.Validate(); err != nil {
			return nil, fmt.Errorf("annotator %s: %w", name, err)
		}
		kind, ok := MapLabel(ann.Label)
		if !ok {
			continue
		}
		value := normalize.String(ann.Text)
		if value == "" {
			continue
		}
		spans.Add(model.EntitySpan{
			Text:   value,
			Kind:   kind,
			Start:  ann.Start,
			Layer:  model.LayerExternal,
			Source: name,
		})
	}

	r.logger.Debug("annotator finished",
		zap.String("annotator", name),
		zap.Int("annotations", len(annotations)),
		zap.Int("kept", spans.Count()))
	return spans, nil
}
