package eval

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/coursequery/errors"
	"github.com/kbukum/coursequery/logger"
	"github.com/kbukum/coursequery/observability"
	"github.com/kbukum/coursequery/query"
)

// Evaluator drives query evaluations and reports each one as a run with an
// ID, a span, metrics and log lines.
type Evaluator struct {
	log     *logger.Logger
	tracer  trace.Tracer
	metrics *observability.Metrics
	newID   func() string
	now     func() time.Time
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger. Defaults to the "eval" component logger.
func WithLogger(l *logger.Logger) Option {
	return func(e *Evaluator) { e.log = l }
}

// WithTracer sets the tracer. Defaults to the global provider's tracer.
func WithTracer(t trace.Tracer) Option {
	return func(e *Evaluator) { e.tracer = t }
}

// WithMetrics enables metric recording.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Evaluator) { e.metrics = m }
}

// WithIDGenerator replaces the run ID source.
func WithIDGenerator(fn func() string) Option {
	return func(e *Evaluator) { e.newID = fn }
}

// New creates an Evaluator.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		newID: func() string { return uuid.NewString() },
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.Get("eval")
	}
	if e.tracer == nil {
		e.tracer = observability.DefaultTracer()
	}
	return e
}

// Stats describes one finished evaluation.
type Stats struct {
	RunID    string        `json:"run_id"`
	Name     string        `json:"name"`
	Count    int           `json:"count"`
	Duration time.Duration `json:"duration"`
}

type run struct {
	ev    *Evaluator
	ctx   context.Context
	span  trace.Span
	log   *logger.Logger
	start time.Time
	stats Stats
}

func (e *Evaluator) begin(ctx context.Context, name string) *run {
	runID := e.newID()
	ctx = logger.ContextWithRunID(ctx, runID)
	ctx, span := e.tracer.Start(ctx, observability.SpanEvaluate, trace.WithAttributes(
		attribute.String(observability.AttrQueryName, name),
		attribute.String(observability.AttrRunID, runID),
	))
	r := &run{
		ev:    e,
		ctx:   ctx,
		span:  span,
		log:   e.log.WithContext(ctx).WithFields(logger.Fields(logger.FieldQuery, name)),
		start: e.now(),
		stats: Stats{RunID: runID, Name: name},
	}
	r.log.Debug("evaluation started")
	return r
}

func (r *run) finish(err error) Stats {
	r.stats.Duration = r.ev.now().Sub(r.start)
	status := "ok"
	if err != nil {
		status = "error"
	}

	r.span.SetAttributes(
		attribute.Int(observability.AttrElementCount, r.stats.Count),
		attribute.String(observability.AttrStatus, status),
	)
	fields := logger.Fields(logger.FieldCount, r.stats.Count, logger.FieldStatus, status)
	fields = logger.MergeWithDuration(fields, r.stats.Duration)

	if err != nil {
		code := errors.CodeOf(err)
		r.span.RecordError(err)
		r.span.SetStatus(otelcodes.Error, err.Error())
		r.span.SetAttributes(attribute.String(observability.AttrErrorCode, string(code)))
		fields[logger.FieldCode] = string(code)
		fields = logger.MergeWithError(fields, err)
		if errors.IsEvaluationCode(code) {
			r.log.Warn("evaluation failed", fields)
		} else {
			r.log.Error("evaluation failed", fields)
		}
	} else {
		r.log.Info("evaluation finished", fields)
	}
	r.span.End()

	if m := r.ev.metrics; m != nil {
		m.RecordEvaluation(r.ctx, r.stats.Name, status, r.stats.Duration)
		m.RecordElements(r.ctx, r.stats.Name, int64(r.stats.Count))
		if err != nil {
			m.RecordError(r.ctx, r.stats.Name, string(errors.CodeOf(err)))
		}
	}
	return r.stats
}

// Run evaluates seq and calls fn for every element in order. The context
// passed to fn carries the run's span and run ID.
func Run[T any](ctx context.Context, ev *Evaluator, name string, seq *query.Sequence[T], fn func(context.Context, T) error) (Stats, error) {
	r := ev.begin(ctx, name)
	err := query.ForEach(r.ctx, seq, func(ctx context.Context, v T) error {
		r.stats.Count++
		return fn(ctx, v)
	})
	return r.finish(err), err
}

// Collect evaluates seq into a slice. On error the elements pulled before the
// failure are returned alongside it.
func Collect[T any](ctx context.Context, ev *Evaluator, name string, seq *query.Sequence[T]) ([]T, Stats, error) {
	r := ev.begin(ctx, name)
	items, err := query.Collect(r.ctx, seq)
	r.stats.Count = len(items)
	return items, r.finish(err), err
}

// Scalar runs a single-value terminal such as query.First or query.Average.
// A successful scalar run counts one element.
func Scalar[T any](ctx context.Context, ev *Evaluator, name string, fn func(context.Context) (T, error)) (T, Stats, error) {
	r := ev.begin(ctx, name)
	v, err := fn(r.ctx)
	if err == nil {
		r.stats.Count = 1
	}
	return v, r.finish(err), err
}
