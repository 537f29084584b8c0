// Package eval drives query evaluation with run bookkeeping.
//
// Sequences from package query evaluate themselves; eval wraps that with a
// run ID, an OpenTelemetry span, optional metrics and structured logs:
//
//	ev := eval.New(eval.WithMetrics(metrics))
//	courses, stats, err := eval.Collect(ctx, ev, "beginner-courses", seq)
//	price, _, err := eval.Scalar(ctx, ev, "max-price", func(ctx context.Context) (float64, error) {
//	    return query.Max(ctx, cat.Courses(), func(c model.Course) float64 { return c.FullPrice })
//	})
//
// Failures are returned unchanged; their errors.AppError code is recorded on
// the span, the log line and the error counter.
package eval
