// Package observability provides OpenTelemetry tracing and metrics for query
// evaluation. Export is opt-in: without InitTracer or InitMeter the global
// providers are no-ops and nothing leaves the process.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanEvaluate)
//	defer span.End()
//
// Metrics:
//
//	metrics, err := observability.NewMetrics(observability.Meter("coursequery"))
//	metrics.RecordEvaluation(ctx, "filter-by-level", "ok", duration)
package observability
