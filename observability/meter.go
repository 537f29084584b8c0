package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/coursequery/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name reported on every metric.
	ServiceName string
	// ServiceVersion is the build version of the binary.
	ServiceVersion string
	// Environment is the deployment environment (development, staging, production).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows plaintext connections to the collector.
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns defaults for a local collector.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter installs a global meter provider exporting over OTLP HTTP.
// The returned provider must be shut down on exit to flush pending data.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Get("observability").Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric instrument names.
const (
	MetricEvaluations        = "coursequery.evaluations"
	MetricEvaluationDuration = "coursequery.evaluation.duration"
	MetricElements           = "coursequery.elements"
	MetricErrors             = "coursequery.errors"
)

// Metrics holds the instruments recorded around query evaluation.
type Metrics struct {
	evaluations        metric.Int64Counter
	evaluationDuration metric.Float64Histogram
	elements           metric.Int64Counter
	errors             metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	evaluations, err := meter.Int64Counter(MetricEvaluations,
		metric.WithDescription("Total number of query evaluations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricEvaluations, err)
	}

	evaluationDuration, err := meter.Float64Histogram(MetricEvaluationDuration,
		metric.WithDescription("Duration of query evaluations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricEvaluationDuration, err)
	}

	elements, err := meter.Int64Counter(MetricElements,
		metric.WithDescription("Elements yielded by query evaluations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricElements, err)
	}

	errorTotal, err := meter.Int64Counter(MetricErrors,
		metric.WithDescription("Failed query evaluations by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricErrors, err)
	}

	return &Metrics{
		evaluations:        evaluations,
		evaluationDuration: evaluationDuration,
		elements:           elements,
		errors:             errorTotal,
	}, nil
}

// RecordEvaluation records one finished evaluation of the named query.
func (m *Metrics) RecordEvaluation(ctx context.Context, query, status string, duration time.Duration) {
	m.evaluations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("query", query),
		attribute.String("status", status),
	))
	m.evaluationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("query", query),
	))
}

// RecordElements adds n yielded elements for the named query.
func (m *Metrics) RecordElements(ctx context.Context, query string, n int64) {
	if n <= 0 {
		return
	}
	m.elements.Add(ctx, n, metric.WithAttributes(attribute.String("query", query)))
}

// RecordError records a failed evaluation by error code.
func (m *Metrics) RecordError(ctx context.Context, query, code string) {
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("query", query),
		attribute.String("code", code),
	))
}
