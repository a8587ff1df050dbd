package observability

import (
	"context"
	"time"

	"consultancy-workers/internal/common/logger"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Observability owns the OpenTelemetry meter and tracer providers. A nil
// *Observability is valid and records nothing.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	calcCounter    otelmetric.Int64Counter
	calcDuration   otelmetric.Float64Histogram
}

// New builds the providers. Meters are exported through reg; tracer options
// (span processors, samplers) are passed through to the tracer provider.
// Without an exporter only tracing is recorded.
func New(serviceName string, reg promclient.Registerer, log logger.Logger, opts ...sdktrace.TracerProviderOption) *Observability {
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	o := &Observability{
		tracerProvider: tp,
		tracer:         tp.Tracer(serviceName),
	}

	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		log.Warn("prometheus exporter unavailable, calculation metrics disabled", map[string]interface{}{
			"service": serviceName,
			"error":   err.Error(),
		})
		return o
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	meter := provider.Meter(serviceName)

	o.meterProvider = provider
	o.calcCounter, _ = meter.Int64Counter(
		"calculations_processed",
		otelmetric.WithDescription("Number of ROI calculations processed"),
	)
	o.calcDuration, _ = meter.Float64Histogram(
		"calculations_duration",
		otelmetric.WithDescription("ROI calculation duration"),
		otelmetric.WithUnit("ms"),
	)

	return o
}

// StartSpan starts a span named name under ctx.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if o == nil || o.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// RecordCalculation counts one calculator run and its duration.
func (o *Observability) RecordCalculation(ctx context.Context, calculator, status string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("calculator", calculator),
		attribute.String("status", status),
	)
	if o.calcCounter != nil {
		o.calcCounter.Add(ctx, 1, attrs)
	}
	if o.calcDuration != nil {
		o.calcDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	}
}

func (o *Observability) Shutdown() {
	if o == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
}
