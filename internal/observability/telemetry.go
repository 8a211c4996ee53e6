// Package observability содержит трассировку OpenTelemetry и статистику процесса.
package observability

import (
	"context"
	"time"

	"github.com/annel0/blockverse/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// ShutdownTimeout ограничивает сброс буфера спанов при завершении
const ShutdownTimeout = 5 * time.Second

// TelemetryConfig описывает трассировку процесса
type TelemetryConfig struct {
	Enabled     bool
	ServiceName string
	InstanceID  string
}

// InitTelemetry настраивает OTLP HTTP экспортер (по умолчанию localhost:4318,
// переопределяется стандартными OTEL_EXPORTER_OTLP_* переменными) и
// устанавливает глобальный TracerProvider. При выключенной трассировке
// остаётся no-op провайдер.
// Возвращает функцию shutdown, которую нужно вызвать при завершении приложения.
func InitTelemetry(ctx context.Context, tc TelemetryConfig) (func(context.Context) error, error) {
	if !tc.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	exp, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(tc.ServiceName),
			semconv.ServiceInstanceID(tc.InstanceID),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	logging.Info("📡 OpenTelemetry инициализирован (service=%s, instance=%s)", tc.ServiceName, tc.InstanceID)

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
		defer cancel()
		return tp.Shutdown(ctx)
	}, nil
}
