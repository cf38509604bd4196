// Package telemetry wires OpenTelemetry tracing and logging for the serve
// mode.
package telemetry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/exporters/autoexport"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otlplog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/filestruct/filestruct/pkg/config"
)

const serviceName = "filestruct"

// Initialize sets up the global trace and log providers via autoexport and
// returns a shutdown function. Exporter selection follows the standard OTEL
// environment variables; cfg.Endpoint only feeds the corresponding env var
// binding in config.
func Initialize(cfg config.TelemetryConfig, logger *logrus.Logger) (func(), error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		return nil, err
	}

	spanExporter, err := autoexport.NewSpanExporter(context.Background())
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	var logProvider *sdklog.LoggerProvider
	logExporter, err := autoexport.NewLogExporter(context.Background())
	if err != nil {
		logger.Warnf("Failed to create log exporter: %v", err)
	} else {
		logProvider = sdklog.NewLoggerProvider(
			sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
			sdklog.WithResource(res),
		)
		global.SetLoggerProvider(logProvider)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := tp.Shutdown(ctx); err != nil {
			logger.Errorf("Error shutting down tracer provider: %v", err)
		}
		if logProvider != nil {
			if err := logProvider.Shutdown(ctx); err != nil {
				logger.Errorf("Error shutting down log provider: %v", err)
			}
		}
	}, nil
}

// ReportJSON records an operation payload as JSON on a span and at debug
// level in both logrus and the OTEL log pipeline.
func ReportJSON(ctx context.Context, logger *logrus.Logger, operation string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		logger.Errorf("Failed to marshal %s payload: %v", operation, err)
		return
	}

	_, span := otel.Tracer(serviceName).Start(ctx, operation)
	span.SetAttributes(attribute.String("json.data", string(jsonData)))
	span.End()

	logger.WithFields(logrus.Fields{
		"operation": operation,
		"json_data": string(jsonData),
	}).Debug("operation payload")

	otelLogger := global.GetLoggerProvider().Logger(serviceName)
	if otelLogger != nil {
		var record otlplog.Record
		record.SetTimestamp(time.Now())
		record.SetObservedTimestamp(time.Now())
		record.SetSeverity(otlplog.SeverityDebug)
		record.SetSeverityText("DEBUG")
		record.SetBody(otlplog.StringValue(string(jsonData)))
		record.AddAttributes(otlplog.String("operation", operation))
		otelLogger.Emit(context.Background(), record)
	}
}
