package tracer

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"product-gateway/internal/config"
	"product-gateway/internal/logger"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"github.com/grafana/pyroscope-go"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

var (
	once         sync.Once
	shutdownFunc func()
	initErr      error
)

var pyroLogrus = func() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	return l
}()

// Instance initializes the OpenTelemetry tracer provider and the Pyroscope
// profiler once. Exporters are optional: with REMOTE_TRACE_RPC_URI set spans
// go to an OTLP collector, with TRACE_STDOUT=true they go to stdout, and
// with neither the provider stays process-local so instrumented code runs
// unchanged.
func Instance(globalCtx context.Context) (func(), error) {
	once.Do(func() {
		cfg := config.Instance()
		log := logger.Instance()

		var opts []trace.TracerProviderOption

		switch {
		case cfg.RemoteTraceRpcURI != "":
			exp, err := otlptracegrpc.New(globalCtx,
				otlptracegrpc.WithInsecure(),
				otlptracegrpc.WithEndpoint(cfg.RemoteTraceRpcURI),
				otlptracegrpc.WithCompressor("gzip"),
			)
			if err != nil {
				log.Error("Failed to create OTLP exporter", slog.String("error", err.Error()))
				initErr = err
				return
			}
			opts = append(opts, trace.WithBatcher(exp))
		case os.Getenv("TRACE_STDOUT") == "true":
			exp, err := stdouttrace.New()
			if err != nil {
				log.Error("Failed to create stdout exporter", slog.String("error", err.Error()))
				initErr = err
				return
			}
			opts = append(opts, trace.WithBatcher(exp))
		}

		// OpenTelemetry Resource (service name, env, etc)
		res, err := resource.New(globalCtx,
			resource.WithAttributes(
				semconv.ServiceNameKey.String(cfg.AppName),
				attribute.String("env", os.Getenv("ENV")),
			),
		)
		if err != nil {
			log.Error("Failed to create resource", slog.String("error", err.Error()))
			initErr = err
			return
		}
		opts = append(opts, trace.WithResource(res))

		tp := trace.NewTracerProvider(opts...)

		// Set tracer provider WITH pyroscope attached
		otel.SetTracerProvider(otelpyroscope.NewTracerProvider(tp))

		// Register the trace context and baggage propagators so data is propagated across services/processes.
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))

		log.Info("OpenTelemetry Tracer initialized")

		if cfg.RemoteProfilingHttpURI != "" {
			_, err := pyroscope.Start(pyroscope.Config{
				ApplicationName: cfg.AppName,
				ServerAddress:   cfg.RemoteProfilingHttpURI,
				Logger:          pyroLogrus,
			})
			if err != nil {
				log.Error("Pyroscope failed to start", slog.String("error", err.Error()))
			} else {
				log.Info("Pyroscope started successfully")
			}
		}

		shutdownFunc = func() {
			if err := tp.Shutdown(globalCtx); err != nil {
				log.Error("Error shutting down tracer provider", slog.String("error", err.Error()))
			}
		}
	})

	return shutdownFunc, initErr
}
