package observability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/osama171998/minna-app/internal/config"
)

type AppMetrics struct {
	authLoginCounter         metric.Int64Counter
	authRegisterCounter      metric.Int64Counter
	tokenValidationCounter   metric.Int64Counter
	authReqDuration          metric.Float64Histogram
	scrapeCounter            metric.Int64Counter
	analysisCounter          metric.Int64Counter
	rateLimitDecisionCounter metric.Int64Counter
	healthCheckResultCounter metric.Int64Counter
}

var (
	metricsMu  sync.RWMutex
	appMetrics *AppMetrics
)

// InitMetrics sets up the OTLP metric pipeline and registers the app
// instrument set. With metrics disabled a no-op provider is installed so
// the Record* helpers stay callable.
func InitMetrics(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sdkmetric.MeterProvider, error) {
	if !cfg.OTELMetricsEnabled {
		mp := sdkmetric.NewMeterProvider()
		otel.SetMeterProvider(mp)
		logger.Info("otel metrics disabled")
		return mp, nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTELExporterOTLPEndpoint)}
	if cfg.OTELExporterOTLPInsecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp metric exporter: %w", err)
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.OTELMetricsExportInterval))
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(mp)

	m, err := newAppMetrics(mp.Meter("minna-app"))
	if err != nil {
		return nil, err
	}
	metricsMu.Lock()
	appMetrics = m
	metricsMu.Unlock()

	logger.Info("otel metrics initialized", "endpoint", cfg.OTELExporterOTLPEndpoint)
	return mp, nil
}

func newAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	m := &AppMetrics{}
	var err error
	if m.authLoginCounter, err = meter.Int64Counter("auth.login.attempts"); err != nil {
		return nil, err
	}
	if m.authRegisterCounter, err = meter.Int64Counter("auth.register.attempts"); err != nil {
		return nil, err
	}
	if m.tokenValidationCounter, err = meter.Int64Counter("auth.token.validations"); err != nil {
		return nil, err
	}
	if m.authReqDuration, err = meter.Float64Histogram("auth.request.duration", metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if m.scrapeCounter, err = meter.Int64Counter("instagram.scrape.requests"); err != nil {
		return nil, err
	}
	if m.analysisCounter, err = meter.Int64Counter("analysis.requests"); err != nil {
		return nil, err
	}
	if m.rateLimitDecisionCounter, err = meter.Int64Counter("http.ratelimit.decisions"); err != nil {
		return nil, err
	}
	if m.healthCheckResultCounter, err = meter.Int64Counter("health.check.results"); err != nil {
		return nil, err
	}
	return m, nil
}

func current() *AppMetrics {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	return appMetrics
}

func RecordAuthLogin(ctx context.Context, outcome string) {
	if m := current(); m != nil {
		m.authLoginCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

func RecordAuthRegister(ctx context.Context, outcome string) {
	if m := current(); m != nil {
		m.authRegisterCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

func RecordTokenValidation(ctx context.Context, outcome string) {
	if m := current(); m != nil {
		m.tokenValidationCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

func RecordAuthRequestDuration(ctx context.Context, operation, outcome string, d time.Duration) {
	if m := current(); m != nil {
		m.authReqDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("outcome", outcome),
		))
	}
}

func RecordScrape(ctx context.Context, mode, outcome string) {
	if m := current(); m != nil {
		m.scrapeCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("mode", mode),
			attribute.String("outcome", outcome),
		))
	}
}

func RecordAnalysis(ctx context.Context, outcome string) {
	if m := current(); m != nil {
		m.analysisCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

func RecordRateLimitDecision(ctx context.Context, scope, decision string) {
	if m := current(); m != nil {
		m.rateLimitDecisionCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("scope", scope),
			attribute.String("decision", decision),
		))
	}
}

func RecordHealthCheck(ctx context.Context, name string, healthy bool) {
	if m := current(); m != nil {
		m.healthCheckResultCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("check", name),
			attribute.Bool("healthy", healthy),
		))
	}
}
