package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	salesRecorded   metric.Int64Counter
	poursRequests   metric.Int64Counter
	ledgerEntries   metric.Int64Counter
	syncSkipped     metric.Int64Counter
	rateLimitDenied metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "pourhouse"
	}
	meter := provider.Meter(name)

	salesRecorded, err := meter.Int64Counter("pourhouse_sales_recorded_total")
	if err != nil {
		return nil, err
	}
	poursRequests, err := meter.Int64Counter("pourhouse_mix_requests_total")
	if err != nil {
		return nil, err
	}
	ledgerEntries, err := meter.Int64Counter("pourhouse_wallet_ledger_entries_total")
	if err != nil {
		return nil, err
	}
	syncSkipped, err := meter.Int64Counter("pourhouse_recipe_sync_skipped_total")
	if err != nil {
		return nil, err
	}
	rateLimitDenied, err := meter.Int64Counter("pourhouse_rate_limit_denied_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		salesRecorded:   salesRecorded,
		poursRequests:   poursRequests,
		ledgerEntries:   ledgerEntries,
		syncSkipped:     syncSkipped,
		rateLimitDenied: rateLimitDenied,
	}, nil
}

// RecordSale increments the recorded-sale counter.
func (m *Metrics) RecordSale(ctx context.Context, recipeName string) {
	if m == nil {
		return
	}
	m.salesRecorded.Add(ctx, 1, metric.WithAttributes(
		attribute.String("recipe", strings.TrimSpace(recipeName)),
	))
}

// RecordMixRequest increments the dispense-request counter.
func (m *Metrics) RecordMixRequest(ctx context.Context, items int) {
	if m == nil {
		return
	}
	m.poursRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("items", items),
	))
}

// RecordLedgerEntry increments the wallet ledger counter.
func (m *Metrics) RecordLedgerEntry(ctx context.Context, txType string) {
	if m == nil {
		return
	}
	m.ledgerEntries.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", strings.TrimSpace(txType)),
	))
}

// RecordSyncSkipped counts recipe sync entries that could not be resolved.
func (m *Metrics) RecordSyncSkipped(ctx context.Context, source string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.syncSkipped.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("source", strings.TrimSpace(source)),
	))
}

// RecordRateLimitDenied counts dispenser requests rejected by the limiter.
func (m *Metrics) RecordRateLimitDenied(ctx context.Context, endpoint string) {
	if m == nil {
		return
	}
	m.rateLimitDenied.Add(ctx, 1, metric.WithAttributes(
		attribute.String("endpoint", strings.TrimSpace(endpoint)),
	))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	switch protocol {
	case "http", "http/protobuf":
		return otlpmetrichttp.New(context.Background(),
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithInsecure(),
		)
	case "", "grpc":
		return otlpmetricgrpc.New(context.Background(),
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unsupported otlp protocol %q", protocol)
	}
}
