package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ghuser/bomlabel/services/label"

// labelMetrics records explosion outcomes. Instruments come from the global
// MeterProvider, so they export through the Prometheus reader set up by telemetry.Setup.
type labelMetrics struct {
	explosions metric.Int64Counter
	skipped    metric.Int64Counter
	leaves     metric.Int64Histogram
}

func newLabelMetrics() (*labelMetrics, error) {
	meter := otel.Meter(meterName)
	explosions, err := meter.Int64Counter("label.explosions",
		metric.WithDescription("Product tree explosions by outcome"))
	if err != nil {
		return nil, err
	}
	skipped, err := meter.Int64Counter("label.skipped_branches",
		metric.WithDescription("Tree branches dropped during explosion"))
	if err != nil {
		return nil, err
	}
	leaves, err := meter.Int64Histogram("label.leaves",
		metric.WithDescription("Distinct raw materials per explosion"),
		metric.WithExplicitBucketBoundaries(1, 2, 5, 10, 20, 50, 100))
	if err != nil {
		return nil, err
	}
	return &labelMetrics{explosions: explosions, skipped: skipped, leaves: leaves}, nil
}

func (m *labelMetrics) recordExplosion(ctx context.Context, outcome string, leaves, skipped int) {
	if m == nil {
		return
	}
	m.explosions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	if outcome != outcomeFailed {
		m.leaves.Record(ctx, int64(leaves))
	}
	if skipped > 0 {
		m.skipped.Add(ctx, int64(skipped))
	}
}

const (
	outcomeComplete = "complete"
	outcomePartial  = "partial"
	outcomeFailed   = "failed"
)
