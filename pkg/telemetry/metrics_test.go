package telemetry

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	out := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				out[m.Name] += dp.Value
			}
		}
	}
	return out
}

func TestRestockMetrics_Counters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background()) //nolint:errcheck

	m, err := NewRestockMetricsWithProvider(mp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	m.SessionCreated(ctx)
	m.ItemAdded(ctx, true, true)
	m.ItemAdded(ctx, false, true)
	m.EmailsGenerated(ctx, 3)
	m.EmailSent(ctx, true)
	m.EmailSent(ctx, false)
	m.SessionCompleted(ctx)

	got := collectSums(t, reader)
	want := map[string]int64{
		"restock.sessions.created":   1,
		"restock.items.added":        2,
		"restock.emails.generated":   3,
		"restock.emails.sent":        2,
		"restock.sessions.completed": 1,
	}
	for name, v := range want {
		if got[name] != v {
			t.Errorf("%s: expected %d, got %d", name, v, got[name])
		}
	}
}

func TestRestockMetrics_NilIsNoop(t *testing.T) {
	var m *RestockMetrics
	ctx := context.Background()
	m.SessionCreated(ctx)
	m.ItemAdded(ctx, true, false)
	m.EmailsGenerated(ctx, 1)
	m.EmailSent(ctx, true)
	m.SessionCompleted(ctx)
}
