package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ghuser/restock"

// RestockMetrics counts restock lifecycle events. Setup creates it on the
// installed MeterProvider, so the counters are exported on /metrics and over
// OTLP.
type RestockMetrics struct {
	sessionsCreated   metric.Int64Counter
	itemsAdded        metric.Int64Counter
	emailsGenerated   metric.Int64Counter
	emailsSent        metric.Int64Counter
	sessionsCompleted metric.Int64Counter
}

// NewRestockMetricsWithProvider registers the restock counters on mp.
func NewRestockMetricsWithProvider(mp metric.MeterProvider) (*RestockMetrics, error) {
	meter := mp.Meter(meterName)
	m := &RestockMetrics{}
	var err error

	if m.sessionsCreated, err = meter.Int64Counter("restock.sessions.created",
		metric.WithDescription("Restock sessions created")); err != nil {
		return nil, fmt.Errorf("sessions.created counter: %w", err)
	}
	if m.itemsAdded, err = meter.Int64Counter("restock.items.added",
		metric.WithDescription("Line items added to restock sessions")); err != nil {
		return nil, fmt.Errorf("items.added counter: %w", err)
	}
	if m.emailsGenerated, err = meter.Int64Counter("restock.emails.generated",
		metric.WithDescription("Supplier email drafts generated")); err != nil {
		return nil, fmt.Errorf("emails.generated counter: %w", err)
	}
	if m.emailsSent, err = meter.Int64Counter("restock.emails.sent",
		metric.WithDescription("Supplier emails handed to the mailer")); err != nil {
		return nil, fmt.Errorf("emails.sent counter: %w", err)
	}
	if m.sessionsCompleted, err = meter.Int64Counter("restock.sessions.completed",
		metric.WithDescription("Restock sessions marked sent")); err != nil {
		return nil, fmt.Errorf("sessions.completed counter: %w", err)
	}
	return m, nil
}

// A nil *RestockMetrics is valid and records nothing.

func (m *RestockMetrics) SessionCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.sessionsCreated.Add(ctx, 1)
}

func (m *RestockMetrics) ItemAdded(ctx context.Context, newProduct, newSupplier bool) {
	if m == nil {
		return
	}
	m.itemsAdded.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("new_product", newProduct),
		attribute.Bool("new_supplier", newSupplier),
	))
}

func (m *RestockMetrics) EmailsGenerated(ctx context.Context, drafts int) {
	if m == nil {
		return
	}
	m.emailsGenerated.Add(ctx, int64(drafts))
}

func (m *RestockMetrics) EmailSent(ctx context.Context, ok bool) {
	if m == nil {
		return
	}
	m.emailsSent.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", ok)))
}

func (m *RestockMetrics) SessionCompleted(ctx context.Context) {
	if m == nil {
		return
	}
	m.sessionsCompleted.Add(ctx, 1)
}
