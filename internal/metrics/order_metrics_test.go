package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewOrderMetrics_Collectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(registry)

	if metrics.ordersPlaced == nil {
		t.Error("ordersPlaced counter should not be nil")
	}
	if metrics.ordersRejected == nil {
		t.Error("ordersRejected counter should not be nil")
	}
	if metrics.ordersFailed == nil {
		t.Error("ordersFailed counter should not be nil")
	}
	if metrics.placeOrderDuration == nil {
		t.Error("placeOrderDuration histogram should not be nil")
	}
	if metrics.orderAmountTotal == nil {
		t.Error("orderAmountTotal counter should not be nil")
	}
	if metrics.detailsRequests == nil {
		t.Error("detailsRequests counter vec should not be nil")
	}
}

func TestOrderMetrics_RecordOrderPlaced(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(registry)

	metrics.RecordOrderPlaced(4498)
	metrics.RecordOrderPlaced(1999)

	if got := counterValue(t, metrics.ordersPlaced); got != 2 {
		t.Fatalf("expected 2 placed orders, got %v", got)
	}
	if got := counterValue(t, metrics.orderAmountTotal); got != 4498+1999 {
		t.Fatalf("expected amount total %d, got %v", 4498+1999, got)
	}
}

func TestOrderMetrics_RecordOutcomes(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(registry)

	metrics.RecordOrderRejected()
	metrics.RecordOrderFailed()
	metrics.RecordPlaceOrderDuration(25 * time.Millisecond)
	metrics.RecordDetailsRequest("ok")

	if got := counterValue(t, metrics.ordersRejected); got != 1 {
		t.Fatalf("expected 1 rejected order, got %v", got)
	}
	if got := counterValue(t, metrics.ordersFailed); got != 1 {
		t.Fatalf("expected 1 failed order, got %v", got)
	}
}

func TestOrderMetrics_DoubleRegisterReusesCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := newOrderMetricsWithRegisterer(registry)
	second := newOrderMetricsWithRegisterer(registry)

	first.RecordOrderPlaced(100)
	second.RecordOrderPlaced(100)

	if got := counterValue(t, first.ordersPlaced); got != 2 {
		t.Fatalf("expected shared counter with value 2, got %v", got)
	}
}

func counterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	return metric.GetCounter().GetValue()
}
