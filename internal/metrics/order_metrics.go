package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики конвейера оформления заказов.
type OrderMetrics struct {
	// Счётчики исходов placeOrder
	ordersPlaced   prometheus.Counter
	ordersRejected prometheus.Counter
	ordersFailed   prometheus.Counter

	// Гистограмма времени оформления
	placeOrderDuration prometheus.Histogram

	// Сумма оформленных заказов в минимальных единицах
	orderAmountTotal prometheus.Counter

	// Счётчик чтений деталей заказа
	detailsRequests *prometheus.CounterVec
}

// NewOrderMetrics создаёт новый экземпляр метрик оформления заказов.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bookstore_orders_placed_total",
			Help: "Total number of orders committed successfully",
		}),
		ordersRejected: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bookstore_orders_rejected_total",
			Help: "Total number of orders rejected by validation before any write",
		}),
		ordersFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bookstore_orders_failed_total",
			Help: "Total number of orders that failed during the transaction",
		}),
		placeOrderDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "bookstore_place_order_duration_seconds",
			Help:    "Duration of placeOrder calls in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		orderAmountTotal: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bookstore_order_amount_minor_total",
			Help: "Sum of committed order totals in minor currency units",
		}),
		detailsRequests: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "bookstore_order_details_requests_total",
			Help: "Total number of order details reads grouped by result",
		}, []string{"result"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderPlaced учитывает успешно закоммиченный заказ и его сумму.
func (m *OrderMetrics) RecordOrderPlaced(totalMinor int64) {
	m.ordersPlaced.Inc()
	if totalMinor > 0 {
		m.orderAmountTotal.Add(float64(totalMinor))
	}
}

// RecordOrderRejected увеличивает счётчик отклонённых валидатором заказов.
func (m *OrderMetrics) RecordOrderRejected() {
	m.ordersRejected.Inc()
}

// RecordOrderFailed увеличивает счётчик заказов, упавших внутри транзакции.
func (m *OrderMetrics) RecordOrderFailed() {
	m.ordersFailed.Inc()
}

// RecordPlaceOrderDuration записывает время выполнения placeOrder.
func (m *OrderMetrics) RecordPlaceOrderDuration(duration time.Duration) {
	m.placeOrderDuration.Observe(duration.Seconds())
}

// RecordDetailsRequest учитывает чтение деталей заказа с меткой исхода.
func (m *OrderMetrics) RecordDetailsRequest(result string) {
	m.detailsRequests.WithLabelValues(result).Inc()
}
