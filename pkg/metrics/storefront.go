package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records counters for cart and order mutations.
type StorefrontMetrics struct {
	cartMutations *prometheus.CounterVec
	ordersCreated prometheus.Counter
	orderFailures *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kulshy_cart_mutations_total",
		Help: "Cart mutations applied, labelled by operation.",
	}, []string{"op"})
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kulshy_orders_created_total",
		Help: "Orders successfully created from carts.",
	})
	orderFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kulshy_order_failures_total",
		Help: "Rejected order operations, labelled by error code.",
	}, []string{"code"})
	reg.MustRegister(cartMutations, ordersCreated, orderFailures)
	return &StorefrontMetrics{
		cartMutations: cartMutations,
		ordersCreated: ordersCreated,
		orderFailures: orderFailures,
	}
}

// IncCartMutation increments the mutation counter for the named operation.
func (m *StorefrontMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncOrderCreated increments the created-orders counter.
func (m *StorefrontMetrics) IncOrderCreated() {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.Inc()
}

// IncOrderFailure increments the failure counter for the given error code.
func (m *StorefrontMetrics) IncOrderFailure(code string) {
	if m == nil || m.orderFailures == nil {
		return
	}
	m.orderFailures.WithLabelValues(normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	cleaned := strings.TrimSpace(strings.ToLower(value))
	if cleaned == "" {
		return "unknown"
	}
	return cleaned
}
