package metrics

import "github.com/prometheus/client_golang/prometheus"

// StorefrontMetrics counts cart and order activity.
type StorefrontMetrics struct {
	cartMutations *prometheus.CounterVec
	ordersCreated *prometheus.CounterVec
	transitions   *prometheus.CounterVec
}

func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Persisted cart mutations by operation.",
	}, []string{"operation"})
	ordersCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders created by payment method.",
	}, []string{"payment_method"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Order status changes by target status and source (manual or scheduled).",
	}, []string{"status", "source"})
	reg.MustRegister(cartMutations, ordersCreated, transitions)
	return &StorefrontMetrics{
		cartMutations: cartMutations,
		ordersCreated: ordersCreated,
		transitions:   transitions,
	}
}

func (m *StorefrontMetrics) IncCartMutation(operation string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(operation)).Inc()
}

func (m *StorefrontMetrics) IncOrderCreated(paymentMethod string) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.WithLabelValues(normalizeLabel(paymentMethod)).Inc()
}

func (m *StorefrontMetrics) IncStatusTransition(status, source string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(status), normalizeLabel(source)).Inc()
}
