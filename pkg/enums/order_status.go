package enums

import "fmt"

// OrderStatus tracks the kitchen progress of an order. The declaration
// order below is the only direction an order may move.
type OrderStatus string

const (
	OrderStatusReceived  OrderStatus = "Recebido"
	OrderStatusPreparing OrderStatus = "Em Preparo"
	OrderStatusReady     OrderStatus = "Pronto para Retirada"
	OrderStatusCompleted OrderStatus = "Concluído"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusReceived,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusCompleted,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	return s.Rank() >= 0
}

// Rank returns the position of the status in the lifecycle, or -1.
func (s OrderStatus) Rank() int {
	for i, candidate := range validOrderStatuses {
		if candidate == s {
			return i
		}
	}
	return -1
}

// IsTerminal reports whether no further transition exists.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted
}

// CanAdvanceTo reports whether next is strictly later in the lifecycle.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	return s.IsValid() && next.IsValid() && next.Rank() > s.Rank()
}

// OrderStatuses returns the lifecycle in order.
func OrderStatuses() []OrderStatus {
	return append([]OrderStatus(nil), validOrderStatuses...)
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
