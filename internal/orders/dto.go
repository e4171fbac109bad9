package orders

import (
	"time"

	"github.com/paoquentinho/storefront/internal/cart"
	"github.com/paoquentinho/storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

// Order is an immutable snapshot of a checked-out cart plus its lifecycle
// status. Only Status changes after creation.
type Order struct {
	ID            string              `json:"id"`
	UserID        string              `json:"userId"`
	Items         []cart.LineItem     `json:"items"`
	TotalPrice    decimal.Decimal     `json:"totalPrice"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	CreatedAt     time.Time           `json:"createdAt"`
	PickupTime    *time.Time          `json:"pickupTime,omitempty"`
	EstimatedTime *int                `json:"estimatedTime,omitempty"`
}

// HasCustomCake reports whether any line needs scheduled preparation.
func (o Order) HasCustomCake() bool {
	return hasCustomCake(o.Items)
}

// Clone deep-copies the order.
func (o Order) Clone() Order {
	o.Items = cart.CloneItems(o.Items)
	if o.PickupTime != nil {
		t := *o.PickupTime
		o.PickupTime = &t
	}
	if o.EstimatedTime != nil {
		m := *o.EstimatedTime
		o.EstimatedTime = &m
	}
	return o
}

func hasCustomCake(items []cart.LineItem) bool {
	for _, it := range items {
		if it.IsCustomCake() {
			return true
		}
	}
	return false
}
