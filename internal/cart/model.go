package cart

import (
	product "github.com/paoquentinho/storefront/internal/products"
	"github.com/paoquentinho/storefront/internal/pricing"
	"github.com/shopspring/decimal"
)

// LineItem is one cart entry. TotalPrice always equals Quantity times the
// effective unit price of Product with CustomOptions.
type LineItem struct {
	LineID        string                     `json:"lineId"`
	Product       product.Product            `json:"product"`
	Quantity      int                        `json:"quantity"`
	CustomOptions *product.CustomCakeOptions `json:"customOptions,omitempty"`
	TotalPrice    decimal.Decimal            `json:"totalPrice"`
}

// UnitPrice is the effective price of one unit of the line.
func (l LineItem) UnitPrice() decimal.Decimal {
	return pricing.EffectivePrice(l.Product.Price, l.CustomOptions)
}

// IsCustomCake reports whether the line needs scheduled preparation.
func (l LineItem) IsCustomCake() bool {
	return l.CustomOptions != nil || !l.Product.IsReadyToTake
}

func (l *LineItem) recompute() {
	l.TotalPrice = pricing.LineTotal(l.Product.Price, l.CustomOptions, l.Quantity)
}

// Clone deep-copies the line so callers never share option pointers.
func (l LineItem) Clone() LineItem {
	l.CustomOptions = l.CustomOptions.Clone()
	return l
}

// CloneItems deep-copies a slice of lines.
func CloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// Snapshot is the cart plus its derived totals.
type Snapshot struct {
	Items      []LineItem      `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

func totals(items []LineItem) (int, decimal.Decimal) {
	count := 0
	sum := decimal.Zero
	for _, it := range items {
		count += it.Quantity
		sum = sum.Add(it.TotalPrice)
	}
	return count, sum
}
