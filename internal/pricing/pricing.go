// Package pricing computes unit and line prices from a product's base price
// and optional cake customization.
package pricing

import (
	product "github.com/paoquentinho/storefront/internal/products"
	"github.com/shopspring/decimal"
)

// EffectivePrice returns base plus the surcharges of the selected massa,
// recheio and cobertura. Unknown or empty selections add nothing.
func EffectivePrice(base decimal.Decimal, opts *product.CustomCakeOptions) decimal.Decimal {
	if opts == nil {
		return base
	}
	catalog := product.Options()
	return base.
		Add(product.Surcharge(catalog.Massa, opts.Massa)).
		Add(product.Surcharge(catalog.Recheio, opts.Recheio)).
		Add(product.Surcharge(catalog.Cobertura, opts.Cobertura))
}

// LineTotal is quantity times the effective unit price.
func LineTotal(base decimal.Decimal, opts *product.CustomCakeOptions, quantity int) decimal.Decimal {
	return EffectivePrice(base, opts).Mul(decimal.NewFromInt(int64(quantity)))
}
