package cart

import (
	product "github.com/paoquentinho/storefront/internal/products"
)

type addItemRequest struct {
	ProductID     string                     `json:"productId" validate:"required"`
	Quantity      int                        `json:"quantity" validate:"omitempty,gte=1"`
	CustomOptions *product.CustomCakeOptions `json:"customOptions,omitempty"`
}

const defaultAddQuantity = 1

// quantity applies the one-unit default when the field is omitted or zero.
func (r addItemRequest) quantity() int {
	if r.Quantity == 0 {
		return defaultAddQuantity
	}
	return r.Quantity
}

type quantityRequest struct {
	// zero or less removes the matching lines
	Quantity int `json:"quantity"`
}
