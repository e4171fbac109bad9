package controllers

import (
	"net/http"

	"github.com/paoquentinho/storefront/api/responses"
	"github.com/paoquentinho/storefront/api/validators"
	"github.com/paoquentinho/storefront/internal/checkout"
	"github.com/paoquentinho/storefront/pkg/enums"
	pkgerrors "github.com/paoquentinho/storefront/pkg/errors"
	"github.com/paoquentinho/storefront/pkg/logger"
)

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

// CheckoutSubmit places an order from the current cart.
func CheckoutSubmit(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var req checkoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		method, err := enums.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method").
				WithDetails(map[string]any{"allowed": enums.PaymentMethods()}))
			return
		}

		result, err := svc.Checkout(r.Context(), method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
