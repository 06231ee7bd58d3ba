package controllers

import (
	"net/http"

	"github.com/karibu-retail/storefront-gateway/api/middleware"
	"github.com/karibu-retail/storefront-gateway/api/responses"
	"github.com/karibu-retail/storefront-gateway/api/validators"
	checkoutsvc "github.com/karibu-retail/storefront-gateway/internal/checkout"
	pkgerrors "github.com/karibu-retail/storefront-gateway/pkg/errors"
	"github.com/karibu-retail/storefront-gateway/pkg/logger"
	"github.com/karibu-retail/storefront-gateway/pkg/types"
)

type directOrderRequest struct {
	CustomerName  string                 `json:"customer_name" validate:"required"`
	CustomerPhone string                 `json:"customer_phone" validate:"required"`
	Quantity      int                    `json:"quantity" validate:"required,gt=0"`
	Selection     types.VariantSelection `json:"selection" validate:"required"`
}

// DirectOrder places a one-item order immediately, without touching the cart.
func DirectOrder(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload directOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.DirectOrder(r.Context(), checkoutsvc.DirectOrderInput{
			CustomerName:  payload.CustomerName,
			CustomerPhone: payload.CustomerPhone,
			Quantity:      payload.Quantity,
			Selection:     payload.Selection,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}

type checkoutRequest struct {
	CustomerName    string `json:"customer_name" validate:"required"`
	CustomerEmail   string `json:"customer_email" validate:"required"`
	CustomerPhone   string `json:"customer_phone" validate:"required"`
	DeliveryAddress string `json:"delivery_address" validate:"required"`
}

// Checkout submits the whole cart as one order. The cart is cleared only when
// the upstream accepts it.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.Checkout(r.Context(), middleware.ClientSessionFromContext(r.Context()), checkoutsvc.CheckoutInput{
			CustomerName:    payload.CustomerName,
			CustomerEmail:   payload.CustomerEmail,
			CustomerPhone:   payload.CustomerPhone,
			DeliveryAddress: payload.DeliveryAddress,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}
