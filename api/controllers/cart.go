package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karibu-retail/storefront-gateway/api/middleware"
	"github.com/karibu-retail/storefront-gateway/api/responses"
	"github.com/karibu-retail/storefront-gateway/api/validators"
	cartsvc "github.com/karibu-retail/storefront-gateway/internal/cart"
	pkgerrors "github.com/karibu-retail/storefront-gateway/pkg/errors"
	"github.com/karibu-retail/storefront-gateway/pkg/logger"
	"github.com/karibu-retail/storefront-gateway/pkg/types"
)

type cartView struct {
	Items []cartsvc.LineItem `json:"items"`
	Total string             `json:"total"`
	Count int                `json:"count"`
}

func viewOf(c cartsvc.Cart) cartView {
	items := c.Items
	if items == nil {
		items = []cartsvc.LineItem{}
	}
	return cartView{
		Items: items,
		Total: c.Total().StringFixed(2),
		Count: c.Count(),
	}
}

// GetCart returns the session's cart with totals and item count.
func GetCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		c, err := svc.Get(r.Context(), middleware.ClientSessionFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(c))
	}
}

type addCartItemRequest struct {
	Selection types.VariantSelection `json:"selection" validate:"required"`
	Quantity  int                    `json:"quantity" validate:"required,gt=0"`
}

// AddCartItem merges a variant selection into the cart. No upstream call is
// made; stock is checked at submission time.
func AddCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, err := svc.Add(r.Context(), middleware.ClientSessionFromContext(r.Context()), payload.Selection, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, viewOf(c))
	}
}

type adjustQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// AdjustCartItem applies a signed quantity delta; a result at or below zero
// removes the line.
func AdjustCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload adjustQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, err := svc.AdjustQuantity(r.Context(), middleware.ClientSessionFromContext(r.Context()), chi.URLParam(r, "variantID"), payload.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(c))
	}
}

// RemoveCartItem deletes a line from the cart.
func RemoveCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		c, err := svc.Remove(r.Context(), middleware.ClientSessionFromContext(r.Context()), chi.URLParam(r, "variantID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(c))
	}
}
