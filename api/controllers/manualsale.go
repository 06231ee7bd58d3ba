package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/karibu-retail/storefront-gateway/api/middleware"
	"github.com/karibu-retail/storefront-gateway/api/responses"
	"github.com/karibu-retail/storefront-gateway/api/validators"
	catalogsvc "github.com/karibu-retail/storefront-gateway/internal/catalog"
	salesvc "github.com/karibu-retail/storefront-gateway/internal/manualsale"
	pkgerrors "github.com/karibu-retail/storefront-gateway/pkg/errors"
	"github.com/karibu-retail/storefront-gateway/pkg/logger"
	"github.com/karibu-retail/storefront-gateway/pkg/types"
)

type saleView struct {
	Lines   []salesvc.SaleLine `json:"lines"`
	Payment salesvc.Payment    `json:"payment"`
	Total   string             `json:"total"`
}

func saleViewOf(s salesvc.Session) saleView {
	lines := s.Lines
	if lines == nil {
		lines = []salesvc.SaleLine{}
	}
	return saleView{
		Lines:   lines,
		Payment: s.Payment,
		Total:   s.Total().StringFixed(2),
	}
}

// GetSaleSession returns the admin's staged sale.
func GetSaleSession(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "manual sale service unavailable"))
			return
		}

		session, err := svc.Get(r.Context(), middleware.AdminIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saleViewOf(session))
	}
}

type saleSearchRequest struct {
	Query string `json:"query"`
}

// SearchSaleProducts reuses the catalog search for the point-of-sale picker,
// keyed by the admin's identity for generation tracking.
func SearchSaleProducts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload saleSearchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Search(r.Context(), middleware.AdminIDFromContext(r.Context()), payload.Query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type addSaleItemRequest struct {
	Selection types.VariantSelection `json:"selection" validate:"required"`
	Quantity  int                    `json:"quantity" validate:"required,gt=0"`
}

// AddSaleItem stages a variant against its stock cap.
func AddSaleItem(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "manual sale service unavailable"))
			return
		}

		var payload addSaleItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.AddItem(r.Context(), middleware.AdminIDFromContext(r.Context()), payload.Selection, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, saleViewOf(session))
	}
}

// RemoveSaleItem drops a staged line.
func RemoveSaleItem(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "manual sale service unavailable"))
			return
		}

		session, err := svc.RemoveItem(r.Context(), middleware.AdminIDFromContext(r.Context()), chi.URLParam(r, "variantID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saleViewOf(session))
	}
}

type salePaymentRequest struct {
	CustomerName string          `json:"customer_name"`
	PaymentMode  string          `json:"payment_mode" validate:"required"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
}

// SetSalePayment stages the tender details ahead of completion.
func SetSalePayment(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "manual sale service unavailable"))
			return
		}

		var payload salePaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.SetPayment(r.Context(), middleware.AdminIDFromContext(r.Context()), salesvc.Payment{
			CustomerName: payload.CustomerName,
			PaymentMode:  payload.PaymentMode,
			AmountPaid:   payload.AmountPaid,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saleViewOf(session))
	}
}

type completeSaleRequest struct {
	CustomerName string          `json:"customer_name"`
	PaymentMode  string          `json:"payment_mode"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
}

// CompleteSale records the staged sale upstream and clears the session on
// success.
func CompleteSale(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "manual sale service unavailable"))
			return
		}

		var payload completeSaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		done, err := svc.Complete(r.Context(), middleware.AdminIDFromContext(r.Context()), salesvc.CompleteInput{
			CustomerName: payload.CustomerName,
			PaymentMode:  payload.PaymentMode,
			AmountPaid:   payload.AmountPaid,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, done)
	}
}

// AbandonSale discards the staged sale.
func AbandonSale(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "manual sale service unavailable"))
			return
		}

		if err := svc.Abandon(r.Context(), middleware.AdminIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "discarded"})
	}
}
