package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/karibu-retail/storefront-gateway/internal/cart"
	"github.com/karibu-retail/storefront-gateway/internal/validation"
	pkgerrors "github.com/karibu-retail/storefront-gateway/pkg/errors"
	"github.com/karibu-retail/storefront-gateway/pkg/logger"
	"github.com/karibu-retail/storefront-gateway/pkg/types"
	"github.com/karibu-retail/storefront-gateway/pkg/upstream"
)

// The retail API rejects orders with empty customer fields, so single-item
// phone orders carry fixed placeholder values for email and address.
const (
	directOrderEmail   = "direct@order.com"
	directOrderAddress = "Direct Order - No Address"
)

type orderSubmitter interface {
	SubmitFullOrder(ctx context.Context, order upstream.OrderPayload) (upstream.Ack, error)
}

// Service submits orders upstream: quick single-item direct orders and full
// cart checkouts.
type Service interface {
	DirectOrder(ctx context.Context, input DirectOrderInput) (Receipt, error)
	Checkout(ctx context.Context, clientID string, input CheckoutInput) (Receipt, error)
}

type service struct {
	carts    cart.Service
	upstream orderSubmitter
	logg     *logger.Logger
}

// NewService builds the order submission service.
func NewService(carts cart.Service, submitter orderSubmitter, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if submitter == nil {
		return nil, fmt.Errorf("order submitter required")
	}
	return &service{carts: carts, upstream: submitter, logg: logg}, nil
}

// DirectOrderInput is a single-variant order placed without a cart.
type DirectOrderInput struct {
	CustomerName  string                 `json:"customer_name"`
	CustomerPhone string                 `json:"customer_phone"`
	Quantity      int                    `json:"quantity"`
	Selection     types.VariantSelection `json:"selection"`
}

// CheckoutInput carries the customer details for a full cart checkout.
type CheckoutInput struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	DeliveryAddress string `json:"delivery_address"`
}

// Receipt is the upstream confirmation relayed to the shopper.
type Receipt struct {
	Message string `json:"message"`
}

// DirectOrder validates the input and submits a one-line order immediately.
// No cart is read or written.
func (s *service) DirectOrder(ctx context.Context, input DirectOrderInput) (Receipt, error) {
	violations := validation.Collect(
		validation.Name(input.CustomerName),
		requiredPhone(input.CustomerPhone),
		validation.Quantity(input.Quantity),
	)
	if input.Selection.VariantID == "" {
		violations = append(violations, validation.FieldError{Field: "selection", Message: "Please choose a product variant."})
	}
	if err := violations.ErrOrNil(); err != nil {
		return Receipt{}, err
	}

	payload := upstream.OrderPayload{
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerEmail:   directOrderEmail,
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		DeliveryAddress: directOrderAddress,
		Items: []upstream.OrderItem{{
			ProductVariantID: input.Selection.VariantID,
			Quantity:         input.Quantity,
			SellingPrice:     input.Selection.SellingPrice,
		}},
	}

	ack, err := s.upstream.SubmitFullOrder(ctx, payload)
	if err != nil {
		return Receipt{}, err
	}
	if s.logg != nil {
		s.logg.Info(ctx, "direct order placed")
	}
	return Receipt{Message: ack.Message}, nil
}

// Checkout validates the customer details, requires a non-empty cart, and
// submits every cart line as one order. The cart is cleared only after the
// upstream accepts; a rejection leaves it intact for another attempt.
func (s *service) Checkout(ctx context.Context, clientID string, input CheckoutInput) (Receipt, error) {
	violations := validation.Collect(
		validation.Name(input.CustomerName),
		validation.Email(input.CustomerEmail),
		requiredPhone(input.CustomerPhone),
		validation.Address(input.DeliveryAddress),
	)
	if err := violations.ErrOrNil(); err != nil {
		return Receipt{}, err
	}

	c, err := s.carts.Get(ctx, clientID)
	if err != nil {
		return Receipt{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if c.IsEmpty() {
		return Receipt{}, pkgerrors.New(pkgerrors.CodeValidation, "Your cart is empty.")
	}

	payload := upstream.OrderPayload{
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerEmail:   strings.TrimSpace(input.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		Items:           make([]upstream.OrderItem, 0, len(c.Items)),
	}
	for _, item := range c.Items {
		payload.Items = append(payload.Items, upstream.OrderItem{
			ProductVariantID: item.VariantID,
			Quantity:         item.CustomerQuantity,
			SellingPrice:     item.SellingPrice,
		})
	}

	ack, err := s.upstream.SubmitFullOrder(ctx, payload)
	if err != nil {
		return Receipt{}, err
	}

	if clearErr := s.carts.Clear(ctx, clientID); clearErr != nil && s.logg != nil {
		// The order went through; a stale cart is an annoyance, not a failure.
		s.logg.Error(ctx, "clear cart after checkout", clearErr)
	}
	if s.logg != nil {
		s.logg.Info(ctx, "checkout completed")
	}
	return Receipt{Message: ack.Message}, nil
}

func requiredPhone(value string) *validation.FieldError {
	if strings.TrimSpace(value) == "" {
		return &validation.FieldError{Field: "phone", Message: "Please enter a valid phone number."}
	}
	return validation.Phone(value)
}
