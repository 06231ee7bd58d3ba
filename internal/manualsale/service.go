package manualsale

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/karibu-retail/storefront-gateway/pkg/errors"
	"github.com/karibu-retail/storefront-gateway/pkg/logger"
	"github.com/karibu-retail/storefront-gateway/pkg/types"
	"github.com/karibu-retail/storefront-gateway/pkg/upstream"
)

const defaultCustomerName = "Walk-in customer"

type saleSubmitter interface {
	SubmitManualSale(ctx context.Context, sale upstream.ManualSalePayload) (upstream.Ack, error)
}

// Service runs staff point-of-sale sessions: staging items against live
// stock, computing change, and recording the completed sale upstream.
type Service interface {
	Get(ctx context.Context, adminID string) (Session, error)
	AddItem(ctx context.Context, adminID string, sel types.VariantSelection, quantity int) (Session, error)
	RemoveItem(ctx context.Context, adminID, variantID string) (Session, error)
	SetPayment(ctx context.Context, adminID string, payment Payment) (Session, error)
	Complete(ctx context.Context, adminID string, input CompleteInput) (Completed, error)
	Abandon(ctx context.Context, adminID string) error
}

type service struct {
	store    SessionStore
	upstream saleSubmitter
	logg     *logger.Logger
}

// NewService builds the manual sale service.
func NewService(store SessionStore, submitter saleSubmitter, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if submitter == nil {
		return nil, fmt.Errorf("sale submitter required")
	}
	return &service{store: store, upstream: submitter, logg: logg}, nil
}

// CompleteInput closes out a staged sale.
type CompleteInput struct {
	CustomerName string          `json:"customer_name"`
	PaymentMode  string          `json:"payment_mode"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
}

// Completed is the outcome of a recorded sale.
type Completed struct {
	Message     string          `json:"message"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	ChangeGiven decimal.Decimal `json:"change_given"`
}

func (s *service) Get(ctx context.Context, adminID string) (Session, error) {
	if err := requireAdminID(adminID); err != nil {
		return Session{}, err
	}
	return s.store.Load(ctx, adminID)
}

// AddItem stages a variant, enforcing the stock cap captured at selection.
func (s *service) AddItem(ctx context.Context, adminID string, sel types.VariantSelection, quantity int) (Session, error) {
	if err := requireAdminID(adminID); err != nil {
		return Session{}, err
	}
	if sel.VariantID == "" {
		return Session{}, pkgerrors.New(pkgerrors.CodeValidation, "Product variant is required.")
	}

	session, err := s.store.Load(ctx, adminID)
	if err != nil {
		return Session{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale session")
	}
	if err := session.Add(sel, quantity); err != nil {
		return Session{}, err
	}
	if err := s.store.Save(ctx, adminID, session); err != nil {
		return Session{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save sale session")
	}
	return session, nil
}

func (s *service) RemoveItem(ctx context.Context, adminID, variantID string) (Session, error) {
	if err := requireAdminID(adminID); err != nil {
		return Session{}, err
	}

	session, err := s.store.Load(ctx, adminID)
	if err != nil {
		return Session{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale session")
	}
	if !session.Remove(variantID) {
		return session, nil
	}
	if err := s.store.Save(ctx, adminID, session); err != nil {
		return Session{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save sale session")
	}
	return session, nil
}

// SetPayment stages the tender details ahead of completion.
func (s *service) SetPayment(ctx context.Context, adminID string, payment Payment) (Session, error) {
	if err := requireAdminID(adminID); err != nil {
		return Session{}, err
	}
	if payment.AmountPaid.IsNegative() {
		return Session{}, pkgerrors.New(pkgerrors.CodeValidation, "Amount must not be negative.")
	}

	session, err := s.store.Load(ctx, adminID)
	if err != nil {
		return Session{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale session")
	}
	session.Payment = payment
	if err := s.store.Save(ctx, adminID, session); err != nil {
		return Session{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save sale session")
	}
	return session, nil
}

// Complete validates the tender, records the sale upstream, and clears the
// session only after the upstream accepts it. Fields left empty in the input
// fall back to the payment details staged on the session.
func (s *service) Complete(ctx context.Context, adminID string, input CompleteInput) (Completed, error) {
	if err := requireAdminID(adminID); err != nil {
		return Completed{}, err
	}

	session, err := s.store.Load(ctx, adminID)
	if err != nil {
		return Completed{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale session")
	}
	if session.IsEmpty() {
		return Completed{}, pkgerrors.New(pkgerrors.CodeValidation, "No items in the sale.")
	}

	if strings.TrimSpace(input.CustomerName) == "" {
		input.CustomerName = session.Payment.CustomerName
	}
	if strings.TrimSpace(input.PaymentMode) == "" {
		input.PaymentMode = session.Payment.PaymentMode
	}
	if input.AmountPaid.IsZero() && !session.Payment.AmountPaid.IsZero() {
		input.AmountPaid = session.Payment.AmountPaid
	}

	if strings.TrimSpace(input.PaymentMode) == "" {
		return Completed{}, pkgerrors.New(pkgerrors.CodeValidation, "Payment mode is required.")
	}
	if input.AmountPaid.IsNegative() {
		return Completed{}, pkgerrors.New(pkgerrors.CodeValidation, "Amount must not be negative.")
	}

	change, err := session.ChangeDue(input.AmountPaid)
	if err != nil {
		return Completed{}, err
	}

	customer := strings.TrimSpace(input.CustomerName)
	if customer == "" {
		customer = defaultCustomerName
	}

	payload := upstream.ManualSalePayload{
		CustomerName: customer,
		AmountPaid:   input.AmountPaid,
		ChangeGiven:  change,
		PaymentMode:  strings.TrimSpace(input.PaymentMode),
		TotalCost:    session.Total(),
		ItemsSold:    make([]upstream.SaleItem, 0, len(session.Lines)),
	}
	for _, line := range session.Lines {
		payload.ItemsSold = append(payload.ItemsSold, upstream.SaleItem{
			ProductVariantID: line.VariantID,
			Quantity:         line.Quantity,
			PriceAtSale:      line.Price,
		})
	}

	ack, err := s.upstream.SubmitManualSale(ctx, payload)
	if err != nil {
		return Completed{}, err
	}

	if clearErr := s.store.Clear(ctx, adminID); clearErr != nil && s.logg != nil {
		s.logg.Error(ctx, "clear sale session after completion", clearErr)
	}
	if s.logg != nil {
		s.logg.Info(ctx, "manual sale recorded")
	}
	return Completed{
		Message:     ack.Message,
		TotalCost:   payload.TotalCost,
		ChangeGiven: change,
	}, nil
}

// Abandon discards a staged sale without recording anything.
func (s *service) Abandon(ctx context.Context, adminID string) error {
	if err := requireAdminID(adminID); err != nil {
		return err
	}
	if err := s.store.Clear(ctx, adminID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear sale session")
	}
	return nil
}

func requireAdminID(adminID string) error {
	if strings.TrimSpace(adminID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "admin identity is required")
	}
	return nil
}
