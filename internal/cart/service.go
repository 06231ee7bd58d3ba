package cart

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/karibu-retail/storefront-gateway/pkg/errors"
	"github.com/karibu-retail/storefront-gateway/pkg/types"
)

// Service exposes cart operations for one client session per call.
type Service interface {
	Get(ctx context.Context, clientID string) (Cart, error)
	Add(ctx context.Context, clientID string, sel types.VariantSelection, quantity int) (Cart, error)
	AdjustQuantity(ctx context.Context, clientID, variantID string, delta int) (Cart, error)
	Remove(ctx context.Context, clientID, variantID string) (Cart, error)
	Clear(ctx context.Context, clientID string) error
}

type service struct {
	store Store
}

// NewService builds a cart service backed by the provided store.
func NewService(store Store) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	return &service{store: store}, nil
}

func (s *service) Get(ctx context.Context, clientID string) (Cart, error) {
	if err := requireClientID(clientID); err != nil {
		return Cart{}, err
	}
	return s.store.Load(ctx, clientID)
}

// Add merges the selection into the cart and persists the result.
func (s *service) Add(ctx context.Context, clientID string, sel types.VariantSelection, quantity int) (Cart, error) {
	if err := requireClientID(clientID); err != nil {
		return Cart{}, err
	}
	if sel.VariantID == "" {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}
	if quantity <= 0 {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive whole number")
	}

	c, err := s.store.Load(ctx, clientID)
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	c.Add(sel, quantity)
	if err := s.store.Save(ctx, clientID, c); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return c, nil
}

// AdjustQuantity applies a signed delta to a line. A delta that drops the
// quantity to zero or below removes the line. Nothing is written when the
// variant is not in the cart.
func (s *service) AdjustQuantity(ctx context.Context, clientID, variantID string, delta int) (Cart, error) {
	if err := requireClientID(clientID); err != nil {
		return Cart{}, err
	}

	c, err := s.store.Load(ctx, clientID)
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if !c.AdjustQuantity(variantID, delta) {
		return c, nil
	}
	if err := s.store.Save(ctx, clientID, c); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return c, nil
}

// Remove deletes a line, writing back only when something actually changed.
func (s *service) Remove(ctx context.Context, clientID, variantID string) (Cart, error) {
	if err := requireClientID(clientID); err != nil {
		return Cart{}, err
	}

	c, err := s.store.Load(ctx, clientID)
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if !c.Remove(variantID) {
		return c, nil
	}
	if err := s.store.Save(ctx, clientID, c); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return c, nil
}

func (s *service) Clear(ctx context.Context, clientID string) error {
	if err := requireClientID(clientID); err != nil {
		return err
	}
	if err := s.store.Clear(ctx, clientID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func requireClientID(clientID string) error {
	if strings.TrimSpace(clientID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "client session is required")
	}
	return nil
}
