package checkout

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karibu-retail/storefront-gateway/internal/cart"
	pkgerrors "github.com/karibu-retail/storefront-gateway/pkg/errors"
	"github.com/karibu-retail/storefront-gateway/pkg/types"
	"github.com/karibu-retail/storefront-gateway/pkg/upstream"
)

type memStore struct {
	carts map[string]cart.Cart
}

func newMemStore() *memStore { return &memStore{carts: map[string]cart.Cart{}} }

func (m *memStore) Load(_ context.Context, clientID string) (cart.Cart, error) {
	return m.carts[clientID], nil
}

func (m *memStore) Save(_ context.Context, clientID string, c cart.Cart) error {
	m.carts[clientID] = c
	return nil
}

func (m *memStore) Clear(_ context.Context, clientID string) error {
	delete(m.carts, clientID)
	return nil
}

type fakeSubmitter struct {
	payloads []upstream.OrderPayload
	ack      upstream.Ack
	err      error
}

func (f *fakeSubmitter) SubmitFullOrder(_ context.Context, order upstream.OrderPayload) (upstream.Ack, error) {
	f.payloads = append(f.payloads, order)
	if f.err != nil {
		return upstream.Ack{}, f.err
	}
	return f.ack, nil
}

func setupService(t *testing.T, store *memStore, submitter *fakeSubmitter) Service {
	t.Helper()
	carts, err := cart.NewService(store)
	require.NoError(t, err)
	svc, err := NewService(carts, submitter, nil)
	require.NoError(t, err)
	return svc
}

func seedCart(t *testing.T, store *memStore, clientID string) {
	t.Helper()
	var c cart.Cart
	c.Add(types.VariantSelection{
		VariantID:    "v-1",
		ProductName:  "Honey",
		SellingPrice: decimal.RequireFromString("19.99"),
	}, 2)
	require.NoError(t, store.Save(context.Background(), clientID, c))
}

func validCheckout() CheckoutInput {
	return CheckoutInput{
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		CustomerPhone:   "0712345678",
		DeliveryAddress: "12 Moi Avenue, Nairobi",
	}
}

func TestDirectOrderUsesPlaceholders(t *testing.T) {
	submitter := &fakeSubmitter{ack: upstream.Ack{Status: "success", Message: "Order 9 placed successfully!"}}
	svc := setupService(t, newMemStore(), submitter)

	receipt, err := svc.DirectOrder(context.Background(), DirectOrderInput{
		CustomerName:  "Jane Doe",
		CustomerPhone: "0712345678",
		Quantity:      2,
		Selection: types.VariantSelection{
			VariantID:    "v-1",
			ProductName:  "Honey",
			SellingPrice: decimal.RequireFromString("19.99"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Order 9 placed successfully!", receipt.Message)

	require.Len(t, submitter.payloads, 1)
	payload := submitter.payloads[0]
	assert.Equal(t, "direct@order.com", payload.CustomerEmail)
	assert.Equal(t, "Direct Order - No Address", payload.DeliveryAddress)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "v-1", payload.Items[0].ProductVariantID)
	assert.Equal(t, 2, payload.Items[0].Quantity)
}

func TestDirectOrderValidationBlocksSubmission(t *testing.T) {
	submitter := &fakeSubmitter{}
	svc := setupService(t, newMemStore(), submitter)

	_, err := svc.DirectOrder(context.Background(), DirectOrderInput{
		CustomerName:  "J",
		CustomerPhone: "123",
		Quantity:      0,
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	assert.Empty(t, submitter.payloads, "invalid input must not reach upstream")
}

func TestCheckoutSubmitsCartAndClears(t *testing.T) {
	store := newMemStore()
	seedCart(t, store, "client-a")
	submitter := &fakeSubmitter{ack: upstream.Ack{Status: "success", Message: "Order 12 placed successfully! Total: KSh 39.98"}}
	svc := setupService(t, store, submitter)

	receipt, err := svc.Checkout(context.Background(), "client-a", validCheckout())
	require.NoError(t, err)
	assert.Contains(t, receipt.Message, "placed successfully")

	require.Len(t, submitter.payloads, 1)
	require.Len(t, submitter.payloads[0].Items, 1)
	assert.Equal(t, 2, submitter.payloads[0].Items[0].Quantity)

	_, ok := store.carts["client-a"]
	assert.False(t, ok, "cart must be cleared after an accepted order")
}

func TestCheckoutShortAddressBlocksSubmission(t *testing.T) {
	store := newMemStore()
	seedCart(t, store, "client-a")
	submitter := &fakeSubmitter{}
	svc := setupService(t, store, submitter)

	input := validCheckout()
	input.DeliveryAddress = "abc"

	_, err := svc.Checkout(context.Background(), "client-a", input)
	require.Error(t, err)
	assert.Empty(t, submitter.payloads)
	saved := store.carts["client-a"]
	assert.False(t, saved.IsEmpty(), "cart untouched on local validation failure")
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	submitter := &fakeSubmitter{}
	svc := setupService(t, newMemStore(), submitter)

	_, err := svc.Checkout(context.Background(), "client-a", validCheckout())
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	assert.Empty(t, submitter.payloads)
}

func TestCheckoutRejectionLeavesCartIntact(t *testing.T) {
	store := newMemStore()
	seedCart(t, store, "client-a")
	submitter := &fakeSubmitter{err: pkgerrors.New(pkgerrors.CodeUpstreamRejected, "Insufficient stock for Honey (500g). Available: 1, Requested: 2")}
	svc := setupService(t, store, submitter)

	_, err := svc.Checkout(context.Background(), "client-a", validCheckout())
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUpstreamRejected, appErr.Code())
	assert.Contains(t, appErr.Message(), "Insufficient stock")
	saved := store.carts["client-a"]
	assert.False(t, saved.IsEmpty(), "rejected order must not clear the cart")
}
