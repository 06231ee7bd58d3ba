package upstream

import (
	"context"

	pkgerrors "github.com/karibu-retail/storefront-gateway/pkg/errors"
)

// SubmitFullOrder posts an online order. A non-success acknowledgement is
// surfaced as a rejection carrying the upstream message verbatim so stock
// errors and similar business failures reach the shopper unchanged.
func (c *Client) SubmitFullOrder(ctx context.Context, order OrderPayload) (Ack, error) {
	ack, err := c.postAck(ctx, "/api/submit-full-order", order)
	if err != nil {
		return Ack{}, err
	}
	if !ack.OK() {
		return ack, pkgerrors.New(pkgerrors.CodeUpstreamRejected, ack.Message)
	}
	return ack, nil
}

// SubmitManualSale records a completed in-person sale.
func (c *Client) SubmitManualSale(ctx context.Context, sale ManualSalePayload) (Ack, error) {
	ack, err := c.postAck(ctx, "/api/manual-sale", sale)
	if err != nil {
		return Ack{}, err
	}
	if !ack.OK() {
		return ack, pkgerrors.New(pkgerrors.CodeUpstreamRejected, ack.Message)
	}
	return ack, nil
}
