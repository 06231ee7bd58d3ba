package manualsale

import (
	"fmt"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/karibu-retail/storefront-gateway/pkg/errors"
	"github.com/karibu-retail/storefront-gateway/pkg/types"
)

// SaleLine is one variant staged in an in-person sale.
type SaleLine struct {
	VariantID     string          `json:"variantId"`
	ProductName   string          `json:"productName"`
	QuantityValue string          `json:"quantityValue"`
	QuantityUnit  string          `json:"quantityUnit"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	StockLevel    int             `json:"stockLevel"`
}

// Remaining reports how many more units of this line can still be added.
func (l SaleLine) Remaining() int {
	return l.StockLevel - l.Quantity
}

// Payment holds the tender details staged before the sale is closed.
type Payment struct {
	CustomerName string          `json:"customerName"`
	PaymentMode  string          `json:"paymentMode"`
	AmountPaid   decimal.Decimal `json:"amountPaid"`
}

// Session is the staged state of one staff member's in-person sale.
type Session struct {
	Lines   []SaleLine `json:"lines"`
	Payment Payment    `json:"payment"`
}

// Add merges a variant into the sale, capped by the stock level captured at
// selection time. Adding past the cap fails and leaves the session unchanged.
func (s *Session) Add(sel types.VariantSelection, quantity int) error {
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "Quantity must be greater than 0.")
	}
	for i := range s.Lines {
		if s.Lines[i].VariantID != sel.VariantID {
			continue
		}
		if quantity > s.Lines[i].Remaining() {
			return insufficientStock(s.Lines[i].Remaining())
		}
		s.Lines[i].Quantity += quantity
		return nil
	}
	if quantity > sel.StockLevel {
		return insufficientStock(sel.StockLevel)
	}
	s.Lines = append(s.Lines, SaleLine{
		VariantID:     sel.VariantID,
		ProductName:   sel.ProductName,
		QuantityValue: sel.QuantityValue,
		QuantityUnit:  sel.QuantityUnit,
		Price:         sel.SellingPrice,
		Quantity:      quantity,
		StockLevel:    sel.StockLevel,
	})
	return nil
}

// Remove drops the line for the given variant and reports whether it existed.
func (s *Session) Remove(variantID string) bool {
	for i := range s.Lines {
		if s.Lines[i].VariantID == variantID {
			s.Lines = append(s.Lines[:i], s.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Total sums price times quantity across the staged lines, to two decimals.
func (s *Session) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.Lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total.Round(2)
}

// ChangeDue computes the change for the amount tendered. Underpayment is an
// error: the sale cannot close short.
func (s *Session) ChangeDue(amountPaid decimal.Decimal) (decimal.Decimal, error) {
	total := s.Total()
	if amountPaid.LessThan(total) {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("Amount paid (%s) is less than the total (%s).", amountPaid.StringFixed(2), total.StringFixed(2)))
	}
	return amountPaid.Sub(total).Round(2), nil
}

// IsEmpty reports whether no lines are staged.
func (s *Session) IsEmpty() bool {
	return len(s.Lines) == 0
}

func insufficientStock(available int) error {
	return pkgerrors.New(pkgerrors.CodeValidation,
		fmt.Sprintf("Insufficient stock. Only %d units available.", available))
}
