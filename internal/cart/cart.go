package cart

import (
	"github.com/shopspring/decimal"

	"github.com/karibu-retail/storefront-gateway/pkg/types"
)

// LineItem is one distinct variant in a shopper's cart.
type LineItem struct {
	VariantID        string          `json:"variantId"`
	ProductName      string          `json:"productName"`
	QuantityValue    string          `json:"quantityValue"`
	QuantityUnit     string          `json:"quantityUnit"`
	SellingPrice     decimal.Decimal `json:"sellingPrice"`
	CustomerQuantity int             `json:"customerQuantity"`
}

// Cart is the full persisted cart contents for one client session. Order of
// items is preserved across mutations.
type Cart struct {
	Items []LineItem `json:"items"`
}

// Add merges a selected variant into the cart. An existing line for the same
// variant has its quantity incremented; otherwise a new line is appended.
func (c *Cart) Add(sel types.VariantSelection, quantity int) {
	if quantity <= 0 {
		return
	}
	for i := range c.Items {
		if c.Items[i].VariantID == sel.VariantID {
			c.Items[i].CustomerQuantity += quantity
			return
		}
	}
	c.Items = append(c.Items, LineItem{
		VariantID:        sel.VariantID,
		ProductName:      sel.ProductName,
		QuantityValue:    sel.QuantityValue,
		QuantityUnit:     sel.QuantityUnit,
		SellingPrice:     sel.SellingPrice,
		CustomerQuantity: quantity,
	})
}

// AdjustQuantity applies a signed delta to the line for the given variant.
// A resulting quantity of zero or less removes the line. It reports whether
// the cart changed.
func (c *Cart) AdjustQuantity(variantID string, delta int) bool {
	for i := range c.Items {
		if c.Items[i].VariantID != variantID {
			continue
		}
		next := c.Items[i].CustomerQuantity + delta
		if next <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].CustomerQuantity = next
		}
		return true
	}
	return false
}

// Remove deletes the line for the given variant and reports whether a line
// was actually removed.
func (c *Cart) Remove(variantID string) bool {
	for i := range c.Items {
		if c.Items[i].VariantID == variantID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Total sums selling price times quantity across all lines, rounded to two
// decimal places.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		line := item.SellingPrice.Mul(decimal.NewFromInt(int64(item.CustomerQuantity)))
		total = total.Add(line)
	}
	return total.Round(2)
}

// Count returns the number of units across all lines.
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.CustomerQuantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
