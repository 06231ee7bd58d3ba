package types

import "github.com/shopspring/decimal"

// VariantSelection is the typed snapshot of a product variant captured at
// selection time. It travels explicitly between controllers instead of being
// round-tripped through view state.
type VariantSelection struct {
	VariantID     string          `json:"variant_id" validate:"required"`
	ProductName   string          `json:"product_name" validate:"required"`
	QuantityValue string          `json:"quantity_value"`
	QuantityUnit  string          `json:"quantity_unit"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	StockLevel    int             `json:"stock_level"`
}
