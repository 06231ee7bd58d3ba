package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ID is an opaque upstream identifier. The retail API emits numeric ids today
// but the gateway treats them as strings end to end, so both encodings decode.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("upstream id must be string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Ack is the {status, message} envelope the retail API returns for writes.
type Ack struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// OK reports whether the upstream accepted the request.
func (a Ack) OK() bool { return a.Status == "success" }

// Variant is a purchasable SKU of a product.
type Variant struct {
	ID            ID              `json:"id"`
	QuantityValue string          `json:"quantity_value"`
	QuantityUnit  string          `json:"quantity_unit"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	StockLevel    int             `json:"stock_level"`
}

// Product is a catalog entry with its variants.
type Product struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Variants    []Variant `json:"variants"`
}

// Testimonial is rendered verbatim by the storefront.
type Testimonial struct {
	AuthorName     string `json:"author_name"`
	AuthorPosition string `json:"author_position"`
	Text           string `json:"text"`
	ImageURL       string `json:"image_url"`
}

// FAQ is rendered verbatim by the storefront.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// OrderItem is one line of an order submission.
type OrderItem struct {
	ProductVariantID string          `json:"product_variant_id"`
	Quantity         int             `json:"quantity"`
	SellingPrice     decimal.Decimal `json:"selling_price"`
}

// OrderPayload is the full-order submission body. It is built at submit time
// and never persisted.
type OrderPayload struct {
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	DeliveryAddress string      `json:"delivery_address"`
	Items           []OrderItem `json:"items"`
}

// SaleItem is one line of a manual (offline) sale submission.
type SaleItem struct {
	ProductVariantID string          `json:"product_variant_id"`
	Quantity         int             `json:"quantity"`
	PriceAtSale      decimal.Decimal `json:"price_at_sale"`
}

// ManualSalePayload is the staff-entered offline sale submission body.
type ManualSalePayload struct {
	CustomerName string          `json:"customer_name"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	ChangeGiven  decimal.Decimal `json:"change_given"`
	PaymentMode  string          `json:"payment_mode"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	ItemsSold    []SaleItem      `json:"items_sold"`
}

// ContactMessage is the contact form submission, sent form-encoded.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// Stats is the dashboard summary payload.
type Stats struct {
	Sales      SalesStats      `json:"sales"`
	Inventory  InventoryStats  `json:"inventory"`
	Accounting AccountingStats `json:"accounting"`
}

type SalesStats struct {
	TotalOrders         int             `json:"total_orders"`
	MonthlyOrders       int             `json:"monthly_orders"`
	TotalOfflineSales   int             `json:"total_offline_sales"`
	MonthlyOfflineSales int             `json:"monthly_offline_sales"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	MonthlyRevenue      decimal.Decimal `json:"monthly_revenue"`
}

type InventoryStats struct {
	TotalProducts    int `json:"total_products"`
	TotalVariants    int `json:"total_variants"`
	LowStockVariants int `json:"low_stock_variants"`
}

type AccountingStats struct {
	GrossProfit        decimal.Decimal `json:"gross_profit"`
	MonthlyGrossProfit decimal.Decimal `json:"monthly_gross_profit"`
	NetProfit          decimal.Decimal `json:"net_profit"`
	MonthlyNetProfit   decimal.Decimal `json:"monthly_net_profit"`
	ProfitMargin       decimal.Decimal `json:"profit_margin"`
}

// TrendSeries is a labeled chart series (sales trends).
type TrendSeries struct {
	Labels []string          `json:"labels"`
	Data   []decimal.Decimal `json:"data"`
}

// StockLevels combines the stock chart series with the low-stock watchlist.
type StockLevels struct {
	Labels        []string       `json:"labels"`
	Data          []int          `json:"data"`
	LowStockItems []LowStockItem `json:"low_stock_items"`
}

type LowStockItem struct {
	ProductName  string          `json:"product_name"`
	VariantInfo  string          `json:"variant_info"`
	StockLevel   int             `json:"stock_level"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// OnlineOrderSummary is one row of the recent online orders table.
type OnlineOrderSummary struct {
	ID            ID              `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	OrderedAt     string          `json:"ordered_at"`
	PaymentStatus string          `json:"payment_status"`
	ItemsCount    int             `json:"items_count"`
}

// OfflineSaleSummary is one row of the recent offline sales table.
type OfflineSaleSummary struct {
	ID           ID              `json:"id"`
	CustomerName string          `json:"customer_name"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	ChangeGiven  decimal.Decimal `json:"change_given"`
	PaymentMode  string          `json:"payment_mode"`
	SaleDate     string          `json:"sale_date"`
	ItemsCount   int             `json:"items_count"`
}
