package upstream

import "context"

// Stats fetches the headline dashboard figures.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := c.getJSON(ctx, "/api/dashboard/stats", nil, &stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// SalesTrends fetches the seven-day combined sales series.
func (c *Client) SalesTrends(ctx context.Context) (TrendSeries, error) {
	var series TrendSeries
	if err := c.getJSON(ctx, "/api/dashboard/sales-trends", nil, &series); err != nil {
		return TrendSeries{}, err
	}
	return series, nil
}

// StockLevels fetches per-variant stock counts and the low-stock watchlist.
func (c *Client) StockLevels(ctx context.Context) (StockLevels, error) {
	var levels StockLevels
	if err := c.getJSON(ctx, "/api/dashboard/stock-levels", nil, &levels); err != nil {
		return StockLevels{}, err
	}
	return levels, nil
}

// RecentOnlineOrders fetches the latest online order summaries.
func (c *Client) RecentOnlineOrders(ctx context.Context) ([]OnlineOrderSummary, error) {
	var orders []OnlineOrderSummary
	if err := c.getJSON(ctx, "/api/dashboard/recent-online-orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// RecentOfflineSales fetches the latest in-person sale summaries.
func (c *Client) RecentOfflineSales(ctx context.Context) ([]OfflineSaleSummary, error) {
	var sales []OfflineSaleSummary
	if err := c.getJSON(ctx, "/api/dashboard/recent-offline-sales", nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}
