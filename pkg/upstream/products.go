package upstream

import (
	"context"
	"net/url"
	"strings"
)

// SearchProducts fetches the catalog, optionally filtered by a search term
// matched against product names and descriptions upstream.
func (c *Client) SearchProducts(ctx context.Context, search string) ([]Product, error) {
	query := url.Values{}
	if term := strings.TrimSpace(search); term != "" {
		query.Set("search", term)
	}

	var products []Product
	if err := c.getJSON(ctx, "/api/products", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}
