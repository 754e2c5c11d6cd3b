package api

import "context"

// Sale is a recorded sale.
type Sale struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	Product    string  `json:"product"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Total      float64 `json:"total"`
	CustomerID string  `json:"customer_id,omitempty"`
	RecordedBy string  `json:"recorded_by,omitempty"`
}

// SaleInput is the create/update payload for a sale.
type SaleInput struct {
	Date       string  `json:"date"`
	Product    string  `json:"product"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CustomerID string  `json:"customer_id,omitempty"`
}

const pathSales = APIPrefix + "/sales"

// ListSales fetches all sales.
func (c *Client) ListSales(ctx context.Context) (Page[Sale], error) {
	return list[Sale](ctx, c, pathSales)
}

// RecordSale records a new sale.
func (c *Client) RecordSale(ctx context.Context, in SaleInput) (Sale, error) {
	return postObject[Sale](ctx, c, pathSales, in)
}

// UpdateSale updates an existing sale.
func (c *Client) UpdateSale(ctx context.Context, id string, in SaleInput) (Sale, error) {
	return putObject[Sale](ctx, c, pathSales+"/"+id, in)
}

// DeleteSale removes a sale.
func (c *Client) DeleteSale(ctx context.Context, id string) error {
	return c.delete(ctx, pathSales+"/"+id)
}
