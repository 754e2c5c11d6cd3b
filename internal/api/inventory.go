package api

import "context"

// InventoryItem is a stock item.
type InventoryItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
	MinLevel float64 `json:"min_level,omitempty"`
}

// MonthlyRecord is an aggregated inventory record for one month.
type MonthlyRecord struct {
	Month    string  `json:"month"`
	ItemID   string  `json:"item_id"`
	ItemName string  `json:"item_name,omitempty"`
	Opening  float64 `json:"opening"`
	Received float64 `json:"received"`
	Issued   float64 `json:"issued"`
	Closing  float64 `json:"closing"`
}

// TrendPoint is one point of the inventory trend series.
type TrendPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

const pathInventory = APIPrefix + "/inventory"

// ListInventory fetches all stock items.
func (c *Client) ListInventory(ctx context.Context) (Page[InventoryItem], error) {
	return list[InventoryItem](ctx, c, pathInventory)
}

// ListMonthlyRecords fetches the aggregated records for one month (YYYY-MM).
func (c *Client) ListMonthlyRecords(ctx context.Context, month string) (Page[MonthlyRecord], error) {
	path := pathInventory + "/monthly-records"
	if month != "" {
		path += "?month=" + month
	}
	return list[MonthlyRecord](ctx, c, path)
}

// InventoryTrend fetches the stock trend series.
func (c *Client) InventoryTrend(ctx context.Context) (Page[TrendPoint], error) {
	return list[TrendPoint](ctx, c, pathInventory+"/trend")
}
