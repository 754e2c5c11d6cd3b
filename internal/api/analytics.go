package api

import (
	"context"
	"net/http"
	"time"
)

// AnalyticsSummary is the dashboard aggregate.
type AnalyticsSummary struct {
	Period        string  `json:"period,omitempty"`
	TotalSales    float64 `json:"total_sales"`
	TotalExpenses float64 `json:"total_expenses"`
	NetProfit     float64 `json:"net_profit"`
	StaffCount    int     `json:"staff_count"`
	SalesCount    int     `json:"sales_count"`
}

// FinancialOverview is the financial aggregation view.
type FinancialOverview struct {
	Period   string  `json:"period,omitempty"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Payroll  float64 `json:"payroll"`
	Profit   float64 `json:"profit"`
}

// ExportFormat names a server-side export blob format.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
	ExportPDF  ExportFormat = "pdf"
)

// Valid reports whether f is a supported export format.
func (f ExportFormat) Valid() bool {
	switch f {
	case ExportCSV, ExportXLSX, ExportPDF:
		return true
	default:
		return false
	}
}

const (
	pathAnalytics = APIPrefix + "/analytics"

	// summaryAttempts and summaryRetryDelay define the only retry policy
	// in the client: the dashboard summary retries with linearly
	// increasing delay. Every other operation is single-attempt.
	summaryAttempts   = 3
	summaryRetryDelay = time.Second
)

// retryDelay is overridable in tests.
var retryDelay = summaryRetryDelay

// AnalyticsSummary fetches the dashboard aggregate, retrying up to three
// times with linearly increasing delay between attempts (1s, then 2s).
// Authentication failures are not retried: once the pipeline has torn the
// session down, further attempts cannot succeed.
func (c *Client) AnalyticsSummary(ctx context.Context) (AnalyticsSummary, error) {
	var lastErr error
	for attempt := 1; attempt <= summaryAttempts; attempt++ {
		summary, err := getObject[AnalyticsSummary](ctx, c, pathAnalytics+"/summary")
		if err == nil {
			return summary, nil
		}
		lastErr = err

		if apiErr, ok := err.(*Error); ok && apiErr.Status == http.StatusUnauthorized {
			break
		}
		if attempt == summaryAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return AnalyticsSummary{}, ctx.Err()
		case <-time.After(time.Duration(attempt) * retryDelay):
		}
	}
	return AnalyticsSummary{}, lastErr
}

// FinancialOverview fetches the financial aggregation view.
func (c *Client) FinancialOverview(ctx context.Context, period string) (FinancialOverview, error) {
	path := pathAnalytics + "/financial"
	if period != "" {
		path += "?period=" + period
	}
	return getObject[FinancialOverview](ctx, c, path)
}

// ExportReport downloads a server-generated report blob in the given format.
// The raw bytes are returned; the caller owns writing them to disk.
func (c *Client) ExportReport(ctx context.Context, format ExportFormat) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, pathAnalytics+"/export?format="+string(format), nil)
}
