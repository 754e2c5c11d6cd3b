package api

import "context"

// PayrollRun is a payroll run for a period.
type PayrollRun struct {
	ID         string  `json:"id"`
	Period     string  `json:"period"`
	StaffCount int     `json:"staff_count"`
	GrossTotal float64 `json:"gross_total"`
	NetTotal   float64 `json:"net_total"`
	Status     string  `json:"status"`
}

// Payslip is a single staff member's slip within a run.
type Payslip struct {
	ID         string  `json:"id"`
	RunID      string  `json:"run_id"`
	StaffID    string  `json:"staff_id"`
	StaffName  string  `json:"staff_name"`
	Gross      float64 `json:"gross"`
	Deductions float64 `json:"deductions"`
	Net        float64 `json:"net"`
}

// PayrollRunInput starts a payroll run.
type PayrollRunInput struct {
	Period string `json:"period"`
}

const pathPayroll = APIPrefix + "/payroll"

// ListPayroll fetches payroll runs, optionally filtered to one period
// (YYYY-MM). An empty period fetches all runs.
func (c *Client) ListPayroll(ctx context.Context, period string) (Page[PayrollRun], error) {
	path := pathPayroll
	if period != "" {
		path += "?period=" + period
	}
	return list[PayrollRun](ctx, c, path)
}

// CreatePayrollRun starts a payroll run for a period.
func (c *Client) CreatePayrollRun(ctx context.Context, in PayrollRunInput) (PayrollRun, error) {
	return postObject[PayrollRun](ctx, c, pathPayroll, in)
}

// GetPayslip fetches one payslip.
func (c *Client) GetPayslip(ctx context.Context, id string) (Payslip, error) {
	return getObject[Payslip](ctx, c, pathPayroll+"/payslips/"+id)
}

// ListPayslips fetches the payslips of a run.
func (c *Client) ListPayslips(ctx context.Context, runID string) (Page[Payslip], error) {
	return list[Payslip](ctx, c, pathPayroll+"/"+runID+"/payslips")
}
