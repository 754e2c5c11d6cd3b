package api

import "context"

// Expense is a submitted expense.
type Expense struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	SubmittedBy string  `json:"submitted_by,omitempty"`
}

// ExpenseInput submits an expense.
type ExpenseInput struct {
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
}

// ExpenseSummary aggregates expenses by status and category.
type ExpenseSummary struct {
	Total      float64            `json:"total"`
	Pending    float64            `json:"pending"`
	Approved   float64            `json:"approved"`
	Rejected   float64            `json:"rejected"`
	ByCategory map[string]float64 `json:"by_category,omitempty"`
}

const pathExpenses = APIPrefix + "/expenses"

// ListExpenses fetches all expenses.
func (c *Client) ListExpenses(ctx context.Context) (Page[Expense], error) {
	return list[Expense](ctx, c, pathExpenses)
}

// CreateExpense submits a new expense.
func (c *Client) CreateExpense(ctx context.Context, in ExpenseInput) (Expense, error) {
	return postObject[Expense](ctx, c, pathExpenses, in)
}

// ApproveExpense approves a pending expense.
func (c *Client) ApproveExpense(ctx context.Context, id string) (Expense, error) {
	return postObject[Expense](ctx, c, pathExpenses+"/"+id+"/approve", nil)
}

// RejectExpense rejects a pending expense with a reason.
func (c *Client) RejectExpense(ctx context.Context, id, reason string) (Expense, error) {
	body := map[string]string{"reason": reason}
	return postObject[Expense](ctx, c, pathExpenses+"/"+id+"/reject", body)
}

// ExpensesSummary fetches the expense aggregate.
func (c *Client) ExpensesSummary(ctx context.Context) (ExpenseSummary, error) {
	return getObject[ExpenseSummary](ctx, c, pathExpenses+"/summary")
}
