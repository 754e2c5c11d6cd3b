package api

import "context"

// Customer is a customer record.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// CustomerInput is the create/update payload for a customer.
type CustomerInput struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

const pathCustomers = APIPrefix + "/customers"

// ListCustomers fetches all customers.
func (c *Client) ListCustomers(ctx context.Context) (Page[Customer], error) {
	return list[Customer](ctx, c, pathCustomers)
}

// CreateCustomer creates a customer.
func (c *Client) CreateCustomer(ctx context.Context, in CustomerInput) (Customer, error) {
	return postObject[Customer](ctx, c, pathCustomers, in)
}

// UpdateCustomer updates a customer.
func (c *Client) UpdateCustomer(ctx context.Context, id string, in CustomerInput) (Customer, error) {
	return putObject[Customer](ctx, c, pathCustomers+"/"+id, in)
}

// DeleteCustomer removes a customer.
func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.delete(ctx, pathCustomers+"/"+id)
}
