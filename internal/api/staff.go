package api

import (
	"context"

	"github.com/opsdeskhq/opsdesk/internal/domain"
)

// StaffMember is a staff record.
type StaffMember struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone,omitempty"`
	Role     domain.Role `json:"role"`
	Status   string      `json:"status,omitempty"`
	HireDate string      `json:"hire_date,omitempty"`
	Salary   float64     `json:"salary,omitempty"`
}

// StaffInput is the create/update payload for a staff member.
type StaffInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone,omitempty"`
	Role     domain.Role `json:"role"`
	Status   string      `json:"status,omitempty"`
	HireDate string      `json:"hire_date,omitempty"`
	Salary   float64     `json:"salary,omitempty"`
}

const pathStaff = APIPrefix + "/staff"

// ListStaff fetches all staff members.
func (c *Client) ListStaff(ctx context.Context) (Page[StaffMember], error) {
	return list[StaffMember](ctx, c, pathStaff)
}

// GetStaff fetches one staff member by ID.
func (c *Client) GetStaff(ctx context.Context, id string) (StaffMember, error) {
	return getObject[StaffMember](ctx, c, pathStaff+"/"+id)
}

// CreateStaff creates a staff member.
func (c *Client) CreateStaff(ctx context.Context, in StaffInput) (StaffMember, error) {
	return postObject[StaffMember](ctx, c, pathStaff, in)
}

// UpdateStaff updates a staff member.
func (c *Client) UpdateStaff(ctx context.Context, id string, in StaffInput) (StaffMember, error) {
	return putObject[StaffMember](ctx, c, pathStaff+"/"+id, in)
}

// DeleteStaff removes a staff member.
func (c *Client) DeleteStaff(ctx context.Context, id string) error {
	return c.delete(ctx, pathStaff+"/"+id)
}
