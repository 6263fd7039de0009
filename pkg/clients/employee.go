package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/postiq-ai/postiq-bot/pkg/types"
)

type EmployeeClient struct {
	*Client
}

func NewEmployeeClient(c *Client) *EmployeeClient {
	return &EmployeeClient{Client: c}
}

func (c *EmployeeClient) GetByAccount(ctx context.Context, accountID int64) (*types.Employee, error) {
	var out types.Employee
	err := c.do(ctx, "clients.employee.GetByAccount", http.MethodGet,
		fmt.Sprintf("/api/employees/account/%d", accountID), nil, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type CreateEmployeeRequest struct {
	AccountID      int64  `json:"account_id"`
	OrganizationID int64  `json:"organization_id"`
	Name           string `json:"name"`
	Role           string `json:"role"`
}

func (c *EmployeeClient) Create(ctx context.Context, req CreateEmployeeRequest) (*types.Employee, error) {
	var out types.Employee
	err := c.do(ctx, "clients.employee.Create", http.MethodPost,
		"/api/employees", nil, req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *EmployeeClient) UpdatePermissions(ctx context.Context, accountID int64, perms types.UpdateEmployeePermissions) error {
	return c.do(ctx, "clients.employee.UpdatePermissions", http.MethodPatch,
		fmt.Sprintf("/api/employees/%d/permissions", accountID), nil, perms, nil)
}

func (c *EmployeeClient) Delete(ctx context.Context, accountID int64) error {
	return c.do(ctx, "clients.employee.Delete", http.MethodDelete,
		fmt.Sprintf("/api/employees/%d", accountID), nil, nil, nil)
}

func (c *EmployeeClient) ListByOrganization(ctx context.Context, organizationID int64) ([]types.Employee, error) {
	var out []types.Employee
	err := c.do(ctx, "clients.employee.ListByOrganization", http.MethodGet,
		fmt.Sprintf("/api/organizations/%d/employees", organizationID), nil, nil, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
