package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/postiq-ai/postiq-bot/pkg/types"
)

type CategoryClient struct {
	*Client
}

func NewCategoryClient(c *Client) *CategoryClient {
	return &CategoryClient{Client: c}
}

type CreateCategoryRequest struct {
	OrganizationID int64    `json:"organization_id"`
	Name           string   `json:"name"`
	Prompt         string   `json:"prompt"`
	Tags           []string `json:"tags"`
}

func (c *CategoryClient) Create(ctx context.Context, req CreateCategoryRequest) (*types.Category, error) {
	var out types.Category
	err := c.do(ctx, "clients.category.Create", http.MethodPost,
		"/api/categories", nil, req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CategoryClient) Get(ctx context.Context, categoryID int64) (*types.Category, error) {
	var out types.Category
	err := c.do(ctx, "clients.category.Get", http.MethodGet,
		fmt.Sprintf("/api/categories/%d", categoryID), nil, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CategoryClient) ListByOrganization(ctx context.Context, organizationID int64) ([]types.Category, error) {
	var out []types.Category
	err := c.do(ctx, "clients.category.ListByOrganization", http.MethodGet,
		fmt.Sprintf("/api/organizations/%d/categories", organizationID), nil, nil, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CategoryClient) Update(ctx context.Context, categoryID int64, data types.CategoryData) (*types.Category, error) {
	var out types.Category
	err := c.do(ctx, "clients.category.Update", http.MethodPatch,
		fmt.Sprintf("/api/categories/%d", categoryID), nil, data, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CategoryClient) Delete(ctx context.Context, categoryID int64) error {
	return c.do(ctx, "clients.category.Delete", http.MethodDelete,
		fmt.Sprintf("/api/categories/%d", categoryID), nil, nil, nil)
}
