package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/postiq-ai/postiq-bot/pkg/types"
)

type OrganizationClient struct {
	*Client
}

func NewOrganizationClient(c *Client) *OrganizationClient {
	return &OrganizationClient{Client: c}
}

func (c *OrganizationClient) Get(ctx context.Context, organizationID int64) (*types.Organization, error) {
	var out types.Organization
	err := c.do(ctx, "clients.organization.Get", http.MethodGet,
		fmt.Sprintf("/api/organizations/%d", organizationID), nil, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *OrganizationClient) Update(ctx context.Context, organizationID int64, data types.OrganizationData) (*types.Organization, error) {
	var out types.Organization
	err := c.do(ctx, "clients.organization.Update", http.MethodPatch,
		fmt.Sprintf("/api/organizations/%d", organizationID), nil, data, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
