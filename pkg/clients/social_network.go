package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/postiq-ai/postiq-bot/pkg/types"
)

type SocialNetworkClient struct {
	*Client
}

func NewSocialNetworkClient(c *Client) *SocialNetworkClient {
	return &SocialNetworkClient{Client: c}
}

func (c *SocialNetworkClient) ListByOrganization(ctx context.Context, organizationID int64) ([]types.SocialNetwork, error) {
	var out []types.SocialNetwork
	err := c.do(ctx, "clients.social_network.ListByOrganization", http.MethodGet,
		fmt.Sprintf("/api/organizations/%d/social-networks", organizationID), nil, nil, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
