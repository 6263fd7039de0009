package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/postiq-ai/postiq-bot/pkg/types"
)

type PublicationClient struct {
	*Client
}

func NewPublicationClient(c *Client) *PublicationClient {
	return &PublicationClient{Client: c}
}

type GenerateTextRequest struct {
	OrganizationID int64  `json:"organization_id"`
	CategoryID     int64  `json:"category_id"`
	UserText       string `json:"user_text"`
}

func (c *PublicationClient) GenerateText(ctx context.Context, req GenerateTextRequest) (*types.GeneratedPublication, error) {
	var out types.GeneratedPublication
	err := c.do(ctx, "clients.publication.GenerateText", http.MethodPost,
		"/api/publications/generate", nil, req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type RegenerateTextRequest struct {
	OrganizationID int64  `json:"organization_id"`
	CategoryID     int64  `json:"category_id"`
	PreviousText   string `json:"previous_text"`
	Prompt         string `json:"prompt,omitempty"`
}

func (c *PublicationClient) RegenerateText(ctx context.Context, req RegenerateTextRequest) (*types.GeneratedPublication, error) {
	var out types.GeneratedPublication
	err := c.do(ctx, "clients.publication.RegenerateText", http.MethodPost,
		"/api/publications/regenerate", nil, req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type GenerateImageRequest struct {
	OrganizationID  int64  `json:"organization_id"`
	PublicationText string `json:"publication_text"`
	Prompt          string `json:"prompt,omitempty"`
}

type GenerateImageResponse struct {
	ImageURLs []string `json:"image_urls"`
}

func (c *PublicationClient) GenerateImage(ctx context.Context, req GenerateImageRequest) ([]string, error) {
	var out GenerateImageResponse
	err := c.do(ctx, "clients.publication.GenerateImage", http.MethodPost,
		"/api/publications/generate-image", nil, req, &out)
	if err != nil {
		return nil, err
	}
	return out.ImageURLs, nil
}

type CreatePublicationRequest struct {
	OrganizationID   int64                  `json:"organization_id"`
	CategoryID       int64                  `json:"category_id"`
	CreatorAccountID int64                  `json:"creator_account_id"`
	Title            string                 `json:"title"`
	Text             string                 `json:"text"`
	Tags             []string               `json:"tags"`
	ImageURL         string                 `json:"image_url,omitempty"`
	ImageFileID      string                 `json:"image_file_id,omitempty"`
	SocialNetworks   []string               `json:"social_networks"`
	ModerationStatus types.ModerationStatus `json:"moderation_status"`
}

func (c *PublicationClient) Create(ctx context.Context, req CreatePublicationRequest) (*types.Publication, error) {
	var out types.Publication
	err := c.do(ctx, "clients.publication.Create", http.MethodPost,
		"/api/publications", nil, req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type ChangePublicationRequest struct {
	Title          *string  `json:"title,omitempty"`
	Text           *string  `json:"text,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	ImageURL       *string  `json:"image_url,omitempty"`
	ImageFileID    *string  `json:"image_file_id,omitempty"`
	SocialNetworks []string `json:"social_networks,omitempty"`
}

func (c *PublicationClient) Change(ctx context.Context, publicationID string, req ChangePublicationRequest) (*types.Publication, error) {
	var out types.Publication
	err := c.do(ctx, "clients.publication.Change", http.MethodPatch,
		"/api/publications/"+publicationID, nil, req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *PublicationClient) Delete(ctx context.Context, publicationID string) error {
	return c.do(ctx, "clients.publication.Delete", http.MethodDelete,
		"/api/publications/"+publicationID, nil, nil, nil)
}

type ModerateRequest struct {
	ModeratorAccountID int64                  `json:"moderator_account_id"`
	Verdict            types.ModerationStatus `json:"verdict"`
	// Empty comment means "no comment"; the publication service accepts it.
	ModerationComment string `json:"moderation_comment"`
}

func (c *PublicationClient) Moderate(ctx context.Context, publicationID string, req ModerateRequest) error {
	return c.do(ctx, "clients.publication.Moderate", http.MethodPost,
		fmt.Sprintf("/api/publications/%s/moderate", publicationID), nil, req, nil)
}

func (c *PublicationClient) SendToModeration(ctx context.Context, publicationID string) error {
	return c.do(ctx, "clients.publication.SendToModeration", http.MethodPost,
		fmt.Sprintf("/api/publications/%s/send-to-moderation", publicationID), nil, nil, nil)
}

func (c *PublicationClient) GetByID(ctx context.Context, publicationID string) (*types.Publication, error) {
	var out types.Publication
	err := c.do(ctx, "clients.publication.GetByID", http.MethodGet,
		"/api/publications/"+publicationID, nil, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *PublicationClient) ListByOrganization(ctx context.Context, organizationID int64, status types.ModerationStatus) ([]types.Publication, error) {
	query := url.Values{"organization_id": {strconv.FormatInt(organizationID, 10)}}
	if status != "" {
		query.Set("moderation_status", string(status))
	}

	var out []types.Publication
	err := c.do(ctx, "clients.publication.ListByOrganization", http.MethodGet,
		"/api/publications", query, nil, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
