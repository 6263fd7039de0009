package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/postiq-ai/postiq-bot/pkg/types"
)

type VideoCutClient struct {
	*Client
}

func NewVideoCutClient(c *Client) *VideoCutClient {
	return &VideoCutClient{Client: c}
}

type GenerateVideoCutRequest struct {
	OrganizationID   int64  `json:"organization_id"`
	CreatorAccountID int64  `json:"creator_account_id"`
	YoutubeReference string `json:"youtube_video_reference"`
}

// Generate is asynchronous on the service side; completion arrives later
// through the vizard-generated callback.
func (c *VideoCutClient) Generate(ctx context.Context, req GenerateVideoCutRequest) error {
	return c.do(ctx, "clients.video_cut.Generate", http.MethodPost,
		"/api/video-cuts/generate", nil, req, nil)
}

func (c *VideoCutClient) Change(ctx context.Context, videoCutID string, req types.UpdateVideoCut) (*types.VideoCut, error) {
	var out types.VideoCut
	err := c.do(ctx, "clients.video_cut.Change", http.MethodPatch,
		"/api/video-cuts/"+videoCutID, nil, req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *VideoCutClient) Delete(ctx context.Context, videoCutID string) error {
	return c.do(ctx, "clients.video_cut.Delete", http.MethodDelete,
		"/api/video-cuts/"+videoCutID, nil, nil, nil)
}

func (c *VideoCutClient) SendToModeration(ctx context.Context, videoCutID string) error {
	return c.do(ctx, "clients.video_cut.SendToModeration", http.MethodPost,
		fmt.Sprintf("/api/video-cuts/%s/send-to-moderation", videoCutID), nil, nil, nil)
}

func (c *VideoCutClient) Moderate(ctx context.Context, videoCutID string, req ModerateRequest) error {
	return c.do(ctx, "clients.video_cut.Moderate", http.MethodPost,
		fmt.Sprintf("/api/video-cuts/%s/moderate", videoCutID), nil, req, nil)
}

func (c *VideoCutClient) GetByID(ctx context.Context, videoCutID string) (*types.VideoCut, error) {
	var out types.VideoCut
	err := c.do(ctx, "clients.video_cut.GetByID", http.MethodGet,
		"/api/video-cuts/"+videoCutID, nil, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *VideoCutClient) ListByOrganization(ctx context.Context, organizationID int64, status types.ModerationStatus) ([]types.VideoCut, error) {
	query := url.Values{"organization_id": {strconv.FormatInt(organizationID, 10)}}
	if status != "" {
		query.Set("moderation_status", string(status))
	}

	var out []types.VideoCut
	err := c.do(ctx, "clients.video_cut.ListByOrganization", http.MethodGet,
		"/api/video-cuts", query, nil, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VideoCutClient) Download(ctx context.Context, videoCutID string) ([]byte, error) {
	return c.download(ctx, "clients.video_cut.Download",
		fmt.Sprintf("/api/video-cuts/%s/download", videoCutID), nil)
}
