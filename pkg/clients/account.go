package clients

import (
	"context"
	"net/http"

	"github.com/postiq-ai/postiq-bot/pkg/types"
)

type AccountClient struct {
	*Client
}

func NewAccountClient(c *Client) *AccountClient {
	return &AccountClient{Client: c}
}

type RegisterAccountRequest struct {
	TgChatID   int64  `json:"tg_chat_id"`
	TgUsername string `json:"tg_username"`
}

func (c *AccountClient) Register(ctx context.Context, req RegisterAccountRequest) (*types.Account, error) {
	var out types.Account
	err := c.do(ctx, "clients.account.Register", http.MethodPost,
		"/api/accounts/register", nil, req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type AuthClient struct {
	*Client
}

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{Client: c}
}

type TgAuthRequest struct {
	AccountID int64 `json:"account_id"`
	TgChatID  int64 `json:"tg_chat_id"`
}

func (c *AuthClient) Tg(ctx context.Context, req TgAuthRequest) (*types.AuthTokens, error) {
	var out types.AuthTokens
	err := c.do(ctx, "clients.authorization.Tg", http.MethodPost,
		"/api/auth/tg", nil, req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AuthClient) Check(ctx context.Context, accessToken string) (*types.AuthCheckResult, error) {
	var out types.AuthCheckResult
	err := c.do(ctx, "clients.authorization.Check", http.MethodPost,
		"/api/auth/check", nil, map[string]string{"access_token": accessToken}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
