package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
)

type HttpSrv struct {
	Core   *core.Core
	Engine *gin.Engine
	Bot    *dialog.Manager

	// Dispatch runs one update through the hydrate/recovery chain.
	Dispatch func(ctx context.Context, update tgbotapi.Update) error
}

// Update receives one webhook delivery. Handled updates always answer
// 200: Telegram retries anything else and the engine is not idempotent
// across retries.
func (s *HttpSrv) Update(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed update"})
		return
	}

	if err := s.Dispatch(c.Request.Context(), update); err != nil {
		slog.Error("update dispatch failed",
			slog.Int("update_id", update.UpdateID), slog.Any("error", err))
	}
	c.Status(http.StatusOK)
}

// SetWebhook registers this service's update route with Telegram. The
// library release predates secret_token, so the call goes through raw
// params.
func (s *HttpSrv) SetWebhook(c *gin.Context) {
	cfg := s.Core.Cfg()

	params := tgbotapi.Params{
		"url":          cfg.Telegram.WebhookDomain + cfg.Prefix + "/update",
		"secret_token": cfg.Telegram.SecretToken,
	}
	resp, err := s.Core.Bot().MakeRequest("setWebhook", params)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": resp.Ok})
}
