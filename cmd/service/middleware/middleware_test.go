package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func guardedRouter(header, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/guarded", secretGuard(header, secret), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestSecretGuardAcceptsMatch(t *testing.T) {
	r := guardedRouter(TELEGRAM_SECRET_HEADER, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	req.Header.Set(TELEGRAM_SECRET_HEADER, "s3cret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSecretGuardRejectsNeutrally(t *testing.T) {
	r := guardedRouter(INTERSERVICE_SECRET_HEADER, "s3cret")

	for _, got := range []string{"", "wrong", "s3cret "} {
		req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
		if got != "" {
			req.Header.Set(INTERSERVICE_SECRET_HEADER, got)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
	}
}

func TestSenderOf(t *testing.T) {
	chatID, username := senderOf(tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: 42},
		From: &tgbotapi.User{UserName: "maria"},
	}})
	assert.Equal(t, int64(42), chatID)
	assert.Equal(t, "maria", username)

	chatID, username = senderOf(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		From:    &tgbotapi.User{UserName: "maria"},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 42}},
	}})
	assert.Equal(t, int64(42), chatID)
	assert.Equal(t, "maria", username)

	// Channel posts arrive without a sender.
	chatID, username = senderOf(tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: 42},
	}})
	assert.Equal(t, int64(42), chatID)
	assert.Empty(t, username)

	chatID, username = senderOf(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 42}},
	}})
	assert.Equal(t, int64(42), chatID)
	assert.Empty(t, username)

	chatID, _ = senderOf(tgbotapi.Update{})
	assert.Zero(t, chatID)
}

func TestUpdateKind(t *testing.T) {
	assert.Equal(t, "callback", updateKind(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{}}))
	assert.Equal(t, "voice", updateKind(tgbotapi.Update{Message: &tgbotapi.Message{Voice: &tgbotapi.Voice{}}}))
	assert.Equal(t, "photo", updateKind(tgbotapi.Update{Message: &tgbotapi.Message{Photo: []tgbotapi.PhotoSize{{}}}}))
	assert.Equal(t, "message", updateKind(tgbotapi.Update{Message: &tgbotapi.Message{}}))
	assert.Equal(t, "other", updateKind(tgbotapi.Update{}))
}
