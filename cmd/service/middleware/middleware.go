package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/postiq-ai/postiq-bot/app/core"
)

const (
	TELEGRAM_SECRET_HEADER     = "X-Telegram-Bot-Api-Secret-Token"
	INTERSERVICE_SECRET_HEADER = "X-Interservice-Secret"
)

// Trace opens a server span per request, restoring propagated context
// from the inbound headers.
func Trace() gin.HandlerFunc {
	tracer := otel.Tracer("postiq-bot/http")
	return func(c *gin.Context) {
		prop := otel.GetTextMapPropagator()
		ctx := prop.Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		ctx, span := tracer.Start(ctx, c.Request.Method+" "+c.FullPath(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", c.FullPath()),
			))
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}

// Metric records request duration and error counters per route.
func Metric(core *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := core.Metrics().ApiResponseTimer(c.FullPath())
		c.Next()
		timer.ObserveDuration()

		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			core.Metrics().ApiErrorInc(c.Request.Method, c.FullPath(), status)
		}
	}
}

// Log writes one access line per request, tagged with a request id the
// handlers can echo into their own log lines.
func Log() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		start := time.Now()
		c.Next()

		slog.Info("http request",
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
}

// TelegramSecret verifies the webhook secret Telegram echoes back on
// every delivery.
func TelegramSecret(core *core.Core) gin.HandlerFunc {
	return secretGuard(TELEGRAM_SECRET_HEADER, core.Cfg().Telegram.SecretToken)
}

// InterserviceSecret guards the notify/ops surface called by sibling
// services.
func InterserviceSecret(core *core.Core) gin.HandlerFunc {
	return secretGuard(INTERSERVICE_SECRET_HEADER, core.Cfg().Clients.InterserviceSecret)
}

// secretGuard compares in constant time; the rejection body is
// deliberately uninformative.
func secretGuard(header, secret string) gin.HandlerFunc {
	want := []byte(secret)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader(header))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
	}
}
