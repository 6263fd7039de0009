package core

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/postiq-ai/postiq-bot/app/session"
	"github.com/postiq-ai/postiq-bot/pkg/clients"
	"github.com/postiq-ai/postiq-bot/pkg/telemetry"
)

// MustLoadBaseConfig reads the toml config; with an empty path every
// field falls back to POSTIQ_BOT_* environment variables.
func MustLoadBaseConfig(path string) Config {
	// Local runs keep secrets in .env; absence is fine.
	_ = godotenv.Load()

	if path == "" {
		return LoadConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &Config{}
	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}
	conf.FromENV()
	return *conf
}

func LoadConfigFromENV() Config {
	var c Config
	c.FromENV()
	return c
}

type Config struct {
	Addr string `toml:"addr"`
	// Prefix is the inbound route prefix, e.g. "/api/v1/bot".
	Prefix string `toml:"prefix"`

	Log       Log                 `toml:"log"`
	Postgres  PGConfig            `toml:"postgres"`
	Session   session.RedisConfig `toml:"session"`
	Telegram  TelegramConfig      `toml:"telegram"`
	Clients   clients.Config      `toml:"clients"`
	Telemetry telemetry.Config    `toml:"telemetry"`
}

type TelegramConfig struct {
	Token string `toml:"token"`
	// WebhookDomain is the public https host Telegram calls back on.
	WebhookDomain string `toml:"webhook_domain"`
	// SecretToken travels back in X-Telegram-Bot-Api-Secret-Token.
	SecretToken string `toml:"secret_token"`
}

// FromENV overlays environment values on top of whatever the toml file
// provided; env wins only where set.
func (c *Config) FromENV() {
	overlay(&c.Addr, "POSTIQ_BOT_SERVICE_ADDRESS")
	overlay(&c.Prefix, "POSTIQ_BOT_ROUTE_PREFIX")
	c.Log.FromENV()
	c.Postgres.FromENV()

	overlay(&c.Session.Addr, "POSTIQ_BOT_REDIS_ADDR")
	overlay(&c.Session.Password, "POSTIQ_BOT_REDIS_PASSWORD")
	if raw := os.Getenv("POSTIQ_BOT_REDIS_DB"); raw != "" {
		if db, err := strconv.Atoi(raw); err == nil {
			c.Session.DB = db
		}
	}

	overlay(&c.Telegram.Token, "POSTIQ_BOT_TELEGRAM_TOKEN")
	overlay(&c.Telegram.WebhookDomain, "POSTIQ_BOT_WEBHOOK_DOMAIN")
	overlay(&c.Telegram.SecretToken, "POSTIQ_BOT_TELEGRAM_SECRET")

	overlay(&c.Clients.InterserviceSecret, "POSTIQ_BOT_INTERSERVICE_SECRET")
	overlay(&c.Clients.ContentHost, "POSTIQ_BOT_CONTENT_HOST")
	overlay(&c.Clients.AccountHost, "POSTIQ_BOT_ACCOUNT_HOST")
	overlay(&c.Clients.AudioHost, "POSTIQ_BOT_AUDIO_HOST")
	overlay(&c.Clients.LLMHost, "POSTIQ_BOT_LLM_HOST")
	overlay(&c.Clients.LLMToken, "POSTIQ_BOT_LLM_TOKEN")
	overlay(&c.Clients.LLMModel, "POSTIQ_BOT_LLM_MODEL")
	if raw := os.Getenv("POSTIQ_BOT_GENERATION_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			c.Clients.GenerationTimeout = d
		}
	}

	overlay(&c.Telemetry.Endpoint, "POSTIQ_BOT_OTLP_ENDPOINT")
	if c.Telemetry.Endpoint != "" {
		c.Telemetry.Enabled = true
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = "postiq-bot"
	}
}

func overlay(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	if v := os.Getenv("POSTIQ_BOT_POSTGRESQL_DSN"); v != "" {
		m.DSN = v
	}
}

func (c PGConfig) FormatDSN() string {
	return c.DSN
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	if v := os.Getenv("POSTIQ_BOT_LOG_LEVEL"); v != "" {
		l.Level = v
	}
	if v := os.Getenv("POSTIQ_BOT_LOG_PATH"); v != "" {
		l.Path = v
	}
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
