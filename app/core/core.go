package core

import (
	"io"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/postiq-ai/postiq-bot/app/session"
	"github.com/postiq-ai/postiq-bot/app/store/sqlstore"
	"github.com/postiq-ai/postiq-bot/pkg/clients"
)

type Core struct {
	cfg Config

	stores   func() *sqlstore.Provider
	sessions session.Store
	locker   *session.Locker
	clients  *clients.Set

	bot        *tgbotapi.BotAPI
	httpEngine *gin.Engine
	metrics    *Metrics
}

func MustSetupCore(cfg Config) *Core {
	{
		var writer io.Writer = os.Stdout
		if cfg.Log.Path != "" {
			writer = &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    500, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}
		}
		l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
		slog.SetDefault(l)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		panic(err)
	}

	core := &Core{
		cfg:        cfg,
		stores:     sqlstore.MustSetup(cfg.Postgres),
		sessions:   session.NewRedisStore(cfg.Session),
		locker:     session.NewLocker(),
		clients:    clients.NewSet(cfg.Clients),
		bot:        bot,
		httpEngine: gin.New(),
		metrics:    NewMetrics("postiq", "bot"),
	}

	return core
}

func (s *Core) Cfg() Config {
	return s.cfg
}

func (s *Core) Store() *sqlstore.Provider {
	return s.stores()
}

func (s *Core) Sessions() session.Store {
	return s.sessions
}

func (s *Core) Locker() *session.Locker {
	return s.locker
}

func (s *Core) Clients() *clients.Set {
	return s.clients
}

func (s *Core) Bot() *tgbotapi.BotAPI {
	return s.bot
}

func (s *Core) HttpEngine() *gin.Engine {
	return s.httpEngine
}

func (s *Core) Metrics() *Metrics {
	return s.metrics
}
