package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	v1 "github.com/postiq-ai/postiq-bot/app/logic/v1"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

// UpdateHandler processes one decoded update for a hydrated user.
type UpdateHandler func(ctx context.Context, user *types.UserState, update tgbotapi.Update) error

// UpdatePipeline assembles hydrate → alert-drain → recovery around the
// engine dispatch. The returned function is what the webhook handler
// calls per update.
func UpdatePipeline(core *core.Core, engine *dialog.Manager) func(ctx context.Context, update tgbotapi.Update) error {
	dispatch := func(ctx context.Context, user *types.UserState, update tgbotapi.Update) error {
		return engine.HandleUpdate(ctx, user, update)
	}
	return StateHydrate(core, AlertDrain(core, engine, Recovery(core, engine, dispatch)))
}

// StateHydrate makes sure a UserState row exists for the chat and hands
// the loaded row downstream. Updates without a chat are dropped.
func StateHydrate(core *core.Core, next UpdateHandler) func(ctx context.Context, update tgbotapi.Update) error {
	return func(ctx context.Context, update tgbotapi.Update) error {
		chatID, username := senderOf(update)
		if chatID == 0 {
			return nil
		}

		user, err := v1.NewStateLogic(ctx, core).GetOrCreate(chatID, username)
		if err != nil {
			return err
		}

		slog.Info("update received",
			slog.Int64("chat_id", chatID),
			slog.String("username", username),
			slog.String("kind", updateKind(update)),
			slog.Int64("account_id", user.AccountID),
			slog.Int64("organization_id", user.OrganizationID),
		)
		core.Metrics().UpdateInc(updateKind(update))

		return next(ctx, user, update)
	}
}

// AlertDrain delivers queued alerts after the update is handled, so the
// alert frames land on top of whatever the user just did.
func AlertDrain(core *core.Core, engine *dialog.Manager, next UpdateHandler) UpdateHandler {
	return func(ctx context.Context, user *types.UserState, update tgbotapi.Update) error {
		if err := next(ctx, user, update); err != nil {
			return err
		}

		if err := v1.DeliverPending(ctx, core, engine, user); err != nil {
			slog.Error("alert drain failed",
				slog.Int64("chat_id", user.TgChatID), slog.Any("error", err))
		}
		return nil
	}
}

// Recovery is the outermost guard of the engine chain. A chat without a
// session is routed to its re-entry state. An uncaught error or panic
// arms the recovery flag on first occurrence and, once armed, resets the
// chat to the re-entry state instead of letting the failure surface.
func Recovery(core *core.Core, engine *dialog.Manager, next UpdateHandler) UpdateHandler {
	return func(ctx context.Context, user *types.UserState, update tgbotapi.Update) (err error) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic in update handler",
					slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
				err = fmt.Errorf("panic: %v", r)
			}
			if err != nil {
				err = recoverChat(ctx, core, engine, user, err)
			}
		}()

		return next(ctx, user, update)
	}
}

func recoverChat(ctx context.Context, core *core.Core, engine *dialog.Manager, user *types.UserState, cause error) error {
	target := v1.RecoveryTarget(user)

	// A fresh or purged chat is not a failure: route it to re-entry.
	if cause == dialog.ErrNoSession {
		core.Metrics().RecoveryRunInc(string(target))
		return engine.StartDialog(ctx, user, user.TgChatID, target, nil, true)
	}

	state := v1.NewStateLogic(ctx, core)

	if !user.ShowErrorRecovery {
		// First failure only arms the flag; the error still surfaces in
		// logs. The next failure resets the chat.
		if markErr := state.MarkErrorRecovery(user.TgChatID); markErr != nil {
			slog.Error("failed to arm recovery",
				slog.Int64("chat_id", user.TgChatID), slog.Any("error", markErr))
		}
		return cause
	}

	slog.Error("update failed, resetting chat",
		slog.Int64("chat_id", user.TgChatID),
		slog.String("target", string(target)),
		slog.Any("error", cause))

	if err := engine.StartDialog(ctx, user, user.TgChatID, target, nil, true); err != nil {
		return err
	}
	if err := state.SetCanShowAlerts(user.TgChatID, true); err != nil {
		slog.Error("failed to re-enable alerts",
			slog.Int64("chat_id", user.TgChatID), slog.Any("error", err))
	}
	user.CanShowAlerts = true
	core.Metrics().RecoveryRunInc(string(target))
	return nil
}

func senderOf(update tgbotapi.Update) (int64, string) {
	switch {
	case update.Message != nil:
		// Channel posts and some service messages carry no sender.
		username := ""
		if update.Message.From != nil {
			username = update.Message.From.UserName
		}
		return update.Message.Chat.ID, username
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		username := ""
		if update.CallbackQuery.From != nil {
			username = update.CallbackQuery.From.UserName
		}
		return update.CallbackQuery.Message.Chat.ID, username
	default:
		return 0, ""
	}
}

func updateKind(update tgbotapi.Update) string {
	switch {
	case update.CallbackQuery != nil:
		return "callback"
	case update.Message != nil && update.Message.Voice != nil:
		return "voice"
	case update.Message != nil && len(update.Message.Photo) > 0:
		return "photo"
	case update.Message != nil:
		return "message"
	default:
		return "other"
	}
}
