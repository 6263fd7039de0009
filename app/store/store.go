package store

import (
	"context"

	"github.com/postiq-ai/postiq-bot/pkg/types"
)

type UserStateStore interface {
	// Create is an atomic upsert keyed on tg_chat_id. Both the hydrate
	// middleware and /start go through it, so the first-message race
	// resolves to a single row.
	Create(ctx context.Context, data types.UserState) error
	GetByChatID(ctx context.Context, tgChatID int64) (*types.UserState, error)
	GetByAccountID(ctx context.Context, accountID int64) (*types.UserState, error)
	Update(ctx context.Context, tgChatID int64, opts types.UpdateUserStateOptions) error
	Delete(ctx context.Context, tgChatID int64) error
}

type CachedFileStore interface {
	Create(ctx context.Context, data types.CachedFile) error
	GetByFilename(ctx context.Context, filename string) (*types.CachedFile, error)
}

type VizardVideoCutAlertStore interface {
	Create(ctx context.Context, data types.VizardVideoCutAlert) error
	ListByStateID(ctx context.Context, stateID int64) ([]types.VizardVideoCutAlert, error)
	DeleteByStateID(ctx context.Context, stateID int64) error
}

type PublicationApprovedAlertStore interface {
	Create(ctx context.Context, data types.PublicationApprovedAlert) error
	ListByStateID(ctx context.Context, stateID int64) ([]types.PublicationApprovedAlert, error)
	DeleteByStateID(ctx context.Context, stateID int64) error
}

type PublicationRejectedAlertStore interface {
	Create(ctx context.Context, data types.PublicationRejectedAlert) error
	ListByStateID(ctx context.Context, stateID int64) ([]types.PublicationRejectedAlert, error)
	DeleteByStateID(ctx context.Context, stateID int64) error
}

type LLMChatStore interface {
	Create(ctx context.Context, data types.LLMChat) (int64, error)
	GetByChatPurpose(ctx context.Context, tgChatID int64, purpose string) (*types.LLMChat, error)
	Delete(ctx context.Context, id int64) error
}

type LLMMessageStore interface {
	Create(ctx context.Context, data types.LLMMessage) error
	ListByChatID(ctx context.Context, chatID int64) ([]types.LLMMessage, error)
	DeleteByChatID(ctx context.Context, chatID int64) error
}
