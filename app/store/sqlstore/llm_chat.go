package sqlstore

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/postiq-ai/postiq-bot/pkg/register"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.LLMChatStore = NewLLMChatStore(provider)
		provider.stores.LLMMessageStore = NewLLMMessageStore(provider)
	})
}

type LLMChatStore struct {
	CommonFields
}

func NewLLMChatStore(provider SqlProviderAchieve) *LLMChatStore {
	repo := &LLMChatStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_LLM_CHAT)
	repo.SetAllColumns("id", "tg_chat_id", "purpose", "created_at")
	return repo
}

func (s *LLMChatStore) Create(ctx context.Context, data types.LLMChat) (int64, error) {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	query := sq.Insert(s.GetTable()).
		Columns("tg_chat_id", "purpose", "created_at").
		Values(data.TgChatID, data.Purpose, data.CreatedAt).
		Suffix("RETURNING id")

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	var id int64
	if err = s.GetMaster(ctx).QueryRowx(queryString, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *LLMChatStore) GetByChatPurpose(ctx context.Context, tgChatID int64, purpose string) (*types.LLMChat, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"tg_chat_id": tgChatID, "purpose": purpose})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.LLMChat
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

func (s *LLMChatStore) Delete(ctx context.Context, id int64) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

type LLMMessageStore struct {
	CommonFields
}

func NewLLMMessageStore(provider SqlProviderAchieve) *LLMMessageStore {
	repo := &LLMMessageStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_LLM_MESSAGE)
	repo.SetAllColumns("id", "chat_id", "role", "text", "created_at")
	return repo
}

func (s *LLMMessageStore) Create(ctx context.Context, data types.LLMMessage) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	query := sq.Insert(s.GetTable()).
		Columns("chat_id", "role", "text", "created_at").
		Values(data.ChatID, data.Role, data.Text, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// ListByChatID returns the ordered history. Insertion order ties on
// created_at resolve by id.
func (s *LLMMessageStore) ListByChatID(ctx context.Context, chatID int64) ([]types.LLMMessage, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"chat_id": chatID}).OrderBy("created_at ASC", "id ASC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.LLMMessage
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *LLMMessageStore) DeleteByChatID(ctx context.Context, chatID int64) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"chat_id": chatID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
