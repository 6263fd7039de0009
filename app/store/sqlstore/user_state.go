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
		provider.stores.UserStateStore = NewUserStateStore(provider)
	})
}

type UserStateStore struct {
	CommonFields
}

func NewUserStateStore(provider SqlProviderAchieve) *UserStateStore {
	repo := &UserStateStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_USER_STATE)
	repo.SetAllColumns("id", "tg_chat_id", "tg_username", "account_id", "organization_id",
		"access_token", "can_show_alerts", "show_error_recovery", "created_at")
	return repo
}

// Create inserts with ON CONFLICT DO NOTHING so the hydrate middleware
// and the /start handler never race into duplicate rows.
func (s *UserStateStore) Create(ctx context.Context, data types.UserState) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	query := sq.Insert(s.GetTable()).
		Columns("tg_chat_id", "tg_username", "account_id", "organization_id",
			"access_token", "can_show_alerts", "show_error_recovery", "created_at").
		Values(data.TgChatID, data.TgUsername, data.AccountID, data.OrganizationID,
			data.AccessToken, data.CanShowAlerts, data.ShowErrorRecovery, data.CreatedAt).
		Suffix("ON CONFLICT (tg_chat_id) DO NOTHING")

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *UserStateStore) GetByChatID(ctx context.Context, tgChatID int64) (*types.UserState, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"tg_chat_id": tgChatID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.UserState
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

func (s *UserStateStore) GetByAccountID(ctx context.Context, accountID int64) (*types.UserState, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"account_id": accountID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.UserState
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

// Update emits one UPDATE touching only provided columns. A nil option
// never overwrites a stored value.
func (s *UserStateStore) Update(ctx context.Context, tgChatID int64, opts types.UpdateUserStateOptions) error {
	if opts.Empty() {
		return nil
	}

	queryString, args, err := buildUserStateUpdate(s.GetTable(), tgChatID, opts)
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func buildUserStateUpdate(table string, tgChatID int64, opts types.UpdateUserStateOptions) (string, []interface{}, error) {
	query := sq.Update(table).Where(sq.Eq{"tg_chat_id": tgChatID})
	if opts.TgUsername != nil {
		query = query.Set("tg_username", *opts.TgUsername)
	}
	if opts.AccountID != nil {
		query = query.Set("account_id", *opts.AccountID)
	}
	if opts.OrganizationID != nil {
		query = query.Set("organization_id", *opts.OrganizationID)
	}
	if opts.AccessToken != nil {
		query = query.Set("access_token", *opts.AccessToken)
	}
	if opts.CanShowAlerts != nil {
		query = query.Set("can_show_alerts", *opts.CanShowAlerts)
	}
	if opts.ShowErrorRecovery != nil {
		query = query.Set("show_error_recovery", *opts.ShowErrorRecovery)
	}
	return query.ToSql()
}

func (s *UserStateStore) Delete(ctx context.Context, tgChatID int64) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"tg_chat_id": tgChatID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
