package types

// UserState is the durable per-chat row. One row per Telegram chat,
// created on first interaction and mutated in place afterwards.
//
// Invariant: AccountID == 0 implies OrganizationID == 0. The recovery
// middleware relies on it to pick a re-entry dialog.
type UserState struct {
	ID                int64  `json:"id" db:"id"`
	TgChatID          int64  `json:"tg_chat_id" db:"tg_chat_id"`
	TgUsername        string `json:"tg_username" db:"tg_username"`
	AccountID         int64  `json:"account_id" db:"account_id"`
	OrganizationID    int64  `json:"organization_id" db:"organization_id"`
	AccessToken       string `json:"access_token" db:"access_token"`
	CanShowAlerts     bool   `json:"can_show_alerts" db:"can_show_alerts"`
	ShowErrorRecovery bool   `json:"show_error_recovery" db:"show_error_recovery"`
	CreatedAt         int64  `json:"created_at" db:"created_at"`
}

// UpdateUserStateOptions carries only the columns the caller wants to
// touch. Nil fields never reach the UPDATE statement.
type UpdateUserStateOptions struct {
	TgUsername        *string
	AccountID         *int64
	OrganizationID    *int64
	AccessToken       *string
	CanShowAlerts     *bool
	ShowErrorRecovery *bool
}

func (o UpdateUserStateOptions) Empty() bool {
	return o.TgUsername == nil && o.AccountID == nil && o.OrganizationID == nil &&
		o.AccessToken == nil && o.CanShowAlerts == nil && o.ShowErrorRecovery == nil
}
