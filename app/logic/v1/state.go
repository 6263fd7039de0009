package v1

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	"github.com/postiq-ai/postiq-bot/pkg/errors"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

// StateLogic owns the UserState row lifecycle.
type StateLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewStateLogic(ctx context.Context, core *core.Core) *StateLogic {
	return &StateLogic{ctx: ctx, core: core}
}

// GetOrCreate is the single hydrate path. The upsert is keyed on
// tg_chat_id, so concurrent first messages of a chat resolve to one row.
func (l *StateLogic) GetOrCreate(tgChatID int64, tgUsername string) (*types.UserState, error) {
	err := l.core.Store().UserStateStore().Create(l.ctx, types.UserState{
		TgChatID:   tgChatID,
		TgUsername: tgUsername,
		CreatedAt:  time.Now().Unix(),
	})
	if err != nil {
		return nil, errors.Trace("StateLogic.GetOrCreate", err)
	}

	state, err := l.core.Store().UserStateStore().GetByChatID(l.ctx, tgChatID)
	if err != nil {
		return nil, errors.Trace("StateLogic.GetOrCreate", err)
	}
	if state == nil {
		return nil, errors.New("StateLogic.GetOrCreate", "state missing after upsert", nil)
	}

	if tgUsername != "" && state.TgUsername != tgUsername {
		opts := types.UpdateUserStateOptions{TgUsername: lo.ToPtr(tgUsername)}
		if err := l.core.Store().UserStateStore().Update(l.ctx, tgChatID, opts); err != nil {
			return nil, errors.Trace("StateLogic.GetOrCreate", err)
		}
		state.TgUsername = tgUsername
	}
	return state, nil
}

func (l *StateLogic) GetByAccountID(accountID int64) (*types.UserState, error) {
	state, err := l.core.Store().UserStateStore().GetByAccountID(l.ctx, accountID)
	if err != nil {
		return nil, errors.Trace("StateLogic.GetByAccountID", err)
	}
	return state, nil
}

// LinkAccount records the registered account and its tokens.
func (l *StateLogic) LinkAccount(tgChatID, accountID int64, accessToken string) error {
	err := l.core.Store().UserStateStore().Update(l.ctx, tgChatID, types.UpdateUserStateOptions{
		AccountID:   lo.ToPtr(accountID),
		AccessToken: lo.ToPtr(accessToken),
	})
	return errors.Trace("StateLogic.LinkAccount", err)
}

// LinkOrganization is called by the employee-added webhook once the
// account joins an organization.
func (l *StateLogic) LinkOrganization(tgChatID, organizationID int64) error {
	err := l.core.Store().UserStateStore().Update(l.ctx, tgChatID, types.UpdateUserStateOptions{
		OrganizationID: lo.ToPtr(organizationID),
	})
	return errors.Trace("StateLogic.LinkOrganization", err)
}

func (l *StateLogic) SetCanShowAlerts(tgChatID int64, v bool) error {
	err := l.core.Store().UserStateStore().Update(l.ctx, tgChatID, types.UpdateUserStateOptions{
		CanShowAlerts: lo.ToPtr(v),
	})
	return errors.Trace("StateLogic.SetCanShowAlerts", err)
}

// MarkErrorRecovery arms the one-shot recovery flag.
func (l *StateLogic) MarkErrorRecovery(tgChatID int64) error {
	err := l.core.Store().UserStateStore().Update(l.ctx, tgChatID, types.UpdateUserStateOptions{
		ShowErrorRecovery: lo.ToPtr(true),
	})
	return errors.Trace("StateLogic.MarkErrorRecovery", err)
}

func (l *StateLogic) ClearErrorRecovery(tgChatID int64) error {
	err := l.core.Store().UserStateStore().Update(l.ctx, tgChatID, types.UpdateUserStateOptions{
		ShowErrorRecovery: lo.ToPtr(false),
	})
	return errors.Trace("StateLogic.ClearErrorRecovery", err)
}

// Logout unlinks the account and drops the dialog session.
func (l *StateLogic) Logout(tgChatID int64) error {
	err := l.core.Store().UserStateStore().Update(l.ctx, tgChatID, types.UpdateUserStateOptions{
		AccountID:      lo.ToPtr(int64(0)),
		OrganizationID: lo.ToPtr(int64(0)),
		AccessToken:    lo.ToPtr(""),
		CanShowAlerts:  lo.ToPtr(false),
	})
	if err != nil {
		return errors.Trace("StateLogic.Logout", err)
	}
	return errors.Trace("StateLogic.Logout", l.core.Sessions().Drop(l.ctx, tgChatID))
}

// RecoveryTarget maps the linkage pair to the re-entry window. The
// UserState invariant (no organization without an account) keeps the
// matrix total.
func RecoveryTarget(user *types.UserState) dialog.State {
	switch {
	case user == nil || user.AccountID == 0:
		return StateIntroAgreement
	case user.OrganizationID == 0:
		return StateIntroAccessDenied
	default:
		return StateMainMenu
	}
}
