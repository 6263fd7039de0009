package v1

import (
	"context"
	"strconv"

	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	"github.com/postiq-ai/postiq-bot/app/session"
	"github.com/postiq-ai/postiq-bot/pkg/errors"
)

type ProfileData struct{}

func (ProfileData) DialogID() string { return DialogProfile }

func NewProfileData() session.Data { return &ProfileData{} }

type ProfileService struct {
	core *core.Core
}

func NewProfileService(core *core.Core) *ProfileService {
	return &ProfileService{core: core}
}

// Logout unlinks the account and restarts onboarding. The state logic
// already dropped the session; the fresh frame replaces the stack.
func (s *ProfileService) Logout(c *dialog.Context) error {
	if err := NewStateLogic(c.Context(), s.core).Logout(c.ChatID()); err != nil {
		return err
	}
	user := c.User()
	user.AccountID = 0
	user.OrganizationID = 0
	user.AccessToken = ""

	c.StartReset(StateIntroAgreement, NewIntroData())
	return nil
}

type ProfileGetter struct {
	core *core.Core
}

func NewProfileGetter(core *core.Core) *ProfileGetter {
	return &ProfileGetter{core: core}
}

func (g *ProfileGetter) ViewData(ctx context.Context, view *dialog.View) (dialog.ViewData, error) {
	user := view.User
	if user == nil || user.AccountID == 0 {
		return nil, &dialog.RestartError{Target: RecoveryTarget(user)}
	}

	vd := dialog.ViewData{
		"username":   user.TgUsername,
		"account_id": strconv.FormatInt(user.AccountID, 10),
	}

	if user.OrganizationID != 0 {
		org, err := g.core.Clients().Organization.Get(ctx, user.OrganizationID)
		if err != nil {
			return nil, errors.Trace("ProfileGetter.ViewData", err)
		}
		vd["organization_name"] = org.Name
		vd["balance"] = strconv.FormatInt(org.Balance, 10)
	} else {
		vd["organization_name"] = "—"
		vd["balance"] = "0"
	}
	return vd, nil
}
