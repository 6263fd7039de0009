package v1

import (
	"context"
	"strconv"

	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	"github.com/postiq-ai/postiq-bot/app/session"
	"github.com/postiq-ai/postiq-bot/pkg/errors"
)

type MainMenuData struct{}

func (MainMenuData) DialogID() string { return DialogMainMenu }

func NewMainMenuData() session.Data { return &MainMenuData{} }

type ContentMenuData struct{}

func (ContentMenuData) DialogID() string { return DialogContentMenu }

func NewContentMenuData() session.Data { return &ContentMenuData{} }

// MainMenuGetter decorates the hub with the organization snapshot. A
// missing organization means the stack is stale; the getter reroutes.
type MainMenuGetter struct {
	core *core.Core
}

func NewMainMenuGetter(core *core.Core) *MainMenuGetter {
	return &MainMenuGetter{core: core}
}

func (g *MainMenuGetter) ViewData(ctx context.Context, view *dialog.View) (dialog.ViewData, error) {
	if view.User == nil || view.User.OrganizationID == 0 {
		return nil, &dialog.RestartError{Target: RecoveryTarget(view.User)}
	}

	org, err := g.core.Clients().Organization.Get(ctx, view.User.OrganizationID)
	if err != nil {
		return nil, errors.Trace("MainMenuGetter.ViewData", err)
	}
	return dialog.ViewData{
		"organization_name": org.Name,
		"balance":           strconv.FormatInt(org.Balance, 10),
	}, nil
}
