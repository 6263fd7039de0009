package v1

import (
	"context"

	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	"github.com/postiq-ai/postiq-bot/app/session"
	"github.com/postiq-ai/postiq-bot/pkg/clients"
	"github.com/postiq-ai/postiq-bot/pkg/errors"
)

type IntroData struct{}

func (IntroData) DialogID() string { return DialogIntro }

func NewIntroData() session.Data { return &IntroData{} }

// IntroService handles first contact: agreement acceptance registers an
// account and obtains auth tokens.
type IntroService struct {
	core *core.Core
}

func NewIntroService(core *core.Core) *IntroService {
	return &IntroService{core: core}
}

func (s *IntroService) AcceptAgreement(c *dialog.Context) error {
	ctx, cancel := c.WithTimeout(s.core.Clients().GenerationTimeout)
	defer cancel()

	user := c.User()
	account, err := s.core.Clients().Account.Register(ctx, clients.RegisterAccountRequest{
		TgChatID:   c.ChatID(),
		TgUsername: user.TgUsername,
	})
	if err != nil {
		return errors.Trace("IntroService.AcceptAgreement", err)
	}

	tokens, err := s.core.Clients().Auth.Tg(ctx, clients.TgAuthRequest{
		AccountID: account.ID,
		TgChatID:  c.ChatID(),
	})
	if err != nil {
		return errors.Trace("IntroService.AcceptAgreement", err)
	}

	state := NewStateLogic(ctx, s.core)
	if err := state.LinkAccount(c.ChatID(), account.ID, tokens.AccessToken); err != nil {
		return err
	}
	user.AccountID = account.ID
	user.AccessToken = tokens.AccessToken

	// Registered but not yet attached to an organization: wait for the
	// employee-added callback.
	c.SwitchTo(StateIntroAccessDenied)
	return nil
}

// IntroGetter exposes the agreement text placeholders.
type IntroGetter struct {
	core *core.Core
}

func NewIntroGetter(core *core.Core) *IntroGetter {
	return &IntroGetter{core: core}
}

func (g *IntroGetter) ViewData(ctx context.Context, view *dialog.View) (dialog.ViewData, error) {
	username := ""
	if view.User != nil {
		username = view.User.TgUsername
	}
	return dialog.ViewData{"username": username}, nil
}
