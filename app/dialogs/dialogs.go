// Package dialogs declares the bot's window layouts and binds them to
// the logic layer. All user-facing texts live here; the logic layer
// stays presentation-free.
package dialogs

import (
	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	v1 "github.com/postiq-ai/postiq-bot/app/logic/v1"
)

// RegisterAll wires every dialog and bot command into the engine.
func RegisterAll(core *core.Core, m *dialog.Manager) {
	m.Register(NewIntroDialog(core))
	m.Register(NewMainMenuDialog(core))
	m.Register(NewContentMenuDialog(core))
	m.Register(NewGeneratePublicationDialog(core))
	m.Register(NewModerationPublicationDialog(core))
	m.Register(NewModerationVideoCutDialog(core))
	m.Register(NewVideoCutDialog(core))
	m.Register(NewOrganizationBriefDialog(core))
	m.Register(NewCategoryBriefDialog(core))
	m.Register(NewEmployeesDialog(core))
	m.Register(NewProfileDialog(core))
	m.Register(NewAlertViewDialog(core))

	m.RegisterCommand("start", startCommand(core))
}

// startCommand resets the chat to the state the user's linkage allows
// and clears a pending error-recovery mark, if any.
func startCommand(core *core.Core) dialog.CommandHandler {
	return func(c *dialog.Context) error {
		user := c.User()
		if user != nil && user.ShowErrorRecovery {
			state := v1.NewStateLogic(c.Context(), core)
			if err := state.ClearErrorRecovery(user.TgChatID); err != nil {
				return err
			}
			user.ShowErrorRecovery = false
		}
		c.StartReset(v1.RecoveryTarget(user), nil)
		return nil
	}
}
