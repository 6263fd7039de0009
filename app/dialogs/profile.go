package dialogs

import (
	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	v1 "github.com/postiq-ai/postiq-bot/app/logic/v1"
)

func NewProfileDialog(core *core.Core) *dialog.Dialog {
	svc := v1.NewProfileService(core)

	return &dialog.Dialog{
		ID:      v1.DialogProfile,
		NewData: v1.NewProfileData,
		Windows: []*dialog.Window{{
			State:  v1.StateProfile,
			Getter: v1.NewProfileGetter(core),
			Widgets: []dialog.Widget{
				dialog.Format{Template: "👤 @{username}\nАккаунт: {account_id}\n\n" +
					"Организация: {organization_name}\nБаланс: {balance} ₽"},
				dialog.Row{Buttons: []dialog.Widget{
					dialog.Button{ID: "logout", Text: "🚪 Выйти из аккаунта", OnClick: svc.Logout},
				}},
				dialog.Row{Buttons: []dialog.Widget{
					dialog.Button{ID: "back", Text: "← Назад", OnClick: doneHandler},
				}},
			},
		}},
	}
}
