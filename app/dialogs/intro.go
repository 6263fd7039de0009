package dialogs

import (
	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	v1 "github.com/postiq-ai/postiq-bot/app/logic/v1"
)

func NewIntroDialog(core *core.Core) *dialog.Dialog {
	svc := v1.NewIntroService(core)
	getter := v1.NewIntroGetter(core)

	return &dialog.Dialog{
		ID:      v1.DialogIntro,
		NewData: v1.NewIntroData,
		Windows: []*dialog.Window{
			{
				State:  v1.StateIntroAgreement,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Format{Template: "Привет, {username}! 👋\n\n" +
						"PostIQ помогает вести соцсети вашей компании: генерирует " +
						"публикации, собирает видеонарезки и проводит их через модерацию.\n\n" +
						"Продолжая, вы принимаете пользовательское соглашение."},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.URLButton{Text: "📄 Соглашение", URL: "https://postiq.ai/terms"},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "accept", Text: "✅ Принимаю", OnClick: svc.AcceptAgreement},
					}},
				},
			},
			{
				State:  v1.StateIntroAccessDenied,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Const{Text: "Аккаунт создан, но вы пока не состоите ни в одной " +
						"организации.\n\nПопросите администратора добавить вас как сотрудника — " +
						"после этого нажмите «Проверить доступ»."},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "recheck", Text: "🔄 Проверить доступ", OnClick: func(c *dialog.Context) error {
							c.StartReset(v1.RecoveryTarget(c.User()), nil)
							return nil
						}},
					}},
				},
			},
		},
	}
}
