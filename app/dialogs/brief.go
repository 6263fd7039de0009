package dialogs

import (
	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	v1 "github.com/postiq-ai/postiq-bot/app/logic/v1"
	"github.com/postiq-ai/postiq-bot/app/session"
)

const (
	briefTranscribeFailedText = "⚠️ Не удалось распознать голосовое сообщение. Напишите текстом или попробуйте ещё раз."
	briefProcessingErrorText  = "⚠️ Не получилось обработать сообщение. Попробуйте ещё раз."
)

func NewOrganizationBriefDialog(core *core.Core) *dialog.Dialog {
	svc := v1.NewBriefService(core)
	getter := v1.NewBriefGetter(core)

	return &dialog.Dialog{
		ID:      v1.DialogOrganizationBrief,
		NewData: v1.NewOrganizationBriefData,
		Windows: []*dialog.Window{
			{
				State:  v1.StateOrgBriefChat,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Format{Template: "{message}"},
					dialog.Format{Template: briefTranscribeFailedText, Visible: func(d session.Data) bool {
						return d.(*v1.OrganizationBriefData).TranscribeFailed
					}},
					dialog.Format{Template: briefProcessingErrorText, Visible: func(d session.Data) bool {
						return d.(*v1.OrganizationBriefData).ProcessingError
					}},
					dialog.TextInput{ID: "answer", MinLen: 1, MaxLen: 4000,
						OnInput: svc.HandleOrganizationText},
					dialog.MediaInput{ID: "voice", OnMedia: svc.HandleOrganizationMedia},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "exit", Text: "← Выйти", OnClick: doneHandler},
					}},
				},
			},
			{
				State:  v1.StateOrgBriefSuccess,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Const{Text: "✅ Бриф организации обновлён. Генерация теперь учитывает новые данные."},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "done", Text: "🏠 В меню", OnClick: doneHandler},
					}},
				},
			},
		},
	}
}

func NewCategoryBriefDialog(core *core.Core) *dialog.Dialog {
	svc := v1.NewBriefService(core)
	getter := v1.NewBriefGetter(core)

	return &dialog.Dialog{
		ID:      v1.DialogCategoryBrief,
		NewData: v1.NewCategoryBriefData,
		Windows: []*dialog.Window{
			{
				State:  v1.StateCategoryBriefChat,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Format{Template: "{message}"},
					dialog.Format{Template: briefTranscribeFailedText, Visible: func(d session.Data) bool {
						return d.(*v1.CategoryBriefData).TranscribeFailed
					}},
					dialog.Format{Template: briefProcessingErrorText, Visible: func(d session.Data) bool {
						return d.(*v1.CategoryBriefData).ProcessingError
					}},
					dialog.TextInput{ID: "answer", MinLen: 1, MaxLen: 4000,
						OnInput: svc.HandleCategoryText},
					dialog.MediaInput{ID: "voice", OnMedia: svc.HandleCategoryMedia},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "exit", Text: "← Выйти", OnClick: doneHandler},
					}},
				},
			},
			{
				State:  v1.StateCategoryBriefSuccess,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Const{Text: "✅ Рубрика сохранена. Теперь в ней можно создавать публикации."},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "done", Text: "🏠 В меню", OnClick: doneHandler},
					}},
				},
			},
		},
	}
}
