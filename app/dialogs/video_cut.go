package dialogs

import (
	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	v1 "github.com/postiq-ai/postiq-bot/app/logic/v1"
	"github.com/postiq-ai/postiq-bot/app/session"
)

func NewVideoCutDialog(core *core.Core) *dialog.Dialog {
	svc := v1.NewVideoCutService(core)
	getter := v1.NewVideoCutGetter(core)

	return &dialog.Dialog{
		ID:      v1.DialogVideoCut,
		NewData: v1.NewVideoCutData,
		Windows: []*dialog.Window{
			{
				State:  v1.StateVideoCutInput,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Const{Text: "Пришлите ссылку на YouTube-видео — мы нарежем из него короткие ролики."},
					dialog.Format{Template: "⚠️ Это не похоже на ссылку YouTube. Пример: https://youtu.be/abc123",
						Visible: func(d session.Data) bool { return d.(*v1.VideoCutData).ReferenceInvalid }},
					dialog.TextInput{ID: "reference", MinLen: 1, MaxLen: 500,
						OnInput: svc.SubmitReference},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "list", Text: "📁 Мои нарезки", OnClick: svc.OpenList},
						dialog.Button{ID: "back", Text: "← Назад", OnClick: doneHandler},
					}},
				},
			},
			{
				State:  v1.StateVideoCutGenerating,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Const{Text: "⏳ Нарезка запущена. Пришлём уведомление, когда ролики будут готовы."},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "done", Text: "🏠 В меню", OnClick: doneHandler},
					}},
				},
			},
			{
				State:  v1.StateVideoCutList,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Format{Template: "🎬 Нарезки — {position}\n\n📌 {title}"},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "prev", Text: "⬅️", OnClick: svc.Prev},
						dialog.Button{ID: "open", Text: "👁 Открыть", OnClick: svc.OpenPreview},
						dialog.Button{ID: "next", Text: "➡️", OnClick: svc.Next},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "back", Text: "← Назад", OnClick: doneHandler},
					}},
				},
			},
			{
				State:  v1.StateVideoCutPreview,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Format{Template: "📌 {title}\n\n{description}\n\n🏷 {tags}"},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.URLButton{Text: "▶️ Смотреть", URLFrom: "video_url"},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "moderate", Text: "📤 На модерацию", OnClick: svc.SendToModeration},
						dialog.Button{ID: "delete", Text: "🗑 Удалить", OnClick: svc.Delete},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "back", Text: "← К списку", OnClick: func(c *dialog.Context) error {
							c.SwitchTo(v1.StateVideoCutList)
							return nil
						}},
					}},
				},
			},
			{
				State:  v1.StateVideoCutPublish,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Const{Text: "📤 Нарезка отправлена на модерацию."},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "list", Text: "← К списку", OnClick: func(c *dialog.Context) error {
							c.SwitchTo(v1.StateVideoCutList)
							return nil
						}},
						dialog.Button{ID: "done", Text: "🏠 В меню", OnClick: doneHandler},
					}},
				},
			},
		},
	}
}
