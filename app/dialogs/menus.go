package dialogs

import (
	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	v1 "github.com/postiq-ai/postiq-bot/app/logic/v1"
)

func NewMainMenuDialog(core *core.Core) *dialog.Dialog {
	return &dialog.Dialog{
		ID:      v1.DialogMainMenu,
		NewData: v1.NewMainMenuData,
		Windows: []*dialog.Window{{
			State:  v1.StateMainMenu,
			Getter: v1.NewMainMenuGetter(core),
			Widgets: []dialog.Widget{
				dialog.Format{Template: "🏠 {organization_name}\n💰 Баланс: {balance} ₽"},
				dialog.Row{Buttons: []dialog.Widget{
					dialog.Button{ID: "content", Text: "📝 Контент", OnClick: startHandler(v1.StateContentMenu)},
				}},
				dialog.Row{Buttons: []dialog.Widget{
					dialog.Button{ID: "org_brief", Text: "🧠 Бриф организации", OnClick: startHandler(v1.StateOrgBriefChat)},
					dialog.Button{ID: "employees", Text: "👥 Сотрудники", OnClick: startHandler(v1.StateEmployeesList)},
				}},
				dialog.Row{Buttons: []dialog.Widget{
					dialog.Button{ID: "profile", Text: "👤 Профиль", OnClick: startHandler(v1.StateProfile)},
				}},
			},
		}},
	}
}

func NewContentMenuDialog(core *core.Core) *dialog.Dialog {
	cuts := v1.NewVideoCutService(core)
	mod := v1.NewModerationService(core)

	return &dialog.Dialog{
		ID:      v1.DialogContentMenu,
		NewData: v1.NewContentMenuData,
		Windows: []*dialog.Window{{
			State: v1.StateContentMenu,
			Widgets: []dialog.Widget{
				dialog.Const{Text: "Что создаём?"},
				dialog.Row{Buttons: []dialog.Widget{
					dialog.Button{ID: "publication", Text: "📣 Публикацию", OnClick: startHandler(v1.StateGenPubSelectCategory)},
				}},
				dialog.Row{Buttons: []dialog.Widget{
					dialog.Button{ID: "video_cut", Text: "🎬 Видеонарезки", OnClick: startHandler(v1.StateVideoCutInput)},
					dialog.Button{ID: "my_cuts", Text: "📁 Мои нарезки", OnClick: cuts.OpenLibrary},
				}},
				dialog.Row{Buttons: []dialog.Widget{
					dialog.Button{ID: "category", Text: "📂 Новую рубрику", OnClick: startHandler(v1.StateCategoryBriefChat)},
				}},
				dialog.Row{Buttons: []dialog.Widget{
					dialog.Button{ID: "mod_pub", Text: "🔍 Модерация публикаций", OnClick: mod.StartPublications},
					dialog.Button{ID: "mod_cut", Text: "🔍 Модерация нарезок", OnClick: mod.StartVideoCuts},
				}},
				dialog.Row{Buttons: []dialog.Widget{
					dialog.Button{ID: "back", Text: "← Назад", OnClick: doneHandler},
				}},
			},
		}},
	}
}

// startHandler pushes a child dialog with fresh data.
func startHandler(target dialog.State) dialog.Handler {
	return func(c *dialog.Context) error {
		c.Start(target, nil)
		return nil
	}
}

func doneHandler(c *dialog.Context) error {
	c.Done(nil)
	return nil
}
