package dialogs

import (
	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	v1 "github.com/postiq-ai/postiq-bot/app/logic/v1"
)

func NewEmployeesDialog(core *core.Core) *dialog.Dialog {
	svc := v1.NewEmployeesService(core)
	getter := v1.NewEmployeesGetter(core)

	return &dialog.Dialog{
		ID:      v1.DialogEmployees,
		NewData: v1.NewEmployeesData,
		Windows: []*dialog.Window{
			{
				State:  v1.StateEmployeesList,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Format{Template: "👥 Сотрудники ({count}):"},
					dialog.Select{ID: "employee", OptionsFrom: "employees", PerRow: 1,
						OnSelect: func(c *dialog.Context, _ int, opt dialog.SelectOption) error {
							return svc.Select(c, opt.Value)
						}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "back", Text: "← Назад", OnClick: doneHandler},
					}},
				},
			},
			{
				State:  v1.StateEmployeesDetail,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Format{Template: "👤 {employee_name}\nРоль: {employee_role}\n\n" +
						"Обязательная модерация: {required_moderation}\nАвтопостинг: {autoposting}"},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "toggle_moderation", Text: "🔍 Модерация вкл/выкл", OnClick: svc.ToggleModeration},
						dialog.Button{ID: "toggle_autoposting", Text: "🚀 Автопостинг вкл/выкл", OnClick: svc.ToggleAutoposting},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "remove", Text: "🗑 Удалить из организации", OnClick: svc.Remove},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "back", Text: "← К списку", OnClick: func(c *dialog.Context) error {
							c.SwitchTo(v1.StateEmployeesList)
							return nil
						}},
					}},
				},
			},
		},
	}
}
