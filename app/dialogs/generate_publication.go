package dialogs

import (
	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	v1 "github.com/postiq-ai/postiq-bot/app/logic/v1"
	"github.com/postiq-ai/postiq-bot/app/session"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

func NewGeneratePublicationDialog(core *core.Core) *dialog.Dialog {
	svc := v1.NewGeneratePublicationService(core)
	getter := v1.NewGeneratePublicationGetter(core)

	pub := func(d session.Data) *v1.GeneratePublicationData {
		return d.(*v1.GeneratePublicationData)
	}
	inputInvalid := func(d session.Data) bool { return pub(d).InputInvalid }
	processingError := func(d session.Data) bool { return pub(d).ProcessingError }

	back := func(target dialog.State) dialog.Handler {
		return func(c *dialog.Context) error {
			pub(c.Data()).InputInvalid = false
			pub(c.Data()).ProcessingError = false
			c.SwitchTo(target)
			return nil
		}
	}

	return &dialog.Dialog{
		ID:      v1.DialogGeneratePublication,
		NewData: v1.NewGeneratePublicationData,
		Windows: []*dialog.Window{
			{
				State:  v1.StateGenPubSelectCategory,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Const{Text: "Выберите рубрику:"},
					dialog.Select{ID: "category", OptionsFrom: "categories", PerRow: 1,
						OnSelect: func(c *dialog.Context, _ int, opt dialog.SelectOption) error {
							return svc.SelectCategory(c, opt.Value, opt.Label)
						}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "cancel", Text: "← Отмена", OnClick: doneHandler},
					}},
				},
			},
			{
				State:  v1.StateGenPubInputText,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Format{Template: "Рубрика: {category}\n\nОпишите, о чём должна быть публикация:"},
					dialog.Format{Template: "⚠️ Описание должно быть от 10 до 1000 символов.", Visible: inputInvalid},
					dialog.TextInput{ID: "user_text", MinLen: 10, MaxLen: 1000,
						OnInput: svc.SubmitText, OnInvalid: svc.MarkInvalid},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "back", Text: "← Назад", OnClick: back(v1.StateGenPubSelectCategory)},
					}},
				},
			},
			{
				State:  v1.StateGenPubGeneration,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Const{Text: "⚠️ Не получилось сгенерировать публикацию."},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "retry", Text: "🔁 Повторить", OnClick: svc.Retry},
						dialog.Button{ID: "cancel", Text: "← Отмена", OnClick: doneHandler},
					}},
				},
			},
			{
				State:  v1.StateGenPubPreview,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Media{Ref: v1.PreviewMedia},
					dialog.Format{Template: "📌 {title}\n\n{text}\n\n🏷 {tags}\n\nСимволов: {text_len} из {text_limit}"},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "edit_text", Text: "✏️ Текст", OnClick: back(v1.StateGenPubEditTextMenu)},
						dialog.Button{ID: "edit_image", Text: "🖼 Изображение", OnClick: back(v1.StateGenPubImageMenu)},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "save", Text: "💾 Сохранить правки", OnClick: svc.SaveEdits,
							Visible: func(d session.Data) bool {
								return pub(d).HasChanges && pub(d).PublicationID != ""
							}},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "publish", Text: "📣 Опубликовать", OnClick: svc.OpenNetworkSelect},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "cancel", Text: "❌ Отменить", OnClick: doneHandler},
					}},
				},
			},
			{
				State:  v1.StateGenPubEditTextMenu,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Const{Text: "Что изменить?"},
					dialog.Format{Template: "⚠️ Не получилось перегенерировать. Попробуйте ещё раз.", Visible: processingError},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "regen_all", Text: "🔁 Перегенерировать всё", OnClick: svc.RegenerateAll},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "regen_prompt", Text: "💬 Перегенерировать с пожеланием", OnClick: back(v1.StateGenPubRegeneratePrompt)},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "title", Text: "📌 Заголовок", OnClick: back(v1.StateGenPubEditTitle)},
						dialog.Button{ID: "tags", Text: "🏷 Теги", OnClick: back(v1.StateGenPubEditTags)},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "content", Text: "📝 Текст вручную", OnClick: back(v1.StateGenPubEditContent)},
						dialog.Button{ID: "back", Text: "← Назад", OnClick: back(v1.StateGenPubPreview)},
					}},
				},
			},
			{
				State:  v1.StateGenPubRegeneratePrompt,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Const{Text: "Напишите, что поправить в тексте:"},
					dialog.Format{Template: "⚠️ Пожелание должно быть от 3 до 500 символов.", Visible: inputInvalid},
					dialog.TextInput{ID: "regen_prompt", MinLen: 3, MaxLen: 500,
						OnInput: svc.RegenerateWithPrompt, OnInvalid: svc.MarkInvalid},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "back", Text: "← Назад", OnClick: back(v1.StateGenPubEditTextMenu)},
					}},
				},
			},
			{
				State:  v1.StateGenPubEditTitle,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Format{Template: "Текущий заголовок:\n{title}\n\nПришлите новый:"},
					dialog.Format{Template: "⚠️ Заголовок должен быть от 1 до 200 символов.", Visible: inputInvalid},
					dialog.TextInput{ID: "title", MinLen: 1, MaxLen: 200,
						OnInput: svc.EditTitle, OnInvalid: svc.MarkInvalid},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "back", Text: "← Назад", OnClick: back(v1.StateGenPubEditTextMenu)},
					}},
				},
			},
			{
				State:  v1.StateGenPubEditTags,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Format{Template: "Текущие теги:\n{tags}\n\nПришлите новые через запятую:"},
					dialog.Format{Template: "⚠️ Теги должны быть от 1 до 300 символов.", Visible: inputInvalid},
					dialog.TextInput{ID: "tags", MinLen: 1, MaxLen: 300,
						OnInput: svc.EditTags, OnInvalid: svc.MarkInvalid},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "back", Text: "← Назад", OnClick: back(v1.StateGenPubEditTextMenu)},
					}},
				},
			},
			{
				State:  v1.StateGenPubEditContent,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Format{Template: "Пришлите новый текст публикации (лимит {text_limit} символов):"},
					dialog.Format{Template: "⚠️ Текст не должен быть пустым.", Visible: inputInvalid},
					dialog.TextInput{ID: "content", MinLen: 1, MaxLen: types.PUBLICATION_TEXT_LIMIT_PLAIN,
						OnInput: svc.EditContent, OnInvalid: svc.MarkInvalid},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "back", Text: "← Назад", OnClick: back(v1.StateGenPubEditTextMenu)},
					}},
				},
			},
			{
				State:  v1.StateGenPubImageMenu,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Media{Ref: v1.PreviewMedia},
					dialog.Const{Text: "Изображение публикации:"},
					dialog.Format{Template: "⚠️ Не получилось сгенерировать изображение.", Visible: processingError},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "generate", Text: "✨ Сгенерировать", OnClick: svc.GenerateImage},
						dialog.Button{ID: "generate_prompt", Text: "💬 С пожеланием", OnClick: back(v1.StateGenPubImagePrompt)},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "upload", Text: "📤 Загрузить своё", OnClick: back(v1.StateGenPubUploadImage)},
						dialog.Button{ID: "remove", Text: "🗑 Убрать", OnClick: svc.RemoveImage,
							Visible: func(d session.Data) bool { return pub(d).HasImage() }},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "back", Text: "← Назад", OnClick: back(v1.StateGenPubPreview)},
					}},
				},
			},
			{
				State:  v1.StateGenPubImagePrompt,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Const{Text: "Опишите, какое изображение нужно:"},
					dialog.Format{Template: "⚠️ Описание должно быть от 3 до 500 символов.", Visible: inputInvalid},
					dialog.TextInput{ID: "image_prompt", MinLen: 3, MaxLen: 500,
						OnInput: svc.GenerateImageWithPrompt, OnInvalid: svc.MarkInvalid},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "back", Text: "← Назад", OnClick: back(v1.StateGenPubImageMenu)},
					}},
				},
			},
			{
				State:  v1.StateGenPubUploadImage,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Const{Text: "Пришлите изображение одним фото:"},
					dialog.MediaInput{ID: "image", OnMedia: svc.UploadImage},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "back", Text: "← Назад", OnClick: back(v1.StateGenPubImageMenu)},
					}},
				},
			},
			{
				State:  v1.StateGenPubConfirmImage,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Media{Ref: v1.CandidateMedia},
					dialog.Const{Text: "Оставляем это изображение?"},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "flip", Text: "🔄 Показать другой вариант", OnClick: svc.FlipCandidate,
							Visible: func(d session.Data) bool { return !pub(d).PreviousGenerationBackup.Empty() }},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "confirm", Text: "✅ Оставить", OnClick: svc.ConfirmImage},
						dialog.Button{ID: "reject", Text: "↩️ Вернуть прежнее", OnClick: svc.RejectImage},
					}},
				},
			},
			{
				State:  v1.StateGenPubTextTooLong,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Format{Template: "⚠️ Текст длиннее лимита: {text_len} из {text_limit} символов.\n\n" +
						"С изображением Telegram ограничивает подпись."},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "compress", Text: "✂️ Сократить текст", OnClick: svc.CompressText},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "drop_image", Text: "🗑 Убрать изображение", OnClick: svc.RemoveImage},
						dialog.Button{ID: "edit", Text: "✏️ Править вручную", OnClick: back(v1.StateGenPubEditContent)},
					}},
				},
			},
			{
				State:  v1.StateGenPubNetworkSelect,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Const{Text: "Куда публикуем?"},
					dialog.Format{Template: "⚠️ Выберите хотя бы одну сеть.",
						Visible: func(d session.Data) bool { return pub(d).NetworkError }},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Checkbox{ID: types.SOCIAL_NETWORK_TELEGRAM, Text: "Telegram",
							Checked:  func(d session.Data) bool { return pub(d).Networks[types.SOCIAL_NETWORK_TELEGRAM] },
							OnToggle: svc.ToggleNetwork(types.SOCIAL_NETWORK_TELEGRAM)},
						dialog.Checkbox{ID: types.SOCIAL_NETWORK_VKONTAKTE, Text: "ВКонтакте",
							Checked:  func(d session.Data) bool { return pub(d).Networks[types.SOCIAL_NETWORK_VKONTAKTE] },
							OnToggle: svc.ToggleNetwork(types.SOCIAL_NETWORK_VKONTAKTE)},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "submit", Text: "📣 Опубликовать", OnClick: func(c *dialog.Context) error {
							return svc.Submit(c, false)
						}},
						dialog.Button{ID: "draft", Text: "📝 В черновики", OnClick: func(c *dialog.Context) error {
							return svc.Submit(c, true)
						}},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "back", Text: "← Назад", OnClick: back(v1.StateGenPubPreview)},
					}},
				},
			},
			{
				State:  v1.StateGenPubSuccess,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Format{Template: "{outcome}"},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "done", Text: "🏠 В меню", OnClick: doneHandler},
					}},
				},
			},
		},
	}
}
