package dialogs

import (
	"fmt"

	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	v1 "github.com/postiq-ai/postiq-bot/app/logic/v1"
	"github.com/postiq-ai/postiq-bot/app/session"
)

var commentPrompt = fmt.Sprintf(
	"Укажите причину отклонения (от %d до %d символов). Её увидит автор.",
	v1.REJECT_COMMENT_MIN_LEN, v1.REJECT_COMMENT_MAX_LEN)

const commentInvalidText = "⚠️ Комментарий слишком короткий или слишком длинный."

func NewModerationPublicationDialog(core *core.Core) *dialog.Dialog {
	svc := v1.NewModerationService(core)
	getter := v1.NewModerationPublicationGetter(core)

	return &dialog.Dialog{
		ID:      v1.DialogModerationPublication,
		NewData: v1.NewModerationPublicationData,
		Windows: []*dialog.Window{
			{
				State:  v1.StateModerationPubList,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Format{Template: "🔍 Модерация публикаций — {position}\n\n📌 {title}\n\n{text}\n\n🏷 {tags}"},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "prev", Text: "⬅️", OnClick: svc.PublicationPrev},
						dialog.Button{ID: "next", Text: "➡️", OnClick: svc.PublicationNext},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "approve", Text: "✅ Одобрить", OnClick: svc.PublicationApprove},
						dialog.Button{ID: "reject", Text: "❌ Отклонить", OnClick: svc.PublicationRejectPrompt},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "back", Text: "← Назад", OnClick: doneHandler},
					}},
				},
			},
			{
				State:  v1.StateModerationPubComment,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Const{Text: commentPrompt},
					dialog.Format{Template: commentInvalidText, Visible: func(d session.Data) bool {
						return d.(*v1.ModerationPublicationData).CommentInvalid
					}},
					dialog.TextInput{ID: "comment",
						MinLen: v1.REJECT_COMMENT_MIN_LEN, MaxLen: v1.REJECT_COMMENT_MAX_LEN,
						OnInput: svc.PublicationReject, OnInvalid: svc.PublicationCommentInvalid},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "back", Text: "← Назад", OnClick: func(c *dialog.Context) error {
							c.Data().(*v1.ModerationPublicationData).CommentInvalid = false
							c.SwitchTo(v1.StateModerationPubList)
							return nil
						}},
					}},
				},
			},
		},
	}
}

func NewModerationVideoCutDialog(core *core.Core) *dialog.Dialog {
	svc := v1.NewModerationService(core)
	getter := v1.NewModerationVideoCutGetter(core)

	return &dialog.Dialog{
		ID:      v1.DialogModerationVideoCut,
		NewData: v1.NewModerationVideoCutData,
		Windows: []*dialog.Window{
			{
				State:  v1.StateModerationCutList,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Format{Template: "🔍 Модерация нарезок — {position}\n\n📌 {title}\n\n{text}\n\n🏷 {tags}"},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.URLButton{Text: "▶️ Смотреть", URLFrom: "video_url"},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "prev", Text: "⬅️", OnClick: svc.VideoCutPrev},
						dialog.Button{ID: "next", Text: "➡️", OnClick: svc.VideoCutNext},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "approve", Text: "✅ Одобрить", OnClick: svc.VideoCutApprove},
						dialog.Button{ID: "reject", Text: "❌ Отклонить", OnClick: svc.VideoCutRejectPrompt},
					}},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "back", Text: "← Назад", OnClick: doneHandler},
					}},
				},
			},
			{
				State:  v1.StateModerationCutComment,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Const{Text: commentPrompt},
					dialog.Format{Template: commentInvalidText, Visible: func(d session.Data) bool {
						return d.(*v1.ModerationVideoCutData).CommentInvalid
					}},
					dialog.TextInput{ID: "comment",
						MinLen: v1.REJECT_COMMENT_MIN_LEN, MaxLen: v1.REJECT_COMMENT_MAX_LEN,
						OnInput: svc.VideoCutReject, OnInvalid: svc.VideoCutCommentInvalid},
					dialog.Row{Buttons: []dialog.Widget{
						dialog.Button{ID: "back", Text: "← Назад", OnClick: func(c *dialog.Context) error {
							c.Data().(*v1.ModerationVideoCutData).CommentInvalid = false
							c.SwitchTo(v1.StateModerationCutList)
							return nil
						}},
					}},
				},
			},
		},
	}
}
