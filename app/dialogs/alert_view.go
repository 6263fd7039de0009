package dialogs

import (
	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	v1 "github.com/postiq-ai/postiq-bot/app/logic/v1"
)

func NewAlertViewDialog(core *core.Core) *dialog.Dialog {
	getter := v1.NewAlertViewGetter(core)

	ackRow := dialog.Row{Buttons: []dialog.Widget{
		dialog.Button{ID: "ack", Text: "👌 Понятно", OnClick: v1.AlertAck},
	}}

	return &dialog.Dialog{
		ID:      v1.DialogAlertView,
		NewData: v1.NewAlertViewData,
		Windows: []*dialog.Window{
			{
				State:  v1.StateAlertVizard,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Format{Template: "🎬 Нарезки готовы!\n\nИз видео {youtube_reference} " +
						"получилось роликов: {video_count}. Найдёте их в разделе «Мои нарезки»."},
					ackRow,
				},
			},
			{
				State:  v1.StateAlertPubApproved,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Format{Template: "✅ Публикация «{publication_title}» прошла модерацию и опубликована."},
					ackRow,
				},
			},
			{
				State:  v1.StateAlertPubRejected,
				Getter: getter,
				Widgets: []dialog.Widget{
					dialog.Format{Template: "❌ Публикация «{publication_title}» отклонена.\n\nКомментарий модератора:\n{moderation_comment}"},
					ackRow,
				},
			},
		},
	}
}
