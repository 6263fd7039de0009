package v1

import (
	"context"
	"strconv"

	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	"github.com/postiq-ai/postiq-bot/app/session"
	"github.com/postiq-ai/postiq-bot/pkg/errors"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

const (
	ALERT_KIND_VIZARD   = "vizard"
	ALERT_KIND_APPROVED = "publication_approved"
	ALERT_KIND_REJECTED = "publication_rejected"
)

// AlertViewData carries one delivered alert. The frame is pushed on top
// of whatever the user was doing; acknowledging pops back.
type AlertViewData struct {
	Kind string `json:"kind"`

	YoutubeReference string `json:"youtube_reference,omitempty"`
	VideoCount       int    `json:"video_count,omitempty"`
	PublicationID    string `json:"publication_id,omitempty"`
}

func (AlertViewData) DialogID() string { return DialogAlertView }

func NewAlertViewData() session.Data { return &AlertViewData{} }

// Ack dismisses the alert window.
func AlertAck(c *dialog.Context) error {
	c.Done(nil)
	return nil
}

// DeliverPending pushes one AlertView frame per queued alert and
// consumes the queue. The user acknowledges them one by one; each Done
// pops to the next.
func DeliverPending(ctx context.Context, core *core.Core, engine *dialog.Manager, user *types.UserState) error {
	alerts := NewAlertLogic(ctx, core)

	pending, err := alerts.List(user.ID)
	if err != nil {
		return errors.Trace("DeliverPending", err)
	}
	if pending.Empty() {
		return nil
	}

	push := func(state dialog.State, data *AlertViewData) error {
		return engine.StartDialog(ctx, user, user.TgChatID, state, data, false)
	}

	for _, a := range pending.Vizard {
		err := push(StateAlertVizard, &AlertViewData{
			Kind:             ALERT_KIND_VIZARD,
			YoutubeReference: a.YoutubeReference,
			VideoCount:       a.VideoCount,
		})
		if err != nil {
			return errors.Trace("DeliverPending", err)
		}
		core.Metrics().AlertDrainedInc(ALERT_KIND_VIZARD)
	}
	for _, a := range pending.Approved {
		err := push(StateAlertPubApproved, &AlertViewData{
			Kind:          ALERT_KIND_APPROVED,
			PublicationID: a.PublicationID,
		})
		if err != nil {
			return errors.Trace("DeliverPending", err)
		}
		core.Metrics().AlertDrainedInc(ALERT_KIND_APPROVED)
	}
	for _, a := range pending.Rejected {
		err := push(StateAlertPubRejected, &AlertViewData{
			Kind:          ALERT_KIND_REJECTED,
			PublicationID: a.PublicationID,
		})
		if err != nil {
			return errors.Trace("DeliverPending", err)
		}
		core.Metrics().AlertDrainedInc(ALERT_KIND_REJECTED)
	}

	// Delete only after every alert reached the session stack.
	return alerts.Consume(user.ID)
}

type AlertViewGetter struct {
	core *core.Core
}

func NewAlertViewGetter(core *core.Core) *AlertViewGetter {
	return &AlertViewGetter{core: core}
}

func (g *AlertViewGetter) ViewData(ctx context.Context, view *dialog.View) (dialog.ViewData, error) {
	data := view.Data.(*AlertViewData)

	vd := dialog.ViewData{
		"youtube_reference": data.YoutubeReference,
		"video_count":       strconv.Itoa(data.VideoCount),
		"publication_title": "",
	}

	if data.PublicationID != "" {
		pub, err := g.core.Clients().Publication.GetByID(ctx, data.PublicationID)
		if err != nil {
			return nil, errors.Trace("AlertViewGetter.ViewData", err)
		}
		vd["publication_title"] = pub.Title
		vd["moderation_comment"] = pub.ModerationComment
	}
	return vd, nil
}
