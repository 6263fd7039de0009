package v1

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/pkg/errors"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

// AlertLogic queues and drains out-of-band notifications. Webhook
// callers queue by account id; the drain middleware consumes by state.
type AlertLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewAlertLogic(ctx context.Context, core *core.Core) *AlertLogic {
	return &AlertLogic{ctx: ctx, core: core}
}

func (l *AlertLogic) QueueVizard(accountID int64, youtubeReference string, videoCount int) (*types.UserState, error) {
	state, err := l.stateOf(accountID)
	if err != nil {
		return nil, errors.Trace("AlertLogic.QueueVizard", err)
	}
	err = l.core.Store().VizardVideoCutAlertStore().Create(l.ctx, types.VizardVideoCutAlert{
		StateID:          state.ID,
		YoutubeReference: youtubeReference,
		VideoCount:       videoCount,
		CreatedAt:        time.Now().Unix(),
	})
	if err != nil {
		return nil, errors.Trace("AlertLogic.QueueVizard", err)
	}
	return state, nil
}

func (l *AlertLogic) QueuePublicationApproved(accountID int64, publicationID string) (*types.UserState, error) {
	state, err := l.stateOf(accountID)
	if err != nil {
		return nil, errors.Trace("AlertLogic.QueuePublicationApproved", err)
	}
	err = l.core.Store().PublicationApprovedAlertStore().Create(l.ctx, types.PublicationApprovedAlert{
		StateID:       state.ID,
		PublicationID: publicationID,
		CreatedAt:     time.Now().Unix(),
	})
	if err != nil {
		return nil, errors.Trace("AlertLogic.QueuePublicationApproved", err)
	}
	return state, nil
}

func (l *AlertLogic) QueuePublicationRejected(accountID int64, publicationID string) (*types.UserState, error) {
	state, err := l.stateOf(accountID)
	if err != nil {
		return nil, errors.Trace("AlertLogic.QueuePublicationRejected", err)
	}
	err = l.core.Store().PublicationRejectedAlertStore().Create(l.ctx, types.PublicationRejectedAlert{
		StateID:       state.ID,
		PublicationID: publicationID,
		CreatedAt:     time.Now().Unix(),
	})
	if err != nil {
		return nil, errors.Trace("AlertLogic.QueuePublicationRejected", err)
	}
	return state, nil
}

func (l *AlertLogic) stateOf(accountID int64) (*types.UserState, error) {
	state, err := l.core.Store().UserStateStore().GetByAccountID(l.ctx, accountID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, errors.New("AlertLogic.stateOf", "no state for account", nil).
			Kind(errors.KindValidation)
	}
	return state, nil
}

// PendingAlerts is one drain batch in delivery order.
type PendingAlerts struct {
	Vizard   []types.VizardVideoCutAlert
	Approved []types.PublicationApprovedAlert
	Rejected []types.PublicationRejectedAlert
}

func (p PendingAlerts) Empty() bool {
	return len(p.Vizard) == 0 && len(p.Approved) == 0 && len(p.Rejected) == 0
}

// List returns the queued alerts for a state without consuming them.
// The three tables are independent, so the reads run concurrently.
func (l *AlertLogic) List(stateID int64) (PendingAlerts, error) {
	var out PendingAlerts

	g, ctx := errgroup.WithContext(l.ctx)
	g.Go(func() (err error) {
		out.Vizard, err = l.core.Store().VizardVideoCutAlertStore().ListByStateID(ctx, stateID)
		return err
	})
	g.Go(func() (err error) {
		out.Approved, err = l.core.Store().PublicationApprovedAlertStore().ListByStateID(ctx, stateID)
		return err
	})
	g.Go(func() (err error) {
		out.Rejected, err = l.core.Store().PublicationRejectedAlertStore().ListByStateID(ctx, stateID)
		return err
	})
	if err := g.Wait(); err != nil {
		return out, errors.Trace("AlertLogic.List", err)
	}
	return out, nil
}

// Consume deletes every queued alert of a state. Called only after
// delivery succeeded.
func (l *AlertLogic) Consume(stateID int64) error {
	if err := l.core.Store().VizardVideoCutAlertStore().DeleteByStateID(l.ctx, stateID); err != nil {
		return errors.Trace("AlertLogic.Consume", err)
	}
	if err := l.core.Store().PublicationApprovedAlertStore().DeleteByStateID(l.ctx, stateID); err != nil {
		return errors.Trace("AlertLogic.Consume", err)
	}
	if err := l.core.Store().PublicationRejectedAlertStore().DeleteByStateID(l.ctx, stateID); err != nil {
		return errors.Trace("AlertLogic.Consume", err)
	}
	return nil
}
