package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/postiq-ai/postiq-bot/pkg/register"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.VizardVideoCutAlertStore = NewVizardVideoCutAlertStore(provider)
		provider.stores.PublicationApprovedAlertStore = NewPublicationApprovedAlertStore(provider)
		provider.stores.PublicationRejectedAlertStore = NewPublicationRejectedAlertStore(provider)
	})
}

// Alert stores share one shape: append on callback, list ordered by
// creation time ascending, delete unconditionally by state id. Create
// does not dedupe; callers check first when duplicates are unwanted.

type VizardVideoCutAlertStore struct {
	CommonFields
}

func NewVizardVideoCutAlertStore(provider SqlProviderAchieve) *VizardVideoCutAlertStore {
	repo := &VizardVideoCutAlertStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_VIZARD_VIDEO_CUT_ALERT)
	repo.SetAllColumns("id", "state_id", "youtube_video_reference", "video_count", "created_at")
	return repo
}

func (s *VizardVideoCutAlertStore) Create(ctx context.Context, data types.VizardVideoCutAlert) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	query := sq.Insert(s.GetTable()).
		Columns("state_id", "youtube_video_reference", "video_count", "created_at").
		Values(data.StateID, data.YoutubeReference, data.VideoCount, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *VizardVideoCutAlertStore) ListByStateID(ctx context.Context, stateID int64) ([]types.VizardVideoCutAlert, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"state_id": stateID}).OrderBy("created_at ASC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.VizardVideoCutAlert
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *VizardVideoCutAlertStore) DeleteByStateID(ctx context.Context, stateID int64) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"state_id": stateID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

type PublicationApprovedAlertStore struct {
	CommonFields
}

func NewPublicationApprovedAlertStore(provider SqlProviderAchieve) *PublicationApprovedAlertStore {
	repo := &PublicationApprovedAlertStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_PUBLICATION_APPROVED_ALERT)
	repo.SetAllColumns("id", "state_id", "publication_id", "created_at")
	return repo
}

func (s *PublicationApprovedAlertStore) Create(ctx context.Context, data types.PublicationApprovedAlert) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	query := sq.Insert(s.GetTable()).
		Columns("state_id", "publication_id", "created_at").
		Values(data.StateID, data.PublicationID, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *PublicationApprovedAlertStore) ListByStateID(ctx context.Context, stateID int64) ([]types.PublicationApprovedAlert, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"state_id": stateID}).OrderBy("created_at ASC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.PublicationApprovedAlert
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *PublicationApprovedAlertStore) DeleteByStateID(ctx context.Context, stateID int64) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"state_id": stateID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

type PublicationRejectedAlertStore struct {
	CommonFields
}

func NewPublicationRejectedAlertStore(provider SqlProviderAchieve) *PublicationRejectedAlertStore {
	repo := &PublicationRejectedAlertStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_PUBLICATION_REJECTED_ALERT)
	repo.SetAllColumns("id", "state_id", "publication_id", "created_at")
	return repo
}

func (s *PublicationRejectedAlertStore) Create(ctx context.Context, data types.PublicationRejectedAlert) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	query := sq.Insert(s.GetTable()).
		Columns("state_id", "publication_id", "created_at").
		Values(data.StateID, data.PublicationID, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *PublicationRejectedAlertStore) ListByStateID(ctx context.Context, stateID int64) ([]types.PublicationRejectedAlert, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"state_id": stateID}).OrderBy("created_at ASC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.PublicationRejectedAlert
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *PublicationRejectedAlertStore) DeleteByStateID(ctx context.Context, stateID int64) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"state_id": stateID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
