package sqlstore

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/postiq-ai/postiq-bot/pkg/register"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.CachedFileStore = NewCachedFileStore(provider)
	})
}

type CachedFileStore struct {
	CommonFields
}

func NewCachedFileStore(provider SqlProviderAchieve) *CachedFileStore {
	repo := &CachedFileStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_CACHED_FILE)
	repo.SetAllColumns("id", "filename", "file_id", "created_at")
	return repo
}

// Create keeps the first mapping for a filename. The cache is
// write-once; a concurrent duplicate insert is dropped silently.
func (s *CachedFileStore) Create(ctx context.Context, data types.CachedFile) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	query := sq.Insert(s.GetTable()).
		Columns("filename", "file_id", "created_at").
		Values(data.Filename, data.FileID, data.CreatedAt).
		Suffix("ON CONFLICT (filename) DO NOTHING")

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *CachedFileStore) GetByFilename(ctx context.Context, filename string) (*types.CachedFile, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"filename": filename})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.CachedFile
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}
