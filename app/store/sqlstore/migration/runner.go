package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/postiq-ai/postiq-bot/pkg/types"
)

type Runner struct {
	db         *sqlx.DB
	registered []Migration
}

func NewRunner(db *sqlx.DB) *Runner {
	return &Runner{db: db, registered: Registered()}
}

func (r *Runner) historyTable() string {
	return types.TABLE_MIGRATION_HISTORY.Name()
}

// EnsureHistoryTable bootstraps the history table itself; it is the one
// schema object not managed by a migration.
func (r *Runner) EnsureHistoryTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			version VARCHAR(32) NOT NULL,
			name VARCHAR(128) NOT NULL,
			applied_at BIGINT NOT NULL,
			execution_time_ms BIGINT NOT NULL DEFAULT 0,
			checksum VARCHAR(64) NOT NULL DEFAULT '',
			status VARCHAR(16) NOT NULL,
			error_message TEXT,
			rollback_at BIGINT
		)`, r.historyTable()))
	return err
}

func (r *Runner) appliedVersions(ctx context.Context) (map[string]bool, error) {
	query, args, err := sq.Select("version").From(r.historyTable()).
		Where(sq.Eq{"status": types.MIGRATION_STATUS_SUCCESS}).ToSql()
	if err != nil {
		return nil, err
	}

	var versions []string
	if err = r.db.SelectContext(ctx, &versions, query, args...); err != nil {
		return nil, err
	}

	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

// Up applies every pending migration with version ≤ target.
func (r *Runner) Up(ctx context.Context, target string) error {
	if err := r.EnsureHistoryTable(ctx); err != nil {
		return err
	}

	applied, err := r.appliedVersions(ctx)
	if err != nil {
		return err
	}

	todo, err := pending(r.registered, applied, target)
	if err != nil {
		return err
	}

	for _, m := range todo {
		if err := r.apply(ctx, m); err != nil {
			return err
		}
		applied[m.Version] = true
	}
	return nil
}

// Apply runs one registered migration by version, ignoring target
// ordering but still refusing unapplied dependencies.
func (r *Runner) Apply(ctx context.Context, version string) error {
	if err := r.EnsureHistoryTable(ctx); err != nil {
		return err
	}

	m, ok := r.find(version)
	if !ok {
		return fmt.Errorf("unknown migration %s", version)
	}

	applied, err := r.appliedVersions(ctx)
	if err != nil {
		return err
	}
	if applied[m.Version] {
		return nil
	}
	if m.DependsOn != "" && !applied[m.DependsOn] {
		return fmt.Errorf("migration %s depends on unapplied %s", m.Version, m.DependsOn)
	}

	return r.apply(ctx, m)
}

func (r *Runner) apply(ctx context.Context, m Migration) error {
	slog.Info("applying migration", slog.String("migration", m.FullName()))

	started := time.Now()
	err := r.runStatements(ctx, m.UpSQL)
	elapsed := time.Since(started).Milliseconds()

	if err != nil {
		// Best effort; the failure row must not mask the original error.
		if recErr := r.record(ctx, m, elapsed, types.MIGRATION_STATUS_FAILED, err.Error()); recErr != nil {
			slog.Error("failed to record migration failure",
				slog.String("migration", m.FullName()), slog.Any("error", recErr))
		}
		return fmt.Errorf("migration %s failed: %w", m.FullName(), err)
	}

	return r.record(ctx, m, elapsed, types.MIGRATION_STATUS_SUCCESS, "")
}

// Rollback runs the down statements of an applied version and marks its
// history row rolled_back.
func (r *Runner) Rollback(ctx context.Context, version string) error {
	m, ok := r.find(version)
	if !ok {
		return fmt.Errorf("unknown migration %s", version)
	}

	if err := r.runStatements(ctx, m.DownSQL); err != nil {
		return fmt.Errorf("rollback of %s failed: %w", m.FullName(), err)
	}

	query, args, err := sq.Update(r.historyTable()).
		Set("status", types.MIGRATION_STATUS_ROLLED_BACK).
		Set("rollback_at", time.Now().Unix()).
		Where(sq.Eq{"version": m.Version, "status": types.MIGRATION_STATUS_SUCCESS}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

// DropAll reverses every applied migration in descending order. Bound to
// the bootstrap table/drop route.
func (r *Runner) DropAll(ctx context.Context) error {
	if err := r.EnsureHistoryTable(ctx); err != nil {
		return err
	}

	applied, err := r.appliedVersions(ctx)
	if err != nil {
		return err
	}

	for i := len(r.registered) - 1; i >= 0; i-- {
		m := r.registered[i]
		if !applied[m.Version] {
			continue
		}
		if err := r.Rollback(ctx, m.Version); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runStatements(ctx context.Context, statements []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for _, stmt := range statements {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *Runner) record(ctx context.Context, m Migration, elapsedMs int64, status types.MigrationStatus, errMsg string) error {
	builder := sq.Insert(r.historyTable()).
		Columns("version", "name", "applied_at", "execution_time_ms", "checksum", "status", "error_message").
		Values(m.Version, m.Name, time.Now().Unix(), elapsedMs, m.Checksum(), status,
			sq.Expr("NULLIF(?, '')", errMsg))

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *Runner) find(version string) (Migration, bool) {
	for _, m := range r.registered {
		if m.Version == version {
			return m, true
		}
	}
	return Migration{}, false
}
