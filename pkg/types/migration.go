package types

import "database/sql"

type MigrationStatus string

const (
	MIGRATION_STATUS_SUCCESS     MigrationStatus = "success"
	MIGRATION_STATUS_FAILED      MigrationStatus = "failed"
	MIGRATION_STATUS_ROLLED_BACK MigrationStatus = "rolled_back"
)

// MigrationHistory is append-only except for status transitions
// (success → rolled_back).
type MigrationHistory struct {
	ID              int64           `json:"id" db:"id"`
	Version         string          `json:"version" db:"version"`
	Name            string          `json:"name" db:"name"`
	AppliedAt       int64           `json:"applied_at" db:"applied_at"`
	ExecutionTimeMs int64           `json:"execution_time_ms" db:"execution_time_ms"`
	Checksum        string          `json:"checksum" db:"checksum"`
	Status          MigrationStatus `json:"status" db:"status"`
	ErrorMessage    sql.NullString  `json:"error_message" db:"error_message"`
	RollbackAt      sql.NullInt64   `json:"rollback_at" db:"rollback_at"`
}
