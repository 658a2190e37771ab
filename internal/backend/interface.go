package backend

import (
	"context"

	"studytrack/internal/core"
)

// Store is the unified persistence interface the services are built on.
// Both the SQLite repository and the in-memory store satisfy it.
type Store interface {
	Close() error
	Ping(ctx context.Context) error

	ListStudies(ctx context.Context) ([]core.Study, error)
	GetStudy(ctx context.Context, id int64) (core.Study, error)
	CreateStudy(ctx context.Context, category, name string) (core.Study, error)
	UpdateStudy(ctx context.Context, id int64, category, name string) (core.Study, error)
	DeleteStudy(ctx context.Context, id int64) error
	CountRecordsByStudy(ctx context.Context, studyID int64) (int64, error)

	ListRecords(ctx context.Context) ([]core.StudyRecord, error)
	ListRecordsByDate(ctx context.Context, date core.Date) ([]core.StudyRecord, error)
	ListRecordsByDateRange(ctx context.Context, start, end core.Date) ([]core.StudyRecord, error)
	ListRecordsByYear(ctx context.Context, year int) ([]core.StudyRecord, error)
	ListRecordsByYearMonth(ctx context.Context, year, month int) ([]core.StudyRecord, error)
	GetRecord(ctx context.Context, id int64) (core.StudyRecord, error)
	CreateRecord(ctx context.Context, rec core.StudyRecord) (core.StudyRecord, error)
	UpdateRecord(ctx context.Context, id int64, patch core.RecordPatch) (core.StudyRecord, error)
	DeleteRecord(ctx context.Context, id int64) error

	ListPendingSyncRecords(ctx context.Context, limit int) ([]core.StudyRecord, error)
	MarkRecordSynced(ctx context.Context, id int64) error
	MarkRecordSyncError(ctx context.Context, id int64) error

	GetMemoByDate(ctx context.Context, date core.Date) (core.DailyMemo, error)
	UpsertMemo(ctx context.Context, date core.Date, memo string) (core.DailyMemo, error)
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the store instance and optional cleanup function
type Result struct {
	Store   Store
	Cleanup CleanupFunc
}

// Type represents the kind of persistence backend
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
