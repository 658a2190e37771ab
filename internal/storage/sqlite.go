package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"studytrack/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists studies, study records and daily memos in a
// single SQLite database file.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping verifies the database connection is still usable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ---- studies ----

const studyColumns = "id, category, name, created_at, updated_at"

func scanStudy(row interface{ Scan(...any) error }) (core.Study, error) {
	var s core.Study
	var createdAt, updatedAt string
	if err := row.Scan(&s.ID, &s.Category, &s.Name, &createdAt, &updatedAt); err != nil {
		return core.Study{}, err
	}
	s.CreatedAt = parseTime(createdAt)
	s.UpdatedAt = parseTime(updatedAt)
	return s, nil
}

func (r *SQLiteRepository) ListStudies(ctx context.Context) ([]core.Study, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+studyColumns+" FROM studies ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list studies: %w", err)
	}
	defer rows.Close()

	var out []core.Study
	for rows.Next() {
		s, err := scanStudy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan study: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetStudy(ctx context.Context, id int64) (core.Study, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+studyColumns+" FROM studies WHERE id = ?", id)
	s, err := scanStudy(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Study{}, fmt.Errorf("study %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Study{}, fmt.Errorf("get study: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) CreateStudy(ctx context.Context, category, name string) (core.Study, error) {
	now := formatTime(time.Now())
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO studies (category, name, created_at, updated_at) VALUES (?, ?, ?, ?)",
		category, name, now, now)
	if err != nil {
		return core.Study{}, fmt.Errorf("create study: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Study{}, fmt.Errorf("study insert id: %w", err)
	}

	slog.InfoContext(ctx, "Study saved to SQLite", "id", id, "category", category, "name", name)

	return r.GetStudy(ctx, id)
}

func (r *SQLiteRepository) UpdateStudy(ctx context.Context, id int64, category, name string) (core.Study, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE studies SET category = ?, name = ?, updated_at = ? WHERE id = ?",
		category, name, formatTime(time.Now()), id)
	if err != nil {
		return core.Study{}, fmt.Errorf("update study: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.Study{}, fmt.Errorf("study %d: %w", id, core.ErrNotFound)
	}
	return r.GetStudy(ctx, id)
}

func (r *SQLiteRepository) DeleteStudy(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM studies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete study: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("study %d: %w", id, core.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) CountRecordsByStudy(ctx context.Context, studyID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM study_records WHERE study_id = ?", studyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count records by study: %w", err)
	}
	return n, nil
}

// ---- study records ----

const recordSelect = `SELECT r.id, r.study_id, s.name, s.category, r.date, r.time_slot, r.duration, r.created_at, r.updated_at
FROM study_records r JOIN studies s ON s.id = r.study_id`

func scanRecord(row interface{ Scan(...any) error }) (core.StudyRecord, error) {
	var rec core.StudyRecord
	var date, slot, createdAt, updatedAt string
	err := row.Scan(&rec.ID, &rec.StudyID, &rec.StudyName, &rec.StudyCategory,
		&date, &slot, &rec.Duration, &createdAt, &updatedAt)
	if err != nil {
		return core.StudyRecord{}, err
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.StudyRecord{}, fmt.Errorf("parse record date %q: %w", date, err)
	}
	rec.Date = d
	rec.TimeSlot = core.TimeSlot(slot)
	rec.CreatedAt = parseTime(createdAt)
	rec.UpdatedAt = parseTime(updatedAt)
	return rec, nil
}

func (r *SQLiteRepository) queryRecords(ctx context.Context, where string, args ...any) ([]core.StudyRecord, error) {
	q := recordSelect
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY r.date, r.id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []core.StudyRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ListRecords(ctx context.Context) ([]core.StudyRecord, error) {
	return r.queryRecords(ctx, "")
}

func (r *SQLiteRepository) ListRecordsByDate(ctx context.Context, date core.Date) ([]core.StudyRecord, error) {
	return r.queryRecords(ctx, "r.date = ?", date.String())
}

func (r *SQLiteRepository) ListRecordsByDateRange(ctx context.Context, start, end core.Date) ([]core.StudyRecord, error) {
	if start.After(end) {
		return nil, fmt.Errorf("range %s..%s: %w", start, end, core.ErrInvalidRange)
	}
	return r.queryRecords(ctx, "r.date BETWEEN ? AND ?", start.String(), end.String())
}

func (r *SQLiteRepository) ListRecordsByYear(ctx context.Context, year int) ([]core.StudyRecord, error) {
	start := core.NewDate(year, 1, 1)
	end := core.NewDate(year, 12, 31)
	return r.queryRecords(ctx, "r.date BETWEEN ? AND ?", start.String(), end.String())
}

func (r *SQLiteRepository) ListRecordsByYearMonth(ctx context.Context, year, month int) ([]core.StudyRecord, error) {
	start := core.NewDate(year, month, 1)
	end := core.NewDate(year, month, core.DaysInMonth(year, month))
	return r.queryRecords(ctx, "r.date BETWEEN ? AND ?", start.String(), end.String())
}

func (r *SQLiteRepository) GetRecord(ctx context.Context, id int64) (core.StudyRecord, error) {
	row := r.db.QueryRowContext(ctx, recordSelect+" WHERE r.id = ?", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.StudyRecord{}, fmt.Errorf("record %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.StudyRecord{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// CreateRecord inserts a new record. The referenced study must exist;
// otherwise core.ErrNotFound is returned and nothing is persisted.
func (r *SQLiteRepository) CreateRecord(ctx context.Context, rec core.StudyRecord) (core.StudyRecord, error) {
	if _, err := r.GetStudy(ctx, rec.StudyID); err != nil {
		return core.StudyRecord{}, err
	}

	now := formatTime(time.Now())
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO study_records (study_id, date, time_slot, duration, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		rec.StudyID, rec.Date.String(), string(rec.TimeSlot), rec.Duration, now, now)
	if err != nil {
		return core.StudyRecord{}, fmt.Errorf("create record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.StudyRecord{}, fmt.Errorf("record insert id: %w", err)
	}

	slog.InfoContext(ctx, "Study record saved to SQLite",
		"id", id,
		"study_id", rec.StudyID,
		"date", rec.Date.String(),
		"time_slot", string(rec.TimeSlot),
		"duration", rec.Duration)

	return r.GetRecord(ctx, id)
}

// UpdateRecord applies a partial update. Only non-nil patch fields
// overwrite; a StudyID change is re-resolved against the studies table.
func (r *SQLiteRepository) UpdateRecord(ctx context.Context, id int64, patch core.RecordPatch) (core.StudyRecord, error) {
	existing, err := r.GetRecord(ctx, id)
	if err != nil {
		return core.StudyRecord{}, err
	}

	if patch.StudyID != nil && *patch.StudyID != existing.StudyID {
		if _, err := r.GetStudy(ctx, *patch.StudyID); err != nil {
			return core.StudyRecord{}, err
		}
		existing.StudyID = *patch.StudyID
	}
	if patch.Date != nil {
		existing.Date = *patch.Date
	}
	if patch.TimeSlot != nil {
		existing.TimeSlot = *patch.TimeSlot
	}
	if patch.Duration != nil {
		existing.Duration = *patch.Duration
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE study_records SET study_id = ?, date = ?, time_slot = ?, duration = ?, synced = 0, sync_error = 0, updated_at = ?
WHERE id = ?`,
		existing.StudyID, existing.Date.String(), string(existing.TimeSlot), existing.Duration,
		formatTime(time.Now()), id)
	if err != nil {
		return core.StudyRecord{}, fmt.Errorf("update record: %w", err)
	}

	return r.GetRecord(ctx, id)
}

func (r *SQLiteRepository) DeleteRecord(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM study_records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("record %d: %w", id, core.ErrNotFound)
	}
	return nil
}

// ---- sync bookkeeping for the sheet-export worker ----

// ListPendingSyncRecords returns records not yet exported, oldest first.
func (r *SQLiteRepository) ListPendingSyncRecords(ctx context.Context, limit int) ([]core.StudyRecord, error) {
	q := recordSelect + " WHERE r.synced = 0 AND r.sync_error = 0 ORDER BY r.id LIMIT ?"
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending sync records: %w", err)
	}
	defer rows.Close()

	var out []core.StudyRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) MarkRecordSynced(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "UPDATE study_records SET synced = 1, sync_error = 0 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("mark record synced: %w", err)
	}
	slog.InfoContext(ctx, "Record marked as synced", "id", id)
	return nil
}

func (r *SQLiteRepository) MarkRecordSyncError(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "UPDATE study_records SET sync_error = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("mark record sync error: %w", err)
	}
	slog.WarnContext(ctx, "Record marked with sync error", "id", id)
	return nil
}

// ---- daily memos ----

const memoColumns = "id, date, memo, created_at, updated_at"

func scanMemo(row interface{ Scan(...any) error }) (core.DailyMemo, error) {
	var m core.DailyMemo
	var date, createdAt, updatedAt string
	if err := row.Scan(&m.ID, &date, &m.Memo, &createdAt, &updatedAt); err != nil {
		return core.DailyMemo{}, err
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.DailyMemo{}, fmt.Errorf("parse memo date %q: %w", date, err)
	}
	m.Date = d
	m.CreatedAt = parseTime(createdAt)
	m.UpdatedAt = parseTime(updatedAt)
	return m, nil
}

func (r *SQLiteRepository) GetMemoByDate(ctx context.Context, date core.Date) (core.DailyMemo, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+memoColumns+" FROM daily_memos WHERE date = ?", date.String())
	m, err := scanMemo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.DailyMemo{}, fmt.Errorf("memo for %s: %w", date, core.ErrNotFound)
	}
	if err != nil {
		return core.DailyMemo{}, fmt.Errorf("get memo: %w", err)
	}
	return m, nil
}

// UpsertMemo creates the memo row for the date if absent, otherwise
// replaces its text. The unique index on date keeps this to one row per
// date even under concurrent upserts.
func (r *SQLiteRepository) UpsertMemo(ctx context.Context, date core.Date, memo string) (core.DailyMemo, error) {
	now := formatTime(time.Now())
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_memos (date, memo, created_at, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(date) DO UPDATE SET memo = excluded.memo, updated_at = excluded.updated_at`,
		date.String(), memo, now, now)
	if err != nil {
		return core.DailyMemo{}, fmt.Errorf("upsert memo: %w", err)
	}
	return r.GetMemoByDate(ctx, date)
}
