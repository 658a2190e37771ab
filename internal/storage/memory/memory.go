// Package memory provides an in-memory Store implementation with the
// same contract as the SQLite repository, including referential checks
// and memo uniqueness. It backs the "memory" data backend and the test
// suites.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"studytrack/internal/core"
)

type Store struct {
	mu sync.Mutex

	studies map[int64]core.Study
	records map[int64]core.StudyRecord
	memos   map[string]core.DailyMemo // keyed by ISO date

	nextStudyID  int64
	nextRecordID int64
	nextMemoID   int64

	pending map[int64]bool // record ids awaiting sheet export
}

func New() *Store {
	return &Store{
		studies: make(map[int64]core.Study),
		records: make(map[int64]core.StudyRecord),
		memos:   make(map[string]core.DailyMemo),
		pending: make(map[int64]bool),
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) Ping(_ context.Context) error { return nil }

// ---- studies ----

func (s *Store) ListStudies(_ context.Context) ([]core.Study, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Study, 0, len(s.studies))
	for _, st := range s.studies {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetStudy(_ context.Context, id int64) (core.Study, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.studies[id]
	if !ok {
		return core.Study{}, fmt.Errorf("study %d: %w", id, core.ErrNotFound)
	}
	return st, nil
}

func (s *Store) CreateStudy(_ context.Context, category, name string) (core.Study, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextStudyID++
	now := time.Now().UTC()
	st := core.Study{
		ID:        s.nextStudyID,
		Category:  category,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.studies[st.ID] = st
	return st, nil
}

func (s *Store) UpdateStudy(_ context.Context, id int64, category, name string) (core.Study, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.studies[id]
	if !ok {
		return core.Study{}, fmt.Errorf("study %d: %w", id, core.ErrNotFound)
	}
	st.Category = category
	st.Name = name
	st.UpdatedAt = time.Now().UTC()
	s.studies[id] = st
	return st, nil
}

func (s *Store) DeleteStudy(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.studies[id]; !ok {
		return fmt.Errorf("study %d: %w", id, core.ErrNotFound)
	}
	delete(s.studies, id)
	return nil
}

func (s *Store) CountRecordsByStudy(_ context.Context, studyID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.records {
		if r.StudyID == studyID {
			n++
		}
	}
	return n, nil
}

// ---- study records ----

// resolve fills the study name and category from the catalog; reads
// join at access time, so a renamed study is reflected immediately.
func (s *Store) resolve(r core.StudyRecord) core.StudyRecord {
	if st, ok := s.studies[r.StudyID]; ok {
		r.StudyName = st.Name
		r.StudyCategory = st.Category
	}
	return r
}

func (s *Store) listRecords(match func(core.StudyRecord) bool) []core.StudyRecord {
	out := make([]core.StudyRecord, 0, len(s.records))
	for _, r := range s.records {
		if match == nil || match(r) {
			out = append(out, s.resolve(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[j].Date.After(out[i].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) ListRecords(_ context.Context) ([]core.StudyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listRecords(nil), nil
}

func (s *Store) ListRecordsByDate(_ context.Context, date core.Date) ([]core.StudyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listRecords(func(r core.StudyRecord) bool { return r.Date.Equal(date) }), nil
}

func (s *Store) ListRecordsByDateRange(_ context.Context, start, end core.Date) ([]core.StudyRecord, error) {
	if start.After(end) {
		return nil, fmt.Errorf("range %s..%s: %w", start, end, core.ErrInvalidRange)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listRecords(func(r core.StudyRecord) bool {
		return !start.After(r.Date) && !r.Date.After(end)
	}), nil
}

func (s *Store) ListRecordsByYear(_ context.Context, year int) ([]core.StudyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listRecords(func(r core.StudyRecord) bool { return r.Date.Year() == year }), nil
}

func (s *Store) ListRecordsByYearMonth(_ context.Context, year, month int) ([]core.StudyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listRecords(func(r core.StudyRecord) bool {
		return r.Date.Year() == year && r.Date.Month() == month
	}), nil
}

func (s *Store) GetRecord(_ context.Context, id int64) (core.StudyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return core.StudyRecord{}, fmt.Errorf("record %d: %w", id, core.ErrNotFound)
	}
	return s.resolve(r), nil
}

func (s *Store) CreateRecord(_ context.Context, rec core.StudyRecord) (core.StudyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.studies[rec.StudyID]; !ok {
		return core.StudyRecord{}, fmt.Errorf("study %d: %w", rec.StudyID, core.ErrNotFound)
	}
	s.nextRecordID++
	now := time.Now().UTC()
	rec.ID = s.nextRecordID
	rec.CreatedAt = now
	rec.UpdatedAt = now
	s.records[rec.ID] = rec
	s.pending[rec.ID] = true
	return s.resolve(rec), nil
}

func (s *Store) UpdateRecord(_ context.Context, id int64, patch core.RecordPatch) (core.StudyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return core.StudyRecord{}, fmt.Errorf("record %d: %w", id, core.ErrNotFound)
	}

	if patch.StudyID != nil && *patch.StudyID != r.StudyID {
		if _, ok := s.studies[*patch.StudyID]; !ok {
			return core.StudyRecord{}, fmt.Errorf("study %d: %w", *patch.StudyID, core.ErrNotFound)
		}
		r.StudyID = *patch.StudyID
	}
	if patch.Date != nil {
		r.Date = *patch.Date
	}
	if patch.TimeSlot != nil {
		r.TimeSlot = *patch.TimeSlot
	}
	if patch.Duration != nil {
		r.Duration = *patch.Duration
	}
	r.UpdatedAt = time.Now().UTC()
	s.records[id] = r
	s.pending[id] = true
	return s.resolve(r), nil
}

func (s *Store) DeleteRecord(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("record %d: %w", id, core.ErrNotFound)
	}
	delete(s.records, id)
	delete(s.pending, id)
	return nil
}

func (s *Store) ListPendingSyncRecords(_ context.Context, limit int) ([]core.StudyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]core.StudyRecord, 0, limit)
	for _, id := range ids {
		if len(out) >= limit {
			break
		}
		if r, ok := s.records[id]; ok {
			out = append(out, s.resolve(r))
		}
	}
	return out, nil
}

func (s *Store) MarkRecordSynced(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
	return nil
}

func (s *Store) MarkRecordSyncError(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
	return nil
}

// ---- daily memos ----

func (s *Store) GetMemoByDate(_ context.Context, date core.Date) (core.DailyMemo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.memos[date.String()]
	if !ok {
		return core.DailyMemo{}, fmt.Errorf("memo for %s: %w", date, core.ErrNotFound)
	}
	return m, nil
}

func (s *Store) UpsertMemo(_ context.Context, date core.Date, memo string) (core.DailyMemo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	key := date.String()
	if existing, ok := s.memos[key]; ok {
		existing.Memo = memo
		existing.UpdatedAt = now
		s.memos[key] = existing
		return existing, nil
	}
	s.nextMemoID++
	m := core.DailyMemo{
		ID:        s.nextMemoID,
		Date:      date,
		Memo:      memo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.memos[key] = m
	return m, nil
}
