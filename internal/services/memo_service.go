package services

import (
	"context"

	"studytrack/internal/backend"
	"studytrack/internal/core"
)

// MemoService manages the one-memo-per-date store.
type MemoService struct {
	store backend.Store
}

func NewMemoService(store backend.Store) *MemoService {
	return &MemoService{store: store}
}

func (s *MemoService) GetMemo(ctx context.Context, date core.Date) (core.DailyMemo, error) {
	return s.store.GetMemoByDate(ctx, date)
}

// SaveMemo creates or replaces the memo for the given date.
func (s *MemoService) SaveMemo(ctx context.Context, date core.Date, memo string) (core.DailyMemo, error) {
	if err := date.Validate(); err != nil {
		return core.DailyMemo{}, err
	}
	if err := core.ValidateMemoText(memo); err != nil {
		return core.DailyMemo{}, err
	}
	return s.store.UpsertMemo(ctx, date, memo)
}
