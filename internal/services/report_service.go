package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"studytrack/internal/backend"
	"studytrack/internal/core"
)

// ReportService computes the monthly and daily aggregation views.
type ReportService struct {
	store backend.Store
}

func NewReportService(store backend.Store) *ReportService {
	return &ReportService{store: store}
}

// MonthlyReport returns one summary per calendar month of the year,
// including months with no records.
func (s *ReportService) MonthlyReport(ctx context.Context, year int) ([]core.MonthlySummary, error) {
	records, err := s.store.ListRecordsByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list records for year %d: %w", year, err)
	}
	return core.MonthlySummaries(records, year), nil
}

// DailyReport returns one summary per calendar day of the month, with the
// memo for each date attached when present.
func (s *ReportService) DailyReport(ctx context.Context, year, month int) ([]core.DailySummary, error) {
	records, err := s.store.ListRecordsByYearMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("list records for %d-%02d: %w", year, month, err)
	}

	// Memo lookup is best effort: a missing memo leaves the field null
	memoFor := func(date core.Date) *string {
		m, err := s.store.GetMemoByDate(ctx, date)
		if err != nil {
			if !errors.Is(err, core.ErrNotFound) {
				slog.WarnContext(ctx, "Failed to load memo for daily report",
					"date", date.String(), "error", err)
			}
			return nil
		}
		return &m.Memo
	}

	return core.DailySummaries(records, year, month, memoFor), nil
}
