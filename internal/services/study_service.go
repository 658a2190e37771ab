package services

import (
	"context"
	"fmt"
	"log/slog"

	"studytrack/internal/backend"
	"studytrack/internal/core"
)

// StudyService manages the study catalog.
type StudyService struct {
	store backend.Store
}

func NewStudyService(store backend.Store) *StudyService {
	return &StudyService{store: store}
}

func (s *StudyService) ListStudies(ctx context.Context) ([]core.Study, error) {
	return s.store.ListStudies(ctx)
}

func (s *StudyService) GetStudy(ctx context.Context, id int64) (core.Study, error) {
	return s.store.GetStudy(ctx, id)
}

func (s *StudyService) CreateStudy(ctx context.Context, category, name string) (core.Study, error) {
	if err := (core.Study{Category: category, Name: name}).Validate(); err != nil {
		return core.Study{}, err
	}
	return s.store.CreateStudy(ctx, category, name)
}

func (s *StudyService) UpdateStudy(ctx context.Context, id int64, category, name string) (core.Study, error) {
	if err := (core.Study{Category: category, Name: name}).Validate(); err != nil {
		return core.Study{}, err
	}
	return s.store.UpdateStudy(ctx, id, category, name)
}

// DeleteStudy removes a study. Studies still referenced by records are
// protected and the delete fails with ErrStudyInUse.
func (s *StudyService) DeleteStudy(ctx context.Context, id int64) error {
	count, err := s.store.CountRecordsByStudy(ctx, id)
	if err != nil {
		return fmt.Errorf("count records for study %d: %w", id, err)
	}
	if count > 0 {
		return fmt.Errorf("study %d has %d records: %w", id, count, core.ErrStudyInUse)
	}

	if err := s.store.DeleteStudy(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Deleted study", "id", id)
	return nil
}
