package services

import (
	"context"
	"fmt"
	"log/slog"

	"studytrack/internal/backend"
	"studytrack/internal/core"
)

// RecordPublisher publishes sync messages for study records. Satisfied by
// the AMQP client; a nil publisher disables export entirely.
type RecordPublisher interface {
	PublishRecordSync(ctx context.Context, id int64) error
	PublishRecordDelete(ctx context.Context, id int64) error
}

// RecordService orchestrates record operations across storage and AMQP.
type RecordService struct {
	store     backend.Store
	publisher RecordPublisher
}

func NewRecordService(store backend.Store, publisher RecordPublisher) *RecordService {
	return &RecordService{
		store:     store,
		publisher: publisher,
	}
}

func (s *RecordService) ListRecords(ctx context.Context) ([]core.StudyRecord, error) {
	return s.store.ListRecords(ctx)
}

func (s *RecordService) ListRecordsByDate(ctx context.Context, date core.Date) ([]core.StudyRecord, error) {
	return s.store.ListRecordsByDate(ctx, date)
}

func (s *RecordService) ListRecordsByDateRange(ctx context.Context, start, end core.Date) ([]core.StudyRecord, error) {
	return s.store.ListRecordsByDateRange(ctx, start, end)
}

func (s *RecordService) ListRecordsByYear(ctx context.Context, year int) ([]core.StudyRecord, error) {
	return s.store.ListRecordsByYear(ctx, year)
}

func (s *RecordService) GetRecord(ctx context.Context, id int64) (core.StudyRecord, error) {
	return s.store.GetRecord(ctx, id)
}

// CreateRecord saves a record locally and publishes a sync message.
func (s *RecordService) CreateRecord(ctx context.Context, rec core.StudyRecord) (core.StudyRecord, error) {
	if err := rec.Validate(); err != nil {
		return core.StudyRecord{}, err
	}

	created, err := s.store.CreateRecord(ctx, rec)
	if err != nil {
		return core.StudyRecord{}, fmt.Errorf("save record: %w", err)
	}

	// Publish async sync message (non-blocking)
	if err := s.publishSyncMessage(ctx, created.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", created.ID, "error", err)
		// Don't fail the request - record is saved locally
	}

	return created, nil
}

// UpdateRecord applies a partial update and re-publishes a sync message.
func (s *RecordService) UpdateRecord(ctx context.Context, id int64, patch core.RecordPatch) (core.StudyRecord, error) {
	if err := patch.Validate(); err != nil {
		return core.StudyRecord{}, err
	}

	updated, err := s.store.UpdateRecord(ctx, id, patch)
	if err != nil {
		return core.StudyRecord{}, err
	}

	if err := s.publishSyncMessage(ctx, updated.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", updated.ID, "error", err)
	}

	return updated, nil
}

// DeleteRecord removes a record locally and publishes a delete message.
func (s *RecordService) DeleteRecord(ctx context.Context, id int64) error {
	if err := s.store.DeleteRecord(ctx, id); err != nil {
		return err
	}

	if err := s.publishDeleteMessage(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete message",
			"id", id, "error", err)
		// Don't fail the request - record is deleted locally
	}

	return nil
}

func (s *RecordService) publishSyncMessage(ctx context.Context, id int64) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}
	return s.publisher.PublishRecordSync(ctx, id)
}

func (s *RecordService) publishDeleteMessage(ctx context.Context, id int64) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping delete message")
		return nil
	}
	return s.publisher.PublishRecordDelete(ctx, id)
}
