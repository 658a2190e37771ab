package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"studytrack/internal/amqp"
	"studytrack/internal/core"
	"studytrack/internal/sheets"
)

// RecordStore is the slice of the storage layer the worker needs.
type RecordStore interface {
	GetRecord(ctx context.Context, id int64) (core.StudyRecord, error)
	ListPendingSyncRecords(ctx context.Context, limit int) ([]core.StudyRecord, error)
	MarkRecordSynced(ctx context.Context, id int64) error
	MarkRecordSyncError(ctx context.Context, id int64) error
}

// SyncWorker mirrors study records from the database into Google Sheets.
type SyncWorker struct {
	storage   RecordStore
	sheets    sheets.RecordWriter
	deleter   sheets.RecordDeleter
	batchSize int
}

func NewSyncWorker(storage RecordStore, writer sheets.RecordWriter, deleter sheets.RecordDeleter, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		sheets:    writer,
		deleter:   deleter,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single record sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RecordMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID)

	record, err := w.storage.GetRecord(ctx, msg.ID)
	if err != nil {
		// The record may have been deleted between publish and consume.
		// That is not a failure worth requeueing.
		if errors.Is(err, core.ErrNotFound) {
			slog.WarnContext(ctx, "Record no longer exists, skipping sync", "id", msg.ID)
			return nil
		}
		return fmt.Errorf("get record from storage: %w", err)
	}

	if err := w.syncRecordToSheets(ctx, record); err != nil {
		return fmt.Errorf("sync record to sheets: %w", err)
	}

	return nil
}

// HandleDeleteMessage processes a single record delete message from AMQP.
func (w *SyncWorker) HandleDeleteMessage(ctx context.Context, msg *amqp.RecordMessage) error {
	slog.InfoContext(ctx, "Processing delete message", "id", msg.ID)

	if w.deleter == nil {
		slog.WarnContext(ctx, "No record deleter configured, skipping Google Sheets deletion",
			"id", msg.ID)
		return nil
	}

	if err := w.deleter.DeleteRecord(ctx, msg.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to delete record from Google Sheets",
			"id", msg.ID,
			"error", err)
		return fmt.Errorf("delete record from Google Sheets: %w", err)
	}

	slog.InfoContext(ctx, "Successfully deleted record from Google Sheets", "id", msg.ID)
	return nil
}

// ProcessPendingRecords processes any records that haven't been synced yet.
// This is a backup mechanism in case AMQP messages are lost.
func (w *SyncWorker) ProcessPendingRecords(ctx context.Context) error {
	pending, err := w.storage.ListPendingSyncRecords(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending records: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending records", "count", len(pending))

	for _, record := range pending {
		if err := w.syncRecordToSheets(ctx, record); err != nil {
			slog.ErrorContext(ctx, "Failed to sync record", "id", record.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck verifies and syncs any pending records at worker startup.
// This is useful to recover from missed AMQP messages or worker downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	// Get a larger batch for startup check
	pending, err := w.storage.ListPendingSyncRecords(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending records for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending records found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending records on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, record := range pending {
		if err := w.syncRecordToSheets(ctx, record); err != nil {
			slog.ErrorContext(ctx, "Failed to sync record during startup",
				"id", record.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

func (w *SyncWorker) syncRecordToSheets(ctx context.Context, record core.StudyRecord) error {
	ref, err := w.sheets.AppendRecord(ctx, record)
	if err != nil {
		if markErr := w.storage.MarkRecordSyncError(ctx, record.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", record.ID, "error", markErr)
		}
		return fmt.Errorf("append to sheets: %w", err)
	}

	if err := w.storage.MarkRecordSynced(ctx, record.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", record.ID, "error", err)
		// The sync itself worked, so don't fail the message
	}

	slog.InfoContext(ctx, "Successfully synced record",
		"id", record.ID,
		"sheets_ref", ref,
		"study", record.StudyName,
		"date", record.Date.String())

	return nil
}
