package worker

import (
	"context"
	"errors"
	"testing"

	"studytrack/internal/amqp"
	"studytrack/internal/core"
	sheetsmem "studytrack/internal/sheets/memory"
	storagemem "studytrack/internal/storage/memory"
)

type failingWriter struct{}

func (failingWriter) AppendRecord(context.Context, core.StudyRecord) (string, error) {
	return "", errors.New("sheets unavailable")
}

func setup(t *testing.T) (*storagemem.Store, *sheetsmem.Store, *SyncWorker, core.StudyRecord) {
	t.Helper()
	ctx := context.Background()

	store := storagemem.New()
	sheet := sheetsmem.New()
	w := NewSyncWorker(store, sheet, sheet, 10)

	study, err := store.CreateStudy(ctx, "CS", "Algorithms")
	if err != nil {
		t.Fatalf("CreateStudy() error = %v", err)
	}
	record, err := store.CreateRecord(ctx, core.StudyRecord{
		StudyID:  study.ID,
		Date:     core.NewDate(2024, 3, 5),
		TimeSlot: core.SlotMorning,
		Duration: 30,
	})
	if err != nil {
		t.Fatalf("CreateRecord() error = %v", err)
	}
	return store, sheet, w, record
}

func TestHandleSyncMessage(t *testing.T) {
	store, sheet, w, record := setup(t)
	ctx := context.Background()

	if err := w.HandleSyncMessage(ctx, amqp.NewRecordSyncMessage(record.ID)); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}

	rows := sheet.Records()
	if len(rows) != 1 {
		t.Fatalf("len(sheet rows) = %d, want 1", len(rows))
	}
	if rows[0].ID != record.ID || rows[0].StudyName != "Algorithms" {
		t.Errorf("sheet row = %+v, want synced record with study name", rows[0])
	}

	pending, err := store.ListPendingSyncRecords(ctx, 10)
	if err != nil {
		t.Fatalf("ListPendingSyncRecords() error = %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending after sync = %d, want 0", len(pending))
	}
}

func TestHandleSyncMessageMissingRecordIsSkipped(t *testing.T) {
	_, sheet, w, _ := setup(t)

	// A record deleted before the message is consumed must be acked, not requeued
	if err := w.HandleSyncMessage(context.Background(), amqp.NewRecordSyncMessage(999)); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v, want nil", err)
	}
	if got := len(sheet.Records()); got != 0 {
		t.Errorf("sheet rows = %d, want 0", got)
	}
}

func TestHandleSyncMessageAppendFailureMarksError(t *testing.T) {
	store, _, _, record := setup(t)
	ctx := context.Background()

	w := NewSyncWorker(store, failingWriter{}, nil, 10)
	if err := w.HandleSyncMessage(ctx, amqp.NewRecordSyncMessage(record.ID)); err == nil {
		t.Fatal("expected error from failing writer")
	}

	// Errored records leave the pending queue until retried explicitly
	pending, err := store.ListPendingSyncRecords(ctx, 10)
	if err != nil {
		t.Fatalf("ListPendingSyncRecords() error = %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending after sync error = %d, want 0", len(pending))
	}
}

func TestHandleDeleteMessage(t *testing.T) {
	_, sheet, w, record := setup(t)
	ctx := context.Background()

	if err := w.HandleSyncMessage(ctx, amqp.NewRecordSyncMessage(record.ID)); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}
	if err := w.HandleDeleteMessage(ctx, amqp.NewRecordDeleteMessage(record.ID)); err != nil {
		t.Fatalf("HandleDeleteMessage() error = %v", err)
	}
	if got := len(sheet.Records()); got != 0 {
		t.Errorf("sheet rows after delete = %d, want 0", got)
	}
}

func TestHandleDeleteMessageWithoutDeleter(t *testing.T) {
	store, sheet, _, record := setup(t)

	w := NewSyncWorker(store, sheet, nil, 10)
	if err := w.HandleDeleteMessage(context.Background(), amqp.NewRecordDeleteMessage(record.ID)); err != nil {
		t.Fatalf("HandleDeleteMessage() error = %v, want nil when no deleter configured", err)
	}
}

func TestStartupSyncCheck(t *testing.T) {
	store, sheet, w, _ := setup(t)
	ctx := context.Background()

	study, _ := store.CreateStudy(ctx, "Lang", "Korean")
	if _, err := store.CreateRecord(ctx, core.StudyRecord{
		StudyID:  study.ID,
		Date:     core.NewDate(2024, 3, 6),
		TimeSlot: core.SlotLunch,
		Duration: 15,
	}); err != nil {
		t.Fatalf("CreateRecord() error = %v", err)
	}

	if err := w.StartupSyncCheck(ctx); err != nil {
		t.Fatalf("StartupSyncCheck() error = %v", err)
	}

	if got := len(sheet.Records()); got != 2 {
		t.Errorf("sheet rows = %d, want 2", got)
	}
	pending, _ := store.ListPendingSyncRecords(ctx, 10)
	if len(pending) != 0 {
		t.Errorf("pending after startup check = %d, want 0", len(pending))
	}
}

func TestProcessPendingRecordsEmptyQueue(t *testing.T) {
	store := storagemem.New()
	sheet := sheetsmem.New()
	w := NewSyncWorker(store, sheet, sheet, 10)

	if err := w.ProcessPendingRecords(context.Background()); err != nil {
		t.Fatalf("ProcessPendingRecords() error = %v", err)
	}
}
