package memory

import (
	"context"
	"testing"

	"studytrack/internal/core"
)

func testRecord(id int64) core.StudyRecord {
	return core.StudyRecord{
		ID:       id,
		StudyID:  1,
		Date:     core.NewDate(2024, 3, 5),
		TimeSlot: core.SlotMorning,
		Duration: 30,
	}
}

func TestAppendAndDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.AppendRecord(ctx, testRecord(1))
	if err != nil {
		t.Fatalf("AppendRecord() error = %v", err)
	}
	if ref != "mem:1" {
		t.Errorf("ref = %q, want %q", ref, "mem:1")
	}

	if _, err := s.AppendRecord(ctx, testRecord(2)); err != nil {
		t.Fatalf("AppendRecord() error = %v", err)
	}
	if got := len(s.Records()); got != 2 {
		t.Fatalf("len(Records()) = %d, want 2", got)
	}

	if err := s.DeleteRecord(ctx, 1); err != nil {
		t.Fatalf("DeleteRecord() error = %v", err)
	}
	records := s.Records()
	if len(records) != 1 || records[0].ID != 2 {
		t.Errorf("after delete: records = %+v, want only ID 2", records)
	}

	// Deleting a missing ID is a no-op
	if err := s.DeleteRecord(ctx, 99); err != nil {
		t.Errorf("DeleteRecord(missing) error = %v", err)
	}
}

func TestAppendReplacesSameID(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.AppendRecord(ctx, testRecord(1)); err != nil {
		t.Fatalf("AppendRecord() error = %v", err)
	}

	updated := testRecord(1)
	updated.Duration = 45
	if _, err := s.AppendRecord(ctx, updated); err != nil {
		t.Fatalf("AppendRecord() error = %v", err)
	}

	records := s.Records()
	if len(records) != 1 {
		t.Fatalf("len(Records()) = %d, want 1", len(records))
	}
	if records[0].Duration != 45 {
		t.Errorf("Duration = %d, want 45", records[0].Duration)
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	s := New()

	bad := testRecord(1)
	bad.Duration = 0
	if _, err := s.AppendRecord(context.Background(), bad); err == nil {
		t.Fatal("expected validation error")
	}
	if got := len(s.Records()); got != 0 {
		t.Errorf("invalid record was stored, len = %d", got)
	}
}
