package services

import (
	"context"
	"errors"
	"testing"

	"studytrack/internal/core"
	"studytrack/internal/storage/memory"
)

type fakePublisher struct {
	synced  []int64
	deleted []int64
	fail    bool
}

func (p *fakePublisher) PublishRecordSync(_ context.Context, id int64) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.synced = append(p.synced, id)
	return nil
}

func (p *fakePublisher) PublishRecordDelete(_ context.Context, id int64) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.deleted = append(p.deleted, id)
	return nil
}

func TestStudyServiceValidation(t *testing.T) {
	svc := NewStudyService(memory.New())
	ctx := context.Background()

	tests := []struct {
		name     string
		category string
		study    string
		wantErr  error
	}{
		{"empty category", "", "Algorithms", core.ErrEmptyCategory},
		{"blank name", "CS", "   ", core.ErrEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateStudy(ctx, tt.category, tt.study)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateStudy() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStudyServiceDeleteGuard(t *testing.T) {
	store := memory.New()
	svc := NewStudyService(store)
	ctx := context.Background()

	study, err := svc.CreateStudy(ctx, "CS", "Algorithms")
	if err != nil {
		t.Fatalf("CreateStudy() error = %v", err)
	}

	if _, err := store.CreateRecord(ctx, core.StudyRecord{
		StudyID:  study.ID,
		Date:     core.NewDate(2024, 3, 5),
		TimeSlot: core.SlotMorning,
		Duration: 30,
	}); err != nil {
		t.Fatalf("CreateRecord() error = %v", err)
	}

	err = svc.DeleteStudy(ctx, study.ID)
	if !errors.Is(err, core.ErrStudyInUse) {
		t.Fatalf("DeleteStudy() error = %v, want ErrStudyInUse", err)
	}

	// Guard releases once the referencing record is gone
	records, _ := store.ListRecords(ctx)
	if err := store.DeleteRecord(ctx, records[0].ID); err != nil {
		t.Fatalf("DeleteRecord() error = %v", err)
	}
	if err := svc.DeleteStudy(ctx, study.ID); err != nil {
		t.Fatalf("DeleteStudy() after record removal error = %v", err)
	}
	if _, err := svc.GetStudy(ctx, study.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("GetStudy() after delete error = %v, want ErrNotFound", err)
	}
}

func TestRecordServicePublishesSync(t *testing.T) {
	store := memory.New()
	pub := &fakePublisher{}
	svc := NewRecordService(store, pub)
	ctx := context.Background()

	study, _ := store.CreateStudy(ctx, "CS", "Algorithms")

	created, err := svc.CreateRecord(ctx, core.StudyRecord{
		StudyID:  study.ID,
		Date:     core.NewDate(2024, 3, 5),
		TimeSlot: core.SlotMorning,
		Duration: 30,
	})
	if err != nil {
		t.Fatalf("CreateRecord() error = %v", err)
	}
	if len(pub.synced) != 1 || pub.synced[0] != created.ID {
		t.Errorf("synced = %v, want [%d]", pub.synced, created.ID)
	}

	duration := 45
	if _, err := svc.UpdateRecord(ctx, created.ID, core.RecordPatch{Duration: &duration}); err != nil {
		t.Fatalf("UpdateRecord() error = %v", err)
	}
	if len(pub.synced) != 2 {
		t.Errorf("synced after update = %v, want two entries", pub.synced)
	}

	if err := svc.DeleteRecord(ctx, created.ID); err != nil {
		t.Fatalf("DeleteRecord() error = %v", err)
	}
	if len(pub.deleted) != 1 || pub.deleted[0] != created.ID {
		t.Errorf("deleted = %v, want [%d]", pub.deleted, created.ID)
	}
}

func TestRecordServiceSurvivesPublishFailure(t *testing.T) {
	store := memory.New()
	svc := NewRecordService(store, &fakePublisher{fail: true})
	ctx := context.Background()

	study, _ := store.CreateStudy(ctx, "CS", "Algorithms")

	created, err := svc.CreateRecord(ctx, core.StudyRecord{
		StudyID:  study.ID,
		Date:     core.NewDate(2024, 3, 5),
		TimeSlot: core.SlotMorning,
		Duration: 30,
	})
	if err != nil {
		t.Fatalf("CreateRecord() error = %v, want nil despite broker failure", err)
	}
	if _, err := svc.GetRecord(ctx, created.ID); err != nil {
		t.Errorf("GetRecord() error = %v", err)
	}
}

func TestRecordServiceNilPublisher(t *testing.T) {
	store := memory.New()
	svc := NewRecordService(store, nil)
	ctx := context.Background()

	study, _ := store.CreateStudy(ctx, "CS", "Algorithms")
	if _, err := svc.CreateRecord(ctx, core.StudyRecord{
		StudyID:  study.ID,
		Date:     core.NewDate(2024, 3, 5),
		TimeSlot: core.SlotLunch,
		Duration: 15,
	}); err != nil {
		t.Fatalf("CreateRecord() error = %v", err)
	}
}

func TestMemoServiceValidation(t *testing.T) {
	svc := NewMemoService(memory.New())
	ctx := context.Background()
	date := core.NewDate(2024, 3, 5)

	long := make([]rune, 501)
	for i := range long {
		long[i] = '가'
	}
	if _, err := svc.SaveMemo(ctx, date, string(long)); !errors.Is(err, core.ErrMemoTooLong) {
		t.Errorf("SaveMemo(long) error = %v, want ErrMemoTooLong", err)
	}

	saved, err := svc.SaveMemo(ctx, date, "집중 잘 됨")
	if err != nil {
		t.Fatalf("SaveMemo() error = %v", err)
	}

	got, err := svc.GetMemo(ctx, date)
	if err != nil {
		t.Fatalf("GetMemo() error = %v", err)
	}
	if got.ID != saved.ID || got.Memo != "집중 잘 됨" {
		t.Errorf("GetMemo() = %+v, want saved memo", got)
	}
}

func TestReportServiceMonthly(t *testing.T) {
	store := memory.New()
	svc := NewReportService(store)
	ctx := context.Background()

	study, _ := store.CreateStudy(ctx, "CS", "Algo")
	mustCreate := func(date core.Date, slot core.TimeSlot, duration int) {
		t.Helper()
		if _, err := store.CreateRecord(ctx, core.StudyRecord{
			StudyID: study.ID, Date: date, TimeSlot: slot, Duration: duration,
		}); err != nil {
			t.Fatalf("CreateRecord() error = %v", err)
		}
	}
	mustCreate(core.NewDate(2024, 3, 5), core.SlotMorning, 30)
	mustCreate(core.NewDate(2024, 3, 5), core.SlotLunch, 15)
	mustCreate(core.NewDate(2024, 7, 1), core.SlotEvening, 60)

	summaries, err := svc.MonthlyReport(ctx, 2024)
	if err != nil {
		t.Fatalf("MonthlyReport() error = %v", err)
	}
	if len(summaries) != 12 {
		t.Fatalf("len(summaries) = %d, want 12", len(summaries))
	}
	march := summaries[2]
	if march.TotalDuration != 45 {
		t.Errorf("March total = %d, want 45", march.TotalDuration)
	}
	if march.TimeSlotTotals[core.SlotMorning] != 30 || march.TimeSlotTotals[core.SlotLunch] != 15 {
		t.Errorf("March slot totals = %v", march.TimeSlotTotals)
	}
	if summaries[0].TotalDuration != 0 {
		t.Errorf("January total = %d, want 0", summaries[0].TotalDuration)
	}
}

func TestReportServiceDailyAttachesMemos(t *testing.T) {
	store := memory.New()
	svc := NewReportService(store)
	ctx := context.Background()

	study, _ := store.CreateStudy(ctx, "CS", "Algo")
	if _, err := store.CreateRecord(ctx, core.StudyRecord{
		StudyID: study.ID, Date: core.NewDate(2024, 3, 5), TimeSlot: core.SlotMorning, Duration: 30,
	}); err != nil {
		t.Fatalf("CreateRecord() error = %v", err)
	}
	if _, err := store.UpsertMemo(ctx, core.NewDate(2024, 3, 5), "좋은 하루"); err != nil {
		t.Fatalf("UpsertMemo() error = %v", err)
	}

	days, err := svc.DailyReport(ctx, 2024, 3)
	if err != nil {
		t.Fatalf("DailyReport() error = %v", err)
	}
	if len(days) != 31 {
		t.Fatalf("len(days) = %d, want 31", len(days))
	}

	day5 := days[4]
	if day5.TotalDuration != 30 {
		t.Errorf("day 5 total = %d, want 30", day5.TotalDuration)
	}
	if day5.Memo == nil || *day5.Memo != "좋은 하루" {
		t.Errorf("day 5 memo = %v, want '좋은 하루'", day5.Memo)
	}
	if days[0].Memo != nil {
		t.Errorf("day 1 memo = %v, want nil", days[0].Memo)
	}
}
