package core

import (
	"sort"
	"testing"
)

func rec(study string, date Date, slot TimeSlot, minutes int) StudyRecord {
	return StudyRecord{StudyID: 1, StudyName: study, Date: date, TimeSlot: slot, Duration: minutes}
}

func TestMonthlySummariesShape(t *testing.T) {
	out := MonthlySummaries(nil, 2024)
	if len(out) != 12 {
		t.Fatalf("expected 12 entries, got %d", len(out))
	}
	for i, s := range out {
		if s.Month != i+1 {
			t.Fatalf("entry %d has month %d", i, s.Month)
		}
		if len(s.TimeSlotTotals) != 6 {
			t.Fatalf("month %d has %d slot keys", s.Month, len(s.TimeSlotTotals))
		}
		for slot, total := range s.TimeSlotTotals {
			if total != 0 {
				t.Fatalf("month %d slot %s should be zero, got %d", s.Month, slot, total)
			}
		}
		if s.TotalDuration != 0 {
			t.Fatalf("month %d total should be zero", s.Month)
		}
		if len(s.StudyNames) != 0 {
			t.Fatalf("month %d should have no study names", s.Month)
		}
	}
}

func TestMonthlySummariesAccumulation(t *testing.T) {
	records := []StudyRecord{
		rec("Algo", NewDate(2024, 3, 5), SlotMorning, 30),
		rec("Algo", NewDate(2024, 3, 12), SlotMorning, 20),
		rec("CS", NewDate(2024, 3, 12), SlotEvening, 60),
		rec("CS", NewDate(2024, 4, 1), SlotLunch, 15),
		rec("CS", NewDate(2023, 3, 1), SlotLunch, 99), // other year, ignored
	}

	out := MonthlySummaries(records, 2024)

	march := out[2]
	if march.TimeSlotTotals[SlotMorning] != 50 {
		t.Fatalf("march morning = %d", march.TimeSlotTotals[SlotMorning])
	}
	if march.TimeSlotTotals[SlotEvening] != 60 {
		t.Fatalf("march evening = %d", march.TimeSlotTotals[SlotEvening])
	}
	if march.TotalDuration != 110 {
		t.Fatalf("march total = %d", march.TotalDuration)
	}
	wantNames := []string{"Algo", "CS"}
	gotNames := append([]string(nil), march.StudyNames...)
	sort.Strings(gotNames)
	if len(gotNames) != 2 || gotNames[0] != wantNames[0] || gotNames[1] != wantNames[1] {
		t.Fatalf("march names = %v", march.StudyNames)
	}

	april := out[3]
	if april.TotalDuration != 15 || len(april.StudyNames) != 1 {
		t.Fatalf("april = %+v", april)
	}
}

func TestDailySummariesShape(t *testing.T) {
	cases := []struct {
		year, month, days int
	}{
		{2024, 3, 31},
		{2024, 2, 29}, // leap year
		{2023, 2, 28},
		{2024, 4, 30},
		{2024, 12, 31},
	}
	for _, tc := range cases {
		out := DailySummaries(nil, tc.year, tc.month, nil)
		if len(out) != tc.days {
			t.Fatalf("%d-%02d: expected %d entries, got %d", tc.year, tc.month, tc.days, len(out))
		}
		if !out[0].Date.Equal(NewDate(tc.year, tc.month, 1)) {
			t.Fatalf("%d-%02d: first entry %s", tc.year, tc.month, out[0].Date)
		}
		last := out[len(out)-1]
		if !last.Date.Equal(NewDate(tc.year, tc.month, tc.days)) {
			t.Fatalf("%d-%02d: last entry %s", tc.year, tc.month, last.Date)
		}
		for _, day := range out {
			if len(day.TimeSlotTotals) != 6 || day.TotalDuration != 0 {
				t.Fatalf("%s: zero day should carry six zero slots", day.Date)
			}
			if day.Memo != nil {
				t.Fatalf("%s: no memo lookup, memo should be nil", day.Date)
			}
		}
	}
}

func TestDailySummariesScenario(t *testing.T) {
	records := []StudyRecord{
		rec("Algo", NewDate(2024, 3, 5), SlotMorning, 30),
		rec("Algo", NewDate(2024, 3, 5), SlotLunch, 15),
	}

	out := DailySummaries(records, 2024, 3, nil)
	day := out[4] // 2024-03-05
	if !day.Date.Equal(NewDate(2024, 3, 5)) {
		t.Fatalf("entry 4 is %s", day.Date)
	}
	if day.TimeSlotTotals[SlotMorning] != 30 || day.TimeSlotTotals[SlotLunch] != 15 {
		t.Fatalf("slot totals = %v", day.TimeSlotTotals)
	}
	for _, slot := range []TimeSlot{SlotCommuteIn, SlotCommuteOut, SlotEvening, SlotOther} {
		if day.TimeSlotTotals[slot] != 0 {
			t.Fatalf("slot %s should be zero", slot)
		}
	}
	if day.TotalDuration != 45 {
		t.Fatalf("total = %d", day.TotalDuration)
	}
	if len(day.StudyNames) != 1 || day.StudyNames[0] != "Algo" {
		t.Fatalf("names = %v", day.StudyNames)
	}
}

func TestDailySummariesWeekdayAndMemo(t *testing.T) {
	memoText := "복습"
	memoFor := func(d Date) *string {
		if d.Equal(NewDate(2024, 3, 5)) {
			return &memoText
		}
		return nil
	}

	out := DailySummaries(nil, 2024, 3, memoFor)

	// 2024-03-05 is a Tuesday, 2024-03-01 a Friday.
	if out[4].DayOfWeek != "화" {
		t.Fatalf("2024-03-05 weekday = %s", out[4].DayOfWeek)
	}
	if out[0].DayOfWeek != "금" {
		t.Fatalf("2024-03-01 weekday = %s", out[0].DayOfWeek)
	}

	if out[4].Memo == nil || *out[4].Memo != memoText {
		t.Fatalf("memo not attached: %v", out[4].Memo)
	}
	if out[5].Memo != nil {
		t.Fatalf("2024-03-06 should have no memo")
	}
}

func TestDailyMonthlyConsistency(t *testing.T) {
	records := []StudyRecord{
		rec("Algo", NewDate(2024, 3, 1), SlotCommuteIn, 10),
		rec("Algo", NewDate(2024, 3, 5), SlotMorning, 30),
		rec("CS", NewDate(2024, 3, 5), SlotLunch, 15),
		rec("CS", NewDate(2024, 3, 31), SlotOther, 120),
	}

	daily := DailySummaries(records, 2024, 3, nil)
	sum := 0
	for _, day := range daily {
		sum += day.TotalDuration
	}

	monthly := MonthlySummaries(records, 2024)
	if monthly[2].TotalDuration != sum {
		t.Fatalf("daily sum %d != monthly total %d", sum, monthly[2].TotalDuration)
	}
}

func TestSummariesAreIdempotent(t *testing.T) {
	records := []StudyRecord{
		rec("Algo", NewDate(2024, 3, 5), SlotMorning, 30),
		rec("CS", NewDate(2024, 7, 1), SlotEvening, 45),
	}

	a := MonthlySummaries(records, 2024)
	b := MonthlySummaries(records, 2024)
	for i := range a {
		if a[i].TotalDuration != b[i].TotalDuration || a[i].Month != b[i].Month {
			t.Fatalf("month %d differs between runs", i+1)
		}
		for slot, total := range a[i].TimeSlotTotals {
			if b[i].TimeSlotTotals[slot] != total {
				t.Fatalf("month %d slot %s differs", i+1, slot)
			}
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{2000, 2, 29},
		{1900, 2, 28},
		{2024, 1, 31},
		{2024, 4, 30},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.want {
			t.Fatalf("DaysInMonth(%d, %d) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}
