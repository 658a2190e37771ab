package core

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2024, 3, 5), true},
		{NewDate(2024, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 3, 5)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-03-05"` {
		t.Fatalf("unexpected JSON: %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip mismatch: %s != %s", back, d)
	}
}

func TestTimeSlotValid(t *testing.T) {
	for _, slot := range TimeSlots() {
		if !slot.Valid() {
			t.Fatalf("slot %s should be valid", slot)
		}
	}
	if TimeSlot("새벽").Valid() {
		t.Fatalf("unknown slot should be invalid")
	}
	if TimeSlot("").Valid() {
		t.Fatalf("empty slot should be invalid")
	}
}

func TestStudyValidate(t *testing.T) {
	good := Study{Category: "프로그래밍", Name: "Algo"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	long := strings.Repeat("가", 101)
	bads := []Study{
		{Category: "", Name: "Algo"},
		{Category: "   ", Name: "Algo"},
		{Category: "Cat", Name: ""},
		{Category: long, Name: "Algo"},
		{Category: "Cat", Name: long},
	}
	for i, s := range bads {
		if err := s.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestStudyRecordValidate(t *testing.T) {
	good := StudyRecord{StudyID: 1, Date: NewDate(2024, 3, 5), TimeSlot: SlotMorning, Duration: 30}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []StudyRecord{
		{StudyID: 0, Date: NewDate(2024, 3, 5), TimeSlot: SlotMorning, Duration: 30},
		{StudyID: 1, Date: Date{}, TimeSlot: SlotMorning, Duration: 30},
		{StudyID: 1, Date: NewDate(2024, 3, 5), TimeSlot: "oops", Duration: 30},
		{StudyID: 1, Date: NewDate(2024, 3, 5), TimeSlot: SlotMorning, Duration: 0},
		{StudyID: 1, Date: NewDate(2024, 3, 5), TimeSlot: SlotMorning, Duration: -5},
	}
	for i, r := range bads {
		if err := r.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestRecordPatchValidate(t *testing.T) {
	if err := (RecordPatch{}).Validate(); err != nil {
		t.Fatalf("empty patch should validate, got %v", err)
	}
	if !(RecordPatch{}).IsEmpty() {
		t.Fatalf("empty patch should report IsEmpty")
	}

	dur := 45
	if err := (RecordPatch{Duration: &dur}).Validate(); err != nil {
		t.Fatalf("duration-only patch should validate, got %v", err)
	}

	zero := 0
	if err := (RecordPatch{Duration: &zero}).Validate(); err == nil {
		t.Fatalf("expected error for zero duration")
	}
	badSlot := TimeSlot("brunch")
	if err := (RecordPatch{TimeSlot: &badSlot}).Validate(); err == nil {
		t.Fatalf("expected error for unknown slot")
	}
	var badID int64
	if err := (RecordPatch{StudyID: &badID}).Validate(); err == nil {
		t.Fatalf("expected error for non-positive study id")
	}
}

func TestRecordPatchJSONOmittedFields(t *testing.T) {
	var p RecordPatch
	if err := json.Unmarshal([]byte(`{"duration": 45}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Duration == nil || *p.Duration != 45 {
		t.Fatalf("duration not decoded: %+v", p)
	}
	if p.StudyID != nil || p.Date != nil || p.TimeSlot != nil {
		t.Fatalf("omitted fields must stay nil: %+v", p)
	}
}

func TestValidateMemoText(t *testing.T) {
	if err := ValidateMemoText(""); err != nil {
		t.Fatalf("empty memo is allowed, got %v", err)
	}
	if err := ValidateMemoText(strings.Repeat("메", 500)); err != nil {
		t.Fatalf("500 chars is allowed, got %v", err)
	}
	if err := ValidateMemoText(strings.Repeat("메", 501)); err == nil {
		t.Fatalf("expected error for 501 chars")
	}
}
