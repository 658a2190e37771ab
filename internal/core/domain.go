package core

import (
	"errors"
	"strings"
	"time"
)

const (
	SlotCommuteIn  TimeSlot = "출근길"
	SlotMorning    TimeSlot = "아침"
	SlotLunch      TimeSlot = "점심"
	SlotCommuteOut TimeSlot = "퇴근길"
	SlotEvening    TimeSlot = "퇴근후"
	SlotOther      TimeSlot = "기타"
)

type (
	// TimeSlot is one of the six fixed periods of day used to bucket
	// study durations. The values are the original Korean labels and
	// double as the wire format.
	TimeSlot string

	Date struct {
		time.Time
	}

	// Study is a named, categorized thing being studied.
	Study struct {
		ID        int64     `json:"id"`
		Category  string    `json:"category"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}

	// StudyRecord is one logged study session. It references a Study by
	// id; StudyName and StudyCategory are resolved at read time by the
	// store, not owned by the record.
	StudyRecord struct {
		ID            int64     `json:"id"`
		StudyID       int64     `json:"studyId"`
		StudyName     string    `json:"studyName,omitempty"`
		StudyCategory string    `json:"studyCategory,omitempty"`
		Date          Date      `json:"date"`
		TimeSlot      TimeSlot  `json:"timeSlot"`
		Duration      int       `json:"duration"`
		CreatedAt     time.Time `json:"createdAt"`
		UpdatedAt     time.Time `json:"updatedAt"`
	}

	// RecordPatch is a partial update for a StudyRecord. A nil field
	// means "leave unchanged"; there is no way to clear a field through
	// a patch.
	RecordPatch struct {
		StudyID  *int64    `json:"studyId"`
		Date     *Date     `json:"date"`
		TimeSlot *TimeSlot `json:"timeSlot"`
		Duration *int      `json:"duration"`
	}

	// DailyMemo is a free-text note attached to exactly one calendar
	// date, independent of any specific record.
	DailyMemo struct {
		ID        int64     `json:"id"`
		Date      Date      `json:"date"`
		Memo      string    `json:"memo"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidRange = errors.New("start date is after end date")
	ErrStudyInUse   = errors.New("study is referenced by existing records")

	ErrEmptyCategory   = errors.New("empty category")
	ErrCategoryTooLong = errors.New("category too long (max 100 characters)")
	ErrEmptyName       = errors.New("empty study name")
	ErrNameTooLong     = errors.New("study name too long (max 100 characters)")
	ErrMemoTooLong     = errors.New("memo too long (max 500 characters)")
	ErrInvalidDuration = errors.New("duration must be at least 1 minute")
	ErrInvalidTimeSlot = errors.New("invalid time slot")
	ErrMissingStudyID  = errors.New("missing study id")
	ErrMissingDate     = errors.New("missing date")
)

// timeSlots lists the closed set in display order.
var timeSlots = [...]TimeSlot{
	SlotCommuteIn, SlotMorning, SlotLunch, SlotCommuteOut, SlotEvening, SlotOther,
}

// TimeSlots returns the six fixed slots in display order.
func TimeSlots() []TimeSlot {
	out := make([]TimeSlot, len(timeSlots))
	copy(out, timeSlots[:])
	return out
}

func (s TimeSlot) Valid() bool {
	for _, known := range timeSlots {
		if s == known {
			return true
		}
	}
	return false
}

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO date string (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// Day returns the day of the month.
func (d Date) Day() int { return d.Time.Day() }

// Month returns the month as an int in 1..12.
func (d Date) Month() int { return int(d.Time.Month()) }

// Year returns the year.
func (d Date) Year() int { return d.Time.Year() }

func (d Date) String() string { return d.Format(dateLayout) }

// Equal compares two dates by calendar day, ignoring time of day.
func (d Date) Equal(other Date) bool {
	return d.Year() == other.Year() && d.Month() == other.Month() && d.Day() == other.Day()
}

// After reports whether d falls on a later calendar day than other.
func (d Date) After(other Date) bool {
	if d.Year() != other.Year() {
		return d.Year() > other.Year()
	}
	if d.Month() != other.Month() {
		return d.Month() > other.Month()
	}
	return d.Day() > other.Day()
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrMissingDate
	}
	return nil
}

func (s Study) Validate() error {
	if len(strings.TrimSpace(s.Category)) == 0 {
		return ErrEmptyCategory
	}
	if len([]rune(s.Category)) > 100 {
		return ErrCategoryTooLong
	}
	if len(strings.TrimSpace(s.Name)) == 0 {
		return ErrEmptyName
	}
	if len([]rune(s.Name)) > 100 {
		return ErrNameTooLong
	}
	return nil
}

func (r StudyRecord) Validate() error {
	if r.StudyID <= 0 {
		return ErrMissingStudyID
	}
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if !r.TimeSlot.Valid() {
		return ErrInvalidTimeSlot
	}
	if r.Duration < 1 {
		return ErrInvalidDuration
	}
	return nil
}

// Validate checks only the fields present in the patch.
func (p RecordPatch) Validate() error {
	if p.StudyID != nil && *p.StudyID <= 0 {
		return ErrMissingStudyID
	}
	if p.Date != nil {
		if err := p.Date.Validate(); err != nil {
			return err
		}
	}
	if p.TimeSlot != nil && !p.TimeSlot.Valid() {
		return ErrInvalidTimeSlot
	}
	if p.Duration != nil && *p.Duration < 1 {
		return ErrInvalidDuration
	}
	return nil
}

// IsEmpty reports whether the patch carries no fields at all.
func (p RecordPatch) IsEmpty() bool {
	return p.StudyID == nil && p.Date == nil && p.TimeSlot == nil && p.Duration == nil
}

// ValidateMemoText checks the memo length cap. Empty text is allowed.
func ValidateMemoText(memo string) error {
	if len([]rune(memo)) > 500 {
		return ErrMemoTooLong
	}
	return nil
}
