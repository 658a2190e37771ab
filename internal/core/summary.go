package core

import "time"

type (
	// MonthlySummary aggregates one calendar month of study records.
	MonthlySummary struct {
		Month          int              `json:"month"`
		TimeSlotTotals map[TimeSlot]int `json:"timeSlotTotals"`
		TotalDuration  int              `json:"totalDuration"`
		StudyNames     []string         `json:"studyNames"`
	}

	// DailySummary aggregates one calendar day of study records, plus
	// the weekday label and the memo for that date when one exists.
	DailySummary struct {
		Date           Date             `json:"date"`
		DayOfWeek      string           `json:"dayOfWeek"`
		TimeSlotTotals map[TimeSlot]int `json:"timeSlotTotals"`
		TotalDuration  int              `json:"totalDuration"`
		StudyNames     []string         `json:"studyNames"`
		Memo           *string          `json:"memo"`
	}

	// MemoLookup resolves the memo text for a date. A nil result means
	// no memo exists for that date.
	MemoLookup func(Date) *string
)

// Short Korean weekday labels, indexed by time.Weekday.
var weekdayLabels = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// WeekdayLabel returns the short Korean label for the date's weekday.
func WeekdayLabel(d Date) string {
	return weekdayLabels[int(d.Weekday())]
}

// DaysInMonth returns the number of days in the given month, honoring
// leap years.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthlySummaries computes one summary per month 1..12 for the given
// year from an already-fetched record set. Months without records still
// appear, with every slot total at zero. The records slice is filtered
// in memory; no storage access happens here.
func MonthlySummaries(records []StudyRecord, year int) []MonthlySummary {
	out := make([]MonthlySummary, 0, 12)
	for month := 1; month <= 12; month++ {
		totals := zeroSlotTotals()
		total := 0
		names := map[string]struct{}{}
		for _, r := range records {
			if r.Date.Year() != year || r.Date.Month() != month {
				continue
			}
			totals[r.TimeSlot] += r.Duration
			total += r.Duration
			names[r.StudyName] = struct{}{}
		}
		out = append(out, MonthlySummary{
			Month:          month,
			TimeSlotTotals: totals,
			TotalDuration:  total,
			StudyNames:     nameSet(names),
		})
	}
	return out
}

// DailySummaries computes one summary per calendar day of the given
// month, in ascending date order. memoFor may be nil when no memo store
// is available.
func DailySummaries(records []StudyRecord, year, month int, memoFor MemoLookup) []DailySummary {
	days := DaysInMonth(year, month)
	out := make([]DailySummary, 0, days)
	for day := 1; day <= days; day++ {
		date := NewDate(year, month, day)
		totals := zeroSlotTotals()
		total := 0
		names := map[string]struct{}{}
		for _, r := range records {
			if !r.Date.Equal(date) {
				continue
			}
			totals[r.TimeSlot] += r.Duration
			total += r.Duration
			names[r.StudyName] = struct{}{}
		}
		var memo *string
		if memoFor != nil {
			memo = memoFor(date)
		}
		out = append(out, DailySummary{
			Date:           date,
			DayOfWeek:      WeekdayLabel(date),
			TimeSlotTotals: totals,
			TotalDuration:  total,
			StudyNames:     nameSet(names),
			Memo:           memo,
		})
	}
	return out
}

// zeroSlotTotals seeds a slot map with every fixed slot at zero so
// summaries always carry the full set.
func zeroSlotTotals() map[TimeSlot]int {
	totals := make(map[TimeSlot]int, len(timeSlots))
	for _, slot := range timeSlots {
		totals[slot] = 0
	}
	return totals
}

func nameSet(names map[string]struct{}) []string {
	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	return out
}
