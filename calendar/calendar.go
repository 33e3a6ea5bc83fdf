package calendar

import "time"

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	TARGET CalendarID = "TARGET"
	JPN    CalendarID = "JPN"
	USD    CalendarID = "USD"
	KRW    CalendarID = "KRW"
	// SatSun is a weekend-only calendar with no holiday set, used where
	// template arithmetic needs adjustment but no market calendar applies.
	SatSun CalendarID = "SAT_SUN"
)

// targetHolidayList holds the TARGET closing days 2024-2027: New Year's
// Day, Good Friday, Easter Monday, Labour Day, Christmas Day and Boxing
// Day. Dates falling on weekends are listed anyway; they are redundant
// against the weekend check.
var targetHolidayList = []string{
	"2024-01-01", "2024-03-29", "2024-04-01", "2024-05-01", "2024-12-25", "2024-12-26",
	"2025-01-01", "2025-04-18", "2025-04-21", "2025-05-01", "2025-12-25", "2025-12-26",
	"2026-01-01", "2026-04-03", "2026-04-06", "2026-05-01", "2026-12-25", "2026-12-26",
	"2027-01-01", "2027-03-26", "2027-03-29", "2027-05-01", "2027-12-25", "2027-12-26",
}

// krwHolidayList holds the KRX closing days for 2025, including the
// substitute and temporary holidays and the year-end closing day.
var krwHolidayList = []string{
	"2025-01-01",
	"2025-01-27", "2025-01-28", "2025-01-29", "2025-01-30",
	"2025-03-03",
	"2025-05-01", "2025-05-05", "2025-05-06",
	"2025-06-03", "2025-06-06",
	"2025-08-15",
	"2025-10-03", "2025-10-06", "2025-10-07", "2025-10-08", "2025-10-09",
	"2025-12-25", "2025-12-31",
}

// JPN and USD carry no loaded holiday data and adjust on weekends only.
var holidays = map[CalendarID]map[string]struct{}{}

func init() {
	load := func(cal CalendarID, list []string) {
		set := make(map[string]struct{}, len(list))
		for _, d := range list {
			set[d] = struct{}{}
		}
		holidays[cal] = set
	}
	load(TARGET, targetHolidayList)
	load(KRW, krwHolidayList)
}

func isHoliday(cal CalendarID, t time.Time) bool {
	set, ok := holidays[cal]
	if !ok {
		return false
	}
	_, ok = set[t.Format("2006-01-02")]
	return ok
}

// IsBusinessDay checks weekends and holiday sets.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust applies Modified Following.
func Adjust(cal CalendarID, t time.Time) time.Time {
	origMonth := t.Month()
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	if t.Month() != origMonth {
		t = t.AddDate(0, 0, -1)
		for !IsBusinessDay(cal, t) {
			t = t.AddDate(0, 0, -1)
		}
	}
	return t
}

// AdjustFollowing applies a simple Following convention (no month preservation).
func AdjustFollowing(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// NextOrSame returns t itself when it is a business day, otherwise the next one.
func NextOrSame(cal CalendarID, t time.Time) time.Time {
	return AdjustFollowing(cal, t)
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal CalendarID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}

// SpotDate returns trade date plus the spot lag in business days.
// The standard lag for most currency pairs is T+2.
func SpotDate(cal CalendarID, tradeDate time.Time, spotLagDays int) time.Time {
	return AddBusinessDays(cal, tradeDate, spotLagDays)
}

// LastBusinessDayOfMonth returns the last business day of the month containing t.
func LastBusinessDayOfMonth(cal CalendarID, t time.Time) time.Time {
	// Move to first day of next month
	nextMonth := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	// Go back one day and find the prior business day
	return AddBusinessDays(cal, nextMonth, -1)
}

// IsEndOfMonth checks if t is the last business day of its month.
func IsEndOfMonth(cal CalendarID, t time.Time) bool {
	return t.Equal(LastBusinessDayOfMonth(cal, t))
}
