package calendar_test

import (
	"testing"
	"time"

	"github.com/meenmo/riskcore/calendar"
)

func TestAdjust_ModifiedFollowing(t *testing.T) {
	t.Parallel()

	// Saturday rolls forward to Monday.
	sat := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	got := calendar.Adjust(calendar.USD, sat)
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Adjust mismatch: got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}

	// Month-end Saturday rolls backward to Friday instead of crossing the month.
	eomSat := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	got = calendar.Adjust(calendar.USD, eomSat)
	want = time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Adjust month-end mismatch: got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestAddBusinessDays(t *testing.T) {
	t.Parallel()

	// Friday + 2 business days = Tuesday.
	fri := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	got := calendar.AddBusinessDays(calendar.USD, fri, 2)
	want := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("AddBusinessDays(+2) mismatch: got %s", got.Format("2006-01-02"))
	}

	// Monday - 1 business day = Friday.
	mon := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	got = calendar.AddBusinessDays(calendar.USD, mon, -1)
	if !got.Equal(fri) {
		t.Fatalf("AddBusinessDays(-1) mismatch: got %s", got.Format("2006-01-02"))
	}
}

func TestSpotDate(t *testing.T) {
	t.Parallel()

	trade := time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC) // Thursday
	got := calendar.SpotDate(calendar.USD, trade, 2)
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) // Monday
	if !got.Equal(want) {
		t.Fatalf("SpotDate mismatch: got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestIsBusinessDay_TargetHolidays(t *testing.T) {
	t.Parallel()

	goodFriday := time.Date(2025, 4, 18, 0, 0, 0, 0, time.UTC)
	if calendar.IsBusinessDay(calendar.TARGET, goodFriday) {
		t.Errorf("Good Friday %s should close TARGET", goodFriday.Format("2006-01-02"))
	}
	easterMonday := time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC)
	if calendar.IsBusinessDay(calendar.TARGET, easterMonday) {
		t.Errorf("Easter Monday %s should close TARGET", easterMonday.Format("2006-01-02"))
	}
	// USD carries no holiday data, so the same weekday is open there.
	if !calendar.IsBusinessDay(calendar.USD, easterMonday) {
		t.Errorf("weekend-only calendar should be open on %s", easterMonday.Format("2006-01-02"))
	}
}

func TestSpotDate_OverTargetEaster(t *testing.T) {
	t.Parallel()

	// Wed Apr 16 + 2 business days skips Good Friday, the weekend and
	// Easter Monday, landing on Tue Apr 22.
	trade := time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC)
	got := calendar.SpotDate(calendar.TARGET, trade, 2)
	want := time.Date(2025, 4, 22, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("SpotDate mismatch: got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestAdjust_KrwChuseokWeek(t *testing.T) {
	t.Parallel()

	// Fri Oct 3 2025 through Thu Oct 9 are KRX closing days; the first
	// business day after is Fri Oct 10.
	foundationDay := time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)
	got := calendar.Adjust(calendar.KRW, foundationDay)
	want := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Adjust mismatch: got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
	if calendar.IsBusinessDay(calendar.KRW, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Error("KRX year-end closing day should not be a business day")
	}
}
