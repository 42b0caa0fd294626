package schedule

import (
	"testing"
	"time"

	"notebeat/internal/config"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Reminder.Time = "20:00"
	cfg.Reminder.Workdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}
	cfg.Reminder.Timezone = "UTC"
	return cfg
}

func TestNextAtSameDay(t *testing.T) {
	cfg := testConfig()
	// Monday morning: reminder due Monday evening.
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	next := NextAt(now, cfg)
	want := time.Date(2025, 6, 16, 20, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("got %s, want %s", next, want)
	}
}

func TestNextAtRollsPastTime(t *testing.T) {
	cfg := testConfig()
	// Monday after the reminder time: next slot is Tuesday.
	now := time.Date(2025, 6, 16, 21, 0, 0, 0, time.UTC)
	next := NextAt(now, cfg)
	want := time.Date(2025, 6, 17, 20, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("got %s, want %s", next, want)
	}
}

func TestNextAtSkipsWeekend(t *testing.T) {
	cfg := testConfig()
	// Friday evening: Saturday/Sunday are not workdays.
	now := time.Date(2025, 6, 20, 21, 0, 0, 0, time.UTC)
	next := NextAt(now, cfg)
	want := time.Date(2025, 6, 23, 20, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("got %s, want %s", next, want)
	}
}

func TestNextAtSkipsHoliday(t *testing.T) {
	cfg := testConfig()
	cfg.Reminder.Holidays = []string{"2025-06-16"}
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	next := NextAt(now, cfg)
	want := time.Date(2025, 6, 17, 20, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("got %s, want %s", next, want)
	}
}
