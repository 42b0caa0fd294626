package stats

import (
	"testing"
	"time"

	"notebeat/internal/periodic"
)

var now = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func day(offset int) time.Time {
	return now.AddDate(0, 0, offset).Truncate(24 * time.Hour)
}

func TestStreakConsecutiveDays(t *testing.T) {
	days := []time.Time{day(0), day(-1), day(-2)}
	if got := Streak(days, now); got != 3 {
		t.Errorf("expected streak 3, got %d", got)
	}
}

func TestStreakGapBreaks(t *testing.T) {
	// today and D-2 present, D-1 missing
	days := []time.Time{day(0), day(-2)}
	if got := Streak(days, now); got != 1 {
		t.Errorf("expected streak 1, got %d", got)
	}
}

func TestStreakEndsYesterday(t *testing.T) {
	days := []time.Time{day(-1), day(-2), day(-3)}
	if got := Streak(days, now); got != 3 {
		t.Errorf("expected streak 3 ending yesterday, got %d", got)
	}
}

func TestStreakStale(t *testing.T) {
	// Most recent note more than one day ago: streak over.
	days := []time.Time{day(-2), day(-3), day(-4)}
	if got := Streak(days, now); got != 0 {
		t.Errorf("expected streak 0, got %d", got)
	}
}

func TestStreakEmpty(t *testing.T) {
	if got := Streak(nil, now); got != 0 {
		t.Errorf("expected streak 0 for no notes, got %d", got)
	}
}

func TestStreakDeduplicatesSameDay(t *testing.T) {
	// Two notes resolving to the same calendar day count once; the walk
	// must not double-count and must still cross to the previous day.
	days := []time.Time{day(0), day(0), day(-1)}
	if got := Streak(days, now); got != 2 {
		t.Errorf("expected streak 2, got %d", got)
	}
}

func TestSummarizeOnlyDayNotesCount(t *testing.T) {
	notes := []periodic.Classified{
		{Date: day(0), Kind: periodic.KindWeek},
		{Date: day(0), Kind: periodic.KindMonth},
		{Date: day(0), Kind: periodic.KindYear},
	}
	s := Summarize(notes, now, "en")
	if s.Streak != 0 {
		t.Errorf("expected streak 0 with no day notes, got %d", s.Streak)
	}
	if !s.LastDay.IsZero() {
		t.Errorf("expected zero LastDay, got %s", s.LastDay)
	}
	if s.SinceLast != "" {
		t.Errorf("expected empty since-string, got %q", s.SinceLast)
	}
	if s.Total != 3 {
		t.Errorf("expected total 3, got %d", s.Total)
	}
}

func TestSummarizeCounts(t *testing.T) {
	notes := []periodic.Classified{
		{Date: day(0), Kind: periodic.KindDay},
		{Date: day(-1), Kind: periodic.KindDay},
		{Date: day(-7), Kind: periodic.KindWeek},
	}
	s := Summarize(notes, now, "en")
	if s.Streak != 2 {
		t.Errorf("expected streak 2, got %d", s.Streak)
	}
	if s.PerKind[periodic.KindDay] != 2 || s.PerKind[periodic.KindWeek] != 1 {
		t.Errorf("unexpected kind counts: %v", s.PerKind)
	}
	if !s.LastDay.Equal(day(0)) {
		t.Errorf("expected LastDay %s, got %s", day(0), s.LastDay)
	}
	if s.SinceLast == "" {
		t.Error("expected a since-string")
	}
}

func TestLastDate(t *testing.T) {
	days := []time.Time{day(-3), day(-1), day(-2)}
	if got := LastDate(days); !got.Equal(day(-1)) {
		t.Errorf("expected %s, got %s", day(-1), got)
	}
}
