package stats

import (
	"testing"
	"time"
)

func TestRelSinceEnglish(t *testing.T) {
	ref := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		last time.Time
		want string
	}{
		{ref.Add(-30 * time.Minute), "1 hour ago"},
		{ref.Add(-1 * time.Hour), "1 hour ago"},
		{ref.Add(-5 * time.Hour), "5 hours ago"},
		{ref.Add(-24 * time.Hour), "1 day ago"},
		{ref.Add(-72 * time.Hour), "3 days ago"},
	}
	for _, tc := range tests {
		if got := RelSince(tc.last, ref, "en"); got != tc.want {
			t.Errorf("RelSince(%s) = %q, want %q", tc.last, got, tc.want)
		}
	}
}

func TestRelSinceGerman(t *testing.T) {
	ref := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	if got := RelSince(ref.Add(-1*time.Hour), ref, "de"); got != "vor 1 Stunde" {
		t.Errorf("got %q", got)
	}
	if got := RelSince(ref.Add(-48*time.Hour), ref, "de"); got != "vor 2 Tagen" {
		t.Errorf("got %q", got)
	}
}

func TestRelSinceRussianPlurals(t *testing.T) {
	ref := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		daysAgo int
		want    string
	}{
		{1, "1 день назад"},
		{3, "3 дня назад"},
		{5, "5 дней назад"},
		{11, "11 дней назад"},
		{21, "21 день назад"},
		{22, "22 дня назад"},
	}
	for _, tc := range tests {
		last := ref.Add(-time.Duration(tc.daysAgo) * 24 * time.Hour)
		if got := RelSince(last, ref, "ru"); got != tc.want {
			t.Errorf("%d days: got %q, want %q", tc.daysAgo, got, tc.want)
		}
	}
}

func TestRelSinceFallbacks(t *testing.T) {
	ref := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	// Unknown locale falls back to English; region suffixes are stripped.
	if got := RelSince(ref.Add(-2*time.Hour), ref, "xx"); got != "2 hours ago" {
		t.Errorf("got %q", got)
	}
	if got := RelSince(ref.Add(-2*time.Hour), ref, "de-AT"); got != "vor 2 Stunden" {
		t.Errorf("got %q", got)
	}
	if got := RelSince(time.Time{}, ref, "en"); got != "" {
		t.Errorf("zero time should yield empty string, got %q", got)
	}
}
