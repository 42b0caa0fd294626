package stats

import (
	"time"

	"notebeat/internal/periodic"
)

const dayKeyLayout = "2006-01-02"

// Summary is the dashboard's statistics block, derived from a set of
// classified notes. Streak and LastDay consider day-kind notes only.
type Summary struct {
	Total     int
	PerKind   map[periodic.Kind]int
	LastDay   time.Time
	Streak    int
	SinceLast string
}

// Summarize computes note counts, the most recent day-note date, the
// current streak and a localized time-since string. A vault with no
// day-kind notes yields a zero LastDay and streak 0 no matter what other
// kinds are present.
func Summarize(notes []periodic.Classified, now time.Time, locale string) Summary {
	s := Summary{PerKind: make(map[periodic.Kind]int)}

	var days []time.Time
	for _, n := range notes {
		s.Total++
		s.PerKind[n.Kind]++
		if n.Kind == periodic.KindDay {
			days = append(days, n.Date)
		}
	}
	if len(days) == 0 {
		return s
	}

	s.LastDay = LastDate(days)
	s.Streak = Streak(days, now)
	s.SinceLast = RelSince(s.LastDay, now, locale)
	return s
}

// LastDate returns the most recent of the given dates.
func LastDate(days []time.Time) time.Time {
	var last time.Time
	for _, d := range days {
		if d.After(last) {
			last = d
		}
	}
	return last
}

// Streak counts consecutive calendar days with at least one day-note,
// ending today or yesterday. Multiple notes on the same day count once.
// A gap before today and yesterday means the streak is over: 0.
func Streak(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}
	present := make(map[string]struct{}, len(days))
	for _, d := range days {
		present[d.Format(dayKeyLayout)] = struct{}{}
	}

	cur := now
	if _, ok := present[cur.Format(dayKeyLayout)]; !ok {
		cur = now.AddDate(0, 0, -1)
		if _, ok := present[cur.Format(dayKeyLayout)]; !ok {
			return 0
		}
	}

	streak := 1
	for {
		prev := cur.AddDate(0, 0, -1)
		if _, ok := present[prev.Format(dayKeyLayout)]; !ok {
			return streak
		}
		streak++
		cur = prev
	}
}
