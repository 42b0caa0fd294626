package schedule

import (
	"context"
	"strings"
	"time"

	"notebeat/internal/config"
)

// NextAt computes the next reminder instant: the configured time of day on
// the next day that is a configured workday and not a listed holiday.
func NextAt(now time.Time, cfg config.Config) time.Time {
	loc := cfg.Location()
	now = now.In(loc)

	hour, min := parseClock(cfg.Reminder.Time, loc)

	workdays := make(map[string]bool, len(cfg.Reminder.Workdays))
	for _, d := range cfg.Reminder.Workdays {
		d = strings.TrimSpace(d)
		if len(d) >= 3 {
			workdays[strings.Title(strings.ToLower(d[:3]))] = true
		}
	}
	holidays := make(map[string]bool, len(cfg.Reminder.Holidays))
	for _, h := range cfg.Reminder.Holidays {
		holidays[strings.TrimSpace(h)] = true
	}

	cand := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, loc)
	if !now.Before(cand) {
		cand = cand.Add(24 * time.Hour)
	}
	for {
		if workdays[cand.Weekday().String()[:3]] && !holidays[cand.Format("2006-01-02")] {
			return cand
		}
		cand = cand.Add(24 * time.Hour)
	}
}

func parseClock(s string, loc *time.Location) (hour, min int) {
	hour, min = 20, 0
	if len(s) >= 4 {
		if t, err := time.ParseInLocation("15:04", s, loc); err == nil {
			hour, min = t.Hour(), t.Minute()
		}
	}
	return hour, min
}

// RunConfigured invokes f at each scheduled reminder time until ctx is
// canceled. The callback decides whether a notification is actually due
// (it checks for today's note itself).
func RunConfigured(ctx context.Context, cfg config.Config, f func()) {
	next := NextAt(time.Now(), cfg)
	t := time.NewTimer(time.Until(next))
	for {
		select {
		case <-ctx.Done():
			if !t.Stop() {
				select {
				case <-t.C:
				default:
				}
			}
			return
		case <-t.C:
			f()
			next = NextAt(time.Now(), cfg)
			t.Reset(time.Until(next))
		}
	}
}
