package stats

import (
	"fmt"
	"strings"
	"time"
)

// localeRules formats "N unit(s) ago" with the pluralization of one
// language. hour and day receive the count and return the inflected unit.
type localeRules struct {
	format string // e.g. "%s ago", "vor %s"
	hour   func(n int) string
	day    func(n int) string
}

var locales = map[string]localeRules{
	"en": {
		format: "%s ago",
		hour:   func(n int) string { return englishPlural(n, "hour") },
		day:    func(n int) string { return englishPlural(n, "day") },
	},
	"de": {
		format: "vor %s",
		hour: func(n int) string {
			if n == 1 {
				return "1 Stunde"
			}
			return fmt.Sprintf("%d Stunden", n)
		},
		day: func(n int) string {
			if n == 1 {
				return "1 Tag"
			}
			return fmt.Sprintf("%d Tagen", n)
		},
	},
	"es": {
		format: "hace %s",
		hour: func(n int) string {
			if n == 1 {
				return "1 hora"
			}
			return fmt.Sprintf("%d horas", n)
		},
		day: func(n int) string {
			if n == 1 {
				return "1 día"
			}
			return fmt.Sprintf("%d días", n)
		},
	},
	"ru": {
		format: "%s назад",
		hour:   func(n int) string { return russianPlural(n, "час", "часа", "часов") },
		day:    func(n int) string { return russianPlural(n, "день", "дня", "дней") },
	},
}

func englishPlural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// russianPlural picks among the three Russian plural forms: one for
// n%10==1 (except 11), few for n%10 in 2..4 (except 12..14), many otherwise.
func russianPlural(n int, one, few, many string) string {
	mod10, mod100 := n%10, n%100
	switch {
	case mod10 == 1 && mod100 != 11:
		return fmt.Sprintf("%d %s", n, one)
	case mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14):
		return fmt.Sprintf("%d %s", n, few)
	default:
		return fmt.Sprintf("%d %s", n, many)
	}
}

// RelSince renders how long ago last was, relative to now, in the given
// locale. Under 24 hours it speaks in hours (minimum one), otherwise in
// whole days. Unknown locales fall back to English; a zero last yields "".
func RelSince(last, now time.Time, locale string) string {
	if last.IsZero() {
		return ""
	}
	rules, ok := locales[normalizeLocale(locale)]
	if !ok {
		rules = locales["en"]
	}

	d := now.Sub(last)
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	var span string
	if hours < 24 {
		if hours < 1 {
			hours = 1
		}
		span = rules.hour(hours)
	} else {
		span = rules.day(hours / 24)
	}
	return fmt.Sprintf(rules.format, span)
}

// Locales lists the supported locale codes.
func Locales() []string {
	out := make([]string, 0, len(locales))
	for k := range locales {
		out = append(out, k)
	}
	return out
}

func normalizeLocale(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	// "de-DE" and friends collapse to the base language
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	return s
}
