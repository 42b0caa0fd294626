package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseFlexibleDate attempts to parse various date formats and natural language
func ParseFlexibleDate(input string, loc *time.Location) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}

	now := time.Now().In(loc)

	// Handle natural language patterns
	switch input {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
	case "yesterday":
		yesterday := now.AddDate(0, 0, -1)
		return time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, loc), nil
	case "now":
		return now, nil
	}

	if strings.HasPrefix(input, "last ") {
		period := strings.TrimPrefix(input, "last ")
		switch period {
		case "week":
			return now.AddDate(0, 0, -7), nil
		case "month":
			return now.AddDate(0, -1, 0), nil
		case "year":
			return now.AddDate(-1, 0, 0), nil
		case "day":
			return now.AddDate(0, 0, -1), nil
		}
	}

	if strings.HasPrefix(input, "this ") {
		period := strings.TrimPrefix(input, "this ")
		switch period {
		case "week":
			weekday := int(now.Weekday())
			if weekday == 0 { // Sunday
				weekday = 7
			}
			start := now.AddDate(0, 0, -(weekday - 1))
			return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc), nil
		case "month":
			return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), nil
		case "year":
			return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc), nil
		}
	}

	// Handle "N days/weeks/months/years ago" patterns
	re := regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks|month|months|year|years)(\s+ago)?$`)
	if matches := re.FindStringSubmatch(input); matches != nil {
		num, _ := strconv.Atoi(matches[1])
		switch matches[2] {
		case "day", "days":
			return now.AddDate(0, 0, -num), nil
		case "week", "weeks":
			return now.AddDate(0, 0, -7*num), nil
		case "month", "months":
			return now.AddDate(0, -num, 0), nil
		case "year", "years":
			return now.AddDate(-num, 0, 0), nil
		}
	}

	// Try various date formats
	formats := []string{
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
		"02/01/2006", // European format
		"Jan 2, 2006",
		"2 Jan 2006",
		"January 2, 2006",
		"2 January 2006",
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, input, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", input)
}

// ParseLookback parses compact lookback spans like "1w", "2m", "1y" into
// the date that far in the past, at midnight.
func ParseLookback(input string, now time.Time, loc *time.Location) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	re := regexp.MustCompile(`^(\d+)([dwmqy])$`)
	matches := re.FindStringSubmatch(input)
	if matches == nil {
		return time.Time{}, fmt.Errorf("invalid lookback format: %s", input)
	}

	num, _ := strconv.Atoi(matches[1])
	now = now.In(loc)

	var t time.Time
	switch matches[2] {
	case "d":
		t = now.AddDate(0, 0, -num)
	case "w":
		t = now.AddDate(0, 0, -7*num)
	case "m":
		t = now.AddDate(0, -num, 0)
	case "q":
		t = now.AddDate(0, -3*num, 0)
	case "y":
		t = now.AddDate(-num, 0, 0)
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// FormatLookback renders a lookback span for display ("1w" -> "1 week ago").
func FormatLookback(input string) string {
	re := regexp.MustCompile(`^(\d+)([dwmqy])$`)
	matches := re.FindStringSubmatch(strings.TrimSpace(strings.ToLower(input)))
	if matches == nil {
		return input
	}

	num, _ := strconv.Atoi(matches[1])
	units := map[string]string{"d": "day", "w": "week", "m": "month", "q": "quarter", "y": "year"}
	unit := units[matches[2]]
	if num != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s ago", num, unit)
}
