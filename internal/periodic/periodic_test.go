package periodic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultFormats = []string{"YYYY-MM-DD", "gggg-[W]ww", "YYYY-MM", "YYYY-[Q]Q", "YYYY"}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassifyDefaultFormats(t *testing.T) {
	c := NewClassifier(defaultFormats, time.UTC)

	tests := []struct {
		name string
		want Classified
		ok   bool
	}{
		{"2025-01-15", Classified{Date: date(2025, 1, 15), Kind: KindDay}, true},
		{"2025-W03", Classified{Date: date(2025, 1, 13), Kind: KindWeek}, true},
		{"2025-07", Classified{Date: date(2025, 7, 1), Kind: KindMonth}, true},
		{"2025-Q3", Classified{Date: date(2025, 7, 1), Kind: KindQuarter}, true},
		{"2025", Classified{Date: date(2025, 1, 1), Kind: KindYear}, true},
		{"meeting notes", Classified{}, false},
		{"2025-13-01", Classified{}, false},
		{"2025-02-30", Classified{}, false},
		{"2025-01-15 extra", Classified{}, false},
		{"x2025-01-15", Classified{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := c.Classify(tc.name)
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.True(t, tc.want.Date.Equal(got.Date), "got %s want %s", got.Date, tc.want.Date)
				assert.Equal(t, tc.want.Kind, got.Kind)
			}
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// A month pattern listed first must claim names it strictly parses,
	// even when a later day pattern would also never see them.
	c := NewClassifier([]string{"YYYY-MM", "YYYY-MM-DD"}, time.UTC)

	got, ok := c.Classify("2025-07")
	require.True(t, ok)
	assert.Equal(t, KindMonth, got.Kind)

	// The month pattern strict-fails on the trailing "-15", so the day
	// pattern gets its turn.
	got, ok = c.Classify("2025-07-15")
	require.True(t, ok)
	assert.Equal(t, KindDay, got.Kind)
	assert.True(t, got.Date.Equal(date(2025, 7, 15)))
}

func TestWeekNormalizesToMonday(t *testing.T) {
	c := NewClassifier([]string{"gggg-[W]ww"}, time.UTC)

	// Week 1 of 2025 starts on Monday 2024-12-30.
	got, ok := c.Classify("2025-W01")
	require.True(t, ok)
	assert.True(t, got.Date.Equal(date(2024, 12, 30)))
	assert.Equal(t, time.Monday, got.Date.Weekday())

	// 2020 is a long ISO year; week 53 exists.
	got, ok = c.Classify("2020-W53")
	require.True(t, ok)
	assert.True(t, got.Date.Equal(date(2020, 12, 28)))

	// 2025 is not; week 53 must strict-fail.
	_, ok = c.Classify("2025-W53")
	assert.False(t, ok)

	_, ok = c.Classify("2025-W00")
	assert.False(t, ok)
}

func TestPeriodStartNormalization(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		format string
		name   string
		want   time.Time
	}{
		{"YYYY-[Q]Q", "2024-Q4", date(2024, 10, 1)},
		{"YYYY-MM", "2024-02", date(2024, 2, 1)},
		{"YYYY", "2024", date(2024, 1, 1)},
		{"gggg-[W]ww", "2024-W10", date(2024, 3, 4)},
	}
	for _, tc := range tests {
		p, err := Compile(tc.format)
		require.NoError(t, err)
		got, ok := p.Match(tc.name, loc)
		require.True(t, ok, "%s should match %s", tc.name, tc.format)
		assert.True(t, got.Date.Equal(tc.want), "%s: got %s want %s", tc.name, got.Date, tc.want)
	}
}

func TestKindInference(t *testing.T) {
	tests := []struct {
		format string
		want   Kind
	}{
		{"YYYY-MM-DD", KindDay},
		{"DD.MM.YYYY", KindDay},
		{"M-D-YYYY", KindDay},
		{"gggg-[W]ww", KindWeek},
		{"YYYY [W]ww", KindWeek},
		{"YYYY-[Q]Q", KindQuarter},
		{"YYYY-MM", KindMonth},
		{"YYYY", KindYear},
		{"YY-MM-DD", KindDay},
	}
	for _, tc := range tests {
		p, err := Compile(tc.format)
		require.NoError(t, err, tc.format)
		assert.Equal(t, tc.want, p.Kind(), "format %s", tc.format)
	}
}

func TestVariableWidthTokens(t *testing.T) {
	p, err := Compile("M-D-YYYY")
	require.NoError(t, err)

	got, ok := p.Match("7-4-2025", time.UTC)
	require.True(t, ok)
	assert.True(t, got.Date.Equal(date(2025, 7, 4)))

	got, ok = p.Match("12-31-2025", time.UTC)
	require.True(t, ok)
	assert.True(t, got.Date.Equal(date(2025, 12, 31)))

	// MM demands exactly two digits
	p2, err := Compile("MM-DD-YYYY")
	require.NoError(t, err)
	_, ok = p2.Match("7-04-2025", time.UTC)
	assert.False(t, ok)
}

func TestTwoDigitYearExpansion(t *testing.T) {
	p, err := Compile("YY-MM-DD")
	require.NoError(t, err)

	got, ok := p.Match("25-06-01", time.UTC)
	require.True(t, ok)
	assert.Equal(t, 2025, got.Date.Year())

	got, ok = p.Match("99-06-01", time.UTC)
	require.True(t, ok)
	assert.Equal(t, 1999, got.Date.Year())
}

func TestCompileRejectsMalformed(t *testing.T) {
	_, err := Compile("YYYY-[W")
	assert.Error(t, err)

	_, err = Compile("[journal]")
	assert.Error(t, err, "no date tokens")

	// CompileList drops bad entries but keeps the rest, in order
	ps := CompileList([]string{"", "YYYY-[W", "YYYY-MM-DD", "[x]"})
	require.Len(t, ps, 1)
	assert.Equal(t, "YYYY-MM-DD", ps[0].Raw())
}

func TestLiteralEscapes(t *testing.T) {
	p, err := Compile("[day-]YYYY-MM-DD")
	require.NoError(t, err)

	got, ok := p.Match("day-2025-03-09", time.UTC)
	require.True(t, ok)
	assert.True(t, got.Date.Equal(date(2025, 3, 9)))

	// The bracketed text is literal: a date in its place must not match.
	_, ok = p.Match("2025-2025-03-09", time.UTC)
	assert.False(t, ok)
}
