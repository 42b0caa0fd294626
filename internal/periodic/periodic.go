package periodic

import (
	"fmt"
	"strings"
	"time"
)

// Kind classifies a note by the period its name encodes.
type Kind int

const (
	KindDay Kind = iota
	KindWeek
	KindMonth
	KindQuarter
	KindYear
)

func (k Kind) String() string {
	switch k {
	case KindDay:
		return "day"
	case KindWeek:
		return "week"
	case KindMonth:
		return "month"
	case KindQuarter:
		return "quarter"
	case KindYear:
		return "year"
	default:
		return "unknown"
	}
}

// KindFromString is the inverse of Kind.String, used when reading the index back.
func KindFromString(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day":
		return KindDay, true
	case "week":
		return KindWeek, true
	case "month":
		return KindMonth, true
	case "quarter":
		return KindQuarter, true
	case "year":
		return KindYear, true
	}
	return KindDay, false
}

// Classified is the result of matching a note name against a format pattern:
// the canonical start date of the period plus the inferred kind.
type Classified struct {
	Date time.Time
	Kind Kind
}

type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokYear4             // YYYY
	tokYear2             // YY
	tokMonth2            // MM
	tokMonth             // M
	tokDay2              // DD
	tokDay               // D
	tokWeekYear          // gggg (ISO week-year)
	tokWeek2             // ww
	tokWeek              // w
	tokQuarter           // Q
)

type token struct {
	kind tokenKind
	lit  string // only for tokLiteral
}

// Pattern is a compiled date-format template. Tokens follow the moment.js
// conventions used by periodic-note file names: YYYY, YY, MM, M, DD, D,
// gggg, ww, w, Q, with [] escaping literal text.
type Pattern struct {
	raw    string
	tokens []token
	kind   Kind
}

func (p Pattern) Raw() string { return p.raw }
func (p Pattern) Kind() Kind  { return p.kind }

// Compile parses a format string into a Pattern. An unterminated literal
// bracket or a pattern with no date tokens at all is an error; callers that
// take user input should use CompileList, which skips bad entries.
func Compile(raw string) (Pattern, error) {
	var toks []token
	s := raw
	for len(s) > 0 {
		switch {
		case s[0] == '[':
			end := strings.IndexByte(s, ']')
			if end < 0 {
				return Pattern{}, fmt.Errorf("unterminated literal in format %q", raw)
			}
			if end > 1 {
				toks = append(toks, token{kind: tokLiteral, lit: s[1:end]})
			}
			s = s[end+1:]
		case strings.HasPrefix(s, "YYYY"):
			toks = append(toks, token{kind: tokYear4})
			s = s[4:]
		case strings.HasPrefix(s, "YY"):
			toks = append(toks, token{kind: tokYear2})
			s = s[2:]
		case strings.HasPrefix(s, "gggg"):
			toks = append(toks, token{kind: tokWeekYear})
			s = s[4:]
		case strings.HasPrefix(s, "MM"):
			toks = append(toks, token{kind: tokMonth2})
			s = s[2:]
		case s[0] == 'M':
			toks = append(toks, token{kind: tokMonth})
			s = s[1:]
		case strings.HasPrefix(s, "DD"):
			toks = append(toks, token{kind: tokDay2})
			s = s[2:]
		case s[0] == 'D':
			toks = append(toks, token{kind: tokDay})
			s = s[1:]
		case strings.HasPrefix(s, "ww"):
			toks = append(toks, token{kind: tokWeek2})
			s = s[2:]
		case s[0] == 'w':
			toks = append(toks, token{kind: tokWeek})
			s = s[1:]
		case s[0] == 'Q':
			toks = append(toks, token{kind: tokQuarter})
			s = s[1:]
		default:
			// Coalesce consecutive literal runes
			if n := len(toks); n > 0 && toks[n-1].kind == tokLiteral {
				toks[n-1].lit += s[:1]
			} else {
				toks = append(toks, token{kind: tokLiteral, lit: s[:1]})
			}
			s = s[1:]
		}
	}

	p := Pattern{raw: raw, tokens: toks}
	p.kind = inferKind(toks)
	if !p.hasDateTokens() {
		return Pattern{}, fmt.Errorf("format %q contains no date tokens", raw)
	}
	return p, nil
}

// CompileList compiles each format, dropping entries that fail to compile.
// Order is preserved: classification is first-match-wins in list order.
func CompileList(raws []string) []Pattern {
	out := make([]Pattern, 0, len(raws))
	for _, raw := range raws {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		p, err := Compile(raw)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (p Pattern) hasDateTokens() bool {
	for _, t := range p.tokens {
		if t.kind != tokLiteral {
			return true
		}
	}
	return false
}

// inferKind guesses the periodicity from which tokens appear. Week and
// quarter markers dominate; a day token makes it a day pattern; a month
// token without a day token is a month pattern; a bare year is a year
// pattern. A custom pattern that reuses these letters for something else
// will be misclassified; that matches the upstream behavior.
func inferKind(toks []token) Kind {
	var hasWeek, hasQuarter, hasDay, hasMonth, hasYear bool
	for _, t := range toks {
		switch t.kind {
		case tokWeek2, tokWeek, tokWeekYear:
			hasWeek = true
		case tokQuarter:
			hasQuarter = true
		case tokDay2, tokDay:
			hasDay = true
		case tokMonth2, tokMonth:
			hasMonth = true
		case tokYear4, tokYear2:
			hasYear = true
		}
	}
	switch {
	case hasWeek:
		return KindWeek
	case hasQuarter:
		return KindQuarter
	case hasDay:
		return KindDay
	case hasMonth:
		return KindMonth
	case hasYear:
		return KindYear
	}
	return KindDay
}

// fields collects the numeric values read out of a name during a parse.
type fields struct {
	year     int
	haveYear bool
	weekYear int
	haveWY   bool
	month    int
	haveMon  bool
	day      int
	haveDay  bool
	week     int
	haveWeek bool
	quarter  int
	haveQ    bool
}

// Match attempts a strict parse of name against the pattern. The whole name
// must be consumed and every field must resolve to a real calendar value;
// on success the returned date is normalized to the start of the period.
func (p Pattern) Match(name string, loc *time.Location) (Classified, bool) {
	f, ok := p.scan(name)
	if !ok {
		return Classified{}, false
	}
	d, ok := f.resolve(p.kind, loc)
	if !ok {
		return Classified{}, false
	}
	return Classified{Date: d, Kind: p.kind}, true
}

// scan consumes name token by token. Fixed-width tokens demand their exact
// digit count; single-letter tokens accept one or two digits.
func (p Pattern) scan(name string) (fields, bool) {
	var f fields
	s := name
	for _, t := range p.tokens {
		switch t.kind {
		case tokLiteral:
			if !strings.HasPrefix(s, t.lit) {
				return f, false
			}
			s = s[len(t.lit):]
		case tokYear4:
			v, rest, ok := takeDigits(s, 4, 4)
			if !ok {
				return f, false
			}
			f.year, f.haveYear, s = v, true, rest
		case tokYear2:
			v, rest, ok := takeDigits(s, 2, 2)
			if !ok {
				return f, false
			}
			f.year, f.haveYear, s = expandYear(v), true, rest
		case tokWeekYear:
			v, rest, ok := takeDigits(s, 4, 4)
			if !ok {
				return f, false
			}
			f.weekYear, f.haveWY, s = v, true, rest
		case tokMonth2:
			v, rest, ok := takeDigits(s, 2, 2)
			if !ok {
				return f, false
			}
			f.month, f.haveMon, s = v, true, rest
		case tokMonth:
			v, rest, ok := takeDigits(s, 1, 2)
			if !ok {
				return f, false
			}
			f.month, f.haveMon, s = v, true, rest
		case tokDay2:
			v, rest, ok := takeDigits(s, 2, 2)
			if !ok {
				return f, false
			}
			f.day, f.haveDay, s = v, true, rest
		case tokDay:
			v, rest, ok := takeDigits(s, 1, 2)
			if !ok {
				return f, false
			}
			f.day, f.haveDay, s = v, true, rest
		case tokWeek2:
			v, rest, ok := takeDigits(s, 2, 2)
			if !ok {
				return f, false
			}
			f.week, f.haveWeek, s = v, true, rest
		case tokWeek:
			v, rest, ok := takeDigits(s, 1, 2)
			if !ok {
				return f, false
			}
			f.week, f.haveWeek, s = v, true, rest
		case tokQuarter:
			v, rest, ok := takeDigits(s, 1, 1)
			if !ok {
				return f, false
			}
			f.quarter, f.haveQ, s = v, true, rest
		}
	}
	// Strict: trailing input rejects the match
	return f, s == ""
}

// resolve turns scanned fields into the canonical period-start date.
func (f fields) resolve(kind Kind, loc *time.Location) (time.Time, bool) {
	switch kind {
	case KindWeek:
		year := f.weekYear
		if !f.haveWY {
			if !f.haveYear {
				return time.Time{}, false
			}
			year = f.year
		}
		if !f.haveWeek || f.week < 1 || f.week > isoWeeksIn(year) {
			return time.Time{}, false
		}
		return isoWeekStart(year, f.week, loc), true
	case KindQuarter:
		if !f.haveYear || !f.haveQ || f.quarter < 1 || f.quarter > 4 {
			return time.Time{}, false
		}
		return time.Date(f.year, time.Month((f.quarter-1)*3+1), 1, 0, 0, 0, 0, loc), true
	case KindMonth:
		if !f.haveYear || !f.haveMon || f.month < 1 || f.month > 12 {
			return time.Time{}, false
		}
		return time.Date(f.year, time.Month(f.month), 1, 0, 0, 0, 0, loc), true
	case KindYear:
		if !f.haveYear {
			return time.Time{}, false
		}
		return time.Date(f.year, 1, 1, 0, 0, 0, 0, loc), true
	default: // KindDay
		if !f.haveYear || !f.haveMon || !f.haveDay {
			return time.Time{}, false
		}
		if f.month < 1 || f.month > 12 || f.day < 1 || f.day > 31 {
			return time.Time{}, false
		}
		d := time.Date(f.year, time.Month(f.month), f.day, 0, 0, 0, 0, loc)
		// time.Date normalizes Feb 30 into March; strict mode rejects that
		if d.Day() != f.day || d.Month() != time.Month(f.month) || d.Year() != f.year {
			return time.Time{}, false
		}
		return d, true
	}
}

// takeDigits reads between min and max leading digits from s, greedily.
func takeDigits(s string, min, max int) (int, string, bool) {
	n := 0
	for n < len(s) && n < max && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n < min {
		return 0, s, false
	}
	v := 0
	for i := 0; i < n; i++ {
		v = v*10 + int(s[i]-'0')
	}
	return v, s[n:], true
}

// expandYear maps a two-digit year the way moment does: 00-68 into the
// 2000s, 69-99 into the 1900s.
func expandYear(v int) int {
	if v < 69 {
		return 2000 + v
	}
	return 1900 + v
}

// isoWeekStart returns the Monday of the given ISO week. Jan 4 is always in
// week 1, so week 1's Monday is Jan 4 minus its ISO weekday offset.
func isoWeekStart(year, week int, loc *time.Location) time.Time {
	jan4 := time.Date(year, 1, 4, 0, 0, 0, 0, loc)
	wd := int(jan4.Weekday())
	if wd == 0 {
		wd = 7
	}
	week1Monday := jan4.AddDate(0, 0, -(wd - 1))
	return week1Monday.AddDate(0, 0, (week-1)*7)
}

// isoWeeksIn reports how many ISO weeks the given year has (52 or 53).
func isoWeeksIn(year int) int {
	_, w := time.Date(year, 12, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// Classifier matches note names against an ordered list of patterns.
type Classifier struct {
	patterns []Pattern
	loc      *time.Location
}

// NewClassifier compiles the given formats. Formats that fail to compile
// are silently dropped; they can never match, which is the defined behavior
// for malformed settings.
func NewClassifier(formats []string, loc *time.Location) *Classifier {
	if loc == nil {
		loc = time.Local
	}
	return &Classifier{patterns: CompileList(formats), loc: loc}
}

// Patterns returns the compiled patterns in match order.
func (c *Classifier) Patterns() []Pattern { return c.patterns }

// Classify returns the classification for the first pattern that strictly
// parses name, or ok=false when no pattern matches.
func (c *Classifier) Classify(name string) (Classified, bool) {
	for _, p := range c.patterns {
		if cl, ok := p.Match(name, c.loc); ok {
			return cl, true
		}
	}
	return Classified{}, false
}
