package index

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"notebeat/internal/periodic"
)

// Filter narrows note queries. Zero values mean "no constraint".
type Filter struct {
	Kind  string // "day", "week", ... empty for all
	Since time.Time
	Until time.Time
}

// Notes returns indexed entries matching the filter, newest date first.
func Notes(db *sql.DB, loc *time.Location, f Filter, limit, offset int) ([]Entry, error) {
	conds, args := f.where()
	query := `
		SELECT path, folder, name, title, kind, date, mtime, size
		FROM notes
		WHERE ` + conds + `
		ORDER BY date DESC, name DESC
		LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows, loc)
}

// Count returns how many entries match the filter.
func Count(db *sql.DB, f Filter) (int, error) {
	conds, args := f.where()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM notes WHERE `+conds, args...).Scan(&n)
	return n, err
}

// All returns every indexed entry.
func All(db *sql.DB, loc *time.Location) ([]Entry, error) {
	rows, err := db.Query(`
		SELECT path, folder, name, title, kind, date, mtime, size
		FROM notes
		ORDER BY date DESC, name DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows, loc)
}

// Classified converts indexed entries back into classifier results for the
// statistics pipeline.
func Classified(entries []Entry) []periodic.Classified {
	out := make([]periodic.Classified, 0, len(entries))
	for _, e := range entries {
		out = append(out, periodic.Classified{Date: e.Date, Kind: e.Kind})
	}
	return out
}

// OnDate returns entries of one kind whose canonical date matches exactly.
func OnDate(db *sql.DB, loc *time.Location, kind periodic.Kind, date time.Time) ([]Entry, error) {
	rows, err := db.Query(`
		SELECT path, folder, name, title, kind, date, mtime, size
		FROM notes
		WHERE kind = ? AND date = ?
		ORDER BY name ASC
	`, kind.String(), date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("query notes on date: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows, loc)
}

// CountsByKind aggregates note totals per periodicity kind.
func CountsByKind(db *sql.DB) (map[periodic.Kind]int, error) {
	rows, err := db.Query(`SELECT kind, COUNT(*) FROM notes GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("query kind counts: %w", err)
	}
	defer rows.Close()

	out := make(map[periodic.Kind]int)
	for rows.Next() {
		var kindStr string
		var n int
		if err := rows.Scan(&kindStr, &n); err != nil {
			continue
		}
		kind, ok := periodic.KindFromString(kindStr)
		if !ok {
			continue
		}
		out[kind] = n
	}
	return out, rows.Err()
}

func (f Filter) where() (string, []any) {
	conds := []string{"1=1"}
	var args []any
	if f.Kind != "" {
		conds = append(conds, "kind = ?")
		args = append(args, strings.ToLower(f.Kind))
	}
	if !f.Since.IsZero() {
		conds = append(conds, "date >= ?")
		args = append(args, f.Since.Format("2006-01-02"))
	}
	if !f.Until.IsZero() {
		conds = append(conds, "date <= ?")
		args = append(args, f.Until.Format("2006-01-02"))
	}
	return strings.Join(conds, " AND "), args
}

func scanEntries(rows *sql.Rows, loc *time.Location) ([]Entry, error) {
	if loc == nil {
		loc = time.Local
	}
	var out []Entry
	for rows.Next() {
		var e Entry
		var kindStr, dateStr, mtimeStr string
		if err := rows.Scan(&e.Path, &e.Folder, &e.Name, &e.Title, &kindStr, &dateStr, &mtimeStr, &e.Size); err != nil {
			continue
		}
		kind, ok := periodic.KindFromString(kindStr)
		if !ok {
			continue
		}
		e.Kind = kind

		date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
		if err != nil {
			continue
		}
		e.Date = date

		if mt, err := time.Parse(time.RFC3339, mtimeStr); err == nil {
			e.ModTime = mt.In(loc)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
