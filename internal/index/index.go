package index

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"notebeat/internal/periodic"
)

//go:embed schema.sql
var schemaFS embed.FS

// Entry is one classified note as stored in the index.
type Entry struct {
	Path    string
	Folder  string
	Name    string
	Title   string
	Kind    periodic.Kind
	Date    time.Time
	ModTime time.Time
	Size    int64
}

func appDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	base := filepath.Join(home, ".local", "share", "notebeat")
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", err
	}
	return base, nil
}

// Open opens (and migrates) the default index database.
func Open() (*sql.DB, error) {
	dir, err := appDataDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(filepath.Join(dir, "index.db"))
}

// OpenAt opens the index at an explicit path; used by tests and --index-db.
func OpenAt(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		path,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := EnsureTitleColumn(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	b, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := db.Exec(string(b)); err != nil {
		return errors.Join(fmt.Errorf("schema apply failed"), err)
	}
	return nil
}

// EnsureTitleColumn upgrades databases created before titles were indexed.
// Idempotent; safe to run on every open.
func EnsureTitleColumn(db *sql.DB) error {
	need := true

	rows, err := db.Query(`PRAGMA table_info(notes)`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		if strings.EqualFold(name, "title") {
			need = false
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if !need {
		return nil
	}
	if _, err := db.Exec(`ALTER TABLE notes ADD COLUMN title TEXT NOT NULL DEFAULT ''`); err != nil {
		return fmt.Errorf("add title: %w", err)
	}
	return nil
}

// Sync replaces the index contents with the given entries in one
// transaction. The index is a cache of the vault; a full rewrite keeps
// deletions and renames trivially correct.
func Sync(db *sql.DB, entries []Entry) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM notes`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO notes(path, folder, name, title, kind, date, mtime, size)
		VALUES(?,?,?,?,?,?,?,?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		_, err := stmt.Exec(
			e.Path, e.Folder, e.Name, e.Title,
			e.Kind.String(),
			e.Date.Format("2006-01-02"),
			e.ModTime.UTC().Format(time.RFC3339),
			e.Size,
		)
		if err != nil {
			return fmt.Errorf("index %s: %w", e.Path, err)
		}
	}
	return tx.Commit()
}
