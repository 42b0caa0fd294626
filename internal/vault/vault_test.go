package vault

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2025-01-15.md", "# morning pages\n")
	writeFile(t, dir, "daily/2025-01-16.md", "later\n")
	writeFile(t, dir, "notes.txt", "not a note\n")
	writeFile(t, dir, ".obsidian/workspace.md", "{}")

	v := New(dir, ".md")
	notes, err := v.Scan()
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d: %+v", len(notes), notes)
	}

	byName := map[string]Note{}
	for _, n := range notes {
		byName[n.Name] = n
	}
	if n, ok := byName["2025-01-15"]; !ok || n.Folder != "" {
		t.Errorf("root note missing or wrong folder: %+v", n)
	}
	if n, ok := byName["2025-01-16"]; !ok || n.Folder != "daily" {
		t.Errorf("nested note missing or wrong folder: %+v", n)
	}
}

func TestScanMissingVault(t *testing.T) {
	v := New(filepath.Join(t.TempDir(), "nope"), ".md")
	if _, err := v.Scan(); err == nil {
		t.Fatal("expected error for missing vault directory")
	}
}

func TestFrontmatterTitle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2025-03-01.md", "---\ntitle: March kickoff\ntags: [journal]\n---\n\nBody text.\n")
	writeFile(t, dir, "2025-03-02.md", "No frontmatter here.\n")

	v := New(dir, "md")
	notes, err := v.Scan()
	if err != nil {
		t.Fatal(err)
	}
	byName := map[string]Note{}
	for _, n := range notes {
		byName[n.Name] = n
	}
	if got := byName["2025-03-01"].Title; got != "March kickoff" {
		t.Errorf("expected frontmatter title, got %q", got)
	}
	if got := byName["2025-03-02"].Title; got != "2025-03-02" {
		t.Errorf("expected fallback title, got %q", got)
	}
}

func TestReadBodyStripsFrontmatter(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "2025-03-01.md", "---\ntitle: x\n---\nThe body.\n")

	body, err := ReadBody(path)
	if err != nil {
		t.Fatal(err)
	}
	if body != "The body.\n" {
		t.Errorf("got %q", body)
	}
}

func TestReadBodyNoFrontmatter(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "n.md", "Plain body.\n")

	body, err := ReadBody(path)
	if err != nil {
		t.Fatal(err)
	}
	if body != "Plain body.\n" {
		t.Errorf("got %q", body)
	}
}

func TestTotalSize(t *testing.T) {
	notes := []Note{{Size: 10}, {Size: 32}}
	if got := TotalSize(notes); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}
