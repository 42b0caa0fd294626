package vault

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Note is a file descriptor for a single note in the vault. The Name (file
// name without extension) is what gets matched against date formats; the
// frontmatter title, when present, is only used for display.
type Note struct {
	Name    string
	Path    string
	RelPath string
	Folder  string
	Title   string
	ModTime time.Time
	Size    int64
}

// Vault is a directory tree of note files sharing one extension.
type Vault struct {
	Root string
	Ext  string // including the dot, e.g. ".md"
}

func New(root, ext string) *Vault {
	if ext == "" {
		ext = ".md"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Vault{Root: root, Ext: ext}
}

// Scan walks the vault and returns a descriptor per note file. Hidden
// directories (".obsidian", ".git", ...) are skipped. Unreadable entries
// are skipped rather than failing the whole scan.
func (v *Vault) Scan() ([]Note, error) {
	root, err := filepath.Abs(v.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve vault root: %w", err)
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("vault %q is not a directory", v.Root)
	}

	var notes []Note
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), v.Ext) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = d.Name()
		}
		name := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		folder := filepath.Dir(rel)
		if folder == "." {
			folder = ""
		}

		notes = append(notes, Note{
			Name:    name,
			Path:    path,
			RelPath: rel,
			Folder:  folder,
			Title:   readTitle(path, name),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan vault: %w", err)
	}
	return notes, nil
}

// TotalSize sums the file sizes of the given notes.
func TotalSize(notes []Note) int64 {
	var n int64
	for _, note := range notes {
		n += note.Size
	}
	return n
}

type frontmatter struct {
	Title string `yaml:"title"`
}

// ReadBody returns the note's markdown content with any frontmatter block
// stripped, for preview rendering.
func ReadBody(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read note: %w", err)
	}
	_, body := splitFrontmatter(data)
	return string(body), nil
}

// readTitle extracts the frontmatter title, falling back to the file name.
// Only the first ~4KB are read; frontmatter lives at the top of the file.
func readTitle(path, fallback string) string {
	f, err := os.Open(path)
	if err != nil {
		return fallback
	}
	defer f.Close()

	buf := make([]byte, 4096)
	n, _ := f.Read(buf)
	head, _ := splitFrontmatter(buf[:n])
	if len(head) == 0 {
		return fallback
	}

	var fm frontmatter
	if err := yaml.Unmarshal(head, &fm); err != nil {
		return fallback
	}
	if t := strings.TrimSpace(fm.Title); t != "" {
		return t
	}
	return fallback
}

// splitFrontmatter separates a leading "---" delimited YAML block from the
// rest of the document. Returns (nil, data) when there is none.
func splitFrontmatter(data []byte) (head, body []byte) {
	trimmed := bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM
	if !bytes.HasPrefix(trimmed, []byte("---\n")) && !bytes.HasPrefix(trimmed, []byte("---\r\n")) {
		return nil, data
	}
	rest := trimmed[bytes.IndexByte(trimmed, '\n')+1:]
	for _, delim := range [][]byte{[]byte("\n---\n"), []byte("\n---\r\n")} {
		if i := bytes.Index(rest, delim); i >= 0 {
			return rest[:i], rest[i+len(delim):]
		}
	}
	// Frontmatter that ends at EOF
	if bytes.HasSuffix(bytes.TrimRight(rest, "\r\n"), []byte("---")) {
		end := bytes.LastIndex(rest, []byte("---"))
		return rest[:end], nil
	}
	return nil, data
}
