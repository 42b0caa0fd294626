package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"notebeat/internal/periodic"
	"notebeat/internal/stats"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
	FormatCompact OutputFormat = "compact"
	FormatQuiet   OutputFormat = "quiet"
)

// RenderConfig contains configuration for output rendering
type RenderConfig struct {
	Format       OutputFormat
	Width        int
	ShowKind     bool
	ShowDate     bool
	ShowFolder   bool
	ShowModified bool
	Color        bool
	Location     *time.Location
}

// DefaultRenderConfig returns a default render configuration
func DefaultRenderConfig() *RenderConfig {
	width := 100
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}

	return &RenderConfig{
		Format:       FormatDefault,
		Width:        width,
		ShowKind:     true,
		ShowDate:     true,
		ShowFolder:   true,
		ShowModified: true,
		Color:        true,
		Location:     time.Local,
	}
}

// NoteRow is a single classified note prepared for output.
type NoteRow struct {
	Name     string    `json:"name"`
	Title    string    `json:"title,omitempty"`
	Folder   string    `json:"folder,omitempty"`
	Kind     string    `json:"kind"`
	Date     time.Time `json:"date"`
	Modified time.Time `json:"modified"`
	Size     int64     `json:"size"`
}

// NoteList is a page of notes with pagination info
type NoteList struct {
	Notes      []NoteRow         `json:"notes"`
	Total      int               `json:"total"`
	Page       int               `json:"page,omitempty"`
	PerPage    int               `json:"per_page,omitempty"`
	TotalPages int               `json:"total_pages,omitempty"`
	Filters    map[string]string `json:"filters,omitempty"`
}

// Renderer handles output formatting
type Renderer struct {
	config *RenderConfig
	styles *Styles
}

// Styles contains lipgloss styles for different elements
type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Meta      lipgloss.Style
	Date      lipgloss.Style
	Kind      lipgloss.Style
	Folder    lipgloss.Style
	Name      lipgloss.Style
	Number    lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
}

// NewRenderer creates a new renderer with the given config
func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig()
	}
	return &Renderer{
		config: config,
		styles: initStyles(config.Color),
	}
}

func initStyles(color bool) *Styles {
	styles := &Styles{}

	if color {
		styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1"))
		styles.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
		styles.Meta = lipgloss.NewStyle().Faint(true)
		styles.Date = lipgloss.NewStyle().Faint(true)
		styles.Kind = lipgloss.NewStyle().Bold(true)
		styles.Folder = lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA"))
		styles.Name = lipgloss.NewStyle()
		styles.Number = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF"))
		styles.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
		styles.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387"))
		styles.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	} else {
		styles.Title = lipgloss.NewStyle().Bold(true)
		styles.Separator = lipgloss.NewStyle()
		styles.Meta = lipgloss.NewStyle()
		styles.Date = lipgloss.NewStyle()
		styles.Kind = lipgloss.NewStyle().Bold(true)
		styles.Folder = lipgloss.NewStyle()
		styles.Name = lipgloss.NewStyle()
		styles.Number = lipgloss.NewStyle().Bold(true)
		styles.Success = lipgloss.NewStyle()
		styles.Warning = lipgloss.NewStyle()
		styles.Error = lipgloss.NewStyle()
	}

	return styles
}

// RenderNoteList renders a page of notes according to the configured format
func (r *Renderer) RenderNoteList(list *NoteList) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return r.renderJSON(list)
	case FormatCSV:
		return r.renderCSV(list)
	case FormatTable:
		return r.renderTable(list)
	case FormatCompact:
		return r.renderCompact(list)
	case FormatQuiet:
		return r.renderQuiet(list)
	default:
		return r.renderDefault(list)
	}
}

func (r *Renderer) renderDefault(list *NoteList) (string, error) {
	var builder strings.Builder

	builder.WriteString(r.styles.Title.Render("Notes"))
	if list.Filters != nil && list.Filters["kind"] != "" {
		builder.WriteString("  ")
		builder.WriteString(r.styles.Separator.Render("kind: "))
		builder.WriteString(r.styles.Meta.Render(list.Filters["kind"]))
	}
	if list.Filters != nil && list.Filters["since"] != "" {
		builder.WriteString("  ")
		builder.WriteString(r.styles.Separator.Render("since "))
		builder.WriteString(r.styles.Meta.Render(list.Filters["since"]))
	}
	builder.WriteString("\n")
	builder.WriteString(r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 120))))
	builder.WriteString("\n")

	if list.TotalPages > 1 {
		pagination := NewPagination(list.Total, list.PerPage, list.Page)
		builder.WriteString(r.styles.Meta.Render(pagination.FormatSummary()))
		builder.WriteString("\n")
		builder.WriteString(r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 120))))
		builder.WriteString("\n")
	}

	for _, note := range list.Notes {
		builder.WriteString(r.renderSingleNote(note))
	}

	if list.TotalPages > 1 {
		pagination := NewPagination(list.Total, list.PerPage, list.Page)
		if nav := pagination.FormatNavigation(); nav != "" {
			builder.WriteString(r.styles.Meta.Render(nav))
			builder.WriteString("\n")
		}
	}

	return builder.String(), nil
}

func (r *Renderer) renderSingleNote(note NoteRow) string {
	var parts []string

	if r.config.ShowDate {
		parts = append(parts, r.styles.Date.Render(note.Date.Format("2006-01-02")))
	}
	if r.config.ShowKind {
		kindStyle := r.styles.Kind.Foreground(colorForKind(note.Kind))
		parts = append(parts, kindStyle.Render(fmt.Sprintf("%-7s", note.Kind)))
	}

	display := note.Name
	if note.Title != "" && note.Title != note.Name {
		display = fmt.Sprintf("%s (%s)", note.Name, note.Title)
	}
	parts = append(parts, r.styles.Name.Render(display))

	if r.config.ShowFolder && note.Folder != "" {
		parts = append(parts, r.styles.Folder.Render("["+note.Folder+"]"))
	}
	if r.config.ShowModified && !note.Modified.IsZero() {
		parts = append(parts, r.styles.Meta.Render("modified "+humanize.Time(note.Modified)))
	}

	return strings.Join(parts, "  ") + "\n"
}

func (r *Renderer) renderJSON(list *NoteList) (string, error) {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func (r *Renderer) renderCSV(list *NoteList) (string, error) {
	var builder strings.Builder

	builder.WriteString("name,title,folder,kind,date,modified,size\n")
	for _, note := range list.Notes {
		row := []string{
			escapeCSV(note.Name),
			escapeCSV(note.Title),
			escapeCSV(note.Folder),
			note.Kind,
			note.Date.Format("2006-01-02"),
			note.Modified.Format(time.RFC3339),
			fmt.Sprintf("%d", note.Size),
		}
		builder.WriteString(strings.Join(row, ","))
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

func (r *Renderer) renderTable(list *NoteList) (string, error) {
	var builder strings.Builder

	builder.WriteString("Date\tKind\tName\tFolder\tSize\n")
	builder.WriteString(strings.Repeat("-", min(r.config.Width, 120)))
	builder.WriteString("\n")

	for _, note := range list.Notes {
		row := []string{
			note.Date.Format("2006-01-02"),
			note.Kind,
			note.Name,
			note.Folder,
			humanize.Bytes(uint64(note.Size)),
		}
		builder.WriteString(strings.Join(row, "\t"))
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

func (r *Renderer) renderCompact(list *NoteList) (string, error) {
	var builder strings.Builder

	for _, note := range list.Notes {
		line := fmt.Sprintf("%s %s %s",
			r.styles.Date.Render(note.Date.Format("2006-01-02")),
			r.styles.Kind.Foreground(colorForKind(note.Kind)).Render(note.Kind),
			note.Name)
		if note.Folder != "" {
			line += " " + r.styles.Folder.Render("["+note.Folder+"]")
		}
		builder.WriteString(line)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

// renderQuiet emits only note names, one per line (for scripting)
func (r *Renderer) renderQuiet(list *NoteList) (string, error) {
	var builder strings.Builder
	for _, note := range list.Notes {
		builder.WriteString(note.Name)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// RenderSummary renders the streak/statistics dashboard block.
func (r *Renderer) RenderSummary(s stats.Summary, vaultPath string, vaultSize int64) string {
	var builder strings.Builder
	sep := r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 120)))

	builder.WriteString(r.styles.Title.Render("Vault"))
	builder.WriteString("  ")
	builder.WriteString(r.styles.Meta.Render(vaultPath))
	builder.WriteString("\n")
	builder.WriteString(sep)
	builder.WriteString("\n")

	streakStyle := r.styles.Number
	if s.Streak == 0 {
		streakStyle = r.styles.Warning
	}
	builder.WriteString(fmt.Sprintf("  %-16s %s\n", "Current streak:",
		streakStyle.Render(fmt.Sprintf("%d day(s)", s.Streak))))

	last := "never"
	if !s.LastDay.IsZero() {
		last = s.LastDay.Format("2006-01-02")
		if s.SinceLast != "" {
			last += "  " + r.styles.Meta.Render("("+s.SinceLast+")")
		}
	}
	builder.WriteString(fmt.Sprintf("  %-16s %s\n", "Last daily note:", last))
	builder.WriteString(fmt.Sprintf("  %-16s %d  %s\n", "Total notes:", s.Total,
		r.styles.Meta.Render(humanize.Bytes(uint64(vaultSize)))))

	builder.WriteString(sep)
	builder.WriteString("\n")
	for _, kind := range []periodic.Kind{periodic.KindDay, periodic.KindWeek, periodic.KindMonth, periodic.KindQuarter, periodic.KindYear} {
		n := s.PerKind[kind]
		if n == 0 {
			continue
		}
		kindStyle := r.styles.Kind.Foreground(colorForKind(kind.String()))
		builder.WriteString(fmt.Sprintf("  %s %d\n", kindStyle.Render(fmt.Sprintf("%-8s", kind.String())), n))
	}

	return builder.String()
}

// Helper functions
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func colorForKind(kind string) lipgloss.Color {
	switch strings.ToLower(kind) {
	case "day":
		return lipgloss.Color("#A6E3A1") // green
	case "week":
		return lipgloss.Color("#89B4FA") // blue
	case "month":
		return lipgloss.Color("#F9E2AF") // yellow
	case "quarter":
		return lipgloss.Color("#F5C2E7") // pink
	case "year":
		return lipgloss.Color("#CBA6F7") // mauve
	default:
		return lipgloss.Color("#94E2D5") // teal
	}
}

func escapeCSV(s string) string {
	if strings.Contains(s, ",") || strings.Contains(s, "\"") || strings.Contains(s, "\n") {
		s = strings.ReplaceAll(s, "\"", "\"\"")
		return "\"" + s + "\""
	}
	return s
}
