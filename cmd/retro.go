package cmd

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"notebeat/internal/index"
	"notebeat/internal/periodic"
	"notebeat/internal/utils"
	"notebeat/internal/vault"
)

var (
	retroOn        string
	retroLookbacks []string
	retroShow      bool
	retroNoColor   bool
)

var retroCmd = &cobra.Command{
	Use:   "retro",
	Short: "Look back at daily notes from past periods",
	Long: `Examples:
	notebeat retro                    # configured lookbacks (1w, 1m, 1y by default)
	notebeat retro --lookback 2w --lookback 6m
	notebeat retro --on 2024-12-31    # a specific date
	notebeat retro --show             # render the note bodies too`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		loc := cfg.Location()
		now := time.Now().In(loc)

		if _, _, err := syncIndex(cfg); err != nil {
			return err
		}

		db, err := index.Open()
		if err != nil {
			return err
		}
		defer db.Close()

		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1"))
		dimStyle := lipgloss.NewStyle().Faint(true)
		if retroNoColor {
			titleStyle = lipgloss.NewStyle()
			dimStyle = lipgloss.NewStyle()
		}

		if retroOn != "" {
			date, err := utils.ParseFlexibleDate(retroOn, loc)
			if err != nil {
				return fmt.Errorf("invalid --on date %q: %w", retroOn, err)
			}
			return printRetroDay(db, loc, date, date.Format("2006-01-02"), titleStyle, dimStyle)
		}

		lookbacks := cfg.Retro.Lookbacks
		if len(retroLookbacks) > 0 {
			lookbacks = retroLookbacks
		}
		for _, lb := range lookbacks {
			date, err := utils.ParseLookback(lb, now, loc)
			if err != nil {
				return fmt.Errorf("invalid lookback %q: %w", lb, err)
			}
			label := fmt.Sprintf("%s (%s)", utils.FormatLookback(lb), date.Format("2006-01-02"))
			if err := printRetroDay(db, loc, date, label, titleStyle, dimStyle); err != nil {
				return err
			}
		}
		return nil
	},
}

func printRetroDay(db *sql.DB, loc *time.Location, date time.Time, label string, titleStyle, dimStyle lipgloss.Style) error {
	entries, err := index.OnDate(db, loc, periodic.KindDay, date)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(label))
	if len(entries) == 0 {
		fmt.Println(dimStyle.Render("  no note"))
		fmt.Println()
		return nil
	}

	for _, e := range entries {
		name := e.Name
		if e.Title != "" && e.Title != e.Name {
			name = fmt.Sprintf("%s (%s)", e.Name, e.Title)
		}
		fmt.Printf("  %s\n", name)

		if !retroShow {
			continue
		}
		body, err := vault.ReadBody(e.Path)
		if err != nil {
			fmt.Println(dimStyle.Render("  " + err.Error()))
			continue
		}
		out, err := renderMarkdown(body)
		if err != nil {
			// Fall back to the raw body if the terminal renderer chokes
			out = body
		}
		fmt.Println(strings.TrimRight(out, "\n"))
	}
	fmt.Println()
	return nil
}

func renderMarkdown(body string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(body)
}

func init() {
	retroCmd.Flags().StringVar(&retroOn, "on", "", "Show notes for a specific date")
	retroCmd.Flags().StringArrayVar(&retroLookbacks, "lookback", nil, "Lookback span like 1w, 2m, 1y (repeatable)")
	retroCmd.Flags().BoolVar(&retroShow, "show", false, "Render note bodies as markdown")
	retroCmd.Flags().BoolVar(&retroNoColor, "no-color", false, "Disable colored output")
}
