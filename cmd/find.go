package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"notebeat/internal/index"
)

var findLimit int

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Fuzzy-find notes by name or title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		loc := cfg.Location()
		query := strings.Join(args, " ")

		if _, _, err := syncIndex(cfg); err != nil {
			return err
		}

		db, err := index.Open()
		if err != nil {
			return err
		}
		defer db.Close()

		entries, err := index.All(db, loc)
		if err != nil {
			return err
		}

		haystack := make([]string, len(entries))
		for i, e := range entries {
			haystack[i] = e.Name
			if e.Title != "" && e.Title != e.Name {
				haystack[i] = e.Name + " " + e.Title
			}
		}

		matches := fuzzy.Find(query, haystack)
		if len(matches) == 0 {
			fmt.Println("no matches")
			return nil
		}
		if findLimit > 0 && len(matches) > findLimit {
			matches = matches[:findLimit]
		}

		matchStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1"))
		dimStyle := lipgloss.NewStyle().Faint(true)

		for _, m := range matches {
			e := entries[m.Index]
			fmt.Printf("%s  %s %s\n",
				dimStyle.Render(e.Date.Format("2006-01-02")),
				highlight(haystack[m.Index], m.MatchedIndexes, matchStyle),
				dimStyle.Render(e.Path))
		}
		return nil
	},
}

// highlight bolds the characters the fuzzy matcher hit.
func highlight(s string, indexes []int, style lipgloss.Style) string {
	hit := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(style.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func init() {
	findCmd.Flags().IntVar(&findLimit, "limit", 20, "Maximum matches to show")
}
