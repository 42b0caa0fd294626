package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"notebeat/internal/index"
	"notebeat/internal/periodic"
	"notebeat/internal/utils"
)

var (
	listKind      string
	listSince     string
	listUntil     string
	listLimit     int
	listPage      int
	listFormat    string
	listNoColor   bool
	listNoRefresh bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List classified notes from the index",
	Long: `Examples:
	notebeat list                          # newest notes first
	notebeat list --kind day               # daily notes only
	notebeat list --since "last month"     # notes dated in the last month
	notebeat list --format table --limit 50
	notebeat list --format quiet           # names only, for scripting`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		loc := cfg.Location()

		// Setup renderer
		renderConfig := utils.DefaultRenderConfig()
		if listNoColor {
			renderConfig.Color = false
		}
		if listFormat != "" {
			renderConfig.Format = utils.OutputFormat(listFormat)
		}
		renderConfig.Location = loc

		// Build the filter
		var f index.Filter
		if listKind != "" {
			if _, ok := periodic.KindFromString(listKind); !ok {
				return fmt.Errorf("unknown kind %q (day, week, month, quarter, year)", listKind)
			}
			f.Kind = listKind
		}
		if listSince != "" {
			t, err := utils.ParseFlexibleDate(listSince, loc)
			if err != nil {
				return fmt.Errorf("invalid --since date %q: %w", listSince, err)
			}
			f.Since = t
		}
		if listUntil != "" {
			t, err := utils.ParseFlexibleDate(listUntil, loc)
			if err != nil {
				return fmt.Errorf("invalid --until date %q: %w", listUntil, err)
			}
			f.Until = t
		}

		if listLimit <= 0 || listLimit > 1000 {
			listLimit = 50
		}

		// Refresh the index so the listing reflects the vault on disk
		if !listNoRefresh {
			if _, _, err := syncIndex(cfg); err != nil {
				return err
			}
		}

		db, err := index.Open()
		if err != nil {
			return err
		}
		defer db.Close()

		total, err := index.Count(db, f)
		if err != nil {
			return err
		}

		pagination := utils.NewPagination(total, listLimit, listPage)
		limitSQL, offsetSQL := pagination.GetSQLLimitOffset()
		entries, err := index.Notes(db, loc, f, limitSQL, offsetSQL)
		if err != nil {
			return err
		}

		rows := make([]utils.NoteRow, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, utils.NoteRow{
				Name:     e.Name,
				Title:    e.Title,
				Folder:   e.Folder,
				Kind:     e.Kind.String(),
				Date:     e.Date,
				Modified: e.ModTime,
				Size:     e.Size,
			})
		}

		filters := map[string]string{}
		if f.Kind != "" {
			filters["kind"] = f.Kind
		}
		if !f.Since.IsZero() {
			filters["since"] = f.Since.Format("2006-01-02")
		}

		list := &utils.NoteList{
			Notes:      rows,
			Total:      total,
			Page:       pagination.Current,
			PerPage:    pagination.PerPage,
			TotalPages: pagination.TotalPages,
			Filters:    filters,
		}

		renderer := utils.NewRenderer(renderConfig)
		output, err := renderer.RenderNoteList(list)
		if err != nil {
			return err
		}
		fmt.Print(output)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listKind, "kind", "", "Filter by period kind: day, week, month, quarter, year")
	listCmd.Flags().StringVar(&listSince, "since", "", "Date filter (supports: yesterday, 'last week', 2025-01-15, etc.)")
	listCmd.Flags().StringVar(&listUntil, "until", "", "Upper date bound")
	listCmd.Flags().IntVar(&listLimit, "limit", 50, "Maximum notes to show per page")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number to show (for pagination)")
	listCmd.Flags().StringVar(&listFormat, "format", "default", "Output format: default, table, json, csv, compact, quiet")
	listCmd.Flags().BoolVar(&listNoColor, "no-color", false, "Disable colored output")
	listCmd.Flags().BoolVar(&listNoRefresh, "no-refresh", false, "Use the existing index without rescanning the vault")
}
