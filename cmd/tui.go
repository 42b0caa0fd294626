package cmd

import (
	"github.com/spf13/cobra"

	"notebeat/internal/ui"
)

// tuiCmd launches the Bubble Tea dashboard.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the dashboard TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return ui.Run(loadConfig())
	},
}
