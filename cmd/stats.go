package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"notebeat/internal/periodic"
	"notebeat/internal/stats"
	"notebeat/internal/utils"
	"notebeat/internal/vault"
)

var (
	statsLocale  string
	statsFormat  string
	statsNoColor bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streak and per-kind note statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if cfg.Vault == "" {
			return fmt.Errorf("no vault configured: set vault in the config file, NOTEBEAT_VAULT or --vault")
		}
		loc := cfg.Location()

		notes, err := vault.New(cfg.Vault, cfg.Extension).Scan()
		if err != nil {
			return err
		}

		cls := periodic.NewClassifier(cfg.Formats, loc)
		var classified []periodic.Classified
		for _, n := range notes {
			if c, ok := cls.Classify(n.Name); ok {
				classified = append(classified, c)
			}
		}

		locale := cfg.Locale
		if statsLocale != "" {
			locale = statsLocale
		}
		summary := stats.Summarize(classified, time.Now().In(loc), locale)

		if statsFormat == "json" {
			return printStatsJSON(summary, cfg.Vault, vault.TotalSize(notes))
		}

		renderConfig := utils.DefaultRenderConfig()
		renderConfig.Location = loc
		if statsNoColor {
			renderConfig.Color = false
		}
		renderer := utils.NewRenderer(renderConfig)
		fmt.Print(renderer.RenderSummary(summary, cfg.Vault, vault.TotalSize(notes)))
		return nil
	},
}

func printStatsJSON(s stats.Summary, vaultPath string, size int64) error {
	perKind := make(map[string]int, len(s.PerKind))
	for k, n := range s.PerKind {
		perKind[k.String()] = n
	}

	out := struct {
		Vault     string         `json:"vault"`
		Total     int            `json:"total"`
		SizeBytes int64          `json:"size_bytes"`
		PerKind   map[string]int `json:"per_kind"`
		LastDay   string         `json:"last_day,omitempty"`
		Streak    int            `json:"streak"`
		SinceLast string         `json:"since_last,omitempty"`
	}{
		Vault:     vaultPath,
		Total:     s.Total,
		SizeBytes: size,
		PerKind:   perKind,
		Streak:    s.Streak,
		SinceLast: s.SinceLast,
	}
	if !s.LastDay.IsZero() {
		out.LastDay = s.LastDay.Format("2006-01-02")
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	statsCmd.Flags().StringVar(&statsLocale, "locale", "", "Locale for the time-since text (en, de, es, ru)")
	statsCmd.Flags().StringVar(&statsFormat, "format", "default", "Output format: default, json")
	statsCmd.Flags().BoolVar(&statsNoColor, "no-color", false, "Disable colored output")
}
