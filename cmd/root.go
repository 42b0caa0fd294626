package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"notebeat/internal/config"
	"notebeat/internal/notify"
	"notebeat/internal/periodic"
	"notebeat/internal/schedule"
	"notebeat/internal/stats"
	"notebeat/internal/vault"
	"notebeat/internal/version"
)

var vaultFlag string

var rootCmd = &cobra.Command{
	Use:   "notebeat",
	Short: "Streaks and statistics for date-named note vaults",
}

func Execute() error { return rootCmd.Execute() }

// loadConfig resolves the effective configuration; the --vault flag beats
// both the config file and the NOTEBEAT_VAULT env fallback.
func loadConfig() config.Config {
	cfg, _ := config.Load()
	if vaultFlag != "" {
		cfg.Vault = vaultFlag
	}
	return cfg
}

func init() {
	rootCmd.Version = version.GetVersionInfo()
	rootCmd.PersistentFlags().StringVar(&vaultFlag, "vault", "", "Vault directory (overrides config)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if cfg.Reminder.Enabled && os.Getenv("NOTEBEAT_NO_REMINDER") != "1" && cfg.Vault != "" {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			go func() {
				schedule.RunConfigured(ctx, cfg, func() { remindIfMissing(cfg) })
			}()
			// We intentionally don't store cancel globally; on process exit, signal cancels
			_ = cancel
		}
		return nil
	}

	// Add commands; other files define these vars
	rootCmd.AddCommand(scanCmd, statsCmd, listCmd, retroCmd, findCmd, tuiCmd)
}

// remindIfMissing fires a desktop notification when today has no daily note.
func remindIfMissing(cfg config.Config) {
	loc := cfg.Location()
	notes, err := vault.New(cfg.Vault, cfg.Extension).Scan()
	if err != nil {
		return
	}

	cls := periodic.NewClassifier(cfg.Formats, loc)
	now := time.Now().In(loc)
	today := now.Format("2006-01-02")

	var days []time.Time
	for _, n := range notes {
		c, ok := cls.Classify(n.Name)
		if !ok || c.Kind != periodic.KindDay {
			continue
		}
		if c.Date.Format("2006-01-02") == today {
			return // today's note exists, nothing to nag about
		}
		days = append(days, c.Date)
	}

	title, msg := notify.FormatMissingDaily(stats.Streak(days, now))
	_ = notify.Info(title, msg)
}
