package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"notebeat/internal/config"
	"notebeat/internal/index"
	"notebeat/internal/periodic"
	"notebeat/internal/vault"
)

var scanQuiet bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the vault and rebuild the note index",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		total, classified, err := syncIndex(cfg)
		if err != nil {
			return err
		}
		if !scanQuiet {
			fmt.Printf("indexed %d of %d notes\n", classified, total)
		}
		return nil
	},
}

// syncIndex scans the vault, classifies every note name against the
// configured formats and replaces the index contents. Files whose names
// match no format are skipped, not errors.
func syncIndex(cfg config.Config) (total, classified int, err error) {
	if cfg.Vault == "" {
		return 0, 0, fmt.Errorf("no vault configured: set vault in the config file, NOTEBEAT_VAULT or --vault")
	}

	loc := cfg.Location()
	notes, err := vault.New(cfg.Vault, cfg.Extension).Scan()
	if err != nil {
		return 0, 0, err
	}

	cls := periodic.NewClassifier(cfg.Formats, loc)
	var entries []index.Entry
	for _, n := range notes {
		c, ok := cls.Classify(n.Name)
		if !ok {
			continue
		}
		entries = append(entries, index.Entry{
			Path:    n.Path,
			Folder:  n.Folder,
			Name:    n.Name,
			Title:   n.Title,
			Kind:    c.Kind,
			Date:    c.Date,
			ModTime: n.ModTime,
			Size:    n.Size,
		})
	}

	db, err := index.Open()
	if err != nil {
		return 0, 0, err
	}
	defer db.Close()

	if err := index.EnsureTitleColumn(db); err != nil {
		return 0, 0, err
	}
	if err := index.Sync(db, entries); err != nil {
		return 0, 0, err
	}
	return len(notes), len(entries), nil
}

func init() {
	scanCmd.Flags().BoolVar(&scanQuiet, "quiet", false, "Suppress output")
}
