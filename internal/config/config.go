package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ReminderConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Time     string   `mapstructure:"time"`     // "20:00"
	Workdays []string `mapstructure:"workdays"` // ["Mon","Tue","Wed","Thu","Fri"]
	Holidays []string `mapstructure:"holidays"` // ["2026-01-01"]
	Timezone string   `mapstructure:"timezone"` // e.g. "Europe/Berlin" (optional)
}

type RetroConfig struct {
	Lookbacks []string `mapstructure:"lookbacks"` // e.g. ["1w","1m","1y"]
}

type Config struct {
	Vault     string         `mapstructure:"vault"`
	Extension string         `mapstructure:"extension"`
	Formats   []string       `mapstructure:"formats"`
	Locale    string         `mapstructure:"locale"`
	Theme     string         `mapstructure:"theme"`
	Retro     RetroConfig    `mapstructure:"retro"`
	Reminder  ReminderConfig `mapstructure:"reminder"`
}

// DefaultFormats matches the common periodic-note naming scheme: daily,
// weekly, monthly, quarterly and yearly notes, in that match order.
var DefaultFormats = []string{"YYYY-MM-DD", "gggg-[W]ww", "YYYY-MM", "YYYY-[Q]Q", "YYYY"}

func Default() Config {
	return Config{
		Vault:     "",
		Extension: ".md",
		Formats:   append([]string(nil), DefaultFormats...),
		Locale:    "en",
		Theme:     "default",
		Retro: RetroConfig{
			Lookbacks: []string{"1w", "1m", "1y"},
		},
		Reminder: ReminderConfig{
			Enabled:  false,
			Time:     "20:00",
			Workdays: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
			Holidays: []string{},
			Timezone: "",
		},
	}
}

func xdgConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "notebeat")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Load() (Config, error) {
	cfg := Default()

	path, err := xdgConfigPath()
	if err != nil {
		return cfg, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	// defaults
	v.SetDefault("vault", cfg.Vault)
	v.SetDefault("extension", cfg.Extension)
	v.SetDefault("formats", cfg.Formats)
	v.SetDefault("locale", cfg.Locale)
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("retro.lookbacks", cfg.Retro.Lookbacks)
	v.SetDefault("reminder.enabled", cfg.Reminder.Enabled)
	v.SetDefault("reminder.time", cfg.Reminder.Time)
	v.SetDefault("reminder.workdays", cfg.Reminder.Workdays)
	v.SetDefault("reminder.holidays", cfg.Reminder.Holidays)
	v.SetDefault("reminder.timezone", cfg.Reminder.Timezone)

	_ = v.ReadInConfig() // ok if missing
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	if cfg.Vault == "" {
		cfg.Vault = os.Getenv("NOTEBEAT_VAULT")
	}
	if raw := os.Getenv("NOTEBEAT_FORMATS"); raw != "" {
		cfg.Formats = ParseFormatLines(raw)
	}
	cfg.Formats = normalizeFormats(cfg.Formats)

	// normalize workdays
	for i, d := range cfg.Reminder.Workdays {
		d = strings.TrimSpace(d)
		if len(d) >= 3 {
			cfg.Reminder.Workdays[i] = strings.Title(strings.ToLower(d[:3]))
		}
	}
	return cfg, nil
}

func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Reminder.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

// ParseFormatLines splits a raw multi-line format setting (one pattern per
// line, the form the --formats flag and older settings exports use) into a
// clean ordered list.
func ParseFormatLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func normalizeFormats(formats []string) []string {
	var out []string
	for _, f := range formats {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultFormats...)
	}
	return out
}
