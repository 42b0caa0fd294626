package config

import (
	"reflect"
	"testing"
)

func TestParseFormatLines(t *testing.T) {
	raw := "YYYY-MM-DD\n\n  gggg-[W]ww  \nYYYY-MM\n"
	got := ParseFormatLines(raw)
	want := []string{"YYYY-MM-DD", "gggg-[W]ww", "YYYY-MM"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseFormatLinesEmpty(t *testing.T) {
	if got := ParseFormatLines("\n  \n"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestNormalizeFormatsFallsBack(t *testing.T) {
	got := normalizeFormats([]string{"", "  "})
	if !reflect.DeepEqual(got, DefaultFormats) {
		t.Errorf("expected defaults, got %v", got)
	}
}

func TestDefaultHasAllPeriodFormats(t *testing.T) {
	cfg := Default()
	if len(cfg.Formats) != 5 {
		t.Fatalf("expected 5 default formats, got %d", len(cfg.Formats))
	}
	if cfg.Extension != ".md" {
		t.Errorf("expected .md, got %q", cfg.Extension)
	}
	if cfg.Locale != "en" {
		t.Errorf("expected en, got %q", cfg.Locale)
	}
}
