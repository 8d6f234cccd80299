package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("SPANLINE_CONFIG_HOME", "/tmp/spanline-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/spanline-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/spanline-config")
	}

	t.Setenv("SPANLINE_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/spanline" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/spanline")
	}
}

func TestLoadMissing(t *testing.T) {
	t.Setenv("SPANLINE_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.TabWidth != 4 {
		t.Fatalf("TabWidth = %d, want 4", cfg.Editor.TabWidth)
	}
	if !cfg.Editor.LineNumbers {
		t.Fatalf("LineNumbers = false, want true")
	}
}

func TestLoadWithThemeAndOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SPANLINE_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "test.toml"), `
foreground = "#111111"
background = "#222222"

[syntax]
comment = "#333333"
`)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[editor]
tab-width = 8
line-numbers = false

[theme]
theme = "test"
match-background = "#123456"

[theme.syntax]
math = "#abcdef"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Fatalf("TabWidth = %d, want 8", cfg.Editor.TabWidth)
	}
	if cfg.Editor.LineNumbers {
		t.Fatalf("LineNumbers = true, want false")
	}
	if cfg.Theme.Foreground != "#111111" {
		t.Fatalf("Foreground = %q, want %q", cfg.Theme.Foreground, "#111111")
	}
	if cfg.Theme.Background != "#222222" {
		t.Fatalf("Background = %q, want %q", cfg.Theme.Background, "#222222")
	}
	if cfg.Theme.MatchBackground != "#123456" {
		t.Fatalf("MatchBackground = %q, want %q", cfg.Theme.MatchBackground, "#123456")
	}
	if got := cfg.Theme.Syntax["comment"]; got != "#333333" {
		t.Fatalf("syntax comment = %q, want %q", got, "#333333")
	}
	if got := cfg.Theme.Syntax["math"]; got != "#abcdef" {
		t.Fatalf("syntax math = %q, want %q", got, "#abcdef")
	}
	if got := cfg.Theme.Syntax["symbol"]; got != Default().Theme.Syntax["symbol"] {
		t.Fatalf("syntax symbol = %q, want default", got)
	}
}

func TestLoadRejectsUnknownSyntaxType(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SPANLINE_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[theme.syntax]
sparkle = "#ffffff"
`)

	if _, err := Load(); err == nil {
		t.Fatalf("Load error = nil, want error")
	}
}

func TestLoadThemeWrapped(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SPANLINE_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "wrapped.toml"), `
[theme]
foreground = "#aaaaaa"
background = "#bbbbbb"
`)

	theme, err := LoadTheme("wrapped")
	if err != nil {
		t.Fatalf("LoadTheme error: %v", err)
	}
	if theme.Foreground != "#aaaaaa" {
		t.Fatalf("Foreground = %q, want %q", theme.Foreground, "#aaaaaa")
	}
	if theme.Background != "#bbbbbb" {
		t.Fatalf("Background = %q, want %q", theme.Background, "#bbbbbb")
	}
}
