package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/kobzarvs/spanline/internal/token"
)

type EditorOptions struct {
	TabWidth    int  `toml:"tab-width"`
	LineNumbers bool `toml:"line-numbers"`
}

type Theme struct {
	Theme                string            `toml:"theme"`
	Foreground           string            `toml:"foreground"`
	Background           string            `toml:"background"`
	LineNumberForeground string            `toml:"line-number-foreground"`
	StatuslineForeground string            `toml:"statusline-foreground"`
	StatuslineBackground string            `toml:"statusline-background"`
	MatchForeground      string            `toml:"match-foreground"`
	MatchBackground      string            `toml:"match-background"`
	Syntax               map[string]string `toml:"syntax"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth:    4,
			LineNumbers: true,
		},
		Theme: Theme{
			Foreground:           "#B3B1AD",
			Background:           "#0A0E14",
			LineNumberForeground: "#3E4B59",
			StatuslineForeground: "#B3B1AD",
			StatuslineBackground: "#0F1419",
			MatchForeground:      "#000000",
			MatchBackground:      "#FFD700",
			Syntax: map[string]string{
				"symbol":      "#F29668",
				"command":     "#FFA759",
				"verbatim":    "#BAE67E",
				"comment":     "#5C6773",
				"math":        "#D4BFFF",
				"keyword":     "#FFA759",
				"string":      "#BAE67E",
				"number":      "#D4BFFF",
				"type":        "#5CCFE6",
				"function":    "#FFD173",
				"constant":    "#FFDD8E",
				"operator":    "#F29668",
				"punctuation": "#C0C0C0",
				"field":       "#E6B673",
				"builtin":     "#73D0FF",
				"variable":    "#B3B1AD",
				"parameter":   "#B3B1AD",
			},
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	if userCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = userCfg.Editor.TabWidth
	}
	if md.IsDefined("editor", "line-numbers") {
		cfg.Editor.LineNumbers = userCfg.Editor.LineNumbers
	}
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)

	if err := validateSyntax(cfg.Theme.Syntax); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.LineNumberForeground != "" {
		dst.LineNumberForeground = src.LineNumberForeground
	}
	if src.StatuslineForeground != "" {
		dst.StatuslineForeground = src.StatuslineForeground
	}
	if src.StatuslineBackground != "" {
		dst.StatuslineBackground = src.StatuslineBackground
	}
	if src.MatchForeground != "" {
		dst.MatchForeground = src.MatchForeground
	}
	if src.MatchBackground != "" {
		dst.MatchBackground = src.MatchBackground
	}
	if len(src.Syntax) > 0 && dst.Syntax == nil {
		dst.Syntax = make(map[string]string, len(src.Syntax))
	}
	for k, v := range src.Syntax {
		if v != "" {
			dst.Syntax[k] = v
		}
	}
}

func validateSyntax(syntax map[string]string) error {
	for name := range syntax {
		if _, err := token.ParseType(name); err != nil {
			return fmt.Errorf("theme syntax: %w", err)
		}
	}
	return nil
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err == nil {
		return t, nil
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err != nil {
		return Theme{}, err
	}
	return wrap.Theme, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("SPANLINE_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "spanline"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "spanline"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
