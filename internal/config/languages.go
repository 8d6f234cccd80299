package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kobzarvs/spanline/internal/match"
	"github.com/kobzarvs/spanline/internal/token"
	"github.com/kobzarvs/spanline/internal/treesitter"
)

// TokenizerTreeSitter selects the tree-sitter grammar named after the
// language.
const TokenizerTreeSitter = "tree-sitter"

// Language is a highlighting profile. Profiles are read-only once loaded.
type Language struct {
	Name         string            `toml:"name"`
	FileTypes    []string          `toml:"file-types"`
	Tokenizer    string            `toml:"tokenizer"`
	Match        []match.Rule      `toml:"match"`
	Autocomplete map[string]string `toml:"autocomplete"`
	Overwrite    []string          `toml:"overwrite"`
}

type Languages struct {
	Languages []Language `toml:"language"`
}

func (l Languages) Match(path string) *Language {
	base := filepath.Base(path)
	baseLower := strings.ToLower(base)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
	for i := range l.Languages {
		lang := &l.Languages[i]
		for _, ft := range lang.FileTypes {
			ftLower := strings.ToLower(ft)
			if ftLower == ext || ftLower == baseLower {
				return lang
			}
			if strings.HasPrefix(ftLower, ".") && strings.TrimPrefix(ftLower, ".") == ext {
				return lang
			}
		}
	}
	return nil
}

// Lookup returns the profile with the given name.
func (l Languages) Lookup(name string) *Language {
	for i := range l.Languages {
		if l.Languages[i].Name == name {
			return &l.Languages[i]
		}
	}
	return nil
}

// DefaultLanguages returns the builtin profiles.
func DefaultLanguages() Languages {
	brackets := match.Brackets()
	return Languages{Languages: []Language{
		{
			Name:      "text",
			FileTypes: []string{"txt"},
			Tokenizer: token.NamePlain,
		},
		{
			Name:         "example",
			FileTypes:    []string{"example"},
			Tokenizer:    token.NameSymbols,
			Match:        brackets,
			Autocomplete: map[string]string{"{": "}", "[": "]", "(": ")"},
			Overwrite:    []string{"}", "]", ")"},
		},
		{
			Name:      "latex",
			FileTypes: []string{"tex", "sty", "cls"},
			Tokenizer: token.NameLaTeX,
			Match: append(slices.Clone(brackets),
				match.Pair(token.Command, `\begin`, `\end`)),
			Autocomplete: map[string]string{"{": "}", "[": "]", "(": ")"},
			Overwrite:    []string{"}", "]", ")"},
		},
		treeSitterLanguage("go", token.Punctuation, "go"),
		treeSitterLanguage("yaml", token.Punctuation, "yaml", "yml"),
		treeSitterLanguage("toml", token.Punctuation, "toml"),
		treeSitterLanguage("bash", token.Operator, "sh", "bash", ".bashrc"),
	}}
}

// treeSitterLanguage builds a profile whose brackets are captured as
// bracket-typed spans by the highlight query.
func treeSitterLanguage(name string, bracket token.Type, fileTypes ...string) Language {
	return Language{
		Name:      name,
		FileTypes: fileTypes,
		Tokenizer: TokenizerTreeSitter,
		Match: []match.Rule{
			match.Pair(bracket, "{", "}"),
			match.Pair(bracket, "(", ")"),
			match.Pair(bracket, "[", "]"),
		},
		Autocomplete: map[string]string{"{": "}", "[": "]", "(": ")", `"`: `"`},
		Overwrite:    []string{"}", "]", ")", `"`},
	}
}

// LoadLanguages returns the builtin profiles overlaid with languages.toml.
// A user profile replaces the builtin of the same name.
func LoadLanguages() (Languages, error) {
	cfg := DefaultLanguages()
	path, err := LanguagesPath()
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

	var user Languages
	if _, err := toml.Decode(string(data), &user); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	for _, lang := range user.Languages {
		if err := lang.validate(); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
		if existing := cfg.Lookup(lang.Name); existing != nil {
			*existing = lang
			continue
		}
		cfg.Languages = append(cfg.Languages, lang)
	}
	return cfg, nil
}

func (l Language) validate() error {
	if l.Name == "" {
		return fmt.Errorf("language without name")
	}
	if l.Tokenizer == TokenizerTreeSitter {
		if !slices.Contains(treesitter.Supported(), l.Name) {
			return fmt.Errorf("language %q: no tree-sitter grammar (have %s)",
				l.Name, strings.Join(treesitter.Supported(), ", "))
		}
		return nil
	}
	if _, err := token.ByName(l.Tokenizer); err != nil {
		return fmt.Errorf("language %q: %w", l.Name, err)
	}
	return nil
}

func LanguagesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "languages.toml"), nil
}
