package view

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/spanline/internal/config"
	"github.com/kobzarvs/spanline/internal/token"
)

// Styles holds the resolved tcell styles for a theme.
type Styles struct {
	Main       tcell.Style
	LineNumber tcell.Style
	Status     tcell.Style
	Match      tcell.Style
	syntax     map[token.Type]tcell.Style
}

func NewStyles(theme config.Theme) Styles {
	mainFg := themeColor(theme.Foreground, tcell.ColorWhite)
	mainBg := themeColor(theme.Background, tcell.ColorBlack)
	main := tcell.StyleDefault.Foreground(mainFg).Background(mainBg)

	st := Styles{
		Main:       main,
		LineNumber: main.Foreground(themeColor(theme.LineNumberForeground, tcell.ColorGray)),
		Status: tcell.StyleDefault.
			Foreground(themeColor(theme.StatuslineForeground, tcell.ColorBlack)).
			Background(themeColor(theme.StatuslineBackground, tcell.ColorGray)),
		Match: tcell.StyleDefault.
			Foreground(themeColor(theme.MatchForeground, tcell.ColorBlack)).
			Background(themeColor(theme.MatchBackground, tcell.ColorYellow)),
		syntax: make(map[token.Type]tcell.Style),
	}
	for name, color := range theme.Syntax {
		typ, err := token.ParseType(name)
		if err != nil {
			continue
		}
		st.syntax[typ] = main.Foreground(themeColor(color, mainFg))
	}
	return st
}

// For returns the style of a span type, falling back to Main.
func (st Styles) For(typ token.Type) tcell.Style {
	if style, ok := st.syntax[typ]; ok {
		return style
	}
	return st.Main
}

// themeColor resolves a theme value: a color name, "#rrggbb" or
// "default". Empty and unrecognised values give fallback.
func themeColor(value string, fallback tcell.Color) tcell.Color {
	switch value = strings.ToLower(strings.TrimSpace(value)); value {
	case "":
		return fallback
	case "default":
		return tcell.ColorDefault
	}
	if c := tcell.GetColor(value); c != tcell.ColorDefault {
		return c
	}
	return fallback
}
