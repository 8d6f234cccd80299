// Package view draws a rendered line surface onto a tcell screen.
package view

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/spanline/internal/match"
	"github.com/kobzarvs/spanline/internal/reconcile"
	"github.com/kobzarvs/spanline/internal/segment"
)

// Source is the read side of a reconcile.Surface.
type Source interface {
	Lines() []reconcile.LineID
	Spans(id reconcile.LineID) ([]segment.Span, bool)
}

// Frame is everything needed to draw one screen.
type Frame struct {
	Source  Source
	Row     int // caret line
	Col     int // caret column in runes
	Matches []match.Location
	Status  string
}

// View keeps the vertical scroll position between frames.
type View struct {
	Styles      Styles
	TabWidth    int
	LineNumbers bool
	scroll      int
}

func New(styles Styles, tabWidth int, lineNumbers bool) *View {
	if tabWidth < 1 {
		tabWidth = 1
	}
	return &View{Styles: styles, TabWidth: tabWidth, LineNumbers: lineNumbers}
}

// Scroll returns the index of the first visible line.
func (v *View) Scroll() int {
	return v.scroll
}

func (v *View) Render(s tcell.Screen, f Frame) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	viewHeight := max(h-1, 0)
	ids := f.Source.Lines()
	v.ensureVisible(f.Row, viewHeight)

	s.SetStyle(v.Styles.Main)
	s.Clear()

	matched := make(map[match.Location]bool, len(f.Matches))
	for _, m := range f.Matches {
		matched[m] = true
	}

	gutter := v.gutterWidth(len(ids))
	cx := gutter
	for y := 0; y < viewHeight; y++ {
		row := v.scroll + y
		if row >= len(ids) {
			clearLine(s, y, w, v.Styles.Main)
			continue
		}
		v.drawGutter(s, y, w, gutter, row)
		spans, _ := f.Source.Spans(ids[row])
		x := v.drawLine(s, y, w, gutter, row, spans, matched, f.Col)
		if row == f.Row {
			cx = x
		}
	}

	v.renderStatusline(s, w, h-1, f)

	cy := f.Row - v.scroll
	if cy < 0 || cy >= viewHeight || cx >= w {
		s.HideCursor()
		s.Show()
		return
	}
	s.SetCursorStyle(tcell.CursorStyleSteadyBar)
	s.ShowCursor(cx, cy)
	s.Show()
}

func (v *View) ensureVisible(row, viewHeight int) {
	if viewHeight <= 0 {
		v.scroll = 0
		return
	}
	if row < v.scroll {
		v.scroll = row
	}
	if row >= v.scroll+viewHeight {
		v.scroll = row - viewHeight + 1
	}
	v.scroll = max(v.scroll, 0)
}

func (v *View) gutterWidth(lines int) int {
	if !v.LineNumbers {
		return 0
	}
	digits := max(len(strconv.Itoa(max(lines, 1))), 2)
	return 1 + digits + 1
}

func (v *View) drawGutter(s tcell.Screen, y, w, gutter, row int) {
	if gutter == 0 {
		return
	}
	num := fmt.Sprintf(" %*d ", gutter-2, row+1)
	for i, r := range num {
		if i >= w {
			break
		}
		style := v.Styles.LineNumber
		if r == ' ' {
			style = v.Styles.Main
		}
		s.SetContent(i, y, r, nil, style)
	}
}

// drawLine draws spans starting at startX and returns the screen column of
// rune caretCol.
func (v *View) drawLine(s tcell.Screen, y, w, startX, row int, spans []segment.Span, matched map[match.Location]bool, caretCol int) int {
	x := startX
	col := 0 // visual column, for tab stops
	runes := 0
	caretX := -1
	for si, span := range spans {
		style := v.Styles.For(span.Type)
		if matched[match.Location{Line: row, Span: si}] {
			style = v.Styles.Match
		}
		for _, r := range span.Content {
			if runes == caretCol {
				caretX = x
			}
			runes++
			if r == '\t' {
				spaces := v.TabWidth - (col % v.TabWidth)
				for i := 0; i < spaces; i++ {
					if x < w {
						s.SetContent(x, y, ' ', nil, style)
					}
					x++
					col++
				}
				continue
			}
			width := runewidth.RuneWidth(r)
			if width < 1 {
				width = 1
			}
			if x+width <= w {
				s.SetContent(x, y, r, nil, style)
			}
			x += width
			col += width
		}
	}
	if caretX < 0 {
		caretX = x
	}
	return caretX
}

func (v *View) renderStatusline(s tcell.Screen, w, y int, f Frame) {
	if y < 0 {
		return
	}
	right := fmt.Sprintf(" Ln %d, Col %d ", f.Row+1, f.Col+1)
	line := composeStatusLine(" "+f.Status, right, w)
	x := 0
	for _, r := range line {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, v.Styles.Status)
		x += max(runewidth.RuneWidth(r), 1)
	}
	for ; x < w; x++ {
		s.SetContent(x, y, ' ', nil, v.Styles.Status)
	}
}

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

func composeStatusLine(left, right string, width int) []rune {
	if width <= 0 {
		return nil
	}
	rightRunes := []rune(runewidth.Truncate(right, width, ""))
	leftWidth := width - runewidth.StringWidth(string(rightRunes))
	leftRunes := []rune(runewidth.Truncate(left, max(leftWidth, 0), ""))

	pad := width - runewidth.StringWidth(string(leftRunes)) - runewidth.StringWidth(string(rightRunes))
	line := make([]rune, 0, width)
	line = append(line, leftRunes...)
	for i := 0; i < pad; i++ {
		line = append(line, ' ')
	}
	return append(line, rightRunes...)
}
