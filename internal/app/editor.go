package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/spanline/internal/config"
	"github.com/kobzarvs/spanline/internal/document"
	"github.com/kobzarvs/spanline/internal/logger"
	"github.com/kobzarvs/spanline/internal/match"
	"github.com/kobzarvs/spanline/internal/reconcile"
	"github.com/kobzarvs/spanline/internal/view"
)

// ErrNotUTF8 is returned by Open for files that are not valid UTF-8.
var ErrNotUTF8 = errors.New("not valid UTF-8")

// Editor is the editing layer over a document: it owns the caret, applies
// keystrokes and keeps the delimiter highlights current.
type Editor struct {
	doc   *document.Document
	lang  *config.Language
	text  []rune
	caret int
	goal  int // preferred column for vertical moves, -1 when unset

	path    string
	dirty   bool
	status  string
	matches []match.Location
}

func NewEditor(lang *config.Language, surface reconcile.Surface) (*Editor, error) {
	tok, err := TokenizerFor(lang)
	if err != nil {
		return nil, err
	}
	var rules []match.Rule
	if lang != nil {
		rules = lang.Match
	}
	e := &Editor{
		doc:  document.New(tok, rules, surface),
		lang: lang,
		goal: -1,
	}
	e.doc.SetText("")
	return e, nil
}

// Open loads path into the editor. A missing file starts an empty buffer
// that Save will create. Files that are not valid UTF-8 are refused with
// ErrNotUTF8 and leave the editor unchanged.
func (e *Editor) Open(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			e.path = path
			e.SetText("")
			e.status = "new file"
			return nil
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("open %s: %w", path, ErrNotUTF8)
	}
	e.path = path
	e.SetText(string(data))
	return nil
}

// SetText replaces the buffer and puts the caret at its start.
func (e *Editor) SetText(text string) {
	e.text = []rune(text)
	e.caret = 0
	e.goal = -1
	e.dirty = false
	e.refresh()
}

func (e *Editor) Text() string {
	return string(e.text)
}

func (e *Editor) Caret() int {
	return e.caret
}

func (e *Editor) Dirty() bool {
	return e.dirty
}

func (e *Editor) Matches() []match.Location {
	return e.matches
}

func (e *Editor) SetStatus(msg string) {
	e.status = msg
}

// Insert types r at the caret. A closer that equals the next rune is
// stepped over; an opener with an autocomplete pair also inserts the
// closer after the caret.
func (e *Editor) Insert(r rune) {
	s := string(r)
	if e.overwrites(s) && e.caret < len(e.text) && e.text[e.caret] == r {
		e.moveTo(e.caret + 1)
		return
	}
	ins := []rune{r}
	if e.lang != nil {
		if closer, ok := e.lang.Autocomplete[s]; ok {
			ins = append(ins, []rune(closer)...)
		}
	}
	e.text = slices.Insert(e.text, e.caret, ins...)
	e.caret++
	e.edited()
}

func (e *Editor) Backspace() {
	if e.caret == 0 {
		return
	}
	e.text = slices.Delete(e.text, e.caret-1, e.caret)
	e.caret--
	e.edited()
}

func (e *Editor) Delete() {
	if e.caret >= len(e.text) {
		return
	}
	e.text = slices.Delete(e.text, e.caret, e.caret+1)
	e.edited()
}

func (e *Editor) MoveLeft() {
	e.moveTo(e.caret - 1)
}

func (e *Editor) MoveRight() {
	e.moveTo(e.caret + 1)
}

func (e *Editor) MoveUp() {
	e.moveLine(-1)
}

func (e *Editor) MoveDown() {
	e.moveLine(1)
}

func (e *Editor) Home() {
	row, _ := e.doc.Position(e.caret)
	e.moveTo(e.doc.Offset(row, 0))
}

func (e *Editor) End() {
	row, _ := e.doc.Position(e.caret)
	e.moveTo(e.doc.Offset(row, e.doc.LineLen(row)))
}

// Save writes the buffer to its path.
func (e *Editor) Save() error {
	if e.path == "" {
		return errors.New("no file name")
	}
	if err := os.WriteFile(e.path, []byte(string(e.text)), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", e.path, err)
	}
	e.dirty = false
	logger.Info("saved file", "path", e.path, "bytes", len(string(e.text)))
	return nil
}

// HandleKey applies a key event and reports whether the editor should quit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	e.status = ""
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyCtrlS:
		if err := e.Save(); err != nil {
			e.status = err.Error()
			logger.Warn("save failed", "err", err)
		} else {
			e.status = "saved"
		}
	case tcell.KeyEnter:
		e.Insert('\n')
	case tcell.KeyTab:
		e.Insert('\t')
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.Backspace()
	case tcell.KeyDelete:
		e.Delete()
	case tcell.KeyLeft:
		e.MoveLeft()
	case tcell.KeyRight:
		e.MoveRight()
	case tcell.KeyUp:
		e.MoveUp()
	case tcell.KeyDown:
		e.MoveDown()
	case tcell.KeyHome:
		e.Home()
	case tcell.KeyEnd:
		e.End()
	case tcell.KeyRune:
		e.Insert(ev.Rune())
	}
	return false
}

// Frame describes the current state for the view.
func (e *Editor) Frame() view.Frame {
	row, col := e.doc.Position(e.caret)
	return view.Frame{
		Source:  e.doc.Surface(),
		Row:     row,
		Col:     col,
		Matches: e.matches,
		Status:  e.statusText(),
	}
}

func (e *Editor) statusText() string {
	name := "[No Name]"
	if e.path != "" {
		name = filepath.Base(e.path)
	}
	if e.dirty {
		name += "*"
	}
	if e.lang != nil {
		name += " | " + e.lang.Name
	}
	if e.status != "" {
		name += " | " + e.status
	}
	return name
}

func (e *Editor) overwrites(s string) bool {
	return e.lang != nil && slices.Contains(e.lang.Overwrite, s)
}

func (e *Editor) moveTo(caret int) {
	e.caret = max(0, min(caret, len(e.text)))
	e.goal = -1
	e.matches = e.doc.Highlights(e.caret)
}

func (e *Editor) moveLine(delta int) {
	row, col := e.doc.Position(e.caret)
	if e.goal < 0 {
		e.goal = col
	}
	goal := e.goal
	e.moveTo(e.doc.Offset(row+delta, goal))
	e.goal = goal
}

func (e *Editor) edited() {
	e.dirty = true
	e.goal = -1
	e.refresh()
}

func (e *Editor) refresh() {
	e.doc.SetText(string(e.text))
	e.matches = e.doc.Highlights(e.caret)
}
