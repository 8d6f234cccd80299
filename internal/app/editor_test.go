package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kobzarvs/spanline/internal/config"
	"github.com/kobzarvs/spanline/internal/match"
	"github.com/kobzarvs/spanline/internal/reconcile"
	"github.com/kobzarvs/spanline/internal/segment"
	"github.com/kobzarvs/spanline/internal/token"
	"github.com/kobzarvs/spanline/internal/treesitter"
	"github.com/kobzarvs/spanline/internal/view"
)

func newTestEditor(t *testing.T, name string) (*Editor, *reconcile.Arena) {
	t.Helper()
	langs := config.DefaultLanguages()
	lang := langs.Lookup(name)
	require.NotNil(t, lang, name)
	arena := reconcile.NewArena()
	ed, err := NewEditor(lang, arena)
	require.NoError(t, err)
	return ed, arena
}

func typeString(ed *Editor, s string) {
	for _, r := range s {
		ed.Insert(r)
	}
}

func TestTokenizerFor(t *testing.T) {
	tok, err := TokenizerFor(nil)
	require.NoError(t, err)
	assert.Equal(t, token.Plain{}, tok)

	tok, err = TokenizerFor(&config.Language{Name: "latex", Tokenizer: token.NameLaTeX})
	require.NoError(t, err)
	assert.Equal(t, token.LaTeX{}, tok)

	tok, err = TokenizerFor(&config.Language{Name: "go", Tokenizer: config.TokenizerTreeSitter})
	require.NoError(t, err)
	assert.IsType(t, &treesitter.Tokenizer{}, tok)

	_, err = TokenizerFor(&config.Language{Name: "cobol", Tokenizer: config.TokenizerTreeSitter})
	assert.Error(t, err)
}

func TestInsertAutocompleteAndOverwrite(t *testing.T) {
	ed, arena := newTestEditor(t, "example")

	ed.Insert('(')
	assert.Equal(t, "()", ed.Text())
	assert.Equal(t, 1, ed.Caret())
	assert.Equal(t, []match.Location{{Line: 0, Span: 0}, {Line: 0, Span: 1}}, ed.Matches())

	ed.Insert('x')
	ed.Insert(')')
	assert.Equal(t, "(x)", ed.Text())
	assert.Equal(t, 3, ed.Caret())

	ed.Insert(')')
	assert.Equal(t, "(x))", ed.Text(), "closer without a matching next rune is typed")
	assert.Equal(t, "(x))", segment.Join(arena.Snapshot()))
	assert.True(t, ed.Dirty())
}

func TestEditingKeys(t *testing.T) {
	ed, arena := newTestEditor(t, "text")

	typeString(ed, "ab")
	ed.Insert('\n')
	typeString(ed, "cd")
	assert.Equal(t, "ab\ncd", ed.Text())
	assert.Equal(t, 2, arena.Len())

	ed.Backspace()
	assert.Equal(t, "ab\nc", ed.Text())

	ed.Home()
	assert.Equal(t, 3, ed.Caret())
	ed.Backspace()
	assert.Equal(t, "abc", ed.Text())
	assert.Equal(t, 1, arena.Len())

	ed.Delete()
	assert.Equal(t, "ab", ed.Text())
	ed.Delete()
	assert.Equal(t, "ab", ed.Text())

	ed.End()
	assert.Equal(t, 2, ed.Caret())
	ed.MoveLeft()
	ed.MoveLeft()
	ed.MoveLeft()
	assert.Equal(t, 0, ed.Caret())
	ed.Backspace()
	assert.Equal(t, "ab", ed.Text())
}

func TestVerticalMovementKeepsColumn(t *testing.T) {
	ed, _ := newTestEditor(t, "text")
	ed.SetText("abcd\nx\nabcd")

	ed.End()
	ed.MoveDown()
	assert.Equal(t, 6, ed.Caret())
	ed.MoveDown()
	assert.Equal(t, 11, ed.Caret())
	ed.MoveUp()
	ed.MoveUp()
	assert.Equal(t, 4, ed.Caret())
	ed.MoveUp()
	assert.Equal(t, 4, ed.Caret())
}

func TestMatchesFollowCaret(t *testing.T) {
	ed, _ := newTestEditor(t, "latex")
	ed.SetText("\\begin{x}\n\\end{x}")

	assert.Len(t, ed.Matches(), 2)
	ed.MoveRight()
	assert.Len(t, ed.Matches(), 2, "caret inside \\begin touches it on both sides")
	ed.End()
	assert.Equal(t, []match.Location{{Line: 0, Span: 1}, {Line: 0, Span: 3}}, ed.Matches())
}

func TestHandleKey(t *testing.T) {
	ed, _ := newTestEditor(t, "example")

	assert.False(t, ed.HandleKey(tcell.NewEventKey(tcell.KeyRune, '[', tcell.ModNone)))
	assert.False(t, ed.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
	assert.False(t, ed.HandleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)))
	assert.Equal(t, "[\n\t]", ed.Text())

	assert.False(t, ed.HandleKey(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)))
	assert.Contains(t, ed.Frame().Status, "no file name")

	assert.True(t, ed.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, ed.HandleKey(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
}

func TestOpenAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.example")
	require.NoError(t, os.WriteFile(path, []byte("{a}"), 0o644))

	ed, arena := newTestEditor(t, "example")
	require.NoError(t, ed.Open(path))
	assert.Equal(t, "{a}", segment.Join(arena.Snapshot()))
	assert.False(t, ed.Dirty())

	ed.End()
	ed.Insert('!')
	assert.Equal(t, "doc.example* | example", ed.Frame().Status)

	require.NoError(t, ed.Save())
	assert.False(t, ed.Dirty())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{a}!", string(data))
}

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.tex")

	ed, _ := newTestEditor(t, "latex")
	require.NoError(t, ed.Open(path))
	assert.Equal(t, "", ed.Text())
	assert.Contains(t, ed.Frame().Status, "new file")

	typeString(ed, "x")
	require.NoError(t, ed.Save())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestLoopQuits(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	defer s.Fini()
	s.SetSize(20, 4)

	ed, _ := newTestEditor(t, "example")
	v := view.New(view.NewStyles(config.Default().Theme), 4, false)

	s.InjectKey(tcell.KeyRune, '{', tcell.ModNone)
	s.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	require.NoError(t, loop(s, v, ed))
	assert.Equal(t, "{}", ed.Text())
}

func TestLanguageSelection(t *testing.T) {
	langs := config.DefaultLanguages()

	lang, err := New(Options{Path: "a.tex"}).language(langs)
	require.NoError(t, err)
	assert.Equal(t, "latex", lang.Name)

	lang, err = New(Options{Path: "a.tex", Language: "example"}).language(langs)
	require.NoError(t, err)
	assert.Equal(t, "example", lang.Name)

	lang, err = New(Options{Path: "notes"}).language(langs)
	require.NoError(t, err)
	assert.Equal(t, "text", lang.Name)

	_, err = New(Options{Language: "cobol"}).language(langs)
	assert.Error(t, err)
}

func TestTreeSitterBracketMatching(t *testing.T) {
	ed, _ := newTestEditor(t, "go")
	ed.SetText("func f() {\n}\n")

	ed.End()
	got := ed.Matches()
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Line)
	assert.Equal(t, match.Location{Line: 1, Span: 0}, got[1])
}

func TestOpenRefusesInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.example")
	original := []byte("caf\xe9 {x}\n")
	require.NoError(t, os.WriteFile(path, original, 0o644))

	ed, _ := newTestEditor(t, "example")
	err := ed.Open(path)
	require.ErrorIs(t, err, ErrNotUTF8)
	assert.Contains(t, err.Error(), path)

	assert.Error(t, ed.Save(), "a refused file must not become the save target")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, data)
}

func TestOpenSaveRoundTripsUnicode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.tex")
	original := []byte("café $α$ \U0001F600\r\n\\verb|ß|\n")
	require.NoError(t, os.WriteFile(path, original, 0o644))

	ed, _ := newTestEditor(t, "latex")
	require.NoError(t, ed.Open(path))
	require.NoError(t, ed.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, data)
}
