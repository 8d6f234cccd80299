package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/kobzarvs/spanline/internal/token"
)

func TestSplitEmpty(t *testing.T) {
	lines := Split(nil)
	require.Len(t, lines, 1)
	assert.Empty(t, lines[0])
}

func TestSplitComment(t *testing.T) {
	lines := Split(token.LaTeX{}.Tokenize("50% off\nok"))
	assert.Equal(t, []Line{
		{{Type: token.Normal, Content: "50"}, {Type: token.Comment, Content: "% off"}},
		{{Type: token.Normal, Content: "ok"}},
	}, lines)
}

func TestSplitMultilineToken(t *testing.T) {
	lines := Split([]token.Token{
		{Content: "a", Type: token.Normal},
		{Content: "\nb\n\nc", Type: token.Verbatim},
		{Content: "\n", Type: token.Normal},
	})
	assert.Equal(t, []Line{
		{{Type: token.Normal, Content: "a"}},
		{{Type: token.Verbatim, Content: "b"}},
		nil,
		{{Type: token.Verbatim, Content: "c"}},
		nil,
	}, lines)
}

func TestLineEqual(t *testing.T) {
	a := Line{{Type: token.Symbol, Content: "{"}}
	assert.True(t, a.Equal(Line{{Type: token.Symbol, Content: "{"}}))
	assert.False(t, a.Equal(Line{{Type: token.Normal, Content: "{"}}))
	assert.False(t, a.Equal(Line{{Type: token.Symbol, Content: "}"}}))
	assert.False(t, a.Equal(nil))
	assert.True(t, Line(nil).Equal(Line{}))
}

func TestPropertySplit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-z \n$%\\{}()]{0,80}`).Draw(t, "text")
		lines := Split(token.LaTeX{}.Tokenize(text))

		if want := 1 + strings.Count(text, "\n"); len(lines) != want {
			t.Fatalf("len(lines) = %d, want %d for %q", len(lines), want, text)
		}
		for _, l := range lines {
			for _, s := range l {
				if strings.Contains(s.Content, "\n") || s.Content == "" {
					t.Fatalf("bad span %q in %q", s.Content, text)
				}
			}
		}
		if got := Join(lines); got != text {
			t.Fatalf("Join = %q, want %q", got, text)
		}
	})
}
