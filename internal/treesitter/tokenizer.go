// Package treesitter classifies source text with tree-sitter highlight
// queries and exposes the result as a token.Tokenizer.
package treesitter

import (
	"context"
	"fmt"
	"sort"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/toml"
	"github.com/smacker/go-tree-sitter/yaml"

	"github.com/kobzarvs/spanline/internal/logger"
	"github.com/kobzarvs/spanline/internal/token"
)

// Tokenizer highlights one language. The parser is reused across calls
// and guarded by mu.
type Tokenizer struct {
	name   string
	query  *sitter.Query
	parser *sitter.Parser
	mu     sync.Mutex
}

type grammar struct {
	lang  func() *sitter.Language
	query string
}

var grammars = map[string]grammar{
	"go":   {golang.GetLanguage, goHighlightQuery},
	"yaml": {yaml.GetLanguage, yamlHighlightQuery},
	"toml": {toml.GetLanguage, tomlHighlightQuery},
	"bash": {bash.GetLanguage, bashHighlightQuery},
}

// Supported returns the language names New accepts.
func Supported() []string {
	names := make([]string, 0, len(grammars))
	for name := range grammars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func New(name string) (*Tokenizer, error) {
	g, ok := grammars[name]
	if !ok {
		return nil, fmt.Errorf("no tree-sitter grammar for %q", name)
	}
	lang := g.lang()
	query, err := sitter.NewQuery([]byte(g.query), lang)
	if err != nil {
		return nil, fmt.Errorf("compile %s highlight query: %w", name, err)
	}
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	return &Tokenizer{name: name, query: query, parser: parser}, nil
}

// Tokenize parses text and turns highlight captures into tokens. Text not
// covered by a capture becomes Normal. If parsing fails the whole text is
// one Normal token.
func (t *Tokenizer) Tokenize(text string) []token.Token {
	if text == "" {
		return nil
	}
	source := []byte(text)

	t.mu.Lock()
	tree, err := t.parser.ParseCtx(context.Background(), nil, source)
	t.mu.Unlock()
	if err != nil || tree == nil {
		logger.Debug("tree-sitter parse failed", "language", t.name, "err", err)
		return token.Plain{}.Tokenize(text)
	}
	return cover(text, t.captures(tree, source))
}

type capture struct {
	start, end int
	typ        token.Type
}

func (t *Tokenizer) captures(tree *sitter.Tree, source []byte) []capture {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(t.query, tree.RootNode())

	var out []capture
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, source)
		if match == nil {
			continue
		}
		for _, c := range match.Captures {
			typ, err := token.ParseType(t.query.CaptureNameForId(c.Index))
			if err != nil {
				continue
			}
			start, end := int(c.Node.StartByte()), int(c.Node.EndByte())
			if start < 0 || end <= start || end > len(source) {
				continue
			}
			out = append(out, capture{start: start, end: end, typ: typ})
		}
	}
	return out
}

// cover picks non-overlapping captures left to right. Among captures that
// start together the longest wins, then the one with the higher priority.
func cover(text string, caps []capture) []token.Token {
	sort.SliceStable(caps, func(i, j int) bool {
		a, b := caps[i], caps[j]
		if a.start != b.start {
			return a.start < b.start
		}
		if a.end != b.end {
			return a.end > b.end
		}
		return priority(a.typ) > priority(b.typ)
	})

	var out []token.Token
	emit := func(content string, typ token.Type) {
		if content != "" {
			out = append(out, token.Token{Content: content, Type: typ})
		}
	}
	pos := 0
	for _, c := range caps {
		if c.start < pos {
			continue
		}
		emit(text[pos:c.start], token.Normal)
		emit(text[c.start:c.end], c.typ)
		pos = c.end
	}
	emit(text[pos:], token.Normal)
	return out
}

func priority(typ token.Type) int {
	switch typ {
	case token.Comment:
		return 7
	case token.String:
		return 6
	case token.Keyword:
		return 5
	case token.Constant, token.Builtin:
		return 4
	case token.Parameter, token.TypeName, token.Function, token.Number:
		return 3
	case token.Field, token.Variable:
		return 2
	case token.Operator, token.Punctuation:
		return 1
	default:
		return 0
	}
}
