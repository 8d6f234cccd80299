package token

import "fmt"

// Type classifies a token. Consumers other than the view only compare
// types for equality.
type Type uint8

const (
	Normal Type = iota
	Symbol
	Command
	Verbatim
	Comment
	Math

	Keyword
	String
	Number
	TypeName
	Function
	Constant
	Operator
	Punctuation
	Field
	Builtin
	Variable
	Parameter
)

var typeNames = [...]string{
	Normal:      "normal",
	Symbol:      "symbol",
	Command:     "command",
	Verbatim:    "verbatim",
	Comment:     "comment",
	Math:        "math",
	Keyword:     "keyword",
	String:      "string",
	Number:      "number",
	TypeName:    "type",
	Function:    "function",
	Constant:    "constant",
	Operator:    "operator",
	Punctuation: "punctuation",
	Field:       "field",
	Builtin:     "builtin",
	Variable:    "variable",
	Parameter:   "parameter",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// Types lists every defined type in declaration order.
func Types() []Type {
	out := make([]Type, len(typeNames))
	for i := range typeNames {
		out[i] = Type(i)
	}
	return out
}

// ParseType returns the type with the given name.
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return Normal, fmt.Errorf("unknown token type %q", name)
}

func (t Type) MarshalText() ([]byte, error) {
	if int(t) >= len(typeNames) {
		return nil, fmt.Errorf("unknown token type %d", uint8(t))
	}
	return []byte(typeNames[t]), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	v, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Token is a typed fragment of text. Content may contain newlines.
type Token struct {
	Content string
	Type    Type
}

// Tokenizer splits text into tokens whose contents concatenate back to
// the input. Implementations never fail.
type Tokenizer interface {
	Tokenize(text string) []Token
}

// Join concatenates token contents.
func Join(tokens []Token) string {
	n := 0
	for _, t := range tokens {
		n += len(t.Content)
	}
	buf := make([]byte, 0, n)
	for _, t := range tokens {
		buf = append(buf, t.Content...)
	}
	return string(buf)
}

// emitter collects tokens and drops empty fragments.
type emitter struct {
	tokens []Token
}

func (e *emitter) emit(content string, typ Type) {
	if content == "" {
		return
	}
	e.tokens = append(e.tokens, Token{Content: content, Type: typ})
}
