package token

import "fmt"

// Builtin tokenizer names accepted by ByName.
const (
	NamePlain   = "plain"
	NameSymbols = "symbols"
	NameLaTeX   = "latex"
)

// ByName returns one of the builtin tokenizers.
func ByName(name string) (Tokenizer, error) {
	switch name {
	case "", NamePlain:
		return Plain{}, nil
	case NameSymbols:
		return Symbols{}, nil
	case NameLaTeX:
		return LaTeX{}, nil
	default:
		return nil, fmt.Errorf("unknown tokenizer %q", name)
	}
}
