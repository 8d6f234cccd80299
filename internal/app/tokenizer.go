package app

import (
	"github.com/kobzarvs/spanline/internal/config"
	"github.com/kobzarvs/spanline/internal/token"
	"github.com/kobzarvs/spanline/internal/treesitter"
)

// TokenizerFor builds the tokenizer a language profile asks for. A nil
// profile gets the plain tokenizer.
func TokenizerFor(lang *config.Language) (token.Tokenizer, error) {
	if lang == nil {
		return token.Plain{}, nil
	}
	if lang.Tokenizer == config.TokenizerTreeSitter {
		return treesitter.New(lang.Name)
	}
	return token.ByName(lang.Tokenizer)
}
