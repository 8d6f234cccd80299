package token

import "strings"

// Plain emits the whole text as a single Normal token.
type Plain struct{}

func (Plain) Tokenize(text string) []Token {
	if text == "" {
		return nil
	}
	return []Token{{Content: text, Type: Normal}}
}

// Symbols splits text into Normal runs separated by single Symbol
// characters.
type Symbols struct{}

func (Symbols) Tokenize(text string) []Token {
	var e emitter
	for i := 0; i < len(text); {
		next := strings.IndexFunc(text[i:], isExampleSymbol)
		if next < 0 {
			e.emit(text[i:], Normal)
			break
		}
		next += i
		e.emit(text[i:next], Normal)
		e.emit(text[next:next+1], Symbol)
		i = next + 1
	}
	return e.tokens
}

// isExampleSymbol reports whether r is one of
// $ % & ' ( ) * + , - . / : ; < = > ? { | } ~ ! " ^ _ ` [ ]
func isExampleSymbol(r rune) bool {
	switch {
	case r >= '$' && r <= '/':
		return true
	case r >= ':' && r <= '?':
		return true
	case r >= '{' && r <= '~':
		return true
	}
	switch r {
	case '!', '"', '^', '_', '`', '[', ']':
		return true
	}
	return false
}
