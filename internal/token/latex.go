package token

import (
	"math"
	"strings"
)

const (
	verbPrefix    = `\verb`
	beginVerbatim = `\begin{verbatim}`
	endVerbatim   = `\end{verbatim}`
)

// notFound sorts after every real index so a missing marker never wins
// the nearest-marker comparison.
const notFound = math.MaxInt

// LaTeX classifies math regions, comments, control sequences, verbatim
// text and bracket-like symbols.
type LaTeX struct{}

func (LaTeX) Tokenize(text string) []Token {
	var (
		e          emitter
		singleMath bool
		doubleMath bool
	)
	dollar := newMarker(func(from int) int { return indexByteFrom(text, from, '$') })
	percent := newMarker(func(from int) int { return indexByteFrom(text, from, '%') })
	backslash := newMarker(func(from int) int { return indexByteFrom(text, from, '\\') })
	symbol := newMarker(func(from int) int { return indexFuncFrom(text, from, isLaTeXSymbol) })

	for i := 0; i < len(text); {
		inMath := singleMath || doubleMath
		mathAt := dollar.next(i)
		commentAt := percent.next(i)
		commandAt := backslash.next(i)
		symbolAt := notFound
		if !inMath {
			symbolAt = symbol.next(i)
		}

		run := Normal
		if inMath {
			run = Math
		}
		first := min(mathAt, commentAt, commandAt, symbolAt)
		if first == notFound {
			e.emit(text[i:], run)
			break
		}
		e.emit(text[i:first], run)
		i = first

		switch first {
		case mathAt:
			double := i+1 < len(text) && text[i+1] == '$'
			n := 1
			if double {
				n = 2
			}
			e.emit(text[i:i+n], Math)
			i += n

			if singleMath {
				singleMath = false
			} else if !double && !doubleMath {
				singleMath = true
			}
			if doubleMath {
				doubleMath = false
			} else if double {
				doubleMath = true
			}
		case commentAt:
			end := indexByteFrom(text, i, '\n')
			if end == notFound {
				end = len(text)
			}
			e.emit(text[i:end], Comment)
			i = end
		case symbolAt:
			e.emit(text[i:i+1], Symbol)
			i++
		case commandAt:
			i = e.command(text, i)
		}
	}
	return e.tokens
}

// command emits the control sequence starting at text[i] and returns the
// offset to resume scanning from.
func (e *emitter) command(text string, i int) int {
	rest := text[i:]
	switch {
	case strings.HasPrefix(rest, verbPrefix):
		e.emit(verbPrefix, Command)
		start := i + len(verbPrefix)
		if start >= len(text) {
			return len(text)
		}
		delim := text[start : start+runeLen(text[start:])]
		if delim == "\n" {
			return start
		}
		// The delimiter only closes on the same line.
		for j := start + len(delim); j < len(text); j++ {
			if text[j] == '\n' {
				e.emit(text[start:j], Verbatim)
				return j
			}
			if strings.HasPrefix(text[j:], delim) {
				end := j + len(delim)
				e.emit(text[start:end], Verbatim)
				return end
			}
		}
		e.emit(text[start:], Verbatim)
		return len(text)

	case strings.HasPrefix(rest, beginVerbatim):
		e.emit(`\begin`, Command)
		e.emit("{", Symbol)
		e.emit("verbatim", Normal)
		e.emit("}", Symbol)
		start := i + len(beginVerbatim)
		end := indexFrom(text, start, endVerbatim)
		if end == notFound {
			e.emit(text[start:], Verbatim)
			return len(text)
		}
		// The closing marker is left for the next pass as an ordinary command.
		e.emit(text[start:end], Verbatim)
		return end

	default:
		n := 1
		for i+n < len(text) && isASCIILetter(text[i+n]) {
			n++
		}
		if n == 1 && i+1 < len(text) {
			n += runeLen(text[i+1:])
		}
		e.emit(text[i:i+n], Command)
		return i + n
	}
}

func isLaTeXSymbol(r rune) bool {
	switch r {
	case '{', '}', '[', ']', '+', '-', '/', '*', '(', ')', '|', '=', '_', '~':
		return true
	}
	return false
}
