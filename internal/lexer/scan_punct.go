package lexer

import (
	"macrovis/internal/diag"
	"macrovis/internal/token"
)

// scanPunctOrDelim scans a single delimiter or punctuation character.
// Multi-character operators are not a lexer concept here: => is a Joint '='
// followed by '>', exactly as the downstream token tree wants them.
func (lx *Lexer) scanPunctOrDelim() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)

	switch {
	case isOpenDelimByte(b):
		return token.Token{Kind: token.OpenDelim, Span: sp, Text: lx.text(sp), Delim: delimFor(b)}

	case isCloseDelimByte(b):
		return token.Token{Kind: token.CloseDelim, Span: sp, Text: lx.text(sp), Delim: delimFor(b)}

	case isPunctByte(b):
		spacing := token.Alone
		if next := lx.cursor.Peek(); isPunctByte(next) || next == '\'' {
			spacing = token.Joint
		}
		return token.Token{Kind: token.Punct, Span: sp, Text: lx.text(sp), Spacing: spacing}

	default:
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
}

func delimFor(b byte) token.Delim {
	switch b {
	case '(', ')':
		return token.Paren
	case '[', ']':
		return token.Bracket
	case '{', '}':
		return token.Brace
	}
	return token.NoDelim
}
