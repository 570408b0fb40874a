package lexer

import (
	"macrovis/internal/token"
)

// scanIdent scans an identifier or keyword-shaped token. Keywords are not
// distinguished: the token tree treats every word as an Ident, and the parse
// layer matches on text. Raw identifiers (r#type) keep their prefix.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()

	// r#ident
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == 'r' && b1 == '#' && isIdentStartByte(lx.cursor.PeekAt(2)) {
		lx.cursor.Bump()
		lx.cursor.Bump()
	}

	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanPunctOrDelim()
		}
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		if !isIdentStartRune(r) {
			return lx.scanPunctOrDelim()
		}
		lx.bumpRune()
		for {
			r2, sz2 := lx.peekRune()
			if sz2 == 0 || !isIdentContinueRune(r2) {
				break
			}
			lx.bumpRune()
		}
	}

	// Unicode continuation after an ASCII run ("αβ1x" mixes freely).
	for {
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Ident, Span: sp, Text: lx.text(sp)}
}
