package lexer

import (
	"macrovis/internal/token"
)

// scanNumber scans a numeric literal: integer with optional base prefix,
// optional fraction and exponent, optional type suffix. The exact text is
// preserved verbatim; validation belongs to the host compiler.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	hex := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'o' || b1 == 'b') {
		hex = b1 == 'x'
		lx.cursor.Bump()
		lx.cursor.Bump()
	}

	lx.eatDigits(hex)

	// fraction: '.' followed by a digit; a lone '.' stays a punct (ranges,
	// method calls)
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump()
		lx.eatDigits(false)
	}

	// exponent
	if b := lx.cursor.Peek(); !hex && (b == 'e' || b == 'E') {
		if b1 := lx.cursor.PeekAt(1); isDec(b1) || ((b1 == '+' || b1 == '-') && isDec(lx.cursor.PeekAt(2))) {
			lx.cursor.Bump()
			if b := lx.cursor.Peek(); b == '+' || b == '-' {
				lx.cursor.Bump()
			}
			lx.eatDigits(false)
		}
	}

	// type suffix (u32, i64, f32, usize, ...)
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Literal, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) eatDigits(hex bool) {
	for {
		b := lx.cursor.Peek()
		if !isDec(b) && b != '_' && !(hex && isHexLetter(b)) {
			return
		}
		lx.cursor.Bump()
	}
}

func isHexLetter(b byte) bool {
	return (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
