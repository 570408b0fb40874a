package lexer

import (
	"unicode/utf8"

	"macrovis/internal/diag"
	"macrovis/internal/token"
)

// scanString scans a plain "..." literal starting at the current '"'.
// start may precede the quote when a b prefix was already consumed.
func (lx *Lexer) scanString(start Mark) token.Token {
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.Literal, Span: sp, Text: lx.text(sp)}
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// isRawStringStart checks for r"..." or r#...", assuming the cursor sits on 'r'.
func (lx *Lexer) isRawStringStart() bool {
	n := uint32(1)
	for lx.cursor.PeekAt(n) == '#' {
		n++
	}
	return lx.cursor.PeekAt(n) == '"'
}

// scanRawString scans r"..." / r#"..."# with any number of hashes.
// start may precede the 'r' when a b prefix was already consumed.
func (lx *Lexer) scanRawString(start Mark) token.Token {
	lx.cursor.Bump() // 'r'
	hashes := 0
	for lx.cursor.Peek() == '#' {
		lx.cursor.Bump()
		hashes++
	}
	lx.cursor.Bump() // opening '"'

	for !lx.cursor.EOF() {
		if lx.cursor.Peek() != '"' {
			lx.cursor.Bump()
			continue
		}
		// candidate close: '"' followed by the same number of hashes
		matched := true
		for i := 0; i < hashes; i++ {
			if lx.cursor.PeekAt(uint32(i+1)) != '#' {
				matched = false
				break
			}
		}
		if !matched {
			lx.cursor.Bump()
			continue
		}
		lx.cursor.Bump()
		for i := 0; i < hashes; i++ {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Literal, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated raw string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// isByteLiteralStart checks for b'..', b"..." or br"...", assuming the cursor
// sits on 'b'.
func (lx *Lexer) isByteLiteralStart() bool {
	switch lx.cursor.PeekAt(1) {
	case '\'', '"':
		return true
	case 'r':
		n := uint32(2)
		for lx.cursor.PeekAt(n) == '#' {
			n++
		}
		return lx.cursor.PeekAt(n) == '"'
	default:
		return false
	}
}

// scanByteLiteral scans b'..', b"..." or br#"..."# forms.
func (lx *Lexer) scanByteLiteral() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // 'b'
	switch lx.cursor.Peek() {
	case '\'':
		return lx.scanCharBody(start)
	case 'r':
		return lx.scanRawString(start)
	default:
		return lx.scanString(start)
	}
}

// scanCharOrLifetime decides between a char literal ('a', '\n') and a
// lifetime ('a). A lifetime emits only the quote as a Joint punct; the
// following ident is scanned as a regular token.
func (lx *Lexer) scanCharOrLifetime() token.Token {
	start := lx.cursor.Mark()

	b1 := lx.cursor.PeekAt(1)
	if b1 != '\\' {
		// Measure one rune and see whether a closing quote follows; if not,
		// this is a lifetime marker.
		sz := uint32(1)
		if b1 >= utf8RuneSelf && int(lx.cursor.Off+1) < len(lx.file.Content) {
			_, rsz := utf8.DecodeRune(lx.file.Content[lx.cursor.Off+1:])
			if rsz > 0 {
				sz = uint32(rsz)
			}
		}
		if lx.cursor.PeekAt(1+sz) != '\'' {
			lx.cursor.Bump() // the quote
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.Punct, Span: sp, Text: lx.text(sp), Spacing: token.Joint}
		}
	}
	return lx.scanCharBody(start)
}

// scanCharBody scans '...' with escapes, starting at the opening quote.
func (lx *Lexer) scanCharBody(start Mark) token.Token {
	lx.cursor.Bump() // opening '\''
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\'' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.Literal, Span: sp, Text: lx.text(sp)}
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
		}
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated char literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
