package lexer

import (
	"macrovis/internal/source"
	"macrovis/internal/token"
)

// Lexer produces the flat significant-token stream of a file. Comments and
// whitespace are consumed as trivia and never surface: the rewriter operates
// on the already-expanded attribute form, where documentation has its own
// representation.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // single-token lookahead buffer
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
	}
}

// Next returns the next significant token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
			Text: "",
		}
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == 'r' && lx.isRawStringStart():
		return lx.scanRawString(lx.cursor.Mark())

	case ch == 'b' && lx.isByteLiteralStart():
		return lx.scanByteLiteral()

	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdent()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '"':
		return lx.scanString(lx.cursor.Mark())

	case ch == '\'':
		return lx.scanCharOrLifetime()

	default:
		return lx.scanPunctOrDelim()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

// Lex scans the whole file into a flat token slice ending with EOF.
func Lex(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Tree scans the file and folds delimiter pairs into a nested token stream.
// ok is false when delimiters do not balance; the partial stream is still
// returned for diagnostics.
func Tree(file *source.File, opts Options) (token.Stream, bool) {
	return BuildTree(Lex(file, opts), opts.Reporter)
}
