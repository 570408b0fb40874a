package token

import (
	"macrovis/internal/source"
)

// Token is a single flat lexer token. Delimiters are separate OpenDelim and
// CloseDelim tokens here; nesting happens in the tree builder.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Spacing Spacing // puncts only
	Delim   Delim   // delimiter tokens only
}

// IsPunct reports whether the token is the punctuation character ch.
func (t Token) IsPunct(ch byte) bool {
	return t.Kind == Punct && len(t.Text) == 1 && t.Text[0] == ch
}

// IsIdent reports whether the token is the identifier text.
func (t Token) IsIdent(text string) bool {
	return t.Kind == Ident && t.Text == text
}
