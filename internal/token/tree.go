package token

import (
	"strings"

	"macrovis/internal/source"
)

// Tree is one node of a token tree: an identifier, a punctuation character,
// a literal, or a delimited group of nested trees. Trees are immutable once
// produced; rewrites build new trees instead of mutating.
type Tree struct {
	Kind    Kind
	Text    string
	Spacing Spacing // puncts only
	Delim   Delim   // groups only
	Inner   Stream  // groups only
	Span    source.Span
}

// Stream is an ordered sequence of token trees. Concatenation and splicing
// are the only structural operations; both are plain slice appends.
type Stream []Tree

// NewIdent builds a synthesized identifier tree.
func NewIdent(text string) Tree {
	return Tree{Kind: Ident, Text: text}
}

// NewPunct builds a synthesized punctuation tree.
func NewPunct(ch byte, spacing Spacing) Tree {
	return Tree{Kind: Punct, Text: string(ch), Spacing: spacing}
}

// NewLiteral builds a synthesized literal tree.
func NewLiteral(text string) Tree {
	return Tree{Kind: Literal, Text: text}
}

// NewGroup builds a synthesized group tree around inner.
func NewGroup(delim Delim, inner Stream) Tree {
	return Tree{Kind: Group, Delim: delim, Inner: inner}
}

// IsPunct reports whether the tree is the punctuation character ch.
func (t Tree) IsPunct(ch byte) bool {
	return t.Kind == Punct && len(t.Text) == 1 && t.Text[0] == ch
}

// IsIdent reports whether the tree is the identifier text.
func (t Tree) IsIdent(text string) bool {
	return t.Kind == Ident && t.Text == text
}

// WithSpacing returns a copy of the tree with the given spacing.
func (t Tree) WithSpacing(spacing Spacing) Tree {
	t.Spacing = spacing
	return t
}

// Clone returns a deep copy of the stream.
func (s Stream) Clone() Stream {
	out := make(Stream, len(s))
	for i, t := range s {
		if t.Kind == Group {
			t.Inner = t.Inner.Clone()
		}
		out[i] = t
	}
	return out
}

// String renders the stream as source text. Trees are separated by a single
// space, except that nothing follows a Joint punct; groups render as their
// delimiter pair around the inner rendering with no padding. The result is
// byte-stable: it is what gets fingerprinted and what the CLI prints.
func (s Stream) String() string {
	var b strings.Builder
	s.render(&b)
	return b.String()
}

func (s Stream) render(b *strings.Builder) {
	for i, t := range s {
		t.render(b)
		if i+1 < len(s) && !(t.Kind == Punct && t.Spacing == Joint) {
			b.WriteByte(' ')
		}
	}
}

func (t Tree) render(b *strings.Builder) {
	if t.Kind == Group {
		b.WriteByte(t.Delim.Open())
		t.Inner.render(b)
		b.WriteByte(t.Delim.Close())
		return
	}
	b.WriteString(t.Text)
}
