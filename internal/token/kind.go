package token

// Kind represents the category of a token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input in the flat lexer stream.
	EOF

	// Ident represents an identifier or keyword token.
	Ident
	// Punct represents a single punctuation character with spacing.
	Punct
	// Literal represents a numeric, string, char, or byte literal.
	Literal

	// OpenDelim and CloseDelim appear only in the flat lexer stream;
	// the tree builder folds them into Group trees.
	OpenDelim
	CloseDelim
	// Group represents a delimited token sequence in tree form.
	Group
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case Punct:
		return "Punct"
	case Literal:
		return "Literal"
	case OpenDelim:
		return "OpenDelim"
	case CloseDelim:
		return "CloseDelim"
	case Group:
		return "Group"
	}
	return "Unknown"
}

// Spacing tells whether a Punct is glued to the following token.
type Spacing uint8

const (
	// Alone means the punct is followed by whitespace or a non-punct token.
	Alone Spacing = iota
	// Joint means the punct is immediately followed by another punct.
	Joint
)

func (s Spacing) String() string {
	if s == Joint {
		return "Joint"
	}
	return "Alone"
}

// Delim identifies the delimiter of a Group.
type Delim uint8

const (
	// NoDelim marks a non-group token.
	NoDelim Delim = iota
	// Paren is the ( ) delimiter pair.
	Paren
	// Bracket is the [ ] delimiter pair.
	Bracket
	// Brace is the { } delimiter pair.
	Brace
)

// Open returns the opening delimiter character.
func (d Delim) Open() byte {
	switch d {
	case Paren:
		return '('
	case Bracket:
		return '['
	case Brace:
		return '{'
	}
	return 0
}

// Close returns the closing delimiter character.
func (d Delim) Close() byte {
	switch d {
	case Paren:
		return ')'
	case Bracket:
		return ']'
	case Brace:
		return '}'
	}
	return 0
}

func (d Delim) String() string {
	switch d {
	case Paren:
		return "Paren"
	case Bracket:
		return "Bracket"
	case Brace:
		return "Brace"
	}
	return "NoDelim"
}
