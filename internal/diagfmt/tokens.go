package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"macrovis/internal/source"
	"macrovis/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Spacing string      `json:"spacing,omitempty"`
	Delim   string      `json:"delim,omitempty"`
	Span    source.Span `json:"span"`
}

// FormatTokensPretty lists flat tokens one per line with resolved positions.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		fmt.Fprintf(w, "%3d: %-10s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		if tok.Kind == token.Punct {
			fmt.Fprintf(w, " %s", tok.Spacing.String())
		}
		if tok.Delim != token.NoDelim {
			fmt.Fprintf(w, " %s", tok.Delim.String())
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON emits the flat token list as indented JSON.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: tok.Span,
		}
		if tok.Kind == token.Punct {
			out.Spacing = tok.Spacing.String()
		}
		if tok.Delim != token.NoDelim {
			out.Delim = tok.Delim.String()
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// FormatStreamPretty renders a token tree with two-space indentation per
// nesting level, groups expanded across lines.
func FormatStreamPretty(w io.Writer, stream token.Stream) error {
	return writeStream(w, stream, 0)
}

func writeStream(w io.Writer, stream token.Stream, depth int) error {
	indent := strings.Repeat("  ", depth)
	for _, t := range stream {
		if t.Kind == token.Group {
			if _, err := fmt.Fprintf(w, "%sGroup %s\n", indent, t.Delim.String()); err != nil {
				return err
			}
			if err := writeStream(w, t.Inner, depth+1); err != nil {
				return err
			}
			continue
		}
		line := fmt.Sprintf("%s%s %q", indent, t.Kind.String(), t.Text)
		if t.Kind == token.Punct {
			line += " " + t.Spacing.String()
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
