package lexer

import (
	"fmt"

	"macrovis/internal/diag"
	"macrovis/internal/source"
	"macrovis/internal/token"
)

// BuildTree folds a flat token slice into a nested stream, pairing the three
// delimiter kinds. ok is false when delimiters do not balance; the partial
// stream is still returned so callers can render context.
func BuildTree(tokens []token.Token, reporter diag.Reporter) (token.Stream, bool) {
	type frame struct {
		delim token.Delim
		open  source.Span
		out   token.Stream
	}

	stack := []frame{{delim: token.NoDelim}}
	ok := true

	report := func(code diag.Code, sp source.Span, msg string) {
		ok = false
		if reporter != nil {
			reporter.Report(code, diag.SevError, sp, msg, nil)
		}
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case token.EOF:
			// handled after the loop

		case token.OpenDelim:
			stack = append(stack, frame{delim: tok.Delim, open: tok.Span})

		case token.CloseDelim:
			top := &stack[len(stack)-1]
			if len(stack) == 1 || top.delim != tok.Delim {
				report(diag.LexUnbalancedDelim, tok.Span,
					fmt.Sprintf("unexpected closing %q", string(tok.Delim.Close())))
				continue
			}
			group := token.Tree{
				Kind:  token.Group,
				Delim: top.delim,
				Inner: top.out,
				Span:  top.open.Cover(tok.Span),
			}
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.out = append(parent.out, group)

		case token.Ident, token.Literal, token.Punct, token.Invalid:
			top := &stack[len(stack)-1]
			top.out = append(top.out, token.Tree{
				Kind:    tok.Kind,
				Text:    tok.Text,
				Spacing: tok.Spacing,
				Span:    tok.Span,
			})
		}
	}

	// Unclosed frames: report each and splice their contents back so the
	// caller still sees every token.
	for len(stack) > 1 {
		top := stack[len(stack)-1]
		report(diag.LexUnclosedDelim, top.open,
			fmt.Sprintf("unclosed %q", string(top.delim.Open())))
		stack = stack[:len(stack)-1]
		parent := &stack[len(stack)-1]
		parent.out = append(parent.out, top.out...)
	}

	return stack[0].out, ok
}
