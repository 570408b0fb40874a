package rewrite

import (
	"fmt"

	"macrovis/internal/diag"
	"macrovis/internal/lexer"
	"macrovis/internal/source"
	"macrovis/internal/token"
)

// Capabilities describes compiler features fixed at build-configuration time.
// The value is threaded in by the caller and read-only here.
type Capabilities struct {
	// SimpleDeclMacro is true when the host compiler accepts the
	// declarative-macro syntax under the decl_macro and rustc_attrs gates.
	SimpleDeclMacro bool
}

// errorMarkerText is the fixed construct appended on parse failure. The
// original item still round-trips token for token in front of it.
const errorMarkerText = "compile_error! { \"`#[macro_pub]` must be used on a `macro_rules!` macro\" }"

// Expand rewrites one annotated item. attr is the attribute's argument (empty
// means default, world-exported visibility; non-empty is passed through as a
// pub(...) restriction). The optional reporter receives a diagnostic when the
// item does not parse; output is produced either way.
func Expand(attr, item token.Stream, caps Capabilities, reporter diag.Reporter) token.Stream {
	fingerprint := ContentFingerprint(item)

	def, failure := parseDefinition(item)
	if failure != nil {
		if reporter != nil {
			diag.ReportError(reporter, failure.Code, failure.Span, failure.Msg).
				WithNote(source.Span{}, "output keeps the original item with a compile_error! marker").
				Emit()
		}
		out := item.Clone()
		return append(out, synth(errorMarkerText)...)
	}

	needExport := len(attr) == 0

	var vis token.Stream
	if needExport {
		vis = token.Stream{token.NewIdent("pub")}
	} else {
		vis = token.Stream{
			token.NewIdent("pub"),
			token.NewGroup(token.Paren, attr.Clone()),
		}
	}

	internalName := token.NewIdent(fmt.Sprintf("macro_impl_%s_%s", fingerprint.Decimal(), def.name.Text))
	implName := def.name
	if needExport {
		implName = internalName
	}

	out := def.attrs.Clone()

	if caps.SimpleDeclMacro && needExport {
		out = append(out, synth(`#[cfg(doc)] #[rustc_macro_transparency = "semitransparent"]`)...)
		out = append(out, vis.Clone()...)
		out = append(out,
			token.NewIdent("macro"),
			def.name,
			token.NewGroup(token.Brace, rewriteArmSeparators(def.arms.Inner)),
		)
		out = append(out, def.attrs.Clone()...)
		out = append(out, synth("#[cfg(not(doc))]")...)
	}

	if needExport {
		out = append(out, synth("#[macro_export] #[doc(hidden)]")...)
	}
	out = append(out, def.keyword, def.bang, implName, def.arms)

	if caps.SimpleDeclMacro && needExport {
		out = append(out, synth("#[cfg(not(doc))]")...)
	}

	out = append(out, vis...)
	out = append(out,
		token.NewIdent("use"),
		implName,
		token.NewIdent("as"),
		def.name,
		token.NewPunct(';', token.Alone),
	)

	out = append(out, def.rest...)
	return out
}

// rewriteArmSeparators flips top-level ';' terminators to ',' for the
// declarative-macro arm syntax. Only direct children are inspected: a ';'
// nested deeper inside the arms is never touched.
func rewriteArmSeparators(arms token.Stream) token.Stream {
	out := make(token.Stream, len(arms))
	for i, t := range arms {
		if t.IsPunct(';') {
			out[i] = token.NewPunct(',', t.Spacing)
			continue
		}
		out[i] = t
	}
	return out
}

// synth lexes a fixed snippet into a token stream. Snippets are compile-time
// constants; a malformed one is a programming error.
func synth(text string) token.Stream {
	fs := source.NewFileSet()
	id := fs.AddVirtual("synthesized", []byte(text))
	stream, ok := lexer.Tree(fs.Get(id), lexer.Options{})
	if !ok {
		panic(fmt.Errorf("synthesized snippet did not lex: %q", text))
	}
	clearSpans(stream)
	return stream
}

// clearSpans zeroes the spans of synthesized trees so they never alias a
// caller's FileSet.
func clearSpans(s token.Stream) {
	for i := range s {
		s[i].Span = source.Span{}
		if s[i].Kind == token.Group {
			clearSpans(s[i].Inner)
		}
	}
}
