package rewrite

import (
	"macrovis/internal/diag"
	"macrovis/internal/source"
	"macrovis/internal/token"
)

// definition is the parsed view over an annotated item: leading attributes,
// the macro_rules keyword, the bang, the name, the brace-delimited arms, and
// whatever trails the definition.
type definition struct {
	attrs   token.Stream // leading #[...] pairs, verbatim
	keyword token.Tree
	bang    token.Tree
	name    token.Tree
	arms    token.Tree // brace group; never parsed further
	rest    token.Stream
}

// parseFailure pinpoints where parsing stopped, for diagnostics only; the
// emitted output is the same fixed marker regardless.
type parseFailure struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

// parseDefinition scans the item left to right. Leading #[...] attribute
// pairs accumulate verbatim until the macro_rules keyword; after it the
// shape ! name { arms } is required in strict order. Anything else fails.
func parseDefinition(item token.Stream) (definition, *parseFailure) {
	var def definition

	fail := func(code diag.Code, at int, msg string) *parseFailure {
		sp := source.Span{}
		if at < len(item) {
			sp = item[at].Span
		} else if len(item) > 0 {
			sp = item[len(item)-1].Span
		}
		return &parseFailure{Code: code, Span: sp, Msg: msg}
	}

	i := 0
	for {
		if i >= len(item) {
			return def, fail(diag.RwExpectMacroRules, i, "expected a macro_rules! definition")
		}
		t := item[i]
		switch {
		case t.IsIdent("macro_rules"):
			def.keyword = t
		case t.IsPunct('#') && i+1 < len(item) &&
			item[i+1].Kind == token.Group && item[i+1].Delim == token.Bracket:
			def.attrs = append(def.attrs, t, item[i+1])
			i += 2
			continue
		default:
			return def, fail(diag.RwExpectMacroRules, i, "expected a macro_rules! definition")
		}
		i++
		break
	}

	if i >= len(item) || !item[i].IsPunct('!') {
		return def, fail(diag.RwExpectBang, i, "expected '!' after macro_rules")
	}
	def.bang = item[i]
	i++

	if i >= len(item) || item[i].Kind != token.Ident {
		return def, fail(diag.RwExpectName, i, "expected macro name")
	}
	def.name = item[i]
	i++

	if i >= len(item) || item[i].Kind != token.Group || item[i].Delim != token.Brace {
		return def, fail(diag.RwExpectBraceBody, i, "expected brace-delimited macro body")
	}
	def.arms = item[i]
	i++

	def.rest = item[i:]
	return def, nil
}
