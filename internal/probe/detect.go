package probe

// Runner is the minimal probing contract. *Prober implements it; tests
// substitute a mock.
type Runner interface {
	Check(snippet []byte) (bool, error)
}

// SimpleDeclMacroCfg is the cfg name emitted when the compiler accepts
// semitransparent multi-arm `pub macro` items.
const SimpleDeclMacroCfg = "has_simple_decl_macro"

// simpleDeclMacroSnippet exercises everything the rewriter's nightly
// output needs at once: the decl_macro and rustc_attrs feature gates, the
// semitransparent transparency attribute, and duplicate macro arms. The
// arms are intentionally identical; rewritten macros can carry identical
// arms, so a compiler that rejects duplicate patterns must count as
// unsupported.
const simpleDeclMacroSnippet = `#![feature(decl_macro, rustc_attrs)]

#[rustc_macro_transparency = "semitransparent"]
pub macro probe {
    () => {},
    () => {},
}
`

// DetectSimpleDeclMacro reports whether the compiler behind r supports
// the simple declarative-macro form. Any probing error counts as absent.
func DetectSimpleDeclMacro(r Runner) bool {
	ok, err := r.Check([]byte(simpleDeclMacroSnippet))
	return err == nil && ok
}
