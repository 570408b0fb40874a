// Package rewrite turns an annotated macro_rules! definition into a form
// that obeys ordinary visibility rules.
//
// The transform never inspects or mutates the macro's arms; it relocates and
// renames. With no attribute argument the macro gets a world-visible export
// under a fingerprinted internal name plus a pub re-export under its original
// name; with an argument the body is redeclared under its own name and
// re-exported with the restricted visibility. When the host compiler supports
// the declarative-macro syntax, a documentation-only redeclaration is emitted
// in front of the export form.
//
// On any parse failure the original tokens are passed through with a
// compile_error! marker appended, so the host compiler reports one localized
// diagnostic instead of a cascade.
package rewrite
