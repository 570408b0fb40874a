// Package diag defines the diagnostic model shared by the lexer and the
// rewriter.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form, a human-oriented Message, the primary source.Span, and
// optional Notes. Producers emit through the Reporter interface so they stay
// decoupled from storage; BagReporter aggregates into a Bag, which supports
// sorting and deduplication for deterministic output.
//
// Rendering lives in internal/diagfmt. Keep the data model deterministic and
// side-effect free so tests and tooling can serialize it.
package diag
