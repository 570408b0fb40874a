// Package token defines the token-tree data model for macrovis.
// Invariants:
//   - Token.Text is a slice of the original source (no copies); synthesized
//     trees carry their own text and the zero Span.
//   - Token.Span matches Text exactly (Start..End) for lexed tokens.
//   - Spans are diagnostic-only: no rewrite decision ever inspects them.
//   - A Punct is Joint iff the next token starts immediately after it and is
//     itself a Punct; delimiters never count.
//   - Stream.String() is byte-stable for a given stream. It is both the
//     fingerprint serialization and the final output rendering.
package token
