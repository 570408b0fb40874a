// Package probe determines, once per build configuration, whether the host
// Rust compiler supports the declarative-macro syntax the rewriter can take
// advantage of.
//
// A Prober compiles synthetic snippets fed on stdin and looks only at the
// exit status. Compiler flags come exclusively from CARGO_ENCODED_RUSTFLAGS
// (fields joined by the ASCII unit separator); a missing variable is a fatal
// misconfiguration, since probing with the wrong flags would produce a wrong
// capability judgement. Everything else degrades gracefully: a failed probe
// means "capability absent", never a broken build.
//
// Feature detection goes through the narrow Runner interface so tests can
// substitute a mock instead of spawning rustc.
package probe
