package lexer_test

import (
	"testing"

	"macrovis/internal/diag"
	"macrovis/internal/lexer"
	"macrovis/internal/source"
	"macrovis/internal/token"
)

func makeTree(t *testing.T, input string) (token.Stream, bool, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("item.rs", []byte(input))
	reporter := &testReporter{}
	stream, ok := lexer.Tree(fs.Get(fileID), lexer.Options{Reporter: reporter})
	return stream, ok, reporter
}

func TestTreeNesting(t *testing.T) {
	stream, ok, reporter := makeTree(t, "m { () => {}; }")
	if !ok || reporter.HasErrors() {
		t.Fatalf("unexpected failure: %+v", reporter.diagnostics)
	}

	if len(stream) != 2 {
		t.Fatalf("expected 2 top-level trees, got %d", len(stream))
	}
	if !stream[0].IsIdent("m") {
		t.Errorf("expected ident m, got %+v", stream[0])
	}
	body := stream[1]
	if body.Kind != token.Group || body.Delim != token.Brace {
		t.Fatalf("expected brace group, got %+v", body)
	}
	// () => {} ;
	if len(body.Inner) != 5 {
		t.Fatalf("expected 5 trees in body, got %d", len(body.Inner))
	}
	if body.Inner[0].Kind != token.Group || body.Inner[0].Delim != token.Paren {
		t.Errorf("expected paren group, got %+v", body.Inner[0])
	}
	if body.Inner[3].Kind != token.Group || body.Inner[3].Delim != token.Brace {
		t.Errorf("expected brace group, got %+v", body.Inner[3])
	}
	if !body.Inner[4].IsPunct(';') {
		t.Errorf("expected semicolon, got %+v", body.Inner[4])
	}
}

func TestTreeGroupSpanCoversDelimiters(t *testing.T) {
	stream, ok, _ := makeTree(t, "( a )")
	if !ok {
		t.Fatal("unexpected failure")
	}
	sp := stream[0].Span
	if sp.Start != 0 || sp.End != 5 {
		t.Errorf("group span = %v, want 0-5", sp)
	}
}

func TestTreeRoundTrip(t *testing.T) {
	// Canonical rendering: puncts before groups are Alone, so '#' keeps a
	// space before its bracket group.
	input := "# [macro_export] macro_rules ! m {() => {} ;}"
	stream, ok, _ := makeTree(t, input)
	if !ok {
		t.Fatal("unexpected failure")
	}
	if got := stream.String(); got != input {
		t.Errorf("round trip = %q, want %q", got, input)
	}
}

func TestTreeUnbalancedClose(t *testing.T) {
	stream, ok, reporter := makeTree(t, "a ) b")
	if ok {
		t.Fatal("expected failure")
	}
	if reporter.diagnostics[0].Code != diag.LexUnbalancedDelim {
		t.Errorf("code = %v", reporter.diagnostics[0].Code)
	}
	// The surrounding tokens survive for context.
	if len(stream) != 2 {
		t.Errorf("expected idents to survive, got %+v", stream)
	}
}

func TestTreeMismatchedClose(t *testing.T) {
	_, ok, reporter := makeTree(t, "( a ]")
	if ok {
		t.Fatal("expected failure")
	}
	if !reporter.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
}

func TestTreeUnclosedOpen(t *testing.T) {
	stream, ok, reporter := makeTree(t, "{ a")
	if ok {
		t.Fatal("expected failure")
	}
	if reporter.diagnostics[0].Code != diag.LexUnclosedDelim {
		t.Errorf("code = %v", reporter.diagnostics[0].Code)
	}
	// Contents are spliced back out.
	if len(stream) != 1 || !stream[0].IsIdent("a") {
		t.Errorf("expected spliced ident, got %+v", stream)
	}
}
