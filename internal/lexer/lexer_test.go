package lexer_test

import (
	"testing"

	"macrovis/internal/diag"
	"macrovis/internal/lexer"
	"macrovis/internal/source"
	"macrovis/internal/token"
)

// testReporter collects every diagnostic reported by the lexer.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

// makeTestLexer builds a lexer over a virtual file.
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("item.rs", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

func collect(t *testing.T, input string) ([]token.Token, *testReporter) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out, reporter
		}
		if len(out) > 10000 {
			t.Fatal("lexer did not reach EOF")
		}
	}
}

func TestLexMacroDefinition(t *testing.T) {
	toks, reporter := collect(t, "#[macro_export]\nmacro_rules! m { () => {}; }")
	if reporter.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", reporter.diagnostics)
	}

	expected := []struct {
		kind token.Kind
		text string
	}{
		{token.Punct, "#"},
		{token.OpenDelim, "["},
		{token.Ident, "macro_export"},
		{token.CloseDelim, "]"},
		{token.Ident, "macro_rules"},
		{token.Punct, "!"},
		{token.Ident, "m"},
		{token.OpenDelim, "{"},
		{token.OpenDelim, "("},
		{token.CloseDelim, ")"},
		{token.Punct, "="},
		{token.Punct, ">"},
		{token.OpenDelim, "{"},
		{token.CloseDelim, "}"},
		{token.Punct, ";"},
		{token.CloseDelim, "}"},
		{token.EOF, ""},
	}

	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(expected), len(toks), toks)
	}
	for i, want := range expected {
		if toks[i].Kind != want.kind || toks[i].Text != want.text {
			t.Errorf("token %d: got (%s %q), want (%s %q)",
				i, toks[i].Kind, toks[i].Text, want.kind, want.text)
		}
	}
}

func TestPunctSpacing(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		idx     int
		spacing token.Spacing
	}{
		{name: "fat arrow first half is joint", input: "=>", idx: 0, spacing: token.Joint},
		{name: "fat arrow second half is alone", input: "=>", idx: 1, spacing: token.Alone},
		{name: "separated equals is alone", input: "= >", idx: 0, spacing: token.Alone},
		{name: "hash before bracket is alone", input: "#[x]", idx: 0, spacing: token.Alone},
		{name: "punct before lifetime is joint", input: "<'a", idx: 0, spacing: token.Joint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, _ := collect(t, tt.input)
			tok := toks[tt.idx]
			if tok.Kind != token.Punct {
				t.Fatalf("expected punct at %d, got %s %q", tt.idx, tok.Kind, tok.Text)
			}
			if tok.Spacing != tt.spacing {
				t.Errorf("spacing = %s, want %s", tok.Spacing, tt.spacing)
			}
		})
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		name string
		input string
		text string
	}{
		{name: "plain string", input: `"hello"`, text: `"hello"`},
		{name: "escaped quote", input: `"a\"b"`, text: `"a\"b"`},
		{name: "raw string", input: `r"a\b"`, text: `r"a\b"`},
		{name: "raw string with hashes", input: `r#"say "hi""#`, text: `r#"say "hi""#`},
		{name: "byte string", input: `b"bytes"`, text: `b"bytes"`},
		{name: "byte char", input: `b'x'`, text: `b'x'`},
		{name: "char", input: `'x'`, text: `'x'`},
		{name: "escaped char", input: `'\n'`, text: `'\n'`},
		{name: "integer", input: "42", text: "42"},
		{name: "integer with suffix", input: "42usize", text: "42usize"},
		{name: "hex with underscores", input: "0xfe_ed", text: "0xfe_ed"},
		{name: "float", input: "1.25", text: "1.25"},
		{name: "float with exponent", input: "1e+5", text: "1e+5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, reporter := collect(t, tt.input)
			if reporter.HasErrors() {
				t.Fatalf("unexpected diagnostics: %+v", reporter.diagnostics)
			}
			if toks[0].Kind != token.Literal {
				t.Fatalf("expected literal, got %s %q", toks[0].Kind, toks[0].Text)
			}
			if toks[0].Text != tt.text {
				t.Errorf("text = %q, want %q", toks[0].Text, tt.text)
			}
			if toks[1].Kind != token.EOF {
				t.Errorf("expected single literal, next was %s %q", toks[1].Kind, toks[1].Text)
			}
		})
	}
}

func TestLifetimeLexesAsJointQuote(t *testing.T) {
	toks, reporter := collect(t, "'a")
	if reporter.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", reporter.diagnostics)
	}
	if toks[0].Kind != token.Punct || toks[0].Text != "'" || toks[0].Spacing != token.Joint {
		t.Fatalf("expected joint quote punct, got %+v", toks[0])
	}
	if toks[1].Kind != token.Ident || toks[1].Text != "a" {
		t.Fatalf("expected ident after lifetime quote, got %+v", toks[1])
	}
}

func TestRawIdent(t *testing.T) {
	toks, _ := collect(t, "r#type")
	if toks[0].Kind != token.Ident || toks[0].Text != "r#type" {
		t.Fatalf("expected raw ident, got %s %q", toks[0].Kind, toks[0].Text)
	}
}

func TestCommentsAreTrivia(t *testing.T) {
	input := "// line\n/* block /* nested */ */ m /// doc\n"
	toks, reporter := collect(t, input)
	if reporter.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", reporter.diagnostics)
	}
	if len(toks) != 2 || toks[0].Kind != token.Ident || toks[0].Text != "m" {
		t.Fatalf("expected only ident m, got %+v", toks)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, reporter := collect(t, "/* never closed")
	if !reporter.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	if reporter.diagnostics[0].Code != diag.LexUnterminatedBlockComment {
		t.Errorf("code = %v", reporter.diagnostics[0].Code)
	}
}

func TestUnterminatedString(t *testing.T) {
	toks, reporter := collect(t, `"never closed`)
	if !reporter.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	if toks[0].Kind != token.Invalid {
		t.Errorf("expected invalid token, got %s", toks[0].Kind)
	}
}

func TestUnknownChar(t *testing.T) {
	_, reporter := collect(t, "\x01")
	if !reporter.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	if reporter.diagnostics[0].Code != diag.LexUnknownChar {
		t.Errorf("code = %v", reporter.diagnostics[0].Code)
	}
}

func TestUnicodeIdent(t *testing.T) {
	toks, reporter := collect(t, "αβ1x")
	if reporter.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", reporter.diagnostics)
	}
	if toks[0].Kind != token.Ident || toks[0].Text != "αβ1x" {
		t.Fatalf("expected unicode ident, got %s %q", toks[0].Kind, toks[0].Text)
	}
}
