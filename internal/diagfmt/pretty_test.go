package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"macrovis/internal/diag"
	"macrovis/internal/source"
	"macrovis/internal/token"
)

func singleDiagBag(t *testing.T) (*diag.Bag, *source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("input.rs", []byte("macro_rules bad {}\nsecond line\n"))

	bag := diag.NewBag(16)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.RwExpectBang,
		Message:  "expected '!' after macro_rules",
		Primary:  source.Span{File: id, Start: 12, End: 15},
		Notes: []diag.Note{
			{Span: source.Span{File: id, Start: 0, End: 11}, Msg: "the definition starts here"},
		},
	})
	return bag, fs, id
}

func TestPrettyHeaderAndCaret(t *testing.T) {
	bag, fs, _ := singleDiagBag(t)

	var b strings.Builder
	Pretty(&b, bag, fs, PrettyOpts{ShowNotes: true})
	out := b.String()

	lines := strings.Split(out, "\n")
	if lines[0] != "input.rs:1:13: ERROR [RWR2002]: expected '!' after macro_rules" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "  macro_rules bad {}" {
		t.Fatalf("unexpected context line: %q", lines[1])
	}
	if lines[2] != "  "+strings.Repeat(" ", 12)+"^~~" {
		t.Fatalf("unexpected underline: %q", lines[2])
	}
	if !strings.Contains(out, "input.rs:1:1: note: the definition starts here") {
		t.Fatalf("missing note header in output:\n%s", out)
	}
}

func TestPrettyWithoutNotes(t *testing.T) {
	bag, fs, _ := singleDiagBag(t)

	var b strings.Builder
	Pretty(&b, bag, fs, PrettyOpts{})
	if strings.Contains(b.String(), "note:") {
		t.Fatalf("notes rendered despite ShowNotes=false:\n%s", b.String())
	}
}

func TestPrettyBasenamePath(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("some/deep/dir/input.rs", []byte("x\n"))

	bag := diag.NewBag(4)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.LexUnknownChar,
		Message:  "unknown character",
		Primary:  source.Span{File: id, Start: 0, End: 1},
	})

	var b strings.Builder
	Pretty(&b, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if !strings.HasPrefix(b.String(), "input.rs:1:1: WARNING") {
		t.Fatalf("expected basename path, got:\n%s", b.String())
	}
}

func TestJSONReport(t *testing.T) {
	bag, fs, _ := singleDiagBag(t)

	var b strings.Builder
	if err := JSON(&b, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal([]byte(b.String()), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got count=%d len=%d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Code != "RWR2002" || d.Severity != "ERROR" {
		t.Errorf("unexpected code/severity: %s/%s", d.Code, d.Severity)
	}
	if d.Location.StartByte != 12 || d.Location.EndByte != 15 {
		t.Errorf("unexpected byte range: %d-%d", d.Location.StartByte, d.Location.EndByte)
	}
	if d.Location.StartLine != 1 || d.Location.StartCol != 13 {
		t.Errorf("unexpected position: %d:%d", d.Location.StartLine, d.Location.StartCol)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "the definition starts here" {
		t.Errorf("unexpected notes: %+v", d.Notes)
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("input.rs", []byte("m!"))
	tokens := []token.Token{
		{Kind: token.Ident, Text: "m", Span: source.Span{File: id, Start: 0, End: 1}},
		{Kind: token.Punct, Text: "!", Spacing: token.Alone, Span: source.Span{File: id, Start: 1, End: 2}},
		{Kind: token.EOF, Span: source.Span{File: id, Start: 2, End: 2}},
	}

	var b strings.Builder
	if err := FormatTokensPretty(&b, tokens, fs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := b.String()
	for _, want := range []string{`Ident      "m"`, `Punct      "!" Alone`, "EOF"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestFormatStreamPrettyNesting(t *testing.T) {
	stream := token.Stream{
		token.NewIdent("m"),
		token.NewGroup(token.Paren, token.Stream{
			token.NewPunct('$', token.Alone),
			token.NewIdent("x"),
		}),
	}

	var b strings.Builder
	if err := FormatStreamPretty(&b, stream); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Ident \"m\"\nGroup Paren\n  Punct \"$\" Alone\n  Ident \"x\"\n"
	if b.String() != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, b.String())
	}
}
