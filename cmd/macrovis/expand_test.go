package main

import (
	"strings"
	"testing"

	"macrovis/internal/diag"
	"macrovis/internal/rewrite"
	"macrovis/internal/source"
)

func TestExpandOneRejectsUnbalancedInput(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("input.rs", []byte("macro_rules! m { () => {};"))

	bag := diag.NewBag(16)
	out, err := expandOne(fs, id, nil, rewrite.Capabilities{}, bag)
	if err == nil {
		t.Fatalf("expected an error for unbalanced delimiters, got output %q", out.String())
	}
	if out != nil {
		t.Errorf("expected no output for an unbalanced item, got %q", out.String())
	}
	if !strings.Contains(err.Error(), "input.rs") {
		t.Errorf("error should name the failing file: %v", err)
	}
	if !bag.HasErrors() {
		t.Error("expected a diagnostic for the unclosed delimiter")
	}
}

func TestExpandOneWellFormedInput(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("input.rs", []byte("macro_rules! m { () => {}; }"))

	bag := diag.NewBag(16)
	out, err := expandOne(fs, id, nil, rewrite.Capabilities{}, bag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bag.HasErrors() {
		t.Fatal("unexpected diagnostics for a well-formed item")
	}
	rendered := out.String()
	for _, want := range []string{"# [macro_export]", "# [doc (hidden)]", "macro_impl_", "pub use", "as m ;"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("output is missing %q:\n%s", want, rendered)
		}
	}
}
