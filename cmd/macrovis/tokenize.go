package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"macrovis/internal/diag"
	"macrovis/internal/diagfmt"
	"macrovis/internal/lexer"
	"macrovis/internal/source"
	"macrovis/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.rs",
	Short: "Tokenize a Rust source file",
	Long:  `Tokenize breaks a source file into the token stream the rewriter operates on`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|tree)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	tokens := lexer.Lex(fs.Get(id), lexer.Options{Reporter: reporter})

	var stream token.Stream
	if format == "tree" {
		stream, _ = lexer.BuildTree(tokens, reporter)
	}

	if bag.HasErrors() || bag.HasWarnings() {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, tokens, fs)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, tokens)
	case "tree":
		return diagfmt.FormatStreamPretty(os.Stdout, stream)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
