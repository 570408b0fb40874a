package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"macrovis/internal/buildcfg"
	"macrovis/internal/diag"
	"macrovis/internal/diagfmt"
	"macrovis/internal/lexer"
	"macrovis/internal/rewrite"
	"macrovis/internal/source"
	"macrovis/internal/token"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] [file.rs ...]",
	Short: "Rewrite annotated macro_rules! definitions",
	Long: `Expand applies the visibility rewrite to each input item: the macro is
re-exported under a fingerprinted internal name with a use alias at the
definition site. Without file arguments the item is read from stdin.

Items that do not parse still produce output: the original tokens followed
by a compile_error! marker, with the reason reported to stderr.`,
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().String("arg", "", "attribute argument, e.g. 'crate' or 'in crate::api' (empty means full export)")
	expandCmd.Flags().String("capability", "auto", "simple declarative macro support (auto|on|off)")
}

func runExpand(cmd *cobra.Command, args []string) error {
	attrArg, err := cmd.Flags().GetString("arg")
	if err != nil {
		return fmt.Errorf("failed to get arg flag: %w", err)
	}
	capMode, err := cmd.Flags().GetString("capability")
	if err != nil {
		return fmt.Errorf("failed to get capability flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	caps, err := resolveCapability(capMode)
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	attr, err := parseAttrArg(fs, attrArg)
	if err != nil {
		return err
	}

	ids, err := loadInputs(fs, args)
	if err != nil {
		return err
	}

	results := make([]token.Stream, len(ids))
	bags := make([]*diag.Bag, len(ids))
	failures := make([]error, len(ids))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			bag := diag.NewBag(maxDiagnostics)
			bags[i] = bag
			results[i], failures[i] = expandOne(fs, id, attr, caps, bag)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	merged := diag.NewBag(maxDiagnostics)
	for _, bag := range bags {
		merged.Merge(bag)
	}
	if merged.HasErrors() || merged.HasWarnings() {
		merged.Sort()
		diagfmt.Pretty(os.Stderr, merged, fs, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		})
	}

	for i, out := range results {
		if failures[i] == nil {
			fmt.Fprintln(os.Stdout, out.String())
		}
	}
	for _, err := range failures {
		if err != nil {
			return err
		}
	}
	return nil
}

// expandOne lexes, trees, and rewrites a single input. Unbalanced delimiters
// are fatal for the file: without balanced groups there is no token tree to
// rewrite, so no output is produced for it.
func expandOne(fs *source.FileSet, id source.FileID, attr token.Stream, caps rewrite.Capabilities, bag *diag.Bag) (token.Stream, error) {
	reporter := diag.BagReporter{Bag: bag}
	tokens := lexer.Lex(fs.Get(id), lexer.Options{Reporter: reporter})
	item, ok := lexer.BuildTree(tokens, reporter)
	if !ok {
		return nil, fmt.Errorf("%s: unbalanced delimiters", fs.Get(id).Path)
	}
	return rewrite.Expand(attr, item, caps, reporter), nil
}

// resolveCapability maps the --capability flag to a Capabilities value.
// "auto" consults the nearest macrovis.toml; no config means the stable
// fallback output.
func resolveCapability(mode string) (rewrite.Capabilities, error) {
	switch mode {
	case "on":
		return rewrite.Capabilities{SimpleDeclMacro: true}, nil
	case "off":
		return rewrite.Capabilities{}, nil
	case "auto":
		cfg, _, ok, err := buildcfg.Discover(".")
		if err != nil {
			return rewrite.Capabilities{}, err
		}
		if !ok {
			return rewrite.Capabilities{}, nil
		}
		return rewrite.Capabilities{SimpleDeclMacro: cfg.Capability.SimpleDeclMacro}, nil
	default:
		return rewrite.Capabilities{}, fmt.Errorf("unknown capability mode: %s (must be auto, on, or off)", mode)
	}
}

// parseAttrArg lexes the --arg value into the attribute argument stream.
// The value must tokenize cleanly; it goes inside pub(...) verbatim.
func parseAttrArg(fs *source.FileSet, arg string) (token.Stream, error) {
	if arg == "" {
		return nil, nil
	}
	id := fs.AddVirtual("<arg>", []byte(arg))
	bag := diag.NewBag(16)
	reporter := diag.BagReporter{Bag: bag}
	tokens := lexer.Lex(fs.Get(id), lexer.Options{Reporter: reporter})
	stream, ok := lexer.BuildTree(tokens, reporter)
	if !ok || bag.HasErrors() {
		return nil, fmt.Errorf("invalid attribute argument: %s", arg)
	}
	return stream, nil
}

func loadInputs(fs *source.FileSet, paths []string) ([]source.FileID, error) {
	if len(paths) == 0 {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []source.FileID{fs.AddVirtual("<stdin>", content)}, nil
	}
	ids := make([]source.FileID, 0, len(paths))
	for _, path := range paths {
		id, err := fs.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
