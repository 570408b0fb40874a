package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"macrovis/internal/buildcfg"
	"macrovis/internal/diag"
	"macrovis/internal/probe"
	"macrovis/internal/source"
)

var probeCmd = &cobra.Command{
	Use:   "probe [flags]",
	Short: "Probe the Rust compiler for declarative-macro support",
	Long: `Probe compiles a synthetic snippet with the compiler the environment
selects (RUSTC, TARGET, CARGO_ENCODED_RUSTFLAGS) and reports whether the
simple declarative-macro form is supported. An unsupported compiler is a
normal answer, not a failure; only a broken environment exits nonzero.`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().String("out-dir", "", "scratch directory for probe artifacts (default $OUT_DIR)")
	probeCmd.Flags().Bool("no-cache", false, "bypass the probe result cache")
	probeCmd.Flags().Bool("write-config", false, "record the result in ./macrovis.toml")
	probeCmd.Flags().Bool("emit-cargo", false, "print cargo build-script directives")
	probeCmd.Flags().String("rerun-path", "build.rs", "source of the probing logic for cargo:rerun-if-changed")
}

// probeReporter prints probe diagnostics to stderr. Probe spans carry no
// source file, so there is no context line to render.
type probeReporter struct{}

func (probeReporter) Report(code diag.Code, sev diag.Severity, _ source.Span, msg string, _ []diag.Note) {
	fmt.Fprintf(os.Stderr, "%s [%s]: %s\n", sev.String(), code.ID(), msg)
}

func runProbe(cmd *cobra.Command, _ []string) error {
	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return fmt.Errorf("failed to get out-dir flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	writeConfig, err := cmd.Flags().GetBool("write-config")
	if err != nil {
		return fmt.Errorf("failed to get write-config flag: %w", err)
	}
	emitCargo, err := cmd.Flags().GetBool("emit-cargo")
	if err != nil {
		return fmt.Errorf("failed to get emit-cargo flag: %w", err)
	}
	rerunPath, err := cmd.Flags().GetString("rerun-path")
	if err != nil {
		return fmt.Errorf("failed to get rerun-path flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	prober, err := newProber(outDir, probeReporter{})
	if err != nil {
		return err
	}

	compilerID, idErr := probe.CompilerID(prober.Rustc())
	if idErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; probe results will not be cached\n", idErr)
	}

	var runner probe.Runner = prober
	if !noCache && idErr == nil {
		cache, cacheErr := probe.OpenCache("macrovis")
		if cacheErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to open probe cache: %v\n", cacheErr)
		} else {
			runner = probe.CachedRunner{
				Runner:     prober,
				Cache:      cache,
				CompilerID: compilerID,
				Target:     prober.Target(),
				Flags:      prober.Flags(),
			}
		}
	}

	var has bool
	if emitCargo {
		has, err = runCargoProbe(os.Stdout, runner, rerunPath)
		if err != nil {
			return err
		}
	} else {
		has = probe.DetectSimpleDeclMacro(runner)
	}
	if !quiet {
		fmt.Fprintf(os.Stdout, "simple_decl_macro: %t\n", has)
	}

	if writeConfig {
		cfg := buildcfg.Config{Capability: buildcfg.Capability{SimpleDeclMacro: has}}
		if idErr == nil {
			cfg.Capability.Stamp(compilerID, time.Now())
		}
		path := filepath.Join(".", buildcfg.FileName)
		if err := buildcfg.Save(path, cfg); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if !quiet {
			fmt.Fprintf(os.Stdout, "wrote %s\n", path)
		}
	}
	return nil
}

// runCargoProbe emits build-script directives around the capability check.
// The rerun-if-changed directive names the probing logic's own source and
// goes out before probing, so an aborted probe still re-runs next build.
func runCargoProbe(w io.Writer, runner probe.Runner, rerunPath string) (bool, error) {
	if err := probe.EmitRerunIfChanged(w, rerunPath); err != nil {
		return false, err
	}
	has := probe.DetectSimpleDeclMacro(runner)
	if has {
		if err := probe.EmitCfg(w, probe.SimpleDeclMacroCfg); err != nil {
			return false, err
		}
	}
	return has, nil
}

func newProber(outDir string, reporter diag.Reporter) (*probe.Prober, error) {
	if outDir != "" {
		return probe.WithDir(outDir, reporter)
	}
	return probe.New(reporter)
}
