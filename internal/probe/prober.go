package probe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync/atomic"

	"macrovis/internal/diag"
	"macrovis/internal/source"
)

// Prober runs capability checks against the host Rust compiler.
//
// Construct it with New (build-script mode, out dir from OUT_DIR) or
// WithDir. Construction fails on a misconfigured environment; an absent
// capability does not. Environment problems are additionally reported
// through the reporter with PRB codes; probe spans are always zero, there
// is no source file behind them.
type Prober struct {
	rustc    string
	target   string
	outDir   string
	flags    []string
	noStd    bool
	reporter diag.Reporter
}

// probeSeq keeps scratch crate names distinct across concurrent checks.
var probeSeq atomic.Uint64

// New builds a Prober that writes scratch artifacts to $OUT_DIR.
func New(reporter diag.Reporter) (*Prober, error) {
	dir, ok := os.LookupEnv("OUT_DIR")
	if !ok {
		return nil, errors.New("OUT_DIR is not set; run under cargo or pass an explicit out dir")
	}
	return WithDir(dir, reporter)
}

// WithDir builds a Prober that writes scratch artifacts to dir.
// The compiler comes from $RUSTC (default "rustc"), the cross target from
// $TARGET, and the flags from $CARGO_ENCODED_RUSTFLAGS.
func WithDir(dir string, reporter diag.Reporter) (*Prober, error) {
	flags, err := EncodedRustflags()
	if err != nil {
		diag.ReportError(reporter, diag.PrbMissingFlagsEnv, source.Span{}, err.Error()).Emit()
		return nil, err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("out dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("out dir %s is not a directory", dir)
	}
	if info.Mode().Perm()&0o200 == 0 {
		return nil, fmt.Errorf("out dir %s is not writable", dir)
	}
	rustc := os.Getenv("RUSTC")
	if rustc == "" {
		rustc = "rustc"
	}
	p := &Prober{
		rustc:    rustc,
		target:   os.Getenv("TARGET"),
		outDir:   dir,
		flags:    flags,
		reporter: reporter,
	}
	p.selfCheck()
	return p, nil
}

// selfCheck compiles an empty crate to confirm the prober works at all.
// Targets without std need #![no_std] on every snippet; if even that fails,
// later checks will all report absent, which is the safe answer.
func (p *Prober) selfCheck() {
	if ok, err := p.Check(nil); err == nil && ok {
		return
	}
	p.noStd = true
	if ok, err := p.Check(nil); err == nil && ok {
		return
	}
	p.noStd = false
	diag.ReportWarning(p.reporter, diag.PrbNoStdFallback, source.Span{},
		"probing the compiler failed even for an empty crate; all capability checks will report absent").Emit()
}

// Rustc reports the compiler binary the prober invokes.
func (p *Prober) Rustc() string { return p.rustc }

// Target reports the cross-compilation target, or "" for the host.
func (p *Prober) Target() string { return p.target }

// Flags reports the forwarded compiler flags.
func (p *Prober) Flags() []string { return p.flags }

// Check compiles snippet as a standalone library crate and reports whether
// the compiler accepted it. A nonzero exit is a normal "no"; only a failure
// to run the compiler at all is an error.
func (p *Prober) Check(snippet []byte) (bool, error) {
	id := probeSeq.Add(1)
	args := []string{
		"--crate-name", fmt.Sprintf("probe%d", id),
		"--crate-type=lib",
		"--out-dir", p.outDir,
		"--emit=llvm-ir",
	}
	if p.target != "" {
		args = append(args, "--target", p.target)
	}
	args = append(args, p.flags...)
	args = append(args, "-")

	var stdin bytes.Buffer
	if p.noStd {
		stdin.WriteString("#![no_std]\n")
	}
	stdin.Write(snippet)

	cmd := exec.Command(p.rustc, args...)
	cmd.Stdin = &stdin
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, fmt.Errorf("failed to run %s: %w", p.rustc, err)
	}
	return true, nil
}
