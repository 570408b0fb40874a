package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"macrovis/internal/diag"
	"macrovis/internal/source"
)

// Pretty renders diagnostics in a human-readable form, one block per
// diagnostic: a location header, the offending source line, a caret
// underline sized to the span, and the notes. Call bag.Sort() first for
// deterministic order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeader(w, fs, d.Primary, d.Severity.String(), severityColor(d.Severity), d.Code.ID(), d.Message, opts)
		writeContext(w, fs, d.Primary, opts)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				if n.Span.Empty() {
					fmt.Fprintf(w, "  note: %s\n", n.Msg)
					continue
				}
				writeHeader(w, fs, n.Span, "note", color.New(color.FgCyan), "", n.Msg, opts)
				writeContext(w, fs, n.Span, opts)
			}
		}
	}
}

func writeHeader(w io.Writer, fs *source.FileSet, span source.Span, label string, c *color.Color, code, msg string, opts PrettyOpts) {
	start, _ := fs.Resolve(span)
	path := displayPath(fs.Get(span.File).Path, opts.PathMode)
	if opts.Color {
		label = c.Sprint(label)
	}
	if code != "" {
		fmt.Fprintf(w, "%s:%d:%d: %s [%s]: %s\n", path, start.Line, start.Col, label, code, msg)
		return
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path, start.Line, start.Col, label, msg)
}

// writeContext prints the source line the span starts on and underlines the
// spanned portion. Spans past the end of the line (EOF diagnostics) get a
// single caret after the last column.
func writeContext(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	start, end := fs.Resolve(span)
	line := fs.Get(span.File).GetLine(start.Line)
	if line == "" && start.Col > 1 {
		return
	}

	from := int(start.Col) - 1
	if from > len(line) {
		from = len(line)
	}
	to := len(line)
	if end.Line == start.Line && int(end.Col)-1 < to {
		to = int(end.Col) - 1
	}
	if to < from {
		to = from
	}

	pad := strings.Repeat(" ", runewidth.StringWidth(line[:from]))
	width := runewidth.StringWidth(line[from:to])
	if width < 1 {
		width = 1
	}
	underline := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		underline = color.New(color.FgGreen, color.Bold).Sprint(underline)
	}
	fmt.Fprintf(w, "  %s\n  %s%s\n", line, pad, underline)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

func displayPath(path string, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	case PathModeBasename:
		return filepath.Base(path)
	default:
		return path
	}
}
