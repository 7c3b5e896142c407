// Package output prints styled status lines for the plume CLI.
//
// Status lines go to a Printer's writer, normally stderr, so that answers
// written to stdout stay machine readable. Styling uses lipgloss and is
// dropped when the writer is not a terminal or when colours are disabled.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Printer writes status lines to a single writer.
type Printer struct {
	w       io.Writer
	verbose bool

	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	warnStyle    lipgloss.Style
	infoStyle    lipgloss.Style
	stepStyle    lipgloss.Style
}

// New returns a printer for w. When plain is true no escape sequences are
// written, whatever w is.
func New(w io.Writer, plain bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if plain {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w:            w,
		successStyle: r.NewStyle().Foreground(lipgloss.Color("green")).Bold(true),
		errorStyle:   r.NewStyle().Foreground(lipgloss.Color("red")).Bold(true),
		warnStyle:    r.NewStyle().Foreground(lipgloss.Color("yellow")),
		infoStyle:    r.NewStyle().Foreground(lipgloss.Color("cyan")),
		stepStyle:    r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// SetVerbose enables or disables Verbose lines.
func (p *Printer) SetVerbose(v bool) {
	p.verbose = v
}

// Success prints a success message with 🔥 emoji and green color.
//
// Example:
//
//	out.Success("Terminal supports raw mode")
func (p *Printer) Success(msg string) {
	p.println(p.successStyle.Render("🔥 " + msg))
}

// Error prints an error message with ❌ emoji and red color.
func (p *Printer) Error(msg string) {
	p.println(p.errorStyle.Render("❌ " + msg))
}

// Warn prints a warning in yellow.
func (p *Printer) Warn(msg string) {
	p.println(p.warnStyle.Render("⚠️  " + msg))
}

// Info prints an informational message with ℹ️ emoji and cyan color.
func (p *Printer) Info(msg string) {
	p.println(p.infoStyle.Render("ℹ️  " + msg))
}

// Step prints an indented step message in gray.
//
// Example:
//
//	out.Step("stty -a exited 0")
func (p *Printer) Step(msg string) {
	p.println(p.stepStyle.Render("   " + msg))
}

// Verbose prints a debug message with 🔍 emoji only if verbose mode is enabled.
func (p *Printer) Verbose(msg string) {
	if p.verbose {
		p.println(p.stepStyle.Render("🔍 " + msg))
	}
}

func (p *Printer) println(line string) {
	_, _ = fmt.Fprintln(p.w, line)
}

var (
	stdMu sync.RWMutex
	std   = New(os.Stderr, false)
)

// SetDefault replaces the printer used by the package-level functions.
func SetDefault(p *Printer) {
	stdMu.Lock()
	defer stdMu.Unlock()
	std = p
}

// Default returns the printer used by the package-level functions.
func Default() *Printer {
	stdMu.RLock()
	defer stdMu.RUnlock()
	return std
}

// SetVerbose toggles verbose output on the default printer.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) { Default().SetVerbose(v) }

// Success prints to the default printer.
func Success(msg string) { Default().Success(msg) }

// Error prints to the default printer.
func Error(msg string) { Default().Error(msg) }

// Warn prints to the default printer.
func Warn(msg string) { Default().Warn(msg) }

// Info prints to the default printer.
func Info(msg string) { Default().Info(msg) }

// Step prints to the default printer.
func Step(msg string) { Default().Step(msg) }

// Verbose prints to the default printer.
func Verbose(msg string) { Default().Verbose(msg) }
