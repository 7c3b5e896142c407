package ansi

import (
	"errors"
	"os"
	"runtime"
	"strings"
	"sync"
)

var (
	// ErrUnknownStyle is returned when a style name has no transform.
	ErrUnknownStyle = errors.New("unknown style")

	// ErrUnsupported is returned by control primitives on terminals
	// without ANSI support.
	ErrUnsupported = errors.New("ansi not supported by terminal")
)

// Renderer translates style and cursor requests into escape sequences.
// It is safe for concurrent use.
type Renderer struct {
	mu       sync.Mutex
	goos     string
	getenv   func(string) string
	disabled bool
	hasAnsi  *bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithGOOS overrides the operating system used for detection.
func WithGOOS(goos string) Option {
	return func(r *Renderer) {
		r.goos = goos
	}
}

// WithEnv overrides the environment lookup used for detection.
func WithEnv(getenv func(string) string) Option {
	return func(r *Renderer) {
		if getenv != nil {
			r.getenv = getenv
		}
	}
}

// WithDisabled forces ANSI off regardless of the terminal.
func WithDisabled(disabled bool) Option {
	return func(r *Renderer) {
		r.disabled = disabled
	}
}

// New creates a Renderer for the current process.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		goos:   runtime.GOOS,
		getenv: os.Getenv,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Disable turns the explicit ANSI override on or off.
func (r *Renderer) Disable(disabled bool) *Renderer {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disabled = disabled
	return r
}

// Reset drops the cached capability so the next IsSupported call probes again.
func (r *Renderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hasAnsi = nil
}

// IsSupported reports whether the terminal interprets ANSI escape sequences.
// Windows hosts are assumed not to; elsewhere TERM must mention xterm.
// Not foolproof, but stable for the lifetime of the Renderer.
func (r *Renderer) IsSupported() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.disabled {
		return false
	}
	if r.hasAnsi == nil {
		supported := detect(r.goos, r.getenv)
		r.hasAnsi = &supported
	}
	return *r.hasAnsi
}

func detect(goos string, getenv func(string) string) bool {
	if strings.HasPrefix(strings.ToLower(goos), "win") {
		return false
	}
	term := getenv("TERM")
	return term != "" && strings.Contains(term, "xterm")
}
