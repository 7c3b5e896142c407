package stty

import (
	"context"
	"errors"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/simonhull/firebird-suite/plume/exec"
	"github.com/simonhull/firebird-suite/plume/logger"
)

// ErrUnsupported is returned when raw mode is requested on a terminal
// without stty support. Callers are expected to check HasSupport first and
// use a line-based fallback.
var ErrUnsupported = errors.New("stty: terminal mode control unsupported")

// Runner executes shell fragments with the terminal attached.
// *exec.Executor satisfies it.
type Runner interface {
	Shell(ctx context.Context, script string) error
	ShellOutput(ctx context.Context, script string) (string, error)
}

// Controller probes for stty and toggles terminal modes through it.
type Controller struct {
	runner Runner
	goos   string
	log    logger.Logger

	mu      sync.Mutex
	support *bool
	session *Session
}

// Option configures a Controller.
type Option func(*Controller)

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(c *Controller) {
		c.runner = r
	}
}

// WithGOOS overrides the operating system name used by IsUnix.
func WithGOOS(goos string) Option {
	return func(c *Controller) {
		c.goos = goos
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// New returns a controller acting on the process's standard input.
func New(opts ...Option) *Controller {
	c := &Controller{
		goos: runtime.GOOS,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.runner == nil {
		c.runner = exec.NewExecutor(&exec.Options{
			Stdin:  os.Stdin,
			Stdout: os.Stdout,
			Stderr: io.Discard,
		})
	}
	c.log = logger.OrDefault(c.log).WithFields(logger.F("component", "stty"))
	return c
}

// IsUnix reports whether the host looks like a Unix system.
func (c *Controller) IsUnix() bool {
	name := strings.ToLower(c.goos)
	for _, unix := range []string{"linux", "unix", "darwin"} {
		if strings.Contains(name, unix) {
			return true
		}
	}
	return false
}

// HasSupport reports whether stty can drive the attached terminal. The
// verdict of the first probe, from here or from Probe, is kept until Reset.
func (c *Controller) HasSupport(ctx context.Context) bool {
	c.mu.Lock()
	known := c.support
	c.mu.Unlock()
	if known != nil {
		return *known
	}

	_, err := c.Probe(ctx)
	return err == nil
}

// Reset forgets the probe result.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.support = nil
}

// Probe runs "stty -a" and returns its report. The outcome also settles
// HasSupport, so a caller that wants both runs stty once.
func (c *Controller) Probe(ctx context.Context) (string, error) {
	if !c.IsUnix() {
		c.remember(false)
		return "", ErrUnsupported
	}

	report, err := c.runner.ShellOutput(ctx, "stty -a")
	if err != nil {
		c.log.Debug("stty probe failed", logger.F("error", err))
	}
	c.remember(err == nil)
	return report, err
}

func (c *Controller) remember(supported bool) {
	c.log.Debug("stty probe", logger.F("supported", supported), logger.F("goos", c.goos))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.support = &supported
}

// Run executes cmd through sh -c with the terminal as stdin.
func (c *Controller) Run(ctx context.Context, cmd Command) error {
	if cmd.Empty() {
		return nil
	}
	c.log.Debug("stty run", logger.F("script", cmd.String()))
	return c.runner.Shell(ctx, cmd.String())
}

// Output executes cmd and returns what it printed.
func (c *Controller) Output(ctx context.Context, cmd Command) (string, error) {
	c.log.Debug("stty output", logger.F("script", cmd.String()))
	return c.runner.ShellOutput(ctx, cmd.String())
}

// EnableRaw turns echo off and cbreak on. The terminal stays guarded by an
// interrupt handler until DisableRaw. Calling it twice is a no-op.
func (c *Controller) EnableRaw(ctx context.Context) error {
	c.mu.Lock()
	active := c.session != nil
	c.mu.Unlock()
	if active {
		return nil
	}

	s, err := Open(ctx, c)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	return nil
}

// DisableRaw restores echo and line buffering.
func (c *Controller) DisableRaw(ctx context.Context) error {
	c.mu.Lock()
	s := c.session
	c.session = nil
	c.mu.Unlock()

	if s == nil {
		return c.Run(ctx, disableRaw)
	}
	return s.Close(ctx)
}
