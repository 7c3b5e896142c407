// Package nav implements arrow-key selection over a list of items in a raw
// terminal.
package nav

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/simonhull/firebird-suite/plume/ansi"
	"github.com/simonhull/firebird-suite/plume/logger"
)

// DefaultHelperText is shown under the menu. The placeholder receives the
// capitalised name of the accept key.
const DefaultHelperText = "Use arrow keys to navigate and press (%s) to select item."

// NoValue is returned by Value when the index points at nothing.
const NoValue = ""

// helperLines is the number of rows the helper text occupies.
const helperLines = 3

// readSize covers a three byte arrow sequence and a one byte accept key.
const readSize = 3

var (
	// ErrEmptySelection is returned when Run is given no items.
	ErrEmptySelection = errors.New("nav: no items to select from")

	// ErrInputClosed is returned when input ends before a selection.
	ErrInputClosed = errors.New("nav: input closed before a selection was made")
)

// RenderFunc draws the items with index highlighted. It must write exactly
// one line per item.
type RenderFunc func(w io.Writer, index int, items []Item) error

// RawMode switches the terminal in and out of raw input.
// *stty.Controller satisfies it.
type RawMode interface {
	EnableRaw(ctx context.Context) error
	DisableRaw(ctx context.Context) error
}

// State is the navigator's position in its run loop.
type State int

const (
	StateIdle State = iota
	StateRendering
	StateAwaitingInput
	StateTerminating
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRendering:
		return "rendering"
	case StateAwaitingInput:
		return "awaiting-input"
	case StateTerminating:
		return "terminating"
	default:
		return "unknown"
	}
}

// Event is a decoded keypress.
type Event int

const (
	EventNone Event = iota
	EventUp
	EventDown
	EventAccept
)

// Navigator runs a single selection. It is not safe for concurrent use.
type Navigator struct {
	in       io.Reader
	out      io.Writer
	renderer *ansi.Renderer
	mode     RawMode
	log      logger.Logger

	acceptKey  string
	helperText string

	items []Item
	index int
	state State
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithAcceptKey replaces the Enter key as the key that ends selection.
// Matching ignores case.
func WithAcceptKey(key string) Option {
	return func(n *Navigator) {
		if key != "" {
			n.acceptKey = strings.ToLower(key)
		}
	}
}

// WithHelperText sets the helper template. An empty template hides it.
func WithHelperText(text string) Option {
	return func(n *Navigator) {
		n.helperText = text
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logger.Logger) Option {
	return func(n *Navigator) {
		n.log = l
	}
}

// New returns a navigator reading keys from in and drawing to out.
func New(in io.Reader, out io.Writer, r *ansi.Renderer, mode RawMode, opts ...Option) *Navigator {
	n := &Navigator{
		in:        in,
		out:       out,
		renderer:  r,
		mode:      mode,
		acceptKey: r.KeyEnter(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.log = logger.OrDefault(n.log).WithFields(logger.F("component", "nav"))
	return n
}

// Run shows prompt and items and blocks until the accept key is read. The
// terminal is returned to line mode on every exit path.
func (n *Navigator) Run(ctx context.Context, prompt string, items []Item, render RenderFunc) (err error) {
	if len(items) == 0 {
		return ErrEmptySelection
	}

	n.items = items
	n.index = 0

	if err := n.mode.EnableRaw(ctx); err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		n.setState(StateTerminating)
		if restoreErr := n.mode.DisableRaw(context.WithoutCancel(ctx)); restoreErr != nil && err == nil {
			err = fmt.Errorf("restore terminal: %w", restoreErr)
		}
		n.setState(StateIdle)
	}()

	n.setState(StateRendering)
	if _, err := io.WriteString(n.out, n.renderer.Bold(prompt)+"\n"); err != nil {
		return err
	}
	if err := n.draw(render); err != nil {
		return err
	}

	buf := make([]byte, readSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n.setState(StateAwaitingInput)
		count, readErr := n.in.Read(buf)
		if count == 0 && readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return ErrInputClosed
			}
			return fmt.Errorf("%w: %w", ErrInputClosed, readErr)
		}

		switch n.Decode(buf[:count]) {
		case EventUp:
			if n.index > 0 {
				n.index--
			}
		case EventDown:
			if n.index < len(n.items)-1 {
				n.index++
			}
		case EventAccept:
			n.log.Debug("selection accepted", logger.F("index", n.index), logger.F("key", n.Value()))
			return nil
		}

		n.setState(StateRendering)
		if err := n.redraw(render); err != nil {
			return err
		}
	}
}

// Decode classifies one read from the terminal.
func (n *Navigator) Decode(seq []byte) Event {
	s := string(seq)
	switch ansi.KeyName(s) {
	case ansi.KeyNameUp:
		return EventUp
	case ansi.KeyNameDown:
		return EventDown
	}
	if strings.ToLower(s) == n.acceptKey {
		return EventAccept
	}
	return EventNone
}

// Value returns the key of the highlighted item, or NoValue.
func (n *Navigator) Value() string {
	if n.index < 0 || n.index >= len(n.items) {
		return NoValue
	}
	return n.items[n.index].Key
}

// Label returns the label of the highlighted item, or "".
func (n *Navigator) Label() string {
	if n.index < 0 || n.index >= len(n.items) {
		return ""
	}
	return n.items[n.index].Label
}

// Index returns the highlighted position.
func (n *Navigator) Index() int {
	return n.index
}

// State returns where the run loop is.
func (n *Navigator) State() State {
	return n.state
}

// Height is the number of rows a frame occupies for items.
func (n *Navigator) Height(items int) int {
	if n.helperText == "" {
		return items
	}
	return items + helperLines
}

func (n *Navigator) setState(s State) {
	if n.state != s {
		n.log.Debug("state", logger.F("from", n.state), logger.F("to", s))
	}
	n.state = s
}

func (n *Navigator) draw(render RenderFunc) error {
	if err := render(n.out, n.index, n.items); err != nil {
		return err
	}
	return n.writeHelper()
}

// redraw clears the previous frame and draws the current one in its place.
func (n *Navigator) redraw(render RenderFunc) error {
	height := n.Height(len(n.items))

	up, err := n.renderer.CursorUp(height)
	if err != nil {
		return err
	}
	clearDown, err := n.renderer.ClearDown()
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(up)
	b.WriteString(strings.Repeat(clearDown, height))
	b.WriteString(up)
	if _, err := io.WriteString(n.out, b.String()); err != nil {
		return err
	}

	return n.draw(render)
}

func (n *Navigator) writeHelper() error {
	if n.helperText == "" {
		return nil
	}
	msg := strings.Replace(n.helperText, "%s", capitalize(ansi.KeyName(n.acceptKey)), 1)
	_, err := io.WriteString(n.out, n.renderer.Italic("\n"+msg)+"\n\n")
	return err
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
