// Package prompt asks questions on the terminal.
//
// Choices use arrow-key navigation when stty can put the terminal in raw
// mode, and a numbered list otherwise. Both paths return the key of the
// chosen item, so callers never need to know which one ran.
//
// Example:
//
//	p := prompt.New()
//	env, err := p.Select(ctx, "Deploy to", nav.Items("stg", "Staging", "prd", "Production"))
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/simonhull/firebird-suite/plume/ansi"
	"github.com/simonhull/firebird-suite/plume/logger"
	"github.com/simonhull/firebird-suite/plume/nav"
	"github.com/simonhull/firebird-suite/plume/stty"
)

// ErrInputClosed is returned when input ends before an answer.
var ErrInputClosed = nav.ErrInputClosed

// Terminal is the terminal mode control a Prompter needs.
// *stty.Controller satisfies it.
type Terminal interface {
	nav.RawMode
	HasSupport(ctx context.Context) bool
	Output(ctx context.Context, cmd stty.Command) (string, error)
}

// Prompter asks questions on one input and output. It is not safe for
// concurrent use.
type Prompter struct {
	rawIn    io.Reader
	in       *bufio.Reader
	out      io.Writer
	renderer *ansi.Renderer
	tty      Terminal
	log      logger.Logger

	acceptKey  string
	helperText string
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithInput reads answers from r.
func WithInput(r io.Reader) Option {
	return func(p *Prompter) {
		p.rawIn = r
	}
}

// WithOutput writes questions to w.
func WithOutput(w io.Writer) Option {
	return func(p *Prompter) {
		p.out = w
	}
}

// WithRenderer sets the ANSI renderer.
func WithRenderer(r *ansi.Renderer) Option {
	return func(p *Prompter) {
		p.renderer = r
	}
}

// WithController sets the terminal mode controller.
func WithController(t Terminal) Option {
	return func(p *Prompter) {
		p.tty = t
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Prompter) {
		p.log = l
	}
}

// WithAcceptKey changes the key that confirms a navigated choice.
func WithAcceptKey(key string) Option {
	return func(p *Prompter) {
		p.acceptKey = key
	}
}

// WithHelperText changes the hint shown under navigated menus.
func WithHelperText(text string) Option {
	return func(p *Prompter) {
		p.helperText = text
	}
}

// New returns a prompter on stdin and stdout.
func New(opts ...Option) *Prompter {
	p := &Prompter{
		helperText: nav.DefaultHelperText,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.log = logger.OrDefault(p.log).WithFields(logger.F("component", "prompt"))
	if p.rawIn == nil {
		p.rawIn = os.Stdin
	}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.renderer == nil {
		p.renderer = ansi.New()
	}
	if p.tty == nil {
		p.tty = stty.New(stty.WithLogger(p.log))
	}
	p.in = bufio.NewReader(p.rawIn)
	return p
}

// Interactive reports whether choices will use arrow-key navigation.
func (p *Prompter) Interactive(ctx context.Context) bool {
	return p.tty.HasSupport(ctx) && p.renderer.IsSupported()
}

// Select asks for one of items and returns its key.
func (p *Prompter) Select(ctx context.Context, message string, items []nav.Item) (string, error) {
	if len(items) == 0 {
		return "", nav.ErrEmptySelection
	}
	if !p.Interactive(ctx) {
		p.log.Debug("select falls back to numbered list")
		return p.InputSelect(message, items)
	}

	n := p.navigator()
	if err := n.Run(ctx, message, items, p.ShowMenu); err != nil {
		return "", err
	}
	return n.Value(), nil
}

// InputSelect prints items as a numbered list and reads a number until it
// names one of them.
func (p *Prompter) InputSelect(message string, items []nav.Item) (string, error) {
	if len(items) == 0 {
		return "", nav.ErrEmptySelection
	}

	var b strings.Builder
	b.WriteString(p.renderer.Bold(fmt.Sprintf("%s (%d-%d)", message, 1, len(items))) + "\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%s %s\n", p.renderer.Blue(p.renderer.Bold(fmt.Sprintf("%d:", i+1))), item.Label)
	}
	if err := p.write(b.String()); err != nil {
		return "", err
	}

	for {
		answer, err := p.ask("Input your answer: ")
		if err != nil {
			return "", err
		}
		choice, ok := parseChoice(answer, len(items))
		if ok {
			return items[choice-1].Key, nil
		}
		p.Error(fmt.Sprintf("Please enter a number between 1 and %d.", len(items)))
	}
}

// Toggle asks a yes or no question.
func (p *Prompter) Toggle(ctx context.Context, message string) (bool, error) {
	if !p.Interactive(ctx) {
		return p.InputToggle(message)
	}
	key, err := p.Select(ctx, message, nav.Items(yesKey, "Yes", noKey, "No"))
	if err != nil {
		return false, err
	}
	return key == yesKey, nil
}

// InputToggle asks a yes or no question on a plain line.
func (p *Prompter) InputToggle(message string) (bool, error) {
	if err := p.write(p.renderer.Bold(message) + "\n"); err != nil {
		return false, err
	}
	return p.yesNo("Type 'yes' or 'no': ")
}

// Confirm asks the user to confirm before going on.
func (p *Prompter) Confirm(message string) (bool, error) {
	if err := p.write(p.renderer.Yellow(p.renderer.Bold(message)) + "\n"); err != nil {
		return false, err
	}
	return p.yesNo("Type 'yes' to continue and 'no' to abort: ")
}

// Text asks for one line, returning defaultValue when the answer is empty.
func (p *Prompter) Text(message, defaultValue string) (string, error) {
	question := p.renderer.Bold(message) + ": "
	if defaultValue != "" {
		question = p.renderer.Bold(message) + " " + p.renderer.Grey(fmt.Sprintf("(%s)", defaultValue)) + ": "
	}

	answer, err := p.ask(question)
	if err != nil {
		return "", err
	}
	if answer = strings.TrimSpace(answer); answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// Readline reads one line exactly as typed.
func (p *Prompter) Readline(message string) (string, error) {
	return p.ask(message + ": ")
}

// Lines reads lines until an empty line or the end of input.
func (p *Prompter) Lines(message string) ([]string, error) {
	if err := p.write(p.renderer.Bold(message) + " " + p.renderer.Grey("(finish with an empty line)") + "\n"); err != nil {
		return nil, err
	}

	var lines []string
	for {
		line, err := p.readLine()
		if errors.Is(err, ErrInputClosed) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			return lines, nil
		}
		lines = append(lines, line)
	}
}

// List reads a comma separated answer.
func (p *Prompter) List(message string) ([]string, error) {
	answer, err := p.ask(p.renderer.Bold(message) + " " + p.renderer.Grey("(comma separate)") + ": ")
	if err != nil {
		return nil, err
	}

	var values []string
	for _, value := range strings.Split(answer, ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}
	return values, nil
}

// Message prints text on its own line.
func (p *Prompter) Message(text string) error {
	return p.write(text + "\n")
}

// Title prints text in bold.
func (p *Prompter) Title(text string) error {
	return p.Message(p.renderer.Bold(text))
}

// Approve prints text in green.
func (p *Prompter) Approve(text string) error {
	return p.Message(p.renderer.Green(text))
}

// Status prints text in blue.
func (p *Prompter) Status(text string) error {
	return p.Message(p.renderer.Blue(text))
}

// Error prints text in red.
func (p *Prompter) Error(text string) error {
	return p.Message(p.renderer.Red(text))
}

// ShowMenu draws items with a checked box next to the one at index. It is
// the RenderFunc used by Select.
func (p *Prompter) ShowMenu(w io.Writer, index int, items []nav.Item) error {
	check, err := p.renderer.Checkbox()
	if err != nil {
		check = "x"
	}

	var b strings.Builder
	for i, item := range items {
		if i == index {
			fmt.Fprintf(&b, "[%s] %s\n", p.renderer.Blue(check), p.renderer.SelectedItem(item.Label))
			continue
		}
		fmt.Fprintf(&b, "[ ] %s\n", item.Label)
	}
	_, err = io.WriteString(w, b.String())
	return err
}

const (
	yesKey = "1"
	noKey  = "0"
)

func (p *Prompter) navigator() *nav.Navigator {
	return nav.New(p.in, p.out, p.renderer, p.tty,
		nav.WithAcceptKey(p.acceptKey),
		nav.WithHelperText(p.helperText),
		nav.WithLogger(p.log),
	)
}

func (p *Prompter) yesNo(question string) (bool, error) {
	for {
		answer, err := p.ask(question)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "yes":
			return true, nil
		case "no":
			return false, nil
		}
	}
}

func (p *Prompter) ask(question string) (string, error) {
	if err := p.write(question); err != nil {
		return "", err
	}
	return p.readLine()
}

// readLine returns one line without its terminator. A final line without
// a newline is returned as is; nothing at all is ErrInputClosed.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *Prompter) write(s string) error {
	_, err := io.WriteString(p.out, s)
	return err
}

func parseChoice(answer string, count int) (int, bool) {
	choice, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, false
	}
	return choice, choice >= 1 && choice <= count
}
