package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/firebird-suite/plume/ansi"
	"github.com/simonhull/firebird-suite/plume/exec"
	"github.com/simonhull/firebird-suite/plume/internal/config"
	"github.com/simonhull/firebird-suite/plume/logger"
	"github.com/simonhull/firebird-suite/plume/output"
	"github.com/simonhull/firebird-suite/plume/prompt"
	"github.com/simonhull/firebird-suite/plume/stty"
)

// session is everything one command invocation needs, built from the
// config file overlaid with flags.
type session struct {
	cfg      *config.Config
	log      logger.Logger
	out      *output.Printer
	renderer *ansi.Renderer
	prompter *prompt.Prompter

	// ctrl is nil when input is not a terminal.
	ctrl     *stty.Controller
	executor *exec.Executor

	stdout io.Writer
}

func newSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString(flagConfig)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if noANSI, _ := flags.GetBool(flagNoANSI); noANSI {
		cfg.ANSI = false
	}
	if flags.Changed(flagLogLevel) {
		raw, _ := flags.GetString(flagLogLevel)
		if cfg.LogLevel, err = logger.ParseLevel(raw); err != nil {
			return nil, err
		}
	}
	if flags.Changed(flagFormat) {
		cfg.Format, _ = flags.GetString(flagFormat)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stderr := cmd.ErrOrStderr()
	log := logger.NewLogger(cfg.LogLevel, stderr)
	logger.SetDefault(log)

	printer := output.New(stderr, !cfg.ANSI)
	verbose, _ := flags.GetBool(flagVerbose)
	printer.SetVerbose(verbose)

	s := &session{
		cfg:      cfg,
		log:      log,
		out:      printer,
		renderer: ansi.New(ansi.WithDisabled(!cfg.ANSI)),
		stdout:   cmd.OutOrStdout(),
	}

	in := cmd.InOrStdin()
	s.executor = exec.NewExecutor(&exec.Options{Stdin: in, Stderr: io.Discard})

	var tty prompt.Terminal = lineTerminal{}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		s.ctrl = stty.New(stty.WithRunner(s.executor), stty.WithLogger(log))
		tty = s.ctrl
	}
	log.Debug("session ready",
		logger.F("config", cfg.File),
		logger.F("ansi", s.renderer.IsSupported()),
		logger.F("terminal", s.ctrl != nil))

	s.prompter = prompt.New(
		prompt.WithInput(in),
		prompt.WithOutput(stderr),
		prompt.WithRenderer(s.renderer),
		prompt.WithController(tty),
		prompt.WithLogger(log),
		prompt.WithAcceptKey(cfg.AcceptKey),
		prompt.WithHelperText(cfg.HelperText),
	)
	return s, nil
}

// answer is the YAML shape of a printed answer.
type answer struct {
	Question string `yaml:"question"`
	Answer   any    `yaml:"answer"`
}

// emit prints value on stdout in the configured format.
func (s *session) emit(question string, value any) error {
	if s.cfg.Format == config.FormatYAML {
		data, err := yaml.Marshal(answer{Question: question, Answer: value})
		if err != nil {
			return fmt.Errorf("failed to encode answer: %w", err)
		}
		_, err = s.stdout.Write(data)
		return err
	}

	switch v := value.(type) {
	case bool:
		if v {
			_, err := fmt.Fprintln(s.stdout, "yes")
			return err
		}
		_, err := fmt.Fprintln(s.stdout, "no")
		return err
	case []string:
		for _, line := range v {
			if _, err := fmt.Fprintln(s.stdout, line); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintln(s.stdout, v)
		return err
	}
}

// lineTerminal stands in for stty when input is not a terminal, so every
// prompt takes its line-based path.
type lineTerminal struct{}

func (lineTerminal) HasSupport(context.Context) bool { return false }

func (lineTerminal) EnableRaw(context.Context) error { return stty.ErrUnsupported }

func (lineTerminal) DisableRaw(context.Context) error { return nil }

func (lineTerminal) Output(context.Context, stty.Command) (string, error) {
	return "", stty.ErrUnsupported
}
