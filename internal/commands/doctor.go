package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/plume/exec"
)

// DoctorCmd creates the doctor command.
func DoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Report what this terminal supports",
		Long: `Checks ANSI support and whether stty can switch the terminal to raw mode.

Without raw mode every menu falls back to a numbered list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			return runDoctor(cmd, s)
		},
	}
}

func runDoctor(cmd *cobra.Command, s *session) error {
	ctx := cmd.Context()
	stderr := cmd.ErrOrStderr()

	s.out.Info(fmt.Sprintf("plume %s on %s", cmd.Root().Version, runtime.GOOS))
	s.out.Step("TERM=" + os.Getenv("TERM"))
	if s.cfg.File != "" {
		s.out.Step("config " + s.cfg.File)
	}

	if s.renderer.IsSupported() {
		s.out.Success("ANSI styling available " + s.renderer.Bold("bold") + " " + s.renderer.Blue("blue"))
	} else {
		s.out.Warn("ANSI styling disabled, prompts print plain text")
	}

	if s.ctrl == nil {
		s.out.Warn("Input is not a terminal, menus use numbered lists")
		return nil
	}

	var report string
	spinner := exec.NewExecutor(&exec.Options{Stdin: cmd.InOrStdin(), Stderr: stderr})
	err := spinner.Spin(ctx, "Probing stty", func(ctx context.Context) error {
		var err error
		report, err = s.ctrl.Probe(ctx)
		return err
	})
	if err != nil {
		s.out.Verbose(err.Error())
		s.out.Error("stty cannot drive this terminal, menus use numbered lists")
		return nil
	}
	s.out.Success("Raw mode available, menus use arrow keys")

	return writeIndented(stderr, report)
}

func writeIndented(w io.Writer, text string) error {
	pw := exec.NewPrefixWriter(w, "   │ ")
	if _, err := io.WriteString(pw, text); err != nil {
		return err
	}
	return pw.Flush()
}
