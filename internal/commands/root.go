package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/plume"
	"github.com/simonhull/firebird-suite/plume/output"
)

// Persistent flag names.
const (
	flagConfig   = "config"
	flagNoANSI   = "no-ansi"
	flagVerbose  = "verbose"
	flagLogLevel = "log-level"
	flagFormat   = "format"
)

// RootCmd creates and returns the root command for the plume CLI
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plume",
		Short: "Interactive terminal prompts for shell scripts",
		Long: `Plume asks questions on the terminal and prints the answers on stdout.

Menus use arrow-key navigation when the terminal supports raw mode through
stty, and fall back to a numbered list everywhere else:
• select, toggle and confirm for choices
• text, lines, list and mask for typed answers
• doctor to see what your terminal supports

Learn more: https://github.com/simonhull/firebird-suite`,
		Version:       plume.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool(flagVerbose)
			output.SetVerbose(verbose)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String(flagConfig, "", "Config file (default is ./plume.yml or ~/.config/plume/plume.yml)")
	flags.Bool(flagNoANSI, false, "Disable colours and cursor control")
	flags.BoolP(flagVerbose, "v", false, "Enable verbose output for debugging")
	flags.String(flagLogLevel, "", "Diagnostic log level on stderr (debug, info, warn, error, silent)")
	flags.String(flagFormat, "", "Answer format: text or yaml")

	return cmd
}

// AddCommands registers every plume subcommand on root.
func AddCommands(root *cobra.Command) {
	root.AddCommand(SelectCmd())
	root.AddCommand(ToggleCmd())
	root.AddCommand(ConfirmCmd())
	root.AddCommand(TextCmd())
	root.AddCommand(LinesCmd())
	root.AddCommand(ListCmd())
	root.AddCommand(MaskCmd())
	root.AddCommand(DoctorCmd())
	root.AddCommand(DemoCmd())
}
