// Package exec runs the external processes plume depends on.
//
// # Overview
//
// Terminal mode switching is done with stty, which acts on whatever
// terminal is attached to its standard input. The Executor therefore lets
// callers pass the terminal through as Stdin, and runs short shell
// fragments ("stty -echo;stty cbreak") synchronously so the exit status is
// meaningful to the caller.
//
// # Usage
//
//	executor := exec.NewExecutor(&exec.Options{Stdin: os.Stdin})
//
//	// Run a fragment through sh -c
//	err := executor.Shell(ctx, "stty -echo;stty cbreak")
//
//	// Capture what a fragment prints
//	secret, err := executor.ShellOutput(ctx, `stty -echo;IFS= read -r input;stty echo;printf '%s\n' "$input"`)
//
// # Spinner
//
// RunWithSpinner shows a bubbles spinner on stderr while a command runs.
// The spinner program never reads from the terminal, so it cannot steal
// keystrokes from a prompt that follows it.
//
// # Testing
//
// The command constructor is swappable. Tests re-exec the test binary as a
// fake stty (see TestHelperProcess in exec_test.go).
package exec
