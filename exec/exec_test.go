package exec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCommand re-executes the test binary as the named command
func mockCommand(ctx context.Context, name string, args ...string) *exec.Cmd {
	cs := []string{"-test.run=TestHelperProcess", "--", name}
	cs = append(cs, args...)
	cmd := exec.CommandContext(ctx, os.Args[0], cs...)
	cmd.Env = []string{"GO_WANT_HELPER_PROCESS=1"}
	return cmd
}

func newTestExecutor(stdin string) (*Executor, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	e := NewExecutor(&Options{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	})
	e.commandFunc = mockCommand
	return e, &stdout, &stderr
}

// TestHelperProcess is the fake process behind mockCommand
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}

	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "no command specified\n")
		os.Exit(1)
	}

	switch args[0] {
	case "echo":
		if len(args) > 1 {
			fmt.Println(strings.Join(args[1:], " "))
		}
		os.Exit(0)
	case "cat":
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(os.Stdin)
		fmt.Print(buf.String())
		os.Exit(0)
	case "sh":
		// sh -c <script>: report the fragment so callers can assert on it
		if len(args) < 3 || args[1] != "-c" {
			os.Exit(2)
		}
		script := args[2]
		if strings.Contains(script, "exit 3") {
			os.Exit(3)
		}
		fmt.Println(script)
		os.Exit(0)
	case "sleep":
		time.Sleep(10 * time.Second)
		os.Exit(0)
	case "error":
		fmt.Fprintf(os.Stderr, "error occurred\n")
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		os.Exit(1)
	}
}

func TestExecutor_Run(t *testing.T) {
	e, stdout, _ := newTestExecutor("")

	err := e.Run(context.Background(), "echo", "hello", "world")
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", stdout.String())
}

func TestExecutor_RunPassesStdin(t *testing.T) {
	e, stdout, _ := newTestExecutor("from the terminal")

	require.NoError(t, e.Run(context.Background(), "cat"))
	assert.Equal(t, "from the terminal", stdout.String())
}

func TestExecutor_RunError(t *testing.T) {
	e, _, stderr := newTestExecutor("")

	err := e.Run(context.Background(), "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error failed")
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, stderr.String(), "error occurred")
}

func TestExecutor_RunCancelled(t *testing.T) {
	e, _, _ := newTestExecutor("")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := e.Run(ctx, "sleep")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "sleep cancelled")
}

func TestExecutor_Output(t *testing.T) {
	e, stdout, _ := newTestExecutor("")

	out, err := e.Output(context.Background(), "echo", "captured")
	require.NoError(t, err)
	assert.Equal(t, "captured\n", out)
	assert.Empty(t, stdout.String(), "captured output must not reach stdout")
}

func TestExecutor_Shell(t *testing.T) {
	e, stdout, _ := newTestExecutor("")

	require.NoError(t, e.Shell(context.Background(), "stty -echo;stty cbreak"))
	assert.Equal(t, "stty -echo;stty cbreak\n", stdout.String())

	out, err := e.ShellOutput(context.Background(), "stty -a")
	require.NoError(t, err)
	assert.Equal(t, "stty -a\n", out)
}

func TestExecutor_ShellExitCode(t *testing.T) {
	e, _, _ := newTestExecutor("")

	err := e.Shell(context.Background(), "exit 3")
	require.Error(t, err)
	assert.Equal(t, 3, ExitCode(err))
}

func TestExecutor_CommandNotFound(t *testing.T) {
	e := NewExecutor(&Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})

	err := e.Run(context.Background(), "plume-command-that-does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Equal(t, -1, ExitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, -1, ExitCode(fmt.Errorf("plain")))
}

func TestString(t *testing.T) {
	assert.Equal(t, "stty -echo", String("stty", "-echo"))
	assert.Equal(t, "stty", String("stty"))
}

func TestRunWithSpinner(t *testing.T) {
	e, stdout, stderr := newTestExecutor("")

	err := e.RunWithSpinner(context.Background(), "Probing terminal", "echo", "quiet")
	require.NoError(t, err)
	assert.Empty(t, stdout.String(), "command output is discarded while spinning")
	assert.Contains(t, stderr.String(), "Probing terminal")
}

func TestRunWithSpinnerError(t *testing.T) {
	e, _, _ := newTestExecutor("")

	err := e.RunWithSpinner(context.Background(), "Failing", "error")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
}

func TestSpin(t *testing.T) {
	e, _, stderr := newTestExecutor("")

	calls := 0
	err := e.Spin(context.Background(), "Reading report", func(ctx context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, stderr.String(), "Reading report")

	boom := fmt.Errorf("boom")
	err = e.Spin(context.Background(), "Failing", func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestSpinnerModel_View(t *testing.T) {
	m := newSpinnerModel("Working")
	assert.Contains(t, m.View(), "Working...")

	_, cmd := m.Update(spinnerDoneMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, "✅ Working\n", m.View())

	m = newSpinnerModel("Working")
	m.Update(spinnerDoneMsg{err: fmt.Errorf("boom")})
	assert.Equal(t, "❌ Working\n", m.View())
}

func TestPrefixWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewPrefixWriter(&buf, "  | ")

	n, err := w.Write([]byte("one\ntw"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "  | one\n", buf.String())

	_, err = w.Write([]byte("o\nthree"))
	require.NoError(t, err)
	assert.Equal(t, "  | one\n  | two\n", buf.String())

	require.NoError(t, w.Flush())
	assert.Equal(t, "  | one\n  | two\n  | three\n", buf.String())
	require.NoError(t, w.Flush())
}
