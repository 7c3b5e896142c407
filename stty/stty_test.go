package stty

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/plume/exec"
)

// fakeRunner records every fragment instead of running it
type fakeRunner struct {
	mu      sync.Mutex
	scripts []string
	fail    map[string]error
	output  map[string]string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{fail: map[string]error{}, output: map[string]string{}}
}

func (f *fakeRunner) Shell(_ context.Context, script string) error {
	_, err := f.ShellOutput(context.Background(), script)
	return err
}

func (f *fakeRunner) ShellOutput(_ context.Context, script string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts = append(f.scripts, script)
	return f.output[script], f.fail[script]
}

func (f *fakeRunner) Scripts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.scripts...)
}

func TestCommand_Builders(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"empty", NewCommand(), ""},
		{"echo off", NewCommand().ToggleEcho(false), "stty -echo"},
		{"echo on", NewCommand().ToggleEcho(true), "stty echo"},
		{"cbreak", NewCommand().ToggleCharBreak(true), "stty cbreak"},
		{"raw enable", enableRaw, "stty -echo;stty cbreak"},
		{"raw disable", disableRaw, "stty echo;stty -cbreak"},
		{"read", NewCommand().ReadInput(), "IFS= read -r input"},
		{"toggle arbitrary", NewCommand().Toggle(false, "icanon"), "stty -icanon"},
		{"mask", NewCommand().MaskInput(), `stty -echo;IFS= read -r input;stty echo;printf '%s\n' "$input"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cmd.String())
			assert.Equal(t, tt.want == "", tt.cmd.Empty())
		})
	}
}

func TestCommand_IsImmutable(t *testing.T) {
	base := NewCommand().ToggleEcho(false)
	a := base.ToggleCharBreak(true)
	b := base.ReadInput()

	assert.Equal(t, "stty -echo", base.String())
	assert.Equal(t, "stty -echo;stty cbreak", a.String())
	assert.Equal(t, "stty -echo;IFS= read -r input", b.String())
}

func TestCommand_MaskInputRoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX sh")
	}

	secrets := []string{
		`pa\ss`,
		`a\b`,
		"  x  y",
		"  two  spaces  ",
		"*",
		"$HOME",
		"-n",
	}

	for _, secret := range secrets {
		t.Run(secret, func(t *testing.T) {
			// a file for an unquoted * to expand to
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "decoy.txt"), nil, 0o644))

			// stty fails on a pipe; the read and printf must still see the line
			e := exec.NewExecutor(&exec.Options{
				Stdin:  strings.NewReader(secret + "\n"),
				Stderr: io.Discard,
				Dir:    dir,
			})
			c := New(WithGOOS("linux"), WithRunner(e))

			out, err := c.Output(context.Background(), NewCommand().MaskInput())
			require.NoError(t, err)
			assert.Equal(t, secret+"\n", out)
		})
	}
}

func TestController_IsUnix(t *testing.T) {
	tests := []struct {
		goos string
		want bool
	}{
		{"linux", true},
		{"darwin", true},
		{"Linux", true},
		{"GNU/Unix", true},
		{"windows", false},
		{"plan9", false},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			c := New(WithGOOS(tt.goos), WithRunner(newFakeRunner()))
			assert.Equal(t, tt.want, c.IsUnix())
		})
	}
}

func TestController_HasSupport(t *testing.T) {
	t.Run("unix with working stty", func(t *testing.T) {
		r := newFakeRunner()
		c := New(WithGOOS("linux"), WithRunner(r))
		assert.True(t, c.HasSupport(context.Background()))
		assert.Equal(t, []string{"stty -a"}, r.Scripts())
	})

	t.Run("stty exits non-zero", func(t *testing.T) {
		r := newFakeRunner()
		r.fail["stty -a"] = errors.New("exit status 1")
		c := New(WithGOOS("linux"), WithRunner(r))
		assert.False(t, c.HasSupport(context.Background()))
	})

	t.Run("non-unix never probes", func(t *testing.T) {
		r := newFakeRunner()
		c := New(WithGOOS("windows"), WithRunner(r))
		assert.False(t, c.HasSupport(context.Background()))
		assert.Empty(t, r.Scripts())
	})
}

func TestController_HasSupportIsMemoized(t *testing.T) {
	r := newFakeRunner()
	c := New(WithGOOS("linux"), WithRunner(r))

	require.True(t, c.HasSupport(context.Background()))
	r.fail["stty -a"] = errors.New("gone")
	assert.True(t, c.HasSupport(context.Background()))
	assert.Len(t, r.Scripts(), 1)

	c.Reset()
	assert.False(t, c.HasSupport(context.Background()))
	assert.Len(t, r.Scripts(), 2)
}

func TestController_Probe(t *testing.T) {
	r := newFakeRunner()
	r.output["stty -a"] = "speed 38400 baud; rows 24; columns 80;"
	c := New(WithGOOS("linux"), WithRunner(r))

	out, err := c.Probe(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "rows 24")

	_, err = New(WithGOOS("windows"), WithRunner(r)).Probe(context.Background())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestController_ReportSettlesSupport(t *testing.T) {
	r := newFakeRunner()
	r.output["stty -a"] = "speed 38400 baud;"
	c := New(WithGOOS("linux"), WithRunner(r))

	_, err := c.Probe(context.Background())
	require.NoError(t, err)
	assert.True(t, c.HasSupport(context.Background()))
	assert.Equal(t, []string{"stty -a"}, r.Scripts(), "stty -a must run once for a report and a support check")

	failing := newFakeRunner()
	failing.fail["stty -a"] = errors.New("exit status 1")
	c = New(WithGOOS("linux"), WithRunner(failing))

	_, err = c.Probe(context.Background())
	require.Error(t, err)
	assert.False(t, c.HasSupport(context.Background()))
	assert.Len(t, failing.Scripts(), 1)
}

func TestController_RunAndOutput(t *testing.T) {
	r := newFakeRunner()
	r.output[NewCommand().MaskInput().String()] = "hunter2\n"
	c := New(WithGOOS("linux"), WithRunner(r))

	require.NoError(t, c.Run(context.Background(), NewCommand()))
	assert.Empty(t, r.Scripts(), "empty commands are not executed")

	out, err := c.Output(context.Background(), NewCommand().MaskInput())
	require.NoError(t, err)
	assert.Equal(t, "hunter2\n", out)
}

// stubSignals swaps the signal hooks and returns the registered channel.
func stubSignals(t *testing.T) (func() chan<- os.Signal, <-chan int) {
	t.Helper()

	var mu sync.Mutex
	var registered chan<- os.Signal
	exited := make(chan int, 1)

	origNotify, origStop, origExit := notify, stopNotify, exit
	notify = func(c chan<- os.Signal, _ ...os.Signal) {
		mu.Lock()
		defer mu.Unlock()
		registered = c
	}
	stopNotify = func(chan<- os.Signal) {}
	exit = func(code int) { exited <- code }
	t.Cleanup(func() {
		notify, stopNotify, exit = origNotify, origStop, origExit
	})

	return func() chan<- os.Signal {
		mu.Lock()
		defer mu.Unlock()
		return registered
	}, exited
}

func TestSession_OpenClose(t *testing.T) {
	stubSignals(t)

	r := newFakeRunner()
	c := New(WithGOOS("linux"), WithRunner(r))

	s, err := Open(context.Background(), c)
	require.NoError(t, err)
	require.NoError(t, s.Close(context.Background()))
	require.NoError(t, s.Close(context.Background()))

	assert.Equal(t, []string{"stty -a", "stty -echo;stty cbreak", "stty echo;stty -cbreak"}, r.Scripts())
}

func TestSession_OpenUnsupported(t *testing.T) {
	c := New(WithGOOS("windows"), WithRunner(newFakeRunner()))

	_, err := Open(context.Background(), c)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestSession_OpenFailureRestores(t *testing.T) {
	stubSignals(t)

	r := newFakeRunner()
	r.fail[enableRaw.String()] = errors.New("exit status 1")
	c := New(WithGOOS("linux"), WithRunner(r))

	_, err := Open(context.Background(), c)
	require.Error(t, err)
	assert.Equal(t, disableRaw.String(), r.Scripts()[len(r.Scripts())-1])
}

func TestSession_InterruptRestores(t *testing.T) {
	registered, exited := stubSignals(t)

	r := newFakeRunner()
	c := New(WithGOOS("linux"), WithRunner(r))

	s, err := Open(context.Background(), c)
	require.NoError(t, err)

	registered() <- syscall.SIGINT

	select {
	case code := <-exited:
		assert.Equal(t, ExitInterrupted, code)
	case <-time.After(time.Second):
		t.Fatal("interrupt handler did not exit")
	}
	assert.Equal(t, disableRaw.String(), r.Scripts()[len(r.Scripts())-1])

	// the terminal is restored only once
	require.NoError(t, s.Close(context.Background()))
	assert.Len(t, r.Scripts(), 3)
}

func TestController_EnableDisableRaw(t *testing.T) {
	stubSignals(t)

	r := newFakeRunner()
	c := New(WithGOOS("linux"), WithRunner(r))

	require.NoError(t, c.EnableRaw(context.Background()))
	require.NoError(t, c.EnableRaw(context.Background()))
	require.NoError(t, c.DisableRaw(context.Background()))

	assert.Equal(t, []string{"stty -a", "stty -echo;stty cbreak", "stty echo;stty -cbreak"}, r.Scripts())
}
