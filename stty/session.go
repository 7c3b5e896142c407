package stty

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/simonhull/firebird-suite/plume/logger"
)

// ExitInterrupted is the status used when an interrupt ends a raw session.
const ExitInterrupted = 130

// Hooks for tests.
var (
	notify     = signal.Notify
	stopNotify = signal.Stop
	exit       = os.Exit
)

// Session holds the terminal in raw mode. It is owned by whoever opened it
// and must be closed on every exit path.
type Session struct {
	ctrl    *Controller
	signals chan os.Signal
	done    chan struct{}
	once    sync.Once
	err     error
}

// Open switches the terminal to raw mode and installs an interrupt
// handler that restores it before the process exits.
func Open(ctx context.Context, ctrl *Controller) (*Session, error) {
	if !ctrl.HasSupport(ctx) {
		return nil, ErrUnsupported
	}
	if err := ctrl.Run(ctx, enableRaw); err != nil {
		// A half-applied fragment can leave echo off.
		_ = ctrl.Run(context.WithoutCancel(ctx), disableRaw)
		return nil, err
	}

	s := &Session{
		ctrl:    ctrl,
		signals: make(chan os.Signal, 1),
		done:    make(chan struct{}),
	}
	notify(s.signals, os.Interrupt, syscall.SIGTERM)
	go s.watch()

	return s, nil
}

func (s *Session) watch() {
	select {
	case sig := <-s.signals:
		s.ctrl.log.Debug("interrupted in raw mode, restoring terminal", logger.F("signal", sig))
		_ = s.restore(context.Background())
		exit(ExitInterrupted)
	case <-s.done:
	}
}

func (s *Session) restore(ctx context.Context) error {
	s.once.Do(func() {
		stopNotify(s.signals)
		close(s.done)
		s.err = s.ctrl.Run(ctx, disableRaw)
	})
	return s.err
}

// Close restores the terminal. Only the first call has an effect.
func (s *Session) Close(ctx context.Context) error {
	return s.restore(context.WithoutCancel(ctx))
}
