package prompt

import (
	"context"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/simonhull/firebird-suite/plume/logger"
	"github.com/simonhull/firebird-suite/plume/stty"
)

// Mask reads a secret without echoing it. stty is used when available,
// then the terminal's own no-echo mode. On input that is not a terminal
// the answer is read as a plain line.
func (p *Prompter) Mask(ctx context.Context, message string) (string, error) {
	if err := p.write(message + " (masked input): "); err != nil {
		return "", err
	}

	if p.tty.HasSupport(ctx) {
		secret, err := p.tty.Output(ctx, stty.NewCommand().MaskInput())
		if err != nil {
			return "", err
		}
		// echo was off, so the user's return never reached the screen
		if err := p.write("\n"); err != nil {
			return "", err
		}
		return strings.TrimRight(secret, "\r\n"), nil
	}

	if f, ok := p.rawIn.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		if err := p.write("\n"); err != nil {
			return "", err
		}
		return string(secret), nil
	}

	p.log.Warn("input is not a terminal, masked answer will be read in the clear",
		logger.F("input", describe(p.rawIn)))
	return p.readLine()
}

func describe(r any) string {
	if f, ok := r.(*os.File); ok {
		return f.Name()
	}
	return "stream"
}
