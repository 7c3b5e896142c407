package stty

import "strings"

// Command is an ordered list of shell fragments that adjust terminal
// modes. It is a value: every builder method returns a new Command and
// leaves its receiver untouched, so partially built commands can be shared.
type Command struct {
	fragments []string
}

// NewCommand returns an empty command.
func NewCommand() Command {
	return Command{}
}

func (c Command) with(fragment string) Command {
	next := make([]string, len(c.fragments), len(c.fragments)+1)
	copy(next, c.fragments)
	return Command{fragments: append(next, fragment)}
}

// Toggle appends "stty <feature>" or "stty -<feature>".
func (c Command) Toggle(enable bool, feature string) Command {
	if enable {
		return c.with("stty " + feature)
	}
	return c.with("stty -" + feature)
}

// ToggleEcho switches terminal echo.
func (c Command) ToggleEcho(enable bool) Command {
	return c.Toggle(enable, "echo")
}

// ToggleCharBreak switches character-at-a-time input.
func (c Command) ToggleCharBreak(enable bool) Command {
	return c.Toggle(enable, "cbreak")
}

// ReadInput appends a shell read into $input. The line is kept verbatim:
// no backslash processing and no field splitting.
func (c Command) ReadInput() Command {
	return c.with("IFS= read -r input")
}

// Raw appends an arbitrary fragment.
func (c Command) Raw(fragment string) Command {
	return c.with(fragment)
}

// MaskInput reads one line with echo off and prints it back on stdout.
func (c Command) MaskInput() Command {
	return c.ToggleEcho(false).ReadInput().ToggleEcho(true).Raw(`printf '%s\n' "$input"`)
}

// Empty reports whether no fragment has been added.
func (c Command) Empty() bool {
	return len(c.fragments) == 0
}

// String joins the fragments with ";" for sh -c.
func (c Command) String() string {
	return strings.Join(c.fragments, ";")
}

// enableRaw and disableRaw are the fragments behind EnableRaw/DisableRaw.
var (
	enableRaw  = NewCommand().ToggleEcho(false).ToggleCharBreak(true)
	disableRaw = NewCommand().ToggleEcho(true).ToggleCharBreak(false)
)
