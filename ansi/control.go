package ansi

import "strconv"

const (
	esc   = "\x1b"
	csi   = esc + "["
	reset = csi + "0m"

	seqClearLine  = csi + "2K"
	seqCursorDown = csi + "1B"
	seqKeyUp      = csi + "A"
	seqKeyDown    = csi + "B"
	seqKeyEnter   = "\n"
	seqCheckbox   = "\xE2\x9C\x94"
)

// Key names reported by KeyName.
const (
	KeyNameUp    = "up"
	KeyNameDown  = "down"
	KeyNameEnter = "enter"
)

var navKeys = map[string]string{
	seqKeyUp:    KeyNameUp,
	seqKeyDown:  KeyNameDown,
	seqKeyEnter: KeyNameEnter,
}

// KeyName maps the byte sequence of a navigation key to its name.
// Unknown sequences are returned unchanged.
func KeyName(seq string) string {
	if name, ok := navKeys[seq]; ok {
		return name
	}
	return seq
}

func (r *Renderer) require(seq string) (string, error) {
	if !r.IsSupported() {
		return "", ErrUnsupported
	}
	return seq, nil
}

// ClearLine erases the line under the cursor.
func (r *Renderer) ClearLine() (string, error) {
	return r.require(seqClearLine)
}

// CursorUp moves the cursor up n lines.
func (r *Renderer) CursorUp(n int) (string, error) {
	return r.require(csi + strconv.Itoa(n) + "A")
}

// CursorDown moves the cursor down one line.
func (r *Renderer) CursorDown() (string, error) {
	return r.require(seqCursorDown)
}

// ClearDown erases the current line and moves to the next one.
func (r *Renderer) ClearDown() (string, error) {
	line, err := r.ClearLine()
	if err != nil {
		return "", err
	}
	down, err := r.CursorDown()
	if err != nil {
		return "", err
	}
	return line + down, nil
}

// KeyUp is the sequence the terminal sends for the up arrow.
func (r *Renderer) KeyUp() (string, error) {
	return r.require(seqKeyUp)
}

// KeyDown is the sequence the terminal sends for the down arrow.
func (r *Renderer) KeyDown() (string, error) {
	return r.require(seqKeyDown)
}

// KeyEscape is the sequence the terminal sends for Esc.
func (r *Renderer) KeyEscape() (string, error) {
	return r.require(esc)
}

// KeyEnter is the sequence for Enter. It needs no escape support.
func (r *Renderer) KeyEnter() string {
	return seqKeyEnter
}

// Checkbox returns the check mark glyph.
func (r *Renderer) Checkbox() (string, error) {
	return r.require(seqCheckbox)
}
