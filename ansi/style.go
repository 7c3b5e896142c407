package ansi

import (
	"fmt"
	"strconv"
	"strings"
)

// Style is a named text transform.
type Style int

const (
	StyleBold Style = iota
	StyleItalic

	StyleBlack
	StyleRed
	StyleGreen
	StyleYellow
	StyleBlue
	StyleMagenta
	StyleCyan
	StyleWhite
	StyleBrightBlack
	StyleBrightRed
	StyleBrightGreen
	StyleBrightYellow
	StyleBrightBlue
	StyleBrightMagenta
	StyleBrightCyan
	StyleBrightWhite
	StyleGrey

	StyleBlackBg
	StyleRedBg
	StyleGreenBg
	StyleYellowBg
	StyleBlueBg
	StyleMagentaBg
	StyleCyanBg
	StyleWhiteBg
	StyleBrightBlackBg
	StyleBrightRedBg
	StyleBrightGreenBg
	StyleBrightYellowBg
	StyleBrightBlueBg
	StyleBrightMagentaBg
	StyleBrightCyanBg
	StyleBrightWhiteBg
	StyleGreyBg

	// StyleSelectedItem is blue followed by bold.
	StyleSelectedItem
)

type styleSpec struct {
	name string
	code int
	bg   bool
}

var styleTable = map[Style]styleSpec{
	StyleBold:   {name: "bold", code: 1},
	StyleItalic: {name: "italic", code: 3},

	StyleBlack:         {name: "black", code: 30},
	StyleRed:           {name: "red", code: 31},
	StyleGreen:         {name: "green", code: 32},
	StyleYellow:        {name: "yellow", code: 33},
	StyleBlue:          {name: "blue", code: 34},
	StyleMagenta:       {name: "magenta", code: 35},
	StyleCyan:          {name: "cyan", code: 36},
	StyleWhite:         {name: "white", code: 37},
	StyleBrightBlack:   {name: "brightBlack", code: 90},
	StyleBrightRed:     {name: "brightRed", code: 91},
	StyleBrightGreen:   {name: "brightGreen", code: 92},
	StyleBrightYellow:  {name: "brightYellow", code: 93},
	StyleBrightBlue:    {name: "brightBlue", code: 94},
	StyleBrightMagenta: {name: "brightMagenta", code: 95},
	StyleBrightCyan:    {name: "brightCyan", code: 96},
	StyleBrightWhite:   {name: "brightWhite", code: 97},
	StyleGrey:          {name: "grey", code: 90},

	StyleBlackBg:         {name: "blackBg", code: 40, bg: true},
	StyleRedBg:           {name: "redBg", code: 41, bg: true},
	StyleGreenBg:         {name: "greenBg", code: 42, bg: true},
	StyleYellowBg:        {name: "yellowBg", code: 43, bg: true},
	StyleBlueBg:          {name: "blueBg", code: 44, bg: true},
	StyleMagentaBg:       {name: "magentaBg", code: 45, bg: true},
	StyleCyanBg:          {name: "cyanBg", code: 46, bg: true},
	StyleWhiteBg:         {name: "whiteBg", code: 47, bg: true},
	StyleBrightBlackBg:   {name: "brightBlackBg", code: 100, bg: true},
	StyleBrightRedBg:     {name: "brightRedBg", code: 101, bg: true},
	StyleBrightGreenBg:   {name: "brightGreenBg", code: 102, bg: true},
	StyleBrightYellowBg:  {name: "brightYellowBg", code: 103, bg: true},
	StyleBrightBlueBg:    {name: "brightBlueBg", code: 104, bg: true},
	StyleBrightMagentaBg: {name: "brightMagentaBg", code: 105, bg: true},
	StyleBrightCyanBg:    {name: "brightCyanBg", code: 106, bg: true},
	StyleBrightWhiteBg:   {name: "brightWhiteBg", code: 107, bg: true},
	StyleGreyBg:          {name: "greyBg", code: 100, bg: true},

	StyleSelectedItem: {name: "selectedItem"},
}

var styleNames = func() map[string]Style {
	names := make(map[string]Style, len(styleTable))
	for s, spec := range styleTable {
		names[spec.name] = s
	}
	return names
}()

// String returns the canonical style name.
func (s Style) String() string {
	if spec, ok := styleTable[s]; ok {
		return spec.name
	}
	return "Style(" + strconv.Itoa(int(s)) + ")"
}

// ParseStyle resolves a style name such as "bold" or "brightBlueBg".
func ParseStyle(name string) (Style, error) {
	s, ok := styleNames[name]
	if !ok {
		return 0, fmt.Errorf("style %q: %w", name, ErrUnknownStyle)
	}
	return s, nil
}

// Style applies the named styles to text, in order.
func (r *Renderer) Style(text string, names ...string) (string, error) {
	styles := make([]Style, 0, len(names))
	for _, name := range names {
		s, err := ParseStyle(name)
		if err != nil {
			return "", err
		}
		styles = append(styles, s)
	}
	return r.Apply(text, styles...), nil
}

// Apply applies styles to text, in order. Unknown values are ignored.
func (r *Renderer) Apply(text string, styles ...Style) string {
	for _, s := range styles {
		if s == StyleSelectedItem {
			text = r.SelectedItem(text)
			continue
		}
		spec, ok := styleTable[s]
		if !ok {
			continue
		}
		if spec.bg {
			text = r.Background(spec.code, text)
		} else {
			text = r.SGR(spec.code, text)
		}
	}
	return text
}

// SGR wraps text in a Select Graphic Rendition code followed by a reset.
func (r *Renderer) SGR(code int, text string) string {
	if !r.IsSupported() {
		return text
	}
	return csi + strconv.Itoa(code) + "m" + text + reset
}

// Background applies a background colour code. Without ANSI the text is
// bracketed so the highlight stays visible.
func (r *Renderer) Background(code int, text string) string {
	if !r.IsSupported() {
		return "[" + text + "]"
	}
	return r.SGR(code, text)
}

func (r *Renderer) Bold(text string) string          { return r.SGR(1, text) }
func (r *Renderer) Italic(text string) string        { return r.SGR(3, text) }
func (r *Renderer) Black(text string) string         { return r.SGR(30, text) }
func (r *Renderer) Red(text string) string           { return r.SGR(31, text) }
func (r *Renderer) Green(text string) string         { return r.SGR(32, text) }
func (r *Renderer) Yellow(text string) string        { return r.SGR(33, text) }
func (r *Renderer) Blue(text string) string          { return r.SGR(34, text) }
func (r *Renderer) Magenta(text string) string       { return r.SGR(35, text) }
func (r *Renderer) Cyan(text string) string          { return r.SGR(36, text) }
func (r *Renderer) White(text string) string         { return r.SGR(37, text) }
func (r *Renderer) BrightBlack(text string) string   { return r.SGR(90, text) }
func (r *Renderer) Grey(text string) string          { return r.SGR(90, text) }
func (r *Renderer) BrightRed(text string) string     { return r.SGR(91, text) }
func (r *Renderer) BrightGreen(text string) string   { return r.SGR(92, text) }
func (r *Renderer) BrightYellow(text string) string  { return r.SGR(93, text) }
func (r *Renderer) BrightBlue(text string) string    { return r.SGR(94, text) }
func (r *Renderer) BrightMagenta(text string) string { return r.SGR(95, text) }
func (r *Renderer) BrightCyan(text string) string    { return r.SGR(96, text) }
func (r *Renderer) BrightWhite(text string) string   { return r.SGR(97, text) }

func (r *Renderer) BlackBg(text string) string         { return r.Background(40, text) }
func (r *Renderer) RedBg(text string) string           { return r.Background(41, text) }
func (r *Renderer) GreenBg(text string) string         { return r.Background(42, text) }
func (r *Renderer) YellowBg(text string) string        { return r.Background(43, text) }
func (r *Renderer) BlueBg(text string) string          { return r.Background(44, text) }
func (r *Renderer) MagentaBg(text string) string       { return r.Background(45, text) }
func (r *Renderer) CyanBg(text string) string          { return r.Background(46, text) }
func (r *Renderer) WhiteBg(text string) string         { return r.Background(47, text) }
func (r *Renderer) BrightBlackBg(text string) string   { return r.Background(100, text) }
func (r *Renderer) BrightRedBg(text string) string     { return r.Background(101, text) }
func (r *Renderer) BrightGreenBg(text string) string   { return r.Background(102, text) }
func (r *Renderer) BrightYellowBg(text string) string  { return r.Background(103, text) }
func (r *Renderer) BrightBlueBg(text string) string    { return r.Background(104, text) }
func (r *Renderer) BrightMagentaBg(text string) string { return r.Background(105, text) }
func (r *Renderer) BrightCyanBg(text string) string    { return r.Background(106, text) }
func (r *Renderer) BrightWhiteBg(text string) string   { return r.Background(107, text) }
func (r *Renderer) GreyBg(text string) string          { return r.Background(100, text) }

// SelectedItem styles the highlighted row of a menu.
func (r *Renderer) SelectedItem(text string) string {
	return r.Bold(r.Blue(text))
}

// Line draws a horizontal rule of the given length.
func (r *Renderer) Line(length, color int) string {
	return r.rule(strings.Repeat("─", max(length, 0)), color)
}

// DashedLine draws a rule with hair spaces between the dashes.
func (r *Renderer) DashedLine(length, color int) string {
	return r.rule(strings.Repeat("─\u200a", (max(length, 0)+1)/2), color)
}

func (r *Renderer) rule(line string, color int) string {
	if !r.IsSupported() {
		return line
	}
	return csi + "1;" + strconv.Itoa(color) + "m" + line + reset
}

// Middot returns a bullet, or "." on terminals without ANSI.
func (r *Renderer) Middot() string {
	if !r.IsSupported() {
		return "."
	}
	return "•"
}
