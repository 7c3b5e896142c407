// Package ansi generates the escape sequences used by every plume prompt.
//
// # Overview
//
// A Renderer owns one piece of state: whether the host terminal understands
// ANSI escape sequences. The answer is probed once (OS family and the TERM
// environment variable) and cached until Reset or Disable is called. Build a
// single Renderer at startup and hand it to the packages that draw:
//
//	r := ansi.New()
//	fmt.Println(r.Bold("Pick a database"))
//
// # Styling
//
// Styles are a closed set. Use the typed constants when the style is known
// at compile time, or resolve names coming from configuration:
//
//	s := r.Apply("done", ansi.StyleGreen, ansi.StyleBold)
//
//	s, err := r.Style("done", "green", "bold")
//	if errors.Is(err, ansi.ErrUnknownStyle) {
//	    // bad name in config
//	}
//
// When ANSI is unsupported colour and weight styles return the text as-is.
// Background styles bracket the text instead ("[text]") so a highlight is
// still visible. Every colour has a helper (RedBg, BrightCyanBg, ...);
// Background(code, text) takes any other SGR background code.
//
// # Cursor control
//
// Cursor and line primitives (ClearLine, CursorUp, KeyUp, Checkbox, ...)
// return ErrUnsupported when the terminal cannot interpret them. They never
// degrade silently: emitting raw escape bytes to a dumb terminal corrupts
// the screen. KeyEnter is the exception, a bare "\n" needs no escape.
package ansi
