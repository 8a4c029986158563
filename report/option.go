package report

//go:generate go tool stringer --linecomment --type Format,ColorMode --output report_string.go

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Format selects the output encoding of a [Reporter].
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
	FormatYAML               // yaml
)

// ColorMode controls whether text output is styled.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // auto
	ColorAlways                  // always
	ColorNever                   // never
)

// ParseFormat returns the [Format] named s, or [FormatText] if s is unknown.
func ParseFormat(s string) Format {
	for _, f := range []Format{FormatText, FormatJSON, FormatYAML} {
		if f.String() == s {
			return f
		}
	}

	return FormatText
}

// ParseColorMode returns the [ColorMode] named s, or [ColorAuto] if s is
// unknown.
func ParseColorMode(s string) ColorMode {
	for _, c := range []ColorMode{ColorAuto, ColorAlways, ColorNever} {
		if c.String() == s {
			return c
		}
	}

	return ColorAuto
}

// Option configures a [Reporter].
type Option func(*Reporter)

// WithFormat sets the output format.
func WithFormat(f Format) Option {
	return func(r *Reporter) { r.format = f }
}

// WithColor sets the color mode for text output.
func WithColor(mode ColorMode) Option {
	return func(r *Reporter) { r.color = mode }
}

// WithValueWidth caps the display width of each value column in text output.
// Values are also fitted to the terminal width when writing to a terminal.
// Zero applies only the terminal fit, and a negative width disables
// truncation entirely.
func WithValueWidth(width int) Option {
	return func(r *Reporter) { r.valueWidth = width }
}

// ColorEnabled reports whether mode enables styled output on w.
// In [ColorAuto] mode, styling is enabled only when w is a terminal and the
// NO_COLOR environment variable is unset or empty.
func ColorEnabled(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return os.Getenv("NO_COLOR") == "" && isTerminal(w)
	}
}

// terminalWidth returns the column width of w, or zero if w is not a
// terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !isTerminal(w) {
		return 0
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}

	return width
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}
