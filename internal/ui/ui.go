// Package ui writes colored status messages to stderr and reads secrets
// from the terminal.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode accepts auto, always or never. Empty means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q (expected auto|always|never)", s)
	}
}

type contextKey struct{}

// UI writes formatted messages. Data goes to stdout elsewhere; UI only
// touches stderr.
type UI struct {
	out *termenv.Output
	in  io.Reader
}

// New creates a UI on stderr. NO_COLOR disables color regardless of mode.
func New(mode ColorMode) *UI {
	return NewWithWriter(os.Stderr, mode)
}

// NewWithWriter creates a UI writing to w.
func NewWithWriter(w io.Writer, mode ColorMode) *UI {
	if os.Getenv("NO_COLOR") != "" {
		mode = ColorNever
	}
	profile := termenv.EnvColorProfile()
	switch mode {
	case ColorNever:
		profile = termenv.Ascii
	case ColorAlways:
		if profile == termenv.Ascii {
			profile = termenv.ANSI256
		}
	}
	return &UI{out: termenv.NewOutput(w, termenv.WithProfile(profile)), in: os.Stdin}
}

func WithUI(ctx context.Context, u *UI) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext returns the UI in ctx, or a ColorAuto UI on stderr.
func FromContext(ctx context.Context) *UI {
	if u, ok := ctx.Value(contextKey{}).(*UI); ok {
		return u
	}
	return New(ColorAuto)
}

func (u *UI) line(prefix string, color termenv.Color, format string, args ...any) {
	msg := prefix + fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(u.out, u.out.String(msg).Foreground(color))
}

func (u *UI) Success(format string, args ...any) { u.line("✓ ", termenv.ANSIGreen, format, args...) }
func (u *UI) Warning(format string, args ...any) { u.line("⚠ ", termenv.ANSIYellow, format, args...) }
func (u *UI) Error(format string, args ...any)   { u.line("✗ ", termenv.ANSIRed, format, args...) }
func (u *UI) Info(format string, args ...any)    { u.line("ℹ ", termenv.ANSIBlue, format, args...) }

// Hint prints an indented, dimmed follow-up line.
func (u *UI) Hint(format string, args ...any) {
	_, _ = fmt.Fprintln(u.out, u.out.String("  "+fmt.Sprintf(format, args...)).Faint())
}

// Writer returns the underlying stderr writer.
func (u *UI) Writer() io.Writer {
	return u.out
}

// ReadSecret prompts on stderr and reads one line without echo when stdin is
// a terminal. Piped input is read as a plain line.
func (u *UI) ReadSecret(prompt string) (string, error) {
	_, _ = fmt.Fprint(u.out, prompt)
	if f, ok := u.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(u.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	line, err := bufio.NewReader(u.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// SetInput replaces stdin for ReadSecret.
func (u *UI) SetInput(r io.Reader) {
	u.in = r
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
