// Package logging builds the zerolog logger shared by the browser.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Component is the value of the "component" field on every entry.
const Component = "ec2-instance-browser"

// Output formats accepted by New.
const (
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// New returns a logger writing to w at the given level. FormatPretty uses
// the console writer, coloured only when w is a terminal; any other format
// emits JSON lines.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := w
	if format == FormatPretty {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    !IsTerminal(w),
		}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("component", Component).
		Logger(), nil
}

// IsTerminal reports whether w is a character device such as a TTY.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
