// Package output provides user-facing CLI output helpers with consistent
// styling. It is for terminal interaction only; services log through slog.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
	cyan  = color.New(color.FgCyan)
	gray  = color.New(color.FgHiBlack)
	bold  = color.New(color.Bold)

	// Output writers (can be overridden for testing)
	Stdout io.Writer = os.Stdout

	noColor = os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stdout.Fd())
)

func init() {
	if noColor {
		color.NoColor = true
	}
}

// Success prints a success message with a checkmark.
func Success(format string, a ...interface{}) {
	fmt.Fprintf(Stdout, green.Sprint("✓")+" "+format+"\n", a...)
}

// Info prints an informational message with an arrow.
func Info(format string, a ...interface{}) {
	fmt.Fprintf(Stdout, cyan.Sprint("→")+" "+format+"\n", a...)
}

// Error prints an error message with an X symbol.
func Error(format string, a ...interface{}) {
	fmt.Fprintf(Stdout, red.Sprint("✗")+" "+format+"\n", a...)
}

// Fatal prints an error message and exits with code 1.
func Fatal(format string, a ...interface{}) {
	Error(format, a...)
	os.Exit(1)
}

// Header prints a section header with a separator line.
func Header(text string) {
	fmt.Fprintln(Stdout, bold.Sprint(text))
	fmt.Fprintln(Stdout, gray.Sprint(strings.Repeat("─", len([]rune(text)))))
}

// KeyValue prints an aligned key/value line.
func KeyValue(key, value string) {
	fmt.Fprintf(Stdout, "%s %s\n", gray.Sprintf("%s:", key), value)
}

// Bold returns the text wrapped in bold styling.
func Bold(text string) string {
	return bold.Sprint(text)
}
