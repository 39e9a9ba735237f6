// Package ui formats status lines and translations for the terminal.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/DevSymphony/cmdlens/pkg/schema"
)

var (
	green   = color.New(color.FgGreen)
	red     = color.New(color.FgRed)
	yellow  = color.New(color.FgYellow)
	blue    = color.New(color.FgBlue)
	cyan    = color.New(color.FgCyan)
	faint   = color.New(color.FgHiBlack)
	title   = color.New(color.FgCyan, color.Bold)
	done    = color.New(color.FgGreen, color.Bold)
	errBold = color.New(color.FgRed, color.Bold)
)

func init() {
	if !isTTY() {
		color.NoColor = true
	}
}

// isTTY checks if stdout is a terminal
func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// SetColor forces colored output on or off.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// OK formats a success message with [OK] prefix in green
func OK(msg string) string {
	return fmt.Sprintf("%s %s", green.Sprint("[OK]"), msg)
}

// Error formats an error message with [ERROR] prefix in red
func Error(msg string) string {
	return fmt.Sprintf("%s %s", red.Sprint("[ERROR]"), msg)
}

// Warn formats a warning message with [WARN] prefix in yellow
func Warn(msg string) string {
	return fmt.Sprintf("%s %s", yellow.Sprint("[WARN]"), msg)
}

// Info formats an info message with [INFO] prefix in blue
func Info(msg string) string {
	return fmt.Sprintf("%s %s", blue.Sprint("[INFO]"), msg)
}

// TitleWithDesc formats a section title with description
func TitleWithDesc(name, desc string) string {
	return fmt.Sprintf("%s %s", title.Sprintf("[%s]", name), desc)
}

// Done formats a completion message with [DONE] prefix in green
func Done(msg string) string {
	return fmt.Sprintf("%s %s", done.Sprint("[DONE]"), msg)
}

// PrintOK prints a success message
func PrintOK(msg string) {
	fmt.Println(OK(msg))
}

// PrintError prints an error message
func PrintError(msg string) {
	fmt.Println(Error(msg))
}

// PrintWarn prints a warning message
func PrintWarn(msg string) {
	fmt.Println(Warn(msg))
}

// PrintInfo prints an info message
func PrintInfo(msg string) {
	fmt.Println(Info(msg))
}

// PrintTitle prints a section title
func PrintTitle(name, desc string) {
	fmt.Println(TitleWithDesc(name, desc))
}

// PrintDone prints a completion message
func PrintDone(msg string) {
	fmt.Println(Done(msg))
}

// Indent returns the message with indentation
func Indent(msg string) string {
	return "     " + msg
}

// PrintIndent prints an indented message
func PrintIndent(msg string) {
	fmt.Println(Indent(msg))
}

// Category colors text by result category. Unknown categories are left plain.
func Category(category, text string) string {
	switch category {
	case schema.CategoryError:
		return errBold.Sprint(text)
	case schema.CategoryWarning:
		return yellow.Sprint(text)
	case schema.CategorySuccess:
		return green.Sprint(text)
	case schema.CategoryProgress:
		return cyan.Sprint(text)
	default:
		return text
	}
}

// Faint dims secondary details such as the result source.
func Faint(text string) string {
	return faint.Sprint(text)
}
