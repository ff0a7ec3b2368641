package output

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorScheme defines the colors used for the run summary.
type ColorScheme struct {
	Title   *color.Color
	Label   *color.Color
	Value   *color.Color
	Success *color.Color
	Error   *color.Color
}

// DefaultColorScheme returns the default color scheme.
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Title:   color.New(color.FgCyan, color.Bold),
		Label:   color.New(color.FgYellow),
		Value:   color.New(color.FgWhite),
		Success: color.New(color.FgGreen),
		Error:   color.New(color.FgRed),
	}
}

// NoColorScheme returns a color scheme with all colors disabled.
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()
	scheme.Title.DisableColor()
	scheme.Label.DisableColor()
	scheme.Value.DisableColor()
	scheme.Success.DisableColor()
	scheme.Error.DisableColor()
	return scheme
}

// SchemeFor picks a scheme based on whether stdout is a terminal.
func SchemeFor(noColor bool) *ColorScheme {
	if noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		return NoColorScheme()
	}
	return DefaultColorScheme()
}
