package ui

import "github.com/fatih/color"

type ColorFn func(format string, a ...interface{}) string

// TerminalColors is the palette used across the CLI. Keep all color
// decisions here so the rest of the code never touches the color package
// directly.
type TerminalColors struct {
	Normal  ColorFn
	Red     ColorFn
	Yellow  ColorFn
	Green   ColorFn
	Cyan    ColorFn
	Magenta ColorFn
	Bold    ColorFn
	Dim     ColorFn
	Badge   ColorFn
}

var Colors = TerminalColors{
	Normal:  color.New().SprintfFunc(),
	Red:     color.New(color.FgRed, color.Bold).SprintfFunc(),
	Yellow:  color.New(color.FgYellow).SprintfFunc(),
	Green:   color.New(color.FgGreen).SprintfFunc(),
	Cyan:    color.New(color.FgCyan).SprintfFunc(),
	Magenta: color.New(color.FgMagenta).SprintfFunc(),
	Bold:    color.New(color.Bold).SprintfFunc(),
	Dim:     color.New(color.Faint).SprintfFunc(),
	Badge:   color.New(color.BgRed, color.FgBlack, color.Bold).SprintfFunc(),
}
