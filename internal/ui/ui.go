package ui

import (
	"fmt"
)

// The UI is internal to ng-setup and opinionated for the CLI. It is not
// intended to be used outside of it.

type VerbosityLevel int

const (
	// Only errors and final results are shown
	VerbosityLevelSilent VerbosityLevel = iota

	// Show status updates while steps run
	VerbosityLevelNormal

	// Show everything, including per version resolution decisions
	VerbosityLevelVerbose
)

var verbosityLevel VerbosityLevel = VerbosityLevelNormal

func SetVerbosityLevel(level VerbosityLevel) {
	verbosityLevel = level
}

func GetVerbosityLevel() VerbosityLevel {
	return verbosityLevel
}

// SetStatus replaces the current status line with a new spinner message.
func SetStatus(status string) {
	if verbosityLevel == VerbosityLevelSilent {
		return
	}

	StopSpinner()
	StartSpinnerWithColor(status, Colors.Cyan)
}

// ClearStatus stops any running spinner and returns the cursor to the
// start of the line.
func ClearStatus() {
	StopSpinner()
	fmt.Print("\r")
}

// PrintSuccess prints a green check line.
func PrintSuccess(msg string) {
	StopSpinner()
	fmt.Printf("%s %s\n", Colors.Green("✓"), msg)
}

// PrintWarning prints a yellow warning line. Warnings are shown even in
// silent mode, they usually mean the user has a decision to make.
func PrintWarning(msg string) {
	StopSpinner()
	fmt.Printf("%s %s\n", Colors.Yellow("⚠"), Colors.Yellow(msg))
}

// PrintStep prints a dim progress line without a spinner.
func PrintStep(msg string) {
	if verbosityLevel == VerbosityLevelSilent {
		return
	}

	StopSpinner()
	fmt.Printf("%s %s\n", Colors.Dim("→"), msg)
}
