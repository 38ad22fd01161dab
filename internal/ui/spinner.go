package ui

import (
	"fmt"
	"time"
)

var spinnerChan chan bool

// StartSpinner animates a braille spinner next to msg until StopSpinner is
// called. Only one spinner can run at a time.
func StartSpinner(msg string) {
	StartSpinnerWithColor(msg, Colors.Normal)
}

func StartSpinnerWithColor(msg string, c ColorFn) {
	if c == nil {
		c = Colors.Normal
	}

	frames := []rune(`⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏`)

	spinnerChan = make(chan bool)

	ticker := time.NewTicker(100 * time.Millisecond)
	go func() {
		pos := 0

		for {
			select {
			case <-spinnerChan:
				ticker.Stop()
				return
			case <-ticker.C:
				fmt.Printf("\r%s %s ", string(frames[pos%len(frames)]), c(msg))
				pos++
			}
		}
	}()
}

// StopSpinner stops the running spinner and clears its line. Safe to call
// when no spinner is running, or twice in a row.
func StopSpinner() {
	if spinnerChan == nil {
		return
	}

	defer func() {
		_ = recover()
	}()

	close(spinnerChan)

	fmt.Printf("\r")
	fmt.Println()
}
