package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

var stdinReader = bufio.NewReader(os.Stdin)

// Confirm asks a yes/no question and returns the answer. An empty reply
// picks the default; anything unrecognized counts as no.
func Confirm(question string, defaultYes bool) (bool, error) {
	ClearStatus()

	hint := "(y/N)"
	if defaultYes {
		hint = "(Y/n)"
	}

	fmt.Printf("%s %s ", Colors.Magenta(question), Colors.Dim(hint))

	line, err := stdinReader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading answer: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "" {
		return defaultYes, nil
	}

	return answer == "y" || answer == "yes", nil
}

// AskString asks a free-form question. An empty reply picks the default.
func AskString(question, defaultValue string) (string, error) {
	ClearStatus()

	if defaultValue != "" {
		fmt.Printf("%s %s ", Colors.Magenta(question), Colors.Dim("["+defaultValue+"]"))
	} else {
		fmt.Printf("%s ", Colors.Magenta(question))
	}

	line, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading answer: %w", err)
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return defaultValue, nil
	}

	return answer, nil
}
