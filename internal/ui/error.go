package ui

import (
	"fmt"
	"os"

	"github.com/jatinmourya/ng-angular-setup/clierror"
)

// ErrorExit prints the error in its user presentable form and exits with a
// non-zero status code.
func ErrorExit(err error) {
	ClearStatus()

	presentable, ok := clierror.From(err)
	if !ok {
		presentable = convertError(err)
	}

	fmt.Printf("%s %s\n", Colors.Badge(" %s ", presentable.Code()),
		Colors.Red(presentable.HumanError()))

	if help := presentable.Help(); help != "" {
		fmt.Println(Colors.Yellow(help))
	}

	os.Exit(1)
}

// Fatalf prints a formatted error line and exits. Prefer ErrorExit with a
// clierror when there is help to offer.
func Fatalf(format string, args ...interface{}) {
	ClearStatus()
	fmt.Println(Colors.Red(format, args...))
	os.Exit(1)
}
