package ui

import (
	"fmt"
	"sort"
)

// PrintInfoSection prints a titled block of key-value information with
// keys in stable sorted order.
func PrintInfoSection(title string, entries map[string]string) {
	fmt.Println()
	fmt.Println(Colors.Cyan(title))
	fmt.Println(Colors.Dim("────────────────────"))

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%-25s: %s\n", Colors.Bold(k), entries[k])
	}
}

// PrintNextSteps prints the closing instructions after a project has been
// generated.
func PrintNextSteps(projectName string) {
	fmt.Println()
	fmt.Printf("%s %s\n", Colors.Green("✓"), Colors.Bold("Your Angular workspace is ready"))
	fmt.Printf("   %s\n", Colors.Dim("Next steps:"))
	fmt.Printf("   %s\n", Colors.Cyan(fmt.Sprintf("cd %s", projectName)))
	fmt.Printf("   %s\n", Colors.Cyan("ng serve --open"))
	fmt.Println()
}
