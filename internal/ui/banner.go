package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fatih/color"
)

var (
	brandAngularRed = color.RGB(221, 0, 49).Add(color.Bold).SprintFunc() // #DD0031
	bannerDim       = color.New(color.Faint).SprintFunc()
)

// GenerateBanner renders the two line "NG" banner with version and commit
// info, shown at the start of an interactive session.
func GenerateBanner(version, commit string) string {
	line1 := fmt.Sprintf("█▄░█ █▀▀\tAngular project scaffolding %s", bannerDim("(github.com/jatinmourya/ng-angular-setup)"))
	line2 := "█░▀█ █▄█"

	banner := "\n" + line1 + "\n" + line2

	if len(commit) >= 6 {
		commit = commit[:6]
	}

	return fmt.Sprintf("%s 	%s: %s %s: %s \n\n", brandAngularRed(banner),
		bannerDim("version"), Colors.Bold(cleanVersion(version)),
		bannerDim("commit"), Colors.Bold(commit),
	)
}

// cleanVersion strips build metadata and collapses Go pseudo-versions
// (v1.2.3-0.20220101123456-abcdef123456) down to their base release.
// Proper tags like v1.2.3-alpha.1 pass through untouched.
func cleanVersion(version string) string {
	if version == "" {
		return version
	}

	version = strings.Split(version, "+")[0]

	pseudoPattern := regexp.MustCompile(`^(v?\d+\.\d+\.\d+)-0\.\d{14}-[a-f0-9]{12}$`)
	if matches := pseudoPattern.FindStringSubmatch(version); len(matches) > 1 {
		return matches[1]
	}

	return version
}
