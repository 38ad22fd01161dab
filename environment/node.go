package environment

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver"
)

// nodeSupport maps an Angular major version to the node.js releases that
// major is built and tested against. Taken from the published Angular
// version compatibility table.
var nodeSupport = map[string]string{
	"14": "^14.15.0 || ^16.10.0",
	"15": "^14.20.0 || ^16.13.0 || ^18.10.0",
	"16": "^16.14.0 || ^18.10.0",
	"17": "^18.13.0 || >=20.9.0",
	"18": "^18.19.1 || ^20.11.1 || >=22.0.0",
}

// NodeRequirement returns the node.js range a given Angular major
// supports, or an empty string when no compatibility data is on record.
func NodeRequirement(angularMajor string) string {
	return nodeSupport[angularMajor]
}

// SupportedMajors lists the Angular majors with compatibility data,
// newest first.
func SupportedMajors() []string {
	majors := make([]string, 0, len(nodeSupport))
	for major := range nodeSupport {
		majors = append(majors, major)
	}

	sort.Slice(majors, func(i, j int) bool {
		a, _ := strconv.Atoi(majors[i])
		b, _ := strconv.Atoi(majors[j])
		return a > b
	})

	return majors
}

// ValidateNode reports whether the detected node.js version is supported
// by the chosen Angular major. Majors without compatibility data validate
// as supported, absence of data is not a failure.
func ValidateNode(nodeVersion, angularMajor string) (bool, error) {
	rangeStr, ok := nodeSupport[angularMajor]
	if !ok {
		return true, nil
	}

	constraint, err := semver.NewConstraint(rangeStr)
	if err != nil {
		return false, fmt.Errorf("failed to parse node requirement %s: %w", rangeStr, err)
	}

	version, err := semver.NewVersion(strings.TrimPrefix(nodeVersion, "v"))
	if err != nil {
		return false, fmt.Errorf("failed to parse node version %s: %w", nodeVersion, err)
	}

	return constraint.Check(version), nil
}

// RecommendedNode returns a concrete node.js version worth installing for
// an Angular major, suitable for an `nvm install` hint. Empty when the
// major has no compatibility data.
func RecommendedNode(angularMajor string) string {
	rangeStr, ok := nodeSupport[angularMajor]
	if !ok {
		return ""
	}

	// The last alternative in the range is the newest supported line,
	// recommend its lower bound.
	alternatives := strings.Split(rangeStr, "||")
	newest := strings.TrimSpace(alternatives[len(alternatives)-1])

	newest = strings.TrimPrefix(newest, ">=")
	newest = strings.TrimPrefix(newest, "^")

	return strings.TrimSpace(newest)
}
