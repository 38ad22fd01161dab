// Package versionset provides pure transformations over flat sets of
// semantic version strings: tiering into major / minor / patch groups and
// descending precedence ordering. All functions are side effect free and
// use stable sorts so numerically equal (typically malformed) inputs keep
// their relative order.
package versionset

import (
	"sort"
	"strconv"
	"strings"
)

// FilterStable removes pre-release and build-metadata versions. Anything
// carrying a hyphenated tag (-rc, -beta, -alpha, -next) or a build suffix
// is dropped. The filtering is done once before tiering so that Majors,
// MinorsForMajor and PatchesForMinor all see the same population.
func FilterStable(versions []string) []string {
	stable := make([]string, 0, len(versions))
	for _, v := range versions {
		if strings.ContainsAny(v, "-+") {
			continue
		}

		stable = append(stable, v)
	}

	return stable
}

// IsStable reports whether a single version string carries no pre-release
// or build-metadata suffix.
func IsStable(version string) bool {
	return !strings.ContainsAny(version, "-+")
}

// Major returns the leading numeric component of a version string, or an
// empty string when the component is not numeric.
func Major(version string) string {
	head, _, _ := strings.Cut(version, ".")
	if _, err := strconv.Atoi(head); err != nil {
		return ""
	}

	return head
}

// Majors extracts the distinct major components from a version list,
// ordered descending by numeric value. Versions whose leading component is
// not numeric are excluded.
func Majors(versions []string) []string {
	seen := make(map[string]bool)
	majors := make([]string, 0, len(versions))

	for _, v := range versions {
		major := Major(v)
		if major == "" || seen[major] {
			continue
		}

		seen[major] = true
		majors = append(majors, major)
	}

	sort.SliceStable(majors, func(i, j int) bool {
		a, _ := strconv.Atoi(majors[i])
		b, _ := strconv.Atoi(majors[j])
		return a > b
	})

	return majors
}

// MinorsForMajor returns the distinct "major.minor" groups among versions
// belonging to the given major, ordered descending by minor. Minor
// components that are not numeric are excluded.
func MinorsForMajor(versions []string, major string) []string {
	prefix := major + "."
	seen := make(map[string]bool)
	minors := make([]string, 0, len(versions))

	for _, v := range versions {
		if !strings.HasPrefix(v, prefix) {
			continue
		}

		rest := v[len(prefix):]
		minor, _, _ := strings.Cut(rest, ".")
		if _, err := strconv.Atoi(minor); err != nil {
			continue
		}

		group := prefix + minor
		if seen[group] {
			continue
		}

		seen[group] = true
		minors = append(minors, group)
	}

	sort.SliceStable(minors, func(i, j int) bool {
		return Compare(minors[i], minors[j]) > 0
	})

	return minors
}

// PatchesForMinor returns the full version strings belonging to the given
// "major.minor" group, ordered descending by full three-component numeric
// comparison.
func PatchesForMinor(versions []string, majorMinor string) []string {
	prefix := majorMinor + "."
	patches := make([]string, 0, len(versions))

	for _, v := range versions {
		if strings.HasPrefix(v, prefix) {
			patches = append(patches, v)
		}
	}

	sort.SliceStable(patches, func(i, j int) bool {
		return Compare(patches[i], patches[j]) > 0
	})

	return patches
}

// Descending sorts a version list by numeric precedence, newest first. The
// input slice is not modified.
func Descending(versions []string) []string {
	sorted := make([]string, len(versions))
	copy(sorted, versions)

	sort.SliceStable(sorted, func(i, j int) bool {
		return Compare(sorted[i], sorted[j]) > 0
	})

	return sorted
}

// Compare orders two version strings by numeric component comparison
// (major, then minor, then patch). Components that do not parse as
// integers compare as zero, which keeps malformed input from panicking
// and lets the stable sort preserve their relative order.
func Compare(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}

	for i := 0; i < n; i++ {
		av := componentValue(as, i)
		bv := componentValue(bs, i)

		if av != bv {
			if av > bv {
				return 1
			}
			return -1
		}
	}

	return 0
}

func componentValue(components []string, i int) int {
	if i >= len(components) {
		return 0
	}

	v, err := strconv.Atoi(components[i])
	if err != nil {
		return 0
	}

	return v
}
