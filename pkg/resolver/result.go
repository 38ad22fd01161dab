package resolver

import "fmt"

// Source records whether a version was chosen from live registry data or
// by falling back without compatibility evidence.
type Source int

const (
	// SourceDynamic means the version was confirmed against registry data.
	SourceDynamic Source = iota
	// SourceFallback means the version was chosen without compatibility
	// evidence, because lookup was unavailable or inconclusive.
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceDynamic:
		return "dynamic"
	case SourceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Reason strings attached to every CompatibilityResult. These are stable
// output, tests and callers match on them.
const (
	ReasonPinnedVersion       = "requested version pinned"
	ReasonMetadataUnavailable = "metadata unavailable"
	ReasonMatchedMajor        = "matched major version"
	ReasonNoPeerDependency    = "no peer dependency declared"
	ReasonPeerSatisfied       = "peer dependency satisfied"
	ReasonNoCompatibleVersion = "no compatible version found"
)

// LibraryRequest describes one library the caller wants installed into the
// generated project. RequestedVersion is "latest" (or empty) for automatic
// resolution, or an explicit version the user pinned.
type LibraryRequest struct {
	Name             string
	RequestedVersion string
	DevDependency    bool
}

// CompatibilityResult is the outcome of resolving one library against a
// target framework version. Produced fresh per call, never persisted by
// the resolver itself.
type CompatibilityResult struct {
	// Library is the requested package name.
	Library string

	// Version is the concrete version specifier to install. May be the
	// literal "latest" dist-tag name when metadata was unavailable.
	Version string

	// Source records how the version was chosen.
	Source Source

	// Reason is one of the Reason constants above.
	Reason string

	// PeerDependency is the peer range that confirmed compatibility.
	// Only set for dynamic results resolved through a satisfied peer
	// dependency; a fallback result never carries one.
	PeerDependency string

	// Warning marks a result the caller must surface prominently and
	// offer to override or skip.
	Warning bool
}

// InstallSpec returns the name@version argument understood by npm.
func (r *CompatibilityResult) InstallSpec() string {
	return fmt.Sprintf("%s@%s", r.Library, r.Version)
}
