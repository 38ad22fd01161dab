// Package npm defines the JSON documents exchanged with an npm compatible
// package registry. Only the fields this tool reads are modelled; the
// registry returns far more.
package npm

// PackageMetadata is the registry document returned by GET /{package}.
// Versions is keyed by version string; the key set is the full list of
// published versions for the package.
type PackageMetadata struct {
	Name     string                     `json:"name"`
	DistTags map[string]string          `json:"dist-tags"`
	Versions map[string]VersionManifest `json:"versions"`
}

// VersionManifest is the per-version document returned by
// GET /{package}/{version}. PeerDependencies carries the version ranges a
// library expects its host application to satisfy.
type VersionManifest struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Deprecated       string            `json:"deprecated,omitempty"`
	Dependencies     map[string]string `json:"dependencies,omitempty"`
	PeerDependencies map[string]string `json:"peerDependencies,omitempty"`
}

// LatestTag is the dist-tag the registry moves on every stable publish.
const LatestTag = "latest"

// Latest returns the version the "latest" dist-tag points at, or an empty
// string if the package has no such tag.
func (m *PackageMetadata) Latest() string {
	if m == nil || m.DistTags == nil {
		return ""
	}

	return m.DistTags[LatestTag]
}

// VersionList returns the published version strings in unspecified order.
func (m *PackageMetadata) VersionList() []string {
	if m == nil {
		return nil
	}

	versions := make([]string, 0, len(m.Versions))
	for v := range m.Versions {
		versions = append(versions, v)
	}

	return versions
}

// HasVersion reports whether the exact version string has been published.
func (m *PackageMetadata) HasVersion(version string) bool {
	if m == nil {
		return false
	}

	_, ok := m.Versions[version]
	return ok
}
