// Package version carries the build identity stamped in at release
// time, with a fallback to module build info for source builds.
package version

import runtimeDebug "runtime/debug"

// Set via -ldflags by the release pipeline.
var (
	Version string
	Commit  string
)

func init() {
	buildInfo, ok := runtimeDebug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "" {
		Version = buildInfo.Main.Version
	}

	if Commit == "" {
		for _, setting := range buildInfo.Settings {
			if setting.Key == "vcs.revision" {
				Commit = setting.Value
				break
			}
		}
	}
}
