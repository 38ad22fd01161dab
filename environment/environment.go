// Package environment probes the local toolchain the setup flow depends
// on: node, npm, git and the Angular CLI. Probes never fail hard, a
// missing tool is a result, not an error.
package environment

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/safedep/dry/log"
)

// Display names for the probed tools.
const (
	ToolNode       = "Node.js"
	ToolNpm        = "npm"
	ToolGit        = "git"
	ToolAngularCLI = "Angular CLI"
	ToolNvm        = "nvm"
)

// ToolStatus is the outcome of probing one executable.
type ToolStatus struct {
	// Name is the display name of the tool
	Name string

	// Command is the executable that was probed
	Command string

	// Installed reports whether the executable was found on PATH
	Installed bool

	// Version as reported by the tool, without a leading "v"
	Version string

	// Path is the resolved executable path
	Path string
}

type probeSpec struct {
	name        string
	command     string
	versionArgs []string
	parse       func(output string) string
}

var probeSpecs = []probeSpec{
	{name: ToolNode, command: "node", versionArgs: []string{"--version"}, parse: extractVersion},
	{name: ToolNpm, command: "npm", versionArgs: []string{"--version"}, parse: extractVersion},
	{name: ToolGit, command: "git", versionArgs: []string{"--version"}, parse: extractVersion},
	{name: ToolAngularCLI, command: "ng", versionArgs: []string{"version"}, parse: extractAngularCLIVersion},
}

// Probe checks whether a single executable is installed and asks it for
// its version. The context bounds the version subprocess.
func Probe(ctx context.Context, name, command string, versionArgs ...string) ToolStatus {
	return probe(ctx, probeSpec{
		name:        name,
		command:     command,
		versionArgs: versionArgs,
		parse:       extractVersion,
	})
}

// CheckAll probes every tool the setup flow can make use of. Results come
// back in a fixed order: node, npm, git, Angular CLI, nvm.
func CheckAll(ctx context.Context) []ToolStatus {
	statuses := make([]ToolStatus, 0, len(probeSpecs)+1)

	for _, spec := range probeSpecs {
		statuses = append(statuses, probe(ctx, spec))
	}

	statuses = append(statuses, CheckNvm())

	return statuses
}

func probe(ctx context.Context, spec probeSpec) ToolStatus {
	status := ToolStatus{
		Name:    spec.name,
		Command: spec.command,
	}

	path, err := exec.LookPath(spec.command)
	if err != nil {
		log.Debugf("%s not found in PATH: %v", spec.command, err)
		return status
	}

	status.Installed = true
	status.Path = path

	output, err := exec.CommandContext(ctx, path, spec.versionArgs...).Output()
	if err != nil {
		// The tool exists but would not report a version. Treat it as
		// installed with an unknown version.
		log.Warnf("%s found at %s but '%s %s' failed: %v",
			spec.name, path, spec.command, strings.Join(spec.versionArgs, " "), err)
		return status
	}

	status.Version = spec.parse(string(output))
	return status
}

// CheckNvm detects nvm. It is a shell function rather than a binary, so
// LookPath never finds it; presence of NVM_DIR or the standard install
// script is the signal.
func CheckNvm() ToolStatus {
	status := ToolStatus{
		Name:    ToolNvm,
		Command: "nvm",
	}

	nvmDir := os.Getenv("NVM_DIR")
	if nvmDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return status
		}

		nvmDir = filepath.Join(home, ".nvm")
	}

	script := filepath.Join(nvmDir, "nvm.sh")
	if _, err := os.Stat(script); err != nil {
		return status
	}

	status.Installed = true
	status.Path = nvmDir
	return status
}

var versionPattern = regexp.MustCompile(`v?(\d+\.\d+\.\d+[^\s]*)`)

// extractVersion pulls the first dotted version out of a tool's version
// output, dropping any leading "v". Handles "v20.11.1", "10.2.4" and
// "git version 2.39.2" alike.
func extractVersion(output string) string {
	if match := versionPattern.FindStringSubmatch(output); len(match) > 1 {
		return match[1]
	}

	return ""
}

var angularCLIPattern = regexp.MustCompile(`Angular CLI:\s*(\d+\.\d+\.\d+[^\s]*)`)

// extractAngularCLIVersion reads the "Angular CLI: x.y.z" line out of the
// ng version banner.
func extractAngularCLIVersion(output string) string {
	if match := angularCLIPattern.FindStringSubmatch(output); len(match) > 1 {
		return match[1]
	}

	// Older CLI versions print the banner differently, fall back to the
	// first version looking token.
	return extractVersion(output)
}
