package installer

import "fmt"

// angularNewArgs builds the npx argument list for scaffolding a
// workspace with a pinned CLI version. --skip-git keeps repository
// initialization an explicit, separate step and --defaults suppresses
// the CLI's own prompts, every answer is already collected.
func angularNewArgs(opts NewProjectOptions) []string {
	cliVersion := opts.CLIVersion
	if cliVersion == "" {
		cliVersion = "latest"
	}

	style := opts.Style
	if style == "" {
		style = "css"
	}

	args := []string{
		"--yes",
		fmt.Sprintf("@angular/cli@%s", cliVersion),
		"new",
		opts.Name,
		fmt.Sprintf("--routing=%t", opts.Routing),
		fmt.Sprintf("--style=%s", style),
		"--skip-git",
		"--defaults",
	}

	if opts.SkipInstall {
		args = append(args, "--skip-install")
	}

	return args
}

// installArgs builds the package manager argument list for one install
// invocation.
func installArgs(specs []string, dev bool, legacyPeerDeps bool) []string {
	args := make([]string, 0, len(specs)+3)
	args = append(args, "install")
	args = append(args, specs...)

	if dev {
		args = append(args, "--save-dev")
	}

	if legacyPeerDeps {
		args = append(args, "--legacy-peer-deps")
	}

	return args
}

// gitInitArgs builds the git invocations that turn the scaffolded
// directory into a repository with a single commit.
func gitInitArgs(message string) [][]string {
	return [][]string{
		{"init"},
		{"add", "-A"},
		{"commit", "-m", message},
	}
}
