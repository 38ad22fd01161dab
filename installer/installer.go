// Package installer runs the external commands that materialize a
// project: the Angular CLI through npx, the package manager and git.
// Commands inherit the caller's terminal so their own progress output
// stays visible.
package installer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/safedep/dry/log"
)

const initialCommitMessage = "Initial commit"

// Installer is the contract for everything that shells out during
// project creation.
type Installer interface {
	// AngularNew scaffolds a new Angular workspace with the pinned CLI
	// version
	AngularNew(ctx context.Context, opts NewProjectOptions) error

	// InstallPackages installs the given name@version specs in the
	// project directory, retrying once with --legacy-peer-deps when the
	// package manager rejects the dependency tree
	InstallPackages(ctx context.Context, specs []string, dev bool) error

	// InitGitRepository initializes a git repository in the project
	// directory and records the scaffold as the first commit
	InitGitRepository(ctx context.Context) error
}

// NewProjectOptions carries the answers that shape the generated
// workspace.
type NewProjectOptions struct {
	// Name of the project, becomes the directory name
	Name string

	// CLIVersion pins @angular/cli for the npx invocation. Empty means
	// latest.
	CLIVersion string

	// Routing generates an app routing module
	Routing bool

	// Style is the stylesheet format (css, scss, sass, less)
	Style string

	// SkipInstall leaves node_modules to a later explicit install
	SkipInstall bool
}

type Config struct {
	// DryRun logs commands instead of executing them
	DryRun bool

	// WorkDir is the project directory. Package manager and git commands
	// run inside it; AngularNew runs in its parent and creates it.
	WorkDir string

	// PackageManager is the executable used for installs. Defaults to
	// npm.
	PackageManager string
}

func DefaultConfig() Config {
	return Config{
		PackageManager: "npm",
	}
}

type commandInstaller struct {
	config Config

	// runCommand is swappable in tests
	runCommand func(ctx context.Context, dir, exe string, args []string) error
}

var _ Installer = &commandInstaller{}

func NewCommandInstaller(config Config) (*commandInstaller, error) {
	if config.WorkDir == "" {
		return nil, fmt.Errorf("installer requires a project directory")
	}

	if config.PackageManager == "" {
		config.PackageManager = "npm"
	}

	installer := &commandInstaller{config: config}
	installer.runCommand = installer.execute

	return installer, nil
}

func (i *commandInstaller) AngularNew(ctx context.Context, opts NewProjectOptions) error {
	if opts.Name == "" {
		return fmt.Errorf("project name is required")
	}

	parent := filepath.Dir(i.config.WorkDir)
	return i.runCommand(ctx, parent, "npx", angularNewArgs(opts))
}

func (i *commandInstaller) InstallPackages(ctx context.Context, specs []string, dev bool) error {
	if len(specs) == 0 {
		return nil
	}

	err := i.runCommand(ctx, i.config.WorkDir, i.config.PackageManager,
		installArgs(specs, dev, false))
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return err
	}

	// npm 7 and later fail hard on peer dependency conflicts that older
	// versions only warned about. Retrying with --legacy-peer-deps
	// mirrors the usual manual fix.
	log.Warnf("install failed, retrying with --legacy-peer-deps: %v", err)

	return i.runCommand(ctx, i.config.WorkDir, i.config.PackageManager,
		installArgs(specs, dev, true))
}

func (i *commandInstaller) InitGitRepository(ctx context.Context) error {
	steps := gitInitArgs(initialCommitMessage)

	for _, args := range steps {
		if err := i.runCommand(ctx, i.config.WorkDir, "git", args); err != nil {
			return err
		}
	}

	return nil
}

// execute wires the command to the caller's terminal. The spawned tools
// render their own progress there.
func (i *commandInstaller) execute(ctx context.Context, dir, exe string, args []string) error {
	if i.config.DryRun {
		log.Debugf("Dry run: skipping execution of command: %s %s",
			exe, strings.Join(args, " "))
		return nil
	}

	log.Debugf("Executing command: %s %s", exe, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// We fail based on the executed command's exit code
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", exe, err)
	}

	return nil
}
