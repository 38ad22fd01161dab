// Package wizard drives the interactive project setup flow: environment
// checks, version selection, library resolution, scaffolding and the
// closing report. It owns the conversation with the user and delegates
// every side effect to the installer, scaffold and profile packages.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/safedep/dry/log"

	"github.com/jatinmourya/ng-angular-setup/clierror"
	"github.com/jatinmourya/ng-angular-setup/environment"
	"github.com/jatinmourya/ng-angular-setup/installer"
	"github.com/jatinmourya/ng-angular-setup/internal/eventlog"
	"github.com/jatinmourya/ng-angular-setup/internal/ui"
	"github.com/jatinmourya/ng-angular-setup/pkg/npm"
	"github.com/jatinmourya/ng-angular-setup/pkg/registry"
	"github.com/jatinmourya/ng-angular-setup/pkg/resolver"
	"github.com/jatinmourya/ng-angular-setup/pkg/versionset"
	"github.com/jatinmourya/ng-angular-setup/profile"
	"github.com/jatinmourya/ng-angular-setup/scaffold"
)

const (
	// cliPackage is the npm package whose release history drives the
	// Angular version picker.
	cliPackage = "@angular/cli"

	// maxNameAttempts bounds the project name prompt so a scripted or
	// non-interactive run cannot loop forever on a bad default.
	maxNameAttempts = 3

	// majorChoiceLimit keeps the version picker to recent releases.
	majorChoiceLimit = 6
)

// requiredTools must be installed before a project can be created. git
// and a global Angular CLI are optional, ng is fetched through npx on
// demand and git initialization is skipped when git is missing.
var requiredTools = []string{environment.ToolNode, environment.ToolNpm}

// SetupWizardConfig carries the flags and defaults the command layer
// collected before starting the flow.
type SetupWizardConfig struct {
	// TargetDir is the directory the project folder is created in.
	// Empty means the current directory.
	TargetDir string

	// DryRun logs external commands instead of executing them and
	// skips all file writes
	DryRun bool

	// SkipInstall scaffolds the project without installing packages
	SkipInstall bool

	// DefaultStyle is the stylesheet format preselected in the prompt
	DefaultStyle string

	// DefaultPackageManager runs the install commands unless the user
	// picks another one
	DefaultPackageManager string

	// Replay is a previously saved profile. When set the wizard skips
	// every prompt and reproduces the recorded choices.
	Replay *profile.Profile
}

// DefaultSetupWizardConfig returns a config suitable for running in the
// current directory with npm.
func DefaultSetupWizardConfig() SetupWizardConfig {
	return SetupWizardConfig{
		TargetDir:             ".",
		DefaultStyle:          "css",
		DefaultPackageManager: "npm",
	}
}

// setupAnswers is everything the flow needs to know before touching the
// filesystem, collected either from prompts or from a replayed profile.
type setupAnswers struct {
	projectName    string
	projectDir     string
	angularVersion string
	angularMajor   string
	nodeVersion    string
	routing        bool
	style          string
	packageManager string
	initGit        bool
	libraries      []resolver.LibraryRequest
}

// SetupWizard runs the project creation flow end to end.
type SetupWizard interface {
	Run(ctx context.Context) error
}

type setupWizard struct {
	config      SetupWizardConfig
	interaction SetupWizardInteraction

	registry   registry.Client
	resolver   resolver.Resolver
	scaffolder scaffold.Scaffolder

	// Swappable in tests so the flow can run without probing the host
	// or spawning processes.
	checkEnvironment func(ctx context.Context) []environment.ToolStatus
	validateNode     func(nodeVersion, angularMajor string) (bool, error)
	newInstaller     func(config installer.Config) (installer.Installer, error)
}

var _ SetupWizard = &setupWizard{}

// NewSetupWizard wires the flow with its collaborators. The scaffolder
// is optional, registry client and resolver are not.
func NewSetupWizard(config SetupWizardConfig, registryClient registry.Client,
	compatibilityResolver resolver.Resolver, scaffolder scaffold.Scaffolder,
	interaction SetupWizardInteraction) (*setupWizard, error) {
	if registryClient == nil {
		return nil, fmt.Errorf("setup wizard requires a registry client")
	}

	if compatibilityResolver == nil {
		return nil, fmt.Errorf("setup wizard requires a compatibility resolver")
	}

	if config.TargetDir == "" {
		config.TargetDir = "."
	}

	if config.DefaultStyle == "" {
		config.DefaultStyle = "css"
	}

	if config.DefaultPackageManager == "" {
		config.DefaultPackageManager = "npm"
	}

	return &setupWizard{
		config:           config,
		interaction:      interaction,
		registry:         registryClient,
		resolver:         compatibilityResolver,
		scaffolder:       scaffolder,
		checkEnvironment: environment.CheckAll,
		validateNode:     environment.ValidateNode,
		newInstaller: func(config installer.Config) (installer.Installer, error) {
			return installer.NewCommandInstaller(config)
		},
	}, nil
}

// Run executes the flow: check the environment, collect answers,
// resolve library versions, then create the project. Every exit path
// goes through finish so the closing report is rendered exactly once.
func (w *setupWizard) Run(ctx context.Context) error {
	report := ui.NewReportData()

	statuses := w.checkEnvironment(ctx)
	if err := w.requireTools(statuses); err != nil {
		return w.finish(report, err)
	}

	answers, err := w.collectAnswers(ctx, statuses)
	if err != nil {
		return w.finish(report, err)
	}

	report.ProjectName = answers.projectName
	report.AngularVersion = answers.angularVersion

	eventlog.LogRunStarted(answers.projectName, w.config.DryRun)
	eventlog.LogVersionSelected(answers.angularVersion)

	results, err := w.resolveLibraries(ctx, answers)
	if err != nil {
		return w.finish(report, err)
	}

	report.Results = results

	if err := w.execute(ctx, answers, results, report); err != nil {
		return w.finish(report, err)
	}

	return w.finish(report, nil)
}

func (w *setupWizard) finish(report *ui.ReportData, err error) error {
	w.clearStatus()

	switch {
	case err == nil:
		if w.config.DryRun {
			report.Outcome = ui.OutcomeDryRun
		}
	case errors.Is(err, ui.ErrAborted) || errors.Is(err, context.Canceled):
		report.Outcome = ui.OutcomeUserCancelled
	default:
		report.Outcome = ui.OutcomeError
		eventlog.LogError("setup did not complete", err)
	}

	w.showReport(report)

	return err
}

func (w *setupWizard) requireTools(statuses []environment.ToolStatus) error {
	missing := []string{}
	for _, name := range requiredTools {
		if tool := findTool(statuses, name); tool == nil || !tool.Installed {
			missing = append(missing, name)
		}
	}

	eventlog.LogEnvironmentChecked(missing)

	if len(missing) > 0 {
		return clierror.New(fmt.Sprintf("required tools missing: %s", strings.Join(missing, ", "))).
			WithCode(clierror.ErrCodeEnvironmentCheckFailed).
			WithHuman(fmt.Sprintf("%s must be installed before a project can be created.",
				strings.Join(missing, " and "))).
			WithHelp("Install Node.js (it bundles npm) from https://nodejs.org or via nvm, " +
				"then run 'ng-setup doctor' to verify the toolchain.")
	}

	if !gitInstalled(statuses) {
		w.showWarning("git is not installed, repository initialization will be skipped")
	}

	if tool := findTool(statuses, environment.ToolAngularCLI); tool == nil || !tool.Installed {
		w.showWarning("Angular CLI is not installed globally, npx will fetch it on demand")
	}

	return nil
}

func (w *setupWizard) collectAnswers(ctx context.Context, statuses []environment.ToolStatus) (*setupAnswers, error) {
	if w.config.Replay != nil {
		return w.answersFromProfile(statuses, w.config.Replay)
	}

	return w.promptForAnswers(ctx, statuses)
}

func (w *setupWizard) promptForAnswers(ctx context.Context, statuses []environment.ToolStatus) (*setupAnswers, error) {
	answers := &setupAnswers{}

	name, dir, err := w.projectNamePrompt()
	if err != nil {
		return nil, err
	}

	answers.projectName = name
	answers.projectDir = dir

	version, major, err := w.angularVersionPrompt(ctx)
	if err != nil {
		return nil, err
	}

	answers.angularVersion = version
	answers.angularMajor = major

	if node := findTool(statuses, environment.ToolNode); node != nil {
		answers.nodeVersion = node.Version
	}

	if err := w.checkNodeSupport(answers, statuses, true); err != nil {
		return nil, err
	}

	answers.routing, err = w.confirm("Add Angular routing?", true)
	if err != nil {
		return nil, err
	}

	answers.style, err = w.stylePrompt()
	if err != nil {
		return nil, err
	}

	answers.packageManager, err = w.packageManagerPrompt()
	if err != nil {
		return nil, err
	}

	answers.initGit = gitInstalled(statuses)
	if answers.initGit {
		answers.initGit, err = w.confirm("Initialize a git repository with an initial commit?", true)
		if err != nil {
			return nil, err
		}
	}

	answers.libraries, err = w.libraryPrompt()
	if err != nil {
		return nil, err
	}

	return answers, nil
}

// answersFromProfile reproduces a recorded session. Saved library
// versions are pinned so the replay creates the same project even when
// newer releases exist.
func (w *setupWizard) answersFromProfile(statuses []environment.ToolStatus, saved *profile.Profile) (*setupAnswers, error) {
	if err := saved.Validate(); err != nil {
		return nil, err
	}

	if err := validateProjectName(saved.ProjectName); err != nil {
		return nil, fmt.Errorf("profile has an unusable project name: %w", err)
	}

	dir := filepath.Join(w.config.TargetDir, saved.ProjectName)
	if _, err := os.Stat(dir); err == nil {
		return nil, clierror.New(fmt.Sprintf("target directory exists: %s", dir)).
			WithCode(clierror.ErrCodeInvalidArgument).
			WithHuman(fmt.Sprintf("%s already exists.", dir)).
			WithHelp("Remove the directory or replay the profile elsewhere with --dir.")
	}

	answers := &setupAnswers{
		projectName:    saved.ProjectName,
		projectDir:     dir,
		angularVersion: saved.AngularVersion,
		angularMajor:   versionset.Major(saved.AngularVersion),
		routing:        saved.Routing,
		style:          valueOrDefault(saved.Style, w.config.DefaultStyle),
		packageManager: valueOrDefault(saved.PackageManager, w.config.DefaultPackageManager),
		initGit:        gitInstalled(statuses),
	}

	if node := findTool(statuses, environment.ToolNode); node != nil {
		answers.nodeVersion = node.Version
	}

	for _, library := range saved.Libraries {
		answers.libraries = append(answers.libraries, resolver.LibraryRequest{
			Name:             library.Name,
			RequestedVersion: library.Version,
			DevDependency:    library.Dev,
		})
	}

	if err := w.checkNodeSupport(answers, statuses, false); err != nil {
		return nil, err
	}

	log.Debugf("Replaying profile %s for project %s", saved.SessionID, saved.ProjectName)

	return answers, nil
}

func (w *setupWizard) projectNamePrompt() (string, string, error) {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name, err := w.askString("Project name", "my-angular-app")
		if err != nil {
			return "", "", err
		}

		name = strings.TrimSpace(name)
		if err := validateProjectName(name); err != nil {
			w.showWarning(err.Error())
			continue
		}

		dir := filepath.Join(w.config.TargetDir, name)
		if _, err := os.Stat(dir); err == nil {
			w.showWarning(fmt.Sprintf("%s already exists, pick another name", dir))
			continue
		}

		return name, dir, nil
	}

	return "", "", clierror.New("no usable project name").
		WithCode(clierror.ErrCodeInvalidArgument).
		WithHuman(fmt.Sprintf("No usable project name after %d attempts.", maxNameAttempts)).
		WithHelp("Project names are lowercase kebab-case and must not collide with an existing directory.")
}

// angularVersionPrompt offers the recent Angular majors from the live
// release history of @angular/cli. When the registry is unreachable the
// flow degrades to the latest dist-tag instead of failing.
func (w *setupWizard) angularVersionPrompt(ctx context.Context) (string, string, error) {
	w.setStatus("Fetching Angular release history")
	metadata, _, err := w.registry.PackageMetadata(ctx, cliPackage)
	w.clearStatus()

	// Only context cancellation surfaces as an error from the registry
	// client, registry failures come back as nil metadata.
	if err != nil {
		return "", "", err
	}

	if metadata == nil {
		w.showWarning("npm registry unavailable, falling back to the latest Angular release")
		return npm.LatestTag, "", nil
	}

	stable := versionset.FilterStable(metadata.VersionList())
	majors := versionset.Majors(stable)
	if len(majors) == 0 {
		w.showWarning("no stable Angular releases found, falling back to the latest dist-tag")
		return npm.LatestTag, "", nil
	}

	if len(majors) > majorChoiceLimit {
		majors = majors[:majorChoiceLimit]
	}

	options := make([]ui.Option, 0, len(majors))
	for _, major := range majors {
		newest := newestInMajor(stable, major)

		hint := fmt.Sprintf("newest %s", newest)
		if requirement := environment.NodeRequirement(major); requirement != "" {
			hint = fmt.Sprintf("%s, node %s", hint, requirement)
		}

		options = append(options, ui.Option{Label: "Angular " + major, Hint: hint})
	}

	choice, err := w.selectOption("Angular version", options)
	if err != nil {
		return "", "", err
	}

	if choice < 0 || choice >= len(majors) {
		return "", "", fmt.Errorf("version choice out of range: %d", choice)
	}

	major := majors[choice]

	return newestInMajor(stable, major), major, nil
}

// checkNodeSupport warns when the local node cannot run the selected
// Angular major. Interactive runs may abort here, replays never do.
func (w *setupWizard) checkNodeSupport(answers *setupAnswers, statuses []environment.ToolStatus, interactive bool) error {
	if answers.nodeVersion == "" || answers.angularMajor == "" {
		return nil
	}

	supported, err := w.validateNode(answers.nodeVersion, answers.angularMajor)
	if err != nil {
		log.Warnf("Could not compare node %s against Angular %s: %v",
			answers.nodeVersion, answers.angularMajor, err)
		return nil
	}

	if supported {
		return nil
	}

	w.showWarning(fmt.Sprintf("node %s does not satisfy Angular %s (needs %s)",
		answers.nodeVersion, answers.angularMajor, environment.NodeRequirement(answers.angularMajor)))

	if recommended := environment.RecommendedNode(answers.angularMajor); recommended != "" {
		advice := fmt.Sprintf("nvm install %s && nvm use %s", recommended, recommended)
		if nvm := findTool(statuses, environment.ToolNvm); nvm != nil && nvm.Installed {
			w.showWarning("Switch versions with: " + advice)
		} else {
			w.showWarning("Install a supported version, for example with nvm: " + advice)
		}
	}

	if !interactive {
		return nil
	}

	proceed, err := w.confirm("Continue with the current node version anyway?", false)
	if err != nil {
		return err
	}

	if !proceed {
		return ui.ErrAborted
	}

	return nil
}

var styleChoices = []struct {
	name string
	hint string
}{
	{"css", "plain CSS"},
	{"scss", "Sass, SCSS syntax"},
	{"sass", "Sass, indented syntax"},
	{"less", "Less"},
}

func (w *setupWizard) stylePrompt() (string, error) {
	options := make([]ui.Option, 0, len(styleChoices))
	for _, choice := range styleChoices {
		hint := choice.hint
		if choice.name == w.config.DefaultStyle {
			hint = hint + ", default"
		}

		options = append(options, ui.Option{Label: choice.name, Hint: hint})
	}

	picked, err := w.selectOption("Stylesheet format", options)
	if err != nil {
		return "", err
	}

	if picked < 0 || picked >= len(styleChoices) {
		return w.config.DefaultStyle, nil
	}

	return styleChoices[picked].name, nil
}

var packageManagerChoices = []struct {
	name string
	hint string
}{
	{"npm", "bundled with Node.js"},
	{"yarn", "must be installed globally"},
	{"pnpm", "must be installed globally"},
}

func (w *setupWizard) packageManagerPrompt() (string, error) {
	options := make([]ui.Option, 0, len(packageManagerChoices))
	for _, choice := range packageManagerChoices {
		hint := choice.hint
		if choice.name == w.config.DefaultPackageManager {
			hint = hint + ", default"
		}

		options = append(options, ui.Option{Label: choice.name, Hint: hint})
	}

	picked, err := w.selectOption("Package manager", options)
	if err != nil {
		return "", err
	}

	if picked < 0 || picked >= len(packageManagerChoices) {
		return w.config.DefaultPackageManager, nil
	}

	return packageManagerChoices[picked].name, nil
}

func (w *setupWizard) libraryPrompt() ([]resolver.LibraryRequest, error) {
	entries := Catalog()

	options := make([]ui.Option, 0, len(entries))
	preselected := []int{}
	for i, entry := range entries {
		hint := entry.Description
		if entry.Dev {
			hint = hint + " (dev)"
		}

		options = append(options, ui.Option{Label: entry.Name, Hint: hint})
		if entry.Preselected {
			preselected = append(preselected, i)
		}
	}

	picked, err := w.multiSelect("Companion libraries", options, preselected)
	if err != nil {
		return nil, err
	}

	requests := make([]resolver.LibraryRequest, 0, len(picked))
	for _, index := range picked {
		if index < 0 || index >= len(entries) {
			continue
		}

		entry := entries[index]
		requests = append(requests, resolver.LibraryRequest{
			Name:          entry.Name,
			DevDependency: entry.Dev,
		})
	}

	return requests, nil
}

// resolveLibraries resolves each selected library against the target
// Angular version. A library that cannot be resolved is skipped with a
// warning rather than failing the whole run.
func (w *setupWizard) resolveLibraries(ctx context.Context, answers *setupAnswers) ([]*resolver.CompatibilityResult, error) {
	if len(answers.libraries) == 0 {
		return nil, nil
	}

	results := make([]*resolver.CompatibilityResult, 0, len(answers.libraries))
	for _, request := range answers.libraries {
		w.setStatus(fmt.Sprintf("Resolving %s against Angular %s", request.Name, answers.angularVersion))

		result, err := w.resolver.Resolve(ctx, request, answers.angularVersion)
		if err != nil {
			if ctx.Err() != nil {
				w.clearStatus()
				return nil, err
			}

			log.Warnf("Skipping %s: %v", request.Name, err)
			w.showWarning(fmt.Sprintf("skipping %s: %v", request.Name, err))
			continue
		}

		eventlog.LogLibraryResolved(result.Library, result.Version, result.Source.String(), result.Warning)
		results = append(results, result)
	}
	w.clearStatus()

	return w.reviewWarnings(results)
}

// reviewWarnings walks the results that resolved without compatibility
// evidence and lets the user install anyway, pin a version manually or
// drop the library. Replays keep the recorded outcome untouched.
func (w *setupWizard) reviewWarnings(results []*resolver.CompatibilityResult) ([]*resolver.CompatibilityResult, error) {
	if w.config.Replay != nil {
		return results, nil
	}

	needsReview := false
	for _, result := range results {
		if result.Warning {
			needsReview = true
			break
		}
	}

	if !needsReview {
		return results, nil
	}

	w.showResolution(results)

	kept := make([]*resolver.CompatibilityResult, 0, len(results))
	for _, result := range results {
		if !result.Warning {
			kept = append(kept, result)
			continue
		}

		options := []ui.Option{
			{Label: fmt.Sprintf("Install %s@%s anyway", result.Library, result.Version)},
			{Label: "Enter a version manually"},
			{Label: "Skip this library"},
		}

		choice, err := w.selectOption(
			fmt.Sprintf("No confirmed compatible version of %s (%s)", result.Library, result.Reason), options)
		if err != nil {
			return nil, err
		}

		switch choice {
		case 0:
			kept = append(kept, result)
		case 1:
			version, err := w.askString(fmt.Sprintf("Version of %s to install", result.Library), result.Version)
			if err != nil {
				return nil, err
			}

			version = strings.TrimSpace(version)
			if version == "" || version == result.Version {
				kept = append(kept, result)
				continue
			}

			kept = append(kept, &resolver.CompatibilityResult{
				Library: result.Library,
				Version: version,
				Source:  resolver.SourceDynamic,
				Reason:  resolver.ReasonPinnedVersion,
			})
		default:
			log.Debugf("Dropped %s from the install set", result.Library)
		}
	}

	return kept, nil
}

func (w *setupWizard) execute(ctx context.Context, answers *setupAnswers,
	results []*resolver.CompatibilityResult, report *ui.ReportData) error {
	projectInstaller, err := w.newInstaller(installer.Config{
		DryRun:         w.config.DryRun,
		WorkDir:        answers.projectDir,
		PackageManager: answers.packageManager,
	})
	if err != nil {
		return err
	}

	w.setStatus(fmt.Sprintf("Creating %s with Angular %s", answers.projectName, answers.angularVersion))
	err = projectInstaller.AngularNew(ctx, installer.NewProjectOptions{
		Name:        answers.projectName,
		CLIVersion:  answers.angularVersion,
		Routing:     answers.routing,
		Style:       answers.style,
		SkipInstall: w.config.SkipInstall,
	})
	w.clearStatus()
	if err != nil {
		return fmt.Errorf("failed to scaffold the workspace: %w", err)
	}

	if w.config.SkipInstall {
		if len(results) > 0 {
			log.Debugf("Skipping installation of %d libraries", len(results))
		}
	} else if err := w.installLibraries(ctx, projectInstaller, answers, results); err != nil {
		return err
	}

	if w.config.DryRun {
		log.Debugf("Dry run, skipping boilerplate and profile writes")
	} else {
		w.writeBoilerplate(answers, results, report)

		if err := w.writeProfile(answers, results); err != nil {
			log.Warnf("Could not save the setup profile: %v", err)
		}
	}

	// git runs last so the initial commit captures the boilerplate and
	// the profile alongside the generated workspace.
	if answers.initGit {
		if err := projectInstaller.InitGitRepository(ctx); err != nil {
			if ctx.Err() != nil {
				return err
			}

			log.Warnf("git initialization failed: %v", err)
			w.showWarning(fmt.Sprintf("git initialization failed: %v", err))
		}
	}

	if !w.config.DryRun {
		eventlog.LogProjectCreated(answers.projectName, answers.angularVersion, len(results))
	}

	return nil
}

func (w *setupWizard) installLibraries(ctx context.Context, projectInstaller installer.Installer,
	answers *setupAnswers, results []*resolver.CompatibilityResult) error {
	runtimeSpecs, devSpecs := splitInstallSpecs(results, devLibraries(answers.libraries))

	if len(runtimeSpecs) > 0 {
		w.setStatus(fmt.Sprintf("Installing %d libraries", len(runtimeSpecs)))
		eventlog.LogInstallStarted(answers.packageManager, runtimeSpecs)

		err := projectInstaller.InstallPackages(ctx, runtimeSpecs, false)
		w.clearStatus()
		if err != nil {
			return fmt.Errorf("failed to install libraries: %w", err)
		}
	}

	if len(devSpecs) > 0 {
		w.setStatus(fmt.Sprintf("Installing %d dev libraries", len(devSpecs)))
		eventlog.LogInstallStarted(answers.packageManager, devSpecs)

		err := projectInstaller.InstallPackages(ctx, devSpecs, true)
		w.clearStatus()
		if err != nil {
			return fmt.Errorf("failed to install dev libraries: %w", err)
		}
	}

	return nil
}

// writeBoilerplate adds folders and docs on top of the generated
// workspace. A failure here warns instead of unwinding an already
// scaffolded project.
func (w *setupWizard) writeBoilerplate(answers *setupAnswers,
	results []*resolver.CompatibilityResult, report *ui.ReportData) {
	if w.scaffolder == nil {
		return
	}

	dev := devLibraries(answers.libraries)
	libraries := make([]scaffold.Library, 0, len(results))
	for _, result := range results {
		libraries = append(libraries, scaffold.Library{
			Name:    result.Library,
			Version: result.Version,
			Dev:     dev[result.Library],
		})
	}

	written, err := w.scaffolder.Write(scaffold.Config{
		ProjectDir:     answers.projectDir,
		ProjectName:    answers.projectName,
		AngularVersion: answers.angularVersion,
		NodeVersion:    answers.nodeVersion,
		Style:          answers.style,
		Routing:        answers.routing,
		Libraries:      libraries,
	})
	if err != nil {
		log.Warnf("Boilerplate writing failed: %v", err)
		w.showWarning(fmt.Sprintf("boilerplate writing failed: %v", err))
		return
	}

	report.CreatedFiles = written
}

// writeProfile records the session choices next to the project so the
// exact setup can be replayed later.
func (w *setupWizard) writeProfile(answers *setupAnswers, results []*resolver.CompatibilityResult) error {
	record := profile.New(answers.projectName)
	record.AngularVersion = answers.angularVersion
	record.Style = answers.style
	record.Routing = answers.routing
	record.PackageManager = answers.packageManager

	dev := devLibraries(answers.libraries)
	for _, result := range results {
		record.Libraries = append(record.Libraries, profile.Library{
			Name:    result.Library,
			Version: result.Version,
			Dev:     dev[result.Library],
			Source:  result.Source.String(),
			Warning: result.Warning,
		})
	}

	return record.Save(filepath.Join(answers.projectDir, profile.DefaultFileName))
}

func findTool(statuses []environment.ToolStatus, name string) *environment.ToolStatus {
	for i := range statuses {
		if statuses[i].Name == name {
			return &statuses[i]
		}
	}

	return nil
}

func gitInstalled(statuses []environment.ToolStatus) bool {
	tool := findTool(statuses, environment.ToolGit)
	return tool != nil && tool.Installed
}

func devLibraries(requests []resolver.LibraryRequest) map[string]bool {
	dev := make(map[string]bool, len(requests))
	for _, request := range requests {
		if request.DevDependency {
			dev[request.Name] = true
		}
	}

	return dev
}

func splitInstallSpecs(results []*resolver.CompatibilityResult, dev map[string]bool) ([]string, []string) {
	runtimeSpecs := []string{}
	devSpecs := []string{}
	for _, result := range results {
		if dev[result.Library] {
			devSpecs = append(devSpecs, result.InstallSpec())
		} else {
			runtimeSpecs = append(runtimeSpecs, result.InstallSpec())
		}
	}

	return runtimeSpecs, devSpecs
}

func newestInMajor(versions []string, major string) string {
	for _, version := range versionset.Descending(versions) {
		if versionset.Major(version) == major {
			return version
		}
	}

	return npm.LatestTag
}

func valueOrDefault(value, fallback string) string {
	if value != "" {
		return value
	}

	return fallback
}
