package wizard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jatinmourya/ng-angular-setup/clierror"
	"github.com/jatinmourya/ng-angular-setup/environment"
	"github.com/jatinmourya/ng-angular-setup/installer"
	"github.com/jatinmourya/ng-angular-setup/internal/ui"
	"github.com/jatinmourya/ng-angular-setup/pkg/npm"
	"github.com/jatinmourya/ng-angular-setup/pkg/registry"
	"github.com/jatinmourya/ng-angular-setup/pkg/resolver"
	"github.com/jatinmourya/ng-angular-setup/profile"
	"github.com/jatinmourya/ng-angular-setup/scaffold"
)

// fakeRegistryClient serves canned metadata documents. A package without
// an entry behaves like an unreachable registry, matching the real
// client's nil-metadata contract.
type fakeRegistryClient struct {
	metadata map[string]*npm.PackageMetadata
}

var _ registry.Client = &fakeRegistryClient{}

func (f *fakeRegistryClient) PackageMetadata(ctx context.Context, name string) (*npm.PackageMetadata, registry.FetchStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, registry.StatusUnreachable, err
	}

	if metadata, ok := f.metadata[name]; ok {
		return metadata, registry.StatusFetched, nil
	}

	return nil, registry.StatusUnreachable, nil
}

func (f *fakeRegistryClient) PeerDependencies(ctx context.Context, name, version string) (map[string]string, error) {
	metadata, ok := f.metadata[name]
	if !ok {
		return map[string]string{}, nil
	}

	return metadata.Versions[version].PeerDependencies, nil
}

// stubResolver returns scripted results per library name.
type stubResolver struct {
	results map[string]*resolver.CompatibilityResult
	errs    map[string]error
}

var _ resolver.Resolver = &stubResolver{}

func (s *stubResolver) Resolve(ctx context.Context, req resolver.LibraryRequest, targetVersion string) (*resolver.CompatibilityResult, error) {
	if err, ok := s.errs[req.Name]; ok {
		return nil, err
	}

	if result, ok := s.results[req.Name]; ok {
		return result, nil
	}

	return nil, fmt.Errorf("no scripted result for %s", req.Name)
}

func (s *stubResolver) ResolveAll(ctx context.Context, reqs []resolver.LibraryRequest, targetVersion string) ([]*resolver.CompatibilityResult, error) {
	results := make([]*resolver.CompatibilityResult, 0, len(reqs))
	for _, req := range reqs {
		result, err := s.Resolve(ctx, req, targetVersion)
		if err != nil {
			continue
		}

		results = append(results, result)
	}

	return results, nil
}

// fakeInstaller records every call as a step string on the harness. It
// creates the project directory like ng new would, so the scaffolder
// and the profile writer see a real target.
type fakeInstaller struct {
	harness *wizardHarness
	config  installer.Config
}

var _ installer.Installer = &fakeInstaller{}

func (f *fakeInstaller) AngularNew(ctx context.Context, opts installer.NewProjectOptions) error {
	f.harness.steps = append(f.harness.steps, fmt.Sprintf("new %s@%s", opts.Name, opts.CLIVersion))
	if f.harness.failOn == "new" {
		return errors.New("ng new failed")
	}

	if f.config.DryRun {
		return nil
	}

	return os.MkdirAll(f.config.WorkDir, 0o755)
}

func (f *fakeInstaller) InstallPackages(ctx context.Context, specs []string, dev bool) error {
	label := "install"
	if dev {
		label = "install-dev"
	}

	f.harness.steps = append(f.harness.steps, label+" "+strings.Join(specs, " "))
	if f.harness.failOn == label {
		return errors.New("npm install failed")
	}

	return nil
}

func (f *fakeInstaller) InitGitRepository(ctx context.Context) error {
	f.harness.steps = append(f.harness.steps, "git-init")
	if f.harness.failOn == "git-init" {
		return errors.New("git init failed")
	}

	return nil
}

// wizardHarness scripts every prompt answer and records every side
// effect of a run.
type wizardHarness struct {
	t *testing.T

	config   SetupWizardConfig
	statuses []environment.ToolStatus
	failOn   string

	steps    []string
	warnings []string
	reports  []*ui.ReportData

	textAnswers []string
	selections  []int
	confirms    []bool
	multiPicks  [][]int
}

func newWizardHarness(t *testing.T) *wizardHarness {
	config := DefaultSetupWizardConfig()
	config.TargetDir = t.TempDir()

	return &wizardHarness{
		t:        t,
		config:   config,
		statuses: healthyStatuses(),
	}
}

func healthyStatuses() []environment.ToolStatus {
	return []environment.ToolStatus{
		{Name: environment.ToolNode, Command: "node", Installed: true, Version: "20.11.1", Path: "/usr/bin/node"},
		{Name: environment.ToolNpm, Command: "npm", Installed: true, Version: "10.2.4", Path: "/usr/bin/npm"},
		{Name: environment.ToolGit, Command: "git", Installed: true, Version: "2.43.0", Path: "/usr/bin/git"},
		{Name: environment.ToolAngularCLI, Command: "ng", Installed: true, Version: "17.3.8", Path: "/usr/local/bin/ng"},
		{Name: environment.ToolNvm, Command: "nvm", Installed: false},
	}
}

func (h *wizardHarness) interaction() SetupWizardInteraction {
	return SetupWizardInteraction{
		ShowWarning: func(message string) {
			h.warnings = append(h.warnings, message)
		},
		SelectOption: func(title string, options []ui.Option) (int, error) {
			require.NotEmpty(h.t, h.selections, "unexpected select: %s", title)

			next := h.selections[0]
			h.selections = h.selections[1:]
			return next, nil
		},
		MultiSelect: func(title string, options []ui.Option, preselected []int) ([]int, error) {
			require.NotEmpty(h.t, h.multiPicks, "unexpected multi select: %s", title)

			next := h.multiPicks[0]
			h.multiPicks = h.multiPicks[1:]
			return next, nil
		},
		Confirm: func(question string, defaultYes bool) (bool, error) {
			require.NotEmpty(h.t, h.confirms, "unexpected confirm: %s", question)

			next := h.confirms[0]
			h.confirms = h.confirms[1:]
			return next, nil
		},
		AskString: func(question, defaultValue string) (string, error) {
			require.NotEmpty(h.t, h.textAnswers, "unexpected prompt: %s", question)

			next := h.textAnswers[0]
			h.textAnswers = h.textAnswers[1:]
			return next, nil
		},
		ShowReport: func(data *ui.ReportData) {
			h.reports = append(h.reports, data)
		},
	}
}

// buildWizard wires a wizard with the environment probe and the
// installer swapped for harness fakes.
func (h *wizardHarness) buildWizard(client registry.Client, res resolver.Resolver,
	scaffolder scaffold.Scaffolder, interaction SetupWizardInteraction) *setupWizard {
	w, err := NewSetupWizard(h.config, client, res, scaffolder, interaction)
	require.NoError(h.t, err)

	w.checkEnvironment = func(ctx context.Context) []environment.ToolStatus {
		return h.statuses
	}
	w.newInstaller = func(config installer.Config) (installer.Installer, error) {
		return &fakeInstaller{harness: h, config: config}, nil
	}

	return w
}

// defaultWizard uses the real resolver and scaffolder over a fake
// registry loaded with Angular release data.
func (h *wizardHarness) defaultWizard() *setupWizard {
	client := angularRegistry()

	res, err := resolver.NewCompatibilityResolver(resolver.DefaultConfig(), client)
	require.NoError(h.t, err)

	scaffolder, err := scaffold.NewFileScaffolder()
	require.NoError(h.t, err)

	return h.buildWizard(client, res, scaffolder, h.interaction())
}

func (h *wizardHarness) projectDir(name string) string {
	return filepath.Join(h.config.TargetDir, name)
}

func angularRegistry() *fakeRegistryClient {
	cliVersions := map[string]npm.VersionManifest{}
	for _, v := range []string{"16.2.12", "17.0.0", "17.3.8", "18.0.0", "18.2.1", "19.0.0-next.0"} {
		cliVersions[v] = npm.VersionManifest{Name: "@angular/cli", Version: v}
	}

	return &fakeRegistryClient{
		metadata: map[string]*npm.PackageMetadata{
			"@angular/cli": {
				Name:     "@angular/cli",
				DistTags: map[string]string{"latest": "18.2.1"},
				Versions: cliVersions,
			},
			"@angular/material": {
				Name:     "@angular/material",
				DistTags: map[string]string{"latest": "18.2.0"},
				Versions: map[string]npm.VersionManifest{
					"17.3.2": {Version: "17.3.2", PeerDependencies: map[string]string{"@angular/core": "^17.0.0"}},
					"18.2.0": {Version: "18.2.0", PeerDependencies: map[string]string{"@angular/core": "^18.0.0"}},
				},
			},
			"bootstrap": {
				Name:     "bootstrap",
				DistTags: map[string]string{"latest": "5.3.3"},
				Versions: map[string]npm.VersionManifest{
					"5.3.3": {Version: "5.3.3"},
				},
			},
		},
	}
}

func TestNewSetupWizardValidation(t *testing.T) {
	client := &fakeRegistryClient{}
	res, err := resolver.NewCompatibilityResolver(resolver.DefaultConfig(), client)
	require.NoError(t, err)

	_, err = NewSetupWizard(SetupWizardConfig{}, nil, res, nil, SetupWizardInteraction{})
	assert.ErrorContains(t, err, "registry client")

	_, err = NewSetupWizard(SetupWizardConfig{}, client, nil, nil, SetupWizardInteraction{})
	assert.ErrorContains(t, err, "compatibility resolver")

	w, err := NewSetupWizard(SetupWizardConfig{}, client, res, nil, SetupWizardInteraction{})
	require.NoError(t, err)
	assert.Equal(t, ".", w.config.TargetDir)
	assert.Equal(t, "css", w.config.DefaultStyle)
	assert.Equal(t, "npm", w.config.DefaultPackageManager)
}

func TestSetupWizardHappyPath(t *testing.T) {
	h := newWizardHarness(t)
	h.textAnswers = []string{"demo-app"}
	h.selections = []int{1, 1, 0}   // Angular 17, scss, npm
	h.confirms = []bool{true, true} // routing, git
	h.multiPicks = [][]int{{0, 1}}  // @angular/material, bootstrap

	w := h.defaultWizard()
	require.NoError(t, w.Run(context.Background()))

	assert.Equal(t, []string{
		"new demo-app@17.3.8",
		"install @angular/material@17.3.2 bootstrap@5.3.3",
		"git-init",
	}, h.steps)

	projectDir := h.projectDir("demo-app")
	assert.FileExists(t, filepath.Join(projectDir, "README.md"))
	assert.DirExists(t, filepath.Join(projectDir, "src", "app", "features"))

	saved, err := profile.Load(filepath.Join(projectDir, profile.DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, "demo-app", saved.ProjectName)
	assert.Equal(t, "17.3.8", saved.AngularVersion)
	assert.Equal(t, "scss", saved.Style)
	assert.True(t, saved.Routing)
	require.Len(t, saved.Libraries, 2)
	assert.Equal(t, "@angular/material", saved.Libraries[0].Name)
	assert.Equal(t, "17.3.2", saved.Libraries[0].Version)
	assert.False(t, saved.Libraries[0].Warning)

	require.Len(t, h.reports, 1)
	assert.Equal(t, ui.OutcomeSuccess, h.reports[0].Outcome)
	assert.Equal(t, "demo-app", h.reports[0].ProjectName)
	assert.Equal(t, "17.3.8", h.reports[0].AngularVersion)
	assert.Len(t, h.reports[0].Results, 2)
}

func TestSetupWizardRequiresNodeAndNpm(t *testing.T) {
	h := newWizardHarness(t)
	h.statuses = []environment.ToolStatus{
		{Name: environment.ToolNode, Command: "node", Installed: false},
		{Name: environment.ToolNpm, Command: "npm", Installed: true, Version: "10.2.4"},
		{Name: environment.ToolGit, Command: "git", Installed: true},
	}

	w := h.defaultWizard()
	err := w.Run(context.Background())

	var cliErr clierror.Error
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, clierror.ErrCodeEnvironmentCheckFailed, cliErr.Code())
	assert.Empty(t, h.steps)
}

func TestSetupWizardRetriesInvalidProjectNames(t *testing.T) {
	h := newWizardHarness(t)
	require.NoError(t, os.MkdirAll(h.projectDir("taken"), 0o755))

	h.textAnswers = []string{"My App", "taken", "fresh-app"}
	h.selections = []int{0, 0, 0}
	h.confirms = []bool{true, false}
	h.multiPicks = [][]int{{}}

	w := h.defaultWizard()
	require.NoError(t, w.Run(context.Background()))

	require.Len(t, h.steps, 1)
	assert.Equal(t, "new fresh-app@18.2.1", h.steps[0])

	require.GreaterOrEqual(t, len(h.warnings), 2)
	assert.Contains(t, h.warnings[0], "lowercase")
	assert.Contains(t, h.warnings[1], "already exists")
}

func TestSetupWizardGivesUpAfterBadNames(t *testing.T) {
	h := newWizardHarness(t)
	h.textAnswers = []string{"A", "B", "C"}

	w := h.defaultWizard()
	err := w.Run(context.Background())

	var cliErr clierror.Error
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, clierror.ErrCodeInvalidArgument, cliErr.Code())
	assert.Empty(t, h.steps)

	require.Len(t, h.reports, 1)
	assert.Equal(t, ui.OutcomeError, h.reports[0].Outcome)
}

func TestSetupWizardAbortsOnUnsupportedNode(t *testing.T) {
	h := newWizardHarness(t)
	h.statuses[0].Version = "16.13.0"

	h.textAnswers = []string{"demo-app"}
	h.selections = []int{1}      // Angular 17, needs node 18+
	h.confirms = []bool{false}   // decline continuing anyway

	w := h.defaultWizard()
	err := w.Run(context.Background())

	require.ErrorIs(t, err, ui.ErrAborted)
	assert.Empty(t, h.steps)
	assert.NotEmpty(t, h.warnings)
	assert.Contains(t, h.warnings[0], "does not satisfy")

	require.Len(t, h.reports, 1)
	assert.Equal(t, ui.OutcomeUserCancelled, h.reports[0].Outcome)
}

func TestSetupWizardFallsBackWhenRegistryUnavailable(t *testing.T) {
	h := newWizardHarness(t)

	client := &fakeRegistryClient{}
	res, err := resolver.NewCompatibilityResolver(resolver.DefaultConfig(), client)
	require.NoError(t, err)

	scaffolder, err := scaffold.NewFileScaffolder()
	require.NoError(t, err)

	h.textAnswers = []string{"demo-app"}
	h.selections = []int{0, 0} // style, package manager; no version picker without data
	h.confirms = []bool{true, false}
	h.multiPicks = [][]int{{}}

	w := h.buildWizard(client, res, scaffolder, h.interaction())
	require.NoError(t, w.Run(context.Background()))

	assert.Equal(t, []string{"new demo-app@latest"}, h.steps)
	assert.NotEmpty(t, h.warnings)
	assert.Contains(t, h.warnings[0], "registry unavailable")

	saved, err := profile.Load(filepath.Join(h.projectDir("demo-app"), profile.DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, "latest", saved.AngularVersion)
	assert.Empty(t, saved.Libraries)
}

func TestSetupWizardSkipsLibraryOnResolverError(t *testing.T) {
	h := newWizardHarness(t)

	client := angularRegistry()
	stub := &stubResolver{
		results: map[string]*resolver.CompatibilityResult{
			"@angular/material": {
				Library: "@angular/material",
				Version: "17.3.2",
				Source:  resolver.SourceDynamic,
				Reason:  resolver.ReasonMatchedMajor,
			},
		},
		errs: map[string]error{"bootstrap": errors.New("metadata fetch exploded")},
	}

	scaffolder, err := scaffold.NewFileScaffolder()
	require.NoError(t, err)

	h.textAnswers = []string{"demo-app"}
	h.selections = []int{1, 0, 0}
	h.confirms = []bool{true, true}
	h.multiPicks = [][]int{{0, 1}}

	w := h.buildWizard(client, stub, scaffolder, h.interaction())
	require.NoError(t, w.Run(context.Background()))

	assert.Contains(t, h.steps, "install @angular/material@17.3.2")
	for _, step := range h.steps {
		assert.NotContains(t, step, "bootstrap")
	}

	found := false
	for _, warning := range h.warnings {
		if strings.Contains(warning, "skipping bootstrap") {
			found = true
		}
	}
	assert.True(t, found, "expected a skip warning for bootstrap, got %v", h.warnings)

	require.Len(t, h.reports, 1)
	assert.Len(t, h.reports[0].Results, 1)
}

func TestSetupWizardWarningReview(t *testing.T) {
	warningResult := func() *resolver.CompatibilityResult {
		return &resolver.CompatibilityResult{
			Library: "bootstrap",
			Version: "5.3.3",
			Source:  resolver.SourceFallback,
			Reason:  resolver.ReasonNoCompatibleVersion,
			Warning: true,
		}
	}

	cases := []struct {
		name         string
		reviewChoice int
		extraAnswers []string
		wantInstall  string
		wantWarnings int
	}{
		{
			name:         "install anyway keeps the warning",
			reviewChoice: 0,
			wantInstall:  "install bootstrap@5.3.3",
			wantWarnings: 1,
		},
		{
			name:         "manual pin replaces version and clears the warning",
			reviewChoice: 1,
			extraAnswers: []string{"5.2.0"},
			wantInstall:  "install bootstrap@5.2.0",
			wantWarnings: 0,
		},
		{
			name:         "skip drops the library",
			reviewChoice: 2,
			wantInstall:  "",
			wantWarnings: 0,
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			h := newWizardHarness(t)

			stub := &stubResolver{
				results: map[string]*resolver.CompatibilityResult{
					"bootstrap": warningResult(),
				},
			}

			scaffolder, err := scaffold.NewFileScaffolder()
			require.NoError(t, err)

			h.textAnswers = append([]string{"demo-app"}, test.extraAnswers...)
			h.selections = []int{1, 0, 0, test.reviewChoice}
			h.confirms = []bool{true, false}
			h.multiPicks = [][]int{{1}} // bootstrap only

			w := h.buildWizard(angularRegistry(), stub, scaffolder, h.interaction())
			require.NoError(t, w.Run(context.Background()))

			installs := []string{}
			for _, step := range h.steps {
				if strings.HasPrefix(step, "install") {
					installs = append(installs, step)
				}
			}

			if test.wantInstall == "" {
				assert.Empty(t, installs)
			} else {
				assert.Equal(t, []string{test.wantInstall}, installs)
			}

			require.Len(t, h.reports, 1)
			assert.Equal(t, test.wantWarnings, h.reports[0].WarningCount())
		})
	}
}

func TestSetupWizardReplaysProfileWithoutPrompts(t *testing.T) {
	h := newWizardHarness(t)

	saved := profile.New("replayed-app")
	saved.AngularVersion = "17.3.8"
	saved.Style = "scss"
	saved.Routing = true
	saved.PackageManager = "npm"
	saved.Libraries = []profile.Library{
		{Name: "@angular/material", Version: "17.3.2", Source: "dynamic"},
		{Name: "prettier", Version: "3.2.5", Dev: true, Source: "dynamic"},
	}

	h.config.Replay = saved

	// Pinned versions short circuit the resolver, so an empty registry
	// proves no lookups happen during a replay.
	client := &fakeRegistryClient{}
	res, err := resolver.NewCompatibilityResolver(resolver.DefaultConfig(), client)
	require.NoError(t, err)

	scaffolder, err := scaffold.NewFileScaffolder()
	require.NoError(t, err)

	// Only warnings and the report are wired. Any prompt would fail the
	// run, which is the point: a replay never asks.
	w := h.buildWizard(client, res, scaffolder, SetupWizardInteraction{
		ShowWarning: func(message string) { h.warnings = append(h.warnings, message) },
		ShowReport:  func(data *ui.ReportData) { h.reports = append(h.reports, data) },
	})

	require.NoError(t, w.Run(context.Background()))

	assert.Equal(t, []string{
		"new replayed-app@17.3.8",
		"install @angular/material@17.3.2",
		"install-dev prettier@3.2.5",
		"git-init",
	}, h.steps)

	replayed, err := profile.Load(filepath.Join(h.projectDir("replayed-app"), profile.DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, "17.3.8", replayed.AngularVersion)
	require.Len(t, replayed.Libraries, 2)
	assert.True(t, replayed.Libraries[1].Dev)
	assert.NotEqual(t, saved.SessionID, replayed.SessionID)
}

func TestSetupWizardReplayRefusesExistingDirectory(t *testing.T) {
	h := newWizardHarness(t)
	require.NoError(t, os.MkdirAll(h.projectDir("replayed-app"), 0o755))

	saved := profile.New("replayed-app")
	saved.AngularVersion = "17.3.8"
	h.config.Replay = saved

	w := h.defaultWizard()
	err := w.Run(context.Background())

	var cliErr clierror.Error
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, clierror.ErrCodeInvalidArgument, cliErr.Code())
	assert.Empty(t, h.steps)
}

func TestSetupWizardDryRunWritesNothing(t *testing.T) {
	h := newWizardHarness(t)
	h.config.DryRun = true

	h.textAnswers = []string{"demo-app"}
	h.selections = []int{1, 0, 0}
	h.confirms = []bool{true, true}
	h.multiPicks = [][]int{{0}}

	w := h.defaultWizard()
	require.NoError(t, w.Run(context.Background()))

	assert.Contains(t, h.steps, "new demo-app@17.3.8")
	assert.NoDirExists(t, h.projectDir("demo-app"))

	require.Len(t, h.reports, 1)
	assert.Equal(t, ui.OutcomeDryRun, h.reports[0].Outcome)
}

func TestSetupWizardSkipInstall(t *testing.T) {
	h := newWizardHarness(t)
	h.config.SkipInstall = true

	h.textAnswers = []string{"demo-app"}
	h.selections = []int{1, 0, 0}
	h.confirms = []bool{true, true}
	h.multiPicks = [][]int{{0}}

	w := h.defaultWizard()
	require.NoError(t, w.Run(context.Background()))

	assert.Equal(t, []string{"new demo-app@17.3.8", "git-init"}, h.steps)

	// Resolution still ran, the profile records what to install later.
	saved, err := profile.Load(filepath.Join(h.projectDir("demo-app"), profile.DefaultFileName))
	require.NoError(t, err)
	require.Len(t, saved.Libraries, 1)
	assert.Equal(t, "@angular/material", saved.Libraries[0].Name)
}

func TestSetupWizardInstallFailureAborts(t *testing.T) {
	h := newWizardHarness(t)
	h.failOn = "install"

	h.textAnswers = []string{"demo-app"}
	h.selections = []int{1, 0, 0}
	h.confirms = []bool{true, true}
	h.multiPicks = [][]int{{0}}

	w := h.defaultWizard()
	err := w.Run(context.Background())

	require.ErrorContains(t, err, "failed to install libraries")
	assert.NotContains(t, h.steps, "git-init")
	assert.NoFileExists(t, filepath.Join(h.projectDir("demo-app"), profile.DefaultFileName))

	require.Len(t, h.reports, 1)
	assert.Equal(t, ui.OutcomeError, h.reports[0].Outcome)
}

func TestSetupWizardGitFailureIsNonFatal(t *testing.T) {
	h := newWizardHarness(t)
	h.failOn = "git-init"

	h.textAnswers = []string{"demo-app"}
	h.selections = []int{1, 0, 0}
	h.confirms = []bool{true, true}
	h.multiPicks = [][]int{{0}}

	w := h.defaultWizard()
	require.NoError(t, w.Run(context.Background()))

	assert.FileExists(t, filepath.Join(h.projectDir("demo-app"), profile.DefaultFileName))

	found := false
	for _, warning := range h.warnings {
		if strings.Contains(warning, "git initialization failed") {
			found = true
		}
	}
	assert.True(t, found, "expected a git warning, got %v", h.warnings)

	require.Len(t, h.reports, 1)
	assert.Equal(t, ui.OutcomeSuccess, h.reports[0].Outcome)
}
