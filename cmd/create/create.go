package create

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jatinmourya/ng-angular-setup/config"
	"github.com/jatinmourya/ng-angular-setup/internal/analytics"
	"github.com/jatinmourya/ng-angular-setup/internal/ui"
	buildinfo "github.com/jatinmourya/ng-angular-setup/internal/version"
	"github.com/jatinmourya/ng-angular-setup/pkg/registry"
	"github.com/jatinmourya/ng-angular-setup/pkg/resolver"
	"github.com/jatinmourya/ng-angular-setup/profile"
	"github.com/jatinmourya/ng-angular-setup/scaffold"
	"github.com/jatinmourya/ng-angular-setup/wizard"
)

var (
	createTargetDir   string
	createProfilePath string
	createSkipInstall bool
)

func NewCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new Angular project with compatible library versions",
		Long: "Walks through project name, Angular version, options and companion " +
			"libraries, resolves a compatible version for each library against the " +
			"chosen Angular release, then scaffolds and installs the project.",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := executeCreateFlow(cmd.Context())
			if err != nil {
				if errors.Is(err, ui.ErrAborted) || errors.Is(err, context.Canceled) {
					return nil
				}

				ui.ErrorExit(err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&createTargetDir, "dir", ".", "Directory to create the project in")
	cmd.Flags().StringVar(&createProfilePath, "profile", "",
		"Replay a saved setup profile instead of prompting")
	cmd.Flags().BoolVar(&createSkipInstall, "skip-install", false,
		"Scaffold without installing packages")

	return cmd
}

func executeCreateFlow(ctx context.Context) error {
	analytics.TrackCommandCreate()

	fmt.Print(ui.GenerateBanner(buildinfo.Version, buildinfo.Commit))

	appConfig := config.Get()

	registryClient, err := registry.NewHttpClient(registry.HttpClientConfig{
		BaseURL:  appConfig.Config.RegistryBaseURL,
		Timeout:  time.Duration(appConfig.Config.RegistryTimeoutSeconds) * time.Second,
		CacheTTL: time.Duration(appConfig.Config.CacheTTLMinutes) * time.Minute,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to create registry client: %w", err)
	}

	resolverConfig := resolver.DefaultConfig()
	resolverConfig.MaxVersionScan = appConfig.Config.MaxVersionScan

	compatibilityResolver, err := resolver.NewCompatibilityResolver(resolverConfig, registryClient)
	if err != nil {
		return fmt.Errorf("failed to create compatibility resolver: %w", err)
	}

	scaffolder, err := scaffold.NewFileScaffolder()
	if err != nil {
		return fmt.Errorf("failed to load scaffold templates: %w", err)
	}

	wizardConfig := wizard.DefaultSetupWizardConfig()
	wizardConfig.TargetDir = createTargetDir
	wizardConfig.DryRun = appConfig.DryRun
	wizardConfig.SkipInstall = createSkipInstall
	wizardConfig.DefaultStyle = appConfig.Config.DefaultStyle
	wizardConfig.DefaultPackageManager = appConfig.Config.DefaultPackageManager

	if createProfilePath != "" {
		saved, err := profile.Load(createProfilePath)
		if err != nil {
			return err
		}

		wizardConfig.Replay = saved
	}

	setupWizard, err := wizard.NewSetupWizard(wizardConfig, registryClient,
		compatibilityResolver, scaffolder, createInteraction())
	if err != nil {
		return fmt.Errorf("failed to create setup wizard: %w", err)
	}

	return setupWizard.Run(ctx)
}

// createInteraction binds the wizard's prompts to the terminal UI.
func createInteraction() wizard.SetupWizardInteraction {
	return wizard.SetupWizardInteraction{
		SetStatus:      ui.SetStatus,
		ClearStatus:    ui.ClearStatus,
		ShowWarning:    ui.PrintWarning,
		SelectOption:   ui.SelectOption,
		MultiSelect:    ui.MultiSelect,
		Confirm:        ui.Confirm,
		AskString:      ui.AskString,
		ShowResolution: ui.RenderResolutionTable,
		ShowReport: func(data *ui.ReportData) {
			ui.Report(data)

			if data.Outcome == ui.OutcomeSuccess {
				ui.PrintNextSteps(data.ProjectName)
			}
		},
	}
}
