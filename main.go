package main

import (
	"fmt"
	"os"

	"github.com/safedep/dry/log"
	"github.com/spf13/cobra"

	"github.com/jatinmourya/ng-angular-setup/cmd/create"
	"github.com/jatinmourya/ng-angular-setup/cmd/doctor"
	"github.com/jatinmourya/ng-angular-setup/cmd/resolve"
	"github.com/jatinmourya/ng-angular-setup/cmd/version"
	"github.com/jatinmourya/ng-angular-setup/config"
	"github.com/jatinmourya/ng-angular-setup/internal/analytics"
	"github.com/jatinmourya/ng-angular-setup/internal/eventlog"
	"github.com/jatinmourya/ng-angular-setup/internal/ui"
)

var debug bool

func main() {
	cmd := &cobra.Command{
		Use:              "ng-setup",
		Short:            "Scaffold Angular projects with compatible library versions",
		TraverseChildren: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				os.Setenv("APP_LOG_LEVEL", "debug")
				ui.SetVerbosityLevel(ui.VerbosityLevelVerbose)
			}

			log.InitZapLogger("ng-setup", "")

			if err := config.WriteTemplateConfig(); err != nil {
				log.Debugf("Could not write the template config: %v", err)
			}

			if !config.Get().Config.SkipEventLogging {
				if err := eventlog.Initialize(); err != nil {
					log.Debugf("Event log unavailable: %v", err)
				}
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			analytics.Close()

			if err := eventlog.Close(); err != nil {
				log.Debugf("Failed to close the event log: %v", err)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			analytics.TrackCommandRun()

			if len(args) == 0 {
				return cmd.Help()
			}

			return fmt.Errorf("ng-setup: %s is not a valid command", args[0])
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	config.ApplyCobraFlags(cmd)

	cmd.AddCommand(create.NewCreateCommand())
	cmd.AddCommand(doctor.NewDoctorCommand())
	cmd.AddCommand(resolve.NewResolveCommand())
	cmd.AddCommand(version.NewVersionCommand())

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
