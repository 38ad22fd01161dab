package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jatinmourya/ng-angular-setup/clierror"
	"github.com/jatinmourya/ng-angular-setup/environment"
	"github.com/jatinmourya/ng-angular-setup/internal/analytics"
	"github.com/jatinmourya/ng-angular-setup/internal/eventlog"
	"github.com/jatinmourya/ng-angular-setup/internal/ui"
	buildinfo "github.com/jatinmourya/ng-angular-setup/internal/version"
)

func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the local toolchain for Angular development",
		Long: "Probes node, npm, git, the Angular CLI and nvm, and shows which " +
			"Angular majors the installed node version can run. Exits non-zero " +
			"when a required tool is missing.",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := executeDoctorFlow(cmd.Context())
			if err != nil {
				ui.ErrorExit(err)
			}

			return nil
		},
	}
}

func executeDoctorFlow(ctx context.Context) error {
	analytics.TrackCommandDoctor()

	fmt.Print(ui.GenerateBanner(buildinfo.Version, buildinfo.Commit))

	statuses := environment.CheckAll(ctx)
	ui.RenderEnvironmentTable(statuses)

	missing := []string{}
	var node *environment.ToolStatus
	for i := range statuses {
		status := &statuses[i]

		switch status.Name {
		case environment.ToolNode:
			node = status
			if !status.Installed {
				missing = append(missing, status.Name)
			}
		case environment.ToolNpm:
			if !status.Installed {
				missing = append(missing, status.Name)
			}
		}
	}

	eventlog.LogEnvironmentChecked(missing)

	if node != nil && node.Installed && node.Version != "" {
		printNodeCompatibility(node.Version)
	}

	if len(missing) > 0 {
		return clierror.New(fmt.Sprintf("required tools missing: %s", strings.Join(missing, ", "))).
			WithCode(clierror.ErrCodeEnvironmentCheckFailed).
			WithHuman(fmt.Sprintf("%s must be installed to create Angular projects.",
				strings.Join(missing, " and "))).
			WithHelp("Install Node.js (it bundles npm) from https://nodejs.org or via nvm.")
	}

	ui.PrintSuccess("The toolchain is ready for Angular development")

	return nil
}

// printNodeCompatibility shows which Angular majors the installed node
// can run, with the supported range for the ones it cannot.
func printNodeCompatibility(nodeVersion string) {
	entries := map[string]string{}

	for _, major := range environment.SupportedMajors() {
		supported, err := environment.ValidateNode(nodeVersion, major)
		if err != nil {
			continue
		}

		if supported {
			entries["Angular "+major] = ui.Colors.Green("supported")
		} else {
			entries["Angular "+major] = ui.Colors.Yellow(
				fmt.Sprintf("needs node %s", environment.NodeRequirement(major)))
		}
	}

	ui.PrintInfoSection(fmt.Sprintf("Angular support for node %s", nodeVersion), entries)
}
