package version

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	buildinfo "github.com/jatinmourya/ng-angular-setup/internal/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(os.Stdout, "Version: %s\n", buildinfo.Version)
			fmt.Fprintf(os.Stdout, "CommitSHA: %s\n", buildinfo.Commit)

			return nil
		},
	}
}
