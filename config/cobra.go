package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ApplyCobraFlags binds the flags that override configuration at
// runtime. These flags are a local concern of the config package, this
// helper attaches them to the root command.
func ApplyCobraFlags(cmd *cobra.Command) {
	bindRuntimeFlags(cmd.PersistentFlags())
}

func bindRuntimeFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&globalConfig.DryRun, "dry-run", false,
		"Print external commands and file writes instead of executing them")
	fs.StringVar(&globalConfig.Config.RegistryBaseURL, "registry",
		globalConfig.Config.RegistryBaseURL, "npm registry base URL")
	fs.IntVar(&globalConfig.Config.MaxVersionScan, "max-version-scan",
		globalConfig.Config.MaxVersionScan,
		"Maximum number of versions inspected per library during resolution")
}
