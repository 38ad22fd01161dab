package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jatinmourya/ng-angular-setup/config"
	"github.com/jatinmourya/ng-angular-setup/internal/analytics"
	"github.com/jatinmourya/ng-angular-setup/internal/ui"
	"github.com/jatinmourya/ng-angular-setup/pkg/registry"
	"github.com/jatinmourya/ng-angular-setup/pkg/resolver"
)

var (
	resolveTarget string
	resolveDev    bool
	resolveJSON   bool
)

func NewResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve --target <version> <package>...",
		Short: "Resolve compatible library versions for an Angular release",
		Long: "Resolves each package against the target Angular version without " +
			"creating a project. Pin a package with name@version to skip its lookup.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := executeResolveFlow(cmd.Context(), args)
			if err != nil {
				ui.ErrorExit(err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&resolveTarget, "target", "",
		"Target Angular version, for example 17.3.0")
	cmd.Flags().BoolVar(&resolveDev, "dev", false,
		"Treat the packages as dev dependencies")
	cmd.Flags().BoolVar(&resolveJSON, "json", false,
		"Print results as JSON instead of a table")

	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func executeResolveFlow(ctx context.Context, packages []string) error {
	analytics.TrackCommandResolve()

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

	requests := make([]resolver.LibraryRequest, 0, len(packages))
	for _, spec := range packages {
		name, requested := splitSpec(spec)
		requests = append(requests, resolver.LibraryRequest{
			Name:             name,
			RequestedVersion: requested,
			DevDependency:    resolveDev,
		})
	}

	results, err := compatibilityResolver.ResolveAll(ctx, requests, resolveTarget)
	if err != nil {
		return err
	}

	if resolveJSON {
		return printJSON(results)
	}

	ui.RenderResolutionTable(results)

	return nil
}

// resolveRecord is the stable JSON shape of one resolution outcome.
type resolveRecord struct {
	Library        string `json:"library"`
	Version        string `json:"version"`
	Source         string `json:"source"`
	Reason         string `json:"reason"`
	PeerDependency string `json:"peer_dependency,omitempty"`
	Warning        bool   `json:"warning"`
}

func printJSON(results []*resolver.CompatibilityResult) error {
	records := make([]resolveRecord, 0, len(results))
	for _, result := range results {
		records = append(records, resolveRecord{
			Library:        result.Library,
			Version:        result.Version,
			Source:         result.Source.String(),
			Reason:         result.Reason,
			PeerDependency: result.PeerDependency,
			Warning:        result.Warning,
		})
	}

	encoded, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	fmt.Fprintln(os.Stdout, string(encoded))

	return nil
}

// splitSpec separates an optional pinned version from a package spec.
// Scoped names keep their leading @, only an @ past the first character
// starts a version.
func splitSpec(spec string) (string, string) {
	at := strings.LastIndex(spec, "@")
	if at <= 0 {
		return spec, ""
	}

	return spec[:at], spec[at+1:]
}
