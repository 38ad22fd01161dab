// Package resolver decides which concrete version of a requested library
// to install alongside a chosen Angular version. It prefers the newest
// version whose declared peer dependency on the framework core is
// satisfied by the target, and degrades to a deterministic fallback chain
// when registry data is unavailable or inconclusive.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/safedep/dry/log"

	"github.com/jatinmourya/ng-angular-setup/pkg/npm"
	"github.com/jatinmourya/ng-angular-setup/pkg/registry"
	"github.com/jatinmourya/ng-angular-setup/pkg/versionset"
)

// Resolver is the contract for resolving library versions against a
// target framework version.
type Resolver interface {
	// Resolve decides the version to install for a single library.
	Resolve(ctx context.Context, req LibraryRequest, targetVersion string) (*CompatibilityResult, error)

	// ResolveAll resolves a list of libraries sequentially. A hard failure
	// on one library is logged and skipped; context cancellation aborts
	// the whole pass.
	ResolveAll(ctx context.Context, reqs []LibraryRequest, targetVersion string) ([]*CompatibilityResult, error)
}

// Config holds configuration for the compatibility resolver
type Config struct {
	// CorePackage is the framework package whose peer ranges decide
	// compatibility
	CorePackage string

	// FirstPartyScopes lists name prefixes whose packages version in
	// lockstep with the framework itself
	FirstPartyScopes []string

	// MaxVersionScan caps how many versions the peer dependency scan
	// inspects, bounding worst case latency
	MaxVersionScan int
}

// DefaultConfig returns the configuration used for Angular projects.
func DefaultConfig() Config {
	return Config{
		CorePackage:      "@angular/core",
		FirstPartyScopes: []string{"@angular/"},
		MaxVersionScan:   20,
	}
}

type compatibilityResolver struct {
	config   Config
	registry registry.Client
}

var _ Resolver = &compatibilityResolver{}

// NewCompatibilityResolver creates a resolver backed by the given registry
// client. The client's cache is the only shared state, so one resolver can
// serve a whole session.
func NewCompatibilityResolver(config Config, client registry.Client) (*compatibilityResolver, error) {
	if client == nil {
		return nil, fmt.Errorf("registry client is required")
	}

	if config.CorePackage == "" {
		return nil, fmt.Errorf("core package is required")
	}

	if config.MaxVersionScan <= 0 {
		config.MaxVersionScan = DefaultConfig().MaxVersionScan
	}

	return &compatibilityResolver{
		config:   config,
		registry: client,
	}, nil
}

// Resolve walks the resolution states for one library: explicit pin,
// metadata fetch, first-party fast path, peer dependency scan, fallback.
// Registry failures degrade to a fallback result; only context
// cancellation surfaces as an error.
func (r *compatibilityResolver) Resolve(ctx context.Context, req LibraryRequest, targetVersion string) (*CompatibilityResult, error) {
	if pinned(req.RequestedVersion) {
		log.Debugf("Using pinned version %s for %s", req.RequestedVersion, req.Name)
		return &CompatibilityResult{
			Library: req.Name,
			Version: req.RequestedVersion,
			Source:  SourceDynamic,
			Reason:  ReasonPinnedVersion,
		}, nil
	}

	metadata, status, err := r.registry.PackageMetadata(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("fetching metadata for %s: %w", req.Name, err)
	}

	if metadata == nil {
		log.Debugf("Metadata for %s unavailable (%s), falling back to latest", req.Name, status)
		return fallbackResult(req.Name, npm.LatestTag, ReasonMetadataUnavailable, false), nil
	}

	stable := versionset.FilterStable(metadata.VersionList())
	targetMajor := versionset.Major(targetVersion)

	if r.firstParty(req.Name) && targetMajor != "" {
		if version := newestForMajor(stable, targetMajor); version != "" {
			return &CompatibilityResult{
				Library: req.Name,
				Version: version,
				Source:  SourceDynamic,
				Reason:  ReasonMatchedMajor,
			}, nil
		}
	}

	candidates := versionset.Descending(stable)
	if len(candidates) > r.config.MaxVersionScan {
		candidates = candidates[:r.config.MaxVersionScan]
	}

	for _, candidate := range candidates {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		peers, err := r.registry.PeerDependencies(ctx, req.Name, candidate)
		if err != nil {
			return nil, fmt.Errorf("fetching peer dependencies for %s@%s: %w", req.Name, candidate, err)
		}

		coreRange, declared := peers[r.config.CorePackage]
		if !declared {
			// No constraint declared means compatible by default, and
			// since the scan is newest first this is the best candidate.
			return &CompatibilityResult{
				Library: req.Name,
				Version: candidate,
				Source:  SourceDynamic,
				Reason:  ReasonNoPeerDependency,
			}, nil
		}

		if r.rangeSatisfied(coreRange, targetVersion, targetMajor) {
			return &CompatibilityResult{
				Library:        req.Name,
				Version:        candidate,
				Source:         SourceDynamic,
				Reason:         ReasonPeerSatisfied,
				PeerDependency: coreRange,
			}, nil
		}

		log.Debugf("%s@%s requires %s %q, target %s does not satisfy it",
			req.Name, candidate, r.config.CorePackage, coreRange, targetVersion)
	}

	latest := metadata.Latest()
	if latest == "" {
		latest = npm.LatestTag
	}

	log.Warnf("No version of %s verified compatible with %s %s, falling back to %s",
		req.Name, r.config.CorePackage, targetVersion, latest)
	return fallbackResult(req.Name, latest, ReasonNoCompatibleVersion, true), nil
}

// ResolveAll resolves each request in order with one outstanding registry
// call at a time, so the newest-first early exit can short circuit
// network traffic.
func (r *compatibilityResolver) ResolveAll(ctx context.Context, reqs []LibraryRequest, targetVersion string) ([]*CompatibilityResult, error) {
	results := make([]*CompatibilityResult, 0, len(reqs))

	for _, req := range reqs {
		result, err := r.Resolve(ctx, req, targetVersion)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}

			log.Warnf("Skipping %s: %v", req.Name, err)
			continue
		}

		results = append(results, result)
	}

	return results, nil
}

func (r *compatibilityResolver) firstParty(name string) bool {
	for _, scope := range r.config.FirstPartyScopes {
		if strings.HasPrefix(name, scope) {
			return true
		}
	}

	return false
}

// rangeSatisfied runs the primary semver range check, degrading to a
// substring pattern match when the declared range cannot be parsed.
func (r *compatibilityResolver) rangeSatisfied(declaredRange, targetVersion, targetMajor string) bool {
	constraint, err := semver.NewConstraint(declaredRange)
	if err != nil {
		log.Debugf("Unparseable peer range %q, trying major pattern match", declaredRange)
		return matchesMajorPattern(declaredRange, targetMajor)
	}

	target, err := semver.NewVersion(targetVersion)
	if err != nil {
		return matchesMajorPattern(declaredRange, targetMajor)
	}

	return constraint.Check(target)
}

// matchesMajorPattern is the last resort compatibility check for ranges
// the semver parser rejects: look for the target major in the handful of
// shapes registries commonly publish.
func matchesMajorPattern(declaredRange, major string) bool {
	if major == "" {
		return false
	}

	patterns := []string{
		"^" + major + ".",
		"~" + major + ".",
		">=" + major + ".",
		major + ".x",
		major + ".0.0",
	}

	for _, pattern := range patterns {
		if strings.Contains(declaredRange, pattern) {
			return true
		}
	}

	return false
}

func newestForMajor(versions []string, major string) string {
	for _, v := range versionset.Descending(versions) {
		if versionset.Major(v) == major {
			return v
		}
	}

	return ""
}

func fallbackResult(name, version, reason string, warning bool) *CompatibilityResult {
	// A fallback is reached without compatibility evidence, so it must
	// never claim a peer dependency.
	return &CompatibilityResult{
		Library: name,
		Version: version,
		Source:  SourceFallback,
		Reason:  reason,
		Warning: warning,
	}
}

func pinned(requested string) bool {
	return requested != "" && requested != npm.LatestTag
}
