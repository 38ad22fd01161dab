// Package registry provides a read-only client for npm compatible package
// registries, backed by a session scoped TTL cache.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/safedep/dry/log"

	"github.com/jatinmourya/ng-angular-setup/pkg/npm"
)

// FetchStatus describes how a metadata lookup was satisfied, so callers
// can tell a package that does not exist apart from a registry they could
// not reach.
type FetchStatus int

const (
	// StatusHit means the response was served from the cache.
	StatusHit FetchStatus = iota
	// StatusFetched means the response came from the registry.
	StatusFetched
	// StatusNotFound means the registry answered that the package does not exist.
	StatusNotFound
	// StatusUnreachable means the registry could not be queried or
	// returned an unusable response.
	StatusUnreachable
)

func (s FetchStatus) String() string {
	switch s {
	case StatusHit:
		return "hit"
	case StatusFetched:
		return "fetched"
	case StatusNotFound:
		return "not-found"
	case StatusUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Client defines the interface for reading package metadata from a registry.
//
// Lookup failures are part of normal operation here: a package that is not
// published or a registry that is briefly unreachable must not abort a
// resolution pass. Both therefore surface through FetchStatus with a nil
// error, and an error is returned only when the calling context was
// cancelled.
type Client interface {
	// PackageMetadata fetches the full registry document for a package.
	PackageMetadata(ctx context.Context, name string) (*npm.PackageMetadata, FetchStatus, error)

	// PeerDependencies fetches the peer dependency ranges declared by a
	// specific published version. Failures yield an empty map.
	PeerDependencies(ctx context.Context, name, version string) (map[string]string, error)
}

const defaultBaseURL = "https://registry.npmjs.org"

// HttpClientConfig holds configuration for the HTTP registry client
type HttpClientConfig struct {
	// BaseURL is the registry endpoint without a trailing slash
	BaseURL string

	// Timeout bounds a single metadata request
	Timeout time.Duration

	// CacheTTL is how long fetched documents stay valid
	CacheTTL time.Duration
}

// DefaultHttpClientConfig returns a config pointed at the public npm registry.
func DefaultHttpClientConfig() HttpClientConfig {
	return HttpClientConfig{
		BaseURL:  defaultBaseURL,
		Timeout:  10 * time.Second,
		CacheTTL: DefaultCacheTTL,
	}
}

type httpClient struct {
	config     HttpClientConfig
	httpClient *http.Client
	cache      *Cache
}

var _ Client = &httpClient{}

// NewHttpClient creates a registry client backed by the given cache. The
// cache is owned by the session so multiple consumers share one; passing
// nil creates a private cache with the configured TTL.
func NewHttpClient(config HttpClientConfig, cache *Cache) (*httpClient, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("registry base URL is required")
	}

	if cache == nil {
		cache = NewCache(config.CacheTTL)
	}

	return &httpClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		cache:      cache,
	}, nil
}

// PackageMetadata fetches the registry document for a package. Scoped names
// like @angular/material are percent encoded into a single path segment.
func (c *httpClient) PackageMetadata(ctx context.Context, name string) (*npm.PackageMetadata, FetchStatus, error) {
	if metadata, ok := c.cache.Metadata(name); ok {
		return metadata, StatusHit, nil
	}

	endpoint := fmt.Sprintf("%s/%s", c.config.BaseURL, url.PathEscape(name))

	body, status, err := c.get(ctx, endpoint)
	if err != nil || status != StatusFetched {
		if status == StatusNotFound {
			log.Warnf("Package %s not found in registry", name)
		}
		return nil, status, err
	}

	var metadata npm.PackageMetadata
	if err := json.Unmarshal(body, &metadata); err != nil {
		log.Warnf("Failed to parse registry document for %s: %v", name, err)
		return nil, StatusUnreachable, nil
	}

	c.cache.PutMetadata(name, &metadata)
	return &metadata, StatusFetched, nil
}

// PeerDependencies returns the peer dependency ranges declared by a package
// version. The full registry document carries every version manifest
// inline, so a preceding PackageMetadata call usually answers this without
// another request.
func (c *httpClient) PeerDependencies(ctx context.Context, name, version string) (map[string]string, error) {
	if peers, ok := c.cache.Peers(name, version); ok {
		return peers, nil
	}

	if metadata, ok := c.cache.Metadata(name); ok {
		if manifest, ok := metadata.Versions[version]; ok {
			peers := manifest.PeerDependencies
			if peers == nil {
				peers = map[string]string{}
			}

			c.cache.PutPeers(name, version, peers)
			return peers, nil
		}
	}

	endpoint := fmt.Sprintf("%s/%s/%s", c.config.BaseURL, url.PathEscape(name), version)

	body, status, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	if status != StatusFetched {
		log.Warnf("Failed to fetch %s@%s manifest from registry", name, version)
		return map[string]string{}, nil
	}

	var manifest npm.VersionManifest
	if err := json.Unmarshal(body, &manifest); err != nil {
		log.Warnf("Failed to parse %s@%s manifest: %v", name, version, err)
		return map[string]string{}, nil
	}

	peers := manifest.PeerDependencies
	if peers == nil {
		peers = map[string]string{}
	}

	c.cache.PutPeers(name, version, peers)
	return peers, nil
}

// get performs a single GET against the registry and classifies the
// outcome. Context cancellation is the only condition reported as an
// error; everything else maps to a FetchStatus.
func (c *httpClient) get(ctx context.Context, endpoint string) ([]byte, FetchStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Warnf("Failed to create registry request for %s: %v", endpoint, err)
		return nil, StatusUnreachable, nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, StatusUnreachable, fmt.Errorf("registry request cancelled: %w", ctx.Err())
		}

		log.Warnf("Registry unreachable at %s: %v", endpoint, err)
		return nil, StatusUnreachable, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, StatusNotFound, nil
	}

	if resp.StatusCode != http.StatusOK {
		log.Warnf("Registry returned status %s for %s", resp.Status, endpoint)
		return nil, StatusUnreachable, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, StatusUnreachable, fmt.Errorf("registry request cancelled: %w", ctx.Err())
		}

		log.Warnf("Failed to read registry response from %s: %v", endpoint, err)
		return nil, StatusUnreachable, nil
	}

	return body, StatusFetched, nil
}
