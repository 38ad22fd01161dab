package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/jatinmourya/ng-angular-setup/pkg/npm"
)

// DefaultCacheTTL is how long a registry response stays valid before a
// lookup goes back to the network.
const DefaultCacheTTL = 5 * time.Minute

type metadataEntry struct {
	metadata  *npm.PackageMetadata
	fetchedAt time.Time
}

type peersEntry struct {
	peers     map[string]string
	fetchedAt time.Time
}

// Cache holds registry responses for the lifetime of a session so that a
// resolution pass touching the same package repeatedly pays for each
// network round trip once. Entries expire after the configured TTL; the
// cache is otherwise unbounded. Only successful fetches are stored, a
// failed lookup must stay uncached so the next attempt retries.
type Cache struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	metadata map[string]metadataEntry
	peers    map[string]peersEntry
}

// NewCache creates an empty cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:      ttl,
		now:      time.Now,
		metadata: make(map[string]metadataEntry),
		peers:    make(map[string]peersEntry),
	}
}

// Metadata returns the cached registry document for a package, if present
// and not expired.
func (c *Cache) Metadata(name string) (*npm.PackageMetadata, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.metadata[name]
	if !ok || c.expired(entry.fetchedAt) {
		return nil, false
	}

	return entry.metadata, true
}

// PutMetadata stores a registry document for a package.
func (c *Cache) PutMetadata(name string, metadata *npm.PackageMetadata) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.metadata[name] = metadataEntry{metadata: metadata, fetchedAt: c.now()}
}

// Peers returns the cached peer dependency map for a package version, if
// present and not expired.
func (c *Cache) Peers(name, version string) (map[string]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.peers[peersKey(name, version)]
	if !ok || c.expired(entry.fetchedAt) {
		return nil, false
	}

	return entry.peers, true
}

// PutPeers stores the peer dependency map for a package version.
func (c *Cache) PutPeers(name, version string, peers map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.peers[peersKey(name, version)] = peersEntry{peers: peers, fetchedAt: c.now()}
}

func (c *Cache) expired(fetchedAt time.Time) bool {
	return c.now().Sub(fetchedAt) > c.ttl
}

// peersKey generates a unique key for a package version
func peersKey(name, version string) string {
	return fmt.Sprintf("%s@%s", name, version)
}
