package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jatinmourya/ng-angular-setup/pkg/npm"
)

func TestCacheMetadataRoundtrip(t *testing.T) {
	cache := NewCache(5 * time.Minute)

	_, ok := cache.Metadata("@angular/core")
	assert.False(t, ok)

	doc := &npm.PackageMetadata{Name: "@angular/core"}
	cache.PutMetadata("@angular/core", doc)

	cached, ok := cache.Metadata("@angular/core")
	assert.True(t, ok)
	assert.Same(t, doc, cached)
}

func TestCachePeersKeyedByVersion(t *testing.T) {
	cache := NewCache(5 * time.Minute)

	cache.PutPeers("@angular/material", "17.3.0", map[string]string{
		"@angular/core": "^17.0.0",
	})

	peers, ok := cache.Peers("@angular/material", "17.3.0")
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"@angular/core": "^17.0.0"}, peers)

	_, ok = cache.Peers("@angular/material", "16.0.0")
	assert.False(t, ok)
}

func TestCacheEntriesExpireAfterTTL(t *testing.T) {
	cache := NewCache(5 * time.Minute)

	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.PutMetadata("ngx-toastr", &npm.PackageMetadata{Name: "ngx-toastr"})
	cache.PutPeers("ngx-toastr", "18.0.0", map[string]string{"@angular/core": ">=16.0.0"})

	current = current.Add(4 * time.Minute)

	_, ok := cache.Metadata("ngx-toastr")
	assert.True(t, ok, "entry should still be valid before the TTL")

	current = current.Add(2 * time.Minute)

	_, ok = cache.Metadata("ngx-toastr")
	assert.False(t, ok, "entry should expire after the TTL")

	_, ok = cache.Peers("ngx-toastr", "18.0.0")
	assert.False(t, ok)
}
