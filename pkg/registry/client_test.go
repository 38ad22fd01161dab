package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const materialDoc = `{
	"name": "@angular/material",
	"dist-tags": {"latest": "17.3.2"},
	"versions": {
		"17.3.2": {"name": "@angular/material", "version": "17.3.2", "peerDependencies": {"@angular/core": "^17.0.0"}},
		"16.2.0": {"name": "@angular/material", "version": "16.2.0", "peerDependencies": {"@angular/core": "^16.0.0"}}
	}
}`

func newTestClient(t *testing.T, baseURL string) (*httpClient, *Cache) {
	cache := NewCache(DefaultCacheTTL)

	config := DefaultHttpClientConfig()
	config.BaseURL = baseURL

	client, err := NewHttpClient(config, cache)
	require.NoError(t, err)

	return client, cache
}

func TestPackageMetadataFetchesOnceThenServesFromCache(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Write([]byte(materialDoc))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	metadata, status, err := client.PackageMetadata(context.Background(), "@angular/material")
	assert.NoError(t, err)
	assert.Equal(t, StatusFetched, status)
	assert.Equal(t, "17.3.2", metadata.Latest())

	metadata, status, err = client.PackageMetadata(context.Background(), "@angular/material")
	assert.NoError(t, err)
	assert.Equal(t, StatusHit, status)
	assert.Equal(t, "@angular/material", metadata.Name)

	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestPackageMetadataEncodesScopedNames(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		w.Write([]byte(`{"name": "@angular/core", "dist-tags": {}, "versions": {}}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	_, _, err := client.PackageMetadata(context.Background(), "@angular/core")
	assert.NoError(t, err)
	assert.Equal(t, "/@angular%2Fcore", path)
}

func TestPackageMetadataNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	metadata, status, err := client.PackageMetadata(context.Background(), "no-such-package")
	assert.NoError(t, err)
	assert.Nil(t, metadata)
	assert.Equal(t, StatusNotFound, status)
}

func TestPackageMetadataRegistryError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	metadata, status, err := client.PackageMetadata(context.Background(), "@angular/core")
	assert.NoError(t, err)
	assert.Nil(t, metadata)
	assert.Equal(t, StatusUnreachable, status)
}

func TestPackageMetadataUnreachableRegistry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, _ := newTestClient(t, server.URL)

	metadata, status, err := client.PackageMetadata(context.Background(), "@angular/core")
	assert.NoError(t, err)
	assert.Nil(t, metadata)
	assert.Equal(t, StatusUnreachable, status)
}

func TestPackageMetadataMalformedDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"versions": "not-an-object"}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	metadata, status, err := client.PackageMetadata(context.Background(), "@angular/core")
	assert.NoError(t, err)
	assert.Nil(t, metadata)
	assert.Equal(t, StatusUnreachable, status)
}

func TestPackageMetadataFailuresAreNotCached(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) == 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(materialDoc))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	_, status, err := client.PackageMetadata(context.Background(), "@angular/material")
	assert.NoError(t, err)
	assert.Equal(t, StatusNotFound, status)

	metadata, status, err := client.PackageMetadata(context.Background(), "@angular/material")
	assert.NoError(t, err)
	assert.Equal(t, StatusFetched, status)
	assert.Equal(t, "@angular/material", metadata.Name)

	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}

func TestPackageMetadataCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(materialDoc))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	metadata, status, err := client.PackageMetadata(ctx, "@angular/material")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, metadata)
	assert.Equal(t, StatusUnreachable, status)
}

func TestPackageMetadataRefetchesAfterTTL(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Write([]byte(materialDoc))
	}))
	defer server.Close()

	client, cache := newTestClient(t, server.URL)

	current := time.Now()
	cache.now = func() time.Time { return current }

	_, status, err := client.PackageMetadata(context.Background(), "@angular/material")
	assert.NoError(t, err)
	assert.Equal(t, StatusFetched, status)

	current = current.Add(6 * time.Minute)

	_, status, err = client.PackageMetadata(context.Background(), "@angular/material")
	assert.NoError(t, err)
	assert.Equal(t, StatusFetched, status)

	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}

func TestPeerDependenciesServedFromMetadataDocument(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Write([]byte(materialDoc))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	_, _, err := client.PackageMetadata(context.Background(), "@angular/material")
	assert.NoError(t, err)

	peers, err := client.PeerDependencies(context.Background(), "@angular/material", "16.2.0")
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"@angular/core": "^16.0.0"}, peers)

	assert.Equal(t, int32(1), atomic.LoadInt32(&requests), "inline manifest should not trigger a second request")
}

func TestPeerDependenciesFetchesVersionManifest(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		assert.Equal(t, "/ngx-toastr/18.0.0", r.URL.Path)
		w.Write([]byte(`{"name": "ngx-toastr", "version": "18.0.0", "peerDependencies": {"@angular/common": ">=16.0.0"}}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	peers, err := client.PeerDependencies(context.Background(), "ngx-toastr", "18.0.0")
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"@angular/common": ">=16.0.0"}, peers)

	peers, err = client.PeerDependencies(context.Background(), "ngx-toastr", "18.0.0")
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"@angular/common": ">=16.0.0"}, peers)

	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestPeerDependenciesFailureYieldsEmptyMap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	peers, err := client.PeerDependencies(context.Background(), "ngx-toastr", "18.0.0")
	assert.NoError(t, err)
	assert.Empty(t, peers)
	assert.NotNil(t, peers)
}

func TestPeerDependenciesNoneDeclared(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "lodash", "version": "4.17.21"}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	peers, err := client.PeerDependencies(context.Background(), "lodash", "4.17.21")
	assert.NoError(t, err)
	assert.Empty(t, peers)
	assert.NotNil(t, peers)
}

func TestNewHttpClientRequiresBaseURL(t *testing.T) {
	_, err := NewHttpClient(HttpClientConfig{}, nil)
	assert.Error(t, err)
}

func TestFetchStatusString(t *testing.T) {
	assert.Equal(t, "hit", StatusHit.String())
	assert.Equal(t, "fetched", StatusFetched.String())
	assert.Equal(t, "not-found", StatusNotFound.String())
	assert.Equal(t, "unreachable", StatusUnreachable.String())
}
