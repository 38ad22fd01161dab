// Package analytics tracks anonymous usage events. Only event names and
// a random installation id leave the machine, never project names,
// package names or command arguments.
package analytics

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/posthog/posthog-go"
	"github.com/safedep/dry/log"
)

// Injected at build time. Analytics stays disabled when no key is set,
// which is the case for all source builds.
var (
	posthogAPIKey   = ""
	posthogEndpoint = "https://us.i.posthog.com"
)

// DisableEnvKey opts a user out of tracking when set to any non-empty
// value.
const DisableEnvKey = "NG_SETUP_DISABLE_ANALYTICS"

const identityFileName = "analytics-id"

var (
	clientOnce sync.Once
	client     posthog.Client
	identity   string
)

func enabled() bool {
	return posthogAPIKey != "" && os.Getenv(DisableEnvKey) == ""
}

func initClient() {
	posthogClient, err := posthog.NewWithConfig(posthogAPIKey, posthog.Config{
		Endpoint: posthogEndpoint,
	})
	if err != nil {
		log.Debugf("failed to initialize analytics client: %v", err)
		return
	}

	client = posthogClient
	identity = anonymousIdentity()
}

// TrackEvent enqueues a single named event. Never blocks the command on
// delivery.
func TrackEvent(name string) {
	if !enabled() {
		return
	}

	clientOnce.Do(initClient)
	if client == nil {
		return
	}

	err := client.Enqueue(posthog.Capture{
		DistinctId: identity,
		Event:      name,
	})
	if err != nil {
		log.Debugf("failed to enqueue analytics event %s: %v", name, err)
	}
}

// Close flushes pending events. Called once on command shutdown.
func Close() {
	if client != nil {
		client.Close()
	}
}

// anonymousIdentity returns a stable random id for this installation,
// created on first use. Falls back to a per-process id when the state
// directory is not writable.
func anonymousIdentity() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return uuid.NewString()
	}

	stateDir := filepath.Join(homeDir, ".ng-setup")
	identityFile := filepath.Join(stateDir, identityFileName)

	if data, err := os.ReadFile(identityFile); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}

	id := uuid.NewString()

	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return id
	}

	if err := os.WriteFile(identityFile, []byte(id+"\n"), 0644); err != nil {
		return id
	}

	return id
}
