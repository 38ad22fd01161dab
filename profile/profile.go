// Package profile persists the answers of one setup run as a small YAML
// document next to the generated project. A saved profile can replay the
// same setup non-interactively on another machine.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// CurrentSchemaVersion is bumped on breaking profile format changes.
// Profiles written by newer versions are rejected rather than
// misinterpreted.
const CurrentSchemaVersion = 1

// DefaultFileName is the profile written into the project directory
// after a successful run.
const DefaultFileName = "ng-setup.profile.yaml"

// Library is one resolved companion package, with enough provenance to
// reproduce or audit the pick later.
type Library struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Dev     bool   `yaml:"dev,omitempty"`

	// Source records whether the version came from registry resolution
	// or a fallback
	Source string `yaml:"source,omitempty"`

	// Warning marks a version installed without confirmed compatibility
	Warning bool `yaml:"warning,omitempty"`
}

// Profile is the full record of one setup run.
type Profile struct {
	SchemaVersion  int       `yaml:"schema_version"`
	SessionID      string    `yaml:"session_id"`
	CreatedAt      time.Time `yaml:"created_at"`
	ProjectName    string    `yaml:"project_name"`
	AngularVersion string    `yaml:"angular_version"`
	Style          string    `yaml:"style,omitempty"`
	Routing        bool      `yaml:"routing"`
	PackageManager string    `yaml:"package_manager,omitempty"`
	Libraries      []Library `yaml:"libraries,omitempty"`
}

// New starts a profile for the current run with a fresh session id.
func New(projectName string) *Profile {
	return &Profile{
		SchemaVersion: CurrentSchemaVersion,
		SessionID:     uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		ProjectName:   projectName,
	}
}

// Save writes the profile to the given path, creating parent directories
// as needed.
func (p *Profile) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}

	return nil
}

// Load reads and validates a profile from disk.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileUnreadable, err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileMalformed, err)
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return &profile, nil
}

// Validate checks that the profile carries enough to replay a setup.
func (p *Profile) Validate() error {
	if p.SchemaVersion > CurrentSchemaVersion {
		return fmt.Errorf("%w: %d", ErrProfileTooNew, p.SchemaVersion)
	}

	if p.ProjectName == "" || p.AngularVersion == "" {
		return ErrProfileIncomplete
	}

	return nil
}
