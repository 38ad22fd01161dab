package config

import (
	"fmt"
	"os"

	_ "embed"
)

//go:embed config.template.yml
var templateConfig string

// Config is the persistable configuration for ng-setup. Only settings
// worth keeping across runs live here, per-invocation switches like
// dry-run stay on RuntimeConfig.
type Config struct {
	// RegistryBaseURL points metadata lookups at an alternative npm
	// registry, e.g. a corporate mirror.
	RegistryBaseURL string `mapstructure:"registry_base_url"`

	// RegistryTimeoutSeconds bounds each registry request.
	RegistryTimeoutSeconds int `mapstructure:"registry_timeout_seconds"`

	// CacheTTLMinutes is how long fetched package metadata stays fresh
	// within one run.
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes"`

	// MaxVersionScan caps how many versions per library the
	// compatibility resolver inspects.
	MaxVersionScan int `mapstructure:"max_version_scan"`

	// DefaultStyle is the stylesheet format preselected in the wizard.
	DefaultStyle string `mapstructure:"default_style"`

	// DefaultPackageManager is preselected in the wizard.
	DefaultPackageManager string `mapstructure:"default_package_manager"`

	// SkipEventLogging disables the local run log.
	SkipEventLogging bool `mapstructure:"skip_event_logging"`
}

// RuntimeConfig is the configuration used at runtime. It contains the
// persistable configuration plus per-invocation switches bound to
// command line flags.
type RuntimeConfig struct {
	Config Config

	// DryRun skips execution of external commands and file writes,
	// printing what would happen instead
	DryRun bool

	// Internal values computed at startup, accessed via methods
	configDir      string
	configFilePath string
}

// ConfigFilePath returns the path of the config file in effect.
func (r *RuntimeConfig) ConfigFilePath() string {
	return r.configFilePath
}

// DefaultConfig is the fail safe contract for the runtime
// configuration. Every field works without a config file present.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Config: Config{
			RegistryBaseURL:        "https://registry.npmjs.org",
			RegistryTimeoutSeconds: 10,
			CacheTTLMinutes:        5,
			MaxVersionScan:         20,
			DefaultStyle:           "css",
			DefaultPackageManager:  "npm",
			SkipEventLogging:       false,
		},
	}
}

var globalConfig *RuntimeConfig

func init() {
	initConfig()
}

// initConfig is idempotent and callable multiple times, which tests
// rely on to re-read the environment.
func initConfig() {
	defaultConfig := DefaultConfig()
	globalConfig = &defaultConfig

	configDir, err := ConfigDir()
	if err != nil {
		panic(fmt.Errorf("failed to get config directory: %w", err))
	}

	configFilePath, err := ConfigFilePath()
	if err != nil {
		panic(fmt.Errorf("failed to get config file path: %w", err))
	}

	globalConfig.configDir = configDir
	globalConfig.configFilePath = configFilePath

	loadViperConfig()
}

// Get returns the global configuration. Guaranteed non-nil.
func Get() *RuntimeConfig {
	return globalConfig
}

// WriteTemplateConfig writes the annotated template configuration to
// disk so users have a starting point. Existing files are left alone.
func WriteTemplateConfig() error {
	if _, err := createConfigDir(); err != nil {
		return err
	}

	configFilePath, err := ConfigFilePath()
	if err != nil {
		return fmt.Errorf("failed to get config file path: %w", err)
	}

	if _, err := os.Stat(configFilePath); err == nil {
		return nil
	}

	if err := os.WriteFile(configFilePath, []byte(templateConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write template config: %w", err)
	}

	return nil
}
