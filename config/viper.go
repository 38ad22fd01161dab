package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// loadViperConfig merges defaults, the config file and NG_SETUP_*
// environment variables into the global configuration, in increasing
// priority. It panics only for system errors since it is part of the
// init path.
func loadViperConfig() {
	configPath, err := ConfigFilePath()
	if err != nil {
		panic(fmt.Errorf("failed to get config file path: %w", err))
	}

	v := viper.New()

	v.SetConfigType("yaml")
	v.SetEnvPrefix("NG_SETUP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Defaults registered up front so a partial config file or a lone
	// environment variable never zeroes the remaining fields.
	defaults := DefaultConfig().Config
	v.SetDefault("registry_base_url", defaults.RegistryBaseURL)
	v.SetDefault("registry_timeout_seconds", defaults.RegistryTimeoutSeconds)
	v.SetDefault("cache_ttl_minutes", defaults.CacheTTLMinutes)
	v.SetDefault("max_version_scan", defaults.MaxVersionScan)
	v.SetDefault("default_style", defaults.DefaultStyle)
	v.SetDefault("default_package_manager", defaults.DefaultPackageManager)
	v.SetDefault("skip_event_logging", defaults.SkipEventLogging)

	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)

		if err := v.ReadInConfig(); err != nil {
			panic(fmt.Errorf("failed to read config file %s: %w", configPath, err))
		}
	}

	var loadedConfig Config
	if err := v.Unmarshal(&loadedConfig); err != nil {
		panic(fmt.Errorf("failed to unmarshal config: %w", err))
	}

	globalConfig.Config = loadedConfig
}
