package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// EnvAPIKey names the environment variable that overrides tmdb.api_key.
const EnvAPIKey = "SCENESTILL_TMDB_API_KEY"

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
// An empty path, or a path that does not exist when optional is true,
// yields the defaults.
func Load(configPath string, optional bool) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)

		// Read the config file
		if err := v.ReadInConfig(); err != nil {
			if !optional || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := substituteEnvVars(cfg); err != nil {
		return nil, fmt.Errorf("failed to substitute environment variables: %w", err)
	}

	if key, ok := os.LookupEnv(EnvAPIKey); ok && key != "" {
		cfg.TMDB.APIKey = key
	}

	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func substituteEnvVars(cfg *Config) error {
	cfg.Site.BaseURL = expandEnvVar(cfg.Site.BaseURL)

	cfg.Input.CSVPath = expandEnvVar(cfg.Input.CSVPath)
	cfg.Output.SitemapPath = expandEnvVar(cfg.Output.SitemapPath)

	cfg.TMDB.APIKey = expandEnvVar(cfg.TMDB.APIKey)
	cfg.TMDB.BaseURL = expandEnvVar(cfg.TMDB.BaseURL)

	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)
	cfg.Metrics.TextfilePath = expandEnvVar(cfg.Metrics.TextfilePath)

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		// Return original if env var not found
		return match
	})
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat string) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
}
