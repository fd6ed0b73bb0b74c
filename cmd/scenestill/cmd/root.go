package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/scenestill/internal/config"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

const defaultConfigFile = "scenestill.yaml"

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "scenestill",
	Short: "Scene Still sitemap generator and validator",
	Long: `Builds the XML sitemap for the Scene Still film-still website from the
movie catalog CSV, enriched with directors, cinematographers and cast
from TMDB, and checks existing sitemaps before they are submitted.

Features:
  - Static, film and person pages in one sitemaps.org urlset
  - People deduplicated across movies, first role wins
  - Rate-limited TMDB lookups that skip movies on failure
  - Duplicate, malformed URL and priority range checks
  - Placeholder domain warnings`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile,
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel  string
	LogFormat string
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
	}
}

// loadConfig reads the config file and applies flag overrides. The default
// file may be absent, in which case built-in defaults apply.
func loadConfig() (*config.Config, error) {
	configFile := GetConfigFile()

	cfg, err := config.Load(configFile, configFile == defaultConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat)

	return cfg, nil
}
