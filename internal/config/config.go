// Package config provides configuration structures and loading for the
// Scene Still sitemap tools.
package config

// Config represents the complete application configuration.
type Config struct {
	Site       SiteConfig     `yaml:"site" mapstructure:"site"`
	Input      InputConfig    `yaml:"input" mapstructure:"input"`
	Output     OutputConfig   `yaml:"output" mapstructure:"output"`
	TMDB       TMDBConfig     `yaml:"tmdb" mapstructure:"tmdb"`
	Fetch      FetchConfig    `yaml:"fetch" mapstructure:"fetch"`
	Validation ValidateConfig `yaml:"validate" mapstructure:"validate"`
	Logging    LoggingConfig  `yaml:"logging" mapstructure:"logging"`
	Metrics    MetricsConfig  `yaml:"metrics" mapstructure:"metrics"`
}

// SiteConfig describes the public website the sitemap points at.
type SiteConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// InputConfig represents the movie catalog CSV.
type InputConfig struct {
	CSVPath  string `yaml:"csv_path" mapstructure:"csv_path"`
	IDColumn string `yaml:"id_column" mapstructure:"id_column"`
}

// OutputConfig represents where the generated sitemap is written.
type OutputConfig struct {
	SitemapPath string `yaml:"sitemap_path" mapstructure:"sitemap_path"`
}

// TMDBConfig represents the movie metadata API connection.
type TMDBConfig struct {
	Enabled        bool    `yaml:"enabled" mapstructure:"enabled"`
	APIKey         string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL        string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSeconds float64 `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// FetchConfig represents the pacing of metadata requests.
type FetchConfig struct {
	DelaySeconds float64 `yaml:"delay_seconds" mapstructure:"delay_seconds"`
	CastLimit    int     `yaml:"cast_limit" mapstructure:"cast_limit"` // top-billed actors kept per movie
}

// ValidateConfig represents sitemap validator settings.
type ValidateConfig struct {
	MaxIssues         int    `yaml:"max_issues" mapstructure:"max_issues"`
	MaxWarnings       int    `yaml:"max_warnings" mapstructure:"max_warnings"`
	PlaceholderDomain string `yaml:"placeholder_domain" mapstructure:"placeholder_domain"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// MetricsConfig represents the optional Prometheus textfile export.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path" mapstructure:"textfile_path"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			BaseURL: "https://scenestill.com",
		},
		Input: InputConfig{
			CSVPath:  "Scene still DB - Sheet1.csv",
			IDColumn: "Movie ID",
		},
		Output: OutputConfig{
			SitemapPath: "sitemap.xml",
		},
		TMDB: TMDBConfig{
			Enabled:        true,
			BaseURL:        "https://api.themoviedb.org/3",
			TimeoutSeconds: 10,
		},
		Fetch: FetchConfig{
			DelaySeconds: 0.25,
			CastLimit:    10,
		},
		Validation: ValidateConfig{
			MaxIssues:         10,
			MaxWarnings:       5,
			PlaceholderDomain: "yourdomain.com",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
