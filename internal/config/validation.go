package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration used by the generate command.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateSite()...)
	errors = append(errors, c.validatePaths()...)

	// Metadata API settings only matter when enrichment is on
	if c.TMDB.Enabled {
		errors = append(errors, c.validateTMDB()...)
	}

	errors = append(errors, c.validateFetch()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// ValidateForValidator checks the subset of configuration used by the
// validate command.
func (c *Config) ValidateForValidator() error {
	var errors ValidationErrors

	if strings.TrimSpace(c.Output.SitemapPath) == "" {
		errors = append(errors, ValidationError{
			Field:   "output.sitemap_path",
			Message: "sitemap_path is required",
		})
	}

	if c.Validation.MaxIssues <= 0 {
		errors = append(errors, ValidationError{
			Field:   "validate.max_issues",
			Message: "max_issues must be positive",
		})
	}

	if c.Validation.MaxWarnings <= 0 {
		errors = append(errors, ValidationError{
			Field:   "validate.max_warnings",
			Message: "max_warnings must be positive",
		})
	}

	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateSite() ValidationErrors {
	var errors ValidationErrors

	if !isAbsoluteHTTPURL(c.Site.BaseURL) {
		errors = append(errors, ValidationError{
			Field:   "site.base_url",
			Message: "base_url must be an absolute http(s) URL",
		})
	} else if strings.HasSuffix(c.Site.BaseURL, "/") {
		errors = append(errors, ValidationError{
			Field:   "site.base_url",
			Message: "base_url must not end with '/'",
		})
	}

	return errors
}

func (c *Config) validatePaths() ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(c.Input.CSVPath) == "" {
		errors = append(errors, ValidationError{
			Field:   "input.csv_path",
			Message: "csv_path is required",
		})
	}

	if strings.TrimSpace(c.Input.IDColumn) == "" {
		errors = append(errors, ValidationError{
			Field:   "input.id_column",
			Message: "id_column is required",
		})
	}

	if strings.TrimSpace(c.Output.SitemapPath) == "" {
		errors = append(errors, ValidationError{
			Field:   "output.sitemap_path",
			Message: "sitemap_path is required",
		})
	}

	return errors
}

func (c *Config) validateTMDB() ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(c.TMDB.APIKey) == "" {
		errors = append(errors, ValidationError{
			Field:   "tmdb.api_key",
			Message: fmt.Sprintf("api_key is required when tmdb is enabled (or set %s)", EnvAPIKey),
		})
	}

	if !isAbsoluteHTTPURL(c.TMDB.BaseURL) {
		errors = append(errors, ValidationError{
			Field:   "tmdb.base_url",
			Message: "base_url must be an absolute http(s) URL",
		})
	}

	if c.TMDB.TimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "tmdb.timeout_seconds",
			Message: "timeout_seconds must be positive",
		})
	}

	return errors
}

func (c *Config) validateFetch() ValidationErrors {
	var errors ValidationErrors

	if c.Fetch.DelaySeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "fetch.delay_seconds",
			Message: "delay_seconds cannot be negative",
		})
	}

	if c.Fetch.CastLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "fetch.cast_limit",
			Message: "cast_limit must be positive",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
