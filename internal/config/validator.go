package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/tourline/internal/resolve"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "update.on_miss")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidOnMissPolicies returns the list of valid on_miss values
func ValidOnMissPolicies() []string {
	return resolve.ValidPolicies()
}

// maxPathLength is a reasonable limit; most filesystems stop around 4096
const maxPathLength = 4096

// maxDebounceMs caps the watch debounce at one minute
const maxDebounceMs = 60000

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validatePaths()...)
	errors = append(errors, c.validateSearchStrings()...)
	errors = append(errors, c.validateOnMiss("update.on_miss", c.Update.OnMiss)...)
	errors = append(errors, c.validateOnMiss("resolve.on_miss", c.Resolve.OnMiss)...)
	errors = append(errors, c.validateWatch()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validatePaths validates the PathsConfig
func (c *Config) validatePaths() []ValidationError {
	var errors []ValidationError

	fields := []struct {
		name  string
		value string
	}{
		{"paths.project_root", c.Paths.ProjectRoot},
		{"paths.tours_dir", c.Paths.ToursDir},
		{"paths.search_strings_dir", c.Paths.SearchStringsDir},
	}

	for _, f := range fields {
		// Check for null bytes which are invalid in paths
		if strings.ContainsRune(f.value, '\x00') {
			errors = append(errors, ValidationError{
				Field:   f.name,
				Value:   f.value,
				Message: "path contains invalid null character",
			})
		}
		if len(f.value) > maxPathLength {
			errors = append(errors, ValidationError{
				Field:   f.name,
				Value:   f.value,
				Message: fmt.Sprintf("path exceeds maximum length of %d characters", maxPathLength),
			})
		}
	}

	return errors
}

// validateSearchStrings validates the SearchStringsConfig
func (c *Config) validateSearchStrings() []ValidationError {
	var errors []ValidationError

	ext := c.SearchStrings.Extension
	if ext == "" {
		return errors
	}
	if !strings.HasPrefix(ext, ".") {
		errors = append(errors, ValidationError{
			Field:   "search_strings.extension",
			Value:   ext,
			Message: "must start with a dot",
		})
	}
	if strings.ContainsAny(ext, `/\`) {
		errors = append(errors, ValidationError{
			Field:   "search_strings.extension",
			Value:   ext,
			Message: "must not contain path separators",
		})
	}

	return errors
}

func (c *Config) validateOnMiss(field, value string) []ValidationError {
	if value == "" || slices.Contains(ValidOnMissPolicies(), value) {
		return nil
	}
	return []ValidationError{{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidOnMissPolicies(), ", ")),
	}}
}

// validateWatch validates the WatchConfig
func (c *Config) validateWatch() []ValidationError {
	var errors []ValidationError

	if c.Watch.DebounceMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "watch.debounce_ms",
			Value:   c.Watch.DebounceMs,
			Message: "must be non-negative",
		})
	}
	if c.Watch.DebounceMs > maxDebounceMs {
		errors = append(errors, ValidationError{
			Field:   "watch.debounce_ms",
			Value:   c.Watch.DebounceMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxDebounceMs),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if strings.ContainsRune(c.Logging.File, '\x00') {
		errors = append(errors, ValidationError{
			Field:   "logging.file",
			Value:   c.Logging.File,
			Message: "path contains invalid null character",
		})
	}

	return errors
}
