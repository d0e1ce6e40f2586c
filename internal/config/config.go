package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete tourline configuration
type Config struct {
	Paths         PathsConfig         `mapstructure:"paths"`
	SearchStrings SearchStringsConfig `mapstructure:"search_strings"`
	Update        UpdateConfig        `mapstructure:"update"`
	Resolve       ResolveConfig       `mapstructure:"resolve"`
	Watch         WatchConfig         `mapstructure:"watch"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

// PathsConfig controls where tours, artifacts and sources live
type PathsConfig struct {
	// ProjectRoot is the directory step files are relative to.
	// If empty, the current working directory is used.
	// Supports ~ for home directory expansion.
	ProjectRoot string `mapstructure:"project_root"`
	// ToursDir holds the .tour files (default: ".tours")
	ToursDir string `mapstructure:"tours_dir"`
	// SearchStringsDir holds one search-strings artifact per tour
	// (default: ".tours/search-strings")
	SearchStringsDir string `mapstructure:"search_strings_dir"`
}

// SearchStringsConfig controls how artifacts are located
type SearchStringsConfig struct {
	// Extension is appended to the tour's base name (default: ".yaml")
	Extension string `mapstructure:"extension"`
}

// UpdateConfig controls the batch update
type UpdateConfig struct {
	// OnMiss is what a step gets when its search string is not found.
	// Options: "na", "first_line" (default: "na")
	OnMiss string `mapstructure:"on_miss"`
	// AtomicWrite writes tours through a temp file and rename (default: true)
	AtomicWrite bool `mapstructure:"atomic_write"`
}

// ResolveConfig controls single-step resolution and tour generation
type ResolveConfig struct {
	// OnMiss options: "na", "first_line" (default: "first_line")
	OnMiss string `mapstructure:"on_miss"`
}

// WatchConfig controls watch mode
type WatchConfig struct {
	// DebounceMs is how long to wait after the last change before updating
	// (default: 250)
	DebounceMs int `mapstructure:"debounce_ms"`
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// File is the log file path. Empty logs to stderr.
	File string `mapstructure:"file"`
}

// Debounce returns the watch debounce as a duration
func (c *WatchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// ResolveProjectRoot returns the absolute project root.
// If ProjectRoot is empty, it returns cwd.
// If ProjectRoot starts with ~, it expands to the user's home directory.
// If ProjectRoot is relative, it's resolved relative to cwd.
func (p *PathsConfig) ResolveProjectRoot(cwd string) string {
	if p.ProjectRoot == "" {
		return cwd
	}
	return resolvePath(p.ProjectRoot, cwd)
}

// ResolveToursDir returns the tours directory resolved against root.
func (p *PathsConfig) ResolveToursDir(root string) string {
	if p.ToursDir == "" {
		return filepath.Join(root, ".tours")
	}
	return resolvePath(p.ToursDir, root)
}

// ResolveSearchStringsDir returns the artifact directory resolved against root.
func (p *PathsConfig) ResolveSearchStringsDir(root string) string {
	if p.SearchStringsDir == "" {
		return filepath.Join(root, ".tours", "search-strings")
	}
	return resolvePath(p.SearchStringsDir, root)
}

func resolvePath(path, baseDir string) string {
	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	return path
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			ProjectRoot:      "",
			ToursDir:         ".tours",
			SearchStringsDir: ".tours/search-strings",
		},
		SearchStrings: SearchStringsConfig{
			Extension: ".yaml",
		},
		Update: UpdateConfig{
			OnMiss:      "na",
			AtomicWrite: true,
		},
		Resolve: ResolveConfig{
			OnMiss: "first_line",
		},
		Watch: WatchConfig{
			DebounceMs: 250,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Paths defaults
	viper.SetDefault("paths.project_root", defaults.Paths.ProjectRoot)
	viper.SetDefault("paths.tours_dir", defaults.Paths.ToursDir)
	viper.SetDefault("paths.search_strings_dir", defaults.Paths.SearchStringsDir)

	viper.SetDefault("search_strings.extension", defaults.SearchStrings.Extension)

	// Update defaults
	viper.SetDefault("update.on_miss", defaults.Update.OnMiss)
	viper.SetDefault("update.atomic_write", defaults.Update.AtomicWrite)

	viper.SetDefault("resolve.on_miss", defaults.Resolve.OnMiss)
	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
}

// Load reads the configuration from viper into a Config struct
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the configuration directory path
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tourline")
	}
	// Fall back to ~/.config/tourline
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tourline"
	}
	return filepath.Join(home, ".config", "tourline")
}

// ConfigFile returns the full path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
