package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Iron-Ham/tourline/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or create tourline configuration",
	Long: `View or create tourline configuration.

Without arguments, displays the current configuration.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long: `Create a default config file at ~/.config/tourline/config.yaml with all
available options. With --local, create ./.tourline.yaml instead.`,
	RunE: runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configInitLocal bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configInitCmd.Flags().BoolVar(&configInitLocal, "local", false, "Create "+localConfigFile+" in the current directory")
}

// configKeys are the settings shown by "config show".
var configKeys = []string{
	"paths.project_root",
	"paths.tours_dir",
	"paths.search_strings_dir",
	"search_strings.extension",
	"update.on_miss",
	"update.atomic_write",
	"resolve.on_miss",
	"watch.debounce_ms",
	"logging.level",
	"logging.file",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	if _, err := config.Load(); err != nil {
		fmt.Fprintf(out, "# Invalid: %v\n", err)
	}

	// Nest dotted keys so the output is a valid config file
	settings := make(map[string]any)
	for _, key := range configKeys {
		section, name, _ := strings.Cut(key, ".")
		sub, ok := settings[section].(map[string]any)
		if !ok {
			sub = make(map[string]any)
			settings[section] = sub
		}
		sub[name] = viper.Get(key)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

const defaultConfigContent = `# Tourline Configuration

paths:
  # Directory step files are relative to (empty = current directory)
  project_root: ""
  # Directory holding the .tour files, relative to the project root
  tours_dir: .tours
  # Directory holding one search-strings file per tour
  search_strings_dir: .tours/search-strings

search_strings:
  # Extension of search-strings files (.yaml, .yml or .json)
  extension: .yaml

update:
  # Line given to a step whose search string is not found
  # Options: na, first_line
  on_miss: na
  # Write tours through a temporary file and rename
  atomic_write: true

resolve:
  # Miss policy for "tourline resolve" and "tourline generate"
  on_miss: first_line

watch:
  # Quiet period in milliseconds before re-running the update
  debounce_ms: 250

logging:
  # Options: debug, info, warn, error
  level: info
  # Log file path (empty = stderr)
  file: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()
	if configInitLocal {
		configFile = localConfigFile
	}

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. ./%s (current directory)\n", localConfigFile)
	fmt.Fprintf(out, "  2. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  3. $HOME/.config/tourline/config.yaml\n")
	fmt.Fprintf(out, "  4. ./config.yaml\n")
	fmt.Fprintln(out, "\nEnvironment variables: TOURLINE_* (e.g., TOURLINE_UPDATE_ON_MISS)")

	return nil
}
