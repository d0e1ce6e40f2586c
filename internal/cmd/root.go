package cmd

import (
	"os"
	"strings"

	"github.com/Iron-Ham/tourline/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// localConfigFile is picked up from the working directory before the user
// config directory is searched.
const localConfigFile = ".tourline.yaml"

var rootCmd = &cobra.Command{
	Use:   "tourline",
	Short: "Keep guided-tour line numbers in sync with the code",
	Long: `Tourline re-locates the line each tour step points at.

Every .tour file in the tours directory has a companion search-strings file
listing, per step, a piece of text to look for in the step's source file.
Tourline finds the first line containing that text and rewrites the step's
line. Run without a subcommand to update all tours.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runUpdate,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is ./.tourline.yaml, then $HOME/.config/tourline/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("root", "", "project root that step files are relative to (default is the current directory)")
	rootCmd.PersistentFlags().String("tours", "", "tours directory (default is .tours)")
	rootCmd.PersistentFlags().String("search-strings", "", "search-strings directory (default is .tours/search-strings)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("paths.project_root", rootCmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag("paths.tours_dir", rootCmd.PersistentFlags().Lookup("tours"))
	_ = viper.BindPFlag("paths.search_strings_dir", rootCmd.PersistentFlags().Lookup("search-strings"))

	addUpdateFlags(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if _, err := os.Stat(localConfigFile); err == nil {
		viper.SetConfigFile(localConfigFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/tourline")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TOURLINE")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TOURLINE_PATHS_TOURS_DIR for paths.tours_dir
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
