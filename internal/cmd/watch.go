package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Iron-Ham/tourline/internal/styles"
	"github.com/Iron-Ham/tourline/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Update tours whenever the project changes",
	Long: `Watch runs an update, then watches the project and the search-strings
directory and updates again after every burst of changes. Changes to the
tours directory itself are ignored. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var watchDebounce time.Duration

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Quiet period before updating (default from watch.debounce_ms)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Close() }()

	u, err := newUpdater(s, false)
	if err != nil {
		return err
	}

	debounce := s.cfg.Watch.Debounce()
	if cmd.Flags().Changed("debounce") {
		debounce = watchDebounce
	}

	w, err := watch.New(watch.Options{
		ProjectRoot:      s.projectRoot,
		ToursDir:         s.toursDir,
		SearchStringsDir: s.searchStringsDir,
		Debounce:         debounce,
		RunOnStart:       true,
	}, runOnce(u, cmd), s.logger)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(cmd.OutOrStdout(), styles.Muted.Render("Watching "+s.projectRoot+" (Ctrl+C to stop)"))
	return w.Run(ctx)
}
