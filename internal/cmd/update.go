package cmd

import (
	"context"
	"fmt"

	"github.com/Iron-Ham/tourline/internal/resolve"
	"github.com/Iron-Ham/tourline/internal/styles"
	"github.com/Iron-Ham/tourline/internal/updater"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Re-locate the line of every tour step",
	Long: `Update processes every .tour file in the tours directory.

For each tour with a companion search-strings file, every step's line is
recomputed:

  - steps without a file, or marked NOTAPPLICABLE, get "NA"
  - the entries "1" and "2" are written as that line
  - steps whose file does not exist get "NA"
  - otherwise the first line containing the search string

Tours without a search-strings file are left untouched. Use --dry-run to see
what would change, or --check to fail when any tour is out of date.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

var (
	updateDryRun  bool
	updateCheck   bool
	updateVerbose bool
)

// completionMessage is printed after a run that wrote the tours.
const completionMessage = "Tours updated successfully"

// errOutOfDate is returned by --check when a tour would change.
var errOutOfDate = fmt.Errorf("tours are out of date; run tourline update")

func init() {
	rootCmd.AddCommand(updateCmd)
	addUpdateFlags(updateCmd)
}

// addUpdateFlags registers the update flags. The root command carries them
// too so that a bare "tourline" runs the update.
func addUpdateFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "Show what would change without writing")
	cmd.Flags().BoolVar(&updateCheck, "check", false, "Exit non-zero if any tour would change; writes nothing")
	cmd.Flags().BoolVarP(&updateVerbose, "verbose", "v", false, "List every step, not only changed ones")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Close() }()

	u, err := newUpdater(s, updateDryRun || updateCheck)
	if err != nil {
		return err
	}

	report, err := u.Run(cmd.Context())
	if report != nil {
		renderReport(cmd.OutOrStdout(), report, updateVerbose)
	}
	if err != nil {
		return err
	}

	if updateCheck && report.Changed() {
		return errOutOfDate
	}
	if !report.DryRun {
		fmt.Fprintln(cmd.OutOrStdout(), styles.Secondary.Render(completionMessage))
	}
	return nil
}

func newUpdater(s *settings, dryRun bool) (*updater.Updater, error) {
	onMiss, err := resolve.ParseOnMiss(s.cfg.Update.OnMiss)
	if err != nil {
		return nil, err
	}

	return updater.New(s.fs, updater.Options{
		ProjectRoot:      s.projectRoot,
		ToursDir:         s.toursDir,
		SearchStringsDir: s.searchStringsDir,
		Extension:        s.cfg.SearchStrings.Extension,
		AtomicWrite:      s.cfg.Update.AtomicWrite,
		DryRun:           dryRun,
		OnMiss:           onMiss,
	}, s.logger), nil
}

// runOnce is the watch loop's update step.
func runOnce(u *updater.Updater, cmd *cobra.Command) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		report, err := u.Run(ctx)
		if report != nil && report.Changed() {
			renderReport(cmd.OutOrStdout(), report, false)
		}
		return err
	}
}
