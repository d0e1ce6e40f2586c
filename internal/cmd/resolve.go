package cmd

import (
	"fmt"

	"github.com/Iron-Ham/tourline/internal/resolve"
	"github.com/Iron-Ham/tourline/internal/tour"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a single step and print it as JSON",
	Long: `Resolve finds the first line of --file containing --search, adds
--offset, and prints the resulting tour step.

Without --file or --search the step is printed unchanged. When the search
text is not found a warning is logged and the step gets line 1, or "NA"
with --on-miss na.`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

var (
	resolveFile        string
	resolveSearch      string
	resolveOffset      int
	resolveTitle       string
	resolveDescription string
	resolveOnMiss      string
	resolveTourName    string
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVar(&resolveFile, "file", "", "Source file, relative to the project root")
	resolveCmd.Flags().StringVar(&resolveSearch, "search", "", "Text to look for")
	resolveCmd.Flags().IntVar(&resolveOffset, "offset", 0, "Lines to add to the match")
	resolveCmd.Flags().StringVar(&resolveTitle, "title", "", "Step title")
	resolveCmd.Flags().StringVar(&resolveDescription, "description", "", "Step description")
	resolveCmd.Flags().StringVar(&resolveOnMiss, "on-miss", "", "What a miss resolves to: na, first_line (default from resolve.on_miss)")
	resolveCmd.Flags().StringVar(&resolveTourName, "tour", "", "Tour name used in log messages")
}

func runResolve(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Close() }()

	onMiss := s.cfg.Resolve.OnMiss
	if cmd.Flags().Changed("on-miss") {
		onMiss = resolveOnMiss
	}
	r, err := s.resolver(onMiss)
	if err != nil {
		return err
	}

	step, err := r.ResolveStep(resolve.Descriptor{
		File:         resolveFile,
		Description:  resolveDescription,
		SearchString: resolveSearch,
		Title:        resolveTitle,
		Offset:       resolveOffset,
	}, resolveTourName)
	if err != nil {
		return err
	}

	data, err := tour.Encode(step)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
