package cmd

import (
	"fmt"

	"github.com/Iron-Ham/tourline/internal/generate"
	"github.com/Iron-Ham/tourline/internal/styles"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <descriptor.yaml>",
	Short: "Create a tour from step descriptors",
	Long: `Generate reads a YAML descriptor and writes a new tour.

The descriptor has a title, an optional description, and a list of steps:

  title: Getting Started
  description: How a request is served
  steps:
    - title: Welcome
      description: Start here
    - file: src/server.ts
      searchString: function listen
      title: Server
      offset: 1

The tour is written to <tours>/<slug of title>.tour, and the search strings
to the matching search-strings file so that "tourline update" can keep the
lines current.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var (
	generateForce      bool
	generateNoArtifact bool
	generateOnMiss     string
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVarP(&generateForce, "force", "f", false, "Overwrite an existing tour")
	generateCmd.Flags().BoolVar(&generateNoArtifact, "no-search-strings", false, "Do not write the search-strings file")
	generateCmd.Flags().StringVar(&generateOnMiss, "on-miss", "", "What a miss resolves to: na, first_line (default from resolve.on_miss)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Close() }()

	onMiss := s.cfg.Resolve.OnMiss
	if cmd.Flags().Changed("on-miss") {
		onMiss = generateOnMiss
	}
	r, err := s.resolver(onMiss)
	if err != nil {
		return err
	}

	d, err := generate.LoadDescriptor(s.fs, args[0])
	if err != nil {
		return err
	}

	g := generate.New(s.fs, r, generate.Options{
		ToursDir:         s.toursDir,
		SearchStringsDir: s.searchStringsDir,
		Extension:        s.cfg.SearchStrings.Extension,
		AtomicWrite:      s.cfg.Update.AtomicWrite,
		Overwrite:        generateForce,
		SkipArtifact:     generateNoArtifact,
	}, s.logger)

	result, err := g.Generate(d)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s (%d steps)\n", styles.Secondary.Render("Created"), result.TourPath, result.Steps)
	if result.ArtifactPath != "" {
		fmt.Fprintf(out, "%s %s\n", styles.Secondary.Render("Created"), result.ArtifactPath)
	}
	return nil
}
