package cmd

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/tourline/internal/config"
	"github.com/Iron-Ham/tourline/internal/logging"
	"github.com/Iron-Ham/tourline/internal/resolve"
	"github.com/spf13/afero"
)

// settings is the configuration of one command run with every path resolved.
type settings struct {
	cfg              *config.Config
	fs               afero.Fs
	projectRoot      string
	toursDir         string
	searchStringsDir string
	logger           *logging.Logger
}

// loadSettings reads the configuration and opens the logger. Callers close
// the logger when done.
func loadSettings() (*settings, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	root := cfg.Paths.ResolveProjectRoot(cwd)
	return &settings{
		cfg:              cfg,
		fs:               afero.NewOsFs(),
		projectRoot:      root,
		toursDir:         cfg.Paths.ResolveToursDir(root),
		searchStringsDir: cfg.Paths.ResolveSearchStringsDir(root),
		logger:           logger,
	}, nil
}

// resolver builds a step resolver with the given miss policy name.
func (s *settings) resolver(onMiss string) (*resolve.Resolver, error) {
	policy, err := resolve.ParseOnMiss(onMiss)
	if err != nil {
		return nil, err
	}
	return resolve.New(s.fs, s.projectRoot,
		resolve.WithOnMiss(policy),
		resolve.WithLogger(s.logger),
	), nil
}
