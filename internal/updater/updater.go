// Package updater re-locates the line numbers of every tour in a directory.
//
// For each .tour file the updater loads the companion search-strings
// artifact, computes a new line for every step, and writes the tour back.
// Tours are processed one at a time in name order. A failure stops the run;
// tours written before it stay written.
package updater

import (
	"context"
	"path/filepath"

	"github.com/Iron-Ham/tourline/internal/errors"
	"github.com/Iron-Ham/tourline/internal/logging"
	"github.com/Iron-Ham/tourline/internal/resolve"
	"github.com/Iron-Ham/tourline/internal/searchstrings"
	"github.com/Iron-Ham/tourline/internal/tour"
	"github.com/spf13/afero"
)

// Options configures an Updater. Directories are used as given; callers
// resolve relative paths before constructing the Updater.
type Options struct {
	// ProjectRoot is the directory step files are relative to.
	ProjectRoot string
	// ToursDir holds the .tour files.
	ToursDir string
	// SearchStringsDir holds one artifact per tour.
	SearchStringsDir string
	// Extension is the artifact extension, e.g. ".yaml".
	Extension string
	// AtomicWrite writes through a temp file and rename.
	AtomicWrite bool
	// DryRun computes everything and writes nothing.
	DryRun bool
	// OnMiss decides the line of a step whose search text is not in its
	// file. The zero value marks it NA.
	OnMiss resolve.OnMiss
}

// Updater rewrites tour files.
type Updater struct {
	fs       afero.Fs
	opts     Options
	resolver *resolve.Resolver
	logger   *logging.Logger
}

// New creates an Updater.
func New(fs afero.Fs, opts Options, logger *logging.Logger) *Updater {
	if opts.Extension == "" {
		opts.Extension = searchstrings.DefaultExtension
	}
	if logger == nil {
		logger = logging.NopLogger()
	}

	return &Updater{
		fs:   fs,
		opts: opts,
		resolver: resolve.New(fs, opts.ProjectRoot,
			resolve.WithOnMiss(opts.OnMiss),
			resolve.WithLogger(logger),
		),
		logger: logger,
	}
}

// Options returns the effective options.
func (u *Updater) Options() Options {
	return u.opts
}

// Run updates every tour in the tours directory.
func (u *Updater) Run(ctx context.Context) (*Report, error) {
	if err := u.checkDirs(); err != nil {
		return nil, err
	}

	names, err := u.listTours()
	if err != nil {
		return nil, err
	}

	report := &Report{DryRun: u.opts.DryRun}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result, err := u.UpdateTour(name)
		if err != nil {
			return report, err
		}
		report.Tours = append(report.Tours, result)
	}

	u.logger.Debug("run complete",
		"tours", len(report.Tours),
		"updated", report.Count(StatusUpdated),
		"skipped", report.Count(StatusSkipped),
	)
	return report, nil
}

func (u *Updater) checkDirs() error {
	for _, dir := range []string{u.opts.ToursDir, u.opts.SearchStringsDir} {
		ok, err := afero.DirExists(u.fs, dir)
		if err != nil || !ok {
			cause := errors.ErrDirectoryMissing
			if err != nil {
				cause = errors.Join(errors.ErrDirectoryMissing, err)
			}
			return errors.NewSetupError(u.opts.ToursDir, u.opts.SearchStringsDir, cause)
		}
	}
	return nil
}

// listTours returns the tour file names in the tours directory, sorted.
func (u *Updater) listTours() ([]string, error) {
	entries, err := afero.ReadDir(u.fs, u.opts.ToursDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", u.opts.ToursDir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !tour.IsTourFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// UpdateTour processes a single tour file by name.
func (u *Updater) UpdateTour(name string) (TourResult, error) {
	path := filepath.Join(u.opts.ToursDir, name)
	artifactPath := searchstrings.PathFor(u.opts.SearchStringsDir, name, u.opts.Extension)
	result := TourResult{Name: name, Path: path, Artifact: artifactPath}

	t, err := tour.Load(u.fs, path)
	if err != nil {
		return result, err
	}

	ok, err := afero.Exists(u.fs, artifactPath)
	if !ok {
		if err != nil {
			u.logger.WithTour(name).Debug("search strings not accessible, skipping tour", "path", artifactPath, "error", err)
		}
		result.Status = StatusSkipped
		return result, nil
	}

	artifact, err := searchstrings.Load(u.fs, artifactPath)
	if err != nil {
		var tourErr *errors.TourError
		if errors.As(err, &tourErr) {
			return result, tourErr.WithTour(name)
		}
		return result, errors.NewTourError("failed to read search strings", err).WithTour(name).WithArtifact(artifactPath)
	}

	logger := u.logger.WithTour(name)

	steps := t.Steps()
	lines := make([]resolve.Line, len(steps))
	for i, step := range steps {
		line, err := u.lineFor(step, artifact.At(i))
		if err != nil {
			return result, errors.NewTourError("failed to resolve step", err).WithTour(name).WithStep(i)
		}
		lines[i] = line
	}

	for i, step := range steps {
		file, _ := step.File()
		outcome := StepOutcome{
			Index:     i,
			Title:     step.Title(),
			File:      file,
			Directive: artifact.At(i),
			Before:    step.LineString(),
			After:     lines[i],
			Rewritten: step.HasLine(),
		}
		if step.HasLine() {
			lines[i].Apply(step)
		}
		if outcome.Changed() {
			logger.WithStep(i, outcome.Title).Debug("line moved", "from", outcome.Before, "to", outcome.After.String())
		}
		result.Steps = append(result.Steps, outcome)
	}

	changed, err := t.Changed()
	if err != nil {
		return result, errors.NewTourError("failed to encode tour", err).WithTour(name)
	}

	if u.opts.DryRun {
		result.Status = StatusUnchanged
		if changed {
			result.Status = StatusWouldUpdate
		}
		return result, nil
	}

	data, err := t.Encode()
	if err != nil {
		return result, errors.NewTourError("failed to encode tour", err).WithTour(name)
	}
	if err := tour.WriteFile(u.fs, path, data, u.opts.AtomicWrite); err != nil {
		return result, errors.NewTourError("failed to write tour", err).WithTour(name)
	}

	result.Status = StatusUnchanged
	if changed {
		result.Status = StatusUpdated
		logger.Info("tour updated", "changed_steps", len(result.ChangedSteps()))
	}
	return result, nil
}

// lineFor computes a step's new line. The first matching rule wins:
// no file or a not-applicable directive gives NA; a fixed directive gives
// its literal; a missing source file gives NA; otherwise the first line
// containing the directive text plus its offset, or the miss policy's
// fallback when there is none.
func (u *Updater) lineFor(step tour.Step, d searchstrings.Directive) (resolve.Line, error) {
	file, ok := step.File()
	if !ok || d.Kind == searchstrings.KindNotApplicable {
		return resolve.NotApplicable(), nil
	}

	if d.Kind == searchstrings.KindFixed {
		return resolve.Fixed(d.Line), nil
	}

	if !u.resolver.Exists(file) {
		return resolve.NotFound(0), nil
	}

	return u.resolver.Locate(file, d.Text, d.Offset)
}
