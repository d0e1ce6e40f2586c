// Package generate builds tour files from step descriptors.
//
// A descriptor names a tour and lists its steps by file and search string.
// Each step is resolved to a line, the tour is written to the tours
// directory under a slug of its title, and a companion search-strings
// artifact is written next to it so later updates can keep the lines
// current.
package generate

import (
	"path/filepath"

	"github.com/Iron-Ham/tourline/internal/errors"
	"github.com/Iron-Ham/tourline/internal/logging"
	"github.com/Iron-Ham/tourline/internal/resolve"
	"github.com/Iron-Ham/tourline/internal/searchstrings"
	"github.com/Iron-Ham/tourline/internal/tour"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// SchemaURL is written as the $schema of generated tours.
const SchemaURL = "https://aka.ms/codetour-schema"

// Descriptor describes a tour to generate.
type Descriptor struct {
	Title       string               `yaml:"title"`
	Description string               `yaml:"description"`
	Steps       []resolve.Descriptor `yaml:"steps"`
}

// LoadDescriptor reads a YAML descriptor file.
func LoadDescriptor(fs afero.Fs, path string) (*Descriptor, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read descriptor %s", path)
	}

	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.NewValidationError("invalid descriptor").WithField(path).WithCause(err)
	}
	if tour.Slugify(d.Title) == "" {
		return nil, errors.NewValidationError("descriptor title must contain a letter or digit").WithField("title").WithValue(d.Title)
	}
	return &d, nil
}

// Options configures a Generator.
type Options struct {
	ToursDir         string
	SearchStringsDir string
	Extension        string
	AtomicWrite      bool
	// Overwrite replaces an existing tour of the same name.
	Overwrite bool
	// SkipArtifact writes only the tour.
	SkipArtifact bool
}

// Generator writes new tours.
type Generator struct {
	fs       afero.Fs
	resolver *resolve.Resolver
	opts     Options
	logger   *logging.Logger
}

// New creates a Generator. The resolver's miss policy decides the line of
// steps whose search string is not found.
func New(fs afero.Fs, resolver *resolve.Resolver, opts Options, logger *logging.Logger) *Generator {
	if opts.Extension == "" {
		opts.Extension = searchstrings.DefaultExtension
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Generator{fs: fs, resolver: resolver, opts: opts, logger: logger}
}

// Result describes what Generate wrote.
type Result struct {
	TourPath     string
	ArtifactPath string
	Steps        int
}

// Generate resolves the descriptor's steps and writes the tour.
func (g *Generator) Generate(d *Descriptor) (*Result, error) {
	name := tour.FileName(d.Title)
	if name == tour.Extension {
		return nil, errors.NewValidationError("tour title must contain a letter or digit").WithField("title").WithValue(d.Title)
	}

	path := filepath.Join(g.opts.ToursDir, name)
	if exists, _ := afero.Exists(g.fs, path); exists && !g.opts.Overwrite {
		return nil, errors.NewTourError("refusing to overwrite", errors.ErrTourExists).WithTour(name)
	}

	steps, err := g.resolver.ResolveAll(d.Steps, name)
	if err != nil {
		return nil, errors.NewTourError("failed to resolve steps", err).WithTour(name)
	}

	doc := tour.NewObject()
	doc.Set("$schema", SchemaURL)
	doc.Set("title", d.Title)
	if d.Description != "" {
		doc.Set("description", d.Description)
	}
	list := make([]any, len(steps))
	for i, s := range steps {
		list[i] = s
	}
	doc.Set("steps", list)

	data, err := tour.Encode(doc)
	if err != nil {
		return nil, errors.NewTourError("failed to encode tour", err).WithTour(name)
	}

	// The search strings go first: a tour without them is never updated.
	result := &Result{TourPath: path, Steps: len(steps)}
	if !g.opts.SkipArtifact {
		artifactPath, err := g.writeArtifact(name, d.Steps)
		if err != nil {
			return nil, err
		}
		result.ArtifactPath = artifactPath
	}

	if err := g.fs.MkdirAll(g.opts.ToursDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", g.opts.ToursDir)
	}
	if err := tour.WriteFile(g.fs, path, data, g.opts.AtomicWrite); err != nil {
		return nil, errors.NewTourError("failed to write tour", err).WithTour(name)
	}

	g.logger.WithTour(name).Info("tour generated", "path", path, "steps", len(steps))
	return result, nil
}

// writeArtifact records one directive per step: the search string with its
// offset, or the not-applicable marker for steps without a file or search
// string. Search strings are always written as searches, even "1" or "2".
func (g *Generator) writeArtifact(name string, steps []resolve.Descriptor) (string, error) {
	directives := make([]searchstrings.Directive, len(steps))
	for i, s := range steps {
		if s.File == "" || s.SearchString == "" {
			directives[i] = searchstrings.NotApplicable()
			continue
		}
		directives[i] = searchstrings.SearchOffset(s.SearchString, s.Offset)
	}

	data, err := searchstrings.Encode(directives)
	if err != nil {
		return "", errors.NewTourError("failed to encode search strings", err).WithTour(name)
	}

	path := searchstrings.PathFor(g.opts.SearchStringsDir, name, g.opts.Extension)
	if err := g.fs.MkdirAll(g.opts.SearchStringsDir, 0755); err != nil {
		return "", errors.Wrapf(err, "failed to create %s", g.opts.SearchStringsDir)
	}
	if err := tour.WriteFile(g.fs, path, data, g.opts.AtomicWrite); err != nil {
		return "", errors.NewTourError("failed to write search strings", err).WithTour(name).WithArtifact(path)
	}
	return path, nil
}
