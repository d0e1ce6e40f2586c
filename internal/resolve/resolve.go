// Package resolve finds the line of a source file that a tour step points at.
//
// Both the single-step path (building a step from a descriptor) and the
// batch updater go through [Resolver.Locate]. The only difference between
// them is the miss policy: the updater marks a miss as NA, while building a
// step falls back to line 1 and logs a warning.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Iron-Ham/tourline/internal/errors"
	"github.com/Iron-Ham/tourline/internal/logging"
	"github.com/spf13/afero"
)

// OnMiss decides what a search that finds nothing resolves to.
type OnMiss int

const (
	// MissNotApplicable marks the step NA.
	MissNotApplicable OnMiss = iota
	// MissFirstLine falls back to line 1.
	MissFirstLine
)

// Policy names as they appear in configuration.
const (
	PolicyNotApplicable = "na"
	PolicyFirstLine     = "first_line"
)

// ValidPolicies returns the accepted policy names.
func ValidPolicies() []string {
	return []string{PolicyNotApplicable, PolicyFirstLine}
}

// ParseOnMiss converts a policy name.
func ParseOnMiss(s string) (OnMiss, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case PolicyNotApplicable:
		return MissNotApplicable, nil
	case PolicyFirstLine:
		return MissFirstLine, nil
	default:
		return 0, errors.NewValidationError("unknown miss policy").WithField("on_miss").WithValue(s)
	}
}

// String returns the policy name.
func (m OnMiss) String() string {
	if m == MissFirstLine {
		return PolicyFirstLine
	}
	return PolicyNotApplicable
}

// Resolver reads source files relative to a project root.
type Resolver struct {
	fs     afero.Fs
	root   string
	onMiss OnMiss
	logger *logging.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithOnMiss sets the miss policy. The default is MissNotApplicable.
func WithOnMiss(policy OnMiss) Option {
	return func(r *Resolver) {
		r.onMiss = policy
	}
}

// WithLogger sets the logger used for miss diagnostics. A nil logger is
// ignored.
func WithLogger(logger *logging.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Resolver rooted at root.
func New(fs afero.Fs, root string, opts ...Option) *Resolver {
	r := &Resolver{
		fs:     fs,
		root:   root,
		onMiss: MissNotApplicable,
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the on-disk path of a step's file.
func (r *Resolver) Path(file string) string {
	return filepath.Join(r.root, file)
}

// Exists reports whether a step's file exists.
func (r *Resolver) Exists(file string) bool {
	ok, err := afero.Exists(r.fs, r.Path(file))
	return err == nil && ok
}

// Locate returns the 1-based index of the first line of file containing
// needle, plus offset. Lines are split on "\n" and matched by plain
// substring containment. A read failure is returned as an error wrapping
// both ErrSourceUnreadable and the underlying I/O error.
func (r *Resolver) Locate(file, needle string, offset int) (Line, error) {
	data, err := afero.ReadFile(r.fs, r.Path(file))
	if err != nil {
		if os.IsNotExist(err) {
			return Line{}, errors.NewNotFoundError("source file", file).WithCause(fmt.Errorf("%w: %w", errors.ErrSourceUnreadable, err))
		}
		return Line{}, fmt.Errorf("%w: %s: %w", errors.ErrSourceUnreadable, file, err)
	}

	for i, line := range strings.Split(string(data), "\n") {
		if strings.Contains(line, needle) {
			return Resolved(i + 1 + offset), nil
		}
	}

	if r.onMiss == MissFirstLine {
		return NotFound(1), nil
	}
	return NotFound(0), nil
}
