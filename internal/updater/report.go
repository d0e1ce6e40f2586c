package updater

import (
	"github.com/Iron-Ham/tourline/internal/resolve"
	"github.com/Iron-Ham/tourline/internal/searchstrings"
)

// Status is what happened to one tour file during a run.
type Status string

const (
	// StatusUpdated means the tour was rewritten with different content.
	StatusUpdated Status = "updated"
	// StatusUnchanged means every line was already current.
	StatusUnchanged Status = "unchanged"
	// StatusSkipped means the tour has no search-strings artifact.
	StatusSkipped Status = "skipped"
	// StatusWouldUpdate means a dry run found lines to change.
	StatusWouldUpdate Status = "would-update"
)

// StepOutcome records how one step was resolved.
type StepOutcome struct {
	Index     int
	Title     string
	File      string
	Directive searchstrings.Directive
	// Before is the step's line as it was on disk, "-" if it had none.
	Before string
	// After is the computed line.
	After resolve.Line
	// Rewritten is false for steps that had no line key and were left alone.
	Rewritten bool
}

// Changed reports whether the step's written line differs from before.
func (s StepOutcome) Changed() bool {
	return s.Rewritten && s.Before != s.After.String()
}

// TourResult is the outcome for one tour file.
type TourResult struct {
	Name     string
	Path     string
	Artifact string
	Status   Status
	Steps    []StepOutcome
}

// ChangedSteps returns the steps whose line changed.
func (t TourResult) ChangedSteps() []StepOutcome {
	var out []StepOutcome
	for _, s := range t.Steps {
		if s.Changed() {
			out = append(out, s)
		}
	}
	return out
}

// Report summarizes a run.
type Report struct {
	DryRun bool
	Tours  []TourResult
}

// Count returns how many tours ended with status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, t := range r.Tours {
		if t.Status == status {
			n++
		}
	}
	return n
}

// Changed reports whether any tour was, or in a dry run would be, rewritten
// with different content.
func (r *Report) Changed() bool {
	return r.Count(StatusUpdated) > 0 || r.Count(StatusWouldUpdate) > 0
}
