package resolve

import (
	"fmt"
	"strconv"

	"github.com/Iron-Ham/tourline/internal/tour"
)

// Kind discriminates a resolved Line.
type Kind int

const (
	// KindResolved is a line found by searching the source file.
	KindResolved Kind = iota
	// KindFixed is a literal line taken from the search-strings artifact.
	KindFixed
	// KindNotApplicable means the step has no file or its directive says
	// no line applies.
	KindNotApplicable
	// KindNotFound means the search text is not in the file, or the file
	// does not exist.
	KindNotFound
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindResolved:
		return "resolved"
	case KindFixed:
		return "fixed"
	case KindNotApplicable:
		return "not-applicable"
	case KindNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Line is the outcome of resolving one step.
type Line struct {
	Kind Kind
	// Number is the 1-based line for KindResolved and KindFixed. For
	// KindNotFound it holds the fallback line chosen by the miss policy, or
	// 0 when the step should be marked NA.
	Number int
}

// Resolved returns a searched line.
func Resolved(n int) Line { return Line{Kind: KindResolved, Number: n} }

// Fixed returns a literal line.
func Fixed(n int) Line { return Line{Kind: KindFixed, Number: n} }

// NotApplicable returns the not-applicable line.
func NotApplicable() Line { return Line{Kind: KindNotApplicable} }

// NotFound returns a miss with an optional fallback line (0 for none).
func NotFound(fallback int) Line { return Line{Kind: KindNotFound, Number: fallback} }

// HasNumber reports whether the line is written as a number.
func (l Line) HasNumber() bool {
	switch l.Kind {
	case KindResolved, KindFixed:
		return true
	case KindNotFound:
		return l.Number > 0
	default:
		return false
	}
}

// String renders the line the way it is written to a tour file.
func (l Line) String() string {
	if l.HasNumber() {
		return strconv.Itoa(l.Number)
	}
	return tour.NotApplicable
}

// GoString is used by %#v in test failures.
func (l Line) GoString() string {
	return fmt.Sprintf("resolve.Line{%s %d}", l.Kind, l.Number)
}

// Apply writes the line into step.
func (l Line) Apply(step tour.Step) {
	if l.HasNumber() {
		step.SetLineNumber(l.Number)
		return
	}
	step.SetLineNotApplicable()
}

// Value returns the JSON value for the line: a number or the NA marker.
func (l Line) Value() any {
	if l.HasNumber() {
		return l.Number
	}
	return tour.NotApplicable
}
