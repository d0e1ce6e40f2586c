// Package tour reads and writes guided-tour files.
//
// A tour file is a JSON document whose "steps" array lists the stops of a
// walkthrough. Each step may anchor to a source file and a line number. The
// package keeps the document as an ordered [Object] so that rewriting a step's
// line leaves the rest of the document as it was.
package tour

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Iron-Ham/tourline/internal/errors"
	"github.com/spf13/afero"
)

// Extension is the file extension of tour files.
const Extension = ".tour"

// NotApplicable is the value written to a step's line when no line applies
// or none could be determined.
const NotApplicable = "NA"

// Tour is a parsed tour file.
type Tour struct {
	// Name is the file name within the tours directory, e.g. "demo.tour".
	Name string
	// Doc is the full document.
	Doc *Object

	raw   []byte
	steps []any
}

// Parse decodes a tour document. The document must be a JSON object whose
// "steps" value is an array.
func Parse(name string, data []byte) (*Tour, error) {
	doc, err := DecodeObject(data)
	if err != nil {
		return nil, errors.NewTourError("failed to parse tour", fmt.Errorf("%w: %v", errors.ErrMalformedTour, err)).WithTour(name)
	}

	raw, ok := doc.Get("steps")
	if !ok {
		return nil, errors.NewTourError("tour has no steps field", errors.ErrMalformedTour).WithTour(name)
	}
	steps, ok := raw.([]any)
	if !ok {
		return nil, errors.NewTourError("steps is "+kindOf(raw)+", not an array", errors.ErrMalformedTour).WithTour(name)
	}

	return &Tour{
		Name:  name,
		Doc:   doc,
		raw:   data,
		steps: steps,
	}, nil
}

// Load reads and parses the tour file at path.
func Load(fs afero.Fs, path string) (*Tour, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.NewTourError("failed to read tour", err).WithTour(filepath.Base(path))
	}
	return Parse(filepath.Base(path), data)
}

// Steps returns a view of every step in document order.
func (t *Tour) Steps() []Step {
	out := make([]Step, len(t.steps))
	for i, raw := range t.steps {
		obj, _ := raw.(*Object)
		out[i] = Step{Index: i, obj: obj}
	}
	return out
}

// Encode renders the document in its on-disk layout.
func (t *Tour) Encode() ([]byte, error) {
	return Encode(t.Doc)
}

// Changed reports whether the encoded document differs from the bytes it
// was parsed from.
func (t *Tour) Changed() (bool, error) {
	data, err := t.Encode()
	if err != nil {
		return false, err
	}
	return !bytes.Equal(data, t.raw), nil
}

// IsTourFile reports whether name carries the tour extension.
func IsTourFile(name string) bool {
	return strings.HasSuffix(name, Extension)
}

// Step is a view of one entry of a tour's steps array. Entries that are not
// JSON objects are exposed as steps with no file and no line.
type Step struct {
	Index int
	obj   *Object
}

// File returns the step's source file. ok is false when the field is
// absent, null, empty or not a string.
func (s Step) File() (file string, ok bool) {
	v := s.str("file")
	return v, v != ""
}

// Title returns the step's title, or "" if it has none.
func (s Step) Title() string {
	return s.str("title")
}

// HasLine reports whether the step already carries a line key. A null line
// counts as present.
func (s Step) HasLine() bool {
	if s.obj == nil {
		return false
	}
	_, ok := s.obj.Get("line")
	return ok
}

// Line returns the raw line value.
func (s Step) Line() any {
	if s.obj == nil {
		return nil
	}
	v, _ := s.obj.Get("line")
	return v
}

// LineString renders the current line value for display.
func (s Step) LineString() string {
	switch v := s.Line().(type) {
	case nil:
		return "-"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		b, _ := Encode(v)
		return string(b)
	}
}

// SetLineNumber stores n as the step's line.
func (s Step) SetLineNumber(n int) {
	if s.obj != nil {
		s.obj.Set("line", n)
	}
}

// SetLineNotApplicable stores the NA marker as the step's line.
func (s Step) SetLineNotApplicable() {
	if s.obj != nil {
		s.obj.Set("line", NotApplicable)
	}
}

func (s Step) str(key string) string {
	if s.obj == nil {
		return ""
	}
	v, _ := s.obj.Get(key)
	str, _ := v.(string)
	return str
}
