package resolve

import (
	"github.com/Iron-Ham/tourline/internal/tour"
)

// Descriptor is the input form of a step: where it points and what to look
// for there.
type Descriptor struct {
	File         string `yaml:"file" json:"file,omitempty"`
	Description  string `yaml:"description" json:"description,omitempty"`
	SearchString string `yaml:"searchString" json:"searchString,omitempty"`
	Title        string `yaml:"title" json:"title,omitempty"`
	Offset       int    `yaml:"offset" json:"offset,omitempty"`
}

// Object returns the descriptor as a tour step object, omitting empty fields.
func (d Descriptor) Object() *tour.Object {
	obj := tour.NewObject()
	if d.File != "" {
		obj.Set("file", d.File)
	}
	if d.Description != "" {
		obj.Set("description", d.Description)
	}
	if d.SearchString != "" {
		obj.Set("searchString", d.SearchString)
	}
	if d.Title != "" {
		obj.Set("title", d.Title)
	}
	if d.Offset != 0 {
		obj.Set("offset", d.Offset)
	}
	return obj
}

// ResolveStep turns a descriptor into a tour step with a line.
//
// A descriptor without a file or a search string is returned unchanged.
// Otherwise the result carries file, description, line and title, where
// line is the first line containing the search string plus the offset. A
// miss is logged with the tour name and step title and resolved by the
// miss policy. Read failures are returned.
func (r *Resolver) ResolveStep(d Descriptor, tourName string) (*tour.Object, error) {
	if d.File == "" || d.SearchString == "" {
		return d.Object(), nil
	}

	line, err := r.Locate(d.File, d.SearchString, d.Offset)
	if err != nil {
		return nil, err
	}

	if line.Kind == KindNotFound {
		r.logger.WithTour(tourName).Warn("search string not found",
			"search", d.SearchString,
			"file", d.File,
			"step_title", d.Title,
			"fallback", line.String(),
		)
	}

	obj := tour.NewObject()
	obj.Set("file", d.File)
	if d.Description != "" {
		obj.Set("description", d.Description)
	}
	obj.Set("line", line.Value())
	if d.Title != "" {
		obj.Set("title", d.Title)
	}
	return obj, nil
}

// ResolveAll resolves descriptors in order and stops at the first error.
func (r *Resolver) ResolveAll(steps []Descriptor, tourName string) ([]*tour.Object, error) {
	out := make([]*tour.Object, 0, len(steps))
	for _, d := range steps {
		obj, err := r.ResolveStep(d, tourName)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}
