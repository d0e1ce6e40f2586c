// Package searchstrings loads the per-tour side files that say, step by
// step, which text to look for when re-locating a step's line.
//
// An artifact is a YAML (or JSON) document, either a mapping with a
// searchStrings sequence or a bare sequence:
//
//	searchStrings:
//	  - "func main()"      # search for this text
//	  - "1"                # fixed line 1, no search
//	  - NOTAPPLICABLE      # step has no line
//	  - ~                  # same as NOTAPPLICABLE
//	  - search: "listen("  # search, then move down one line
//	    offset: 1
//
// A mapping entry is always a search, so its text may be "1", "2" or
// NOTAPPLICABLE.
package searchstrings

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Iron-Ham/tourline/internal/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultExtension is the artifact extension used when none is configured.
const DefaultExtension = ".yaml"

// NotApplicableMarker marks a step whose line does not apply.
const NotApplicableMarker = "NOTAPPLICABLE"

// Kind discriminates a Directive.
type Kind int

const (
	// KindNotApplicable means the step gets the NA marker.
	KindNotApplicable Kind = iota
	// KindFixed means the step's line is a fixed literal (1 or 2).
	KindFixed
	// KindSearch means the step's line is found by searching for Text.
	KindSearch
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNotApplicable:
		return "not-applicable"
	case KindFixed:
		return "fixed"
	case KindSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Directive says how to compute one step's line.
type Directive struct {
	Kind Kind
	// Text is the search text for KindSearch.
	Text string
	// Offset is added to the matched line for KindSearch.
	Offset int
	// Line is the literal line for KindFixed.
	Line int
}

// NotApplicable returns the not-applicable directive.
func NotApplicable() Directive {
	return Directive{Kind: KindNotApplicable}
}

// Search returns a directive that searches for text.
func Search(text string) Directive {
	return Directive{Kind: KindSearch, Text: text}
}

// SearchOffset returns a directive that searches for text and adds offset
// to the matched line.
func SearchOffset(text string, offset int) Directive {
	return Directive{Kind: KindSearch, Text: text, Offset: offset}
}

// Fixed returns a directive with a literal line.
func Fixed(line int) Directive {
	return Directive{Kind: KindFixed, Line: line}
}

// ParseDirective interprets one raw artifact entry. The literals "1" and "2"
// are fixed lines; NOTAPPLICABLE is the not-applicable marker; anything else
// is search text.
func ParseDirective(raw string) Directive {
	switch raw {
	case NotApplicableMarker:
		return NotApplicable()
	case "1":
		return Fixed(1)
	case "2":
		return Fixed(2)
	default:
		return Search(raw)
	}
}

// String renders the directive as a scalar artifact entry. The offset of a
// search is not included.
func (d Directive) String() string {
	switch d.Kind {
	case KindFixed:
		return fmt.Sprintf("%d", d.Line)
	case KindSearch:
		return d.Text
	default:
		return NotApplicableMarker
	}
}

// Artifact is the ordered list of directives for one tour.
type Artifact struct {
	Path       string
	Directives []Directive
}

// At returns the directive for a step index. Indexes past the end of the
// list are not applicable.
func (a *Artifact) At(index int) Directive {
	if a == nil || index < 0 || index >= len(a.Directives) {
		return NotApplicable()
	}
	return a.Directives[index]
}

// Len returns the number of directives.
func (a *Artifact) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Directives)
}

// PathFor returns the artifact path for a tour file: the tour's base name
// with its .tour extension swapped for ext, inside dir.
func PathFor(dir, tourFile, ext string) string {
	base := strings.TrimSuffix(filepath.Base(tourFile), ".tour")
	return filepath.Join(dir, base+ext)
}

// Parse decodes artifact content.
func Parse(path string, data []byte) (*Artifact, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, artifactError(path, err)
	}

	seq, err := findSequence(&root)
	if err != nil {
		return nil, artifactError(path, err)
	}

	art := &Artifact{
		Path:       path,
		Directives: make([]Directive, 0, len(seq.Content)),
	}
	for i, item := range seq.Content {
		if item.Kind == yaml.AliasNode && item.Alias != nil {
			item = item.Alias
		}
		if item.Kind == yaml.MappingNode {
			d, err := parseEntry(item)
			if err != nil {
				return nil, artifactError(path, fmt.Errorf("entry %d: %w (line %d)", i, err, item.Line))
			}
			art.Directives = append(art.Directives, d)
			continue
		}
		if item.Kind != yaml.ScalarNode {
			return nil, artifactError(path, fmt.Errorf("entry %d is neither a string nor a search mapping (line %d)", i, item.Line))
		}
		if item.Tag == "!!null" {
			art.Directives = append(art.Directives, NotApplicable())
			continue
		}
		art.Directives = append(art.Directives, ParseDirective(item.Value))
	}
	return art, nil
}

// searchEntry is the mapping form of a search directive.
type searchEntry struct {
	Search string `yaml:"search"`
	Offset int    `yaml:"offset,omitempty"`
}

func parseEntry(node *yaml.Node) (Directive, error) {
	var e searchEntry
	if err := node.Decode(&e); err != nil {
		return Directive{}, err
	}
	if e.Search == "" {
		return Directive{}, fmt.Errorf("search mapping has no search text")
	}
	return SearchOffset(e.Search, e.Offset), nil
}

// Load reads the artifact at path.
func Load(fs afero.Fs, path string) (*Artifact, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

func findSequence(root *yaml.Node) (*yaml.Node, error) {
	node := root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, fmt.Errorf("document is empty")
		}
		node = node.Content[0]
	}

	switch node.Kind {
	case yaml.SequenceNode:
		return node, nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "searchStrings" {
				val := node.Content[i+1]
				if val.Kind != yaml.SequenceNode {
					return nil, fmt.Errorf("searchStrings is not a sequence (line %d)", val.Line)
				}
				return val, nil
			}
		}
		return nil, fmt.Errorf("mapping has no searchStrings key")
	default:
		return nil, fmt.Errorf("expected a sequence or a mapping with searchStrings")
	}
}

func artifactError(path string, cause error) error {
	return errors.NewTourError("failed to load search strings", fmt.Errorf("%w: %v", errors.ErrArtifactInvalid, cause)).WithArtifact(path)
}

// Encode renders directives as an artifact document with a searchStrings
// list. Not-applicable entries are written as the NOTAPPLICABLE marker.
// Searches with an offset, or whose text would read back as a marker, are
// written in mapping form.
func Encode(directives []Directive) ([]byte, error) {
	doc := struct {
		SearchStrings []any `yaml:"searchStrings"`
	}{SearchStrings: make([]any, 0, len(directives))}

	for _, d := range directives {
		if d.Kind == KindSearch && (d.Offset != 0 || ParseDirective(d.Text).Kind != KindSearch) {
			doc.SearchStrings = append(doc.SearchStrings, searchEntry{Search: d.Text, Offset: d.Offset})
			continue
		}
		doc.SearchStrings = append(doc.SearchStrings, d.String())
	}
	return yaml.Marshal(doc)
}
