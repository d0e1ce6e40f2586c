package searchstrings

import (
	"testing"

	"github.com/Iron-Ham/tourline/internal/errors"
	"github.com/spf13/afero"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		raw  string
		want Directive
	}{
		{"NOTAPPLICABLE", NotApplicable()},
		{"1", Fixed(1)},
		{"2", Fixed(2)},
		{"3", Search("3")},
		{"func main()", Search("func main()")},
		{"", Search("")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := ParseDirective(tt.raw); got != tt.want {
				t.Errorf("ParseDirective(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []Directive
	}{
		{
			name: "mapping with searchStrings",
			data: `
searchStrings:
  - "TODO marker"
  - "1"
  - NOTAPPLICABLE
  - ~
  - 2
`,
			want: []Directive{Search("TODO marker"), Fixed(1), NotApplicable(), NotApplicable(), Fixed(2)},
		},
		{
			name: "bare sequence",
			data: `["export default", "2"]`,
			want: []Directive{Search("export default"), Fixed(2)},
		},
		{
			name: "json object",
			data: `{"searchStrings": ["a", null]}`,
			want: []Directive{Search("a"), NotApplicable()},
		},
		{
			name: "search mappings",
			data: `
searchStrings:
  - search: "listen("
    offset: 1
  - search: "1"
  - search: NOTAPPLICABLE
    offset: -2
`,
			want: []Directive{SearchOffset("listen(", 1), Search("1"), SearchOffset("NOTAPPLICABLE", -2)},
		},
		{
			name: "empty list",
			data: `searchStrings: []`,
			want: []Directive{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			art, err := Parse("demo.yaml", []byte(tt.data))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if art.Len() != len(tt.want) {
				t.Fatalf("Len() = %d, want %d", art.Len(), len(tt.want))
			}
			for i, want := range tt.want {
				if got := art.At(i); got != want {
					t.Errorf("At(%d) = %+v, want %+v", i, got, want)
				}
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty document", ``},
		{"scalar", `hello`},
		{"mapping without key", `other: [a]`},
		{"searchStrings not a list", `searchStrings: a`},
		{"nested entry", `searchStrings: [[a]]`},
		{"mapping without search", `searchStrings: [{offset: 1}]`},
		{"offset not a number", `searchStrings: [{search: a, offset: x}]`},
		{"bad yaml", `searchStrings: [a`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.yaml", []byte(tt.data))
			if err == nil {
				t.Fatal("Parse succeeded, want error")
			}
			if !errors.Is(err, errors.ErrArtifactInvalid) {
				t.Errorf("error %v does not wrap ErrArtifactInvalid", err)
			}
		})
	}
}

func TestArtifact_AtOutOfRange(t *testing.T) {
	art := &Artifact{Directives: []Directive{Search("x")}}

	if got := art.At(5); got.Kind != KindNotApplicable {
		t.Errorf("At(5).Kind = %v, want %v", got.Kind, KindNotApplicable)
	}
	if got := art.At(-1); got.Kind != KindNotApplicable {
		t.Errorf("At(-1).Kind = %v, want %v", got.Kind, KindNotApplicable)
	}

	var nilArt *Artifact
	if got := nilArt.At(0); got.Kind != KindNotApplicable {
		t.Errorf("nil At(0).Kind = %v, want %v", got.Kind, KindNotApplicable)
	}
}

func TestPathFor(t *testing.T) {
	tests := []struct {
		dir, tour, ext, want string
	}{
		{"/s", "demo.tour", ".yaml", "/s/demo.yaml"},
		{"/s", "/repo/.tours/demo.tour", ".json", "/s/demo.json"},
		{"/s", "multi.part.tour", ".yml", "/s/multi.part.yml"},
	}

	for _, tt := range tests {
		if got := PathFor(tt.dir, tt.tour, tt.ext); got != tt.want {
			t.Errorf("PathFor(%q, %q, %q) = %q, want %q", tt.dir, tt.tour, tt.ext, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/s/demo.yaml", []byte("- a\n- b\n"), 0644); err != nil {
		t.Fatal(err)
	}

	art, err := Load(fs, "/s/demo.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if art.Path != "/s/demo.yaml" || art.Len() != 2 {
		t.Errorf("Load() = %+v, want 2 directives from /s/demo.yaml", art)
	}

	if _, err := Load(fs, "/s/missing.yaml"); err == nil {
		t.Error("Load of a missing file succeeded, want error")
	}
}

func TestEncode_ReadsBack(t *testing.T) {
	in := []Directive{
		Search("func main"),
		NotApplicable(),
		Fixed(2),
		Search("a: b # not a comment"),
		SearchOffset("listen(", 1),
		Search("1"),
		Search("NOTAPPLICABLE"),
	}

	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	art, err := Parse("gen.yaml", data)
	if err != nil {
		t.Fatalf("Parse of encoded artifact failed: %v\n%s", err, data)
	}
	if art.Len() != len(in) {
		t.Fatalf("Len() = %d, want %d", art.Len(), len(in))
	}
	for i, want := range in {
		if got := art.At(i); got != want {
			t.Errorf("entry %d = %#v, want %#v", i, got, want)
		}
	}
}
