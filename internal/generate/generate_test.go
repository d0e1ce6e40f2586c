package generate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Iron-Ham/tourline/internal/errors"
	"github.com/Iron-Ham/tourline/internal/logging"
	"github.com/Iron-Ham/tourline/internal/resolve"
	"github.com/Iron-Ham/tourline/internal/searchstrings"
	"github.com/Iron-Ham/tourline/internal/testutil"
	"github.com/Iron-Ham/tourline/internal/updater"
	"github.com/spf13/afero"
)

const descriptorYAML = `title: "Getting Started: Routing!"
description: How requests flow
steps:
  - title: Welcome
    description: Start here
  - file: src/router.ts
    searchString: export function route
    title: Router
    description: The entry point
  - file: src/router.ts
    searchString: handler(
    offset: 1
    title: Dispatch
  - file: src/router.ts
    searchString: does not exist
    title: Missing
`

const routerSource = `import { handler } from './h';

export function route(req) {
  return handler(
    req,
  );
}
`

func newGenerator(t *testing.T, fs afero.Fs, logger *logging.Logger, opts Options) *Generator {
	t.Helper()
	r := resolve.New(fs, testutil.ProjectRoot, resolve.WithOnMiss(resolve.MissFirstLine), resolve.WithLogger(logger))
	if opts.ToursDir == "" {
		opts.ToursDir = testutil.ToursDir
		opts.SearchStringsDir = testutil.SearchStringsDir
	}
	return New(fs, r, opts, logger)
}

func TestLoadDescriptor(t *testing.T) {
	fs := testutil.SetupProject(t, map[string]string{"tour.yaml": descriptorYAML})

	d, err := LoadDescriptor(fs, "/repo/tour.yaml")
	if err != nil {
		t.Fatalf("LoadDescriptor failed: %v", err)
	}
	if d.Title != "Getting Started: Routing!" || len(d.Steps) != 4 {
		t.Fatalf("descriptor = %+v", d)
	}
	if d.Steps[2].Offset != 1 || d.Steps[2].SearchString != "handler(" {
		t.Errorf("step 2 = %+v", d.Steps[2])
	}
}

func TestLoadDescriptor_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not yaml", "title: [unclosed"},
		{"no title", "steps: []"},
		{"symbol title", "title: '!!!'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := testutil.SetupProject(t, map[string]string{"d.yaml": tt.content})
			_, err := LoadDescriptor(fs, "/repo/d.yaml")
			if !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}

	if _, err := LoadDescriptor(afero.NewMemMapFs(), "/nope.yaml"); err == nil {
		t.Error("LoadDescriptor of a missing file succeeded, want error")
	}
}

func TestGenerate(t *testing.T) {
	fs := testutil.SetupProject(t, map[string]string{
		"tour.yaml":     descriptorYAML,
		"src/router.ts": routerSource,
	})
	var logs bytes.Buffer
	logger := logging.NewLoggerWithWriter(&logs, logging.LevelInfo)

	d, err := LoadDescriptor(fs, "/repo/tour.yaml")
	if err != nil {
		t.Fatal(err)
	}
	result, err := newGenerator(t, fs, logger, Options{}).Generate(d)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if result.TourPath != "/repo/.tours/getting-started-routing.tour" {
		t.Errorf("TourPath = %q", result.TourPath)
	}
	if result.ArtifactPath != "/repo/.tours/search-strings/getting-started-routing.yaml" {
		t.Errorf("ArtifactPath = %q", result.ArtifactPath)
	}

	want := `{
  "$schema": "https://aka.ms/codetour-schema",
  "title": "Getting Started: Routing!",
  "description": "How requests flow",
  "steps": [
    {
      "description": "Start here",
      "title": "Welcome"
    },
    {
      "file": "src/router.ts",
      "description": "The entry point",
      "line": 3,
      "title": "Router"
    },
    {
      "file": "src/router.ts",
      "line": 5,
      "title": "Dispatch"
    },
    {
      "file": "src/router.ts",
      "line": 1,
      "title": "Missing"
    }
  ]
}`
	if got := testutil.ReadFile(t, fs, result.TourPath); got != want {
		t.Errorf("tour =\n%s\nwant\n%s", got, want)
	}

	if !strings.Contains(logs.String(), "search string not found") || !strings.Contains(logs.String(), "Missing") {
		t.Errorf("miss should be logged with the step title, got %s", logs.String())
	}

	art, err := searchstrings.Load(fs, result.ArtifactPath)
	if err != nil {
		t.Fatalf("generated artifact does not load: %v", err)
	}
	wantDirectives := []searchstrings.Directive{
		searchstrings.NotApplicable(),
		searchstrings.Search("export function route"),
		searchstrings.SearchOffset("handler(", 1),
		searchstrings.Search("does not exist"),
	}
	for i, want := range wantDirectives {
		if got := art.At(i); got != want {
			t.Errorf("directive %d = %#v, want %#v", i, got, want)
		}
	}
}

func TestGenerate_UpdatableByUpdater(t *testing.T) {
	fs := testutil.SetupProject(t, map[string]string{
		"src/router.ts": routerSource,
	})
	d := &Descriptor{
		Title: "Router",
		Steps: []resolve.Descriptor{{File: "src/router.ts", SearchString: "export function route", Title: "Route"}},
	}
	if _, err := newGenerator(t, fs, nil, Options{}).Generate(d); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	testutil.WriteFiles(t, fs, testutil.ProjectRoot, map[string]string{
		"src/router.ts": "// header\n\n" + routerSource,
	})

	u := updater.New(fs, updater.Options{
		ProjectRoot:      testutil.ProjectRoot,
		ToursDir:         testutil.ToursDir,
		SearchStringsDir: testutil.SearchStringsDir,
	}, nil)
	if _, err := u.Run(t.Context()); err != nil {
		t.Fatalf("update after generate failed: %v", err)
	}

	if got := testutil.ReadFile(t, fs, "/repo/.tours/router.tour"); !strings.Contains(got, `"line": 5`) {
		t.Errorf("updated tour should point at line 5:\n%s", got)
	}
}

func TestGenerate_Exists(t *testing.T) {
	fs := testutil.SetupProject(t, map[string]string{
		".tours/router.tour": `{"steps":[]}`,
	})
	d := &Descriptor{Title: "Router"}

	_, err := newGenerator(t, fs, nil, Options{}).Generate(d)
	if !errors.Is(err, errors.ErrTourExists) {
		t.Fatalf("error = %v, want ErrTourExists", err)
	}
	if got := testutil.ReadFile(t, fs, "/repo/.tours/router.tour"); got != `{"steps":[]}` {
		t.Errorf("existing tour was modified: %s", got)
	}

	opts := Options{
		ToursDir:         testutil.ToursDir,
		SearchStringsDir: testutil.SearchStringsDir,
		Overwrite:        true,
		SkipArtifact:     true,
	}
	result, err := newGenerator(t, fs, nil, opts).Generate(d)
	if err != nil {
		t.Fatalf("Generate with Overwrite failed: %v", err)
	}
	if result.ArtifactPath != "" {
		t.Errorf("ArtifactPath = %q, want none with SkipArtifact", result.ArtifactPath)
	}
	if ok, _ := afero.Exists(fs, "/repo/.tours/search-strings/router.yaml"); ok {
		t.Error("artifact written despite SkipArtifact")
	}
}

func TestGenerate_UnreadableSource(t *testing.T) {
	fs := testutil.SetupProject(t, nil)
	d := &Descriptor{
		Title: "Broken",
		Steps: []resolve.Descriptor{{File: "missing.ts", SearchString: "x"}},
	}

	_, err := newGenerator(t, fs, nil, Options{}).Generate(d)
	if !errors.Is(err, errors.ErrSourceUnreadable) {
		t.Fatalf("error = %v, want ErrSourceUnreadable", err)
	}
	if ok, _ := afero.Exists(fs, "/repo/.tours/broken.tour"); ok {
		t.Error("tour written despite a resolve failure")
	}
}

func TestGenerate_UnchangedSourcesSurviveUpdate(t *testing.T) {
	fs := testutil.SetupProject(t, map[string]string{
		"src/server.ts": "import x\n// step 1 begins\nfunction listen() {\n  serve()\n}\n",
	})
	d := &Descriptor{
		Title: "Server",
		Steps: []resolve.Descriptor{
			{File: "src/server.ts", SearchString: "function listen", Offset: 1, Title: "Body"},
			{File: "src/server.ts", SearchString: "1", Title: "Digit"},
		},
	}
	result, err := newGenerator(t, fs, nil, Options{}).Generate(d)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	generated := testutil.ReadFile(t, fs, result.TourPath)
	if !strings.Contains(generated, `"line": 4`) || !strings.Contains(generated, `"line": 2`) {
		t.Fatalf("generated tour should point at lines 4 and 2:\n%s", generated)
	}

	u := updater.New(fs, updater.Options{
		ProjectRoot:      testutil.ProjectRoot,
		ToursDir:         testutil.ToursDir,
		SearchStringsDir: testutil.SearchStringsDir,
	}, nil)
	report, err := u.Run(t.Context())
	if err != nil {
		t.Fatalf("update after generate failed: %v", err)
	}

	if report.Changed() {
		t.Errorf("update changed a freshly generated tour: %+v", report.Tours[0].ChangedSteps())
	}
	if got := testutil.ReadFile(t, fs, result.TourPath); got != generated {
		t.Errorf("tour =\n%s\nwant\n%s", got, generated)
	}
}

// createErrorFs refuses to create files inside dir.
type createErrorFs struct {
	afero.Fs
	dir string
}

func (f createErrorFs) denied(name string) bool {
	return strings.HasPrefix(name, f.dir+string(filepath.Separator))
}

func (f createErrorFs) Create(name string) (afero.File, error) {
	if f.denied(name) {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Create(name)
}

func (f createErrorFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&os.O_CREATE != 0 && f.denied(name) {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func TestGenerate_SearchStringsFailureLeavesNoTour(t *testing.T) {
	for _, atomic := range []bool{true, false} {
		name := "direct"
		if atomic {
			name = "atomic"
		}
		t.Run(name, func(t *testing.T) {
			mem := testutil.SetupProject(t, map[string]string{"src/router.ts": routerSource})
			fs := createErrorFs{Fs: mem, dir: testutil.SearchStringsDir}
			d := &Descriptor{
				Title: "Router",
				Steps: []resolve.Descriptor{{File: "src/router.ts", SearchString: "export function route"}},
			}

			opts := Options{
				ToursDir:         testutil.ToursDir,
				SearchStringsDir: testutil.SearchStringsDir,
				AtomicWrite:      atomic,
			}
			if _, err := newGenerator(t, fs, nil, opts).Generate(d); err == nil {
				t.Fatal("Generate succeeded, want a search-strings write error")
			}
			if ok, _ := afero.Exists(mem, "/repo/.tours/router.tour"); ok {
				t.Error("tour written although its search strings could not be")
			}
		})
	}
}
