package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// SetupError Tests
// -----------------------------------------------------------------------------

func TestNewSetupError(t *testing.T) {
	err := NewSetupError("/repo/.tours", "/repo/strings", ErrDirectoryMissing)

	msg := err.Error()
	for _, want := range []string{"/repo/.tours", "/repo/strings", "does not exist"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, want it to contain %q", msg, want)
		}
	}
	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityCritical)
	}
	if !errors.Is(err, ErrDirectoryMissing) {
		t.Error("errors.Is(err, ErrDirectoryMissing) = false, want true")
	}

	var setupErr *SetupError
	if !errors.As(fmt.Errorf("run: %w", err), &setupErr) {
		t.Fatal("errors.As should find *SetupError through wrapping")
	}
	if setupErr.ToursDir != "/repo/.tours" {
		t.Errorf("ToursDir = %q, want %q", setupErr.ToursDir, "/repo/.tours")
	}
}

// -----------------------------------------------------------------------------
// TourError Tests
// -----------------------------------------------------------------------------

func TestTourError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *TourError
		want string
	}{
		{
			name: "no context",
			err:  NewTourError("failed to parse tour", nil),
			want: "tour error: failed to parse tour",
		},
		{
			name: "tour only",
			err:  NewTourError("failed to parse tour", ErrMalformedTour).WithTour("demo.tour"),
			want: "tour error [tour=demo.tour]: failed to parse tour: malformed tour file",
		},
		{
			name: "tour and step",
			err:  NewTourError("bad step", nil).WithTour("demo.tour").WithStep(2),
			want: "tour error [tour=demo.tour, step=2]: bad step",
		},
		{
			name: "artifact",
			err:  NewTourError("bad artifact", ErrArtifactInvalid).WithArtifact("s/demo.yaml"),
			want: "tour error [artifact=s/demo.yaml]: bad artifact: invalid search-strings artifact",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTourError_Is(t *testing.T) {
	err := NewTourError("failed", ErrMalformedTour).WithTour("a.tour")

	if !errors.Is(err, &TourError{}) {
		t.Error("TourError should match any *TourError target")
	}
	if !errors.Is(err, ErrMalformedTour) {
		t.Error("TourError should match its cause")
	}
	if errors.Is(err, ErrDirectoryMissing) {
		t.Error("TourError should not match an unrelated sentinel")
	}
}

// -----------------------------------------------------------------------------
// Semantic Error Tests
// -----------------------------------------------------------------------------

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("source file", "src/app.ts")
	if got, want := err.Error(), "source file 'src/app.ts' not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := NewNotFoundError("source file", "src/app.ts").WithCause(ErrSourceUnreadable)
	if !errors.Is(wrapped, ErrSourceUnreadable) {
		t.Error("NotFoundError should match its cause")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("unknown policy").WithField("update.on_miss").WithValue("skip")

	if got, want := err.Error(), "validation error [field=update.on_miss, value=skip]: unknown policy"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
}

// -----------------------------------------------------------------------------
// Classification Tests
// -----------------------------------------------------------------------------

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("boom"), false},
		{"setup", NewSetupError("a", "b", nil), true},
		{"wrapped tour", fmt.Errorf("ctx: %w", NewTourError("x", nil)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSeverity(t *testing.T) {
	if got := GetSeverity(nil); got != SeverityDebug {
		t.Errorf("GetSeverity(nil) = %v, want %v", got, SeverityDebug)
	}
	if got := GetSeverity(errors.New("plain")); got != SeverityError {
		t.Errorf("GetSeverity(plain) = %v, want %v", got, SeverityError)
	}
	if got := GetSeverity(NewValidationError("x")); got != SeverityWarning {
		t.Errorf("GetSeverity(validation) = %v, want %v", got, SeverityWarning)
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
	err := Wrapf(ErrMalformedTour, "tour %s", "demo")
	if got, want := err.Error(), "tour demo: malformed tour file"; got != want {
		t.Errorf("Wrapf() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrMalformedTour) {
		t.Error("Wrapf should preserve the wrapped error")
	}
}
