package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status string
		want   lipgloss.Color
	}{
		{"updated", StatusUpdated},
		{"unchanged", StatusUnchanged},
		{"skipped", StatusSkipped},
		{"would-update", StatusWouldUpdate},
		{"unknown", StatusUnchanged},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := StatusColor(tt.status); got != tt.want {
				t.Errorf("StatusColor(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestStatusStyle_Render(t *testing.T) {
	rendered := StatusStyle("updated").Render("updated")
	if !strings.Contains(rendered, "updated") {
		t.Errorf("rendered badge %q should contain the label", rendered)
	}
	if w := lipgloss.Width(rendered); w != 14 {
		t.Errorf("badge width = %d, want 14", w)
	}
}
