// Package styles holds the lipgloss styles used to render run reports.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on dark terminals
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	BlueColor      = lipgloss.Color("#60A5FA") // Blue

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)

	// Tour status colors
	StatusUpdated     = SecondaryColor
	StatusUnchanged   = MutedColor
	StatusSkipped     = WarningColor
	StatusWouldUpdate = BlueColor

	// Title is the report header.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	// TourName renders a tour file name.
	TourName = lipgloss.NewStyle().Bold(true)

	// StatusBadge wraps a status label.
	StatusBadge = lipgloss.NewStyle().
			Bold(true).
			Width(14)

	// StepLine renders one step outcome, indented under its tour.
	StepLine = lipgloss.NewStyle().PaddingLeft(4)

	// Summary is the closing totals line.
	Summary = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)
)

// StatusColor returns the color for a tour status name.
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "updated":
		return StatusUpdated
	case "skipped":
		return StatusSkipped
	case "would-update":
		return StatusWouldUpdate
	default:
		return StatusUnchanged
	}
}

// StatusStyle returns the badge style for a tour status.
func StatusStyle(status string) lipgloss.Style {
	return StatusBadge.Foreground(StatusColor(status))
}
