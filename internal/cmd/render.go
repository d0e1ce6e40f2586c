package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/Iron-Ham/tourline/internal/styles"
	"github.com/Iron-Ham/tourline/internal/updater"
	"github.com/Iron-Ham/tourline/internal/util"
)

// maxSearchWidth bounds the search text shown per step.
const maxSearchWidth = 40

// renderReport writes a human-readable summary of a run. Only changed
// steps are listed unless verbose is set.
func renderReport(w io.Writer, report *updater.Report, verbose bool) {
	title := "Tours"
	if report.DryRun {
		title += " (dry run)"
	}
	fmt.Fprintln(w, styles.Title.Render(title))

	for _, t := range report.Tours {
		status := string(t.Status)
		fmt.Fprintf(w, "  %s%s\n", styles.StatusStyle(status).Render(status), styles.TourName.Render(t.Name))

		steps := t.ChangedSteps()
		if verbose {
			steps = t.Steps
		}
		for _, step := range steps {
			fmt.Fprintln(w, styles.StepLine.Render(renderStep(step)))
		}
	}

	fmt.Fprintln(w, styles.Summary.Render(summary(report)))
}

func renderStep(step updater.StepOutcome) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "step %d", step.Index)
	if step.Title != "" {
		fmt.Fprintf(&sb, " %q", util.TruncateString(step.Title, maxSearchWidth))
	}

	if !step.Rewritten {
		sb.WriteString(styles.Muted.Render("  no line, left as is"))
		return sb.String()
	}

	change := fmt.Sprintf("  %s -> %s", step.Before, step.After.String())
	if step.Changed() {
		sb.WriteString(styles.Secondary.Render(change))
	} else {
		sb.WriteString(styles.Muted.Render(change))
	}

	search := util.TruncateString(util.SingleLine(step.Directive.String()), maxSearchWidth)
	sb.WriteString(styles.Muted.Render("  [" + search + "]"))
	return sb.String()
}

func summary(report *updater.Report) string {
	counts := []struct {
		status updater.Status
		label  string
	}{
		{updater.StatusUpdated, "updated"},
		{updater.StatusWouldUpdate, "would update"},
		{updater.StatusUnchanged, "unchanged"},
		{updater.StatusSkipped, "skipped"},
	}

	var parts []string
	for _, c := range counts {
		if n := report.Count(c.status); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, c.label))
		}
	}
	if len(parts) == 0 {
		return "No tours found"
	}
	return strings.Join(parts, ", ")
}
