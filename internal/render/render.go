// Package render produces Markdown output from a batch report.
package render

import (
	"fmt"
	"strings"

	"github.com/leafscan/leafscan/internal/grading"
	"github.com/leafscan/leafscan/internal/report"
)

const maxBarWidth = 40

// Markdown renders a report as a Markdown document.
func Markdown(r *report.Report) string {
	var b strings.Builder

	b.WriteString("# Leafscan Batch Report\n\n")
	fmt.Fprintf(&b, "**Run:** %s\n", r.RunID)
	fmt.Fprintf(&b, "**Generated:** %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "**Samples:** %d analyzed, %d failed\n", len(r.Samples), len(r.Errors))
	fmt.Fprintf(&b, "**Incidence:** %.1f%%\n", r.Summary.IncidencePct)
	fmt.Fprintf(&b, "**Severity index:** %.1f%%\n\n", r.Summary.SeverityIndexPct)

	b.WriteString("## Grade Distribution\n\n")
	renderHistogram(&b, r.Summary)

	if len(r.Samples) > 0 {
		b.WriteString("## Samples\n\n")
		b.WriteString("| File | Area damaged | Lesions | Avg lesion (px) | Grade |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, s := range r.Samples {
			fmt.Fprintf(&b, "| %s | %.2f%% | %d | %.1f | %d (%s) |\n",
				s.FileName, s.AreaDamagePct, s.LesionCount, s.AvgLesionPx, s.Grade, s.Grade.Label())
		}
		b.WriteString("\n")
	} else {
		b.WriteString("No samples analyzed.\n\n")
	}

	if len(r.Errors) > 0 {
		b.WriteString("## Failed Samples\n\n")
		for _, e := range r.Errors {
			fmt.Fprintf(&b, "- %s: %s\n", e.FileName, e.Message)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderHistogram(b *strings.Builder, s grading.Summary) {
	max := 0
	for _, c := range s.GradeCounts {
		if c > max {
			max = c
		}
	}
	for g, c := range s.GradeCounts {
		bar := ""
		if max > 0 && c > 0 {
			width := c * maxBarWidth / max
			if width == 0 {
				width = 1
			}
			bar = strings.Repeat("#", width)
		}
		fmt.Fprintf(b, "    %d %-11s %4d %s\n", g, grading.Grade(g).Label(), c, bar)
	}
	b.WriteString("\n")
}
