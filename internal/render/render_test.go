package render

import (
	"strings"
	"testing"
	"time"

	"github.com/leafscan/leafscan/internal/grading"
	"github.com/leafscan/leafscan/internal/report"
)

func testReport() *report.Report {
	samples := []grading.Graded{
		grading.GradeMeasurement(grading.Measurement{FileName: "leaf-001.jpg", AreaDamagePct: 80, LesionCount: 7, AvgLesionPx: 230.5}, 0),
		grading.GradeMeasurement(grading.Measurement{FileName: "leaf-002.jpg", AreaDamagePct: 0}, 0),
	}
	return &report.Report{
		Tool:        "leafscan",
		Version:     "0.1.0",
		RunID:       "run-abc",
		GeneratedAt: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
		Summary:     grading.Summarize(samples),
		Samples:     samples,
		Errors: []report.SampleError{
			{FileName: "leaf-003.jpg", Message: "no leaf tissue detected"},
		},
	}
}

func TestMarkdown(t *testing.T) {
	out := Markdown(testReport())

	for _, want := range []string{
		"# Leafscan Batch Report",
		"**Run:** run-abc",
		"**Samples:** 2 analyzed, 1 failed",
		"**Incidence:** 50.0%",
		"**Severity index:** 50.0%",
		"## Grade Distribution",
		"| leaf-001.jpg | 80.00% | 7 | 230.5 | 5 (very severe) |",
		"## Failed Samples",
		"- leaf-003.jpg: no leaf tissue detected",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n---\n%s", want, out)
		}
	}
}

func TestMarkdownEmptyBatch(t *testing.T) {
	r := report.New()
	out := Markdown(r)
	if !strings.Contains(out, "No samples analyzed.") {
		t.Errorf("expected empty-batch notice, got:\n%s", out)
	}
	if !strings.Contains(out, "**Incidence:** 0.0%") {
		t.Errorf("expected zero incidence, got:\n%s", out)
	}
}

func TestMarkdownHistogramBars(t *testing.T) {
	out := Markdown(testReport())
	// One healthy and one grade-5 sample: both buckets get a full bar.
	if !strings.Contains(out, "0 healthy") || !strings.Contains(out, "5 very severe") {
		t.Errorf("histogram rows missing:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat("#", 40)) {
		t.Errorf("expected full-width bar in histogram:\n%s", out)
	}
}
