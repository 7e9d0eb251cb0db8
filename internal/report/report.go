// Package report defines the output object assembled from one analysis run.
package report

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/leafscan/leafscan/internal/grading"
)

// SampleError records a per-sample failure that did not abort the batch.
type SampleError struct {
	FileName string `json:"file_name"`
	Message  string `json:"message"`
}

// Input describes where the batch came from and how it was analyzed.
type Input struct {
	// Source is "analyzer" for remote analysis or "measurements" for
	// offline grading of a measurements CSV.
	Source      string `json:"source"`
	Endpoint    string `json:"endpoint,omitempty"`
	SampleCount int    `json:"sample_count"`
}

// Report is the top-level output object for one analysis batch.
type Report struct {
	Tool        string           `json:"tool"`
	Version     string           `json:"version"`
	RunID       string           `json:"run_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Input       Input            `json:"input"`
	Summary     grading.Summary  `json:"summary"`
	Samples     []grading.Graded `json:"samples"`
	Errors      []SampleError    `json:"errors,omitempty"`
}

// New creates an empty report with a fresh run ID.
func New() *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}
}

// SortSamples orders samples worst grade first, then by file name, so the
// most affected leaves lead the report.
func SortSamples(samples []grading.Graded) {
	sort.SliceStable(samples, func(i, j int) bool {
		if samples[i].Grade != samples[j].Grade {
			return samples[i].Grade > samples[j].Grade
		}
		return samples[i].FileName < samples[j].FileName
	})
}
