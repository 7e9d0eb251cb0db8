package grading

// NumGrades is the number of severity classes on the scale.
const NumGrades = int(MaxGrade) + 1

// Summary holds the epidemiological statistics for one analysis batch.
type Summary struct {
	SampleCount int `json:"sample_count"`

	// IncidencePct is the percentage of samples with any damaged area.
	IncidencePct float64 `json:"incidence_pct"`

	// SeverityIndexPct is the mean severity grade expressed as a
	// percentage of the worst attainable grade.
	SeverityIndexPct float64 `json:"severity_index_pct"`

	// GradeCounts is a histogram over grades 0..5.
	GradeCounts [NumGrades]int `json:"grade_counts"`
}

// Summarize reduces a graded batch to incidence and severity-index
// statistics. Incidence alone loses severity information; the weighted
// index distinguishes batches with equal incidence but different
// severity distributions. An empty batch yields the zero Summary.
func Summarize(samples []Graded) Summary {
	s := Summary{SampleCount: len(samples)}
	if len(samples) == 0 {
		return s
	}

	diseased := 0
	weighted := 0
	for _, smp := range samples {
		if smp.AreaDamagePct > 0 {
			diseased++
		}
		if smp.Grade.Valid() {
			s.GradeCounts[smp.Grade]++
			weighted += int(smp.Grade)
		}
	}

	n := float64(len(samples))
	s.IncidencePct = 100 * float64(diseased) / n
	s.SeverityIndexPct = 100 * float64(weighted) / (n * float64(MaxGrade))
	return s
}
