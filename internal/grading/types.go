package grading

// Measurement is the per-sample result returned by the analyzer service.
type Measurement struct {
	// FileName identifies the sample; it is opaque to the engine and used
	// only for display and log correlation.
	FileName string `json:"file_name"`

	// StoredName is the server-side name the analyzer saved the upload
	// under, when the service reports one.
	StoredName string `json:"stored_name,omitempty"`

	// AreaDamagePct is the share of leaf area classified as damaged,
	// in the range 0-100.
	AreaDamagePct float64 `json:"area_damage_pct"`

	// LesionCount is the number of distinct lesions detected. It does not
	// influence the grade.
	LesionCount int `json:"lesion_count"`

	// AvgLesionPx is the mean lesion size in pixels, 0 when no lesions
	// were detected.
	AvgLesionPx float64 `json:"avg_lesion_px,omitempty"`
}

// Graded is a measurement with its severity grade attached.
type Graded struct {
	Measurement
	Grade Grade `json:"grade"`
}

// GradeMeasurement attaches the severity grade for m's damaged area.
func GradeMeasurement(m Measurement, eps float64) Graded {
	return Graded{Measurement: m, Grade: GradeOfEps(m.AreaDamagePct, eps)}
}
