// Package grading implements the epidemiological scoring engine:
// per-sample disease severity grades and batch summary statistics.
package grading

// Grade is a discrete disease-severity class on the standard 0-5 scale.
type Grade int

const (
	Grade0 Grade = iota // no visible damage
	Grade1              // up to 5% of leaf area
	Grade2              // 5-25%
	Grade3              // 25-50%
	Grade4              // 50-75%
	Grade5              // more than 75%
)

// MaxGrade is the worst attainable grade; it normalizes the severity index.
const MaxGrade = Grade5

func (g Grade) Valid() bool {
	return g >= Grade0 && g <= MaxGrade
}

// Label returns the descriptive name of the severity class.
func (g Grade) Label() string {
	switch g {
	case Grade0:
		return "healthy"
	case Grade1:
		return "trace"
	case Grade2:
		return "light"
	case Grade3:
		return "moderate"
	case Grade4:
		return "severe"
	case Grade5:
		return "very severe"
	default:
		return "unknown"
	}
}

// GradeOf maps a percent-of-leaf-area-damaged measurement to a severity
// grade. The scale is fixed, with inclusive upper bounds:
//
//	0 -> 0, (0,5] -> 1, (5,25] -> 2, (25,50] -> 3, (50,75] -> 4, >75 -> 5
//
// Negative values are outside the measurement domain [0,100]; they are
// treated as no-damage and map to Grade0 rather than falling through the
// threshold chain.
func GradeOf(areaPct float64) Grade {
	return GradeOfEps(areaPct, 0)
}

// GradeOfEps is GradeOf with a zero-epsilon: measurements at or below eps
// count as undamaged. An epsilon of 0 keeps the exact-zero rule; a small
// positive epsilon absorbs analyzer noise near zero.
func GradeOfEps(areaPct, eps float64) Grade {
	switch {
	case areaPct <= eps:
		return Grade0
	case areaPct <= 5:
		return Grade1
	case areaPct <= 25:
		return Grade2
	case areaPct <= 50:
		return Grade3
	case areaPct <= 75:
		return Grade4
	default:
		return Grade5
	}
}
