package analyzer

import (
	"context"
	"io"

	"github.com/leafscan/leafscan/internal/grading"
)

// Mock is a test double that returns canned measurements keyed by file name.
type Mock struct {
	Results map[string]grading.Measurement
	Errs    map[string]error
	PingErr error
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Analyze(_ context.Context, fileName string, _ io.Reader) (grading.Measurement, error) {
	if err, ok := m.Errs[fileName]; ok {
		return grading.Measurement{}, err
	}
	if r, ok := m.Results[fileName]; ok {
		r.FileName = fileName
		return r, nil
	}
	return grading.Measurement{FileName: fileName}, nil
}

func (m *Mock) Ping(_ context.Context) error { return m.PingErr }
