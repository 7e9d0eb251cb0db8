// Package analyzer defines the client interface and implementations for
// the remote leaf-analysis service.
package analyzer

import (
	"context"
	"io"

	"github.com/leafscan/leafscan/internal/grading"
)

// Client uploads one leaf image per call and returns its measurement.
type Client interface {
	Analyze(ctx context.Context, fileName string, image io.Reader) (grading.Measurement, error)
	Ping(ctx context.Context) error
	Name() string
}
