// Package runner orchestrates one analysis batch: it streams each image
// through the analyzer client, grades the results, and folds them into a
// batch report.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leafscan/leafscan/internal/analyzer"
	"github.com/leafscan/leafscan/internal/csvlog"
	"github.com/leafscan/leafscan/internal/grading"
	"github.com/leafscan/leafscan/internal/report"
)

// Outcome is the result of one completed sample: a graded measurement or
// a per-sample error. Exactly one of Sample and Err is meaningful.
type Outcome struct {
	FileName string
	Sample   grading.Graded
	Err      error
}

// Runner holds the collaborators for a batch run. All state is explicit
// and per-run; a Runner has no package-level or shared mutable state.
type Runner struct {
	Client      analyzer.Client
	Sink        csvlog.Sink
	ZeroEpsilon float64

	// Progress, when set, is invoked after each completed sample.
	Progress func(done, total int, out Outcome)
}

// New creates a runner. A nil sink disables logging.
func New(client analyzer.Client, sink csvlog.Sink, zeroEpsilon float64) *Runner {
	if sink == nil {
		sink = csvlog.Discard{}
	}
	return &Runner{Client: client, Sink: sink, ZeroEpsilon: zeroEpsilon}
}

// Stream uploads each image in turn and emits one Outcome per completed
// file. The channel closes after the last file or when ctx is cancelled.
func (r *Runner) Stream(ctx context.Context, paths []string) <-chan Outcome {
	ch := make(chan Outcome)
	go func() {
		defer close(ch)
		for _, p := range paths {
			if ctx.Err() != nil {
				return
			}
			out := r.analyzeOne(ctx, p)
			select {
			case ch <- out:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func (r *Runner) analyzeOne(ctx context.Context, path string) Outcome {
	name := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return Outcome{FileName: name, Err: fmt.Errorf("open sample: %w", err)}
	}
	defer f.Close()

	m, err := r.Client.Analyze(ctx, name, f)
	if err != nil {
		return Outcome{FileName: name, Err: err}
	}
	return Outcome{FileName: name, Sample: grading.GradeMeasurement(m, r.ZeroEpsilon)}
}

// Run consumes the outcome stream into a report. Per-sample failures are
// recorded in the report and never abort the batch; only cancellation
// does. When the report is non-nil and err is non-nil, err is a log-sink
// failure: the batch itself completed and the caller may keep the report.
func (r *Runner) Run(ctx context.Context, paths []string) (*report.Report, error) {
	rep := report.New()
	rep.Input = report.Input{Source: "analyzer", SampleCount: len(paths)}

	done := 0
	for out := range r.Stream(ctx, paths) {
		done++
		if out.Err != nil {
			rep.Errors = append(rep.Errors, report.SampleError{
				FileName: out.FileName,
				Message:  out.Err.Error(),
			})
		} else {
			rep.Samples = append(rep.Samples, out.Sample)
		}
		if r.Progress != nil {
			r.Progress(done, len(paths), out)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep.Summary = grading.Summarize(rep.Samples)
	report.SortSamples(rep.Samples)

	if err := r.Sink.Append(rep.RunID, rep.Samples); err != nil {
		return rep, fmt.Errorf("runner: append to log: %w", err)
	}
	return rep, nil
}

// Offline grades pre-measured samples without contacting the analyzer.
func Offline(measurements []grading.Measurement, zeroEpsilon float64) *report.Report {
	rep := report.New()
	rep.Input = report.Input{Source: "measurements", SampleCount: len(measurements)}

	for _, m := range measurements {
		rep.Samples = append(rep.Samples, grading.GradeMeasurement(m, zeroEpsilon))
	}
	rep.Summary = grading.Summarize(rep.Samples)
	report.SortSamples(rep.Samples)
	return rep
}
