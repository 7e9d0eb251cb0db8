// Package csvlog appends graded samples to a running CSV log through an
// injected sink, keeping persistence out of the scoring and orchestration
// layers.
package csvlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/leafscan/leafscan/internal/grading"
)

// Header is the column layout of the running log.
var Header = []string{
	"logged_at", "run_id", "file_name", "stored_name",
	"area_damage_pct", "lesion_count", "avg_lesion_px", "grade",
}

// Sink receives graded rows for durable logging.
type Sink interface {
	Append(runID string, samples []grading.Graded) error
}

// Discard is a Sink that drops all rows, used when logging is disabled.
type Discard struct{}

func (Discard) Append(string, []grading.Graded) error { return nil }

// FileSink appends rows to a CSV file, writing the header only when the
// file is new or empty.
type FileSink struct {
	Path string
}

func (s *FileSink) Append(runID string, samples []grading.Graded) error {
	if len(samples) == 0 {
		return nil
	}

	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("csvlog: open %s: %w", s.Path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("csvlog: stat %s: %w", s.Path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Header); err != nil {
			return fmt.Errorf("csvlog: write header: %w", err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, smp := range samples {
		row := []string{
			now,
			runID,
			smp.FileName,
			smp.StoredName,
			strconv.FormatFloat(smp.AreaDamagePct, 'f', 2, 64),
			strconv.Itoa(smp.LesionCount),
			strconv.FormatFloat(smp.AvgLesionPx, 'f', 2, 64),
			strconv.Itoa(int(smp.Grade)),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csvlog: write row for %s: %w", smp.FileName, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csvlog: flush: %w", err)
	}
	return nil
}
