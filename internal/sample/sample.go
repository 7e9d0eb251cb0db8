// Package sample collects leaf-sample inputs: image files destined for
// the analyzer and pre-measured CSV rows for offline grading.
package sample

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/leafscan/leafscan/internal/grading"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsImage reports whether path has a recognized leaf-image extension.
func IsImage(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// Collect expands files and directories into a sorted list of image
// paths. Directories are scanned one level deep; non-image entries are
// skipped. An explicit file argument that is not an image is an error.
func Collect(paths []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("sample.Collect: %w", err)
		}
		if !info.IsDir() {
			if !IsImage(p) {
				return nil, fmt.Errorf("sample.Collect: %s is not a recognized image file", p)
			}
			add(p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("sample.Collect: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if IsImage(e.Name()) {
				add(filepath.Join(p, e.Name()))
			}
		}
	}

	sort.Strings(out)
	return out, nil
}

// ReadMeasurements parses a measurements CSV into analyzer-equivalent
// records for offline grading. Columns are file_name, area_damage_pct,
// lesion_count and optionally avg_lesion_px; a header row is skipped
// when the second column is not numeric.
func ReadMeasurements(r io.Reader) ([]grading.Measurement, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []grading.Measurement
	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sample.ReadMeasurements: %w", err)
		}
		row++
		if len(rec) < 3 {
			return nil, fmt.Errorf("sample.ReadMeasurements: row %d: expected at least 3 columns, got %d", row, len(rec))
		}

		area, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			if row == 1 {
				continue // header row
			}
			return nil, fmt.Errorf("sample.ReadMeasurements: row %d: bad area value %q", row, rec[1])
		}
		lesions, err := strconv.Atoi(strings.TrimSpace(rec[2]))
		if err != nil {
			return nil, fmt.Errorf("sample.ReadMeasurements: row %d: bad lesion count %q", row, rec[2])
		}

		m := grading.Measurement{
			FileName:      strings.TrimSpace(rec[0]),
			AreaDamagePct: area,
			LesionCount:   lesions,
		}
		if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
			avg, err := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
			if err != nil {
				return nil, fmt.Errorf("sample.ReadMeasurements: row %d: bad avg lesion size %q", row, rec[3])
			}
			m.AvgLesionPx = avg
		}
		out = append(out, m)
	}
	return out, nil
}
