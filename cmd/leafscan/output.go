package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/leafscan/leafscan/internal/render"
	"github.com/leafscan/leafscan/internal/report"
)

// writeReport renders rep in the requested format and writes it to the
// given path, or stdout when the path is empty.
func writeReport(rep *report.Report, format, out string) error {
	var output string
	switch format {
	case "json":
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		output = string(data) + "\n"
	case "md":
		output = render.Markdown(rep)
	case "csv":
		s, err := reportCSV(rep)
		if err != nil {
			return fmt.Errorf("failed to render report CSV: %w", err)
		}
		output = s
	default:
		return exitError(3, "unknown format: %s", format)
	}

	if out != "" {
		if err := os.WriteFile(out, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	}
	fmt.Print(output)
	return nil
}

func reportCSV(rep *report.Report) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"file_name", "stored_name", "area_damage_pct", "lesion_count", "avg_lesion_px", "grade", "grade_label"}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, s := range rep.Samples {
		row := []string{
			s.FileName,
			s.StoredName,
			strconv.FormatFloat(s.AreaDamagePct, 'f', 2, 64),
			strconv.Itoa(s.LesionCount),
			strconv.FormatFloat(s.AvgLesionPx, 'f', 2, 64),
			strconv.Itoa(int(s.Grade)),
			s.Grade.Label(),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return buf.String(), w.Error()
}
