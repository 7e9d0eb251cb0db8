package sample

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsImage(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"leaf.jpg", true},
		{"leaf.JPEG", true},
		{"scan.png", true},
		{"scan.tiff", true},
		{"notes.txt", false},
		{"archive.zip", false},
		{"noext", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsImage(tt.path); got != tt.want {
				t.Errorf("IsImage(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jpg", "a.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	extra := filepath.Join(dir, "extra.jpeg")
	if err := os.WriteFile(extra, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Collect([]string{dir, extra})
	if err != nil {
		t.Fatal(err)
	}
	// Sorted, deduplicated, text file skipped.
	want := []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.jpg"),
		extra,
	}
	if len(got) != len(want) {
		t.Fatalf("Collect returned %d paths, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Collect[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCollectRejectsNonImageFile(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Collect([]string{txt}); err == nil {
		t.Error("expected error for explicit non-image file")
	}
}

func TestCollectMissingPath(t *testing.T) {
	if _, err := Collect([]string{"no/such/path.jpg"}); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestReadMeasurements(t *testing.T) {
	in := strings.NewReader(
		"file_name,area_damage_pct,lesion_count,avg_lesion_px\n" +
			"leaf-001.jpg,12.5,3,140.2\n" +
			"leaf-002.jpg,0,0\n")

	got, err := ReadMeasurements(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 measurements, got %d", len(got))
	}
	if got[0].FileName != "leaf-001.jpg" || got[0].AreaDamagePct != 12.5 || got[0].LesionCount != 3 || got[0].AvgLesionPx != 140.2 {
		t.Errorf("unexpected first measurement: %+v", got[0])
	}
	if got[1].AreaDamagePct != 0 || got[1].AvgLesionPx != 0 {
		t.Errorf("unexpected second measurement: %+v", got[1])
	}
}

func TestReadMeasurementsNoHeader(t *testing.T) {
	got, err := ReadMeasurements(strings.NewReader("leaf.jpg,40,2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].AreaDamagePct != 40 {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestReadMeasurementsBadRows(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"too few columns", "leaf.jpg,5\n"},
		{"bad area mid-file", "a.jpg,5,1\nb.jpg,oops,2\n"},
		{"bad lesion count", "a.jpg,5,many\n"},
		{"bad avg lesion size", "a.jpg,5,1,huge\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadMeasurements(strings.NewReader(tt.in)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}
