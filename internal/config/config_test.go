package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leafscan.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.Analyzer.Endpoint != DefaultEndpoint {
		t.Errorf("endpoint = %q, want %q", c.Analyzer.Endpoint, DefaultEndpoint)
	}
	if c.Analyzer.Timeout != Duration(DefaultTimeout) {
		t.Errorf("timeout = %v, want %v", c.Analyzer.Timeout, DefaultTimeout)
	}
	if c.Grading.ZeroEpsilon != 0 {
		t.Errorf("zero epsilon = %v, want 0", c.Grading.ZeroEpsilon)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
analyzer:
  endpoint: http://field-lab:9000
  timeout: 30s
grading:
  zero_epsilon: 0.25
log:
  path: /var/log/leafscan.csv
`)
	t.Setenv(EndpointEnv, "")

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Analyzer.Endpoint != "http://field-lab:9000" {
		t.Errorf("endpoint = %q", c.Analyzer.Endpoint)
	}
	if c.Analyzer.Timeout != Duration(30*time.Second) {
		t.Errorf("timeout = %v", c.Analyzer.Timeout)
	}
	if c.Grading.ZeroEpsilon != 0.25 {
		t.Errorf("zero epsilon = %v", c.Grading.ZeroEpsilon)
	}
	if c.Log.Path != "/var/log/leafscan.csv" {
		t.Errorf("log path = %q", c.Log.Path)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := writeConfig(t, "log:\n  path: out.csv\n")
	t.Setenv(EndpointEnv, "")

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Analyzer.Endpoint != DefaultEndpoint {
		t.Errorf("endpoint = %q, want default", c.Analyzer.Endpoint)
	}
	if c.Analyzer.Timeout != Duration(DefaultTimeout) {
		t.Errorf("timeout = %v, want default", c.Analyzer.Timeout)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "analyzer:\n  endpoint: http://file-endpoint:8000\n")
	t.Setenv(EndpointEnv, "http://env-endpoint:8000")

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Analyzer.Endpoint != "http://env-endpoint:8000" {
		t.Errorf("endpoint = %q, want env override", c.Analyzer.Endpoint)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("no/such/leafscan.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "analyzer: [not a map\n")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadRejectsNegativeEpsilon(t *testing.T) {
	path := writeConfig(t, "grading:\n  zero_epsilon: -1\n")
	t.Setenv(EndpointEnv, "")
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for negative epsilon")
	}
}
