package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leafscan/leafscan/internal/config"
	"github.com/leafscan/leafscan/internal/csvlog"
	"github.com/leafscan/leafscan/internal/runner"
	"github.com/leafscan/leafscan/internal/sample"
)

type gradeFlags struct {
	configPath string
	format     string
	out        string
	logPath    string
}

func newGradeCmd() *cobra.Command {
	f := &gradeFlags{}

	cmd := &cobra.Command{
		Use:   "grade <measurements-csv>",
		Short: "Grade pre-measured samples without contacting the analyzer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrade(args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "Config file path")
	flags.StringVar(&f.format, "format", "md", "Output format: json, md, or csv")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.logPath, "log", "", "Append graded rows to this CSV log")

	return cmd
}

func runGrade(path string, f *gradeFlags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return exitError(3, "failed to load config: %v", err)
	}
	if f.logPath != "" {
		cfg.Log.Path = f.logPath
	}

	in, err := os.Open(path)
	if err != nil {
		return exitError(3, "failed to open measurements: %v", err)
	}
	defer in.Close()

	measurements, err := sample.ReadMeasurements(in)
	if err != nil {
		return exitError(3, "failed to parse measurements: %v", err)
	}

	rep := runner.Offline(measurements, cfg.Grading.ZeroEpsilon)
	rep.Tool = "leafscan"
	rep.Version = version

	if cfg.Log.Path != "" {
		sink := &csvlog.FileSink{Path: cfg.Log.Path}
		if err := sink.Append(rep.RunID, rep.Samples); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	return writeReport(rep, f.format, f.out)
}
