package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/leafscan/leafscan/internal/analyzer"
	"github.com/leafscan/leafscan/internal/config"
	"github.com/leafscan/leafscan/internal/csvlog"
	"github.com/leafscan/leafscan/internal/runner"
	"github.com/leafscan/leafscan/internal/sample"
)

type analyzeFlags struct {
	configPath  string
	endpoint    string
	format      string
	out         string
	logPath     string
	timeout     time.Duration
	failOver    float64
	hasFailOver bool
	verbose     bool
}

func newAnalyzeCmd() *cobra.Command {
	f := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze <images-or-dirs...>",
		Short: "Upload leaf images for analysis and report batch statistics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.hasFailOver = cmd.Flags().Changed("fail-over")
			return runAnalyze(cmd.Context(), args, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "Config file path")
	flags.StringVar(&f.endpoint, "endpoint", "", "Analyzer base URL (overrides config)")
	flags.StringVar(&f.format, "format", "md", "Output format: json, md, or csv")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.logPath, "log", "", "Append graded rows to this CSV log")
	flags.DurationVar(&f.timeout, "timeout", 0, "Per-upload timeout (overrides config)")
	flags.Float64Var(&f.failOver, "fail-over", 0, "Exit non-zero if the severity index meets this percentage")
	flags.BoolVar(&f.verbose, "verbose", false, "Print processing steps to stderr")

	return cmd
}

func runAnalyze(ctx context.Context, args []string, f *analyzeFlags) error {
	logger := log.New(os.Stderr, "", 0)
	verbose := func(msg string, args ...any) {
		if f.verbose {
			logger.Printf(msg, args...)
		}
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return exitError(3, "failed to load config: %v", err)
	}
	if f.endpoint != "" {
		cfg.Analyzer.Endpoint = f.endpoint
	}
	if f.timeout > 0 {
		cfg.Analyzer.Timeout = config.Duration(f.timeout)
	}
	if f.logPath != "" {
		cfg.Log.Path = f.logPath
	}

	verbose("Collecting samples")
	paths, err := sample.Collect(args)
	if err != nil {
		return exitError(3, "failed to collect samples: %v", err)
	}
	if len(paths) == 0 {
		return exitError(3, "no image files found")
	}
	verbose("Collected %d samples", len(paths))

	client, err := analyzer.NewHTTP(cfg.Analyzer.Endpoint, time.Duration(cfg.Analyzer.Timeout))
	if err != nil {
		return exitError(4, "analyzer client: %v", err)
	}
	verbose("Using analyzer at %s", cfg.Analyzer.Endpoint)

	var sink csvlog.Sink = csvlog.Discard{}
	if cfg.Log.Path != "" {
		sink = &csvlog.FileSink{Path: cfg.Log.Path}
		verbose("Logging graded rows to %s", cfg.Log.Path)
	}

	r := runner.New(client, sink, cfg.Grading.ZeroEpsilon)
	r.Progress = func(done, total int, out runner.Outcome) {
		if out.Err != nil {
			verbose("[%d/%d] %s: %v", done, total, out.FileName, out.Err)
			return
		}
		verbose("[%d/%d] %s: %.2f%% damaged, grade %d", done, total, out.FileName, out.Sample.AreaDamagePct, out.Sample.Grade)
	}

	rep, err := r.Run(ctx, paths)
	if rep == nil {
		return exitError(4, "analysis aborted: %v", err)
	}
	if err != nil {
		// Logging failures never discard a completed batch.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	rep.Tool = "leafscan"
	rep.Version = version
	rep.Input.Endpoint = cfg.Analyzer.Endpoint

	if err := writeReport(rep, f.format, f.out); err != nil {
		return err
	}

	if len(rep.Errors) == len(paths) {
		return exitError(4, "all %d samples failed analysis", len(paths))
	}
	if f.hasFailOver && rep.Summary.SeverityIndexPct >= f.failOver {
		return exitError(2, "severity index %.1f%% meets fail threshold %.1f%%",
			rep.Summary.SeverityIndexPct, f.failOver)
	}
	return nil
}
