package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leafscan/leafscan/internal/analyzer"
	"github.com/leafscan/leafscan/internal/config"
	"github.com/leafscan/leafscan/internal/csvlog"
	"github.com/leafscan/leafscan/internal/runner"
	"github.com/leafscan/leafscan/internal/watch"
)

type watchFlags struct {
	configPath string
	endpoint   string
	logPath    string
	timeout    time.Duration
	settle     time.Duration
}

func newWatchCmd() *cobra.Command {
	f := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Watch a drop folder and analyze leaf images as they arrive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "Config file path")
	flags.StringVar(&f.endpoint, "endpoint", "", "Analyzer base URL (overrides config)")
	flags.StringVar(&f.logPath, "log", "", "Append graded rows to this CSV log")
	flags.DurationVar(&f.timeout, "timeout", 0, "Per-upload timeout (overrides config)")
	flags.DurationVar(&f.settle, "settle", watch.DefaultSettle, "How long a new file must be size-stable before upload")

	return cmd
}

func runWatch(dir string, f *watchFlags) error {
	logger := log.New(os.Stderr, "", 0)

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

	client, err := analyzer.NewHTTP(cfg.Analyzer.Endpoint, time.Duration(cfg.Analyzer.Timeout))
	if err != nil {
		return exitError(4, "analyzer client: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := client.Ping(ctx); err != nil {
		return exitError(4, "analyzer unreachable: %v", err)
	}

	var sink csvlog.Sink = csvlog.Discard{}
	if cfg.Log.Path != "" {
		sink = &csvlog.FileSink{Path: cfg.Log.Path}
	}
	r := runner.New(client, sink, cfg.Grading.ZeroEpsilon)

	logger.Printf("watching %s (analyzer %s)", dir, cfg.Analyzer.Endpoint)
	w := &watch.Watcher{
		Dir:    dir,
		Settle: f.settle,
		Handle: func(ctx context.Context, path string) {
			rep, err := r.Run(ctx, []string{path})
			if rep == nil {
				return // cancelled mid-upload
			}
			if err != nil {
				logger.Printf("warning: %v", err)
			}
			for _, e := range rep.Errors {
				logger.Printf("%s: %s", e.FileName, e.Message)
			}
			for _, s := range rep.Samples {
				logger.Printf("%s: %.2f%% damaged, %d lesions, grade %d (%s)",
					s.FileName, s.AreaDamagePct, s.LesionCount, s.Grade, s.Grade.Label())
			}
		},
	}

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
