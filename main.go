package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Yumenio/cool-compiler-2021/config"
	"github.com/Yumenio/cool-compiler-2021/watcher"
)

var (
	inputPath   = flag.String("i", "", "Input AST document or directory")
	configPath  = flag.String("config", "", "Path to config file")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	emitOutline = flag.Bool("emit-outline", false, "Print the class outline of each analyzed program")
	watchMode   = flag.Bool("watch", false, "Re-run analysis when documents change")
	metricsOut  = flag.String("metrics-out", "", "Write Prometheus metrics to this file after each run")
	version     = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("coolsem v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: input file is required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}
	if *metricsOut != "" {
		cfg.Metrics.Textfile = *metricsOut
	}

	app, err := NewApp(cfg, logger, os.Stdout)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	app.emitOutline = *emitOutline

	files, err := app.Files(*inputPath)
	if err != nil {
		slog.Error("failed to scan input", "path", *inputPath, "error", err)
		os.Exit(1)
	}
	ok := app.CheckAll(files)

	if !*watchMode {
		if !ok {
			os.Exit(1)
		}
		return
	}

	w, err := watcher.New(cfg.Watch.Debounce.Duration, app.filter, func(changed []string) {
		slog.Info("documents changed", "count", len(changed))
		files, err := app.Files(*inputPath)
		if err != nil {
			slog.Error("failed to scan input", "path", *inputPath, "error", err)
			return
		}
		app.CheckAll(files)
	})
	if err != nil {
		slog.Error("failed to create watcher", "error", err)
		os.Exit(1)
	}
	defer w.Close()

	if err := w.Watch([]string{*inputPath}); err != nil {
		slog.Error("failed to watch input", "error", err)
		os.Exit(1)
	}
	slog.Info("watching for changes", "path", *inputPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
}
