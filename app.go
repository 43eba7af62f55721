package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Yumenio/cool-compiler-2021/ast"
	"github.com/Yumenio/cool-compiler-2021/config"
	"github.com/Yumenio/cool-compiler-2021/importer"
	"github.com/Yumenio/cool-compiler-2021/observability"
	"github.com/Yumenio/cool-compiler-2021/semant"
)

type App struct {
	cfg         *config.Config
	filter      *importer.Filter
	metrics     *observability.Metrics
	logger      *slog.Logger
	out         io.Writer
	emitOutline bool
}

func NewApp(cfg *config.Config, logger *slog.Logger, out io.Writer) (*App, error) {
	filter, err := importer.NewFilter(cfg.Input.Include, cfg.Input.Exclude)
	if err != nil {
		return nil, err
	}
	return &App{
		cfg:     cfg,
		filter:  filter,
		metrics: observability.NewMetrics(),
		logger:  logger,
		out:     out,
	}, nil
}

// Files expands root into the documents to analyze.
func (a *App) Files(root string) ([]string, error) {
	return importer.Scan(root, a.filter)
}

// CheckFile loads one document with its imports and reports its
// diagnostics. It returns false when the file could not be loaded or
// analysis found errors.
func (a *App) CheckFile(path string) bool {
	program, err := importer.New().ProcessFile(path)
	if err != nil {
		fmt.Fprintf(a.out, "%s: error processing imports: %v\n", path, err)
		return false
	}

	analyzer := semant.NewSemanticAnalyser(
		semant.WithStrictMain(a.cfg.Entry.StrictMain),
		semant.WithCompatibleOverrides(a.cfg.Override.AllowCompatible),
		semant.WithLogger(a.logger.With("file", path)),
		semant.WithMetrics(a.metrics),
	)
	analyzer.Analyze(program)

	if a.emitOutline {
		fmt.Fprintf(a.out, "%s:\n%s", path, ast.Serialize(program))
	}

	if errs := analyzer.Errors(); len(errs) > 0 {
		fmt.Fprintf(a.out, "%s: semantic errors:\n", path)
		for _, e := range errs {
			fmt.Fprintf(a.out, "\t%s\n", e)
		}
		return false
	}
	fmt.Fprintf(a.out, "%s: ok\n", path)
	return true
}

// CheckAll checks every file and flushes the metrics textfile when one is
// configured. It reports whether all files passed.
func (a *App) CheckAll(files []string) bool {
	ok := true
	for _, f := range files {
		if !a.CheckFile(f) {
			ok = false
		}
	}
	if path := a.cfg.Metrics.Textfile; path != "" {
		if err := a.metrics.WriteTextfile(path); err != nil {
			a.logger.Warn("failed to write metrics", "path", path, "error", err)
		}
	}
	return ok
}
