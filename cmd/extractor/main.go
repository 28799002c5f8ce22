package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"slidepulse/internal/config"
	"slidepulse/internal/exporter"
	"slidepulse/internal/extraction"
	"slidepulse/internal/files"
	"slidepulse/internal/infrastructure"
)

func main() {
	inDir := flag.String("in", "", "input directory for .pptx decks (defaults to the configured input directory)")
	outDir := flag.String("out", "", "output directory for reports (defaults to the configured reports directory)")
	workers := flag.Int("workers", 1, "number of decks to extract in parallel")
	flag.Parse()

	if err := run(*inDir, *outDir, *workers); err != nil {
		slog.Error("Extraction failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(inDir, outDir string, workers int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	paths, err := config.GetPaths(cfg.Paths)
	if err != nil {
		return fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	if inDir == "" {
		inDir = paths.InputDir
	}
	if outDir == "" {
		outDir = paths.ReportsDir
	}

	discovery := files.NewDiscovery(paths.BaseDir)
	found, err := discovery.FindPresentationFiles(inDir)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", inDir, err)
	}
	if len(found) == 0 {
		return fmt.Errorf("no .pptx files found in %s", inDir)
	}

	logger.Info("Starting extraction",
		slog.Int("files", len(found)),
		slog.String("input_dir", inDir),
		slog.Int("workers", workers))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	processor := extraction.NewProcessor(logger, cfg.Extraction)
	batch := extraction.NewBatch(processor, logger)
	if workers > 0 {
		batch.Workers = workers
	}
	batch.OnProgress = func(p extraction.Progress) {
		if p.Err != nil {
			logger.Warn("File skipped",
				slog.String("file", p.File),
				slog.String("error", p.Err.Error()))
			return
		}
		logger.Info("File extracted",
			slog.String("file", p.File),
			slog.Int("index", p.Index),
			slog.Int("total", p.Total),
			slog.Int("records", p.Records))
	}

	result, runErr := batch.Run(ctx, files.Paths(found))
	if runErr != nil && !errors.Is(runErr, extraction.ErrNoUsableData) {
		return runErr
	}

	csvWriter := exporter.NewCSVWriter(logger)
	if result != nil && len(result.Failures) > 0 {
		failuresPath := filepath.Join(outDir, config.FailuresCSVName)
		if err := csvWriter.WriteFailures(failuresPath, result.Failures); err != nil {
			logger.Error("Failed to write failures report", slog.String("error", err.Error()))
		}
	}

	if runErr != nil {
		// Every deck came up empty. The failures report above is all
		// there is to say about this run.
		return runErr
	}

	postsCSV := filepath.Join(outDir, config.PostsCSVName)
	if err := csvWriter.WritePosts(postsCSV, result.Records); err != nil {
		return fmt.Errorf("failed to write %s: %w", postsCSV, err)
	}

	workbook := filepath.Join(outDir, config.PostsWorkbook)
	if err := exporter.NewExcelWriter(logger).WriteWorkbook(workbook, result.Records); err != nil {
		return fmt.Errorf("failed to write %s: %w", workbook, err)
	}

	logger.Info("Extraction complete",
		slog.Int("posts", len(result.Records)),
		slog.Int("failures", len(result.Failures)),
		slog.String("csv", postsCSV),
		slog.String("workbook", workbook))

	return nil
}
