package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"slidepulse/pkg/contracts/domain"
)

// CSVWriter exports post records and per-file failures as CSV reports.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a CSV exporter.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With(slog.String("component", "exporter.csv"))}
}

// WritePosts writes all records to path, overwriting any previous report.
func (w *CSVWriter) WritePosts(path string, records []domain.PostRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, postRow(record))
	}

	w.logger.Info("writing posts CSV",
		slog.String("path", path),
		slog.Int("records", len(rows)))

	return w.writeFile(path, postHeaders, rows)
}

// WriteFailures writes the per-file failure report. With no failures the
// file is not created at all.
func (w *CSVWriter) WriteFailures(path string, failures []domain.FileFailure) error {
	if len(failures) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(failures))
	for _, f := range failures {
		rows = append(rows, []string{f.File, f.Error})
	}
	return w.writeFile(path, []string{"File", "Error"}, rows)
}

func (w *CSVWriter) writeFile(path string, headers []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// UTF-8 BOM keeps Excel from misreading the encoding.
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}
