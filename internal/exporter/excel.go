package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"slidepulse/pkg/contracts/domain"
)

const (
	postsSheet   = "Posts"
	summarySheet = "Summary"
)

// ExcelWriter exports post records as an .xlsx workbook.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates an Excel exporter.
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger.With(slog.String("component", "exporter.excel"))}
}

// WriteWorkbook writes records to path as a workbook with a Posts sheet
// and a Summary sheet (counts per type and per source file).
func (w *ExcelWriter) WriteWorkbook(path string, records []domain.PostRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", postsSheet)
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	if err := w.writePosts(f, records); err != nil {
		return err
	}
	if err := w.writeSummary(f, records); err != nil {
		return err
	}

	w.logger.Info("writing posts workbook",
		slog.String("path", path),
		slog.Int("records", len(records)))

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (w *ExcelWriter) writePosts(f *excelize.File, records []domain.PostRecord) error {
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range postHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(postsSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		f.SetCellStyle(postsSheet, cell, cell, headerStyle)
	}

	for i, record := range records {
		rowNum := i + 2
		cells := []interface{}{
			record.PostIndex,
			record.SourceFile,
			record.SlideNumber,
			record.Title,
			string(record.Type),
			record.Confidence,
			metricCell(record.Reach),
			metricCell(record.Engagement),
			metricCell(record.Likes),
			metricCell(record.Shares),
			metricCell(record.Comments),
			metricCell(record.Saved),
			metricCell(record.Views),
			record.Link,
		}
		for col, value := range cells {
			if value == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(postsSheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", rowNum, err)
			}
		}
	}

	// Title and source-file columns carry long text.
	f.SetColWidth(postsSheet, "B", "B", 28)
	f.SetColWidth(postsSheet, "D", "D", 48)
	return nil
}

func (w *ExcelWriter) writeSummary(f *excelize.File, records []domain.PostRecord) error {
	byType := map[string]int{}
	byFile := map[string]int{}
	for _, record := range records {
		byType[string(record.Type)]++
		byFile[record.SourceFile]++
	}

	row := 1
	writePair := func(a string, b interface{}) error {
		cellA, _ := excelize.CoordinatesToCellName(1, row)
		cellB, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellValue(summarySheet, cellA, a); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, cellB, b); err != nil {
			return err
		}
		row++
		return nil
	}

	if err := writePair("Total posts", len(records)); err != nil {
		return err
	}

	row++
	if err := writePair("Posts by type", ""); err != nil {
		return err
	}
	for _, key := range sortedKeys(byType) {
		if err := writePair(key, byType[key]); err != nil {
			return err
		}
	}

	row++
	if err := writePair("Posts by source file", ""); err != nil {
		return err
	}
	for _, key := range sortedKeys(byFile) {
		if err := writePair(key, byFile[key]); err != nil {
			return err
		}
	}

	return nil
}

func metricCell(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
