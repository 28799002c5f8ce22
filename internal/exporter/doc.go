// Package exporter writes extracted post records to report files.
//
// Two formats are produced: a UTF-8 CSV (BOM-prefixed so Excel opens it
// cleanly) and an .xlsx workbook with a Posts sheet and a Summary sheet.
// Exporters only read records; they never mutate them.
package exporter
