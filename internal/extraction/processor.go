package extraction

import (
	"fmt"
	"log/slog"
	"strings"

	"slidepulse/internal/pptx"
	"slidepulse/pkg/contracts/domain"
)

// Config carries the tunable parts of the extraction pipeline. The zero
// value means "use the calibrated defaults" everywhere.
type Config struct {
	ColumnTolerance int64          `yaml:"column_tolerance"`
	RowTolerance    int64          `yaml:"row_tolerance"`
	HeaderKeywords  []string       `yaml:"header_keywords"`
	Detector        DetectorConfig `yaml:"detector"`
}

// Processor runs the full extraction pipeline for one presentation file.
type Processor struct {
	cfg        Config
	classifier *Classifier
	detector   *Detector
	logger     *slog.Logger
}

// NewProcessor wires a processor from config. A nil logger falls back to
// the default slog logger.
func NewProcessor(logger *slog.Logger, cfg Config) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		cfg:        cfg,
		classifier: NewClassifier(logger, cfg.HeaderKeywords),
		detector:   NewDetector(cfg.Detector),
		logger:     logger.With(slog.String("component", "extraction.processor")),
	}
}

// ProcessFile extracts every accepted post record from one .pptx file.
// Records come back in slide-then-column order with per-slide 1-based
// post indexes; the batch layer renumbers them globally.
func (p *Processor) ProcessFile(path string) ([]domain.PostRecord, error) {
	reader, err := pptx.Open(path, p.logger)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var records []domain.PostRecord
	for slide := 1; slide <= reader.SlideCount(); slide++ {
		fragments, err := reader.SlideFragments(slide)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", slide, err)
		}
		records = append(records, p.ProcessSlide(slide, fragments)...)
	}

	p.logger.Info("file processed",
		slog.String("file", path),
		slog.Int("slides", reader.SlideCount()),
		slog.Int("posts", len(records)))

	return records, nil
}

// ProcessSlide runs reassembly, grouping and classification over one
// slide's fragments. An empty slide yields no records and no error.
func (p *Processor) ProcessSlide(slideNumber int, fragments []domain.TextFragment) []domain.PostRecord {
	if len(fragments) == 0 {
		return nil
	}

	fragments = ReassembleTableCells(fragments, p.cfg.RowTolerance)
	columns := GroupColumns(fragments, p.cfg.ColumnTolerance)

	var records []domain.PostRecord
	for _, column := range columns {
		record, ok := p.classifier.ClassifyColumn(column)
		if !ok {
			continue
		}

		record.SlideNumber = slideNumber
		record.PostIndex = len(records) + 1
		record.Type, record.Confidence = p.detector.Detect(record.Title, columnText(column))
		records = append(records, record)
	}

	if len(records) > 0 {
		p.logger.Debug("slide extracted",
			slog.Int("slide", slideNumber),
			slog.Int("columns", len(columns)),
			slog.Int("posts", len(records)))
	}

	return records
}

// columnText joins a column's raw fragment text; the detector uses it as
// metric-pattern evidence.
func columnText(column domain.Column) string {
	parts := make([]string, 0, len(column.Items))
	for _, item := range column.Items {
		parts = append(parts, item.Text)
	}
	return strings.Join(parts, "\n")
}
