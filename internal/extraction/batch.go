package extraction

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"slidepulse/pkg/contracts/domain"
)

// ErrNoUsableData is returned when no file in a batch produced a single
// accepted post. Per-file read failures do not cause it on their own;
// only a completely empty result does.
var ErrNoUsableData = errors.New("no usable post data found in any input file")

// Progress describes one finished file inside a running batch.
type Progress struct {
	File    string
	Index   int // 1-based position within the batch
	Total   int
	Records int
	Err     error
}

// Batch extracts a set of presentation files and aggregates their records
// into one table with globally unique, strictly increasing post indexes.
type Batch struct {
	processor *Processor
	logger    *slog.Logger

	// Workers > 1 enables bounded parallel extraction across files.
	// Output is identical to sequential mode: the renumbering pass runs
	// single-threaded over per-file results in input order.
	Workers int

	// OnProgress, when set, is called once per finished file. With
	// Workers > 1 calls may arrive out of input order.
	OnProgress func(Progress)
}

// NewBatch creates a batch runner around a processor.
func NewBatch(processor *Processor, logger *slog.Logger) *Batch {
	if logger == nil {
		logger = slog.Default()
	}
	return &Batch{
		processor: processor,
		logger:    logger.With(slog.String("component", "extraction.batch")),
		Workers:   1,
	}
}

// Run extracts files in input order. A file that cannot be read is
// recorded as a failure and the batch continues; already-extracted
// records are never discarded because a later file fails. ctx is observed
// between files. When every file yields zero records the result still
// carries the per-file failures, alongside ErrNoUsableData.
func (b *Batch) Run(ctx context.Context, files []string) (*domain.BatchResult, error) {
	perFile := make([][]domain.PostRecord, len(files))
	perFileErr := make([]error, len(files))

	if b.Workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(b.Workers)
		for i, file := range files {
			i, file := i, file
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				perFile[i], perFileErr[i] = b.extractOne(file, i, len(files))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, file := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			perFile[i], perFileErr[i] = b.extractOne(file, i, len(files))
		}
	}

	// Deterministic merge: file order, then slide order, then column
	// order, renumbered 1..N across the whole batch.
	result := &domain.BatchResult{}
	for i, records := range perFile {
		if perFileErr[i] != nil {
			result.Failures = append(result.Failures, domain.FileFailure{
				File:  files[i],
				Error: perFileErr[i].Error(),
			})
			continue
		}
		source := filepath.Base(files[i])
		for _, record := range records {
			record.PostIndex = len(result.Records) + 1
			record.SourceFile = source
			result.Records = append(result.Records, record)
		}
	}

	if len(result.Records) == 0 {
		return result, ErrNoUsableData
	}
	return result, nil
}

func (b *Batch) extractOne(file string, index, total int) ([]domain.PostRecord, error) {
	records, err := b.processor.ProcessFile(file)
	if err != nil {
		b.logger.Error("file extraction failed",
			slog.String("file", file),
			slog.String("error", err.Error()))
		filesFailed.Inc()
	} else {
		filesProcessed.Inc()
		postsExtracted.Add(float64(len(records)))
	}

	if b.OnProgress != nil {
		b.OnProgress(Progress{
			File:    file,
			Index:   index + 1,
			Total:   total,
			Records: len(records),
			Err:     err,
		})
	}

	return records, err
}
