// Package services coordinates the extraction pipeline for the transport
// layer: input discovery, batch runs, progress broadcasting and caching
// of the latest result.
package services

import (
	"context"
	"log/slog"
	"sync"

	"slidepulse/internal/config"
	"slidepulse/internal/extraction"
	"slidepulse/internal/files"
	"slidepulse/internal/websocket"
	"slidepulse/pkg/contracts/domain"
)

// BatchService runs extraction batches and retains the most recent result.
type BatchService struct {
	processor *extraction.Processor
	discovery *files.Discovery
	paths     *config.Paths
	hub       *websocket.Hub
	logger    *slog.Logger

	mu   sync.RWMutex
	last *domain.BatchResult
}

// NewBatchService wires a batch service. hub may be nil when no progress
// broadcasting is wanted.
func NewBatchService(processor *extraction.Processor, paths *config.Paths, hub *websocket.Hub, logger *slog.Logger) *BatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchService{
		processor: processor,
		discovery: files.NewDiscovery(paths.BaseDir),
		paths:     paths,
		hub:       hub,
		logger:    logger.With(slog.String("component", "services.batch")),
	}
}

// Run discovers the decks in inputDir (the configured input directory
// when empty) and extracts them. The result is cached for LastResult even
// when the batch-level no-data error comes back with it.
func (s *BatchService) Run(ctx context.Context, inputDir string, workers int) (*domain.BatchResult, error) {
	if inputDir == "" {
		inputDir = s.paths.InputDir
	}

	found, err := s.discovery.FindPresentationFiles(inputDir)
	if err != nil {
		return nil, err
	}

	batch := extraction.NewBatch(s.processor, s.logger)
	if workers > 0 {
		batch.Workers = workers
	}
	if s.hub != nil {
		batch.OnProgress = func(p extraction.Progress) {
			payload := websocket.ProgressPayload{
				File:    p.File,
				Index:   p.Index,
				Total:   p.Total,
				Records: p.Records,
			}
			if p.Err != nil {
				payload.Error = p.Err.Error()
			}
			s.hub.Broadcast(websocket.TypeProgress, payload)
		}
	}

	result, err := batch.Run(ctx, files.Paths(found))
	if result != nil {
		s.mu.Lock()
		s.last = result
		s.mu.Unlock()

		if s.hub != nil {
			s.hub.Broadcast(websocket.TypeBatchComplete, websocket.CompletePayload{
				Records:  len(result.Records),
				Failures: len(result.Failures),
			})
		}
	}

	return result, err
}

// LastResult returns the most recent batch result, or nil before any run.
func (s *BatchService) LastResult() *domain.BatchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}
