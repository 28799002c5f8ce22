// Package http provides the JSON API surface over the extraction
// pipeline.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "slidepulse/internal/errors"
	"slidepulse/internal/extraction"
	"slidepulse/pkg/contracts/domain"
)

// ExtractionService is the slice of the batch service the handler needs.
type ExtractionService interface {
	Run(ctx context.Context, inputDir string, workers int) (*domain.BatchResult, error)
	LastResult() *domain.BatchResult
}

// ExtractionHandler serves batch extraction and extracted post queries.
type ExtractionHandler struct {
	service  ExtractionService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewExtractionHandler creates the handler.
func NewExtractionHandler(service ExtractionService, logger *slog.Logger) *ExtractionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractionHandler{
		service:  service,
		logger:   logger.With(slog.String("component", "extraction_handler")),
		validate: validator.New(),
	}
}

// Routes returns the extraction routes.
func (h *ExtractionHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/extraction", h.RunExtraction)
	r.Get("/posts", h.GetPosts)

	return r
}

// ExtractRequest is the POST /api/extraction body.
type ExtractRequest struct {
	// InputDir overrides the configured deck directory when set.
	InputDir string `json:"input_dir"`
	// Workers enables parallel file extraction when > 1.
	Workers int `json:"workers" validate:"min=0,max=32"`
}

// ExtractResponse wraps a batch result.
type ExtractResponse struct {
	Success  bool                 `json:"success"`
	Count    int                  `json:"count"`
	Records  []domain.PostRecord  `json:"records"`
	Failures []domain.FileFailure `json:"failures,omitempty"`
}

// RunExtraction handles POST /api/extraction.
func (h *ExtractionHandler) RunExtraction(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if r.ContentLength > 0 {
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			h.renderError(w, r, apierrors.InvalidRequestWithError(err))
			return
		}
	}
	if err := h.validate.Struct(req); err != nil {
		h.renderError(w, r, apierrors.ErrValidation("workers", err.Error()))
		return
	}

	result, err := h.service.Run(r.Context(), req.InputDir, req.Workers)
	switch {
	case errors.Is(err, extraction.ErrNoUsableData):
		// Batch-level failure: nothing to export anywhere. Per-file
		// failures ride along so the caller can tell the two apart.
		var details []*apierrors.APIError
		if result != nil {
			for _, f := range result.Failures {
				details = append(details, apierrors.FileReadError(f.File, errors.New(f.Error)))
			}
		}
		h.renderError(w, r, apierrors.NewWithDetails(
			apierrors.ErrNoUsableData.StatusCode,
			apierrors.ErrNoUsableData.ErrorCode,
			apierrors.ErrNoUsableData.Message,
			details))
		return
	case err != nil:
		h.logger.ErrorContext(r.Context(), "extraction run failed",
			slog.String("error", err.Error()))
		h.renderError(w, r, apierrors.ErrExtraction(err))
		return
	}

	render.JSON(w, r, ExtractResponse{
		Success:  true,
		Count:    len(result.Records),
		Records:  result.Records,
		Failures: result.Failures,
	})
}

// GetPosts handles GET /api/posts: the records of the latest batch.
func (h *ExtractionHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	result := h.service.LastResult()
	if result == nil {
		h.renderError(w, r, apierrors.ErrNoBatchYet)
		return
	}

	render.JSON(w, r, ExtractResponse{
		Success:  true,
		Count:    len(result.Records),
		Records:  result.Records,
		Failures: result.Failures,
	})
}

func (h *ExtractionHandler) renderError(w http.ResponseWriter, r *http.Request, apiErr *apierrors.APIError) {
	if err := render.Render(w, r, apierrors.NewErrorResponse(apiErr)); err != nil {
		apierrors.WriteError(w, apiErr)
	}
}
