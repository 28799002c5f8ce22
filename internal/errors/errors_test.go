package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_REQUEST", "bad input")
	assert.Equal(t, "bad input", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", err.ErrorCode)
}

func TestErrValidation_Details(t *testing.T) {
	err := ErrValidation("input_dir", "directory is required")

	details, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "input_dir", details.Field)
	assert.Equal(t, "directory is required", details.Message)
}

func TestFileReadError(t *testing.T) {
	err := FileReadError("deck.pptx", assert.AnError)
	assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode)
	assert.Equal(t, "FILE_UNREADABLE", err.ErrorCode)
	assert.Contains(t, err.Message, "deck.pptx")
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrNoUsableData)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NO_USABLE_DATA", resp.Error.ErrorCode)
}

func TestNoUsableDataDistinctFromFileFailure(t *testing.T) {
	fileErr := FileReadError("a.pptx", assert.AnError)
	assert.NotEqual(t, fileErr.ErrorCode, ErrNoUsableData.ErrorCode,
		"partial degradation and batch-level failure must be distinguishable")
}
