package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON with correct content type", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteJSON(rec, http.StatusOK, map[string]string{"foo": "bar"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var result map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "bar", result["foo"])
	})

	t.Run("handles nil data", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteJSON(rec, http.StatusAccepted, nil)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("empty slice stays an array", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteOK(rec, []int{})

		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		code   string
	}{
		{"bad request", func(w http.ResponseWriter) { WriteBadRequest(w, "empty_value", "m") }, http.StatusBadRequest, "empty_value"},
		{"not found", func(w http.ResponseWriter) { WriteNotFound(w, "not_found", "m") }, http.StatusNotFound, "not_found"},
		{"conflict", func(w http.ResponseWriter) { WriteConflict(w, "already_exists", "m") }, http.StatusConflict, "already_exists"},
		{"internal", func(w http.ResponseWriter) { WriteInternalError(w, "internal_error", "m") }, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			tt.write(rec)

			assert.Equal(t, tt.status, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error)
			assert.Equal(t, "m", body.Message)
			assert.Nil(t, body.Details)
		})
	}
}

func TestWriteErrorWithDetails(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	WriteErrorWithDetails(rec, http.StatusBadRequest, "validation_failed", "bad", []string{"min_length"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"validation_failed","message":"bad","details":["min_length"]}`, rec.Body.String())
}

func TestWriteCreatedAndNoContent(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteCreated(rec, map[string]int{"n": 1})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	WriteNoContent(rec)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
