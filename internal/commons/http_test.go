package commons

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crediario/internal/dto"
	apperrors "crediario/internal/errors"
)

func TestResponder_WriteErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperrors.NewValidationError("bad", apperrors.ValidationDetail{Field: "items", Message: "empty"}), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", fmt.Errorf("paying: %w", apperrors.NewNotFoundError("installment x not found")), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", apperrors.NewConflictError("already paid"), http.StatusConflict, "CONFLICT"},
		{"persistence", apperrors.NewPersistenceError("writing sales", errors.New("io")), http.StatusServiceUnavailable, "PERSISTENCE_ERROR"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	rs := NewResponder(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rs.WriteError(rec, "trace-1", tt.err, zap.NewNop())

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, "trace-1", body.TraceID)
		})
	}
}

func TestResponder_InternalErrorHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	NewResponder(zap.NewNop()).WriteError(rec, "t", errors.New("secret detail"), zap.NewNop())

	assert.NotContains(t, rec.Body.String(), "secret detail")
}

func TestResponder_Decode(t *testing.T) {
	rs := NewResponder(zap.NewNop())

	var v struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ana"}`))
	assert.True(t, rs.Decode(httptest.NewRecorder(), req, "t", &v))
	assert.Equal(t, "Ana", v.Name)

	rec := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.False(t, rs.Decode(rec, req, "t", &v))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
