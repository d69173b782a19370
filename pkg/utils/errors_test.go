package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jstittsworth/fplmate/internal/models"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "data integrity",
			err:        fmt.Errorf("aggregate: %w", &models.DataIntegrityError{PlayerID: 9, Reason: "no metadata"}),
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeDataIntegrity,
		},
		{
			name:       "missing file",
			err:        &models.ResourceNotFoundError{Path: "teams.csv"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeResourceNotFound,
		},
		{
			name:       "empty result",
			err:        fmt.Errorf("enrich: %w", models.ErrEmptyResult),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   ErrCodeEmptyResult,
		},
		{
			name:       "anything else",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, appErr := ClassifyError("Failed to recommend team", tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, "Failed to recommend team", appErr.Message)
			assert.Equal(t, tt.err.Error(), appErr.Details)
		})
	}
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: missing", NewAppError(ErrCodeNotFound, "missing").Error())
	assert.Equal(t, "VALIDATION_ERROR: bad - field x", NewAppError(ErrCodeValidation, "bad", "field x").Error())
}
