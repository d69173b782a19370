package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jstittsworth/fplmate/internal/models"
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func NewAppError(code string, message string, details ...string) *AppError {
	err := &AppError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Common error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeDataIntegrity    = "DATA_INTEGRITY_ERROR"
	ErrCodeResourceNotFound = "RESOURCE_NOT_FOUND"
	ErrCodeEmptyResult      = "EMPTY_RESULT"
	ErrCodeRateLimited      = "RATE_LIMITED"
	ErrCodePrediction       = "PREDICTION_ERROR"
)

// ClassifyError maps a recommendation failure to an HTTP status and AppError
func ClassifyError(message string, err error) (int, *AppError) {
	switch {
	case errors.Is(err, models.ErrDataIntegrity):
		return http.StatusInternalServerError, NewAppError(ErrCodeDataIntegrity, message, err.Error())
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusInternalServerError, NewAppError(ErrCodeResourceNotFound, message, err.Error())
	case errors.Is(err, models.ErrEmptyResult):
		return http.StatusUnprocessableEntity, NewAppError(ErrCodeEmptyResult, message, err.Error())
	default:
		return http.StatusInternalServerError, NewAppError(ErrCodeInternal, message, err.Error())
	}
}
