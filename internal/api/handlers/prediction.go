package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fplmate/internal/scoring"
	"github.com/jstittsworth/fplmate/pkg/utils"
)

// RatingPredictor rates a player's stat line
type RatingPredictor interface {
	PredictRating(input scoring.RatingInput) (*scoring.RatingResult, error)
}

type PredictionHandler struct {
	predictor RatingPredictor
}

// NewPredictionHandler accepts a nil predictor when no model is loaded; the
// endpoint then answers 503.
func NewPredictionHandler(predictor RatingPredictor) *PredictionHandler {
	return &PredictionHandler{predictor: predictor}
}

// PredictRating scores the stats posted as a flat JSON object of numbers
func (h *PredictionHandler) PredictRating(c *gin.Context) {
	if h.predictor == nil {
		utils.SendError(c, http.StatusServiceUnavailable,
			utils.NewAppError(utils.ErrCodePrediction, "Rating model is not loaded"))
		return
	}

	var input scoring.RatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendValidationError(c, "Invalid JSON", err.Error())
		return
	}

	result, err := h.predictor.PredictRating(input)
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, scoring.ErrMissingFeatures) || errors.Is(err, scoring.ErrInvalidPrice) {
			utils.SendValidationError(c, "Invalid rating request", err.Error())
			return
		}
		utils.SendError(c, http.StatusInternalServerError,
			utils.NewAppError(utils.ErrCodePrediction, "Failed to predict rating", err.Error()))
		return
	}

	utils.SendSuccess(c, result)
}
