package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fplmate/internal/services"
	"github.com/jstittsworth/fplmate/pkg/utils"
)

// TeamRecommender produces a squad recommendation per call
type TeamRecommender interface {
	RecommendTeam(ctx context.Context) (*services.Recommendation, error)
}

type RecommendHandler struct {
	recommender TeamRecommender
}

func NewRecommendHandler(recommender TeamRecommender) *RecommendHandler {
	return &RecommendHandler{recommender: recommender}
}

// RecommendTeam returns the best-value squad for the configured season
func (h *RecommendHandler) RecommendTeam(c *gin.Context) {
	rec, err := h.recommender.RecommendTeam(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		utils.SendClassifiedError(c, "Failed to recommend team", err)
		return
	}

	utils.SendSuccess(c, rec)
}
