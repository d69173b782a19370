package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fplmate/internal/dataset"
	"github.com/jstittsworth/fplmate/internal/form"
	"github.com/jstittsworth/fplmate/internal/models"
	"github.com/jstittsworth/fplmate/internal/optimizer"
	"github.com/jstittsworth/fplmate/internal/presenter"
	"github.com/jstittsworth/fplmate/pkg/config"
	"github.com/jstittsworth/fplmate/pkg/logger"
)

// Recommendation is one squad recommendation with the id it was logged under
type Recommendation struct {
	ID string `json:"recommendation_id"`
	presenter.RecommendationResponse
}

// RecommendationService runs the full pipeline for a single request: load the
// season files, compute form, select a squad and shape it. Nothing is kept
// between calls so every request sees the files as they are on disk.
type RecommendationService struct {
	cfg        *config.Config
	aggregator *dataset.Aggregator
	calculator form.Calculator
}

func NewRecommendationService(cfg *config.Config) *RecommendationService {
	return &RecommendationService{
		cfg: cfg,
		aggregator: dataset.NewAggregator(
			dataset.MissingMetadataPolicy(cfg.MissingMetadataPolicy),
			logger.WithService("recommendation"),
		),
		calculator: form.Calculator{
			FormWindow:  cfg.FormWindow,
			StatsWindow: cfg.StatsWindow,
		},
	}
}

// RecommendTeam builds the best-value squad for the configured season
func (s *RecommendationService) RecommendTeam(ctx context.Context) (*Recommendation, error) {
	startTime := time.Now()
	id := uuid.New().String()
	log := logger.WithRecommendationContext(id, s.cfg.Season)

	selectConfig, err := s.selectConfig()
	if err != nil {
		return nil, err
	}

	rows, err := s.aggregator.Aggregate(s.cfg.PlayersDir(), s.cfg.PlayersRawPath())
	if err != nil {
		log.WithError(err).Error("Failed to aggregate player data")
		return nil, fmt.Errorf("aggregate player data: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	players, err := s.calculator.Enrich(rows)
	if err != nil {
		log.WithError(err).Error("Failed to compute player form")
		return nil, fmt.Errorf("compute form: %w", err)
	}

	clubs, err := dataset.LoadClubs(s.cfg.TeamsPath())
	if err != nil {
		log.WithError(err).Error("Failed to load clubs")
		return nil, fmt.Errorf("load clubs: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	squad, err := optimizer.SelectSquad(players, selectConfig)
	if err != nil {
		return nil, fmt.Errorf("select squad: %w", err)
	}
	if len(squad.Players) == 0 {
		return nil, fmt.Errorf("no player fits the squad constraints: %w", models.ErrEmptyResult)
	}
	if err := optimizer.ValidateSquad(squad, selectConfig); err != nil {
		log.WithError(err).Error("Selected squad violates constraints")
		return nil, fmt.Errorf("validate squad: %w", err)
	}

	selected := make([]string, 0, len(squad.Players))
	for _, p := range squad.Players {
		selected = append(selected, p.FullName())
	}

	fields := logrus.Fields{
		"players":       selected,
		"gameweek_rows": len(rows),
		"candidates":    len(players),
		"selected":      len(squad.Players),
		"total_spend":   squad.TotalSpend,
		"status":        squad.Status,
		"duration_ms":   time.Since(startTime).Milliseconds(),
	}
	if squad.Status == models.SquadPartial {
		log.WithFields(fields).WithField("shortfalls", squad.Shortfalls).Warn("Squad only partially filled")
	} else {
		log.WithFields(fields).Info("Squad recommendation complete")
	}

	return &Recommendation{
		ID:                     id,
		RecommendationResponse: presenter.FormatSquad(squad, clubs),
	}, nil
}

func (s *RecommendationService) selectConfig() (optimizer.SelectConfig, error) {
	structure, err := s.cfg.TeamStructure()
	if err != nil {
		return optimizer.SelectConfig{}, fmt.Errorf("%w: %v", optimizer.ErrInvalidConstraints, err)
	}
	return optimizer.SelectConfig{
		Structure:         structure,
		MaxPlayersPerClub: s.cfg.MaxPlayersPerTeam,
		Budget:            float64(s.cfg.MaxSpend),
	}, nil
}
