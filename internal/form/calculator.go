package form

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"

	"github.com/jstittsworth/fplmate/internal/models"
)

const (
	DefaultFormWindow  = 5
	DefaultStatsWindow = 6
)

// Calculator derives form scores and trailing stats from the unified
// gameweek table. A row belongs to a window of size w when
// round > maxRound - w, so early in the season every round is included.
type Calculator struct {
	FormWindow  int
	StatsWindow int
}

func NewCalculator() Calculator {
	return Calculator{FormWindow: DefaultFormWindow, StatsWindow: DefaultStatsWindow}
}

// Enrich returns one EnrichedPlayer per player with a row at the latest
// round, ordered by player id.
func (c Calculator) Enrich(rows []models.GameweekRow) ([]models.EnrichedPlayer, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no gameweek rows to enrich: %w", models.ErrEmptyResult)
	}

	maxRound := rows[0].Round
	for _, row := range rows[1:] {
		if row.Round > maxRound {
			maxRound = row.Round
		}
	}

	byPlayer := make(map[int][]models.GameweekRow)
	for _, row := range rows {
		byPlayer[row.PlayerID] = append(byPlayer[row.PlayerID], row)
	}

	enriched := make([]models.EnrichedPlayer, 0, len(byPlayer))
	for _, history := range byPlayer {
		snapshot, ok := latestRow(history, maxRound)
		if !ok {
			continue
		}

		enriched = append(enriched, models.EnrichedPlayer{
			PlayerMeta:         snapshot.Meta,
			Latest:             snapshot.PlayerRecord,
			AverageTotalPoints: scalar.Round(c.formScore(history, maxRound, snapshot), 2),
			Stats:              c.trailingStats(history, maxRound, snapshot.Meta.Position),
		})
	}

	sort.Slice(enriched, func(i, j int) bool {
		return enriched[i].ID < enriched[j].ID
	})

	return enriched, nil
}

// latestRow picks the row at maxRound. Double gameweeks produce several rows
// for the same round; the last one in source order wins.
func latestRow(history []models.GameweekRow, maxRound int) (models.GameweekRow, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Round == maxRound {
			return history[i], true
		}
	}
	return models.GameweekRow{}, false
}

func inWindow(round, maxRound, window int) bool {
	return round > maxRound-window
}

// formScore is the mean points over the form window, or the snapshot's
// points when the window holds no rows.
func (c Calculator) formScore(history []models.GameweekRow, maxRound int, snapshot models.GameweekRow) float64 {
	var points []float64
	for _, row := range history {
		if inWindow(row.Round, maxRound, c.FormWindow) {
			points = append(points, row.TotalPoints)
		}
	}
	if len(points) == 0 {
		return snapshot.TotalPoints
	}
	return stat.Mean(points, nil)
}

func (c Calculator) trailingStats(history []models.GameweekRow, maxRound int, pos models.Position) *models.TrailingStats {
	var (
		minutes, starts, goals, assists, conceded, cleanSheets int
		selected, xgi, threat, xgc                             []float64
	)
	for _, row := range history {
		if !inWindow(row.Round, maxRound, c.StatsWindow) {
			continue
		}
		minutes += row.Minutes
		starts += row.Starts
		goals += row.GoalsScored
		assists += row.Assists
		conceded += row.GoalsConceded
		cleanSheets += row.CleanSheets
		selected = append(selected, float64(row.Selected))
		xgi = append(xgi, row.ExpectedGoalInvolvements)
		threat = append(threat, row.Threat)
		xgc = append(xgc, row.ExpectedGoalsConceded)
	}

	stats := &models.TrailingStats{
		MinutesPlayed: minutes,
		TotalStarts:   starts,
		GoalsScored:   goals,
		Assists:       assists,
	}
	if len(selected) > 0 {
		stats.AvgSelected = int(math.Round(stat.Mean(selected, nil)))
	}

	switch {
	case pos.IsAttacking():
		totalXGI := scalar.Round(floats.Sum(xgi), 2)
		avgThreat := 0.0
		if len(threat) > 0 {
			avgThreat = scalar.Round(stat.Mean(threat, nil), 2)
		}
		stats.TotalXGI = &totalXGI
		stats.AvgThreat = &avgThreat
	case pos.IsDefensive():
		totalXGC := scalar.Round(floats.Sum(xgc), 2)
		stats.TotalXGC = &totalXGC
		stats.GoalsConceded = &conceded
		stats.CleanSheets = &cleanSheets
	}

	return stats
}
