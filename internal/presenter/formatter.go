package presenter

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/jstittsworth/fplmate/internal/models"
	"github.com/jstittsworth/fplmate/pkg/logger"
)

// PlayerView is the external shape of one selected player. Stats that do not
// apply to the player's position are reported as zero.
type PlayerView struct {
	ID            int     `json:"id"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Position      string  `json:"position"`
	Price         float64 `json:"price"`
	Points        float64 `json:"Points"`
	AvgPoints     float64 `json:"Avg Points"`
	RoundThreat   float64 `json:"threat"`
	Minutes       int     `json:"Minutes"`
	Starts        int     `json:"Starts"`
	Ownership     int     `json:"Ownership"`
	Goals         int     `json:"Goals"`
	Assists       int     `json:"Assists"`
	CleanSheets   int     `json:"CleanSheets"`
	GoalsConceded int     `json:"GoalsConceded"`
	XGI           float64 `json:"XGI"`
	XGC           float64 `json:"XGC"`
	Threat        float64 `json:"Threat"`
	TeamName      string  `json:"teamName"`
}

type RecommendationResponse struct {
	Team        []PlayerView            `json:"team"`
	TotalPoints float64                 `json:"total_points"`
	TotalSpend  float64                 `json:"total_spend"`
	Status      models.SquadStatus      `json:"status"`
	Shortfalls  map[models.Position]int `json:"shortfalls,omitempty"`
}

// FormatSquad shapes a selected squad for the API, in selection order
func FormatSquad(squad *models.SelectedSquad, clubs models.ClubDirectory) RecommendationResponse {
	resp := RecommendationResponse{
		Team:   make([]PlayerView, 0),
		Status: models.SquadComplete,
	}
	if squad == nil {
		return resp
	}

	for _, p := range squad.Players {
		resp.Team = append(resp.Team, formatPlayer(p, clubs))
	}
	resp.TotalPoints = round2(squad.TotalAveragePoints())
	resp.TotalSpend = round2(squad.TotalSpend)
	resp.Status = squad.Status
	if len(squad.Shortfalls) > 0 {
		resp.Shortfalls = squad.Shortfalls
	}

	return resp
}

func formatPlayer(p models.EnrichedPlayer, clubs models.ClubDirectory) PlayerView {
	view := PlayerView{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.SecondName,
		Position:    string(p.Position),
		Price:       round2(p.Price()),
		Points:      round2(p.Latest.TotalPoints),
		AvgPoints:   round2(p.AverageTotalPoints),
		RoundThreat: round2(p.Latest.Threat),
	}

	name, ok := clubs.Name(p.ClubID)
	if !ok {
		logger.WithService("presenter").WithFields(logrus.Fields{
			"player_id": p.ID,
			"club_id":   p.ClubID,
		}).Warn("Unknown club id, team name left empty")
	}
	view.TeamName = name

	if s := p.Stats; s != nil {
		view.Minutes = s.MinutesPlayed
		view.Starts = s.TotalStarts
		view.Ownership = s.AvgSelected
		view.Goals = s.GoalsScored
		view.Assists = s.Assists
		view.XGI = round2(floatOrZero(s.TotalXGI))
		view.XGC = round2(floatOrZero(s.TotalXGC))
		view.Threat = round2(floatOrZero(s.AvgThreat))
		view.CleanSheets = intOrZero(s.CleanSheets)
		view.GoalsConceded = intOrZero(s.GoalsConceded)
	}

	return view
}

func round2(v float64) float64 {
	return scalar.Round(v, 2)
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
