package presenter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/fplmate/internal/models"
)

func floatPtr(v float64) *float64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}

var clubs = models.ClubDirectory{1: "Arsenal", 12: "Liverpool"}

func midfielder() models.EnrichedPlayer {
	return models.EnrichedPlayer{
		PlayerMeta:         models.PlayerMeta{ID: 328, FirstName: "Mohamed", SecondName: "Salah", Position: models.PositionMidfielder, ClubID: 12},
		Latest:             models.PlayerRecord{PlayerID: 328, Round: 10, TotalPoints: 14, Value: 131, Threat: 58.456},
		AverageTotalPoints: 9.456,
		Stats: &models.TrailingStats{
			MinutesPlayed: 540,
			TotalStarts:   6,
			AvgSelected:   6543210,
			GoalsScored:   5,
			Assists:       3,
			TotalXGI:      floatPtr(6.789),
			AvgThreat:     floatPtr(41.236),
		},
	}
}

func keeper() models.EnrichedPlayer {
	return models.EnrichedPlayer{
		PlayerMeta:         models.PlayerMeta{ID: 1, FirstName: "David", SecondName: "Raya", Position: models.PositionGoalkeeper, ClubID: 1},
		Latest:             models.PlayerRecord{PlayerID: 1, Round: 10, TotalPoints: 6, Value: 55},
		AverageTotalPoints: 4.2,
		Stats: &models.TrailingStats{
			MinutesPlayed: 540,
			TotalXGC:      floatPtr(7.1),
			GoalsConceded: intPtr(5),
			CleanSheets:   intPtr(2),
		},
	}
}

func TestFormatSquad(t *testing.T) {
	squad := models.NewSelectedSquad()
	squad.Add(keeper())
	squad.Add(midfielder())

	resp := FormatSquad(squad, clubs)

	require.Len(t, resp.Team, 2)
	assert.Equal(t, 13.66, resp.TotalPoints)
	assert.Equal(t, 186.0, resp.TotalSpend)
	assert.Equal(t, models.SquadComplete, resp.Status)
	assert.Nil(t, resp.Shortfalls)

	mid := resp.Team[1]
	assert.Equal(t, PlayerView{
		ID: 328, FirstName: "Mohamed", LastName: "Salah", Position: "MID",
		Price: 131, Points: 14, AvgPoints: 9.46, RoundThreat: 58.46,
		Minutes: 540, Starts: 6, Ownership: 6543210, Goals: 5, Assists: 3,
		XGI: 6.79, Threat: 41.24, TeamName: "Liverpool",
	}, mid)

	gk := resp.Team[0]
	assert.Equal(t, "Arsenal", gk.TeamName)
	assert.Equal(t, 7.1, gk.XGC)
	assert.Equal(t, 2, gk.CleanSheets)
	assert.Equal(t, 5, gk.GoalsConceded)
}

func TestFormatSquad_NilStatsBecomeZero(t *testing.T) {
	p := midfielder()
	p.Stats = &models.TrailingStats{MinutesPlayed: 90}
	bare := keeper()
	bare.Stats = nil

	squad := models.NewSelectedSquad()
	squad.Add(p)
	squad.Add(bare)

	body, err := json.Marshal(FormatSquad(squad, clubs))
	require.NoError(t, err)

	var decoded struct {
		Team []map[string]interface{} `json:"team"`
	}
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Len(t, decoded.Team, 2)

	for _, view := range decoded.Team {
		for _, key := range []string{"XGI", "XGC", "Threat", "CleanSheets", "GoalsConceded", "Minutes", "Ownership"} {
			require.Contains(t, view, key)
			assert.NotNil(t, view[key], key)
		}
	}
	assert.Equal(t, 0.0, decoded.Team[0]["XGC"])
	assert.Equal(t, 0.0, decoded.Team[1]["Minutes"])
}

func TestFormatSquad_ExternalLabels(t *testing.T) {
	squad := models.NewSelectedSquad()
	squad.Add(midfielder())

	body, err := json.Marshal(FormatSquad(squad, clubs))
	require.NoError(t, err)

	var decoded struct {
		Team []map[string]interface{} `json:"team"`
	}
	require.NoError(t, json.Unmarshal(body, &decoded))
	view := decoded.Team[0]

	for _, key := range []string{"id", "firstName", "lastName", "position", "price", "Points", "Avg Points", "threat", "teamName"} {
		assert.Contains(t, view, key)
	}
	for _, key := range []string{"round", "value", "team", "teamId", "selected", "points_per_value"} {
		assert.NotContains(t, view, key)
	}
}

func TestFormatSquad_UnknownClub(t *testing.T) {
	p := midfielder()
	p.ClubID = 99
	squad := models.NewSelectedSquad()
	squad.Add(p)

	resp := FormatSquad(squad, clubs)
	assert.Equal(t, "", resp.Team[0].TeamName)
}

func TestFormatSquad_Partial(t *testing.T) {
	squad := models.NewSelectedSquad()
	squad.Add(keeper())
	squad.MarkShortfall(models.PositionForward, 2)

	resp := FormatSquad(squad, clubs)
	assert.Equal(t, models.SquadPartial, resp.Status)
	assert.Equal(t, map[models.Position]int{models.PositionForward: 2}, resp.Shortfalls)
}

func TestFormatSquad_Nil(t *testing.T) {
	resp := FormatSquad(nil, clubs)
	assert.NotNil(t, resp.Team)
	assert.Empty(t, resp.Team)
	assert.Zero(t, resp.TotalSpend)
}
