package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/jstittsworth/fplmate/internal/models"
)

// GameweekFile is the per-player file inside each name_id folder
const GameweekFile = "gw.csv"

var metaColumns = []string{"id", "team", "element_type", "first_name", "second_name"}

var clubColumns = []string{"id", "name"}

var gameweekColumns = []string{
	"total_points", "value", "round", "minutes", "starts", "selected",
	"goals_scored", "assists", "expected_goal_involvements", "threat",
	"expected_goals_conceded", "goals_conceded", "clean_sheets",
}

// LoadPlayerMeta reads the season roster (players_raw.csv) keyed by player id
func LoadPlayerMeta(path string) (map[int]models.PlayerMeta, error) {
	t, err := readTable(path, metaColumns)
	if err != nil {
		return nil, err
	}

	meta := make(map[int]models.PlayerMeta, t.count())
	for i := 0; i < t.count(); i++ {
		id, err := t.requiredInteger(i, "id")
		if err != nil {
			return nil, err
		}
		club, err := t.requiredInteger(i, "team")
		if err != nil {
			return nil, err
		}
		code, err := t.requiredInteger(i, "element_type")
		if err != nil {
			return nil, err
		}
		pos, err := models.ParsePositionCode(code)
		if err != nil {
			return nil, &models.DataIntegrityError{
				Source:      path,
				PlayerID:    id,
				HasPlayerID: true,
				Column:      "element_type",
				Reason:      err.Error(),
			}
		}
		if _, dup := meta[id]; dup {
			return nil, &models.DataIntegrityError{
				Source:      path,
				PlayerID:    id,
				HasPlayerID: true,
				Reason:      "duplicate metadata row",
			}
		}

		meta[id] = models.PlayerMeta{
			ID:         id,
			FirstName:  t.str(i, "first_name"),
			SecondName: t.str(i, "second_name"),
			Position:   pos,
			ClubID:     club,
		}
	}

	return meta, nil
}

// LoadClubs reads teams.csv into a club directory
func LoadClubs(path string) (models.ClubDirectory, error) {
	t, err := readTable(path, clubColumns)
	if err != nil {
		return nil, err
	}

	clubs := make([]models.ClubMeta, 0, t.count())
	for i := 0; i < t.count(); i++ {
		id, err := t.requiredInteger(i, "id")
		if err != nil {
			return nil, err
		}
		clubs = append(clubs, models.ClubMeta{ID: id, Name: t.str(i, "name")})
	}
	return models.NewClubDirectory(clubs), nil
}

// LoadGameweeks reads one player's gw.csv. Every record is stamped with
// playerID since the file itself carries no id column.
func LoadGameweeks(path string, playerID int) ([]models.PlayerRecord, error) {
	t, err := readTable(path, gameweekColumns)
	if err != nil {
		return nil, err
	}

	records := make([]models.PlayerRecord, 0, t.count())
	for i := 0; i < t.count(); i++ {
		rec := models.PlayerRecord{PlayerID: playerID}

		// round and value key the snapshot and the price, so they may not be blank
		if rec.Round, err = t.requiredInteger(i, "round"); err != nil {
			return nil, err
		}
		price, err := t.requiredInteger(i, "value")
		if err != nil {
			return nil, err
		}
		rec.Value = float64(price)

		ints := []struct {
			col string
			dst *int
		}{
			{"minutes", &rec.Minutes},
			{"starts", &rec.Starts},
			{"selected", &rec.Selected},
			{"goals_scored", &rec.GoalsScored},
			{"assists", &rec.Assists},
			{"goals_conceded", &rec.GoalsConceded},
			{"clean_sheets", &rec.CleanSheets},
		}
		for _, f := range ints {
			if *f.dst, err = t.integer(i, f.col); err != nil {
				return nil, err
			}
		}

		floats := []struct {
			col string
			dst *float64
		}{
			{"total_points", &rec.TotalPoints},
			{"expected_goal_involvements", &rec.ExpectedGoalInvolvements},
			{"threat", &rec.Threat},
			{"expected_goals_conceded", &rec.ExpectedGoalsConceded},
		}
		for _, f := range floats {
			if *f.dst, err = t.number(i, f.col); err != nil {
				return nil, err
			}
		}

		records = append(records, rec)
	}
	return records, nil
}

// ParsePlayerFolder splits a "name_id" folder name on its last underscore.
// Names may themselves contain underscores ("Mohamed_Salah_328").
func ParsePlayerFolder(name string) (string, int, error) {
	idx := strings.LastIndex(name, "_")
	if idx < 0 {
		return "", 0, &models.DataIntegrityError{
			Source: name,
			Reason: "player folder name has no _id suffix",
		}
	}

	id, err := strconv.Atoi(name[idx+1:])
	if err != nil {
		return "", 0, &models.DataIntegrityError{
			Source: name,
			Reason: fmt.Sprintf("player folder id %q is not an integer", name[idx+1:]),
		}
	}

	return NormalizeName(name[:idx]), id, nil
}

// NormalizeName keeps letters, digits, spaces and underscores
func NormalizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' {
			return r
		}
		return -1
	}, name)
}
