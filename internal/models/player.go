package models

import (
	"fmt"
	"math"
	"strings"
)

// Position is the canonical playing position of a player
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

// AllPositions lists positions in squad-building order
var AllPositions = []Position{
	PositionGoalkeeper,
	PositionDefender,
	PositionMidfielder,
	PositionForward,
}

var positionByCode = map[int]Position{
	1: PositionGoalkeeper,
	2: PositionDefender,
	3: PositionMidfielder,
	4: PositionForward,
}

// ParsePositionCode maps the FPL element_type code (1-4) to a Position
func ParsePositionCode(code int) (Position, error) {
	pos, ok := positionByCode[code]
	if !ok {
		return "", fmt.Errorf("unknown position code %d", code)
	}
	return pos, nil
}

// ParsePosition parses a position label such as "DEF" or "gkp"
func ParsePosition(label string) (Position, error) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "GK", "GKP":
		return PositionGoalkeeper, nil
	case "DEF":
		return PositionDefender, nil
	case "MID":
		return PositionMidfielder, nil
	case "FWD":
		return PositionForward, nil
	}
	return "", fmt.Errorf("unknown position %q", label)
}

// IsAttacking reports whether xGI and threat stats apply to the position
func (p Position) IsAttacking() bool {
	return p == PositionMidfielder || p == PositionForward
}

// IsDefensive reports whether xGC, goals conceded and clean sheets apply
func (p Position) IsDefensive() bool {
	return p == PositionDefender || p == PositionGoalkeeper
}

// PlayerRecord is one player's line for a single gameweek
type PlayerRecord struct {
	PlayerID                 int     `json:"id"`
	Round                    int     `json:"round"`
	TotalPoints              float64 `json:"total_points"`
	Value                    float64 `json:"value"`
	Minutes                  int     `json:"minutes"`
	Starts                   int     `json:"starts"`
	Selected                 int     `json:"selected"`
	GoalsScored              int     `json:"goals_scored"`
	Assists                  int     `json:"assists"`
	ExpectedGoalInvolvements float64 `json:"expected_goal_involvements"`
	Threat                   float64 `json:"threat"`
	ExpectedGoalsConceded    float64 `json:"expected_goals_conceded"`
	GoalsConceded            int     `json:"goals_conceded"`
	CleanSheets              int     `json:"clean_sheets"`
}

// PlayerMeta holds the static attributes of a player for the season
type PlayerMeta struct {
	ID         int      `json:"id"`
	FirstName  string   `json:"first_name"`
	SecondName string   `json:"second_name"`
	Position   Position `json:"element_type"`
	ClubID     int      `json:"team"`
}

// FullName joins first and second name
func (m PlayerMeta) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.SecondName)
}

// ClubMeta maps a club id to its display name
type ClubMeta struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ClubDirectory is a lookup of club id to club name
type ClubDirectory map[int]string

// NewClubDirectory indexes clubs by id; a later row wins on a repeated id
func NewClubDirectory(clubs []ClubMeta) ClubDirectory {
	d := make(ClubDirectory, len(clubs))
	for _, c := range clubs {
		d[c.ID] = c.Name
	}
	return d
}

// Name returns the club name and whether the id is known
func (d ClubDirectory) Name(clubID int) (string, bool) {
	name, ok := d[clubID]
	return name, ok
}

// GameweekRow is a gameweek record annotated with the player's metadata
type GameweekRow struct {
	PlayerRecord
	Meta PlayerMeta `json:"meta"`
}

// TrailingStats aggregates a player's recent gameweeks. Position-specific
// fields are nil when they do not apply to the player's position.
type TrailingStats struct {
	MinutesPlayed int      `json:"minutes_played"`
	TotalStarts   int      `json:"total_starts"`
	AvgSelected   int      `json:"avg_selected"`
	GoalsScored   int      `json:"goals_scored"`
	Assists       int      `json:"assists"`
	TotalXGI      *float64 `json:"total_xgi,omitempty"`
	AvgThreat     *float64 `json:"avg_threat,omitempty"`
	TotalXGC      *float64 `json:"total_xgc,omitempty"`
	GoalsConceded *int     `json:"goals_conceded,omitempty"`
	CleanSheets   *int     `json:"clean_sheets,omitempty"`
}

// EnrichedPlayer is one player at the latest gameweek with form and trailing stats
type EnrichedPlayer struct {
	PlayerMeta
	Latest             PlayerRecord   `json:"latest"`
	AverageTotalPoints float64        `json:"average_total_points"`
	Stats              *TrailingStats `json:"stats,omitempty"`
}

// Price is the player's value at the latest gameweek
func (p EnrichedPlayer) Price() float64 {
	return p.Latest.Value
}

// ValueScore is form points per unit of price. ok is false when the price is
// not positive or the score is not a finite number.
func (p EnrichedPlayer) ValueScore() (score float64, ok bool) {
	if p.Latest.Value <= 0 {
		return 0, false
	}
	score = p.AverageTotalPoints / p.Latest.Value
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, false
	}
	return score, true
}
