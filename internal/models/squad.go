package models

import (
	"fmt"
	"strconv"
	"strings"
)

// RosterSlot is the number of players required at one position
type RosterSlot struct {
	Position Position `json:"position"`
	Count    int      `json:"count"`
}

// TeamStructure is the ordered list of roster slots to fill
type TeamStructure []RosterSlot

// DefaultTeamStructure is the standard 15-man FPL squad
func DefaultTeamStructure() TeamStructure {
	return TeamStructure{
		{Position: PositionGoalkeeper, Count: 2},
		{Position: PositionDefender, Count: 5},
		{Position: PositionMidfielder, Count: 5},
		{Position: PositionForward, Count: 3},
	}
}

// ParseTeamStructure parses "GK:2,DEF:5,MID:5,FWD:3" keeping the given order
func ParseTeamStructure(s string) (TeamStructure, error) {
	var structure TeamStructure
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		label, countStr, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Errorf("invalid roster slot %q: expected POSITION:COUNT", part)
		}
		pos, err := ParsePosition(label)
		if err != nil {
			return nil, err
		}
		count, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil {
			return nil, fmt.Errorf("invalid count for %s: %w", pos, err)
		}
		structure = append(structure, RosterSlot{Position: pos, Count: count})
	}

	if len(structure) == 0 {
		return nil, fmt.Errorf("team structure is empty")
	}
	return structure, nil
}

// TotalPlayers is the squad size the structure asks for
func (ts TeamStructure) TotalPlayers() int {
	total := 0
	for _, slot := range ts {
		total += slot.Count
	}
	return total
}

// Required returns the slot count for a position, 0 if absent
func (ts TeamStructure) Required(pos Position) int {
	for _, slot := range ts {
		if slot.Position == pos {
			return slot.Count
		}
	}
	return 0
}

func (ts TeamStructure) String() string {
	parts := make([]string, 0, len(ts))
	for _, slot := range ts {
		parts = append(parts, fmt.Sprintf("%s:%d", slot.Position, slot.Count))
	}
	return strings.Join(parts, ",")
}

// SquadStatus tells whether every roster slot was filled
type SquadStatus string

const (
	SquadComplete SquadStatus = "complete"
	SquadPartial  SquadStatus = "partial"
)

// SelectedSquad is the outcome of one selection run
type SelectedSquad struct {
	Players        []EnrichedPlayer `json:"players"`
	TotalSpend     float64          `json:"total_spend"`
	ClubCounts     map[int]int      `json:"club_counts"`
	PositionCounts map[Position]int `json:"position_counts"`
	Status         SquadStatus      `json:"status"`
	Shortfalls     map[Position]int `json:"shortfalls,omitempty"`
}

// NewSelectedSquad returns an empty squad ready for selection
func NewSelectedSquad() *SelectedSquad {
	return &SelectedSquad{
		Players:        make([]EnrichedPlayer, 0, 15),
		ClubCounts:     make(map[int]int),
		PositionCounts: make(map[Position]int),
		Status:         SquadComplete,
	}
}

// Add appends a player and updates spend and counters
func (s *SelectedSquad) Add(player EnrichedPlayer) {
	s.Players = append(s.Players, player)
	s.TotalSpend += player.Price()
	s.ClubCounts[player.ClubID]++
	s.PositionCounts[player.Position]++
}

// Has reports whether the player id is already in the squad
func (s *SelectedSquad) Has(playerID int) bool {
	for _, p := range s.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// MarkShortfall records unfilled slots for a position
func (s *SelectedSquad) MarkShortfall(pos Position, missing int) {
	if missing <= 0 {
		return
	}
	if s.Shortfalls == nil {
		s.Shortfalls = make(map[Position]int)
	}
	s.Shortfalls[pos] += missing
	s.Status = SquadPartial
}

// TotalAveragePoints sums the form points of the selected players
func (s *SelectedSquad) TotalAveragePoints() float64 {
	total := 0.0
	for _, p := range s.Players {
		total += p.AverageTotalPoints
	}
	return total
}
