package optimizer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jstittsworth/fplmate/internal/models"
)

var ErrInvalidConstraints = errors.New("invalid squad constraints")

type SelectConfig struct {
	Structure         models.TeamStructure `json:"team_structure"`
	MaxPlayersPerClub int                  `json:"max_players_per_team"`
	Budget            float64              `json:"max_spend"`
}

// Validate checks the constraints before any selection happens
func (c SelectConfig) Validate() error {
	if len(c.Structure) == 0 {
		return fmt.Errorf("%w: team structure is empty", ErrInvalidConstraints)
	}
	if c.MaxPlayersPerClub < 1 {
		return fmt.Errorf("%w: max players per club must be at least 1, got %d", ErrInvalidConstraints, c.MaxPlayersPerClub)
	}
	if c.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative, got %.1f", ErrInvalidConstraints, c.Budget)
	}

	seen := make(map[models.Position]bool, len(c.Structure))
	for _, slot := range c.Structure {
		if pos, err := models.ParsePosition(string(slot.Position)); err != nil || pos != slot.Position {
			return fmt.Errorf("%w: unknown position %q", ErrInvalidConstraints, slot.Position)
		}
		if slot.Count < 0 {
			return fmt.Errorf("%w: negative count %d for %s", ErrInvalidConstraints, slot.Count, slot.Position)
		}
		if seen[slot.Position] {
			return fmt.Errorf("%w: position %s listed twice", ErrInvalidConstraints, slot.Position)
		}
		seen[slot.Position] = true
	}
	return nil
}

// SelectSquad greedily fills each roster slot in order with the best value
// (form points per unit of price) candidates that still fit the remaining
// budget and club cap. Spend and club counts carry over from one position to
// the next. Nothing is revisited once skipped, so the result is not a global
// optimum. A position whose pool runs dry is recorded as a shortfall and the
// squad is marked partial.
func SelectSquad(players []models.EnrichedPlayer, config SelectConfig) (*models.SelectedSquad, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	squad := models.NewSelectedSquad()
	playersByPosition := organizeByPosition(players)

	for _, slot := range config.Structure {
		selected := 0
		for _, candidate := range playersByPosition[slot.Position] {
			if selected == slot.Count {
				break
			}
			if !fits(squad, candidate, config) {
				continue
			}
			squad.Add(candidate)
			selected++
		}
		squad.MarkShortfall(slot.Position, slot.Count-selected)
	}

	return squad, nil
}

// fits reports whether the candidate can join the squad as it stands
func fits(squad *models.SelectedSquad, candidate models.EnrichedPlayer, config SelectConfig) bool {
	if squad.Has(candidate.ID) {
		return false
	}
	if squad.ClubCounts[candidate.ClubID] >= config.MaxPlayersPerClub {
		return false
	}
	return squad.TotalSpend+candidate.Price() <= config.Budget
}

// organizeByPosition groups eligible players by position, best value first.
// Equal value scores fall back to ascending player id so the order never
// depends on input order. Players without a positive price or a finite
// value score are dropped.
func organizeByPosition(players []models.EnrichedPlayer) map[models.Position][]models.EnrichedPlayer {
	byPosition := make(map[models.Position][]models.EnrichedPlayer)
	for _, player := range players {
		if _, ok := player.ValueScore(); !ok {
			continue
		}
		byPosition[player.Position] = append(byPosition[player.Position], player)
	}

	for position := range byPosition {
		candidates := byPosition[position]
		sort.Slice(candidates, func(i, j int) bool {
			valueI, _ := candidates[i].ValueScore()
			valueJ, _ := candidates[j].ValueScore()
			if valueI != valueJ {
				return valueI > valueJ
			}
			return candidates[i].ID < candidates[j].ID
		})
	}

	return byPosition
}
