package optimizer

import (
	"errors"
	"fmt"

	"github.com/jstittsworth/fplmate/internal/models"
)

var (
	ErrExceededBudget        = errors.New("squad exceeds budget")
	ErrExceededClubLimit     = errors.New("squad exceeds players per club limit")
	ErrExceededPositionCount = errors.New("squad exceeds position count")
	ErrDuplicatePlayer       = errors.New("player selected more than once")
)

// ValidateSquad recomputes spend and counters from the squad's players and
// checks them against the constraints it was built with.
func ValidateSquad(squad *models.SelectedSquad, config SelectConfig) error {
	if squad == nil {
		return fmt.Errorf("%w: squad is nil", ErrInvalidConstraints)
	}

	spend := 0.0
	seen := make(map[int]bool, len(squad.Players))
	clubs := make(map[int]int)
	positions := make(map[models.Position]int)

	for _, p := range squad.Players {
		if seen[p.ID] {
			return fmt.Errorf("%w: player %d", ErrDuplicatePlayer, p.ID)
		}
		seen[p.ID] = true
		spend += p.Price()
		clubs[p.ClubID]++
		positions[p.Position]++
	}

	if spend > config.Budget {
		return fmt.Errorf("%w: spent %.1f of %.1f", ErrExceededBudget, spend, config.Budget)
	}
	for club, count := range clubs {
		if count > config.MaxPlayersPerClub {
			return fmt.Errorf("%w: club %d has %d players, limit %d", ErrExceededClubLimit, club, count, config.MaxPlayersPerClub)
		}
	}
	for pos, count := range positions {
		if required := config.Structure.Required(pos); count > required {
			return fmt.Errorf("%w: %s has %d players, required %d", ErrExceededPositionCount, pos, count, required)
		}
	}

	return nil
}
