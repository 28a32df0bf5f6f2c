package storage

import (
	"errors"

	"github.com/ericogr/ninja-arena/internal/game"
)

// ErrProfileNotFound is returned when no profile exists for an account.
var ErrProfileNotFound = errors.New("profile not found")

type Repository interface {
	GetProfile(accountID string) (*game.Profile, error)
	// SaveProfile inserts or updates the profile keyed by AccountID.
	SaveProfile(p *game.Profile) error
	// SaveOutcome persists the profile and the battle record atomically.
	SaveOutcome(p *game.Profile, rec *game.BattleRecord) error
	// Leaderboard
	GetTopProfiles(limit int) ([]game.Profile, error)
	GetRecentBattles(accountID string, limit int) ([]game.BattleRecord, error)
}
