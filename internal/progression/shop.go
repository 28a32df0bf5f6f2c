package progression

import (
	"errors"
	"fmt"

	"github.com/ericogr/ninja-arena/internal/game"
	"github.com/ericogr/ninja-arena/internal/keys"
	"github.com/ericogr/ninja-arena/internal/roster"
)

var (
	ErrUnknownFighter    = errors.New("unknown fighter")
	ErrUnknownWeapon     = errors.New("unknown weapon")
	ErrMaxLevel          = errors.New("weapon already at max level")
	ErrInsufficientCoins = errors.New("insufficient coins")
)

// Shop sells weapon upgrades for a specific character.
type Shop struct {
	Catalog   *roster.Catalog
	Evaluator *Evaluator
}

// Receipt describes a completed purchase.
type Receipt struct {
	CharacterID     string   `json:"character_id"`
	WeaponID        string   `json:"weapon_id"`
	Level           int      `json:"level"`
	Cost            int      `json:"cost"`
	Coins           int      `json:"coins"`
	NewAchievements []string `json:"new_achievements"`
}

// Price returns the cost of raising weapon from its current level, which is
// BasePrice x (level+1).
func Price(w game.Weapon, currentLevel int) int {
	return w.BasePrice * (currentLevel + 1)
}

// Purchase debits the price, bumps the ledger level and re-evaluates
// achievements. On error the profile is not modified.
func (s *Shop) Purchase(p *game.Profile, characterID, weaponID string) (Receipt, error) {
	char, err := s.Catalog.Get(characterID)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %q", ErrUnknownFighter, characterID)
	}
	w, err := s.Catalog.Weapon(weaponID)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %q", ErrUnknownWeapon, weaponID)
	}
	p.EnsureCollections()
	level := p.Upgrades.Level(char.ID, w.ID)
	if level >= s.Catalog.MaxLevel() {
		return Receipt{}, ErrMaxLevel
	}
	cost := Price(w, level)
	if p.Coins < cost {
		return Receipt{}, fmt.Errorf("%w: need %d, have %d", ErrInsufficientCoins, cost, p.Coins)
	}

	p.Coins -= cost
	p.Upgrades[keys.LedgerKey(char.ID, w.ID)] = level + 1
	p.Stats.Purchases++
	return Receipt{
		CharacterID:     char.ID,
		WeaponID:        w.ID,
		Level:           level + 1,
		Cost:            cost,
		Coins:           p.Coins,
		NewAchievements: s.Evaluator.Evaluate(p),
	}, nil
}
