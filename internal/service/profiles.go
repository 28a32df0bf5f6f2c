package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ericogr/ninja-arena/internal/constants"
	"github.com/ericogr/ninja-arena/internal/engine"
	"github.com/ericogr/ninja-arena/internal/game"
	"github.com/ericogr/ninja-arena/internal/logging"
	"github.com/ericogr/ninja-arena/internal/progression"
)

const maxDisplayNameLen = 32

// CreateProfile stores a fresh profile for accountID.
func (a *Arena) CreateProfile(accountID, displayName string) (*game.Profile, error) {
	name := strings.TrimSpace(displayName)
	if name == "" || utf8.RuneCountInString(name) > maxDisplayNameLen {
		return nil, ErrInvalidName
	}
	unlock := a.locks.Lock(accountID)
	defer unlock()

	p := game.NewProfile(accountID, name)
	if err := a.repo.SaveProfile(p); err != nil {
		return nil, err
	}
	logging.Info("profile created", logging.Fields{constants.LogFieldAccountID: accountID})
	return p, nil
}

func (a *Arena) GetProfile(accountID string) (*game.Profile, error) {
	return a.loadProfile(accountID)
}

// SetDifficulty persists the difficulty used by the account's next battles.
func (a *Arena) SetDifficulty(accountID string, difficulty int) (*game.Profile, error) {
	if err := engine.ValidateDifficulty(difficulty); err != nil {
		return nil, err
	}
	var out *game.Profile
	err := a.updateProfile(accountID, func(p *game.Profile) error {
		p.Difficulty = difficulty
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Purchase buys one weapon upgrade level for a character.
func (a *Arena) Purchase(accountID, characterID, weaponID string) (progression.Receipt, error) {
	var receipt progression.Receipt
	err := a.updateProfile(accountID, func(p *game.Profile) error {
		r, err := a.shop.Purchase(p, characterID, weaponID)
		if err != nil {
			return err
		}
		receipt = r
		return nil
	})
	if err != nil {
		return progression.Receipt{}, err
	}
	logging.Info("upgrade purchased", logging.Fields{
		constants.LogFieldAccountID: accountID,
		constants.LogFieldFighter:   receipt.CharacterID,
		constants.LogFieldCoins:     receipt.Cost,
	})
	for _, id := range receipt.NewAchievements {
		logging.Info("achievement unlocked", logging.Fields{constants.LogFieldAccountID: accountID, constants.LogFieldAchievement: id})
	}
	return receipt, nil
}

// updateProfile runs fn on a fresh copy of the profile under the account
// lock and saves the result. Nothing is saved when fn fails.
func (a *Arena) updateProfile(accountID string, fn func(p *game.Profile) error) error {
	unlock := a.locks.Lock(accountID)
	defer unlock()

	p, err := a.fetchProfile(accountID)
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		return err
	}
	if err := a.repo.SaveProfile(p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
