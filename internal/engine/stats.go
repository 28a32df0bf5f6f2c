package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/ericogr/ninja-arena/internal/game"
	"github.com/ericogr/ninja-arena/internal/keys"
)

// MaxDifficulty is the highest difficulty level a battle accepts.
const MaxDifficulty = 10

const (
	attackScalePerLevel = 0.07
	hpScalePerLevel     = 0.02
)

var ErrInvalidDifficulty = errors.New("invalid difficulty")

// EffectiveFighter is a fighter definition after upgrades and/or difficulty
// scaling. Each side of a battle gets its own value.
type EffectiveFighter struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	MaxHP             int     `json:"max_hp"`
	AttackMin         int     `json:"attack_min"`
	AttackMax         int     `json:"attack_max"`
	SpecialMultiplier float64 `json:"special_multiplier"`
	SpecialRequired   int     `json:"special_required"`
}

// ValidateDifficulty returns ErrInvalidDifficulty unless 1 <= d <= MaxDifficulty.
func ValidateDifficulty(d int) error {
	if d < 1 || d > MaxDifficulty {
		return fmt.Errorf("%w: %d (allowed 1..%d)", ErrInvalidDifficulty, d, MaxDifficulty)
	}
	return nil
}

// ResolveStats adds the per-level weapon bonuses in levels (weapon id ->
// level) to def's attack range. Levels are clamped to [0, armory.MaxLevel]
// and unknown weapons contribute nothing.
func ResolveStats(def game.FighterDefinition, levels map[string]int, armory game.Armory) EffectiveFighter {
	ef := EffectiveFighter{
		ID:                def.ID,
		Name:              def.Name,
		MaxHP:             def.MaxHP,
		AttackMin:         def.AttackMin,
		AttackMax:         def.AttackMax,
		SpecialMultiplier: def.SpecialMultiplier,
		SpecialRequired:   def.SpecialRequired,
	}
	maxLevel := armory.MaxLevel
	if maxLevel <= 0 {
		maxLevel = game.DefaultMaxUpgradeLevel
	}
	for weaponID, lvl := range levels {
		w, ok := armory.Weapon(keys.Normalize(weaponID))
		if !ok {
			continue
		}
		lvl = clampInt(lvl, 0, maxLevel)
		ef.AttackMin += w.MinBonus * lvl
		ef.AttackMax += w.MaxBonus * lvl
	}
	return ef
}

// ScaleForDifficulty applies the opponent difficulty factor. D=1 returns f
// unchanged.
func ScaleForDifficulty(f EffectiveFighter, d int) (EffectiveFighter, error) {
	if err := ValidateDifficulty(d); err != nil {
		return f, err
	}
	atk := 1 + float64(d-1)*attackScalePerLevel
	hp := 1 + float64(d-1)*hpScalePerLevel
	f.AttackMin = maxInt(1, roundInt(float64(f.AttackMin)*atk))
	f.AttackMax = maxInt(1, roundInt(float64(f.AttackMax)*atk))
	f.MaxHP = maxInt(1, roundInt(float64(f.MaxHP)*hp))
	return f, nil
}

func roundInt(v float64) int { return int(math.Round(v)) }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
