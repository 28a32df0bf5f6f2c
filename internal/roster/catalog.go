package roster

// Package roster holds the read-only fighter and weapon tables consumed by
// the battle engine. A Catalog is immutable once constructed and safe for
// concurrent readers.

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/ericogr/ninja-arena/internal/game"
	"github.com/ericogr/ninja-arena/internal/keys"
)

var (
	ErrFighterNotFound = errors.New("fighter not found")
	ErrWeaponNotFound  = errors.New("weapon not found")
	ErrEmptyRoster     = errors.New("roster is empty")
	ErrDuplicateID     = errors.New("duplicate id")
	ErrNoOpponent      = errors.New("no opponent available")
)

type Catalog struct {
	fighters []game.FighterDefinition
	index    map[string]int
	armory   game.Armory
}

// New validates and indexes the given tables. Ids are normalized with
// keys.Normalize; a non-positive maxLevel falls back to
// game.DefaultMaxUpgradeLevel.
func New(fighters []game.FighterDefinition, weapons []game.Weapon, maxLevel int) (*Catalog, error) {
	if len(fighters) == 0 {
		return nil, ErrEmptyRoster
	}
	if maxLevel <= 0 {
		maxLevel = game.DefaultMaxUpgradeLevel
	}
	c := &Catalog{
		fighters: make([]game.FighterDefinition, 0, len(fighters)),
		index:    make(map[string]int, len(fighters)),
		armory:   game.Armory{MaxLevel: maxLevel, Weapons: make([]game.Weapon, 0, len(weapons))},
	}
	for _, f := range fighters {
		f.ID = keys.Normalize(f.ID)
		if err := f.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[f.ID]; dup {
			return nil, fmt.Errorf("%w: fighter %q", ErrDuplicateID, f.ID)
		}
		if f.Name == "" {
			f.Name = f.ID
		}
		c.index[f.ID] = len(c.fighters)
		c.fighters = append(c.fighters, f)
	}
	seen := make(map[string]struct{}, len(weapons))
	for _, w := range weapons {
		w.ID = keys.Normalize(w.ID)
		if err := w.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[w.ID]; dup {
			return nil, fmt.Errorf("%w: weapon %q", ErrDuplicateID, w.ID)
		}
		seen[w.ID] = struct{}{}
		if w.Name == "" {
			w.Name = w.ID
		}
		c.armory.Weapons = append(c.armory.Weapons, w)
	}
	return c, nil
}

// List returns the fighters in catalog order.
func (c *Catalog) List() []game.FighterDefinition {
	out := make([]game.FighterDefinition, len(c.fighters))
	copy(out, c.fighters)
	return out
}

func (c *Catalog) Get(id string) (game.FighterDefinition, error) {
	i, ok := c.index[keys.Normalize(id)]
	if !ok {
		return game.FighterDefinition{}, fmt.Errorf("%w: %q", ErrFighterNotFound, id)
	}
	return c.fighters[i], nil
}

// RandomOpponent picks uniformly among fighters whose id differs from
// excludeID.
func (c *Catalog) RandomOpponent(rng *rand.Rand, excludeID string) (game.FighterDefinition, error) {
	exclude := keys.Normalize(excludeID)
	pool := make([]game.FighterDefinition, 0, len(c.fighters))
	for _, f := range c.fighters {
		if f.ID != exclude {
			pool = append(pool, f)
		}
	}
	if len(pool) == 0 {
		return game.FighterDefinition{}, ErrNoOpponent
	}
	return pool[rng.Intn(len(pool))], nil
}

func (c *Catalog) Weapons() []game.Weapon {
	out := make([]game.Weapon, len(c.armory.Weapons))
	copy(out, c.armory.Weapons)
	return out
}

func (c *Catalog) Weapon(id string) (game.Weapon, error) {
	w, ok := c.armory.Weapon(id)
	if !ok {
		return game.Weapon{}, fmt.Errorf("%w: %q", ErrWeaponNotFound, id)
	}
	return w, nil
}

// Armory returns a copy of the weapon table with its level cap.
func (c *Catalog) Armory() game.Armory {
	return game.Armory{Weapons: c.Weapons(), MaxLevel: c.armory.MaxLevel}
}

func (c *Catalog) MaxLevel() int { return c.armory.MaxLevel }
