package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/ericogr/ninja-arena/internal/keys"

	"gorm.io/gorm"
)

// DefaultMaxUpgradeLevel is the highest level a weapon upgrade can reach
// unless the config file overrides it.
const DefaultMaxUpgradeLevel = 5

// DefaultDifficulty is the difficulty assigned to new profiles.
const DefaultDifficulty = 1

var (
	ErrInvalidFighter = errors.New("invalid fighter definition")
	ErrInvalidWeapon  = errors.New("invalid weapon definition")
)

// FighterDefinition is an immutable roster entry.
type FighterDefinition struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Short string `json:"short,omitempty" yaml:"short"`

	MaxHP             int     `json:"max_hp" yaml:"max_hp"`
	AttackMin         int     `json:"attack_min" yaml:"attack_min"`
	AttackMax         int     `json:"attack_max" yaml:"attack_max"`
	SpecialMultiplier float64 `json:"special_multiplier" yaml:"special_multiplier"`
	// SpecialRequired is the number of normal attacks needed before the
	// special becomes usable.
	SpecialRequired int `json:"special_required" yaml:"special_required"`
}

// Validate checks the invariants the engine relies on.
func (f FighterDefinition) Validate() error {
	switch {
	case f.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidFighter)
	case f.MaxHP <= 0:
		return fmt.Errorf("%w: %s: max_hp must be positive", ErrInvalidFighter, f.ID)
	case f.AttackMin < 1:
		return fmt.Errorf("%w: %s: attack_min must be at least 1", ErrInvalidFighter, f.ID)
	case f.AttackMax < f.AttackMin:
		return fmt.Errorf("%w: %s: attack_max below attack_min", ErrInvalidFighter, f.ID)
	case f.SpecialMultiplier < 1:
		return fmt.Errorf("%w: %s: special_multiplier must be >= 1", ErrInvalidFighter, f.ID)
	case f.SpecialRequired < 1:
		return fmt.Errorf("%w: %s: special_required must be >= 1", ErrInvalidFighter, f.ID)
	}
	return nil
}

// Weapon grants fixed per-level bonuses to a fighter's attack range.
type Weapon struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	MinBonus  int    `json:"min_bonus" yaml:"min_bonus"`
	MaxBonus  int    `json:"max_bonus" yaml:"max_bonus"`
	BasePrice int    `json:"base_price" yaml:"base_price"`
}

func (w Weapon) Validate() error {
	switch {
	case w.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidWeapon)
	case w.MinBonus < 0 || w.MaxBonus < 0:
		return fmt.Errorf("%w: %s: bonuses must not be negative", ErrInvalidWeapon, w.ID)
	case w.BasePrice <= 0:
		return fmt.Errorf("%w: %s: base_price must be positive", ErrInvalidWeapon, w.ID)
	}
	return nil
}

// Armory is the weapon table plus the level cap shared by every weapon.
type Armory struct {
	Weapons  []Weapon `json:"weapons"`
	MaxLevel int      `json:"max_level"`
}

// Weapon returns the weapon with the given id.
func (a Armory) Weapon(id string) (Weapon, bool) {
	id = keys.Normalize(id)
	for _, w := range a.Weapons {
		if w.ID == id {
			return w, true
		}
	}
	return Weapon{}, false
}

// UpgradeLedger maps keys.LedgerKey(character, weapon) to a level.
type UpgradeLedger map[string]int

// Level returns the stored level, 0 when absent.
func (l UpgradeLedger) Level(characterID, weaponID string) int {
	return l[keys.LedgerKey(characterID, weaponID)]
}

// LevelsFor returns the weapon id -> level view scoped to one character.
func (l UpgradeLedger) LevelsFor(characterID string) map[string]int {
	want := keys.Normalize(characterID)
	out := make(map[string]int)
	for k, lvl := range l {
		char, weapon, ok := keys.SplitLedgerKey(k)
		if !ok || char != want {
			continue
		}
		out[weapon] = lvl
	}
	return out
}

// Stats is the cumulative record evaluated by achievement rules.
type Stats struct {
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	WinStreak     int `json:"win_streak"`
	BestStreak    int `json:"best_streak"`
	TotalBattles  int `json:"total_battles"`
	SpecialUses   int `json:"special_uses"`
	Purchases     int `json:"purchases"`
	HighestDamage int `json:"highest_damage"`
	// Defeated is the set of opponent ids beaten at least once.
	Defeated map[string]bool `json:"defeated" gorm:"serializer:json"`
	// WinsByDifficulty counts wins per difficulty level.
	WinsByDifficulty map[int]int `json:"wins_by_difficulty" gorm:"serializer:json"`
}

// Profile is the durable per-account record. The battle core mutates it;
// storage persists it.
type Profile struct {
	gorm.Model    `json:"-"`
	AccountID     string        `json:"account_id" gorm:"uniqueIndex"`
	DisplayName   string        `json:"display_name"`
	Coins         int           `json:"coins"`
	LifetimeCoins int           `json:"lifetime_coins"`
	Difficulty    int           `json:"difficulty"`
	Upgrades      UpgradeLedger `json:"upgrades" gorm:"serializer:json"`
	Stats         Stats         `json:"stats" gorm:"embedded;embeddedPrefix:stats_"`
	// Achievements maps achievement id to its unlock time (UTC).
	Achievements map[string]time.Time `json:"achievements" gorm:"serializer:json"`
}

// Store profiles in a dedicated table
func (Profile) TableName() string { return "player_profiles" }

// NewProfile returns an empty profile with initialized collections.
func NewProfile(accountID, displayName string) *Profile {
	p := &Profile{AccountID: accountID, DisplayName: displayName, Difficulty: DefaultDifficulty}
	p.EnsureCollections()
	return p
}

// EnsureCollections allocates nil maps so callers can write into them.
func (p *Profile) EnsureCollections() {
	if p.Upgrades == nil {
		p.Upgrades = UpgradeLedger{}
	}
	if p.Achievements == nil {
		p.Achievements = map[string]time.Time{}
	}
	if p.Stats.Defeated == nil {
		p.Stats.Defeated = map[string]bool{}
	}
	if p.Stats.WinsByDifficulty == nil {
		p.Stats.WinsByDifficulty = map[int]int{}
	}
}

// Clone returns a deep copy so callers sharing a loaded profile never
// write into each other's maps.
func (p *Profile) Clone() *Profile {
	c := *p
	c.Upgrades = make(UpgradeLedger, len(p.Upgrades))
	for k, v := range p.Upgrades {
		c.Upgrades[k] = v
	}
	c.Achievements = make(map[string]time.Time, len(p.Achievements))
	for k, v := range p.Achievements {
		c.Achievements[k] = v
	}
	c.Stats.Defeated = make(map[string]bool, len(p.Stats.Defeated))
	for k, v := range p.Stats.Defeated {
		c.Stats.Defeated[k] = v
	}
	c.Stats.WinsByDifficulty = make(map[int]int, len(p.Stats.WinsByDifficulty))
	for k, v := range p.Stats.WinsByDifficulty {
		c.Stats.WinsByDifficulty[k] = v
	}
	return &c
}

// HasAchievement reports whether id is already unlocked.
func (p *Profile) HasAchievement(id string) bool {
	_, ok := p.Achievements[id]
	return ok
}

// AddCoins credits both the balance and the lifetime total.
func (p *Profile) AddCoins(n int) {
	p.Coins += n
	p.LifetimeCoins += n
}

// BattleRecord is the persisted summary of one finished battle.
type BattleRecord struct {
	gorm.Model     `json:"-"`
	BattleID       string    `json:"battle_id" gorm:"uniqueIndex"`
	AccountID      string    `json:"account_id" gorm:"index"`
	FighterID      string    `json:"fighter_id"`
	OpponentID     string    `json:"opponent_id"`
	Difficulty     int       `json:"difficulty"`
	Won            bool      `json:"won"`
	CoinDelta      int       `json:"coin_delta"`
	Turns          int       `json:"turns"`
	HighestHit     int       `json:"highest_hit"`
	PlayerSpecials int       `json:"player_specials"`
	FinishedAt     time.Time `json:"finished_at"`
}
