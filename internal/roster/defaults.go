package roster

import "github.com/ericogr/ninja-arena/internal/game"

// DefaultFighters is the built-in roster used when no config file is given.
func DefaultFighters() []game.FighterDefinition {
	return []game.FighterDefinition{
		{ID: "lloyd", Name: "Lloyd (Green Ninja)", Short: "LL", MaxHP: 1400, AttackMin: 90, AttackMax: 150, SpecialMultiplier: 2.5, SpecialRequired: 6},
		{ID: "kai", Name: "Kai (Fire Ninja)", Short: "KA", MaxHP: 1300, AttackMin: 95, AttackMax: 160, SpecialMultiplier: 2.2, SpecialRequired: 5},
		{ID: "jay", Name: "Jay (Lightning Ninja)", Short: "JA", MaxHP: 1250, AttackMin: 90, AttackMax: 155, SpecialMultiplier: 2.3, SpecialRequired: 4},
		{ID: "cole", Name: "Cole (Earth Ninja)", Short: "CO", MaxHP: 1400, AttackMin: 85, AttackMax: 145, SpecialMultiplier: 2.6, SpecialRequired: 7},
		{ID: "zane", Name: "Zane (Ice / Tech Ninja)", Short: "ZA", MaxHP: 1200, AttackMin: 100, AttackMax: 170, SpecialMultiplier: 2.0, SpecialRequired: 5},
		{ID: "nya", Name: "Nya (Water Ninja)", Short: "NY", MaxHP: 1150, AttackMin: 90, AttackMax: 150, SpecialMultiplier: 2.4, SpecialRequired: 4},
		{ID: "wu", Name: "Sensei Wu", Short: "WU", MaxHP: 1350, AttackMin: 80, AttackMax: 140, SpecialMultiplier: 2.5, SpecialRequired: 6},
		{ID: "garmadon", Name: "Lord Garmadon", Short: "GA", MaxHP: 1400, AttackMin: 110, AttackMax: 180, SpecialMultiplier: 1.8, SpecialRequired: 9},
		{ID: "pythor", Name: "Pythor (Serpentine)", Short: "PY", MaxHP: 1000, AttackMin: 120, AttackMax: 200, SpecialMultiplier: 1.6, SpecialRequired: 8},
		{ID: "morro", Name: "Morro (Ghost)", Short: "MO", MaxHP: 1100, AttackMin: 100, AttackMax: 170, SpecialMultiplier: 2.1, SpecialRequired: 5},
	}
}

func DefaultWeapons() []game.Weapon {
	return []game.Weapon{
		{ID: "katana", Name: "Katana", MinBonus: 4, MaxBonus: 6, BasePrice: 60},
		{ID: "nunchucks", Name: "Nunchucks", MinBonus: 3, MaxBonus: 5, BasePrice: 45},
		{ID: "shurikens", Name: "Shurikens", MinBonus: 2, MaxBonus: 8, BasePrice: 50},
		{ID: "scythe", Name: "Scythe of Quakes", MinBonus: 6, MaxBonus: 9, BasePrice: 90},
	}
}

// Default returns a catalog built from the built-in tables.
func Default() *Catalog {
	c, err := New(DefaultFighters(), DefaultWeapons(), game.DefaultMaxUpgradeLevel)
	if err != nil {
		panic("roster: invalid built-in tables: " + err.Error())
	}
	return c
}
