package progression

import "github.com/ericogr/ninja-arena/internal/game"

// Rule is one achievement: an id, display metadata and a predicate over the
// cumulative stats.
type Rule struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	Met func(s game.Stats) bool `json:"-"`
}

// Rules is the built-in achievement table, evaluated in order.
var Rules = []Rule{
	{ID: "first_blood", Name: "First Blood", Description: "Win your first battle",
		Met: func(s game.Stats) bool { return s.Wins >= 1 }},
	{ID: "apprentice", Name: "Apprentice", Description: "Fight 10 battles",
		Met: func(s game.Stats) bool { return s.TotalBattles >= 10 }},
	{ID: "master", Name: "Master", Description: "Win 25 battles",
		Met: func(s game.Stats) bool { return s.Wins >= 25 }},
	{ID: "hot_streak", Name: "Hot Streak", Description: "Win 3 battles in a row",
		Met: func(s game.Stats) bool { return s.BestStreak >= 3 }},
	{ID: "unstoppable", Name: "Unstoppable", Description: "Win 10 battles in a row",
		Met: func(s game.Stats) bool { return s.BestStreak >= 10 }},
	{ID: "spinjitzu", Name: "Spinjitzu Master", Description: "Use 50 special attacks",
		Met: func(s game.Stats) bool { return s.SpecialUses >= 50 }},
	{ID: "heavy_hitter", Name: "Heavy Hitter", Description: "Land a single hit of 400 damage or more",
		Met: func(s game.Stats) bool { return s.HighestDamage >= 400 }},
	{ID: "rival_hunter", Name: "Rival Hunter", Description: "Defeat 5 different opponents",
		Met: func(s game.Stats) bool { return len(s.Defeated) >= 5 }},
	{ID: "first_purchase", Name: "First Purchase", Description: "Buy your first weapon upgrade",
		Met: func(s game.Stats) bool { return s.Purchases >= 1 }},
	{ID: "big_spender", Name: "Big Spender", Description: "Buy 10 weapon upgrades",
		Met: func(s game.Stats) bool { return s.Purchases >= 10 }},
	{ID: "conqueror_5", Name: "Conqueror (5)", Description: "Win a battle at difficulty 5 or higher",
		Met: func(s game.Stats) bool { return winsAtOrAbove(s, 5) >= 1 }},
	{ID: "conqueror_10", Name: "Conqueror (10)", Description: "Win a battle at difficulty 10",
		Met: func(s game.Stats) bool { return s.WinsByDifficulty[10] >= 1 }},
}

// RuleByID looks up a rule in the built-in table.
func RuleByID(id string) (Rule, bool) {
	for _, r := range Rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

func winsAtOrAbove(s game.Stats, d int) int {
	n := 0
	for level, wins := range s.WinsByDifficulty {
		if level >= d {
			n += wins
		}
	}
	return n
}
