package game

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestFighterValidate(t *testing.T) {
	good := FighterDefinition{ID: "lloyd", MaxHP: 1400, AttackMin: 90, AttackMax: 150, SpecialMultiplier: 2.5, SpecialRequired: 6}
	if err := good.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := []FighterDefinition{
		{MaxHP: 1, AttackMin: 1, AttackMax: 1, SpecialMultiplier: 1, SpecialRequired: 1},
		{ID: "a", MaxHP: 0, AttackMin: 1, AttackMax: 1, SpecialMultiplier: 1, SpecialRequired: 1},
		{ID: "a", MaxHP: 1, AttackMin: 0, AttackMax: 1, SpecialMultiplier: 1, SpecialRequired: 1},
		{ID: "a", MaxHP: 1, AttackMin: 5, AttackMax: 4, SpecialMultiplier: 1, SpecialRequired: 1},
		{ID: "a", MaxHP: 1, AttackMin: 1, AttackMax: 1, SpecialMultiplier: 0.5, SpecialRequired: 1},
		{ID: "a", MaxHP: 1, AttackMin: 1, AttackMax: 1, SpecialMultiplier: 1, SpecialRequired: 0},
	}
	for i, f := range bad {
		if err := f.Validate(); !errors.Is(err, ErrInvalidFighter) {
			t.Fatalf("case %d: expected ErrInvalidFighter, got %v", i, err)
		}
	}
}

func TestLedgerLevelsFor(t *testing.T) {
	l := UpgradeLedger{"lloyd:katana": 2, "lloyd:scythe": 1, "kai:katana": 5, "broken": 3}
	got := l.LevelsFor("Lloyd")
	want := map[string]int{"katana": 2, "scythe": 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("LevelsFor=%v, want %v", got, want)
	}
	if l.Level("kai", "katana") != 5 || l.Level("kai", "scythe") != 0 {
		t.Fatalf("unexpected levels")
	}
}

func TestProfileJSONRoundTrip(t *testing.T) {
	p := NewProfile("acc-1", "Student")
	p.AddCoins(120)
	p.Coins -= 45
	p.Difficulty = 4
	p.Upgrades["lloyd:katana"] = 3
	p.Stats = Stats{
		Wins: 4, Losses: 2, WinStreak: 1, BestStreak: 3, TotalBattles: 6,
		SpecialUses: 9, Purchases: 1, HighestDamage: 377,
		Defeated:         map[string]bool{"kai": true, "pythor": true},
		WinsByDifficulty: map[int]int{1: 3, 4: 1},
	}
	p.Achievements["first_blood"] = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Profile
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(*p, back) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", back, *p)
	}
}

func TestAddCoinsTracksLifetime(t *testing.T) {
	p := NewProfile("a", "b")
	p.AddCoins(15)
	p.AddCoins(10)
	if p.Coins != 25 || p.LifetimeCoins != 25 {
		t.Fatalf("coins=%d lifetime=%d", p.Coins, p.LifetimeCoins)
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := NewProfile("a", "b")
	p.Upgrades["lloyd:katana"] = 1
	p.Stats.Defeated["kai"] = true
	c := p.Clone()
	c.Upgrades["lloyd:katana"] = 4
	c.Stats.Defeated["zane"] = true
	c.Stats.WinsByDifficulty[3] = 1
	c.Achievements["x"] = time.Now()
	if p.Upgrades["lloyd:katana"] != 1 || p.Stats.Defeated["zane"] || len(p.Stats.WinsByDifficulty) != 0 || len(p.Achievements) != 0 {
		t.Fatalf("clone shares state with original: %+v", p)
	}
}
