package progression

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ericogr/ninja-arena/internal/game"
	"github.com/ericogr/ninja-arena/internal/roster"
)

func newTestShop() *Shop {
	return &Shop{Catalog: roster.Default(), Evaluator: newTestEvaluator(7)}
}

func TestPurchase_CostProgressionAndMaxLevel(t *testing.T) {
	s := newTestShop()
	p := game.NewProfile("a", "A")
	p.Coins = 10000

	total := 0
	for lvl := 1; lvl <= game.DefaultMaxUpgradeLevel; lvl++ {
		r, err := s.Purchase(p, "Lloyd", "katana")
		if err != nil {
			t.Fatalf("purchase %d: %v", lvl, err)
		}
		if r.Level != lvl || r.Cost != 60*lvl {
			t.Fatalf("purchase %d: level=%d cost=%d", lvl, r.Level, r.Cost)
		}
		total += r.Cost
	}
	if p.Coins != 10000-total || p.Upgrades["lloyd:katana"] != 5 {
		t.Fatalf("coins=%d ledger=%v", p.Coins, p.Upgrades)
	}
	if _, err := s.Purchase(p, "lloyd", "katana"); !errors.Is(err, ErrMaxLevel) {
		t.Fatalf("expected ErrMaxLevel, got %v", err)
	}
	if p.Stats.Purchases != 5 {
		t.Fatalf("purchases=%d", p.Stats.Purchases)
	}
}

func TestPurchase_Rejections(t *testing.T) {
	s := newTestShop()
	p := game.NewProfile("a", "A")
	p.Coins = 44

	if _, err := s.Purchase(p, "lloyd", "nunchucks"); !errors.Is(err, ErrInsufficientCoins) {
		t.Fatalf("expected ErrInsufficientCoins, got %v", err)
	}
	if _, err := s.Purchase(p, "clouse", "katana"); !errors.Is(err, ErrUnknownFighter) {
		t.Fatalf("expected ErrUnknownFighter, got %v", err)
	}
	if _, err := s.Purchase(p, "lloyd", "bo_staff"); !errors.Is(err, ErrUnknownWeapon) {
		t.Fatalf("expected ErrUnknownWeapon, got %v", err)
	}
	if p.Coins != 44 || len(p.Upgrades) != 0 || p.Stats.Purchases != 0 {
		t.Fatalf("failed purchases must not mutate the profile: %+v", p)
	}
}

func TestPurchase_UnlocksPurchaseAchievements(t *testing.T) {
	s := newTestShop()
	p := game.NewProfile("a", "A")
	p.Coins = 100000

	r, err := s.Purchase(p, "kai", "shurikens")
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if !reflect.DeepEqual(r.NewAchievements, []string{"first_purchase"}) {
		t.Fatalf("expected first_purchase, got %v", r.NewAchievements)
	}
	var last Receipt
	for _, w := range []string{"katana", "nunchucks", "scythe"} {
		for i := 0; i < 3; i++ {
			if last, err = s.Purchase(p, "kai", w); err != nil {
				t.Fatalf("purchase %s: %v", w, err)
			}
		}
	}
	if p.Stats.Purchases != 10 || !reflect.DeepEqual(last.NewAchievements, []string{"big_spender"}) {
		t.Fatalf("purchases=%d last unlock=%v", p.Stats.Purchases, last.NewAchievements)
	}
}

func TestPrice(t *testing.T) {
	w := game.Weapon{BasePrice: 90}
	if Price(w, 0) != 90 || Price(w, 4) != 450 {
		t.Fatalf("unexpected price progression")
	}
}
