package service

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ericogr/ninja-arena/internal/engine"
	"github.com/ericogr/ninja-arena/internal/progression"
)

func TestCreateProfileValidatesName(t *testing.T) {
	a := newTestArena(newMemRepo(), &testClock{t: time.Unix(1000, 0)})
	for _, name := range []string{"", "   ", strings.Repeat("x", 33)} {
		if _, err := a.CreateProfile("acc", name); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("name %q: expected ErrInvalidName, got %v", name, err)
		}
	}
	p, err := a.CreateProfile("acc", "  Zane  ")
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if p.DisplayName != "Zane" {
		t.Fatalf("name not trimmed: %q", p.DisplayName)
	}
	if _, err := a.GetProfile("other"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestSetDifficultyValidates(t *testing.T) {
	a := newTestArena(newMemRepo(), &testClock{t: time.Unix(1000, 0)})
	if _, err := a.CreateProfile("acc", "Wu"); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	for _, d := range []int{0, 11, -2} {
		if _, err := a.SetDifficulty("acc", d); !errors.Is(err, engine.ErrInvalidDifficulty) {
			t.Fatalf("difficulty %d: expected ErrInvalidDifficulty, got %v", d, err)
		}
	}
	p, err := a.SetDifficulty("acc", 10)
	if err != nil || p.Difficulty != 10 {
		t.Fatalf("SetDifficulty: %v %+v", err, p)
	}
	if _, err := a.SetDifficulty("missing", 3); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestPurchasePersistsAndRejects(t *testing.T) {
	repo := newMemRepo()
	a := newTestArena(repo, &testClock{t: time.Unix(1000, 0)})
	p, err := a.CreateProfile("acc", "Lloyd")
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	p.AddCoins(100)
	if err := repo.SaveProfile(p); err != nil {
		t.Fatalf("seed coins: %v", err)
	}

	r, err := a.Purchase("acc", "lloyd", "katana")
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if r.Level != 1 || r.Cost != 60 || r.Coins != 40 {
		t.Fatalf("unexpected receipt %+v", r)
	}
	if _, err := a.Purchase("acc", "lloyd", "katana"); !errors.Is(err, progression.ErrInsufficientCoins) {
		t.Fatalf("expected ErrInsufficientCoins, got %v", err)
	}
	stored, _ := a.GetProfile("acc")
	if stored.Coins != 40 || stored.Upgrades.Level("lloyd", "katana") != 1 {
		t.Fatalf("stored profile %+v", stored)
	}
}

func TestConcurrentPurchasesSerialize(t *testing.T) {
	repo := newMemRepo()
	a := newTestArena(repo, &testClock{t: time.Unix(1000, 0)})
	p, _ := a.CreateProfile("acc", "Jay")
	p.AddCoins(45 * 3)
	_ = repo.SaveProfile(p)

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.Purchase("acc", "jay", "nunchucks")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		}
	}
	// 45 + 90 = 135 buys two levels; the third costs 135 more.
	stored, _ := a.GetProfile("acc")
	if ok != 2 || stored.Coins != 0 || stored.Upgrades.Level("jay", "nunchucks") != 2 {
		t.Fatalf("ok=%d coins=%d level=%d", ok, stored.Coins, stored.Upgrades.Level("jay", "nunchucks"))
	}
	if a.locks.size() != 0 {
		t.Fatalf("lock entries leaked: %d", a.locks.size())
	}
}
