package service

import (
	"fmt"
	"time"

	"github.com/ericogr/ninja-arena/internal/constants"
	"github.com/ericogr/ninja-arena/internal/engine"
	"github.com/ericogr/ninja-arena/internal/game"
	"github.com/ericogr/ninja-arena/internal/logging"
	"github.com/ericogr/ninja-arena/internal/progression"
)

// StartRequest describes a new battle. An empty AccountID starts a guest
// battle that skips progression. An empty OpponentID picks a random
// opponent other than the fighter; Difficulty 0 uses the profile setting.
type StartRequest struct {
	AccountID  string
	FighterID  string
	OpponentID string
	Difficulty int
}

// BattleView is the full state of a battle as returned to clients.
type BattleView struct {
	Snapshot    engine.Snapshot     `json:"snapshot"`
	Events      []engine.Event      `json:"events"`
	Guest       bool                `json:"guest"`
	Progression *progression.Result `json:"progression,omitempty"`
}

// ActionResult is the outcome of one state-changing battle operation.
type ActionResult struct {
	Events      []engine.Event      `json:"events"`
	Snapshot    engine.Snapshot     `json:"snapshot"`
	Progression *progression.Result `json:"progression,omitempty"`
}

// StartBattle resolves both fighters, builds the engine battle and registers
// it. A signed-in account must have a profile.
func (a *Arena) StartBattle(req StartRequest) (BattleView, error) {
	fighter, err := a.catalog.Get(req.FighterID)
	if err != nil {
		return BattleView{}, err
	}
	var opponent game.FighterDefinition
	if req.OpponentID != "" {
		opponent, err = a.catalog.Get(req.OpponentID)
	} else {
		a.rngMu.Lock()
		opponent, err = a.catalog.RandomOpponent(a.rng, fighter.ID)
		a.rngMu.Unlock()
	}
	if err != nil {
		return BattleView{}, err
	}

	difficulty := req.Difficulty
	var levels map[string]int
	if req.AccountID != "" {
		p, err := a.loadProfile(req.AccountID)
		if err != nil {
			return BattleView{}, err
		}
		levels = p.Upgrades.LevelsFor(fighter.ID)
		if difficulty == 0 {
			difficulty = p.Difficulty
		}
	}
	if difficulty == 0 {
		difficulty = game.DefaultDifficulty
	}

	id := a.newID()
	b, err := engine.NewBattle(engine.Options{
		ID:           id,
		Player:       fighter,
		Opponent:     opponent,
		PlayerLevels: levels,
		Armory:       a.catalog.Armory(),
		Difficulty:   difficulty,
		Rand:         a.newRand(),
	})
	if err != nil {
		return BattleView{}, err
	}
	lb := &liveBattle{battle: b, accountID: req.AccountID, lastActive: a.now()}
	a.battles.put(id, lb)

	logging.Info("battle started", logging.Fields{
		constants.LogFieldBattleID:   id,
		constants.LogFieldAccountID:  req.AccountID,
		constants.LogFieldFighter:    fighter.ID,
		constants.LogFieldOpponent:   opponent.ID,
		constants.LogFieldDifficulty: difficulty,
	})
	return BattleView{Snapshot: b.Snapshot(), Events: b.Events(), Guest: lb.guest()}, nil
}

// Act performs a manual player attack or special.
func (a *Arena) Act(accountID, battleID string, kind engine.ActionKind) (ActionResult, error) {
	return a.step(accountID, battleID, func(b *engine.Battle) ([]engine.Event, error) {
		return b.PlayerAct(kind)
	})
}

// Advance runs the deferred opponent or auto-mode step.
func (a *Arena) Advance(accountID, battleID string) (ActionResult, error) {
	return a.step(accountID, battleID, func(b *engine.Battle) ([]engine.Event, error) {
		return b.Advance()
	})
}

// SetAuto toggles auto mode.
func (a *Arena) SetAuto(accountID, battleID string, on bool) (engine.Snapshot, error) {
	lb, err := a.acquire(accountID, battleID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	defer lb.mu.Unlock()
	if err := lb.battle.SetAutoMode(on); err != nil {
		return engine.Snapshot{}, err
	}
	return lb.battle.Snapshot(), nil
}

// GetBattle returns the current state. A resolved battle whose progression
// could not be saved earlier is retried here.
func (a *Arena) GetBattle(accountID, battleID string) (BattleView, error) {
	lb, err := a.acquire(accountID, battleID)
	if err != nil {
		return BattleView{}, err
	}
	defer lb.mu.Unlock()
	var ferr error
	if lb.battle.Resolved() && !lb.finalized {
		ferr = a.finalize(lb)
	}
	return BattleView{
		Snapshot:    lb.battle.Snapshot(),
		Events:      lb.battle.Events(),
		Guest:       lb.guest(),
		Progression: lb.result,
	}, ferr
}

// Abandon drops a battle without progression.
func (a *Arena) Abandon(accountID, battleID string) error {
	lb, err := a.acquire(accountID, battleID)
	if err != nil {
		return err
	}
	lb.mu.Unlock()
	if a.battles.remove(battleID) {
		logging.Info("battle abandoned", logging.Fields{constants.LogFieldBattleID: battleID, constants.LogFieldAccountID: accountID})
	}
	return nil
}

// Sweep removes battles idle for longer than ttl and returns how many were
// dropped.
func (a *Arena) Sweep(ttl time.Duration) int {
	cutoff := a.now().Add(-ttl)
	n := 0
	for _, id := range a.battles.idle(cutoff) {
		if a.battles.removeIfIdle(id, cutoff) {
			n++
		}
	}
	if n > 0 {
		logging.Info("idle battles swept", logging.Fields{constants.LogFieldCount: n})
	}
	return n
}

// acquire looks up a battle, checks ownership and returns it locked.
func (a *Arena) acquire(accountID, battleID string) (*liveBattle, error) {
	lb, ok := a.battles.get(battleID)
	if !ok {
		return nil, ErrBattleNotFound
	}
	if !lb.guest() && lb.accountID != accountID {
		return nil, ErrBattleNotYours
	}
	if err := a.lockLive(lb); err != nil {
		return nil, err
	}
	return lb, nil
}

// lockLive locks lb and marks it active. A battle swept or abandoned between
// lookup and lock is reported as not found.
func (a *Arena) lockLive(lb *liveBattle) error {
	lb.mu.Lock()
	if lb.removed {
		lb.mu.Unlock()
		return ErrBattleNotFound
	}
	lb.lastActive = a.now()
	return nil
}

func (a *Arena) step(accountID, battleID string, fn func(b *engine.Battle) ([]engine.Event, error)) (ActionResult, error) {
	lb, err := a.acquire(accountID, battleID)
	if err != nil {
		return ActionResult{}, err
	}
	defer lb.mu.Unlock()

	events, err := fn(lb.battle)
	if err != nil {
		return ActionResult{}, err
	}
	res := ActionResult{Events: events, Snapshot: lb.battle.Snapshot()}
	if lb.battle.Resolved() && !lb.finalized {
		if err := a.finalize(lb); err != nil {
			return res, err
		}
	}
	res.Progression = lb.result
	return res, nil
}

// finalize applies the outcome to the owner's profile and persists it once.
// Guest battles are only logged. Callers hold lb.mu.
func (a *Arena) finalize(lb *liveBattle) error {
	out, err := lb.battle.Outcome()
	if err != nil {
		return err
	}
	fields := logging.Fields{
		constants.LogFieldBattleID:   out.BattleID,
		constants.LogFieldAccountID:  lb.accountID,
		constants.LogFieldWinner:     string(out.Winner),
		constants.LogFieldDifficulty: out.Difficulty,
	}
	if lb.guest() {
		lb.finalized = true
		logging.Info("guest battle resolved", fields)
		return nil
	}

	unlock := a.locks.Lock(lb.accountID)
	defer unlock()
	p, err := a.fetchProfile(lb.accountID)
	if err != nil {
		return err
	}
	res := a.evaluator.ApplyOutcome(p, out)
	rec := &game.BattleRecord{
		BattleID:       out.BattleID,
		AccountID:      lb.accountID,
		FighterID:      out.PlayerID,
		OpponentID:     out.OpponentID,
		Difficulty:     out.Difficulty,
		Won:            res.Won,
		CoinDelta:      res.CoinDelta,
		Turns:          out.Turns,
		HighestHit:     out.HighestHit,
		PlayerSpecials: out.PlayerSpecials,
		FinishedAt:     a.now().UTC(),
	}
	if err := a.repo.SaveOutcome(p, rec); err != nil {
		logging.Error("failed to persist battle outcome", err, fields)
		return fmt.Errorf("save outcome: %w", err)
	}
	lb.finalized = true
	lb.result = &res

	fields[constants.LogFieldCoins] = res.CoinDelta
	logging.Info("battle resolved", fields)
	for _, id := range res.NewAchievements {
		logging.Info("achievement unlocked", logging.Fields{constants.LogFieldAccountID: lb.accountID, constants.LogFieldAchievement: id})
	}
	return nil
}
