package service

import (
	"sync"

	"github.com/ericogr/ninja-arena/internal/engine"
	"github.com/ericogr/ninja-arena/internal/pacing"
)

// BattleDriver lets a pacing.Run advance one battle through the arena, so
// paced steps take the same locks and finalize path as manual calls.
type BattleDriver struct {
	arena     *Arena
	accountID string
	battleID  string

	mu   sync.Mutex
	last ActionResult
}

var _ pacing.Driver = (*BattleDriver)(nil)

// Driver returns a pacing driver for a battle the account may access.
func (a *Arena) Driver(accountID, battleID string) (*BattleDriver, error) {
	lb, err := a.acquire(accountID, battleID)
	if err != nil {
		return nil, err
	}
	lb.mu.Unlock()
	return &BattleDriver{arena: a, accountID: accountID, battleID: battleID}, nil
}

// Pending reports StepNone once the battle is gone.
func (d *BattleDriver) Pending() (engine.Step, bool) {
	lb, err := d.arena.acquire(d.accountID, d.battleID)
	if err != nil {
		return engine.StepNone, false
	}
	defer lb.mu.Unlock()
	return lb.battle.Pending(), lb.battle.FreshAuto()
}

func (d *BattleDriver) Advance() ([]engine.Event, error) {
	res, err := d.arena.Advance(d.accountID, d.battleID)
	d.mu.Lock()
	d.last = res
	d.mu.Unlock()
	return res.Events, err
}

// Last returns the result of the most recent paced step.
func (d *BattleDriver) Last() ActionResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}
