package engine

import "math/rand"

// ComputeDamage draws a uniform roll in [AttackMin, AttackMax]; a special
// multiplies it by SpecialMultiplier and rounds. The result is never below 1.
func ComputeDamage(rng *rand.Rand, f EffectiveFighter, special bool) int {
	lo, hi := f.AttackMin, f.AttackMax
	if hi < lo {
		hi = lo
	}
	dmg := lo + rng.Intn(hi-lo+1)
	if special {
		dmg = roundInt(float64(dmg) * f.SpecialMultiplier)
	}
	return maxInt(1, dmg)
}

// applyHit reduces c's HP by raw, halving it first when c was defending.
// The defend flag absorbs exactly one hit.
func applyHit(c *Combatant, raw int) (dmg int, halved bool) {
	dmg = raw
	if c.Defending {
		dmg = maxInt(1, roundInt(float64(raw)/2))
		c.Defending = false
		halved = true
	}
	c.HP -= dmg
	return dmg, halved
}

// registerAttack updates the charge counter: a special resets it and a
// normal attack increments it, saturating at SpecialRequired.
func registerAttack(c *Combatant, special bool) {
	if special {
		c.AttackCount = 0
		return
	}
	if c.AttackCount < c.Fighter.SpecialRequired {
		c.AttackCount++
	}
}
