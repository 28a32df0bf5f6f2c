package engine

// ActionKind is a combat action.
type ActionKind string

const (
	ActionAttack  ActionKind = "attack"
	ActionSpecial ActionKind = "special"
	ActionDefend  ActionKind = "defend"
)

// Roller supplies uniform draws in [0, 1). *rand.Rand satisfies it.
type Roller interface {
	Float64() float64
}

// PolicyView is the slice of battle state the opponent policy reads.
type PolicyView struct {
	OpponentHP              int
	OpponentMaxHP           int
	PlayerHP                int
	PlayerMaxHP             int
	OpponentAttackCount     int
	OpponentSpecialRequired int
	Difficulty              int
}

// Policy decides the opponent's next action.
type Policy func(view PolicyView, r Roller) ActionKind

// ChooseAction is the default opponent policy. It draws exactly one roll.
// Higher difficulty defends less and spends specials more readily.
func ChooseAction(v PolicyView, r Roller) ActionKind {
	oppFrac := fraction(v.OpponentHP, v.OpponentMaxHP)
	playerFrac := fraction(v.PlayerHP, v.PlayerMaxHP)
	roll := r.Float64()
	d := float64(v.Difficulty)

	defendBias := 0.6 - d*0.04
	specialBias := 0.4 + d*0.05

	if oppFrac < 0.30 && roll < defendBias {
		return ActionDefend
	}
	if v.OpponentAttackCount >= v.OpponentSpecialRequired {
		if playerFrac < 0.25 && roll < specialBias {
			return ActionSpecial
		}
		if roll < 0.6+d*0.03 {
			return ActionAttack
		}
		return ActionSpecial
	}
	if roll < 0.85-d*0.03 {
		return ActionAttack
	}
	return ActionDefend
}

func fraction(hp, maxHP int) float64 {
	if maxHP <= 0 {
		return 0
	}
	return float64(hp) / float64(maxHP)
}
