package engine

// CombatantView is the display form of a side; HP is clamped at zero.
type CombatantView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	HP              int    `json:"hp"`
	MaxHP           int    `json:"max_hp"`
	AttackMin       int    `json:"attack_min"`
	AttackMax       int    `json:"attack_max"`
	AttackCount     int    `json:"attack_count"`
	SpecialRequired int    `json:"special_required"`
	SpecialReady    bool   `json:"special_ready"`
	Defending       bool   `json:"defending"`
}

type Snapshot struct {
	ID         string        `json:"id"`
	Phase      Phase         `json:"phase"`
	Pending    Step          `json:"pending"`
	Difficulty int           `json:"difficulty"`
	AutoMode   bool          `json:"auto_mode"`
	Winner     Side          `json:"winner,omitempty"`
	Turns      int           `json:"turns"`
	Player     CombatantView `json:"player"`
	Opponent   CombatantView `json:"opponent"`
}

// Outcome summarizes a resolved battle for progression.
type Outcome struct {
	BattleID       string `json:"battle_id"`
	Winner         Side   `json:"winner"`
	Difficulty     int    `json:"difficulty"`
	PlayerID       string `json:"player_id"`
	OpponentID     string `json:"opponent_id"`
	PlayerSpecials int    `json:"player_specials"`
	HighestHit     int    `json:"highest_hit"`
	Turns          int    `json:"turns"`
}

// PlayerWon reports whether the player side won.
func (o Outcome) PlayerWon() bool { return o.Winner == SidePlayer }

func viewOf(c Combatant) CombatantView {
	return CombatantView{
		ID:              c.Fighter.ID,
		Name:            c.Fighter.Name,
		HP:              maxInt(0, c.HP),
		MaxHP:           c.Fighter.MaxHP,
		AttackMin:       c.Fighter.AttackMin,
		AttackMax:       c.Fighter.AttackMax,
		AttackCount:     c.AttackCount,
		SpecialRequired: c.Fighter.SpecialRequired,
		SpecialReady:    c.charged(),
		Defending:       c.Defending,
	}
}

func (b *Battle) Snapshot() Snapshot {
	return Snapshot{
		ID:         b.id,
		Phase:      b.phase,
		Pending:    b.Pending(),
		Difficulty: b.difficulty,
		AutoMode:   b.autoMode,
		Winner:     b.winner,
		Turns:      b.turns,
		Player:     viewOf(b.player),
		Opponent:   viewOf(b.opponent),
	}
}

// Outcome is only available once the battle is resolved.
func (b *Battle) Outcome() (Outcome, error) {
	if b.phase != PhaseResolved {
		return Outcome{}, ErrBattleNotResolved
	}
	return Outcome{
		BattleID:       b.id,
		Winner:         b.winner,
		Difficulty:     b.difficulty,
		PlayerID:       b.player.Fighter.ID,
		OpponentID:     b.opponent.Fighter.ID,
		PlayerSpecials: b.playerSpecials,
		HighestHit:     b.highestHit,
		Turns:          b.turns,
	}, nil
}
