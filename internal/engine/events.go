package engine

// Side identifies one of the two combatants.
type Side string

const (
	SidePlayer   Side = "player"
	SideOpponent Side = "opponent"
)

func (s Side) other() Side {
	if s == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}

type EventKind string

const (
	EventAction   EventKind = "action"
	EventTurn     EventKind = "turn"
	EventResolved EventKind = "resolved"
)

// Cue names a sound/UI effect. Every action event carries one, as does the
// resolution event.
type Cue string

const (
	CueAttack  Cue = "attack"
	CueSpecial Cue = "special"
	CueDefend  Cue = "defend"
	CueWin     Cue = "win"
	CueLose    Cue = "lose"
)

// Event is one entry of the battle log. TargetHP is clamped at zero and is
// only meaningful on action events.
type Event struct {
	Seq       int        `json:"seq"`
	Kind      EventKind  `json:"kind"`
	Actor     Side       `json:"actor,omitempty"`
	Action    ActionKind `json:"action,omitempty"`
	Auto      bool       `json:"auto,omitempty"`
	RawDamage int        `json:"raw_damage,omitempty"`
	Damage    int        `json:"damage,omitempty"`
	Halved    bool       `json:"halved,omitempty"`
	TargetHP  int        `json:"target_hp"`
	Next      Side       `json:"next,omitempty"`
	Winner    Side       `json:"winner,omitempty"`
	Cue       Cue        `json:"cue,omitempty"`
}

func cueFor(kind ActionKind) Cue {
	switch kind {
	case ActionSpecial:
		return CueSpecial
	case ActionDefend:
		return CueDefend
	default:
		return CueAttack
	}
}
