package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/ericogr/ninja-arena/internal/constants"
	"github.com/ericogr/ninja-arena/internal/game"
	"github.com/ericogr/ninja-arena/internal/logging"
)

type Phase string

const (
	PhasePlayerTurn   Phase = "player_turn"
	PhaseOpponentTurn Phase = "opponent_turn"
	PhaseResolved     Phase = "resolved"
)

// Step is the deferred action a pacing layer should run next.
type Step string

const (
	StepNone     Step = "none"
	StepOpponent Step = "opponent"
	StepAuto     Step = "auto"
)

// Auto-mode special probabilities. The first action after enabling auto
// mode uses the lower value.
const (
	autoSpecialChance      = 0.45
	autoSpecialChanceFresh = 0.35
)

var (
	ErrNotPlayerTurn     = errors.New("not the player's turn")
	ErrSpecialNotCharged = errors.New("special attack not charged")
	ErrBattleResolved    = errors.New("battle already resolved")
	ErrBattleNotResolved = errors.New("battle not resolved")
	ErrInvalidAction     = errors.New("invalid action")
	ErrNothingPending    = errors.New("no pending step")
	ErrInvalidCombatant  = errors.New("invalid combatant")
)

// Combatant is one side's mutable battle state. HP may go negative.
type Combatant struct {
	Fighter     EffectiveFighter
	HP          int
	AttackCount int
	Defending   bool
}

func (c *Combatant) charged() bool { return c.AttackCount >= c.Fighter.SpecialRequired }

// Options configures NewBattle. Rand and Policy are optional.
type Options struct {
	ID           string
	Player       game.FighterDefinition
	Opponent     game.FighterDefinition
	PlayerLevels map[string]int
	Armory       game.Armory
	Difficulty   int
	Rand         *rand.Rand
	Policy       Policy
}

// Battle is the turn state machine for a single fight. It is not safe for
// concurrent use; callers serialize access.
type Battle struct {
	id         string
	player     Combatant
	opponent   Combatant
	phase      Phase
	winner     Side
	difficulty int
	autoMode   bool
	autoFresh  bool

	rng    *rand.Rand
	roller Roller
	policy Policy

	events         []Event
	playerSpecials int
	highestHit     int
	turns          int
}

// NewBattle resolves both sides' effective stats and starts in the player's
// turn. Only the opponent is scaled by difficulty.
func NewBattle(opts Options) (*Battle, error) {
	if err := ValidateDifficulty(opts.Difficulty); err != nil {
		return nil, err
	}
	if err := opts.Player.Validate(); err != nil {
		return nil, fmt.Errorf("%w: player: %v", ErrInvalidCombatant, err)
	}
	if err := opts.Opponent.Validate(); err != nil {
		return nil, fmt.Errorf("%w: opponent: %v", ErrInvalidCombatant, err)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	policy := opts.Policy
	if policy == nil {
		policy = ChooseAction
	}

	playerStats := ResolveStats(opts.Player, opts.PlayerLevels, opts.Armory)
	oppStats, err := ScaleForDifficulty(ResolveStats(opts.Opponent, nil, opts.Armory), opts.Difficulty)
	if err != nil {
		return nil, err
	}
	return &Battle{
		id:         opts.ID,
		player:     Combatant{Fighter: playerStats, HP: playerStats.MaxHP},
		opponent:   Combatant{Fighter: oppStats, HP: oppStats.MaxHP},
		phase:      PhasePlayerTurn,
		difficulty: opts.Difficulty,
		rng:        rng,
		roller:     rng,
		policy:     policy,
		events:     make([]Event, 0, 32),
	}, nil
}

func (b *Battle) ID() string      { return b.id }
func (b *Battle) Phase() Phase    { return b.phase }
func (b *Battle) Difficulty() int { return b.difficulty }
func (b *Battle) AutoMode() bool  { return b.autoMode }
func (b *Battle) Resolved() bool  { return b.phase == PhaseResolved }

// FreshAuto reports whether the next automatic action is the first one
// since auto mode was enabled.
func (b *Battle) FreshAuto() bool { return b.autoMode && b.autoFresh }

// Player and Opponent return copies of the authoritative side state.
func (b *Battle) Player() Combatant   { return b.player }
func (b *Battle) Opponent() Combatant { return b.opponent }

// Events returns a copy of the full log.
func (b *Battle) Events() []Event {
	out := make([]Event, len(b.events))
	copy(out, b.events)
	return out
}

// PlayerAct performs a manual player attack or special and returns the
// events it produced. A rejected action leaves the state untouched.
func (b *Battle) PlayerAct(kind ActionKind) ([]Event, error) {
	if b.phase == PhaseResolved {
		return nil, ErrBattleResolved
	}
	if b.phase != PhasePlayerTurn {
		return nil, ErrNotPlayerTurn
	}
	switch kind {
	case ActionAttack:
	case ActionSpecial:
		if !b.player.charged() {
			return nil, ErrSpecialNotCharged
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, kind)
	}
	start := len(b.events)
	b.strike(SidePlayer, kind, false)
	return b.since(start), nil
}

// Pending reports which deferred step is due.
func (b *Battle) Pending() Step {
	switch {
	case b.phase == PhaseOpponentTurn:
		return StepOpponent
	case b.phase == PhasePlayerTurn && b.autoMode:
		return StepAuto
	default:
		return StepNone
	}
}

// Advance runs exactly one deferred step: the opponent's action, or one
// automatic player action when auto mode is on.
func (b *Battle) Advance() ([]Event, error) {
	if b.phase == PhaseResolved {
		return nil, ErrBattleResolved
	}
	start := len(b.events)
	switch b.Pending() {
	case StepOpponent:
		b.opponentTurn()
	case StepAuto:
		b.autoTurn()
	default:
		return nil, ErrNothingPending
	}
	return b.since(start), nil
}

// SetAutoMode toggles automatic player actions. Enabling marks the next
// automatic action as fresh.
func (b *Battle) SetAutoMode(on bool) error {
	if b.phase == PhaseResolved {
		return ErrBattleResolved
	}
	if on && !b.autoMode {
		b.autoFresh = true
	}
	if !on {
		b.autoFresh = false
	}
	b.autoMode = on
	return nil
}

func (b *Battle) opponentTurn() {
	kind := b.policy(b.policyView(), b.roller)
	switch kind {
	case ActionAttack, ActionDefend:
	case ActionSpecial:
		if !b.opponent.charged() {
			logging.Warn("opponent policy chose an uncharged special; downgrading to attack", logging.Fields{
				constants.LogFieldBattleID: b.id,
				constants.LogFieldOpponent: b.opponent.Fighter.ID,
				constants.LogFieldCount:    b.opponent.AttackCount,
			})
			kind = ActionAttack
		}
	default:
		logging.Warn("opponent policy returned an unknown action; using attack", logging.Fields{
			constants.LogFieldBattleID: b.id,
			constants.LogFieldAction:   string(kind),
		})
		kind = ActionAttack
	}
	if kind == ActionDefend {
		b.defend(SideOpponent)
		return
	}
	b.strike(SideOpponent, kind, false)
}

func (b *Battle) autoTurn() {
	chance := autoSpecialChance
	if b.autoFresh {
		chance = autoSpecialChanceFresh
	}
	b.autoFresh = false
	kind := ActionAttack
	if b.player.charged() && b.roller.Float64() < chance {
		kind = ActionSpecial
	}
	b.strike(SidePlayer, kind, true)
}

func (b *Battle) policyView() PolicyView {
	return PolicyView{
		OpponentHP:              b.opponent.HP,
		OpponentMaxHP:           b.opponent.Fighter.MaxHP,
		PlayerHP:                b.player.HP,
		PlayerMaxHP:             b.player.Fighter.MaxHP,
		OpponentAttackCount:     b.opponent.AttackCount,
		OpponentSpecialRequired: b.opponent.Fighter.SpecialRequired,
		Difficulty:              b.difficulty,
	}
}

func (b *Battle) sides(actor Side) (attacker, defender *Combatant) {
	if actor == SidePlayer {
		return &b.player, &b.opponent
	}
	return &b.opponent, &b.player
}

// strike runs the damage pipeline for one attack or special, then checks
// the defender for termination before handing the turn over.
func (b *Battle) strike(actor Side, kind ActionKind, auto bool) {
	att, def := b.sides(actor)
	special := kind == ActionSpecial
	raw := ComputeDamage(b.rng, att.Fighter, special)
	dmg, halved := applyHit(def, raw)
	registerAttack(att, special)
	b.turns++

	if actor == SidePlayer {
		if special {
			b.playerSpecials++
		}
		if dmg > b.highestHit {
			b.highestHit = dmg
		}
	}

	b.emit(Event{
		Kind:      EventAction,
		Actor:     actor,
		Action:    kind,
		Auto:      auto,
		RawDamage: raw,
		Damage:    dmg,
		Halved:    halved,
		TargetHP:  maxInt(0, def.HP),
		Cue:       cueFor(kind),
	})

	if def.HP <= 0 {
		b.resolve(actor)
		return
	}
	b.handOver(actor)
}

func (b *Battle) defend(actor Side) {
	att, _ := b.sides(actor)
	att.Defending = true
	b.turns++
	b.emit(Event{
		Kind:     EventAction,
		Actor:    actor,
		Action:   ActionDefend,
		TargetHP: maxInt(0, att.HP),
		Cue:      CueDefend,
	})
	b.handOver(actor)
}

func (b *Battle) handOver(actor Side) {
	next := actor.other()
	if next == SidePlayer {
		b.phase = PhasePlayerTurn
	} else {
		b.phase = PhaseOpponentTurn
	}
	b.emit(Event{Kind: EventTurn, Next: next})
}

func (b *Battle) resolve(winner Side) {
	b.phase = PhaseResolved
	b.winner = winner
	b.autoMode = false
	b.autoFresh = false
	cue := CueLose
	if winner == SidePlayer {
		cue = CueWin
	}
	b.emit(Event{Kind: EventResolved, Winner: winner, Cue: cue})
}

func (b *Battle) emit(ev Event) {
	ev.Seq = len(b.events) + 1
	b.events = append(b.events, ev)
}

func (b *Battle) since(start int) []Event {
	out := make([]Event, len(b.events)-start)
	copy(out, b.events[start:])
	return out
}
