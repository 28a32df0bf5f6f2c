package progression

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/ericogr/ninja-arena/internal/engine"
	"github.com/ericogr/ninja-arena/internal/game"
)

// DefaultWinRewardBase is the per-difficulty coin base for a win.
const DefaultWinRewardBase = 20

const (
	minWinReward       = 10
	minLossReward      = 5
	lossRewardPerLevel = 5
	winBonusPerLevel   = 5
)

// Evaluator applies battle outcomes to profiles. It is safe for concurrent
// use; the profile itself must be serialized by the caller.
type Evaluator struct {
	Rules         []Rule
	WinRewardBase int
	Now           func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func NewEvaluator(rng *rand.Rand, winRewardBase int) *Evaluator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if winRewardBase <= 0 {
		winRewardBase = DefaultWinRewardBase
	}
	return &Evaluator{Rules: Rules, WinRewardBase: winRewardBase, Now: time.Now, rng: rng}
}

// Result is what a caller needs to persist and announce after a battle.
type Result struct {
	Won             bool           `json:"won"`
	CoinDelta       int            `json:"coin_delta"`
	NewAchievements []string       `json:"new_achievements"`
	Outcome         engine.Outcome `json:"outcome"`
}

// ApplyOutcome folds a resolved battle into p: stats, coins and newly
// unlocked achievements.
func (e *Evaluator) ApplyOutcome(p *game.Profile, o engine.Outcome) Result {
	p.EnsureCollections()
	st := &p.Stats
	st.TotalBattles++
	won := o.PlayerWon()
	if won {
		st.Wins++
		st.WinStreak++
		if st.WinStreak > st.BestStreak {
			st.BestStreak = st.WinStreak
		}
		st.Defeated[o.OpponentID] = true
		st.WinsByDifficulty[o.Difficulty]++
	} else {
		st.Losses++
		st.WinStreak = 0
	}
	st.SpecialUses += o.PlayerSpecials
	if o.HighestHit > st.HighestDamage {
		st.HighestDamage = o.HighestHit
	}

	delta := e.reward(won, o.Difficulty)
	p.AddCoins(delta)

	return Result{
		Won:             won,
		CoinDelta:       delta,
		NewAchievements: e.Evaluate(p),
		Outcome:         o,
	}
}

// Evaluate unlocks every rule that now holds and is not yet recorded,
// stamping it with the evaluator clock in UTC.
func (e *Evaluator) Evaluate(p *game.Profile) []string {
	p.EnsureCollections()
	now := e.now().UTC()
	unlocked := []string{}
	for _, r := range e.rules() {
		if p.HasAchievement(r.ID) || !r.Met(p.Stats) {
			continue
		}
		p.Achievements[r.ID] = now
		unlocked = append(unlocked, r.ID)
	}
	return unlocked
}

func (e *Evaluator) reward(won bool, difficulty int) int {
	d := float64(difficulty)
	if !won {
		return maxInt(minLossReward, int(math.Round(lossRewardPerLevel*d)))
	}
	bonus := 0
	if n := difficulty * winBonusPerLevel; n > 0 {
		e.mu.Lock()
		bonus = e.rng.Intn(n)
		e.mu.Unlock()
	}
	return maxInt(minWinReward, int(math.Round(float64(e.WinRewardBase)*d+float64(bonus))))
}

func (e *Evaluator) rules() []Rule {
	if e.Rules == nil {
		return Rules
	}
	return e.Rules
}

func (e *Evaluator) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
